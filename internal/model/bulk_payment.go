package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BulkPayment is the parent record of a payment batch. Member orders are
// tagged by writing Reference into purchase_orders.bulk_payment_ref; the
// parent itself holds no child list.
type BulkPayment struct {
	BaseModel
	Reference   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"reference"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	OrderCount  int             `gorm:"not null" json:"order_count"`
	PaidAt      time.Time       `gorm:"not null" json:"paid_at"`
	Note        string          `gorm:"type:text" json:"note"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
}

func (BulkPayment) TableName() string {
	return "bulk_payments"
}
