package model

import "github.com/shopspring/decimal"

// CashRequestStatus values
type CashRequestStatus string

const (
	CashStatusPending  CashRequestStatus = "pending"
	CashStatusApproved CashRequestStatus = "approved"
	CashStatusRejected CashRequestStatus = "rejected"
	CashStatusPaidOut  CashRequestStatus = "paid_out"
)

// CashRequest is a branch-scoped petty cash request. Lockable like a
// purchase order so two sessions do not approve the same request at once.
type CashRequest struct {
	BaseModel
	RecordLock `gorm:"embedded"`

	RequestNumber string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"request_number" validate:"required"`
	BranchCode    string            `gorm:"type:varchar(20);not null;index" json:"branch_code" validate:"required"`
	Amount        decimal.Decimal   `gorm:"type:numeric(14,2);not null" json:"amount"`
	Purpose       string            `gorm:"type:text;not null" json:"purpose" validate:"required"`
	Status        CashRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	IsActive      bool              `gorm:"default:true" json:"is_active"`
}

func (CashRequest) TableName() string {
	return "cash_requests"
}
