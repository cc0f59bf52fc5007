package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus values
type PurchaseOrderStatus string

const (
	POStatusDraft     PurchaseOrderStatus = "draft"
	POStatusOrdered   PurchaseOrderStatus = "ordered"
	POStatusDelivered PurchaseOrderStatus = "delivered"
	POStatusPaid      PurchaseOrderStatus = "paid"
)

// PurchaseOrder is a branch-scoped order to a supplier. The row carries its
// own advisory lock state and, when paid as part of a batch, the shared
// bulk payment reference.
type PurchaseOrder struct {
	BaseModel
	RecordLock `gorm:"embedded"`

	PONumber   string              `gorm:"type:varchar(50);uniqueIndex;not null" json:"po_number" validate:"required"`
	SupplierID uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id" validate:"uuid_required"`
	Supplier   *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`
	BranchCode string              `gorm:"type:varchar(20);not null;index" json:"branch_code" validate:"required"`
	Status     PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`

	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	PaidAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"paid_amount"`

	InvoiceDate  *time.Time `gorm:"type:date" json:"invoice_date,omitempty"`
	DeliveryDate *time.Time `gorm:"type:date" json:"delivery_date,omitempty"`
	DueDate      *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	// Set when the due date could not be computed (missing term config)
	DueDateNote string `gorm:"type:varchar(255)" json:"due_date_note,omitempty"`

	// Shared reference tagging the order into a bulk payment batch.
	// PriorPaidAmount and PriorStatus snapshot the pre-batch state so a
	// rollback restores partial payments instead of zeroing them.
	BulkPaymentRef  *string              `gorm:"type:varchar(50);index" json:"bulk_payment_ref,omitempty"`
	PriorPaidAmount *decimal.Decimal     `gorm:"type:numeric(14,2)" json:"-"`
	PriorStatus     *PurchaseOrderStatus `gorm:"type:varchar(20)" json:"-"`

	Note     string `gorm:"type:text" json:"note"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// Outstanding returns the amount still payable on the order.
func (po *PurchaseOrder) Outstanding() decimal.Decimal {
	return po.TotalAmount.Sub(po.PaidAmount)
}

// PurchaseOrderColumns is the full ordered column set of the purchase
// orders page; VisibleColumns filters it per role.
var PurchaseOrderColumns = []string{
	"po_number",
	"supplier_name",
	"branch_code",
	"status",
	"total_amount",
	"paid_amount",
	"invoice_date",
	"delivery_date",
	"due_date",
	"bulk_payment_ref",
}
