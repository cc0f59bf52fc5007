package repository

import (
	"go-backoffice-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStore runs the write half of bulk payments. Every PaymentTx
// method executes inside the single database transaction opened by
// InTransaction, so a failed child tag also rolls back the parent insert.
type PaymentStore interface {
	InTransaction(fn func(tx PaymentTx) error) error
}

type PaymentTx interface {
	// CreateBulk inserts the batch parent row.
	CreateBulk(bp *model.BulkPayment) error
	// TagOrder settles one order under the batch reference, snapshotting
	// its previous paid amount and status for rollback. Returns the
	// number of rows updated; zero means a concurrent batch won the row.
	TagOrder(poID uuid.UUID, reference, actorID string) (int64, error)
	// UntagOrders restores every order tagged with reference to its
	// pre-batch paid amount and status.
	UntagOrders(reference, actorID string) error
	// DeleteBulk removes the batch parent row. The delete is unscoped so
	// the unique reference can be reused by a later batch.
	DeleteBulk(reference string) error
}

type paymentStore struct {
	db *gorm.DB
}

func NewPaymentStore(db *gorm.DB) PaymentStore {
	return &paymentStore{db}
}

func (s *paymentStore) InTransaction(fn func(tx PaymentTx) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&paymentTx{db: tx})
	})
}

type paymentTx struct {
	db *gorm.DB
}

func (t *paymentTx) CreateBulk(bp *model.BulkPayment) error {
	return t.db.Create(bp).Error
}

func (t *paymentTx) TagOrder(poID uuid.UUID, reference, actorID string) (int64, error) {
	res := t.db.Model(&model.PurchaseOrder{}).
		Where("id = ? AND (bulk_payment_ref IS NULL OR bulk_payment_ref = ?)", poID, reference).
		Updates(map[string]interface{}{
			"bulk_payment_ref":  reference,
			"prior_paid_amount": gorm.Expr("paid_amount"),
			"prior_status":      gorm.Expr("status"),
			"paid_amount":       gorm.Expr("total_amount"),
			"status":            model.POStatusPaid,
			"updated_by":        actorID,
		})
	return res.RowsAffected, res.Error
}

func (t *paymentTx) UntagOrders(reference, actorID string) error {
	return t.db.Model(&model.PurchaseOrder{}).
		Where("bulk_payment_ref = ?", reference).
		Updates(map[string]interface{}{
			"bulk_payment_ref":  nil,
			"paid_amount":       gorm.Expr("COALESCE(prior_paid_amount, 0)"),
			"status":            gorm.Expr("COALESCE(prior_status, ?)", string(model.POStatusDelivered)),
			"prior_paid_amount": nil,
			"prior_status":      nil,
			"updated_by":        actorID,
		}).Error
}

func (t *paymentTx) DeleteBulk(reference string) error {
	return t.db.Unscoped().Where("reference = ?", reference).Delete(&model.BulkPayment{}).Error
}
