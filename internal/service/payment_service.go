package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyBatch        = errors.New("bulk payment batch is empty")
	ErrReferenceInUse    = errors.New("bulk payment reference already exists")
	ErrOverpayment       = errors.New("payment exceeds the order's outstanding amount")
	ErrBulkRefNotFound   = errors.New("bulk payment reference not found")
	ErrOrderNotPayable   = errors.New("order is not payable")
)

type PaymentService interface {
	// ExecuteBulk validates the batch (all orders exist, none already
	// carries a different bulk reference, the reference is unused) and
	// then, inside one database transaction, inserts the bulk parent and
	// tags every member order. Any failure rolls the whole batch back.
	ExecuteBulk(req *BulkPaymentRequest, actor Actor) (*model.BulkPayment, error)
	// RollbackBulk undoes a completed batch: restores every tagged
	// order's pre-batch paid amount and status, clears the reference and
	// removes the parent, in one transaction.
	RollbackBulk(reference string, actor Actor) error
	// GetBulkPayment returns a batch parent with its member orders.
	GetBulkPayment(reference string) (*model.BulkPayment, []model.PurchaseOrder, error)
	// PaySingle records a payment against one order, capped at its
	// outstanding payable amount.
	PaySingle(poID uuid.UUID, amount decimal.Decimal, actor Actor) (*model.PurchaseOrder, error)
	ListBulkPayments() ([]model.BulkPayment, error)
}

type BulkPaymentRequest struct {
	Reference string      `json:"reference"` // generated when empty
	OrderIDs  []uuid.UUID `json:"order_ids" validate:"required,min=1"`
	Note      string      `json:"note"`
}

type paymentService struct {
	store    repository.PaymentStore
	poRepo   repository.PurchaseOrderRepository
	bulkRepo repository.BulkPaymentRepository
	audit    AuditService
}

func NewPaymentService(store repository.PaymentStore, poRepo repository.PurchaseOrderRepository, bulkRepo repository.BulkPaymentRepository, audit AuditService) PaymentService {
	return &paymentService{
		store:    store,
		poRepo:   poRepo,
		bulkRepo: bulkRepo,
		audit:    audit,
	}
}

func (s *paymentService) ExecuteBulk(req *BulkPaymentRequest, actor Actor) (*model.BulkPayment, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 || len(req.OrderIDs) == 0 {
		return nil, ErrEmptyBatch
	}

	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		reference = newBulkReference()
	}

	// 1. Reference must not collide with an existing batch
	if existing, _ := s.bulkRepo.FindByReference(reference); existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrReferenceInUse, reference)
	}

	// 2. Every order must exist and be free of a foreign bulk reference
	orders, err := s.poRepo.FindByIDs(req.OrderIDs)
	if err != nil {
		return nil, err
	}
	if len(orders) != len(req.OrderIDs) {
		return nil, fmt.Errorf("%d of %d orders not found", len(req.OrderIDs)-len(orders), len(req.OrderIDs))
	}
	total := decimal.Zero
	for _, po := range orders {
		if po.BulkPaymentRef != nil && *po.BulkPaymentRef != reference {
			return nil, fmt.Errorf("order %s already belongs to bulk payment %s", po.PONumber, *po.BulkPaymentRef)
		}
		if !po.IsActive {
			return nil, fmt.Errorf("%w: %s is inactive", ErrOrderNotPayable, po.PONumber)
		}
		total = total.Add(po.Outstanding())
	}

	bulk := &model.BulkPayment{
		Reference:   reference,
		TotalAmount: total,
		OrderCount:  len(orders),
		PaidAt:      time.Now(),
		Note:        req.Note,
		IsActive:    true,
	}
	bulk.CreatedBy = actor.ID
	bulk.UpdatedBy = actor.ID

	// 3. Parent insert and every child tag commit or roll back together
	err = s.store.InTransaction(func(tx repository.PaymentTx) error {
		if err := tx.CreateBulk(bulk); err != nil {
			return err
		}
		for _, po := range orders {
			affected, err := tx.TagOrder(po.ID, reference, actor.ID)
			if err != nil {
				return err
			}
			if affected == 0 {
				// A concurrent session tagged the order between
				// validation and here; abort the whole batch
				return fmt.Errorf("order %s was tagged by another bulk payment", po.PONumber)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.InsertAudited(model.PageBulkPayments, bulk.ID.String(), func() error { return nil }, bulk, actor)
	return bulk, nil
}

func (s *paymentService) RollbackBulk(reference string, actor Actor) error {
	bulk, err := s.bulkRepo.FindByReference(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBulkRefNotFound
		}
		return err
	}

	err = s.store.InTransaction(func(tx repository.PaymentTx) error {
		if err := tx.UntagOrders(reference, actor.ID); err != nil {
			return err
		}
		return tx.DeleteBulk(reference)
	})
	if err != nil {
		return err
	}

	s.audit.SoftDeleteAudited(model.PageBulkPayments, bulk.ID.String(),
		func() (interface{}, error) { return bulk, nil },
		func() error { return nil },
		actor)
	return nil
}

func (s *paymentService) GetBulkPayment(reference string) (*model.BulkPayment, []model.PurchaseOrder, error) {
	bulk, err := s.bulkRepo.FindByReference(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBulkRefNotFound
		}
		return nil, nil, err
	}
	orders, err := s.poRepo.FindByBulkRef(reference)
	if err != nil {
		return nil, nil, err
	}
	return bulk, orders, nil
}

func (s *paymentService) PaySingle(poID uuid.UUID, amount decimal.Decimal, actor Actor) (*model.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(poID)
	if err != nil {
		return nil, err
	}
	if !po.IsActive {
		return nil, fmt.Errorf("%w: %s is inactive", ErrOrderNotPayable, po.PONumber)
	}
	if po.BulkPaymentRef != nil {
		return nil, fmt.Errorf("%w: %s is paid via bulk payment %s", ErrOrderNotPayable, po.PONumber, *po.BulkPaymentRef)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("payment amount must be positive")
	}

	// Maximum payable check against the order's outstanding amount
	outstanding := po.Outstanding()
	if amount.GreaterThan(outstanding) {
		return nil, fmt.Errorf("%w: outstanding is %s, got %s", ErrOverpayment, outstanding, amount)
	}

	before := *po
	po.PaidAmount = po.PaidAmount.Add(amount)
	if po.PaidAmount.Equal(po.TotalAmount) {
		po.Status = model.POStatusPaid
	}
	po.UpdatedBy = actor.ID

	err = s.audit.UpdateAudited(model.PagePurchaseOrders, po.ID.String(),
		func() (interface{}, error) { return &before, nil },
		func() error { return s.poRepo.Update(po) },
		po, actor)
	if err != nil {
		return nil, err
	}
	return po, nil
}

func (s *paymentService) ListBulkPayments() ([]model.BulkPayment, error) {
	return s.bulkRepo.FindAll()
}

// newBulkReference generates an unguessable batch reference, e.g.
// "BP-20260115-5f3a2b".
func newBulkReference() string {
	id := uuid.New().String()
	return fmt.Sprintf("BP-%s-%s", time.Now().Format("20060102"), id[:6])
}
