package service

import (
	"errors"
	"fmt"
	"time"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/paymentterm"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPONumberExists = errors.New("PO number already exists")
	ErrBranchDenied   = errors.New("branch is outside the caller's scope")
	ErrRecordLocked   = errors.New("record is locked by another user")
)

type PurchaseOrderService interface {
	ListOrders(scope BranchScope) ([]model.PurchaseOrder, error)
	GetOrder(id uuid.UUID, scope BranchScope) (*model.PurchaseOrder, error)
	CreateOrder(req *CreatePurchaseOrderRequest, scope BranchScope, actor Actor) (*model.PurchaseOrder, error)
	UpdateOrder(id uuid.UUID, req *UpdatePurchaseOrderRequest, scope BranchScope, actor Actor) (*model.PurchaseOrder, error)
	// DeleteOrder soft-deletes: the row stays, is_active goes false.
	DeleteOrder(id uuid.UUID, scope BranchScope, actor Actor) error
}

type CreatePurchaseOrderRequest struct {
	PONumber     string          `json:"po_number" validate:"required"`
	SupplierID   uuid.UUID       `json:"supplier_id" validate:"uuid_required"`
	BranchCode   string          `json:"branch_code" validate:"required"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	InvoiceDate  *string         `json:"invoice_date"`  // YYYY-MM-DD
	DeliveryDate *string         `json:"delivery_date"` // YYYY-MM-DD
	Note         string          `json:"note"`
}

type UpdatePurchaseOrderRequest struct {
	Status       string          `json:"status" validate:"omitempty,oneof=draft ordered delivered paid"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	InvoiceDate  *string         `json:"invoice_date"`
	DeliveryDate *string         `json:"delivery_date"`
	Note         string          `json:"note"`
}

type purchaseOrderService struct {
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	audit        AuditService
}

func NewPurchaseOrderService(poRepo repository.PurchaseOrderRepository, supplierRepo repository.SupplierRepository, audit AuditService) PurchaseOrderService {
	return &purchaseOrderService{
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		audit:        audit,
	}
}

func (s *purchaseOrderService) ListOrders(scope BranchScope) ([]model.PurchaseOrder, error) {
	return s.poRepo.FindAll(scope.FilterCodes())
}

func (s *purchaseOrderService) GetOrder(id uuid.UUID, scope BranchScope) (*model.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(po.BranchCode) {
		return nil, ErrBranchDenied
	}
	return po, nil
}

func (s *purchaseOrderService) CreateOrder(req *CreatePurchaseOrderRequest, scope BranchScope, actor Actor) (*model.PurchaseOrder, error) {
	// 1. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if !scope.Contains(req.BranchCode) {
		return nil, ErrBranchDenied
	}

	// 2. Check PO number uniqueness
	existing, _ := s.poRepo.FindByPONumber(req.PONumber)
	if existing != nil {
		return nil, ErrPONumberExists
	}

	// 3. Resolve supplier (for the payment term)
	supplier, err := s.supplierRepo.FindByID(req.SupplierID)
	if err != nil {
		return nil, errors.New("supplier not found")
	}

	po := &model.PurchaseOrder{
		PONumber:    req.PONumber,
		SupplierID:  supplier.ID,
		BranchCode:  req.BranchCode,
		Status:      model.POStatusDraft,
		TotalAmount: req.TotalAmount,
		PaidAmount:  decimal.Zero,
		Note:        req.Note,
		IsActive:    true,
	}
	po.ID = uuid.New()
	po.CreatedBy = actor.ID
	po.UpdatedBy = actor.ID

	if po.InvoiceDate, err = parseDate(req.InvoiceDate); err != nil {
		return nil, err
	}
	if po.DeliveryDate, err = parseDate(req.DeliveryDate); err != nil {
		return nil, err
	}

	// 4. Compute due date from the supplier's payment term
	applyDueDate(po, supplier.PaymentTerm)

	// 5. Audited insert
	err = s.audit.InsertAudited(model.PagePurchaseOrders, po.ID.String(),
		func() error { return s.poRepo.Create(po) }, po, actor)
	if err != nil {
		return nil, err
	}
	return po, nil
}

func (s *purchaseOrderService) UpdateOrder(id uuid.UUID, req *UpdatePurchaseOrderRequest, scope BranchScope, actor Actor) (*model.PurchaseOrder, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	po, err := s.poRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(po.BranchCode) {
		return nil, ErrBranchDenied
	}
	// Honor a live advisory lock held by someone else
	if po.IsLocked && !po.HeldBy(actor.ID) && !po.IsStale(time.Now()) {
		return nil, fmt.Errorf("%w (%s)", ErrRecordLocked, po.HolderName())
	}

	before := *po

	if req.Status != "" {
		po.Status = model.PurchaseOrderStatus(req.Status)
	}
	if !req.TotalAmount.IsZero() {
		po.TotalAmount = req.TotalAmount
	}
	if po.InvoiceDate, err = parseDateKeep(req.InvoiceDate, po.InvoiceDate); err != nil {
		return nil, err
	}
	if po.DeliveryDate, err = parseDateKeep(req.DeliveryDate, po.DeliveryDate); err != nil {
		return nil, err
	}
	if req.Note != "" {
		po.Note = req.Note
	}
	po.UpdatedBy = actor.ID

	// Recompute the due date against the current dates
	applyDueDate(po, supplierTerm(po))

	err = s.audit.UpdateAudited(model.PagePurchaseOrders, po.ID.String(),
		func() (interface{}, error) { return &before, nil },
		func() error { return s.poRepo.Update(po) },
		po, actor)
	if err != nil {
		return nil, err
	}
	return po, nil
}

func (s *purchaseOrderService) DeleteOrder(id uuid.UUID, scope BranchScope, actor Actor) error {
	po, err := s.poRepo.FindByID(id)
	if err != nil {
		return err
	}
	if !scope.Contains(po.BranchCode) {
		return ErrBranchDenied
	}
	if po.IsLocked && !po.HeldBy(actor.ID) && !po.IsStale(time.Now()) {
		return fmt.Errorf("%w (%s)", ErrRecordLocked, po.HolderName())
	}

	before := *po
	return s.audit.SoftDeleteAudited(model.PagePurchaseOrders, po.ID.String(),
		func() (interface{}, error) { return &before, nil },
		func() error {
			po.IsActive = false
			po.UpdatedBy = actor.ID
			return s.poRepo.Update(po)
		}, actor)
}

// applyDueDate fills DueDate/DueDateNote from the calculator. A missing or
// misconfigured term leaves the order without a due date plus the reason,
// never an error.
func applyDueDate(po *model.PurchaseOrder, term *model.PaymentTerm) {
	base := po.InvoiceDate
	if term != nil && term.Kind == string(paymentterm.KindFromDelivery) {
		base = po.DeliveryDate
	}
	if base == nil {
		po.DueDate = nil
		po.DueDateNote = "base date not set"
		return
	}

	res := paymentterm.DueDate(*base, term.ToTerm())
	if !res.OK {
		po.DueDate = nil
		po.DueDateNote = res.Reason
		return
	}
	due := res.Due
	po.DueDate = &due
	po.DueDateNote = ""
}

func supplierTerm(po *model.PurchaseOrder) *model.PaymentTerm {
	if po.Supplier == nil {
		return nil
	}
	return po.Supplier.PaymentTerm
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *s)
	}
	return &t, nil
}

func parseDateKeep(s *string, current *time.Time) (*time.Time, error) {
	if s == nil {
		return current, nil
	}
	return parseDate(s)
}
