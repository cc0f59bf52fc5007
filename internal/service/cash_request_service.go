package service

import (
	"errors"
	"fmt"
	"time"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidStatusChange = errors.New("invalid status change")

type CashRequestService interface {
	ListRequests(scope BranchScope) ([]model.CashRequest, error)
	GetRequest(id uuid.UUID, scope BranchScope) (*model.CashRequest, error)
	CreateRequest(req *CreateCashRequestRequest, scope BranchScope, actor Actor) (*model.CashRequest, error)
	UpdateStatus(id uuid.UUID, status model.CashRequestStatus, scope BranchScope, actor Actor) (*model.CashRequest, error)
	DeleteRequest(id uuid.UUID, scope BranchScope, actor Actor) error
}

type CreateCashRequestRequest struct {
	RequestNumber string          `json:"request_number" validate:"required"`
	BranchCode    string          `json:"branch_code" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Purpose       string          `json:"purpose" validate:"required"`
}

type cashRequestService struct {
	cashRepo repository.CashRequestRepository
	audit    AuditService
}

func NewCashRequestService(cashRepo repository.CashRequestRepository, audit AuditService) CashRequestService {
	return &cashRequestService{cashRepo: cashRepo, audit: audit}
}

func (s *cashRequestService) ListRequests(scope BranchScope) ([]model.CashRequest, error) {
	return s.cashRepo.FindAll(scope.FilterCodes())
}

func (s *cashRequestService) GetRequest(id uuid.UUID, scope BranchScope) (*model.CashRequest, error) {
	req, err := s.cashRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(req.BranchCode) {
		return nil, ErrBranchDenied
	}
	return req, nil
}

func (s *cashRequestService) CreateRequest(req *CreateCashRequestRequest, scope BranchScope, actor Actor) (*model.CashRequest, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if !scope.Contains(req.BranchCode) {
		return nil, ErrBranchDenied
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("amount must be positive")
	}

	cash := &model.CashRequest{
		RequestNumber: req.RequestNumber,
		BranchCode:    req.BranchCode,
		Amount:        req.Amount,
		Purpose:       req.Purpose,
		Status:        model.CashStatusPending,
		IsActive:      true,
	}
	cash.ID = uuid.New()
	cash.CreatedBy = actor.ID
	cash.UpdatedBy = actor.ID

	err := s.audit.InsertAudited(model.PageCashRequests, cash.ID.String(),
		func() error { return s.cashRepo.Create(cash) }, cash, actor)
	if err != nil {
		return nil, err
	}
	return cash, nil
}

func (s *cashRequestService) UpdateStatus(id uuid.UUID, status model.CashRequestStatus, scope BranchScope, actor Actor) (*model.CashRequest, error) {
	switch status {
	case model.CashStatusPending, model.CashStatusApproved, model.CashStatusRejected, model.CashStatusPaidOut:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatusChange, status)
	}

	cash, err := s.cashRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(cash.BranchCode) {
		return nil, ErrBranchDenied
	}
	if cash.IsLocked && !cash.HeldBy(actor.ID) && !cash.IsStale(time.Now()) {
		return nil, fmt.Errorf("%w (%s)", ErrRecordLocked, cash.HolderName())
	}
	// Paid-out requests are settled; nothing moves them back
	if cash.Status == model.CashStatusPaidOut {
		return nil, fmt.Errorf("%w: request is already paid out", ErrInvalidStatusChange)
	}

	before := *cash
	cash.Status = status
	cash.UpdatedBy = actor.ID

	err = s.audit.UpdateAudited(model.PageCashRequests, cash.ID.String(),
		func() (interface{}, error) { return &before, nil },
		func() error { return s.cashRepo.Update(cash) },
		cash, actor)
	if err != nil {
		return nil, err
	}
	return cash, nil
}

func (s *cashRequestService) DeleteRequest(id uuid.UUID, scope BranchScope, actor Actor) error {
	cash, err := s.cashRepo.FindByID(id)
	if err != nil {
		return err
	}
	if !scope.Contains(cash.BranchCode) {
		return ErrBranchDenied
	}
	if cash.IsLocked && !cash.HeldBy(actor.ID) && !cash.IsStale(time.Now()) {
		return fmt.Errorf("%w (%s)", ErrRecordLocked, cash.HolderName())
	}

	before := *cash
	return s.audit.SoftDeleteAudited(model.PageCashRequests, cash.ID.String(),
		func() (interface{}, error) { return &before, nil },
		func() error {
			cash.IsActive = false
			cash.UpdatedBy = actor.ID
			return s.cashRepo.Update(cash)
		}, actor)
}
