package repository

import (
	"go-backoffice-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CashRequestRepository interface {
	LockStore
	FindByID(id uuid.UUID) (*model.CashRequest, error)
	FindAll(branchCodes []string) ([]model.CashRequest, error)
	Create(req *model.CashRequest) error
	Update(req *model.CashRequest) error
}

type cashRequestRepo struct {
	lockStore
}

func NewCashRequestRepo(db *gorm.DB) CashRequestRepository {
	return &cashRequestRepo{lockStore{db: db, table: "cash_requests"}}
}

func (r *cashRequestRepo) FindByID(id uuid.UUID) (*model.CashRequest, error) {
	var req model.CashRequest
	if err := r.db.First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *cashRequestRepo) FindAll(branchCodes []string) ([]model.CashRequest, error) {
	q := r.db.Where("is_active = ?", true).Order("created_at DESC")
	if branchCodes != nil {
		q = q.Where("branch_code IN ?", branchCodes)
	}
	var reqs []model.CashRequest
	if err := q.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *cashRequestRepo) Create(req *model.CashRequest) error {
	return r.db.Create(req).Error
}

func (r *cashRequestRepo) Update(req *model.CashRequest) error {
	return r.db.Save(req).Error
}
