package repository

import (
	"go-backoffice-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentTermRepository interface {
	FindAll() ([]model.PaymentTerm, error)
	FindByID(id uuid.UUID) (*model.PaymentTerm, error)
	Create(term *model.PaymentTerm) error
	Update(term *model.PaymentTerm) error
}

type paymentTermRepo struct {
	db *gorm.DB
}

func NewPaymentTermRepo(db *gorm.DB) PaymentTermRepository {
	return &paymentTermRepo{db}
}

func (r *paymentTermRepo) FindAll() ([]model.PaymentTerm, error) {
	var terms []model.PaymentTerm
	if err := r.db.Order("name").Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

func (r *paymentTermRepo) FindByID(id uuid.UUID) (*model.PaymentTerm, error) {
	var term model.PaymentTerm
	if err := r.db.First(&term, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *paymentTermRepo) Create(term *model.PaymentTerm) error {
	return r.db.Create(term).Error
}

func (r *paymentTermRepo) Update(term *model.PaymentTerm) error {
	return r.db.Save(term).Error
}
