package repository

import (
	"go-backoffice-ws/internal/model"

	"gorm.io/gorm"
)

type BulkPaymentRepository interface {
	FindAll() ([]model.BulkPayment, error)
	FindByReference(reference string) (*model.BulkPayment, error)
	Create(bp *model.BulkPayment) error
}

type bulkPaymentRepo struct {
	db *gorm.DB
}

func NewBulkPaymentRepo(db *gorm.DB) BulkPaymentRepository {
	return &bulkPaymentRepo{db}
}

func (r *bulkPaymentRepo) FindAll() ([]model.BulkPayment, error) {
	var payments []model.BulkPayment
	if err := r.db.Where("is_active = ?", true).Order("paid_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *bulkPaymentRepo) FindByReference(reference string) (*model.BulkPayment, error) {
	var bp model.BulkPayment
	if err := r.db.Where("reference = ?", reference).First(&bp).Error; err != nil {
		return nil, err
	}
	return &bp, nil
}

func (r *bulkPaymentRepo) Create(bp *model.BulkPayment) error {
	return r.db.Create(bp).Error
}
