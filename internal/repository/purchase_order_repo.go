package repository

import (
	"go-backoffice-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	LockStore
	FindByID(id uuid.UUID) (*model.PurchaseOrder, error)
	FindByPONumber(poNumber string) (*model.PurchaseOrder, error)
	FindByIDs(ids []uuid.UUID) ([]model.PurchaseOrder, error)
	FindByBulkRef(reference string) ([]model.PurchaseOrder, error)
	// FindAll returns active orders; branchCodes nil means no branch
	// filter (admin tier), an empty slice means no rows at all.
	FindAll(branchCodes []string) ([]model.PurchaseOrder, error)
	Create(po *model.PurchaseOrder) error
	Update(po *model.PurchaseOrder) error
}

type purchaseOrderRepo struct {
	lockStore
}

func NewPurchaseOrderRepo(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{lockStore{db: db, table: "purchase_orders"}}
}

func (r *purchaseOrderRepo) FindByID(id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := r.db.Preload("Supplier").Preload("Supplier.PaymentTerm").First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepo) FindByPONumber(poNumber string) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := r.db.Preload("Supplier").Where("po_number = ?", poNumber).First(&po).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepo) FindByIDs(ids []uuid.UUID) ([]model.PurchaseOrder, error) {
	var pos []model.PurchaseOrder
	if err := r.db.Where("id IN ?", ids).Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}

func (r *purchaseOrderRepo) FindByBulkRef(reference string) ([]model.PurchaseOrder, error) {
	var pos []model.PurchaseOrder
	if err := r.db.Where("bulk_payment_ref = ?", reference).Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}

func (r *purchaseOrderRepo) FindAll(branchCodes []string) ([]model.PurchaseOrder, error) {
	q := r.db.Preload("Supplier").Where("is_active = ?", true).Order("created_at DESC")
	if branchCodes != nil {
		q = q.Where("branch_code IN ?", branchCodes)
	}
	var pos []model.PurchaseOrder
	if err := q.Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}

func (r *purchaseOrderRepo) Create(po *model.PurchaseOrder) error {
	return r.db.Create(po).Error
}

func (r *purchaseOrderRepo) Update(po *model.PurchaseOrder) error {
	return r.db.Save(po).Error
}
