package repository

import (
	"errors"

	"go-backoffice-ws/internal/model"

	"gorm.io/gorm"
)

type PermissionRepository interface {
	FindPageRowsByRole(role model.Role) ([]model.PagePermission, error)
	FindCrudRowsByRole(role model.Role) ([]model.CrudPermission, error)
	FindAllPageRows() ([]model.PagePermission, error)
	FindAllCrudRows() ([]model.CrudPermission, error)
	UpsertPageRow(row *model.PagePermission) error
	UpsertCrudRow(row *model.CrudPermission) error
	SeedDefaults() error
}

type permissionRepo struct {
	db *gorm.DB
}

func NewPermissionRepo(db *gorm.DB) PermissionRepository {
	return &permissionRepo{db}
}

func (r *permissionRepo) FindPageRowsByRole(role model.Role) ([]model.PagePermission, error) {
	var rows []model.PagePermission
	if err := r.db.Where("role = ?", role).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *permissionRepo) FindCrudRowsByRole(role model.Role) ([]model.CrudPermission, error) {
	var rows []model.CrudPermission
	if err := r.db.Where("role = ?", role).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *permissionRepo) FindAllPageRows() ([]model.PagePermission, error) {
	var rows []model.PagePermission
	if err := r.db.Order("role, page, \"column\"").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *permissionRepo) FindAllCrudRows() ([]model.CrudPermission, error) {
	var rows []model.CrudPermission
	if err := r.db.Order("role, page, action").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertPageRow updates the allowed flag of an existing (role, page,
// column) row or inserts a new one.
func (r *permissionRepo) UpsertPageRow(row *model.PagePermission) error {
	var existing model.PagePermission
	err := r.db.Where("role = ? AND page = ? AND \"column\" = ?", row.Role, row.Page, row.Column).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(row).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&existing).Update("allowed", row.Allowed).Error
}

func (r *permissionRepo) UpsertCrudRow(row *model.CrudPermission) error {
	var existing model.CrudPermission
	err := r.db.Where("role = ? AND page = ? AND action = ?", row.Role, row.Page, row.Action).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(row).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&existing).Update("allowed", row.Allowed).Error
}

// SeedDefaults creates the default permission matrix if missing
func (r *permissionRepo) SeedDefaults() error {
	for _, row := range model.DefaultPagePermissions {
		var existing model.PagePermission
		err := r.db.Where("role = ? AND page = ? AND \"column\" = ?", row.Role, row.Page, row.Column).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(&row).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	for _, row := range model.DefaultCrudPermissions {
		var existing model.CrudPermission
		err := r.db.Where("role = ? AND page = ? AND action = ?", row.Role, row.Page, row.Action).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(&row).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
