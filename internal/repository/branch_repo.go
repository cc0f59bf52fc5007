package repository

import (
	"go-backoffice-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchRepository interface {
	FindAll() ([]model.Branch, error)
	FindByCode(code string) (*model.Branch, error)
	Create(branch *model.Branch) error
	Update(branch *model.Branch) error
	// EffectiveCodesForUser resolves the branch codes a user is assigned
	// to, requiring the user, the branch and the assignment row to all be
	// active (three-way AND).
	EffectiveCodesForUser(userID uuid.UUID) ([]string, error)
}

type branchRepo struct {
	db *gorm.DB
}

func NewBranchRepo(db *gorm.DB) BranchRepository {
	return &branchRepo{db}
}

func (r *branchRepo) FindAll() ([]model.Branch, error) {
	var branches []model.Branch
	if err := r.db.Order("code").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *branchRepo) FindByCode(code string) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.Where("code = ?", code).First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepo) Create(branch *model.Branch) error {
	return r.db.Create(branch).Error
}

func (r *branchRepo) Update(branch *model.Branch) error {
	return r.db.Save(branch).Error
}

func (r *branchRepo) EffectiveCodesForUser(userID uuid.UUID) ([]string, error) {
	var codes []string
	err := r.db.Model(&model.UserBranch{}).
		Select("user_branches.branch_code").
		Joins("JOIN branches ON branches.code = user_branches.branch_code").
		Joins("JOIN users ON users.id = user_branches.user_id").
		Where("user_branches.user_id = ?", userID).
		Where("user_branches.is_active = ?", true).
		Where("branches.is_active = ?", true).
		Where("users.is_active = ?", true).
		Pluck("user_branches.branch_code", &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}
