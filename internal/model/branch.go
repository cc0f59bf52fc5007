package model

import "github.com/google/uuid"

// Branch is an operating location. Branch-scoped records reference the
// human-facing Code, not the row ID.
type Branch struct {
	BaseModel
	Code     string `gorm:"type:varchar(20);uniqueIndex;not null" json:"code" validate:"required"`
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	City     string `gorm:"type:varchar(100)" json:"city"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// UserBranch assigns a user to a branch. The assignment carries its own
// active flag: an assignment is effective only when the assignment, the
// branch and the user are all active at the same time.
type UserBranch struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	BranchCode string    `gorm:"type:varchar(20);not null;index" json:"branch_code"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
}

func (UserBranch) TableName() string {
	return "user_branches"
}
