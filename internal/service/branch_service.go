package service

import (
	"errors"
	"fmt"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/pkg/validator"

	"github.com/google/uuid"
)

var ErrBranchCodeExists = errors.New("branch code already exists")

// BranchScope is the result of branch access resolution. All=true means
// "no filter, see everything" (admin tier). Otherwise Codes is the exact
// set of visible branch codes; an empty set means "see nothing", which is
// a different thing from "see everything" and must stay distinguishable.
type BranchScope struct {
	All   bool
	Codes []string
}

// FilterCodes converts the scope into the repositories' filter shape:
// nil = no filter, non-nil (possibly empty) slice = restrict to the set.
func (s BranchScope) FilterCodes() []string {
	if s.All {
		return nil
	}
	if s.Codes == nil {
		return []string{}
	}
	return s.Codes
}

// Contains reports whether the scope covers a branch code.
func (s BranchScope) Contains(code string) bool {
	if s.All {
		return true
	}
	for _, c := range s.Codes {
		if c == code {
			return true
		}
	}
	return false
}

type BranchService interface {
	// AllowedBranches resolves which branch codes a user may see.
	// Admin-tier roles bypass filtering entirely. Everyone else resolves
	// through the user_branches join; zero effective assignments means
	// the user sees no branch-scoped data at all, by design.
	AllowedBranches(userID uuid.UUID, role model.Role) (BranchScope, error)

	ListBranches() ([]model.Branch, error)
	CreateBranch(req *CreateBranchRequest, creatorID string) (*model.Branch, error)
	UpdateBranch(code string, req *UpdateBranchRequest, updaterID string) (*model.Branch, error)
}

type CreateBranchRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
	City string `json:"city"`
}

type UpdateBranchRequest struct {
	Name     string `json:"name" validate:"required"`
	City     string `json:"city"`
	IsActive *bool  `json:"is_active"`
}

type branchService struct {
	branchRepo repository.BranchRepository
}

func NewBranchService(branchRepo repository.BranchRepository) BranchService {
	return &branchService{branchRepo: branchRepo}
}

func (s *branchService) AllowedBranches(userID uuid.UUID, role model.Role) (BranchScope, error) {
	if role.IsAdminTier() {
		return BranchScope{All: true}, nil
	}
	codes, err := s.branchRepo.EffectiveCodesForUser(userID)
	if err != nil {
		return BranchScope{}, err
	}
	if codes == nil {
		codes = []string{}
	}
	return BranchScope{Codes: codes}, nil
}

func (s *branchService) ListBranches() ([]model.Branch, error) {
	return s.branchRepo.FindAll()
}

func (s *branchService) CreateBranch(req *CreateBranchRequest, creatorID string) (*model.Branch, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.branchRepo.FindByCode(req.Code)
	if existing != nil {
		return nil, ErrBranchCodeExists
	}

	branch := &model.Branch{
		Code:     req.Code,
		Name:     req.Name,
		City:     req.City,
		IsActive: true,
	}
	branch.CreatedBy = creatorID
	branch.UpdatedBy = creatorID

	if err := s.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *branchService) UpdateBranch(code string, req *UpdateBranchRequest, updaterID string) (*model.Branch, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	branch, err := s.branchRepo.FindByCode(code)
	if err != nil {
		return nil, err
	}

	branch.Name = req.Name
	branch.City = req.City
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}
	branch.UpdatedBy = updaterID

	if err := s.branchRepo.Update(branch); err != nil {
		return nil, err
	}
	return branch, nil
}
