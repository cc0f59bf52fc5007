package service

import (
	"errors"
	"fmt"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrEmailExists = errors.New("email already exists")
	ErrUnknownRole = errors.New("unknown role")
)

type UserService interface {
	CreateUser(req *CreateUserRequest, actor Actor) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor Actor) (*model.User, error)
	// DeactivateUser soft-deletes: users are never hard-deleted.
	DeactivateUser(userID uuid.UUID, actor Actor) error
	SetBranchAssignments(userID uuid.UUID, req *BranchAssignmentRequest, actor Actor) (*model.User, error)
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number"`
	Role        string  `json:"role" validate:"required,role_code"`
	HomeBranch  *string `json:"home_branch"`
}

type UpdateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number"`
	Role        string  `json:"role" validate:"required,role_code"`
	HomeBranch  *string `json:"home_branch"`
	IsActive    *bool   `json:"is_active"`
}

type BranchAssignmentRequest struct {
	// BranchCodes become active assignments; existing rows not in the
	// list are dropped
	BranchCodes []string `json:"branch_codes"`
}

type userService struct {
	userRepo repository.UserRepository
	audit    AuditService
}

func NewUserService(userRepo repository.UserRepository, audit AuditService) UserService {
	return &userService{userRepo: userRepo, audit: audit}
}

func (s *userService) CreateUser(req *CreateUserRequest, actor Actor) (*model.User, error) {
	// 1. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Check if email already exists
	existing, _ := s.userRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrEmailExists
	}

	user := &model.User{
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Role:        model.Role(req.Role),
		HomeBranch:  req.HomeBranch,
		IsActive:    true,
	}
	user.ID = uuid.New()
	user.CreatedBy = actor.ID
	user.UpdatedBy = actor.ID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	err := s.audit.InsertAudited(model.PageUsers, user.ID.String(),
		func() error { return s.userRepo.Create(user) }, user.ToResponse(), actor)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor Actor) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	// Email change must not collide with another account
	if req.Email != user.Email {
		if other, _ := s.userRepo.FindByEmail(req.Email); other != nil {
			return nil, ErrEmailExists
		}
	}

	before := user.ToResponse()

	user.Email = req.Email
	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	user.Role = model.Role(req.Role)
	user.HomeBranch = req.HomeBranch
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}
	user.UpdatedBy = actor.ID

	err = s.audit.UpdateAudited(model.PageUsers, user.ID.String(),
		func() (interface{}, error) { return before, nil },
		func() error { return s.userRepo.Update(user) },
		user.ToResponse(), actor)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeactivateUser(userID uuid.UUID, actor Actor) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	before := user.ToResponse()

	return s.audit.SoftDeleteAudited(model.PageUsers, userID.String(),
		func() (interface{}, error) { return before, nil },
		func() error { return s.userRepo.Deactivate(userID, actor.ID) },
		actor)
}

func (s *userService) SetBranchAssignments(userID uuid.UUID, req *BranchAssignmentRequest, actor Actor) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	before := user.ToResponse()

	assignments := make([]model.UserBranch, 0, len(req.BranchCodes))
	for _, code := range req.BranchCodes {
		assignments = append(assignments, model.UserBranch{
			UserID:     userID,
			BranchCode: code,
			IsActive:   true,
		})
	}

	err = s.audit.UpdateAudited(model.PageUsers, userID.String(),
		func() (interface{}, error) { return before, nil },
		func() error { return s.userRepo.ReplaceBranches(userID, assignments) },
		req.BranchCodes, actor)
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(userID)
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}
