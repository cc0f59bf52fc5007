package service

import (
	"fmt"
	"sync"
	"time"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/pkg/validator"
)

// permissionCacheTTL is how long a role's permission rows stay cached
// before the next read goes back to the database.
const permissionCacheTTL = 5 * time.Minute

type PermissionService interface {
	// CanAccess reports whether the role may open the page at all.
	// Deny by default; the dashboard and super_admin always pass.
	CanAccess(role model.Role, page string) (bool, error)
	// CanViewColumn reports whether the role may see a single column of a
	// page. A wildcard row grants every column.
	CanViewColumn(role model.Role, page, column string) (bool, error)
	// VisibleColumns filters allColumns down to the visible subset,
	// preserving order.
	VisibleColumns(role model.Role, page string, allColumns []string) ([]string, error)
	// CanDo reports whether the role may perform a CRUD action on a page,
	// resolved against the crud_permissions table.
	CanDo(role model.Role, page string, action model.CrudAction) (bool, error)

	SetPagePermission(row *model.PagePermission) error
	SetCrudPermission(row *model.CrudPermission) error
	ListPagePermissions() ([]model.PagePermission, error)
	ListCrudPermissions() ([]model.CrudPermission, error)
}

// roleCacheEntry holds both permission tables for one role. The cache is
// keyed by role only, not by page.
type roleCacheEntry struct {
	pageRows []model.PagePermission
	crudRows []model.CrudPermission
	loadedAt time.Time
}

type permissionService struct {
	repo repository.PermissionRepository

	mu    sync.Mutex
	cache map[model.Role]*roleCacheEntry
}

func NewPermissionService(repo repository.PermissionRepository) PermissionService {
	return &permissionService{
		repo:  repo,
		cache: make(map[model.Role]*roleCacheEntry),
	}
}

// load returns the cached rows for a role, hitting the database when the
// entry is cold or older than permissionCacheTTL.
func (s *permissionService) load(role model.Role) (*roleCacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.cache[role]; ok && time.Since(entry.loadedAt) < permissionCacheTTL {
		return entry, nil
	}

	pageRows, err := s.repo.FindPageRowsByRole(role)
	if err != nil {
		return nil, err
	}
	crudRows, err := s.repo.FindCrudRowsByRole(role)
	if err != nil {
		return nil, err
	}

	entry := &roleCacheEntry{
		pageRows: pageRows,
		crudRows: crudRows,
		loadedAt: time.Now(),
	}
	s.cache[role] = entry
	return entry, nil
}

// invalidate drops the whole cache. Any permission write clears everything
// rather than surgically evicting one role.
func (s *permissionService) invalidate() {
	s.mu.Lock()
	s.cache = make(map[model.Role]*roleCacheEntry)
	s.mu.Unlock()
}

func (s *permissionService) CanAccess(role model.Role, page string) (bool, error) {
	if role == model.RoleSuperAdmin || page == model.PageDashboard {
		return true, nil
	}
	entry, err := s.load(role)
	if err != nil {
		return false, err
	}
	for _, row := range entry.pageRows {
		if row.Page == page && row.Allowed {
			return true, nil
		}
	}
	return false, nil
}

func (s *permissionService) CanViewColumn(role model.Role, page, column string) (bool, error) {
	if role == model.RoleSuperAdmin || page == model.PageDashboard {
		return true, nil
	}
	entry, err := s.load(role)
	if err != nil {
		return false, err
	}
	for _, row := range entry.pageRows {
		if row.Page != page || !row.Allowed {
			continue
		}
		if row.Column == model.WildcardColumn || row.Column == column {
			return true, nil
		}
	}
	return false, nil
}

func (s *permissionService) VisibleColumns(role model.Role, page string, allColumns []string) ([]string, error) {
	if role == model.RoleSuperAdmin {
		return allColumns, nil
	}
	entry, err := s.load(role)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(entry.pageRows))
	wildcard := false
	for _, row := range entry.pageRows {
		if row.Page != page || !row.Allowed {
			continue
		}
		if row.Column == model.WildcardColumn {
			wildcard = true
			break
		}
		allowed[row.Column] = true
	}
	if wildcard {
		return allColumns, nil
	}

	visible := make([]string, 0, len(allColumns))
	for _, col := range allColumns {
		if allowed[col] {
			visible = append(visible, col)
		}
	}
	return visible, nil
}

func (s *permissionService) CanDo(role model.Role, page string, action model.CrudAction) (bool, error) {
	if role == model.RoleSuperAdmin {
		return true, nil
	}
	if page == model.PageDashboard && action == model.ActionRead {
		return true, nil
	}
	entry, err := s.load(role)
	if err != nil {
		return false, err
	}
	for _, row := range entry.crudRows {
		if row.Page == page && row.Action == action && row.Allowed {
			return true, nil
		}
	}
	return false, nil
}

func (s *permissionService) SetPagePermission(row *model.PagePermission) error {
	if errs := validator.ValidateStruct(row); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if !row.Role.IsValid() {
		return fmt.Errorf("unknown role %q", row.Role)
	}
	if row.Column == "" {
		row.Column = model.WildcardColumn
	}
	if err := s.repo.UpsertPageRow(row); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *permissionService) SetCrudPermission(row *model.CrudPermission) error {
	if errs := validator.ValidateStruct(row); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if !row.Role.IsValid() {
		return fmt.Errorf("unknown role %q", row.Role)
	}
	if err := s.repo.UpsertCrudRow(row); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *permissionService) ListPagePermissions() ([]model.PagePermission, error) {
	return s.repo.FindAllPageRows()
}

func (s *permissionService) ListCrudPermissions() ([]model.CrudPermission, error) {
	return s.repo.FindAllCrudRows()
}
