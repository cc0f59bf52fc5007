package service

import (
	"testing"

	"go-backoffice-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePermissionRepo serves canned rows and counts reads, so tests can
// assert on cache behaviour.
type fakePermissionRepo struct {
	pageRows []model.PagePermission
	crudRows []model.CrudPermission

	pageReads int
	crudReads int
	upserts   int
}

func (f *fakePermissionRepo) FindPageRowsByRole(role model.Role) ([]model.PagePermission, error) {
	f.pageReads++
	var out []model.PagePermission
	for _, r := range f.pageRows {
		if r.Role == role {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePermissionRepo) FindCrudRowsByRole(role model.Role) ([]model.CrudPermission, error) {
	f.crudReads++
	var out []model.CrudPermission
	for _, r := range f.crudRows {
		if r.Role == role {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePermissionRepo) FindAllPageRows() ([]model.PagePermission, error) {
	return f.pageRows, nil
}

func (f *fakePermissionRepo) FindAllCrudRows() ([]model.CrudPermission, error) {
	return f.crudRows, nil
}

func (f *fakePermissionRepo) UpsertPageRow(row *model.PagePermission) error {
	f.upserts++
	f.pageRows = append(f.pageRows, *row)
	return nil
}

func (f *fakePermissionRepo) UpsertCrudRow(row *model.CrudPermission) error {
	f.upserts++
	f.crudRows = append(f.crudRows, *row)
	return nil
}

func (f *fakePermissionRepo) SeedDefaults() error { return nil }

func TestCanAccessDeniesByDefault(t *testing.T) {
	repo := &fakePermissionRepo{}
	svc := NewPermissionService(repo)

	ok, err := svc.CanAccess(model.RoleStaff, model.PageUsers)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanAccessAllowedRow(t *testing.T) {
	repo := &fakePermissionRepo{
		pageRows: []model.PagePermission{
			{Role: model.RoleFinance, Page: model.PageBulkPayments, Column: model.WildcardColumn, Allowed: true},
		},
	}
	svc := NewPermissionService(repo)

	ok, err := svc.CanAccess(model.RoleFinance, model.PageBulkPayments)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanAccessSuperAdminBypassesRows(t *testing.T) {
	repo := &fakePermissionRepo{}
	svc := NewPermissionService(repo)

	ok, err := svc.CanAccess(model.RoleSuperAdmin, model.PageBulkPayments)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, repo.pageReads, "super admin must not hit the repository")
}

func TestCanAccessDashboardAlwaysAllowed(t *testing.T) {
	svc := NewPermissionService(&fakePermissionRepo{})

	for _, role := range model.AllRoles {
		ok, err := svc.CanAccess(role, model.PageDashboard)
		require.NoError(t, err)
		assert.True(t, ok, "role %s", role)
	}
}

func TestCanViewColumnExactAndWildcard(t *testing.T) {
	repo := &fakePermissionRepo{
		pageRows: []model.PagePermission{
			{Role: model.RoleStaff, Page: model.PagePurchaseOrders, Column: "po_number", Allowed: true},
			{Role: model.RoleFinance, Page: model.PagePurchaseOrders, Column: model.WildcardColumn, Allowed: true},
		},
	}
	svc := NewPermissionService(repo)

	ok, err := svc.CanViewColumn(model.RoleStaff, model.PagePurchaseOrders, "po_number")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanViewColumn(model.RoleStaff, model.PagePurchaseOrders, "total_amount")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CanViewColumn(model.RoleFinance, model.PagePurchaseOrders, "total_amount")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanViewColumnUnknownColumnDeniedEvenForAdmin(t *testing.T) {
	repo := &fakePermissionRepo{
		pageRows: []model.PagePermission{
			{Role: model.RoleAdmin, Page: model.PagePurchaseOrders, Column: "po_number", Allowed: true},
		},
	}
	svc := NewPermissionService(repo)

	ok, err := svc.CanViewColumn(model.RoleAdmin, model.PagePurchaseOrders, "no_such_column")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVisibleColumnsPreservesOrder(t *testing.T) {
	repo := &fakePermissionRepo{
		pageRows: []model.PagePermission{
			{Role: model.RoleStaff, Page: model.PagePurchaseOrders, Column: "status", Allowed: true},
			{Role: model.RoleStaff, Page: model.PagePurchaseOrders, Column: "po_number", Allowed: true},
		},
	}
	svc := NewPermissionService(repo)

	cols, err := svc.VisibleColumns(model.RoleStaff, model.PagePurchaseOrders, model.PurchaseOrderColumns)
	require.NoError(t, err)
	assert.Equal(t, []string{"po_number", "status"}, cols)
}

func TestVisibleColumnsSuperAdminSeesEverything(t *testing.T) {
	svc := NewPermissionService(&fakePermissionRepo{})

	cols, err := svc.VisibleColumns(model.RoleSuperAdmin, model.PagePurchaseOrders, model.PurchaseOrderColumns)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseOrderColumns, cols)
}

func TestCanDoResolvesActionRows(t *testing.T) {
	repo := &fakePermissionRepo{
		crudRows: []model.CrudPermission{
			{Role: model.RoleFinance, Page: model.PageBulkPayments, Action: model.ActionCreate, Allowed: true},
			{Role: model.RoleFinance, Page: model.PageBulkPayments, Action: model.ActionDelete, Allowed: false},
		},
	}
	svc := NewPermissionService(repo)

	ok, err := svc.CanDo(model.RoleFinance, model.PageBulkPayments, model.ActionCreate)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanDo(model.RoleFinance, model.PageBulkPayments, model.ActionDelete)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPermissionCacheServesRepeatReads(t *testing.T) {
	repo := &fakePermissionRepo{
		pageRows: []model.PagePermission{
			{Role: model.RoleStaff, Page: model.PagePurchaseOrders, Column: "po_number", Allowed: true},
		},
	}
	svc := NewPermissionService(repo)

	for i := 0; i < 5; i++ {
		_, err := svc.CanAccess(model.RoleStaff, model.PagePurchaseOrders)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, repo.pageReads)
	assert.Equal(t, 1, repo.crudReads)
}

func TestPermissionWriteInvalidatesCache(t *testing.T) {
	repo := &fakePermissionRepo{}
	svc := NewPermissionService(repo)

	ok, err := svc.CanAccess(model.RoleStaff, model.PagePurchaseOrders)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 1, repo.pageReads)

	err = svc.SetPagePermission(&model.PagePermission{
		Role:    model.RoleStaff,
		Page:    model.PagePurchaseOrders,
		Column:  model.WildcardColumn,
		Allowed: true,
	})
	require.NoError(t, err)

	ok, err = svc.CanAccess(model.RoleStaff, model.PagePurchaseOrders)
	require.NoError(t, err)
	assert.True(t, ok, "new row must be visible right after the write")
	assert.Equal(t, 2, repo.pageReads, "write must force a reload")
}

func TestSetPagePermissionRejectsUnknownRole(t *testing.T) {
	svc := NewPermissionService(&fakePermissionRepo{})

	err := svc.SetPagePermission(&model.PagePermission{
		Role:    "owner",
		Page:    model.PageUsers,
		Allowed: true,
	})
	assert.Error(t, err)
}

func TestSetPagePermissionDefaultsColumnToWildcard(t *testing.T) {
	repo := &fakePermissionRepo{}
	svc := NewPermissionService(repo)

	row := &model.PagePermission{
		Role:    model.RoleFinance,
		Page:    model.PageSuppliers,
		Allowed: true,
	}
	require.NoError(t, svc.SetPagePermission(row))
	assert.Equal(t, model.WildcardColumn, row.Column)
}
