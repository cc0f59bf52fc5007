package service

import (
	"encoding/csv"
	"strings"
	"testing"

	"go-backoffice-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExportService(poRepo *fakePurchaseOrderRepo, permRepo *fakePermissionRepo) ExportService {
	permissions := NewPermissionService(permRepo)
	orders := NewPurchaseOrderService(poRepo, newFakeSupplierRepo(), NewAuditService(&fakeAuditLogRepo{}, nil))
	return NewExportService(permissions, orders)
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportLimitsColumnsToRole(t *testing.T) {
	po := payableOrder("PO-001", 100, 40)
	permRepo := &fakePermissionRepo{
		pageRows: []model.PagePermission{
			{Role: model.RoleStaff, Page: model.PagePurchaseOrders, Column: "po_number", Allowed: true},
			{Role: model.RoleStaff, Page: model.PagePurchaseOrders, Column: "status", Allowed: true},
		},
	}
	svc := newTestExportService(newFakePurchaseOrderRepo(po), permRepo)

	data, err := svc.ExportPurchaseOrdersCSV(model.RoleStaff, BranchScope{All: true})
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"po_number", "status"}, rows[0])
	assert.Equal(t, []string{"PO-001", "delivered"}, rows[1])
	assert.NotContains(t, string(data), "100.00", "hidden amount column must not leak")
}

func TestExportSuperAdminGetsAllColumns(t *testing.T) {
	po := payableOrder("PO-001", 100, 40)
	svc := newTestExportService(newFakePurchaseOrderRepo(po), &fakePermissionRepo{})

	data, err := svc.ExportPurchaseOrdersCSV(model.RoleSuperAdmin, BranchScope{All: true})
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, model.PurchaseOrderColumns, rows[0])
	assert.Contains(t, rows[1], "100.00")
}

func TestExportDueDateColumnFallsBackToNote(t *testing.T) {
	po := payableOrder("PO-001", 100, 0)
	po.DueDateNote = "payment term not configured"
	svc := newTestExportService(newFakePurchaseOrderRepo(po), &fakePermissionRepo{})

	data, err := svc.ExportPurchaseOrdersCSV(model.RoleSuperAdmin, BranchScope{All: true})
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 2)
	idx := -1
	for i, col := range rows[0] {
		if col == "due_date" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "payment term not configured", rows[1][idx])
}

func TestExportRespectsBranchScope(t *testing.T) {
	jkt := payableOrder("PO-001", 100, 0)
	bdg := payableOrder("PO-002", 200, 0)
	bdg.BranchCode = "BDG-02"
	svc := newTestExportService(newFakePurchaseOrderRepo(jkt, bdg), &fakePermissionRepo{})

	data, err := svc.ExportPurchaseOrdersCSV(model.RoleSuperAdmin, BranchScope{Codes: []string{"BDG-02"}})
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1], "PO-002")
}

func TestExportEmptyScopeOnlyHeader(t *testing.T) {
	po := payableOrder("PO-001", 100, 0)
	svc := newTestExportService(newFakePurchaseOrderRepo(po), &fakePermissionRepo{})

	data, err := svc.ExportPurchaseOrdersCSV(model.RoleSuperAdmin, BranchScope{Codes: []string{}})
	require.NoError(t, err)

	rows := parseCSV(t, data)
	assert.Len(t, rows, 1)
}
