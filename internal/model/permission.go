package model

// WildcardColumn grants every column of a page in a PagePermission row.
const WildcardColumn = "*"

// PageDashboard is always accessible regardless of stored permission rows.
const PageDashboard = "dashboard"

// Known page identifiers (permission scoping keys)
const (
	PageUsers          = "users"
	PageBranches       = "branches"
	PageSuppliers      = "suppliers"
	PagePaymentTerms   = "payment_terms"
	PagePurchaseOrders = "purchase_orders"
	PageCashRequests   = "cash_requests"
	PageBulkPayments   = "bulk_payments"
	PageAuditLogs      = "audit_logs"
)

// PagePermission is a page/column visibility row: (role, page, column,
// allowed). Column may be WildcardColumn to grant all columns of the page.
// Absence of a matching row means deny.
type PagePermission struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Role    Role   `gorm:"type:varchar(20);not null;index:idx_page_perm_role_page" json:"role" validate:"required"`
	Page    string `gorm:"type:varchar(50);not null;index:idx_page_perm_role_page" json:"page" validate:"required"`
	Column  string `gorm:"type:varchar(50);not null;default:'*'" json:"column"`
	Allowed bool   `gorm:"default:true" json:"allowed"`
}

func (PagePermission) TableName() string {
	return "page_permissions"
}

// CrudAction is a per-action capability on a page.
type CrudAction string

const (
	ActionCreate CrudAction = "create"
	ActionRead   CrudAction = "read"
	ActionUpdate CrudAction = "update"
	ActionDelete CrudAction = "delete"
)

// CrudPermission is a per-action capability row: (role, page, action,
// allowed). This table overlaps with page_permissions (page gate vs action
// gate) but the two are kept separate; see DESIGN.md.
type CrudPermission struct {
	ID      uint       `gorm:"primaryKey" json:"id"`
	Role    Role       `gorm:"type:varchar(20);not null;index:idx_crud_perm_role_page" json:"role" validate:"required"`
	Page    string     `gorm:"type:varchar(50);not null;index:idx_crud_perm_role_page" json:"page" validate:"required"`
	Action  CrudAction `gorm:"type:varchar(10);not null" json:"action" validate:"required,oneof=create read update delete"`
	Allowed bool       `gorm:"default:true" json:"allowed"`
}

func (CrudPermission) TableName() string {
	return "crud_permissions"
}

// DefaultPagePermissions is the permission matrix seeded at first boot.
// super_admin is intentionally absent: it bypasses the store entirely.
var DefaultPagePermissions = []PagePermission{
	// admin: every page, every column
	{Role: RoleAdmin, Page: PageUsers, Column: WildcardColumn, Allowed: true},
	{Role: RoleAdmin, Page: PageBranches, Column: WildcardColumn, Allowed: true},
	{Role: RoleAdmin, Page: PageSuppliers, Column: WildcardColumn, Allowed: true},
	{Role: RoleAdmin, Page: PagePaymentTerms, Column: WildcardColumn, Allowed: true},
	{Role: RoleAdmin, Page: PagePurchaseOrders, Column: WildcardColumn, Allowed: true},
	{Role: RoleAdmin, Page: PageCashRequests, Column: WildcardColumn, Allowed: true},
	{Role: RoleAdmin, Page: PageBulkPayments, Column: WildcardColumn, Allowed: true},
	{Role: RoleAdmin, Page: PageAuditLogs, Column: WildcardColumn, Allowed: true},

	// finance: money-facing pages
	{Role: RoleFinance, Page: PagePurchaseOrders, Column: WildcardColumn, Allowed: true},
	{Role: RoleFinance, Page: PageCashRequests, Column: WildcardColumn, Allowed: true},
	{Role: RoleFinance, Page: PageBulkPayments, Column: WildcardColumn, Allowed: true},
	{Role: RoleFinance, Page: PageSuppliers, Column: WildcardColumn, Allowed: true},
	{Role: RoleFinance, Page: PagePaymentTerms, Column: WildcardColumn, Allowed: true},

	// pic_branch: operational pages, amounts hidden on purchase orders
	{Role: RolePICBranch, Page: PagePurchaseOrders, Column: "po_number", Allowed: true},
	{Role: RolePICBranch, Page: PagePurchaseOrders, Column: "supplier_name", Allowed: true},
	{Role: RolePICBranch, Page: PagePurchaseOrders, Column: "branch_code", Allowed: true},
	{Role: RolePICBranch, Page: PagePurchaseOrders, Column: "status", Allowed: true},
	{Role: RolePICBranch, Page: PagePurchaseOrders, Column: "due_date", Allowed: true},
	{Role: RolePICBranch, Page: PageCashRequests, Column: WildcardColumn, Allowed: true},

	// staff: purchase order list only, minimal columns
	{Role: RoleStaff, Page: PagePurchaseOrders, Column: "po_number", Allowed: true},
	{Role: RoleStaff, Page: PagePurchaseOrders, Column: "status", Allowed: true},
}

// DefaultCrudPermissions seeds the per-action table.
var DefaultCrudPermissions = []CrudPermission{
	{Role: RoleAdmin, Page: PageUsers, Action: ActionCreate, Allowed: true},
	{Role: RoleAdmin, Page: PageUsers, Action: ActionRead, Allowed: true},
	{Role: RoleAdmin, Page: PageUsers, Action: ActionUpdate, Allowed: true},
	{Role: RoleAdmin, Page: PageUsers, Action: ActionDelete, Allowed: true},
	{Role: RoleAdmin, Page: PageBranches, Action: ActionCreate, Allowed: true},
	{Role: RoleAdmin, Page: PageBranches, Action: ActionRead, Allowed: true},
	{Role: RoleAdmin, Page: PageBranches, Action: ActionUpdate, Allowed: true},
	{Role: RoleAdmin, Page: PageBranches, Action: ActionDelete, Allowed: true},
	{Role: RoleAdmin, Page: PageSuppliers, Action: ActionCreate, Allowed: true},
	{Role: RoleAdmin, Page: PageSuppliers, Action: ActionRead, Allowed: true},
	{Role: RoleAdmin, Page: PageSuppliers, Action: ActionUpdate, Allowed: true},
	{Role: RoleAdmin, Page: PageSuppliers, Action: ActionDelete, Allowed: true},
	{Role: RoleAdmin, Page: PagePaymentTerms, Action: ActionCreate, Allowed: true},
	{Role: RoleAdmin, Page: PagePaymentTerms, Action: ActionRead, Allowed: true},
	{Role: RoleAdmin, Page: PagePaymentTerms, Action: ActionUpdate, Allowed: true},
	{Role: RoleAdmin, Page: PagePurchaseOrders, Action: ActionCreate, Allowed: true},
	{Role: RoleAdmin, Page: PagePurchaseOrders, Action: ActionRead, Allowed: true},
	{Role: RoleAdmin, Page: PagePurchaseOrders, Action: ActionUpdate, Allowed: true},
	{Role: RoleAdmin, Page: PagePurchaseOrders, Action: ActionDelete, Allowed: true},
	{Role: RoleAdmin, Page: PageCashRequests, Action: ActionCreate, Allowed: true},
	{Role: RoleAdmin, Page: PageCashRequests, Action: ActionRead, Allowed: true},
	{Role: RoleAdmin, Page: PageCashRequests, Action: ActionUpdate, Allowed: true},
	{Role: RoleAdmin, Page: PageCashRequests, Action: ActionDelete, Allowed: true},
	{Role: RoleAdmin, Page: PageBulkPayments, Action: ActionRead, Allowed: true},
	{Role: RoleAdmin, Page: PageAuditLogs, Action: ActionRead, Allowed: true},

	{Role: RoleFinance, Page: PagePurchaseOrders, Action: ActionRead, Allowed: true},
	{Role: RoleFinance, Page: PagePurchaseOrders, Action: ActionUpdate, Allowed: true},
	{Role: RoleFinance, Page: PageCashRequests, Action: ActionRead, Allowed: true},
	{Role: RoleFinance, Page: PageCashRequests, Action: ActionUpdate, Allowed: true},
	{Role: RoleFinance, Page: PageBulkPayments, Action: ActionCreate, Allowed: true},
	{Role: RoleFinance, Page: PageBulkPayments, Action: ActionRead, Allowed: true},
	{Role: RoleFinance, Page: PageBulkPayments, Action: ActionDelete, Allowed: true},
	{Role: RoleFinance, Page: PageSuppliers, Action: ActionRead, Allowed: true},
	{Role: RoleFinance, Page: PagePaymentTerms, Action: ActionRead, Allowed: true},

	{Role: RolePICBranch, Page: PagePurchaseOrders, Action: ActionCreate, Allowed: true},
	{Role: RolePICBranch, Page: PagePurchaseOrders, Action: ActionRead, Allowed: true},
	{Role: RolePICBranch, Page: PagePurchaseOrders, Action: ActionUpdate, Allowed: true},
	{Role: RolePICBranch, Page: PageCashRequests, Action: ActionCreate, Allowed: true},
	{Role: RolePICBranch, Page: PageCashRequests, Action: ActionRead, Allowed: true},
	{Role: RolePICBranch, Page: PageCashRequests, Action: ActionUpdate, Allowed: true},

	{Role: RoleStaff, Page: PagePurchaseOrders, Action: ActionRead, Allowed: true},
}
