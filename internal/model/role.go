package model

// Role is the fixed role enumeration. Roles are not stored in their own
// table; permission rows and JWT claims reference these codes directly.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleFinance    Role = "finance"
	RolePICBranch  Role = "pic_branch"
	RoleStaff      Role = "staff"
	RoleGuest      Role = "guest"
)

// AllRoles lists every valid role code.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleAdmin,
	RoleFinance,
	RolePICBranch,
	RoleStaff,
	RoleGuest,
}

// IsValid reports whether r is one of the known role codes.
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsAdminTier reports whether the role bypasses branch filtering and may
// force-release record locks.
func (r Role) IsAdminTier() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}
