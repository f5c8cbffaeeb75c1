package domain

// UserRole controls till-activity visibility: managers and compliance
// officers see all till activity, tellers only their own.
type UserRole string

const (
	RoleTeller     UserRole = "teller"
	RoleManager    UserRole = "manager"
	RoleCompliance UserRole = "compliance"
)

// CanViewAllTills reports whether the role sees activity beyond its own.
func (r UserRole) CanViewAllTills() bool {
	return r == RoleManager || r == RoleCompliance
}

// User is an operator of the system. Exists to supply the stable caller id
// and role the accounting core requires.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	BranchID     string   `json:"branchID"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
