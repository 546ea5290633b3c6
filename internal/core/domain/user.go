package domain

import "time"

// Roles form a closed set. Anything outside it is rejected at registration.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleSalesRep = "sales_rep"
)

// DefaultRole is assigned when a registration omits the role field.
const DefaultRole = RoleSalesRep

// ValidRole reports whether r belongs to the role enumeration.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSalesRep:
		return true
	}
	return false
}

// User models an account in the CRM. Username and email are unique
// (byte-exact, case-sensitive). PasswordHash never crosses the API boundary.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"-"`
	IsSuperuser  bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenPair is the access/refresh pair returned by register, login and
// refresh. It is derived on demand and never persisted.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
