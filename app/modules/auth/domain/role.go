package authdomain

// Role represents a caller's role for authorization purposes.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleAdmin:
		return true
	default:
		return false
	}
}

// Allows reports whether a caller holding r may access a resource that
// requires the given role. Admins may access member resources.
func (r Role) Allows(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}
