package models

// Role is the access level a membership grants within a project.
type Role string

const (
	RoleViewer Role = "VIEWER"
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

// roleRanks orders roles from least to most privileged. Every role's
// capabilities are a superset of the role below it.
var roleRanks = map[Role]int{
	RoleViewer: 0,
	RoleMember: 1,
	RoleAdmin:  2,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// AtLeast reports whether r grants at least the capabilities of required.
// Unknown roles rank below everything.
func (r Role) AtLeast(required Role) bool {
	return roleRanks[r] >= roleRanks[required] && r.Valid()
}
