package rbac

// Role constants
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

func IsValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	}
	return false
}

// CanApprove reports whether a role may decide approval and closure gates.
func CanApprove(role string) bool {
	return role == RoleAdmin || role == RoleManager
}

// CanManageProjects reports whether a role may create or delete projects.
func CanManageProjects(role string) bool {
	return role == RoleAdmin || role == RoleManager
}
