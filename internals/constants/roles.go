package constants

import "fmt"

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

const ErrOnlyAdminsCanAccess = "only admins can access %s"

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleUser,
		RoleAdmin,
		RoleSuperAdmin,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleSuperAdmin,
	}

	SuperAdminOnly = []string{
		RoleSuperAdmin,
	}
)

func IsValidRole(r string) bool {
	for _, x := range AllRoles {
		if x == r {
			return true
		}
	}
	return false
}
