package domain

// UserRole enumerates supported account roles.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleStudent UserRole = "student"
	UserRoleAlumni  UserRole = "alumni"
)

// Valid reports whether the role is one of the supported values.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleStudent, UserRoleAlumni:
		return true
	}
	return false
}
