package models

// RoleType defines the user role type
type RoleType string

const (
	RoleTeacher RoleType = "TEACHER"
	RoleStudent RoleType = "STUDENT"
)

// IsValid reports whether the role is one of the known variants
func (r RoleType) IsValid() bool {
	return r == RoleTeacher || r == RoleStudent
}
