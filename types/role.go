package types

// Role is the view a signed-in user gets. The global role is detected
// once per session; the per-course role is re-derived each time a
// course is opened and may differ from the global one.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleUnknown Role = "unknown"
)

// ParseRole maps a stored role name back onto a Role, defaulting to
// unknown for anything unrecognized (e.g. a corrupted dotfile).
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return Role(s)
	}
	return RoleUnknown
}

// CanTeach reports whether the role grants teacher-level actions.
// Admins hold every teacher capability.
func (r Role) CanTeach() bool {
	return r == RoleTeacher || r == RoleAdmin
}
