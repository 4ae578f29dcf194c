package user

// Action names a capability a caller may or may not hold. Route guards and
// view rendering both go through Can so the two can never disagree.
type Action string

const (
	ActionViewProducts   Action = "products.view"
	ActionManageProducts Action = "products.manage"
)

// Can reports whether the user holds the capability for the given action.
// Viewing is open to every authenticated user; managing requires admin.
func (u *User) Can(a Action) bool {
	if u == nil {
		return false
	}
	switch a {
	case ActionViewProducts:
		return true
	case ActionManageProducts:
		return u.IsAdmin
	}
	return false
}
