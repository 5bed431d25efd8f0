package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Principal is the resolved identity attached to a single request. It is an
// immutable value produced once by session resolution and threaded through
// every downstream check; the zero value is the anonymous principal.
type Principal struct {
	UserID string
	Role   string
}

// Anonymous returns the least-privileged principal.
func Anonymous() Principal { return Principal{} }

func (p Principal) IsAnonymous() bool { return p.UserID == "" }

func (p Principal) IsAdmin() bool { return !p.IsAnonymous() && p.Role == RoleAdmin }
