package entity

// Roles recognized by the platform. Tokens are issued by the external
// session provider; this service only verifies and gates on them.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleClient = "client"
)

// Actor is the resolved identity behind a request. It is passed explicitly
// into every operation that mutates state so nothing reads an ambient session.
type Actor struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

func (a Actor) IsStaff() bool {
	return a.Role == RoleAdmin || a.Role == RoleStaff
}
