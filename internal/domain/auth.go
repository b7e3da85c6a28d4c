package domain

import "time"

// Role tags which session slot a token was issued for.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is an issuable role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Session describes an issued session token.
type Session struct {
	Token     string
	Role      Role
	ExpiresAt time.Time
}
