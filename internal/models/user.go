package models

import "github.com/google/uuid"

// User is a chat account. Password is the opaque stored credential, compared
// by equality on login and self-deletion; it travels in snapshots but is
// stripped from API responses via Sanitized.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"password,omitempty"`
	Email    string    `json:"email"`
	Roles    RoleSet   `json:"roles"`
}

// Sanitized returns a copy safe to hand to clients.
func (u *User) Sanitized() User {
	out := *u
	out.Password = ""
	return out
}
