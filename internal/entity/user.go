package entity

import (
	"errors"
	"time"
)

// User is a platform account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleClient:
		return true
	}
	return false
}

func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if !IsValidRole(u.Role) {
		return errors.New("role must be admin, staff or client")
	}
	return nil
}
