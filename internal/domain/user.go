package domain

import "time"

// User is an operator account identified by a device serial number.
// PasswordDigest holds a bcrypt hash; the clear password is never stored.
type User struct {
	ID             int64
	Name           string
	Surname        string
	SerialNumber   string
	PasswordDigest string
	Role           Role
	CreatedAt      time.Time
}

// FullName returns "Name Surname" for display.
func (u *User) FullName() string {
	return u.Name + " " + u.Surname
}

// IsAdmin reports whether the user has the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
