package testutil

import (
	"time"

	"github.com/emirirr/terapi/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// UserOption customizes a test user.
type UserOption func(*domain.User)

// WithRole sets the user's role.
func WithRole(role domain.Role) UserOption {
	return func(u *domain.User) { u.Role = role }
}

// NewTestUser builds an unsaved user with a real bcrypt digest of the
// given password, so authentication tests exercise the production path.
// MinCost keeps the hashing fast.
func NewTestUser(name, surname, serial, password string, opts ...UserOption) *domain.User {
	digest, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &domain.User{
		Name:           name,
		Surname:        surname,
		SerialNumber:   serial,
		PasswordDigest: string(digest),
		Role:           domain.RoleUser,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// RecordOption customizes a test session record.
type RecordOption func(*domain.SessionRecord)

// WithTimestamp sets the record timestamp.
func WithTimestamp(ts time.Time) RecordOption {
	return func(r *domain.SessionRecord) { r.Timestamp = ts }
}

// WithOwner sets the record's owning user id.
func WithOwner(userID int64) RecordOption {
	return func(r *domain.SessionRecord) { r.UserID = &userID }
}

// NewTestRecord builds an unsaved completed chest-therapy record.
func NewTestRecord(durationSeconds int, status domain.SessionStatus, opts ...RecordOption) *domain.SessionRecord {
	r := &domain.SessionRecord{
		TherapyType:     domain.TherapyChest,
		Mode:            domain.ModeManual,
		DurationSeconds: durationSeconds,
		Status:          status,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
