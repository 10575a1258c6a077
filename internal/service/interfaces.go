package service

import (
	"context"
	"errors"

	"github.com/emirirr/terapi/internal/domain"
)

var (
	// ErrInvalidCredentials is returned for both an unknown serial
	// number and a wrong password. Callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid serial number or password")

	// ErrMissingField is returned when a registration field is empty.
	ErrMissingField = errors.New("all fields are required")

	// ErrSessionActive is returned when starting a session while one is
	// already running.
	ErrSessionActive = errors.New("a session is already running")
)

// RegisterInput carries the registration form fields. Role defaults to
// domain.RoleUser when empty.
type RegisterInput struct {
	Name         string
	Surname      string
	SerialNumber string
	Password     string
	Role         domain.Role
}

type AuthService interface {
	// Register creates a new user with a hashed password. Returns
	// repository.ErrDuplicateSerial when the serial number is taken.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Authenticate verifies a serial/password pair. The returned user
	// carries no password digest.
	Authenticate(ctx context.Context, serialNumber, password string) (*domain.User, error)

	// ListUsers returns all users, ordered by id, with digests stripped.
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

type HistoryService interface {
	Append(ctx context.Context, rec *domain.SessionRecord) (*domain.SessionRecord, error)
	List(ctx context.Context) ([]*domain.SessionRecord, error)
	ListWithOwners(ctx context.Context) ([]*domain.OwnedSessionRecord, error)
}
