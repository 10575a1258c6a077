package repository

import (
	"context"

	"github.com/emirirr/terapi/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetBySerial(ctx context.Context, serialNumber string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// HistoryRepo is the append-only therapy session log. There are no
// update or delete operations by design.
type HistoryRepo interface {
	Append(ctx context.Context, r *domain.SessionRecord) error
	List(ctx context.Context) ([]*domain.SessionRecord, error)
	ListWithOwners(ctx context.Context) ([]*domain.OwnedSessionRecord, error)
}
