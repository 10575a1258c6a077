package service

import (
	"context"
	"fmt"

	"github.com/emirirr/terapi/internal/domain"
	"github.com/emirirr/terapi/internal/repository"
)

type historyService struct {
	history repository.HistoryRepo
}

func NewHistoryService(history repository.HistoryRepo) HistoryService {
	return &historyService{history: history}
}

func (s *historyService) Append(ctx context.Context, rec *domain.SessionRecord) (*domain.SessionRecord, error) {
	if rec.DurationSeconds < 0 {
		return nil, fmt.Errorf("duration must be non-negative, got %d", rec.DurationSeconds)
	}
	if rec.Status != domain.StatusCompleted && rec.Status != domain.StatusStopped {
		return nil, fmt.Errorf("invalid session status %q", rec.Status)
	}
	if err := s.history.Append(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *historyService) List(ctx context.Context) ([]*domain.SessionRecord, error) {
	return s.history.List(ctx)
}

func (s *historyService) ListWithOwners(ctx context.Context) ([]*domain.OwnedSessionRecord, error) {
	return s.history.ListWithOwners(ctx)
}
