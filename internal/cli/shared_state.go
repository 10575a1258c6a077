package cli

import (
	"github.com/emirirr/terapi/internal/domain"
	"github.com/emirirr/terapi/internal/service"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Logged-in user, nil before login and after logout.
	CurrentUser *domain.User

	// Last therapy selection, re-offered as the setup form defaults.
	LastSelection service.Selection

	// Terminal dimensions
	Width  int
	Height int
}

// SetCurrentUser records the authenticated user.
func (s *SharedState) SetCurrentUser(u *domain.User) {
	s.CurrentUser = u
}

// ClearSession drops the authenticated user on logout.
func (s *SharedState) ClearSession() {
	s.CurrentUser = nil
}

// IsAdmin reports whether the logged-in user has the admin role.
func (s *SharedState) IsAdmin() bool {
	return s.CurrentUser != nil && s.CurrentUser.IsAdmin()
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
