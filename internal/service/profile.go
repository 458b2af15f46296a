package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/sse"
)

// ProfileService reads and edits the profile fields of a user.
// Writes go through ListService so they serialize with list changes.
type ProfileService struct {
	lists  *ListService
	logger *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(lists *ListService, logger *slog.Logger) *ProfileService {
	return &ProfileService{lists: lists, logger: logger}
}

// Get returns the user's snapshot.
func (s *ProfileService) Get(ctx context.Context, userID string) (domain.User, error) {
	return s.lists.User(ctx, userID)
}

// Update applies the non-nil fields of update.
func (s *ProfileService) Update(ctx context.Context, userID string, update domain.ProfileUpdate) (domain.User, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return domain.User{}, domainerrors.Validation("name cannot be empty")
		}
		update.Name = &name
	}
	return s.lists.commit(ctx, userID, sse.ActionProfileUpdated, "", func(u domain.User) (domain.User, error) {
		return u.WithProfile(update), nil
	})
}
