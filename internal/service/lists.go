package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/id"
	"github.com/cinelist/cinelist-server/internal/sse"
	"github.com/cinelist/cinelist-server/internal/store"
)

// AddItemRequest describes one add-or-update of a list item.
type AddItemRequest struct {
	MediaID int
	Kind    domain.MediumKind
	Rating  float64
	Watched []int
}

// ListService is the authoritative commit path for list changes.
// Every mutation loads the user's snapshot, applies the pure domain operation,
// saves it, and broadcasts the canonical result. Mutations for one user are serialized.
type ListService struct {
	store   store.UserStore
	emitter store.EventEmitter
	logger  *slog.Logger
	now     func() time.Time

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewListService creates a new list service.
func NewListService(userStore store.UserStore, emitter store.EventEmitter, logger *slog.Logger) *ListService {
	if emitter == nil {
		emitter = store.NewNoopEmitter()
	}
	return &ListService{
		store:   userStore,
		emitter: emitter,
		logger:  logger,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
}

// User returns the current snapshot.
func (s *ListService) User(ctx context.Context, userID string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	return s.store.LoadUser(ctx, userID)
}

// Lists returns the user's lists in display order.
func (s *ListService) Lists(ctx context.Context, userID string) ([]domain.UserList, error) {
	u, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Lists == nil {
		return []domain.UserList{}, nil
	}
	return u.Lists, nil
}

// List returns one list, or NotFound.
func (s *ListService) List(ctx context.Context, userID, listID string) (domain.UserList, error) {
	u, err := s.User(ctx, userID)
	if err != nil {
		return domain.UserList{}, err
	}
	l, ok := u.List(listID)
	if !ok {
		return domain.UserList{}, domainerrors.NotFoundf("list %s not found", listID)
	}
	return l, nil
}

// CreateList appends a new empty, unpinned list.
func (s *ListService) CreateList(ctx context.Context, userID, name string) (domain.User, domain.UserList, error) {
	listID, err := id.Generate(id.PrefixList)
	if err != nil {
		return domain.User{}, domain.UserList{}, fmt.Errorf("generate list ID: %w", err)
	}

	var created domain.UserList
	u, err := s.commit(ctx, userID, sse.ActionListCreated, listID, func(u domain.User) (domain.User, error) {
		next, l, err := u.CreateList(listID, name)
		created = l
		return next, err
	})
	if err != nil {
		return domain.User{}, domain.UserList{}, err
	}
	return u, created, nil
}

// ImportList appends a new list pre-filled with items in the given order.
func (s *ListService) ImportList(ctx context.Context, userID, name string, items []domain.ListItem) (domain.User, domain.UserList, error) {
	listID, err := id.Generate(id.PrefixList)
	if err != nil {
		return domain.User{}, domain.UserList{}, fmt.Errorf("generate list ID: %w", err)
	}

	var created domain.UserList
	u, err := s.commit(ctx, userID, sse.ActionListImported, listID, func(u domain.User) (domain.User, error) {
		next, l, err := u.ImportList(listID, name, items)
		created = l
		return next, err
	})
	if err != nil {
		return domain.User{}, domain.UserList{}, err
	}
	return u, created, nil
}

// RenameList renames a list. An unknown list leaves the snapshot unchanged.
func (s *ListService) RenameList(ctx context.Context, userID, listID, name string) (domain.User, error) {
	return s.commit(ctx, userID, sse.ActionListRenamed, listID, func(u domain.User) (domain.User, error) {
		return u.RenameList(listID, name)
	})
}

// RemoveList deletes a list. An unknown list leaves the snapshot unchanged.
func (s *ListService) RemoveList(ctx context.Context, userID, listID string) (domain.User, error) {
	return s.commit(ctx, userID, sse.ActionListRemoved, listID, func(u domain.User) (domain.User, error) {
		return u.RemoveList(listID), nil
	})
}

// AddOrUpdateItem adds media to a list or merges into the existing entry.
func (s *ListService) AddOrUpdateItem(ctx context.Context, userID, listID string, req AddItemRequest) (domain.User, error) {
	now := s.now()
	return s.commit(ctx, userID, sse.ActionItemSaved, listID, func(u domain.User) (domain.User, error) {
		return u.AddOrUpdateItem(listID, req.MediaID, req.Kind, req.Rating, req.Watched, now)
	})
}

// TogglePin flips a list's pin and moves it to the pinned boundary.
func (s *ListService) TogglePin(ctx context.Context, userID, listID string) (domain.User, error) {
	return s.commit(ctx, userID, sse.ActionListPinToggled, listID, func(u domain.User) (domain.User, error) {
		return u.TogglePin(listID), nil
	})
}

// Reorder rearranges the pinned lists.
func (s *ListService) Reorder(ctx context.Context, userID string, orderedIDs []string) (domain.User, error) {
	return s.commit(ctx, userID, sse.ActionListsReordered, "", func(u domain.User) (domain.User, error) {
		return u.Reorder(orderedIDs), nil
	})
}

// commit runs one load-apply-save cycle under the user's lock and broadcasts the result.
func (s *ListService) commit(ctx context.Context, userID string, action sse.Action, listID string, apply func(domain.User) (domain.User, error)) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	unlock := s.lockUser(userID)
	defer unlock()

	current, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	next, err := apply(current)
	if err != nil {
		return domain.User{}, err
	}

	saved, err := s.store.SaveUser(ctx, next)
	if err != nil {
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}

	s.logger.Info("user updated",
		"user_id", userID,
		"action", action,
		"list_id", listID,
	)

	s.emitter.Emit(sse.NewUserUpdatedEvent(saved, action, listID))
	return saved, nil
}

func (s *ListService) lockUser(userID string) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[userID] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
