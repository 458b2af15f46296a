package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cinelist/cinelist-server/internal/domain"
)

// MemoryStore keeps snapshots in process memory. Data is lost on exit.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
	now   func() time.Time
}

var _ UserStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]domain.User), now: time.Now}
}

// LoadUser returns a copy of the stored snapshot for id.
func (m *MemoryStore) LoadUser(ctx context.Context, id string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return domain.User{}, userNotFound(id)
	}
	return u.Clone(), nil
}

// SaveUser stores a copy of u and returns the canonical snapshot.
func (m *MemoryStore) SaveUser(ctx context.Context, u domain.User) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	if u.ID == "" {
		return domain.User{}, ErrInvalidUser
	}

	out := Canonicalize(u, m.now)
	m.mu.Lock()
	m.users[out.ID] = out
	m.mu.Unlock()
	return out.Clone(), nil
}

// ListUsers returns copies of every stored user ordered by id.
func (m *MemoryStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u.Clone())
	}
	slices.SortFunc(users, func(a, b domain.User) int { return strings.Compare(a.ID, b.ID) })
	return users, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
