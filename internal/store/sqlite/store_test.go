package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelist/cinelist-server/internal/domain"
	"github.com/cinelist/cinelist-server/internal/store"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	s.now = func() time.Time { return fixedNow }
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	require.NoError(t, err)
	assert.Equal(t, "wal", journalMode)

	var name string
	err = s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='users'").Scan(&name)
	require.NoError(t, err)
}

func TestOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	s, err := Open(dbPath, logger)
	require.NoError(t, err)
	_, err = s.SaveUser(context.Background(), domain.User{ID: "user-1", Name: "Sam"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Re-open should work (schema is idempotent).
	s2, err := Open(dbPath, logger)
	require.NoError(t, err)
	defer s2.Close()

	u, err := s2.LoadUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Sam", u.Name)
}

func TestSaveAndLoadUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := domain.User{
		ID:    "user-1",
		Email: "Sam@Example.com",
		Lists: []domain.UserList{
			{ID: "list-a", Name: "Later", Items: []domain.ListItem{}},
			{ID: "list-b", Name: "Favorites", Pinned: true, Items: []domain.ListItem{
				{MediaID: 1399, Kind: domain.KindSeries, UserRating: 5, AddedOn: fixedNow, WatchedEpisodeIDs: []int{3}},
			}},
		},
	}

	saved, err := s.SaveUser(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, "list-b", saved.Lists[0].ID, "pinned lists move to the front")

	loaded, err := s.LoadUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, saved.Lists, loaded.Lists)

	saved.Name = "Renamed"
	_, err = s.SaveUser(ctx, saved)
	require.NoError(t, err)

	loaded, err = s.LoadUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.Name)
}

func TestLoadUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadUser(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"user-b", "user-a"} {
		_, err := s.SaveUser(ctx, domain.User{ID: id})
		require.NoError(t, err)
	}

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user-a", users[0].ID)
}
