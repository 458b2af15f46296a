package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/sse"
	"github.com/cinelist/cinelist-server/internal/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingEmitter keeps every event it receives.
type recordingEmitter struct {
	mu     sync.Mutex
	events []sse.Event
}

func (r *recordingEmitter) Emit(event any) {
	e, ok := event.(sse.Event)
	if !ok {
		return
	}
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recordingEmitter) Events() []sse.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sse.Event, len(r.events))
	copy(out, r.events)
	return out
}

// fakeCatalog serves media from a map and records the calls it receives.
type fakeCatalog struct {
	mu       sync.Mutex
	media    map[domain.ItemKey]domain.Media
	episodes map[int][]domain.Episode
	calls    []string
}

func newFakeCatalog(media ...domain.Media) *fakeCatalog {
	c := &fakeCatalog{
		media:    make(map[domain.ItemKey]domain.Media),
		episodes: make(map[int][]domain.Episode),
	}
	for _, m := range media {
		c.media[m.Key()] = m
	}
	return c
}

func (c *fakeCatalog) record(call string) {
	c.mu.Lock()
	c.calls = append(c.calls, call)
	c.mu.Unlock()
}

func (c *fakeCatalog) all() []domain.Media {
	out := make([]domain.Media, 0, len(c.media))
	for _, m := range c.media {
		out = append(out, m)
	}
	return out
}

func (c *fakeCatalog) Search(_ context.Context, query string) ([]domain.Media, error) {
	c.record("search:" + query)
	return c.all(), nil
}

func (c *fakeCatalog) ListByCategory(_ context.Context, category domain.Category, _ int) ([]domain.Media, error) {
	c.record("category:" + string(category))
	var out []domain.Media
	for _, m := range c.media {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out, nil
}

func (c *fakeCatalog) Trending(context.Context) ([]domain.Media, error) {
	c.record("trending")
	return c.all(), nil
}

func (c *fakeCatalog) Details(_ context.Context, kind domain.MediumKind, id int) (domain.Media, error) {
	c.record("details")
	m, ok := c.media[domain.ItemKey{MediaID: id, Kind: kind}]
	if !ok {
		return domain.Media{}, domainerrors.NotFoundf("%s %d not found", kind, id)
	}
	return m, nil
}

func (c *fakeCatalog) Recommendations(context.Context, domain.MediumKind, int) ([]domain.Media, error) {
	c.record("recommendations")
	return c.all(), nil
}

func (c *fakeCatalog) SeasonEpisodes(_ context.Context, seriesID, _ int) ([]domain.Episode, error) {
	c.record("season")
	return c.episodes[seriesID], nil
}

// seedUser stores a user with the given lists and returns it.
func seedUser(t *testing.T, s store.UserStore, userID string, lists ...domain.UserList) domain.User {
	t.Helper()
	if lists == nil {
		lists = []domain.UserList{}
	}
	u, err := s.SaveUser(context.Background(), domain.User{
		ID:    userID,
		Name:  "Test User",
		Email: userID + "@example.com",
		Lists: lists,
	})
	require.NoError(t, err)
	return u
}

func listIDs(lists []domain.UserList) []string {
	ids := make([]string, len(lists))
	for i, l := range lists {
		ids[i] = l.ID
	}
	return ids
}
