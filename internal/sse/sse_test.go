package sse

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelist/cinelist-server/internal/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func receive(t *testing.T, c *Client) (Event, bool) {
	t.Helper()
	select {
	case e := <-c.EventChan:
		return e, true
	case <-time.After(200 * time.Millisecond):
		return Event{}, false
	}
}

func TestManager_DeliversOnlyToOwner(t *testing.T) {
	m := NewManager(quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	alice, err := m.Connect("user-alice")
	require.NoError(t, err)
	bob, err := m.Connect("user-bob")
	require.NoError(t, err)

	m.Emit(NewUserUpdatedEvent(domain.User{ID: "user-alice"}, ActionListCreated, "list-1"))

	e, ok := receive(t, alice)
	require.True(t, ok)
	assert.Equal(t, EventUserUpdated, e.Type)
	data, ok := e.Data.(UserUpdatedEventData)
	require.True(t, ok)
	assert.Equal(t, ActionListCreated, data.Action)
	assert.Equal(t, "list-1", data.ListID)

	_, got := receive(t, bob)
	assert.False(t, got, "bob must not see alice's update")
}

func TestManager_EmitToUser(t *testing.T) {
	m := NewManager(quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	c, err := m.Connect("user-1")
	require.NoError(t, err)
	other, err := m.Connect("user-2")
	require.NoError(t, err)

	m.EmitToUser("user-1", NewHeartbeatEvent())

	_, ok := receive(t, c)
	assert.True(t, ok)
	_, ok = receive(t, other)
	assert.False(t, ok)
}

func TestManager_FansOutToEverySessionOfUser(t *testing.T) {
	m := NewManager(quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	laptop, err := m.Connect("user-1")
	require.NoError(t, err)
	phone, err := m.Connect("user-1")
	require.NoError(t, err)
	other, err := m.Connect("user-2")
	require.NoError(t, err)

	assert.Equal(t, 3, m.ClientCount())
	assert.Equal(t, 2, m.UserCount())

	m.Emit(NewUserUpdatedEvent(domain.User{ID: "user-1"}, ActionListsReordered, ""))
	_, ok := receive(t, laptop)
	assert.True(t, ok)
	_, ok = receive(t, phone)
	assert.True(t, ok)
	_, ok = receive(t, other)
	assert.False(t, ok)

	m.Emit(NewHeartbeatEvent())
	for _, c := range []*Client{laptop, phone, other} {
		e, ok := receive(t, c)
		require.True(t, ok)
		assert.Equal(t, EventHeartbeat, e.Type)
	}

	m.Disconnect(laptop.ID)
	assert.Equal(t, 2, m.UserCount())
	m.Disconnect(phone.ID)
	assert.Equal(t, 1, m.UserCount())
}

func TestManager_IgnoresForeignTypes(t *testing.T) {
	m := NewManager(quietLogger())
	m.Emit("not an event")
	assert.Empty(t, m.events)
}

func TestManager_ConnectDisconnect(t *testing.T) {
	m := NewManager(quietLogger())

	c, err := m.Connect("user-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.ID, "sse-"))
	assert.Equal(t, 1, m.ClientCount())

	m.Disconnect(c.ID)
	m.Disconnect(c.ID)
	assert.Equal(t, 0, m.ClientCount())

	_, open := <-c.Done
	assert.False(t, open)
}

func TestManager_ShutdownDropsLateEvents(t *testing.T) {
	m := NewManager(quietLogger())

	c, err := m.Connect("user-1")
	require.NoError(t, err)

	require.NoError(t, m.Shutdown(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))
	m.Emit(NewHeartbeatEvent())

	assert.Equal(t, 0, m.ClientCount())
	_, open := <-c.Done
	assert.False(t, open)
}

func TestHandler_StreamsEvents(t *testing.T) {
	m := NewManager(quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	h := NewHandler(m, func(r *http.Request) (string, bool) {
		return r.Header.Get("X-User"), r.Header.Get("X-User") != ""
	}, quietLogger())
	server := httptest.NewServer(h)
	defer server.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("X-User", "user-1")
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	reader := bufio.NewReader(resp.Body)

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)
	_, _ = reader.ReadString('\n')
	_, _ = reader.ReadString('\n')

	require.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	m.Emit(NewUserUpdatedEvent(domain.User{ID: "user-1", Name: "Sam"}, ActionProfileUpdated, ""))

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: user.updated\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"action":"profile.updated"`)
	assert.Contains(t, line, `"name":"Sam"`)
}

func TestHandler_RequiresUser(t *testing.T) {
	h := NewHandler(NewManager(quietLogger()), func(*http.Request) (string, bool) { return "", false }, quietLogger())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
