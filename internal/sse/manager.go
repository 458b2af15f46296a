package sse

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cinelist/cinelist-server/internal/id"
)

const (
	queueSize        = 1000
	clientBufferSize = 100
)

// Client is one open event stream. A user with several tabs or devices has one
// Client per stream.
type Client struct {
	ID          string
	UserID      string
	ConnectedAt time.Time
	EventChan   chan Event
	Done        chan struct{}
}

func (c *Client) close() {
	close(c.Done)
	close(c.EventChan)
}

// Manager fans events out to the open streams of their user.
//
// Sessions are indexed by user, so a user.updated event only touches that
// user's streams. Events without a UserID go to every stream.
type Manager struct {
	logger *slog.Logger
	events chan Event
	wg     sync.WaitGroup

	mu       sync.RWMutex
	sessions map[string]map[string]*Client
	byID     map[string]*Client

	// queueMu guards closed and the close of events; Emit holds it for reading.
	queueMu sync.RWMutex
	closed  bool
}

// NewManager creates a Manager. Call Start to begin delivery.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		logger:   logger,
		events:   make(chan Event, queueSize),
		sessions: make(map[string]map[string]*Client),
		byID:     make(map[string]*Client),
	}
}

// Start delivers queued events until ctx ends or the queue is closed.
func (m *Manager) Start(ctx context.Context) {
	m.wg.Add(1)
	defer m.wg.Done()

	m.logger.Info("SSE manager starting")

	for {
		select {
		case event, ok := <-m.events:
			if !ok {
				return
			}
			m.deliver(event)
		case <-ctx.Done():
			m.logger.Info("SSE manager stopping")
			m.disconnectAll()
			return
		}
	}
}

// Shutdown stops accepting events, delivers what is already queued, and closes
// every stream. Calling it again is a no-op.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.queueMu.Lock()
	if m.closed {
		m.queueMu.Unlock()
		return nil
	}
	m.closed = true
	close(m.events)
	m.queueMu.Unlock()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for event := range m.events {
			m.deliver(event)
		}
	}()

	select {
	case <-drained:
	case <-ctx.Done():
		m.logger.Warn("SSE manager drain timed out", slog.Int("pending", len(m.events)))
	}

	m.wg.Wait()
	m.disconnectAll()
	m.logger.Info("SSE manager shut down")
	return nil
}

// targets returns the streams that should receive event. Callers hold mu.
func (m *Manager) targets(event Event) map[string]*Client {
	if event.UserID == "" {
		return m.byID
	}
	return m.sessions[event.UserID]
}

// deliver hands event to each target stream without blocking; a full stream
// buffer drops the event for that stream only.
func (m *Manager) deliver(event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	targets := m.targets(event)
	dropped := 0
	for _, c := range targets {
		select {
		case c.EventChan <- event:
		default:
			dropped++
			m.logger.Warn("SSE client buffer full, event dropped",
				slog.String("client_id", c.ID),
				slog.String("user_id", c.UserID),
				slog.String("event_type", string(event.Type)))
		}
	}

	if event.Type != EventHeartbeat {
		m.logger.Debug("SSE event delivered",
			slog.String("event_type", string(event.Type)),
			slog.String("user_id", event.UserID),
			slog.Int("streams", len(targets)-dropped),
			slog.Int("dropped", dropped))
	}
}

// Connect opens a stream for userID.
func (m *Manager) Connect(userID string) (*Client, error) {
	clientID, err := id.Generate(id.PrefixSSE)
	if err != nil {
		return nil, err
	}
	c := &Client{
		ID:          clientID,
		UserID:      userID,
		ConnectedAt: time.Now(),
		EventChan:   make(chan Event, clientBufferSize),
		Done:        make(chan struct{}),
	}

	m.mu.Lock()
	if m.sessions[userID] == nil {
		m.sessions[userID] = make(map[string]*Client)
	}
	m.sessions[userID][clientID] = c
	m.byID[clientID] = c
	open := len(m.sessions[userID])
	m.mu.Unlock()

	m.logger.Info("SSE client connected",
		slog.String("client_id", clientID),
		slog.String("user_id", userID),
		slog.Int("user_streams", open))
	return c, nil
}

// Disconnect closes the stream with clientID. Unknown ids are ignored.
func (m *Manager) Disconnect(clientID string) {
	m.mu.Lock()
	c, ok := m.byID[clientID]
	if ok {
		m.forget(c)
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	c.close()
	m.logger.Info("SSE client disconnected",
		slog.String("client_id", clientID),
		slog.String("user_id", c.UserID),
		slog.Duration("duration", time.Since(c.ConnectedAt)))
}

// forget removes c from both indexes. Callers hold mu.
func (m *Manager) forget(c *Client) {
	delete(m.byID, c.ID)
	userStreams := m.sessions[c.UserID]
	delete(userStreams, c.ID)
	if len(userStreams) == 0 {
		delete(m.sessions, c.UserID)
	}
}

// Emit queues an event. It satisfies store.EventEmitter; values that are not an
// Event are logged and dropped, as is everything after Shutdown.
func (m *Manager) Emit(event any) {
	evt, ok := event.(Event)
	if !ok {
		m.logger.Error("SSE emit called with a non-event value")
		return
	}

	m.queueMu.RLock()
	defer m.queueMu.RUnlock()
	if m.closed {
		return
	}

	select {
	case m.events <- evt:
	default:
		m.logger.Error("SSE queue full, event dropped",
			slog.String("event_type", string(evt.Type)),
			slog.String("user_id", evt.UserID))
	}
}

// EmitToUser queues event for userID's streams only.
func (m *Manager) EmitToUser(userID string, event Event) {
	event.UserID = userID
	m.Emit(event)
}

// ClientCount returns the number of open streams.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

// UserCount returns the number of users with at least one open stream.
func (m *Manager) UserCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) disconnectAll() {
	m.mu.Lock()
	clients := m.byID
	m.byID = make(map[string]*Client)
	m.sessions = make(map[string]map[string]*Client)
	m.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	if len(clients) > 0 {
		m.logger.Info("SSE clients disconnected", slog.Int("count", len(clients)))
	}
}
