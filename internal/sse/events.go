// Package sse implements Server-Sent Events so every open session of a user
// sees list changes made elsewhere.
package sse

import (
	"time"

	"github.com/cinelist/cinelist-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventUserUpdated carries the canonical snapshot after any profile or list change.
	EventUserUpdated EventType = "user.updated"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Action names the operation that produced a user.updated event.
type Action string

// Actions reported in UserUpdatedEventData.
const (
	ActionProfileUpdated Action = "profile.updated"
	ActionListCreated    Action = "list.created"
	ActionListRenamed    Action = "list.renamed"
	ActionListRemoved    Action = "list.removed"
	ActionListImported   Action = "list.imported"
	ActionItemSaved      Action = "list.item_saved"
	ActionListPinToggled Action = "list.pin_toggled"
	ActionListsReordered Action = "lists.reordered"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// UserID restricts delivery to one user's sessions. Empty means broadcast.
	UserID string `json:"-"`
}

// UserUpdatedEventData is the payload of user.updated. Clients replace their local
// snapshot with User, discarding any optimistic preview.
type UserUpdatedEventData struct {
	Action Action      `json:"action"`
	ListID string      `json:"list_id,omitempty"`
	User   domain.User `json:"user"`
}

// HeartbeatEventData is the payload of a heartbeat.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewUserUpdatedEvent creates a user.updated event addressed to the user's own sessions.
func NewUserUpdatedEvent(user domain.User, action Action, listID string) Event {
	return Event{
		Type:      EventUserUpdated,
		UserID:    user.ID,
		Timestamp: time.Now(),
		Data: UserUpdatedEventData{
			Action: action,
			ListID: listID,
			User:   user,
		},
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	now := time.Now()
	return Event{
		Type:      EventHeartbeat,
		Timestamp: now,
		Data:      HeartbeatEventData{ServerTime: now},
	}
}
