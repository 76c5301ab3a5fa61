package roomfeed

import "time"

type EventType string

const (
	EventMemberJoined     EventType = "member_joined"
	EventMemberLeft       EventType = "member_left"
	EventTransferRecorded EventType = "transfer_recorded"
	EventRoomClosed       EventType = "room_closed"
)

// Event is a notification about an already-committed change in a room.
// The feed is fan-out only; clients re-read balances through the API,
// never from events.
type Event struct {
	Type    EventType `json:"type"`
	RoomID  int64     `json:"room_id"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

// Publisher decouples the services from the websocket hub.
type Publisher interface {
	Publish(roomID int64, event Event)
}

// NopPublisher discards events; used in tests and when the feed is
// disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(int64, Event) {}
