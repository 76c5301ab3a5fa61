package domain

import "time"

// Membership is one join-to-leave interval for a user in a room. A user
// accumulates one record per cycle; the record with LeftAt unset is the
// open one, and the storage layer guarantees at most one open record per
// (room, user) pair.
type Membership struct {
	ID       int64
	RoomID   int64
	UserID   string
	Username string
	JoinedAt time.Time
	LeftAt   *time.Time
}

func (m Membership) IsOpen() bool {
	return m.LeftAt == nil
}
