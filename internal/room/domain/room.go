package domain

import (
	"time"

	"github.com/splitroom/backend/internal/common/constants"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

type Room struct {
	ID        int64
	Code      string
	Name      string
	OwnerID   string
	Status    Status
	CreatedAt time.Time
	ClosedAt  *time.Time
}

func (r Room) IsActive() bool {
	return r.Status == StatusActive
}

// ValidCode reports whether code is a well-formed six-digit room code.
// Codes below the reserved minimum are never issued.
func ValidCode(code string) bool {
	if len(code) != constants.RoomCodeLength {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return code[0] != '0'
}
