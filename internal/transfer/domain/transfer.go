package domain

import (
	"time"

	"github.com/splitroom/backend/internal/money"
)

// Transfer is one immutable ledger entry: FromUserID sent AmountMinor to
// ToUserID. Entries are never updated or deleted; corrections are recorded
// as new entries in the opposite direction.
type Transfer struct {
	ID         int64
	RoomID     int64
	FromUserID string
	ToUserID   string
	Amount     money.Amount
	Note       string
	CreatedAt  time.Time
}

// Balance is a user's derived net position in a room: amounts received
// minus amounts sent. The sender of a transfer goes down, the recipient
// goes up.
type Balance struct {
	UserID   string
	Username string
	Net      money.Amount
}

// Summary is a consistent snapshot of a room's ledger state.
type Summary struct {
	Balances      []Balance
	TransferCount int64
	TotalVolume   money.Amount
}
