package domain

import "time"

type ID string

// User is a durable account resolved from a client-supplied opaque
// identifier. The same OpenID always maps to the same row.
type User struct {
	ID        ID
	OpenID    string
	Username  string
	CreatedAt time.Time
}
