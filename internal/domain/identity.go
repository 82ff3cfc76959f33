package domain

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator supplies identifiers for new entities. It is injected so tests
// can use deterministic values.
type IDGenerator interface {
	// NewID returns the identity of a new user or conversation.
	NewID() uuid.UUID
	// NewMessageID returns a time-ordered numeric message id.
	NewMessageID() int64
}

// Clock supplies creation timestamps.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns UTC wall-clock time truncated to microseconds, the
// precision PostgreSQL keeps for timestamptz.
var SystemClock = ClockFunc(func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
})
