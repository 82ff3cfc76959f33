package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is an immutable chat message. Seq is its 1-based position within
// the conversation and reflects delivery order.
type Message struct {
	ID             int64
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	Seq            int
	Content        string
	CreatedAt      time.Time
}
