package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Conversation is the aggregate that owns membership and message history of
// one chat. It is not safe for concurrent use; callers serialize access per
// instance (the messenger service does so with a row lock).
//
// Invariants:
//   - the owner is never a participant
//   - participants hold no duplicate identities
//   - every message was sent by the owner or a participant at send time
//   - messages are append-only
type Conversation struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	participants []uuid.UUID
	messages     []Message
	createdAt    time.Time

	ids   IDGenerator
	clock Clock
}

// ConversationState is the plain-data form of a Conversation used by the
// persistence layer.
type ConversationState struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	ParticipantIDs []uuid.UUID
	Messages       []Message
	CreatedAt      time.Time
}

// NewConversation starts a conversation owned by owner with the given initial
// participants. The owner must not be listed and duplicates are rejected.
func NewConversation(ids IDGenerator, clock Clock, owner User, initial []User) (*Conversation, error) {
	participantIDs := UserIDs(initial)

	if slices.Contains(participantIDs, owner.ID) {
		return nil, invariant("owner cannot be a participant")
	}
	if len(lo.Uniq(participantIDs)) != len(participantIDs) {
		return nil, invariant("duplicate participant")
	}

	return &Conversation{
		id:           ids.NewID(),
		ownerID:      owner.ID,
		participants: participantIDs,
		createdAt:    clock.Now(),
		ids:          ids,
		clock:        clock,
	}, nil
}

// RestoreConversation rebuilds a conversation from stored state. It is the
// trusted load path and does not re-run construction checks.
func RestoreConversation(state ConversationState, ids IDGenerator, clock Clock) *Conversation {
	return &Conversation{
		id:           state.ID,
		ownerID:      state.OwnerID,
		participants: slices.Clone(state.ParticipantIDs),
		messages:     slices.Clone(state.Messages),
		createdAt:    state.CreatedAt,
		ids:          ids,
		clock:        clock,
	}
}

// ID returns the conversation's identity.
func (c *Conversation) ID() uuid.UUID { return c.id }

// OwnerID returns the user who created the conversation.
func (c *Conversation) OwnerID() uuid.UUID { return c.ownerID }

// CreatedAt returns the creation timestamp.
func (c *Conversation) CreatedAt() time.Time { return c.createdAt }

// Participants returns a copy of the participant identities in join order.
func (c *Conversation) Participants() []uuid.UUID {
	return slices.Clone(c.participants)
}

// Messages returns a copy of the message history in delivery order.
func (c *Conversation) Messages() []Message {
	return slices.Clone(c.messages)
}

// IsOwner reports whether userID owns the conversation.
func (c *Conversation) IsOwner(userID uuid.UUID) bool {
	return c.ownerID == userID
}

// IsParticipant reports whether userID is a current participant.
func (c *Conversation) IsParticipant(userID uuid.UUID) bool {
	return slices.Contains(c.participants, userID)
}

// IsMember reports whether userID is the owner or a current participant.
func (c *Conversation) IsMember(userID uuid.UUID) bool {
	return c.IsOwner(userID) || c.IsParticipant(userID)
}

// AddParticipant appends candidate to the participants. Only the owner may
// call it.
func (c *Conversation) AddParticipant(actingUserID uuid.UUID, candidate User) error {
	if !c.IsOwner(actingUserID) {
		return unauthorized("only owner may modify membership")
	}
	if c.IsOwner(candidate.ID) {
		return invariant("owner cannot be a participant")
	}
	if c.IsParticipant(candidate.ID) {
		return invariant("already a participant")
	}

	c.participants = append(c.participants, candidate.ID)
	return nil
}

// RemoveParticipant drops target from the participants. Only the owner may
// call it. The owner is never a participant, so removing the owner fails.
func (c *Conversation) RemoveParticipant(actingUserID uuid.UUID, target User) error {
	if !c.IsOwner(actingUserID) {
		return unauthorized("only owner may modify membership")
	}

	idx := slices.Index(c.participants, target.ID)
	if idx < 0 {
		return invariant("not a participant")
	}

	c.participants = slices.Delete(c.participants, idx, idx+1)
	return nil
}

// SendMessage appends a message from senderID. The sender must be the owner
// or a current participant. Content is not restricted.
func (c *Conversation) SendMessage(senderID uuid.UUID, content string) (Message, error) {
	if !c.IsMember(senderID) {
		return Message{}, unauthorized("not a member")
	}

	msg := Message{
		ID:             c.ids.NewMessageID(),
		ConversationID: c.id,
		SenderID:       senderID,
		Seq:            len(c.messages) + 1,
		Content:        content,
		CreatedAt:      c.clock.Now(),
	}
	c.messages = append(c.messages, msg)
	return msg, nil
}

// State returns a detached snapshot for persistence.
func (c *Conversation) State() ConversationState {
	return ConversationState{
		ID:             c.id,
		OwnerID:        c.ownerID,
		ParticipantIDs: c.Participants(),
		Messages:       c.Messages(),
		CreatedAt:      c.createdAt,
	}
}
