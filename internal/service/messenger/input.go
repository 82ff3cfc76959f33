package messenger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/messenger-backend/internal/domain"
)

// CreateConversationInput holds the parameters for starting a conversation.
// The acting user becomes the owner and must not be listed.
type CreateConversationInput struct {
	ParticipantIDs []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateConversationInput) Validate() error {
	var errs []domain.FieldError

	for idx, id := range i.ParticipantIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("participant_ids[%d]", idx),
				Message: "required",
			})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MembershipInput names a conversation and the user to add or remove.
type MembershipInput struct {
	ConversationID uuid.UUID
	UserID         uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i MembershipInput) Validate() error {
	var errs []domain.FieldError

	if i.ConversationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "conversation_id", Message: "required"})
	}
	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SendMessageInput holds a message to post. Content is stored as given.
type SendMessageInput struct {
	ConversationID uuid.UUID
	Content        string
}

// Validate checks all fields and collects all errors.
func (i SendMessageInput) Validate() error {
	if i.ConversationID == uuid.Nil {
		return domain.NewValidationError("conversation_id", "required")
	}
	return nil
}
