package messenger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/messenger-backend/internal/domain"
	"github.com/heartmarshall/messenger-backend/pkg/ctxutil"
)

// GetConversation returns a conversation with its full history. Only the
// owner and current participants may read it.
func (s *Service) GetConversation(ctx context.Context, id uuid.UUID) (domain.ConversationState, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ConversationState{}, domain.ErrUnauthorized
	}

	if id == uuid.Nil {
		return domain.ConversationState{}, domain.NewValidationError("conversation_id", "required")
	}

	state, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return domain.ConversationState{}, fmt.Errorf("get conversation: %w", err)
	}

	conv := domain.RestoreConversation(state, s.ids, s.clock)
	if !conv.IsMember(userID) {
		return domain.ConversationState{}, &domain.AuthorizationError{Reason: "not a member"}
	}

	return conv.State(), nil
}

// ListConversations returns the conversations the acting user owns or
// participates in, oldest first.
func (s *Service) ListConversations(ctx context.Context) ([]domain.ConversationState, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	states, err := s.conversations.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return states, nil
}
