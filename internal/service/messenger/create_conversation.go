package messenger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/messenger-backend/internal/domain"
	"github.com/heartmarshall/messenger-backend/pkg/ctxutil"
)

// CreateConversation starts a conversation owned by the acting user.
// Unknown participant ids return domain.ErrNotFound; listing the owner or a
// duplicate returns domain.ErrInvariantViolation.
func (s *Service) CreateConversation(ctx context.Context, input CreateConversationInput) (domain.ConversationState, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ConversationState{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.ConversationState{}, err
	}

	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.ConversationState{}, fmt.Errorf("get owner: %w", err)
	}
	participants, err := s.users.GetByIDs(ctx, input.ParticipantIDs)
	if err != nil {
		return domain.ConversationState{}, fmt.Errorf("get participants: %w", err)
	}

	conv, err := domain.NewConversation(s.ids, s.clock, *owner, participants)
	if err != nil {
		return domain.ConversationState{}, err
	}
	state := conv.State()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.conversations.Create(txCtx, state); err != nil {
			return fmt.Errorf("create conversation: %w", err)
		}

		return s.logAudit(txCtx, userID, state.ID, domain.AuditActionCreate, map[string]any{
			"participants": map[string]any{"new": state.ParticipantIDs},
		})
	})
	if err != nil {
		return domain.ConversationState{}, err
	}

	s.log.InfoContext(ctx, "conversation created",
		slog.String("user_id", userID.String()),
		slog.String("conversation_id", state.ID.String()),
		slog.Int("participants", len(state.ParticipantIDs)),
	)

	return state, nil
}
