package messenger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/messenger-backend/internal/domain"
	"github.com/heartmarshall/messenger-backend/pkg/ctxutil"
)

// AddParticipant adds input.UserID to the conversation. Only the owner may
// change membership.
func (s *Service) AddParticipant(ctx context.Context, input MembershipInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		err := s.mutateLocked(txCtx, input.ConversationID, func(conv *domain.Conversation) error {
			// Ownership is settled before the candidate is resolved.
			if !conv.IsOwner(userID) {
				return &domain.AuthorizationError{Reason: "only owner may modify membership"}
			}
			candidate, err := s.users.GetByID(txCtx, input.UserID)
			if err != nil {
				return fmt.Errorf("get candidate: %w", err)
			}
			return conv.AddParticipant(userID, *candidate)
		})
		if err != nil {
			return err
		}

		return s.logAudit(txCtx, userID, input.ConversationID, domain.AuditActionAddParticipant, map[string]any{
			"participant": map[string]any{"new": input.UserID},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "participant added",
		slog.String("user_id", userID.String()),
		slog.String("conversation_id", input.ConversationID.String()),
		slog.String("participant_id", input.UserID.String()),
	)

	return nil
}

// RemoveParticipant removes input.UserID from the conversation. Only the owner
// may change membership; the owner itself can never be removed. Messages the
// removed user already sent stay in the history.
func (s *Service) RemoveParticipant(ctx context.Context, input MembershipInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	// Identity is all removal compares, so the user is not looked up.
	target := domain.User{ID: input.UserID}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		err := s.mutateLocked(txCtx, input.ConversationID, func(conv *domain.Conversation) error {
			return conv.RemoveParticipant(userID, target)
		})
		if err != nil {
			return err
		}

		return s.logAudit(txCtx, userID, input.ConversationID, domain.AuditActionRemoveParticipant, map[string]any{
			"participant": map[string]any{"old": target.ID},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "participant removed",
		slog.String("user_id", userID.String()),
		slog.String("conversation_id", input.ConversationID.String()),
		slog.String("participant_id", target.ID.String()),
	)

	return nil
}
