package messenger

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/messenger-backend/internal/domain"
	"github.com/heartmarshall/messenger-backend/pkg/ctxutil"
)

// SendMessage posts a message from the acting user, who must be the owner or
// a current participant. Concurrent senders on one conversation are
// serialized by the row lock, so seq numbers follow commit order.
func (s *Service) SendMessage(ctx context.Context, input SendMessageInput) (domain.Message, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Message{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Message{}, err
	}

	var msg domain.Message
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		err := s.mutateLocked(txCtx, input.ConversationID, func(conv *domain.Conversation) error {
			var sendErr error
			msg, sendErr = conv.SendMessage(userID, input.Content)
			return sendErr
		})
		if err != nil {
			return err
		}

		return s.logAudit(txCtx, userID, input.ConversationID, domain.AuditActionSendMessage, map[string]any{
			"message_id": msg.ID,
			"seq":        msg.Seq,
		})
	})
	if err != nil {
		return domain.Message{}, err
	}

	s.log.InfoContext(ctx, "message sent",
		slog.String("user_id", userID.String()),
		slog.String("conversation_id", input.ConversationID.String()),
		slog.Int64("message_id", msg.ID),
		slog.Int("seq", msg.Seq),
	)

	return msg, nil
}
