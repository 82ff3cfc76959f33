// Package messenger implements conversation use cases on top of the
// domain.Conversation aggregate. The acting user comes from the context.
// Every mutation loads the aggregate under a row lock, applies one domain
// operation and saves it in the same transaction.
package messenger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/messenger-backend/internal/domain"
)

type conversationRepo interface {
	Create(ctx context.Context, state domain.ConversationState) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.ConversationState, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.ConversationState, error)
	Save(ctx context.Context, state domain.ConversationState) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.ConversationState, error)
}

// userProvider resolves bare ids to users. Unknown ids yield domain.ErrNotFound.
type userProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides conversation operations.
type Service struct {
	conversations conversationRepo
	users         userProvider
	audit         auditLogger
	tx            txManager
	ids           domain.IDGenerator
	clock         domain.Clock
	log           *slog.Logger
}

// NewService creates a new messenger service.
func NewService(
	log *slog.Logger,
	conversations conversationRepo,
	users userProvider,
	audit auditLogger,
	tx txManager,
	ids domain.IDGenerator,
	clock domain.Clock,
) *Service {
	return &Service{
		conversations: conversations,
		users:         users,
		audit:         audit,
		tx:            tx,
		ids:           ids,
		clock:         clock,
		log:           log.With("service", "messenger"),
	}
}

// mutateLocked loads the conversation with a row lock, applies fn and saves
// the result. It must run inside RunInTx. Nothing is saved when fn fails.
func (s *Service) mutateLocked(txCtx context.Context, id uuid.UUID, fn func(*domain.Conversation) error) error {
	state, err := s.conversations.GetByIDForUpdate(txCtx, id)
	if err != nil {
		return fmt.Errorf("get conversation: %w", err)
	}

	conv := domain.RestoreConversation(state, s.ids, s.clock)
	if err := fn(conv); err != nil {
		return err
	}

	if err := s.conversations.Save(txCtx, conv.State()); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}

func (s *Service) logAudit(
	txCtx context.Context,
	actor, conversationID uuid.UUID,
	action domain.AuditAction,
	changes map[string]any,
) error {
	err := s.audit.Log(txCtx, domain.AuditRecord{
		ID:         s.ids.NewID(),
		UserID:     actor,
		EntityType: domain.EntityTypeConversation,
		EntityID:   &conversationID,
		Action:     action,
		Changes:    changes,
		CreatedAt:  s.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}
