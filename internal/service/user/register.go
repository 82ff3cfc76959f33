package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/messenger-backend/internal/domain"
)

// Register creates a user with a normalized email and an optional address.
// A duplicate email returns domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	candidate := &domain.User{
		ID:        s.ids.NewID(),
		Email:     domain.NormalizeEmail(input.Email),
		CreatedAt: s.clock.Now(),
	}
	if input.Address != nil {
		addr := input.Address.normalized()
		candidate.Address = &domain.Address{
			Street:  addr.Street,
			City:    addr.City,
			Country: addr.Country,
		}
	}

	var created *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.users.Create(txCtx, candidate)
		if createErr != nil {
			return fmt.Errorf("create user: %w", createErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			ID:         s.ids.NewID(),
			UserID:     created.ID,
			EntityType: domain.EntityTypeUser,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"email":       map[string]any{"new": created.Email},
				"has_address": created.Address != nil,
			},
			CreatedAt: s.clock.Now(),
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", created.ID.String()),
		slog.String("email", created.Email),
	)

	return created, nil
}
