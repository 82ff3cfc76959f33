package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/heartmarshall/messenger-backend/internal/domain"
)

// GetByID resolves a bare identifier to a user. Returns domain.ErrNotFound
// when no such user exists.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.GetByID: %w", err)
	}
	return user, nil
}

// GetByEmail looks a user up by email. The address is normalized before the
// lookup, so case and surrounding whitespace do not matter.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return nil, domain.NewValidationError("email", "required")
	}

	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("user.GetByEmail: %w", err)
	}
	return user, nil
}

// GetByIDs resolves ids to users in the order given. Any unknown id fails
// the whole call with domain.ErrNotFound.
func (s *Service) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("user.GetByIDs: %w", err)
	}

	if len(users) != len(ids) {
		missing, _ := lo.Difference(ids, domain.UserIDs(users))
		return nil, fmt.Errorf("user %v: %w", missing, domain.ErrNotFound)
	}
	return users, nil
}
