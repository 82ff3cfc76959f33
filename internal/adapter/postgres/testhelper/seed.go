package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/messenger-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a unique email and no address.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	user := domain.User{
		ID:        uuid.New(),
		Email:     "testuser-" + uniqueSuffix() + "@example.com",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	insertUser(t, pool, user)
	return user
}

// SeedUserWithAddress creates a user with a fully populated address.
func SeedUserWithAddress(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:    uuid.New(),
		Email: "addressed-" + suffix + "@example.com",
		Address: &domain.Address{
			Street:  suffix + " Main St",
			City:    "Springfield",
			Country: "US",
		},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	insertUser(t, pool, user)
	return user
}

func insertUser(t *testing.T, pool *pgxpool.Pool, user domain.User) {
	t.Helper()

	var street, city, country *string
	if user.Address != nil {
		street, city, country = &user.Address.Street, &user.Address.City, &user.Address.Country
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, address_street, address_city, address_country, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, street, city, country, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: insert user: %v", err)
	}
}

// SeedConversation creates a conversation owned by owner with the given
// participants in order and an empty history.
func SeedConversation(t *testing.T, pool *pgxpool.Pool, owner domain.User, participants ...domain.User) domain.ConversationState {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	state := domain.ConversationState{
		ID:             uuid.New(),
		OwnerID:        owner.ID,
		ParticipantIDs: domain.UserIDs(participants),
		CreatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO conversations (id, owner_id, created_at, updated_at) VALUES ($1, $2, $3, $3)`,
		state.ID, state.OwnerID, state.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedConversation insert conversation: %v", err)
	}

	for i, userID := range state.ParticipantIDs {
		_, err := pool.Exec(ctx,
			`INSERT INTO conversation_participants (conversation_id, user_id, position) VALUES ($1, $2, $3)`,
			state.ID, userID, i,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedConversation insert participant[%d]: %v", i, err)
		}
	}

	return state
}
