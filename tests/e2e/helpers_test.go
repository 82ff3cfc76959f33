//go:build e2e

package e2e_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/messenger-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/messenger-backend/internal/app"
	"github.com/heartmarshall/messenger-backend/internal/config"
	"github.com/heartmarshall/messenger-backend/internal/domain"
	"github.com/heartmarshall/messenger-backend/internal/service/user"
	"github.com/heartmarshall/messenger-backend/pkg/ctxutil"
)

// nodeSeq hands each wired App its own snowflake node so message ids from
// parallel tests never collide.
var nodeSeq atomic.Int64

// setupApp wires every service against the shared test database.
func setupApp(t *testing.T) *app.App {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	cfg := &config.Config{
		IDs:  config.IDsConfig{NodeID: nodeSeq.Add(1) % 1024},
		Seed: config.SeedConfig{EmailDomain: "e2e.test"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := app.Wire(pool, cfg, logger)
	require.NoError(t, err)
	return a
}

// register creates a user with a unique email.
func register(t *testing.T, a *app.App) domain.User {
	t.Helper()

	u, err := a.Users.Register(context.Background(), user.RegisterInput{
		Email: uuid.NewString() + "@e2e.test",
	})
	require.NoError(t, err)
	return *u
}

func as(u domain.User) context.Context {
	return ctxutil.WithUserID(context.Background(), u.ID)
}
