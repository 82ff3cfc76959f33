package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/messenger-backend/internal/adapter/idgen"
	"github.com/heartmarshall/messenger-backend/internal/adapter/postgres"
	"github.com/heartmarshall/messenger-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/messenger-backend/internal/adapter/postgres/conversation"
	userrepo "github.com/heartmarshall/messenger-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/messenger-backend/internal/config"
	"github.com/heartmarshall/messenger-backend/internal/domain"
	"github.com/heartmarshall/messenger-backend/internal/service/messenger"
	"github.com/heartmarshall/messenger-backend/internal/service/user"
)

// App holds the wired services and the resources they share.
type App struct {
	Config    *config.Config
	Log       *slog.Logger
	Users     *user.Service
	Messenger *messenger.Service
	Audit     *audit.Repo

	pool *pgxpool.Pool
}

// New connects to the database and wires repositories into services.
// The caller must Close the returned App.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	a, err := Wire(pool, cfg, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

// Wire builds an App on an existing pool. The App takes ownership of pool.
func Wire(pool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) (*App, error) {
	ids, err := idgen.New(cfg.IDs.NodeID)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	txm := postgres.NewTxManager(pool)
	auditRepo := audit.New(pool)
	clock := domain.SystemClock

	users := user.NewService(logger, userrepo.New(pool), auditRepo, txm, ids, clock)
	conversations := messenger.NewService(logger, conversation.New(pool), users, auditRepo, txm, ids, clock)

	return &App{
		Config:    cfg,
		Log:       logger,
		Users:     users,
		Messenger: conversations,
		Audit:     auditRepo,
		pool:      pool,
	}, nil
}

// Close releases the database pool.
func (a *App) Close() {
	a.pool.Close()
}
