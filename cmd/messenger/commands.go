package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/messenger-backend/internal/adapter/postgres"
	"github.com/heartmarshall/messenger-backend/internal/app"
	"github.com/heartmarshall/messenger-backend/internal/config"
	"github.com/heartmarshall/messenger-backend/pkg/ctxutil"
)

// configLoader resolves the configuration for a subcommand run.
type configLoader func() (*config.Config, error)

func newMigrateCmd(load configLoader) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.Log)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			applied, err := postgres.Migrate(ctx, cfg.Database.DSN)
			if err != nil {
				logger.Error("migrate failed", slog.String("error", err.Error()))
				return err
			}

			logger.Info("migrations applied",
				slog.Int("count", len(applied)),
				slog.Any("versions", applied),
			)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline for the migration run")
	return cmd
}

func newSeedCmd(load configLoader) *cobra.Command {
	var (
		emailDomain string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Register demo users and play a membership round.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if emailDomain != "" {
				cfg.Seed.EmailDomain = emailDomain
			}
			logger := app.NewLogger(cfg.Log)

			opID := uuid.NewString()
			ctx, cancel := context.WithTimeout(ctxutil.WithOperationID(cmd.Context(), opID), timeout)
			defer cancel()

			a, err := app.New(ctx, cfg, logger)
			if err != nil {
				logger.ErrorContext(ctx, "connect", slog.String("error", err.Error()))
				return err
			}
			defer a.Close()

			res, err := a.RunDemo(ctx, cfg.Seed.EmailDomain, opID[:8])
			if err != nil {
				logger.ErrorContext(ctx, "seed failed", slog.String("error", err.Error()))
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "conversation %s\n", res.ConversationID)
			for i, u := range res.Users {
				fmt.Fprintf(out, "  U%d %s %s\n", i+1, u.ID, u.Email)
			}
			fmt.Fprintf(out, "participants: %v\n", res.Participants)
			for _, m := range res.Messages {
				fmt.Fprintf(out, "  #%d from %s: %q\n", m.Seq, m.SenderID, m.Content)
			}
			fmt.Fprintf(out, "U2 after removal: %v\n", res.Rejected)
			return nil
		},
	}

	cmd.Flags().StringVar(&emailDomain, "domain", "", "email domain for demo users (default: seed.email_domain)")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall deadline for the seed run")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}
