// Command messenger is the operational entry point of the messenger backend.
//
// Subcommands:
//
//	migrate   apply the embedded schema migrations to database.dsn
//	seed      register demo users and play a membership round through the services
//	version   print build information
//
// Configuration is read from --config, else CONFIG_PATH, else ./config.yaml,
// overlaid by the environment. Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/messenger-backend/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	load := func() (*config.Config, error) { return config.Load(configPath) }

	root := &cobra.Command{
		Use:           "messenger",
		Short:         "Conversation and membership backend tooling.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config file (default $"+config.PathEnv+" or ./config.yaml)")

	root.AddCommand(
		newMigrateCmd(load),
		newSeedCmd(load),
		newVersionCmd(),
	)
	return root
}
