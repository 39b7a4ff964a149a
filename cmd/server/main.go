package main

import (
	"context"
	"os"

	"github.com/QuantumCastro/Vitrum/internal/server"
	"github.com/QuantumCastro/Vitrum/internal/server/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Run the Vitrum API (HTTP and gRPC health)",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			app, err := server.NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			app.Run(cmd.Context())
			return nil
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return server.Migrate(cmd.Context(), cfg, reset)
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop every table and re-apply migrations (destroys data)")
	return cmd
}
