package cli

import (
	"context"

	"ordenes_servicio/internal/adapter/persistence/repository"
	"ordenes_servicio/internal/infrastructure/config"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ordenes",
		Short:         "Service-order registry for the repair shop",
		Long:          "Serves the service-order HTTP API and runs the maintenance tasks of its store (schema, catalog seed, history).",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newNextFolioCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// openStore loads the configuration from the environment and connects to the
// configured store. The caller closes it.
func openStore(ctx context.Context) (*repository.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return repository.Open(ctx, cfg)
}
