package cli

import (
	"fmt"
	"os"

	"ordenes_servicio/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load clients, vehicles and services from a YAML fixture",
		Long:  "Inserts the catalog rows of the fixture that do not exist yet. Existing rows are left as they are.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open fixture: %w", err)
			}
			defer f.Close()

			fixture, err := database.LoadCatalogFixture(f)
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := store.Seed(cmd.Context(), fixture)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded clients=%d vehicles=%d services=%d\n", res.Clients, res.Vehicles, res.Services)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "catalog.yaml", "path to the catalog fixture")
	return cmd
}
