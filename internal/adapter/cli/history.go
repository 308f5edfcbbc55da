package cli

import (
	"encoding/json"
	"fmt"
	"io"

	response "ordenes_servicio/internal/adapter/http/dto/response"
	"ordenes_servicio/internal/usecase"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		folio   int64
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the order history, or the lines of one order with --folio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			uc := usecase.NewOrderUseCase(store.Orders)
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("folio") {
				details, err := uc.ListLineDetails(cmd.Context(), folio)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(out, response.FromLineDetails(details))
				}
				fmt.Fprintln(out, renderLineDetails(folio, details))
				return nil
			}

			summaries, err := uc.ListOrderSummaries(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(out, response.FromOrderSummaries(summaries))
			}
			fmt.Fprintln(out, renderSummaries(summaries))
			return nil
		},
	}
	cmd.Flags().Int64Var(&folio, "folio", 0, "show the lines of this order")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON instead of a table")
	return cmd
}

func newNextFolioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-folio",
		Short: "Print the folio the next order will most likely get",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			folio, err := usecase.NewOrderUseCase(store.Orders).NextFolio(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), folio)
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
