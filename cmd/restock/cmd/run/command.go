// Package run provides the reconciliation command.
package run

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/restock"
	"github.com/agentstation/restock/cmd/application"
	"github.com/agentstation/restock/internal/cmd/alerts"
	"github.com/agentstation/restock/internal/cmd/cmdutil"
	"github.com/agentstation/restock/pkg/constants"
	"github.com/agentstation/restock/pkg/inventory"
	"github.com/agentstation/restock/pkg/table"
)

// NewCommand creates the run command.
func NewCommand(app application.Application) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile the ledger against sales and an invoice",
		Long: `Run cleans the ledger, the sales export and the invoice, sums sales and
receipts per product key, and writes the updated ledger with the audit
columns sold_product_name, quantity_sold, received_product_name,
quantity_received and new_stock.

At least one of --sales and --invoice is required.`,
		Example: `  restock run --ledger ledger.xlsx --sales sales.xlsx --invoice invoice.pdf
  restock run -l ledger.csv -s sales.csv --out updated.csv -o markdown
  restock run -l ledger.csv -i invoice.csv -o json`,
		Args: cobra.NoArgs,
	}
	inputs := cmdutil.AddInputFlags(cmd)
	cmd.Flags().StringVar(&out, "out", constants.DefaultOutputFile, "Updated ledger output file (CSV or XLSX)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := app.Logger()

		in, err := restock.LoadInputs(restock.Paths{
			Ledger:  inputs.Ledger,
			Sales:   inputs.Sales,
			Invoice: inputs.Invoice,
		})
		if err != nil {
			return err
		}

		client, err := app.Client(ctx)
		if err != nil {
			return err
		}
		client.OnOversell(func(line inventory.Line) {
			logger.Debug().
				Str("key", line.Key().String()).
				Int64("new_stock", line.NewStock).
				Msg("Oversold")
		})

		result, err := client.Run(ctx, in)
		if err != nil {
			return err
		}

		if err := table.WriteFile(out, result.Table()); err != nil {
			return err
		}
		logger.Info().Str("path", out).Int("rows", len(result.Lines)).Msg("Wrote updated ledger")

		if err := cmdutil.Print(cmd.OutOrStdout(), app.OutputFormat(), result); err != nil {
			return err
		}
		return cmdutil.Notify(cmd.ErrOrStderr(), alerts.FromResult(result).WithDetails("wrote "+out))
	}

	return cmd
}
