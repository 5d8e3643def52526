// Package extract provides the invoice extraction command.
package extract

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/restock/cmd/application"
	"github.com/agentstation/restock/internal/cmd/alerts"
	"github.com/agentstation/restock/internal/cmd/cmdutil"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/extract"
	"github.com/agentstation/restock/pkg/table"
)

// NewCommand creates the extract command.
func NewCommand(app application.Application) *cobra.Command {
	var invoice, out string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract an invoice document into a table",
		Long: `Extract uploads an invoice document to Gemini and parses the answer into
a table with the columns UPC Code, Product Description and Quantity Confirmed.

The table is printed, or written to --out. The written file can be passed
to "restock run --invoice" to reconcile without extracting again.`,
		Example: `  restock extract --invoice invoice.pdf --out invoice.csv
  restock extract -i scan.png -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if invoice == "" {
				return errors.NewMissingInputError("pass --invoice", "invoice")
			}
			ctx := cmd.Context()

			doc, err := extract.LoadDocument(invoice)
			if err != nil {
				return err
			}

			client, err := app.Client(ctx)
			if err != nil {
				return err
			}

			t, err := client.ExtractInvoice(ctx, *doc)
			if err != nil {
				return err
			}

			if out == "" {
				return cmdutil.Print(cmd.OutOrStdout(), app.OutputFormat(), t)
			}
			if err := table.WriteFile(out, t); err != nil {
				return err
			}
			return cmdutil.Notify(cmd.ErrOrStderr(), alerts.NewSuccess("Extracted "+doc.Name).WithDetails("wrote "+out))
		},
	}

	cmd.Flags().StringVarP(&invoice, "invoice", "i", "", "Invoice document (PDF or image)")
	cmd.Flags().StringVar(&out, "out", "", "Write the extracted table to this file (CSV or XLSX)")

	return cmd
}
