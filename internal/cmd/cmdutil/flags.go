// Package cmdutil provides shared flags and output helpers for restock commands.
package cmdutil

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/restock/internal/cmd/alerts"
	"github.com/agentstation/restock/internal/cmd/output"
)

// InputFlags holds the input file flags of a reconciliation run.
type InputFlags struct {
	Ledger  string
	Sales   string
	Invoice string
}

// AddInputFlags adds --ledger, --sales and --invoice to a command.
func AddInputFlags(cmd *cobra.Command) *InputFlags {
	flags := &InputFlags{}

	cmd.Flags().StringVarP(&flags.Ledger, "ledger", "l", "",
		"Current inventory ledger (CSV or XLSX)")
	cmd.Flags().StringVarP(&flags.Sales, "sales", "s", "",
		"Point-of-sale sales export (CSV or XLSX)")
	cmd.Flags().StringVarP(&flags.Invoice, "invoice", "i", "",
		"Supplier invoice: a document (PDF, image) or an extracted table (CSV, XLSX)")

	return flags
}

// Print writes data to w in the given format, auto-detecting when empty.
func Print(w io.Writer, format string, data any) error {
	return output.NewFormatter(output.DetectFormat(format)).Format(w, data)
}

// Notify writes a status alert as plain text.
func Notify(w io.Writer, alert *alerts.Alert) error {
	return alerts.NewFormatWriter(w, output.FormatTable).WriteAlert(alert)
}
