// Package rollover provides the command that turns an updated ledger into
// the next period's ledger.
package rollover

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/restock/cmd/application"
	"github.com/agentstation/restock/internal/cmd/alerts"
	"github.com/agentstation/restock/internal/cmd/cmdutil"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/reconcile"
	"github.com/agentstation/restock/pkg/table"
)

// NewCommand creates the rollover command.
func NewCommand(app application.Application) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Turn an updated ledger into the next ledger",
		Long: `Rollover copies new_stock into the stock column and drops the audit
columns, so the result can be used as --ledger for the next run.`,
		Example: `  restock rollover --in updated_inventory.csv --out ledger.csv`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in == "" {
				return errors.NewMissingInputError("pass --in", "updated ledger")
			}
			if out == "" {
				return errors.NewMissingInputError("pass --out", "output path")
			}

			updated, err := table.ReadFile(in)
			if err != nil {
				return err
			}

			next, err := reconcile.Rollover(updated)
			if err != nil {
				return err
			}

			if err := table.WriteFile(out, next); err != nil {
				return err
			}
			app.Logger().Info().Str("in", in).Str("out", out).Int("rows", next.Len()).Msg("Rolled over ledger")

			return cmdutil.Notify(cmd.ErrOrStderr(),
				alerts.NewSuccess(fmt.Sprintf("Rolled over %d ledger rows", next.Len())).WithDetails("wrote "+out))
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Updated ledger written by restock run")
	cmd.Flags().StringVar(&out, "out", "", "Next ledger output file (CSV or XLSX)")

	return cmd
}
