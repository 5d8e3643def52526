package reconcile

import (
	"github.com/agentstation/restock/pkg/clean"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/inventory"
	"github.com/agentstation/restock/pkg/table"
)

// Rollover turns an updated ledger into the next run's ledger:
// the stock column takes the new_stock values and the audit columns are removed.
func Rollover(t *table.Table) (*table.Table, error) {
	if t.Empty() {
		return nil, errors.NewValidationError("ledger", nil, "updated ledger is empty")
	}
	newCol, ok := t.Find(inventory.ColumnNewStock)
	if !ok {
		return nil, errors.NewValidationError(inventory.ColumnNewStock, nil, "column not found, is this an updated ledger?")
	}
	stockCol, ok := t.Find(clean.LedgerStockAliases...)
	if !ok {
		return nil, errors.NewValidationError(inventory.ColumnCurrentStock, nil, "column not found")
	}

	next := t.Clone()
	for i := range next.Rows {
		for len(next.Rows[i]) <= max(newCol, stockCol) {
			next.Rows[i] = append(next.Rows[i], "")
		}
		next.Rows[i][stockCol] = next.Rows[i][newCol]
	}

	var audit []int
	for _, c := range inventory.AuditColumns {
		if i, ok := t.Find(c); ok {
			audit = append(audit, i)
		}
	}
	return next.DropColumns(audit...), nil
}
