package clean

import (
	"github.com/shopspring/decimal"

	"github.com/agentstation/restock/pkg/inventory"
	"github.com/agentstation/restock/pkg/table"
)

// Ledger cleans the master inventory.
//
// The key column is normalized in place. A missing stock column is created
// and filled with zeros. Rows whose key does not normalize are dropped.
// When no key column exists the returned ledger has no KeyColumn and no entries.
func Ledger(t *table.Table) (inventory.Ledger, Report) {
	report := newReport(inventory.SourceLedger, t.Len())
	if t.Empty() {
		report.warn("", "ledger table is empty")
		return inventory.Ledger{}, report
	}

	ledger := inventory.Ledger{Columns: append([]string(nil), t.Columns...)}

	keyCol, ok := t.Find(LedgerKeyAliases...)
	if !ok {
		report.warn(LedgerKeyAliases[0], "key column not found")
		report.finish(0)
		return ledger, report
	}
	ledger.KeyColumn = t.Columns[keyCol]

	stockCol, ok := t.Find(LedgerStockAliases...)
	if !ok {
		stockCol = len(ledger.Columns)
		ledger.Columns = append(ledger.Columns, inventory.ColumnCurrentStock)
		ledger.StockCreated = true
		report.warn(inventory.ColumnCurrentStock, "stock column not found, created with 0")
	}
	ledger.StockColumn = ledger.Columns[stockCol]

	descCol, hasDesc := t.Find(LedgerDescriptionAliases...)
	if hasDesc {
		ledger.DescriptionColumn = t.Columns[descCol]
	}

	var noKey, badStock int
	for i, row := range t.Rows {
		key, ok := inventory.NormalizeKey(t.Cell(i, keyCol))
		if !ok {
			noKey++
			continue
		}

		values := make([]string, len(ledger.Columns))
		copy(values, row)
		values[keyCol] = key.String()

		stock := decimal.Zero
		if !ledger.StockCreated {
			var valid bool
			stock, valid = ParseQuantity(t.Cell(i, stockCol))
			if !valid {
				badStock++
			}
		}
		values[stockCol] = stock.String()

		entry := inventory.LedgerEntry{Key: key, CurrentStock: stock, Values: values}
		if hasDesc {
			entry.Description = t.Cell(i, descCol)
		}
		ledger.Entries = append(ledger.Entries, entry)
	}

	if noKey > 0 {
		report.warn(ledger.KeyColumn, "dropped %d rows without a usable key", noKey)
	}
	if badStock > 0 {
		report.Coerced = badStock
		report.warn(ledger.StockColumn, "%d non-numeric or out of range stock values set to 0", badStock)
	}
	report.finish(len(ledger.Entries))
	return ledger, report
}
