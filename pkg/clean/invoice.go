package clean

import (
	"github.com/agentstation/restock/pkg/inventory"
	"github.com/agentstation/restock/pkg/table"
)

// Invoice cleans an extracted invoice table into movements.
// Float-like identifiers ("123456.0") become integer strings; rows whose
// identifier is null after coercion are dropped; invalid quantities become 0.
func Invoice(t *table.Table) ([]inventory.Movement, Report) {
	report := newReport(inventory.SourceInvoice, t.Len())
	if t.Empty() {
		return nil, report
	}

	keyCol, ok := t.Find(InvoiceKeyAliases...)
	if !ok {
		report.warn(InvoiceKeyAliases[0], "identifier column not found, no receipts recorded")
		report.finish(0)
		return nil, report
	}
	qtyCol, hasQty := t.Find(InvoiceQuantityAliases...)
	if !hasQty {
		report.warn(InvoiceQuantityAliases[0], "quantity column not found, quantities set to 0")
	}
	nameCol, hasName := t.Find(InvoiceNameAliases...)

	var noKey, badQty int
	movements := make([]inventory.Movement, 0, t.Len())
	for i := range t.Rows {
		key, ok := inventory.NormalizeKey(t.Cell(i, keyCol))
		if !ok {
			noKey++
			continue
		}

		m := inventory.Movement{Key: key}
		if hasQty {
			var valid bool
			if m.Quantity, valid = ParseQuantity(t.Cell(i, qtyCol)); !valid {
				badQty++
			}
		}
		if hasName {
			m.Name = t.Cell(i, nameCol)
		}
		movements = append(movements, m)
	}

	if noKey > 0 {
		report.warn(t.Columns[keyCol], "dropped %d rows without an identifier", noKey)
	}
	if badQty > 0 {
		report.Coerced = badQty
		report.warn(t.Columns[qtyCol], "%d non-numeric or out of range quantities set to 0", badQty)
	}
	report.finish(len(movements))
	return movements, report
}
