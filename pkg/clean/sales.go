package clean

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"github.com/agentstation/restock/pkg/inventory"
	"github.com/agentstation/restock/pkg/table"
)

var fold = cases.Fold()

// LocateSalesHeader finds the embedded header row of a point-of-sale export.
//
// The header is the first record containing every sentinel token
// (case-insensitive substring match). When the table header already holds
// the sentinels the table is returned as-is. When a data row holds them it is
// promoted to the header, everything above it and the first, decorative
// column are discarded. When no record matches the input is returned
// unmodified with false.
func LocateSalesHeader(t *table.Table) (*table.Table, bool) {
	if t == nil {
		return t, false
	}
	if hasSentinels(t.Columns, 0) {
		return t, true
	}

	for i, row := range t.Rows {
		if !hasSentinels(row, 1) {
			continue
		}
		promoted := &table.Table{
			Columns: append([]string(nil), row...),
			Rows:    t.Rows[i+1:],
		}
		for j, c := range promoted.Columns {
			promoted.Columns[j] = strings.TrimSpace(c)
		}
		return promoted.DropColumns(0), true
	}
	return t, false
}

func hasSentinels(cells []string, from int) bool {
	if from >= len(cells) {
		return false
	}
	folded := lo.Map(cells[from:], func(c string, _ int) string { return fold.String(c) })
	return lo.EveryBy(SalesHeaderSentinels, func(token string) bool {
		token = fold.String(token)
		return lo.SomeBy(folded, func(c string) bool { return strings.Contains(c, token) })
	})
}

// Sales cleans a sales log into movements.
//
// After header location, columns with no data are removed and any row with
// an empty cell is dropped. Rows whose key does not normalize are dropped.
// A missing units column keeps rows with zero quantity.
func Sales(t *table.Table) ([]inventory.Movement, Report) {
	located, found := LocateSalesHeader(t)
	report := newReport(inventory.SourceSales, located.Len())
	if located.Empty() {
		return nil, report
	}
	if !found {
		report.warn("", "header row with %s not found, using table as-is", strings.Join(SalesHeaderSentinels, " and "))
	}

	located = dropBlankColumns(located, &report)

	keyCol, ok := located.Find(SalesKeyAliases...)
	if !ok {
		report.warn(SalesKeyAliases[0], "key column not found, no sales recorded")
		report.finish(0)
		return nil, report
	}
	unitsCol, hasUnits := located.Find(SalesUnitsAliases...)
	if !hasUnits {
		report.warn(SalesUnitsAliases[0], "units column not found, quantities set to 0")
	}
	nameCol, hasName := located.Find(SalesNameAliases...)

	width := len(located.Columns)
	var incomplete, noKey, badUnits int
	movements := make([]inventory.Movement, 0, located.Len())
	for i := range located.Rows {
		if !complete(located, i, width) {
			incomplete++
			continue
		}
		key, ok := inventory.NormalizeKey(located.Cell(i, keyCol))
		if !ok {
			noKey++
			continue
		}

		m := inventory.Movement{Key: key}
		if hasUnits {
			var valid bool
			if m.Quantity, valid = ParseQuantity(located.Cell(i, unitsCol)); !valid {
				badUnits++
			}
		}
		if hasName {
			m.Name = located.Cell(i, nameCol)
		}
		movements = append(movements, m)
	}

	if incomplete > 0 {
		report.warn("", "dropped %d incomplete rows", incomplete)
	}
	if noKey > 0 {
		report.warn(located.Columns[keyCol], "dropped %d rows without a usable key", noKey)
	}
	if badUnits > 0 {
		report.Coerced = badUnits
		report.warn(located.Columns[unitsCol], "%d non-numeric or out of range units set to 0", badUnits)
	}
	report.finish(len(movements))
	return movements, report
}

func complete(t *table.Table, row, width int) bool {
	for col := range width {
		if t.Cell(row, col) == "" {
			return false
		}
	}
	return true
}

// dropBlankColumns removes columns that carry no data in any row.
func dropBlankColumns(t *table.Table, report *Report) *table.Table {
	if t.Len() == 0 {
		return t
	}
	var blank []int
	for col := range t.Width() {
		empty := lo.EveryBy(lo.Range(t.Len()), func(row int) bool { return t.Cell(row, col) == "" })
		if !empty {
			continue
		}
		blank = append(blank, col)
		if col < len(t.Columns) && strings.TrimSpace(t.Columns[col]) != "" {
			report.warn(t.Columns[col], "column has no values, removed")
		}
	}
	if len(blank) == 0 {
		return t
	}
	return t.DropColumns(blank...)
}
