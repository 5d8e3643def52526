package clean_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/restock/pkg/clean"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/inventory"
	"github.com/agentstation/restock/pkg/table"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedger(t *testing.T) {
	raw := table.New(
		[]string{"UPC Code", "Description", "current_stock"},
		[]string{"012345-6", "Lager 6pk", "10"},
		[]string{"", "Blank key", "3"},
		[]string{"777.0", "Stout", "abc"},
		[]string{"88", "Ale", "2.75"},
	)

	ledger, report := clean.Ledger(raw)

	assert.Equal(t, "UPC Code", ledger.KeyColumn)
	assert.Equal(t, "current_stock", ledger.StockColumn)
	assert.Equal(t, "Description", ledger.DescriptionColumn)
	assert.False(t, ledger.StockCreated)
	require.Len(t, ledger.Entries, 3)

	assert.Equal(t, inventory.Key("123456"), ledger.Entries[0].Key)
	assert.Equal(t, "Lager 6pk", ledger.Entries[0].Description)
	assert.True(t, ledger.Entries[0].CurrentStock.Equal(dec("10")))
	assert.Equal(t, []string{"123456", "Lager 6pk", "10"}, ledger.Entries[0].Values)

	assert.Equal(t, inventory.Key("777"), ledger.Entries[1].Key)
	assert.True(t, ledger.Entries[1].CurrentStock.IsZero())
	assert.True(t, ledger.Entries[2].CurrentStock.Equal(dec("2.75")))

	assert.Equal(t, inventory.StatusDegraded, report.Status)
	assert.Equal(t, 4, report.RowsIn)
	assert.Equal(t, 3, report.RowsKept)
	assert.Equal(t, 1, report.RowsDropped)
	assert.Equal(t, 1, report.Coerced)
	require.Len(t, report.Warnings, 2)
	for _, w := range report.Errors() {
		assert.True(t, errors.IsSchemaDegraded(w))
	}
}

func TestLedgerCreatesStockColumn(t *testing.T) {
	raw := table.New([]string{"UPC", "Description"}, []string{"100", "Widget"})

	ledger, report := clean.Ledger(raw)

	assert.True(t, ledger.StockCreated)
	assert.Equal(t, []string{"UPC", "Description", "current_stock"}, ledger.Columns)
	require.Len(t, ledger.Entries, 1)
	assert.True(t, ledger.Entries[0].CurrentStock.IsZero())
	assert.Equal(t, []string{"100", "Widget", "0"}, ledger.Entries[0].Values)
	assert.True(t, report.Degraded())
	assert.Equal(t, "current_stock", report.Warnings[0].Column)
}

func TestLedgerWithoutKeyColumn(t *testing.T) {
	raw := table.New([]string{"Name", "Stock"}, []string{"Widget", "4"})

	ledger, report := clean.Ledger(raw)

	assert.Empty(t, ledger.KeyColumn)
	assert.Empty(t, ledger.Entries)
	assert.Equal(t, inventory.StatusDegraded, report.Status)
	assert.Equal(t, 1, report.RowsDropped)
}

func TestLedgerOutOfRangeStock(t *testing.T) {
	raw := table.New([]string{"UPC", "current_stock"}, []string{"100", "1e19"}, []string{"200", "5"})

	ledger, report := clean.Ledger(raw)

	require.Len(t, ledger.Entries, 2)
	assert.True(t, ledger.Entries[0].CurrentStock.IsZero())
	assert.Equal(t, 1, report.Coerced)
	assert.True(t, report.Degraded())
	assert.Contains(t, report.Warnings[0].Error(), "out of range")
}

func TestLedgerClean(t *testing.T) {
	raw := table.New([]string{"UPC", "current_stock"}, []string{"100", "10"})

	_, report := clean.Ledger(raw)

	assert.Equal(t, inventory.StatusOK, report.Status)
	assert.Empty(t, report.Warnings)
	assert.Contains(t, report.String(), "ledger: ok, 1 in, 1 kept")
}

func posExport() *table.Table {
	return table.New(
		[]string{"Store Sales Report", "", "", "", "", ""},
		[]string{"", "Printed 01/02/25", "", "", "", ""},
		[]string{"", "", "", "", "", ""},
		[]string{"x", "Entry Type", "Item No", "Description", "Units", ""},
		[]string{"", "Sale", "012345-6", "Lager 6pk", "2", ""},
		[]string{"", "Sale", "123456", "Lager 6pk", "1", ""},
		[]string{"", "Sale", "777", "Stout", "", ""},
		[]string{"", "Sale", "888", "Ale", "x", ""},
		[]string{"", "Total", "", "", "4", ""},
	)
}

func TestLocateSalesHeader(t *testing.T) {
	located, found := clean.LocateSalesHeader(posExport())

	require.True(t, found)
	assert.Equal(t, []string{"Entry Type", "Item No", "Description", "Units", ""}, located.Columns)
	assert.Equal(t, 5, located.Len())
	assert.Equal(t, []string{"Sale", "012345-6", "Lager 6pk", "2", ""}, located.Rows[0])
}

func TestLocateSalesHeaderCaseInsensitive(t *testing.T) {
	raw := table.New([]string{"report"}, []string{"", "ENTRY TYPE:", "item no.", "units"}, []string{"", "Sale", "5", "1"})

	located, found := clean.LocateSalesHeader(raw)

	require.True(t, found)
	assert.Equal(t, []string{"ENTRY TYPE:", "item no.", "units"}, located.Columns)
}

func TestLocateSalesHeaderAlreadyPromoted(t *testing.T) {
	raw := table.New([]string{"Entry Type", "Item No", "Units"}, []string{"Sale", "5", "1"})

	located, found := clean.LocateSalesHeader(raw)

	assert.True(t, found)
	assert.Same(t, raw, located)
}

func TestLocateSalesHeaderNotFound(t *testing.T) {
	raw := table.New([]string{"garbage", "more"}, []string{"1", "2"}, []string{"Item No", "3"})
	before := raw.Clone()

	located, found := clean.LocateSalesHeader(raw)

	assert.False(t, found)
	assert.Same(t, raw, located)
	assert.Equal(t, before, raw)
}

func TestSales(t *testing.T) {
	movements, report := clean.Sales(posExport())

	assert.Equal(t, []inventory.Movement{
		{Key: "123456", Name: "Lager 6pk", Quantity: dec("2")},
		{Key: "123456", Name: "Lager 6pk", Quantity: dec("1")},
		{Key: "888", Name: "Ale", Quantity: decimal.Zero},
	}, movements)

	assert.Equal(t, inventory.StatusDegraded, report.Status)
	assert.Equal(t, 5, report.RowsIn)
	assert.Equal(t, 3, report.RowsKept)
	assert.Equal(t, 2, report.RowsDropped)
	assert.Equal(t, 1, report.Coerced)
}

func TestSalesWithoutSentinelHeader(t *testing.T) {
	raw := table.New([]string{"Item_no", "Description", "Units"}, []string{"100", "Widget", "3"})

	movements, report := clean.Sales(raw)

	require.Len(t, movements, 1)
	assert.Equal(t, inventory.Key("100"), movements[0].Key)
	assert.True(t, movements[0].Quantity.Equal(dec("3")))
	assert.True(t, report.Degraded())
}

func TestSalesMalformed(t *testing.T) {
	tests := []struct {
		name     string
		raw      *table.Table
		wantLen  int
		degraded bool
	}{
		{name: "nil table", raw: nil, wantLen: 0},
		{name: "no key column", raw: table.New([]string{"a", "b"}, []string{"1", "2"}), wantLen: 0, degraded: true},
		{
			name:     "no units column",
			raw:      table.New([]string{"Entry Type", "Item No"}, []string{"Sale", "5"}),
			wantLen:  1,
			degraded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				movements, report := clean.Sales(tt.raw)
				assert.Len(t, movements, tt.wantLen)
				assert.Equal(t, tt.degraded, report.Degraded())
			})
		})
	}
}

func TestInvoice(t *testing.T) {
	raw := table.New(
		[]string{"UPC Code", "Product Description", "Quantity Confirmed"},
		[]string{"123456.0", "Lager 6pk", "5"},
		[]string{"", "Deposit", "1"},
		[]string{"nan", "Fee", "1"},
		[]string{"777", "Stout", "n/a"},
		[]string{"777", "Stout", "1,200"},
	)

	movements, report := clean.Invoice(raw)

	assert.Equal(t, []inventory.Movement{
		{Key: "123456", Name: "Lager 6pk", Quantity: dec("5")},
		{Key: "777", Name: "Stout", Quantity: decimal.Zero},
		{Key: "777", Name: "Stout", Quantity: dec("1200")},
	}, movements)
	assert.Equal(t, 2, report.RowsDropped)
	assert.Equal(t, 1, report.Coerced)
	assert.Equal(t, inventory.StatusDegraded, report.Status)
}

func TestInvoiceWithoutIdentifier(t *testing.T) {
	movements, report := clean.Invoice(table.New([]string{"Qty"}, []string{"5"}))

	assert.Empty(t, movements)
	assert.True(t, report.Degraded())
	assert.Equal(t, "UPC Code", report.Warnings[0].Column)
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		cell  string
		want  string
		valid bool
	}{
		{"5", "5", true},
		{" 2.5 ", "2.5", true},
		{"1,000", "1000", true},
		{"-3", "-3", true},
		{"", "0", false},
		{"abc", "0", false},
		{"9223372036854775807", "9223372036854775807", true},
		{"99999999999999999999", "0", false},
		{"1e19", "0", false},
		{"-1e19", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, valid := clean.ParseQuantity(tt.cell)
			assert.Equal(t, tt.valid, valid)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}
