package clean

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Column aliases, most specific first.
var (
	LedgerKeyAliases         = []string{"UPC", "UPC Code", "product_key", "Item No"}
	LedgerStockAliases       = []string{"current_stock", "Current Stock", "Stock"}
	LedgerDescriptionAliases = []string{"Description", "Product Description"}

	SalesKeyAliases      = []string{"Item No", "Item_no", "UPC"}
	SalesUnitsAliases    = []string{"Units", "Quantity", "Qty"}
	SalesNameAliases     = []string{"Description"}
	SalesHeaderSentinels = []string{"Entry Type", "Item No"}

	InvoiceKeyAliases      = []string{"UPC Code", "UPC", "upc_code"}
	InvoiceQuantityAliases = []string{"Quantity Confirmed", "quantity_confirmed", "QTY"}
	InvoiceNameAliases     = []string{"Product Description", "product_description", "Description"}
)

// ParseQuantity reads a numeric cell. Thousands separators are ignored.
// Blank or invalid cells, and values whose integer part does not fit in an
// int64, yield zero and false.
func ParseQuantity(cell string) (decimal.Decimal, bool) {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cell == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cell)
	if err != nil || !d.Truncate(0).BigInt().IsInt64() {
		return decimal.Zero, false
	}
	return d, true
}
