// Package inventory defines the shared data model of a reconciliation run:
// normalized keys, input sources, cleaned ledger entries, transactional
// movements, per-key summaries and the updated ledger lines.
package inventory

import (
	"github.com/shopspring/decimal"
)

// Source identifies which input a table or movement came from.
type Source string

// Sources
const (
	SourceLedger  Source = "ledger"
	SourceSales   Source = "sales"
	SourceInvoice Source = "invoice"
)

// String returns the source name.
func (s Source) String() string {
	return string(s)
}

// QuantityColumn returns the canonical summary column for the source quantity.
func (s Source) QuantityColumn() string {
	switch s {
	case SourceSales:
		return ColumnQuantitySold
	case SourceInvoice:
		return ColumnQuantityReceived
	default:
		return ColumnCurrentStock
	}
}

// NameColumn returns the canonical summary column for the source product name.
func (s Source) NameColumn() string {
	switch s {
	case SourceSales:
		return ColumnSoldName
	case SourceInvoice:
		return ColumnReceivedName
	default:
		return ColumnDescription
	}
}

// Canonical column names of the updated ledger.
const (
	ColumnKey              = "UPC"
	ColumnDescription      = "Description"
	ColumnCurrentStock     = "current_stock"
	ColumnSoldName         = "sold_product_name"
	ColumnQuantitySold     = "quantity_sold"
	ColumnReceivedName     = "received_product_name"
	ColumnQuantityReceived = "quantity_received"
	ColumnNewStock         = "new_stock"
)

// AuditColumns are appended to the ledger's own columns in the updated ledger.
var AuditColumns = []string{
	ColumnSoldName,
	ColumnQuantitySold,
	ColumnReceivedName,
	ColumnQuantityReceived,
	ColumnNewStock,
}

// Status is the outcome class of a cleaning step or a run.
type Status string

// Statuses
const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
	StatusFatal    Status = "fatal"
)

// Worse returns the more severe of two statuses.
func (s Status) Worse(other Status) Status {
	if s.rank() >= other.rank() {
		return s
	}
	return other
}

func (s Status) rank() int {
	switch s {
	case StatusDegraded:
		return 1
	case StatusFatal:
		return 2
	default:
		return 0
	}
}

// Ledger is a cleaned master inventory.
// Columns keeps the original column order so the updated ledger can be re-ingested.
type Ledger struct {
	Columns           []string      `json:"columns" yaml:"columns"`
	KeyColumn         string        `json:"key_column" yaml:"key_column"`
	StockColumn       string        `json:"stock_column" yaml:"stock_column"`
	DescriptionColumn string        `json:"description_column,omitempty" yaml:"description_column,omitempty"`
	StockCreated      bool          `json:"stock_created,omitempty" yaml:"stock_created,omitempty"`
	Entries           []LedgerEntry `json:"entries" yaml:"entries"`
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// LedgerEntry is one cleaned ledger row. Values are aligned with Ledger.Columns.
type LedgerEntry struct {
	Key          Key             `json:"key" yaml:"key"`
	Description  string          `json:"description,omitempty" yaml:"description,omitempty"`
	CurrentStock decimal.Decimal `json:"current_stock" yaml:"current_stock"`
	Values       []string        `json:"values" yaml:"values"`
}

// Movement is one cleaned transactional row from the sales log or the invoice.
type Movement struct {
	Key      Key             `json:"key" yaml:"key"`
	Name     string          `json:"name,omitempty" yaml:"name,omitempty"`
	Quantity decimal.Decimal `json:"quantity" yaml:"quantity"`
}

// Summary is the aggregate of all movements sharing a key.
type Summary struct {
	Source   Source          `json:"source" yaml:"source"`
	Key      Key             `json:"key" yaml:"key"`
	Name     string          `json:"name,omitempty" yaml:"name,omitempty"`
	Quantity decimal.Decimal `json:"quantity" yaml:"quantity"`
	Rows     int             `json:"rows" yaml:"rows"`
}

// Line is one row of the updated ledger.
// NewStock may be negative and is never clamped.
type Line struct {
	Entry            LedgerEntry `json:"entry" yaml:"entry"`
	SoldName         string      `json:"sold_product_name" yaml:"sold_product_name"`
	QuantitySold     int64       `json:"quantity_sold" yaml:"quantity_sold"`
	ReceivedName     string      `json:"received_product_name" yaml:"received_product_name"`
	QuantityReceived int64       `json:"quantity_received" yaml:"quantity_received"`
	CurrentStock     int64       `json:"current_stock" yaml:"current_stock"`
	NewStock         int64       `json:"new_stock" yaml:"new_stock"`
}

// Key returns the line's normalized key.
func (l Line) Key() Key {
	return l.Entry.Key
}

// Oversold reports whether more units left than were on hand and received.
func (l Line) Oversold() bool {
	return l.NewStock < 0
}

// Moved reports whether the line saw any sales or receipts.
func (l Line) Moved() bool {
	return l.QuantitySold != 0 || l.QuantityReceived != 0
}
