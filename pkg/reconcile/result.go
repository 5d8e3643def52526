package reconcile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/restock/pkg/clean"
	"github.com/agentstation/restock/pkg/inventory"
	"github.com/agentstation/restock/pkg/table"
)

// Result represents the outcome of a reconciliation run
type Result struct {
	// Status is ok, or degraded when any input or join issue was recorded
	Status inventory.Status `json:"status" yaml:"status"`

	// Columns are the ledger's own columns, in input order
	Columns []string `json:"columns" yaml:"columns"`

	// KeyColumn and StockColumn name the ledger key and stock columns
	KeyColumn   string `json:"key_column" yaml:"key_column"`
	StockColumn string `json:"stock_column" yaml:"stock_column"`

	// Lines is the updated ledger, one line per ledger row
	Lines []inventory.Line `json:"lines" yaml:"lines"`

	// Unmatched holds transactional summaries whose key is not in the ledger
	Unmatched []inventory.Summary `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`

	// Warnings contains non-critical issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Reports describe how each input was cleaned, when the run started from raw tables
	Reports []clean.Report `json:"reports,omitempty" yaml:"reports,omitempty"`

	// Metadata about the run
	Metadata ResultMetadata `json:"metadata" yaml:"metadata"`
}

// ResultMetadata contains metadata about the reconciliation run
type ResultMetadata struct {
	RunID     string             `json:"run_id" yaml:"run_id"`
	StartTime time.Time          `json:"start_time" yaml:"start_time"`
	EndTime   time.Time          `json:"end_time" yaml:"end_time"`
	Duration  time.Duration      `json:"duration" yaml:"duration"`
	Sources   []inventory.Source `json:"sources" yaml:"sources"`
	Stats     Statistics         `json:"stats" yaml:"stats"`
}

// Statistics contains counts about the reconciliation
type Statistics struct {
	Lines          int   `json:"lines" yaml:"lines"`
	MatchedSales   int   `json:"matched_sales" yaml:"matched_sales"`
	MatchedInvoice int   `json:"matched_invoice" yaml:"matched_invoice"`
	UnitsSold      int64 `json:"units_sold" yaml:"units_sold"`
	UnitsReceived  int64 `json:"units_received" yaml:"units_received"`
	Unmatched      int   `json:"unmatched" yaml:"unmatched"`
	Duplicates     int   `json:"duplicates" yaml:"duplicates"`
	Oversold       int   `json:"oversold" yaml:"oversold"`
}

// HasWarnings returns true if there were warnings
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Warn records a non-critical issue and degrades the status.
func (r *Result) Warn(warning string) {
	r.Warnings = append(r.Warnings, warning)
	r.Status = r.Status.Worse(inventory.StatusDegraded)
}

// Oversold returns the lines whose new stock is negative.
func (r *Result) Oversold() []inventory.Line {
	var out []inventory.Line
	for _, l := range r.Lines {
		if l.Oversold() {
			out = append(out, l)
		}
	}
	return out
}

// Summary returns a human-readable summary of the result
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	msg := fmt.Sprintf("Reconciled %d ledger rows: %d sold, %d received", s.Lines, s.UnitsSold, s.UnitsReceived)
	if s.Oversold > 0 {
		msg += fmt.Sprintf(", %d oversold", s.Oversold)
	}
	if r.HasWarnings() {
		msg += fmt.Sprintf(" (%d warnings)", len(r.Warnings))
	}
	return msg
}

// Report generates a detailed plain text report of the run
func (r *Result) Report() string {
	var b strings.Builder
	s := r.Metadata.Stats

	fmt.Fprintf(&b, `
Reconciliation Report
=====================
Run: %s
Status: %s
Duration: %s
Sources: %v

`, r.Metadata.RunID, r.statusString(), r.Metadata.Duration, r.Metadata.Sources)

	fmt.Fprintf(&b, `Statistics:
-----------
Ledger Rows: %d
Matched Sales Keys: %d
Matched Invoice Keys: %d
Units Sold: %d
Units Received: %d
Unmatched Keys: %d
Duplicate Ledger Keys: %d
Oversold Rows: %d

`, s.Lines, s.MatchedSales, s.MatchedInvoice, s.UnitsSold, s.UnitsReceived, s.Unmatched, s.Duplicates, s.Oversold)

	if len(r.Reports) > 0 {
		b.WriteString("Inputs:\n-------\n")
		for _, report := range r.Reports {
			fmt.Fprintf(&b, "%s\n", report)
		}
		b.WriteString("\n")
	}

	if oversold := r.Oversold(); len(oversold) > 0 {
		fmt.Fprintf(&b, "Oversold (%d):\n--------------\n", len(oversold))
		for _, l := range oversold {
			fmt.Fprintf(&b, "%s: %d + %d - %d = %d\n", l.Key(), l.CurrentStock, l.QuantityReceived, l.QuantitySold, l.NewStock)
		}
		b.WriteString("\n")
	}

	if r.HasWarnings() {
		fmt.Fprintf(&b, "Warnings (%d):\n--------------\n", len(r.Warnings))
		for i, warning := range r.Warnings {
			fmt.Fprintf(&b, "%d. %s\n", i+1, warning)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// statusString returns a string representation of the status
func (r *Result) statusString() string {
	switch r.Status {
	case inventory.StatusFatal:
		return "❌ Failed"
	case inventory.StatusDegraded:
		return "⚠️  Success with Warnings"
	default:
		return "✅ Success"
	}
}

// Header returns the updated ledger header: ledger columns then audit columns.
// The key and stock columns take their canonical names whatever alias the ledger used.
func (r *Result) Header() []string {
	header := make([]string, 0, len(r.Columns)+len(inventory.AuditColumns))
	for _, c := range r.Columns {
		switch c {
		case r.KeyColumn:
			c = inventory.ColumnKey
		case r.StockColumn:
			c = inventory.ColumnCurrentStock
		}
		header = append(header, c)
	}
	return append(header, inventory.AuditColumns...)
}

// Record renders one line as output cells aligned with Header.
func (r *Result) Record(l inventory.Line) []string {
	record := make([]string, len(r.Columns), len(r.Columns)+len(inventory.AuditColumns))
	copy(record, l.Entry.Values)
	for i, c := range r.Columns {
		switch c {
		case r.KeyColumn:
			record[i] = l.Key().String()
		case r.StockColumn:
			record[i] = strconv.FormatInt(l.CurrentStock, 10)
		}
	}
	return append(record,
		l.SoldName,
		strconv.FormatInt(l.QuantitySold, 10),
		l.ReceivedName,
		strconv.FormatInt(l.QuantityReceived, 10),
		strconv.FormatInt(l.NewStock, 10),
	)
}

// Table converts the updated ledger into a table ready to be written as CSV.
func (r *Result) Table() *table.Table {
	t := &table.Table{Columns: r.Header(), Rows: make([][]string, len(r.Lines))}
	for i, l := range r.Lines {
		t.Rows[i] = r.Record(l)
	}
	return t
}

// ResultBuilder helps construct Result objects
type ResultBuilder struct {
	result *Result
}

// NewResultBuilder creates a new ResultBuilder
func NewResultBuilder() *ResultBuilder {
	return &ResultBuilder{
		result: &Result{
			Status:   inventory.StatusOK,
			Lines:    []inventory.Line{},
			Warnings: []string{},
			Metadata: ResultMetadata{
				StartTime: time.Now(),
				Sources:   []inventory.Source{},
			},
		},
	}
}

// WithRunID sets the run identifier
func (b *ResultBuilder) WithRunID(id string) *ResultBuilder {
	b.result.Metadata.RunID = id
	return b
}

// WithLedger records the ledger layout the lines are rendered against
func (b *ResultBuilder) WithLedger(ledger inventory.Ledger) *ResultBuilder {
	b.result.Columns = append([]string(nil), ledger.Columns...)
	b.result.KeyColumn = ledger.KeyColumn
	b.result.StockColumn = ledger.StockColumn
	return b
}

// WithLines sets the updated ledger lines
func (b *ResultBuilder) WithLines(lines []inventory.Line) *ResultBuilder {
	b.result.Lines = lines
	return b
}

// WithUnmatched adds a summary whose key is not in the ledger
func (b *ResultBuilder) WithUnmatched(s inventory.Summary) *ResultBuilder {
	b.result.Unmatched = append(b.result.Unmatched, s)
	return b
}

// WithWarning adds a warning and degrades the status
func (b *ResultBuilder) WithWarning(warning string) *ResultBuilder {
	b.result.Warn(warning)
	return b
}

// WithSources sets the sources that took part in the run
func (b *ResultBuilder) WithSources(sources ...inventory.Source) *ResultBuilder {
	b.result.Metadata.Sources = sources
	return b
}

// WithStatistics sets the result statistics
func (b *ResultBuilder) WithStatistics(stats Statistics) *ResultBuilder {
	b.result.Metadata.Stats = stats
	return b
}

// Build finalizes and returns the Result
func (b *ResultBuilder) Build() *Result {
	b.result.Metadata.EndTime = time.Now()
	b.result.Metadata.Duration = b.result.Metadata.EndTime.Sub(b.result.Metadata.StartTime)
	return b.result
}
