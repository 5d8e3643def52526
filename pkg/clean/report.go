// Package clean turns raw ledger, sales and invoice tables into typed,
// key-normalized records. Cleaners never fail on malformed shape: they
// return what they could salvage plus a Report describing every degradation.
package clean

import (
	"fmt"

	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/inventory"
)

// Report describes one cleaning step.
type Report struct {
	Source      inventory.Source              `json:"source" yaml:"source"`
	Status      inventory.Status              `json:"status" yaml:"status"`
	RowsIn      int                           `json:"rows_in" yaml:"rows_in"`
	RowsKept    int                           `json:"rows_kept" yaml:"rows_kept"`
	RowsDropped int                           `json:"rows_dropped" yaml:"rows_dropped"`
	Coerced     int                           `json:"coerced" yaml:"coerced"`
	Warnings    []*errors.SchemaDegradedError `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newReport(source inventory.Source, rowsIn int) Report {
	return Report{Source: source, Status: inventory.StatusOK, RowsIn: rowsIn}
}

// Degraded reports whether any warning was raised.
func (r Report) Degraded() bool {
	return r.Status != inventory.StatusOK
}

// Errors returns the warnings as plain errors.
func (r Report) Errors() []error {
	errs := make([]error, len(r.Warnings))
	for i, w := range r.Warnings {
		errs[i] = w
	}
	return errs
}

// String summarizes the report on one line.
func (r Report) String() string {
	return fmt.Sprintf("%s: %s, %d in, %d kept, %d dropped, %d coerced, %d warnings",
		r.Source, r.Status, r.RowsIn, r.RowsKept, r.RowsDropped, r.Coerced, len(r.Warnings))
}

func (r *Report) warn(column, format string, args ...any) {
	r.Status = r.Status.Worse(inventory.StatusDegraded)
	r.Warnings = append(r.Warnings, errors.NewSchemaDegradedError(string(r.Source), column, fmt.Sprintf(format, args...)))
}

func (r *Report) finish(kept int) {
	r.RowsKept = kept
	r.RowsDropped = r.RowsIn - kept
}
