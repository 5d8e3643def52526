package restock

import (
	"path/filepath"
	"strings"

	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/extract"
	"github.com/agentstation/restock/pkg/table"
)

// Inputs are the raw tables of one reconciliation run. A nil table means
// the source is absent.
type Inputs struct {
	Ledger  *table.Table
	Sales   *table.Table
	Invoice *table.Table

	// InvoiceDocument is extracted into Invoice when Invoice is nil
	InvoiceDocument *extract.Document
}

// Paths locate the input files of a run. Empty paths are skipped.
type Paths struct {
	Ledger  string
	Sales   string
	Invoice string
}

// Validate checks that the ledger and at least one transactional source are present.
func (in Inputs) Validate() error {
	if in.Ledger == nil {
		return errors.NewMissingInputError("pass --ledger with the current inventory ledger", "ledger")
	}
	if in.Sales == nil && in.Invoice == nil && in.InvoiceDocument == nil {
		return errors.NewMissingInputError("pass --sales, --invoice or both", "sales", "invoice")
	}
	return nil
}

// LoadInputs reads the files named by p. An invoice given as CSV or XLSX is
// read as an already extracted table; any other invoice file is loaded as a
// document for extraction.
func LoadInputs(p Paths) (Inputs, error) {
	var (
		in  Inputs
		err error
	)

	if p.Ledger != "" {
		if in.Ledger, err = table.ReadFile(p.Ledger); err != nil {
			return Inputs{}, err
		}
	}
	if p.Sales != "" {
		if in.Sales, err = table.ReadFile(p.Sales); err != nil {
			return Inputs{}, err
		}
	}
	if p.Invoice == "" {
		return in, nil
	}

	if _, ferr := table.DetectFormat(p.Invoice); ferr == nil || strings.EqualFold(filepath.Ext(p.Invoice), ".xls") {
		in.Invoice, err = table.ReadFile(p.Invoice)
	} else {
		in.InvoiceDocument, err = extract.LoadDocument(p.Invoice)
	}
	if err != nil {
		return Inputs{}, err
	}
	return in, nil
}
