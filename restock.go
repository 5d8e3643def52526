// Package restock reconciles a retail inventory ledger against a sales log
// and a supplier invoice, producing an updated ledger.
//
// A Client runs the whole pipeline: the invoice document is extracted into a
// table, each input is cleaned into the shared key space, transactions are
// aggregated per key and folded into the ledger.
//
//	client, err := restock.New(restock.WithExtractor(gemini))
//	inputs, err := restock.LoadInputs(restock.Paths{Ledger: "ledger.xlsx", Sales: "sales.xlsx", Invoice: "invoice.pdf"})
//	result, err := client.Run(ctx, inputs)
package restock

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/restock/pkg/clean"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/extract"
	"github.com/agentstation/restock/pkg/inventory"
	"github.com/agentstation/restock/pkg/logging"
	"github.com/agentstation/restock/pkg/reconcile"
	"github.com/agentstation/restock/pkg/table"
)

// Client runs reconciliation pipelines.
type Client interface {
	// Run cleans, aggregates and reconciles one set of inputs
	Run(ctx context.Context, in Inputs) (*reconcile.Result, error)

	// ExtractInvoice converts an invoice document into an invoice table
	ExtractInvoice(ctx context.Context, doc extract.Document) (*table.Table, error)

	// OnWarning registers a callback for run warnings
	OnWarning(WarningHook)

	// OnOversell registers a callback for oversold lines
	OnOversell(OversellHook)
}

// client is the default implementation of the Client interface
type client struct {
	config *config
	engine *reconcile.Engine
	*hooks
}

// New creates a new Client with the given options
func New(opts ...Option) (Client, error) {
	cfg := defaultConfig()
	if err := cfg.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	engineOpts := []reconcile.Option{reconcile.WithPlaceholder(cfg.placeholder)}
	if cfg.logger != nil {
		engineOpts = append(engineOpts, reconcile.WithLogger(cfg.logger))
	}
	engine, err := reconcile.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	return &client{config: cfg, engine: engine, hooks: newHooks()}, nil
}

// ExtractInvoice converts an invoice document into an invoice table.
func (c *client) ExtractInvoice(ctx context.Context, doc extract.Document) (*table.Table, error) {
	if c.config.extractor == nil {
		return nil, errors.NewConfigError("extractor", "no document extractor configured, set GEMINI_API_KEY", nil)
	}
	ctx = logging.WithOperation(logging.WithDocument(ctx, doc.Name), "extract")
	c.log(ctx).Info().Str("mime_type", doc.MIMEType).Msg("Extracting invoice")
	return extract.Invoice(ctx, c.config.extractor, doc, c.config.instruction)
}

// Run cleans, aggregates and reconciles one set of inputs.
//
// The ledger is required, and at least one of the sales table, the invoice
// table or the invoice document. Cleaning problems degrade the result;
// missing inputs and extraction failures abort the run.
func (c *client) Run(ctx context.Context, in Inputs) (*reconcile.Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ctx = logging.WithOperation(ctx, "run")

	invoiceTable := in.Invoice
	if invoiceTable == nil && in.InvoiceDocument != nil {
		var err error
		if invoiceTable, err = c.ExtractInvoice(ctx, *in.InvoiceDocument); err != nil {
			return nil, err
		}
	}

	ledger, ledgerReport := clean.Ledger(in.Ledger)
	reports := []clean.Report{ledgerReport}

	var sales, invoice []inventory.Summary
	if in.Sales != nil {
		movements, report := clean.Sales(in.Sales)
		reports = append(reports, report)
		sales = reconcile.Aggregate(inventory.SourceSales, movements)
	}
	if invoiceTable != nil {
		movements, report := clean.Invoice(invoiceTable)
		reports = append(reports, report)
		invoice = reconcile.Aggregate(inventory.SourceInvoice, movements)
	}

	for _, r := range reports {
		c.logReport(logging.WithSource(ctx, r.Source.String()), r)
	}

	result, err := c.engine.Reconcile(ctx, ledger, sales, invoice)
	if err != nil {
		return nil, err
	}
	joinWarnings := result.Warnings

	result.Reports = reports
	result.Warnings = nil
	for _, r := range reports {
		for _, w := range r.Warnings {
			result.Warn(w.Error())
			c.triggerWarning(w)
		}
	}
	for _, w := range joinWarnings {
		result.Warn(w)
		c.triggerWarning(errors.New(w))
	}
	for _, line := range result.Oversold() {
		c.triggerOversell(line)
	}

	return result, nil
}

func (c *client) logReport(ctx context.Context, r clean.Report) {
	log := c.log(ctx)
	for _, w := range r.Warnings {
		log.Warn().Str("column", w.Column).Msg(w.Message)
	}
	log.Debug().
		Str("status", string(r.Status)).
		Int("rows_in", r.RowsIn).
		Int("rows_kept", r.RowsKept).
		Int("coerced", r.Coerced).
		Msg("Cleaned input")
}

func (c *client) log(ctx context.Context) *zerolog.Logger {
	if c.config.logger != nil {
		return c.config.logger
	}
	return logging.FromContext(ctx)
}
