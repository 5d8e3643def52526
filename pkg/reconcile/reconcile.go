// Package reconcile folds aggregated sales and invoice summaries into the
// inventory ledger, producing the updated ledger with derived audit columns.
package reconcile

import (
	"context"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/agentstation/restock/pkg/constants"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/inventory"
	"github.com/agentstation/restock/pkg/logging"
)

// Engine reconciles a ledger against transactional summaries.
type Engine struct {
	placeholder string
	logger      *zerolog.Logger
	newRunID    func() string
}

// Option configures an Engine
type Option func(*Engine) error

// WithPlaceholder sets the product name used when a key has no transaction.
func WithPlaceholder(placeholder string) Option {
	return func(e *Engine) error {
		e.placeholder = placeholder
		return nil
	}
}

// WithLogger sets the engine logger. The context logger is used when unset.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "cannot be nil")
		}
		e.logger = logger
		return nil
	}
}

// WithRunIDGenerator overrides how run IDs are created.
func WithRunIDGenerator(gen func() string) Option {
	return func(e *Engine) error {
		if gen == nil {
			return errors.NewValidationError("run_id_generator", nil, "cannot be nil")
		}
		e.newRunID = gen
		return nil
	}
}

// New creates an Engine with options
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		placeholder: constants.NotApplicable,
		newRunID:    uuid.NewString,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Reconcile runs the default engine.
func Reconcile(ctx context.Context, ledger inventory.Ledger, sales, invoice []inventory.Summary) (*Result, error) {
	e, err := New()
	if err != nil {
		return nil, err
	}
	return e.Reconcile(ctx, ledger, sales, invoice)
}

// Reconcile left-joins the ledger with the sales and invoice summaries.
//
// Every ledger row is kept. Missing movement is zero and missing names take
// the placeholder. new_stock = current_stock + received - sold, computed on
// quantities truncated to integers once. A nil summary slice marks an absent
// source; an empty one is a source with no rows.
//
// A ledger without a key column or without rows is a MissingInputError.
func (e *Engine) Reconcile(ctx context.Context, ledger inventory.Ledger, sales, invoice []inventory.Summary) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ledger.KeyColumn == "" {
		return nil, errors.NewMissingInputError("ledger has no UPC key column", string(inventory.SourceLedger))
	}
	if len(ledger.Entries) == 0 {
		return nil, errors.NewMissingInputError("ledger has no rows with a usable key", string(inventory.SourceLedger))
	}

	builder := NewResultBuilder().
		WithRunID(e.newRunID()).
		WithLedger(ledger)
	ctx = logging.WithRunID(ctx, builder.result.Metadata.RunID)
	log := e.log(ctx)

	sources := []inventory.Source{inventory.SourceLedger}
	if sales != nil {
		sources = append(sources, inventory.SourceSales)
	}
	if invoice != nil {
		sources = append(sources, inventory.SourceInvoice)
	}
	builder.WithSources(sources...)

	soldByKey := lo.KeyBy(sales, func(s inventory.Summary) inventory.Key { return s.Key })
	receivedByKey := lo.KeyBy(invoice, func(s inventory.Summary) inventory.Key { return s.Key })

	duplicates := lo.FindDuplicates(lo.Map(ledger.Entries, func(e inventory.LedgerEntry, _ int) inventory.Key { return e.Key }))
	for _, key := range duplicates {
		builder.WithWarning(fmt.Sprintf("ledger key %s appears more than once, movement applied to the first row only", key))
	}

	var stats Statistics
	stats.Duplicates = len(duplicates)
	claimed := make(map[inventory.Key]bool, len(ledger.Entries))
	lines := make([]inventory.Line, 0, len(ledger.Entries))

	for _, entry := range ledger.Entries {
		line := inventory.Line{
			Entry:        entry,
			SoldName:     e.placeholder,
			ReceivedName: e.placeholder,
		}
		line.CurrentStock = present(builder, entry.Key, entry.CurrentStock, inventory.ColumnCurrentStock)

		if !claimed[entry.Key] {
			claimed[entry.Key] = true
			if s, ok := soldByKey[entry.Key]; ok {
				line.QuantitySold = present(builder, entry.Key, s.Quantity, s.Source.QuantityColumn())
				line.SoldName = nameOr(s.Name, e.placeholder)
				stats.MatchedSales++
			}
			if r, ok := receivedByKey[entry.Key]; ok {
				line.QuantityReceived = present(builder, entry.Key, r.Quantity, r.Source.QuantityColumn())
				line.ReceivedName = nameOr(r.Name, e.placeholder)
				stats.MatchedInvoice++
			}
		}

		newStock := new(big.Int).SetInt64(line.CurrentStock)
		newStock.Add(newStock, big.NewInt(line.QuantityReceived))
		newStock.Sub(newStock, big.NewInt(line.QuantitySold))
		if !newStock.IsInt64() {
			builder.WithWarning(fmt.Sprintf("ledger key %s: new stock %s overflows, movement not applied", entry.Key, newStock))
			line.QuantitySold, line.QuantityReceived = 0, 0
			newStock.SetInt64(line.CurrentStock)
		}
		line.NewStock = newStock.Int64()
		if line.Oversold() {
			stats.Oversold++
			log.Warn().
				Str("key", entry.Key.String()).
				Int64("new_stock", line.NewStock).
				Msg("Stock went negative")
		}
		stats.UnitsSold += line.QuantitySold
		stats.UnitsReceived += line.QuantityReceived
		lines = append(lines, line)
	}

	for _, summaries := range [][]inventory.Summary{sales, invoice} {
		for _, s := range summaries {
			if claimed[s.Key] {
				continue
			}
			builder.WithUnmatched(s)
			builder.WithWarning(fmt.Sprintf("%s key %s (%s) is not in the ledger, %s not applied", s.Source, s.Key, s.Quantity, s.Source.QuantityColumn()))
		}
	}

	stats.Lines = len(lines)
	stats.Unmatched = len(builder.result.Unmatched)
	result := builder.
		WithLines(lines).
		WithStatistics(stats).
		Build()

	log.Info().
		Int("lines", stats.Lines).
		Int64("sold", stats.UnitsSold).
		Int64("received", stats.UnitsReceived).
		Int("unmatched", stats.Unmatched).
		Int("oversold", stats.Oversold).
		Str("status", string(result.Status)).
		Msg("Reconciled ledger")

	return result, nil
}

// present truncates a quantity to the integer shown in the updated ledger.
// Values outside the int64 range are shown as 0 with a warning.
func present(b *ResultBuilder, key inventory.Key, d decimal.Decimal, column string) int64 {
	n := d.Truncate(0).BigInt()
	if !n.IsInt64() {
		b.WithWarning(fmt.Sprintf("ledger key %s: %s %s is out of range, set to 0", key, column, d))
		return 0
	}
	return n.Int64()
}

func (e *Engine) log(ctx context.Context) *zerolog.Logger {
	if e.logger != nil {
		l := e.logger.With().Str("run_id", logging.RunID(ctx)).Logger()
		return &l
	}
	return logging.FromContext(ctx)
}

func nameOr(name, placeholder string) string {
	if name == "" {
		return placeholder
	}
	return name
}
