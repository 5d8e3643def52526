package extract

import (
	"context"

	"github.com/agentstation/restock/pkg/table"
)

// Extractor turns a document into raw text following an instruction.
type Extractor interface {
	Extract(ctx context.Context, doc Document, instruction string) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, doc Document, instruction string) (string, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, doc Document, instruction string) (string, error) {
	return f(ctx, doc, instruction)
}

// Invoice runs the full extraction contract: preflight, extract, then
// strictly parse the returned text into an invoice table. An empty
// instruction uses the built-in prompt.
func Invoice(ctx context.Context, extractor Extractor, doc Document, instruction string) (*table.Table, error) {
	if err := Preflight(doc); err != nil {
		return nil, err
	}
	if instruction == "" {
		instruction = DefaultPrompt()
	}

	text, err := extractor.Extract(ctx, doc, instruction)
	if err != nil {
		return nil, err
	}
	return ParseTable(text)
}
