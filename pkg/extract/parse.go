package extract

import (
	"encoding/csv"
	"strings"

	"github.com/agentstation/restock/pkg/clean"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/table"
)

const fence = "```"

// StripFences removes the markdown code fence a model wraps around its
// answer: a leading ``` or ```csv line and a trailing ```.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, fence) {
		text = strings.TrimPrefix(text, fence)
		if nl := strings.IndexByte(text, '\n'); nl >= 0 && !strings.Contains(text[:nl], ",") {
			text = text[nl+1:]
		}
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, fence)
	return strings.TrimSpace(text)
}

// ParseTable parses extracted text as a CSV invoice table.
// Parsing is strict: every record must have the header's width, at least one
// data row must follow the header, and the identifier and quantity columns
// must be present. Any violation is a MalformedOutputError.
func ParseTable(text string) (*table.Table, error) {
	body := StripFences(text)
	if body == "" {
		return nil, errors.NewMalformedOutputError(0, "no table in extracted text", nil)
	}

	reader := csv.NewReader(strings.NewReader(body))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		line := 0
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			line = parseErr.Line
		}
		return nil, errors.NewMalformedOutputError(line, "not a delimited table", err)
	}
	if len(records) < 2 {
		return nil, errors.NewMalformedOutputError(1, "header without data rows", nil)
	}

	t := table.New(records[0], records[1:]...)
	for i, c := range t.Columns {
		t.Columns[i] = strings.TrimSpace(c)
	}
	if _, ok := t.Find(clean.InvoiceKeyAliases...); !ok {
		return nil, errors.NewMalformedOutputError(1, "identifier column not found in header "+strings.Join(t.Columns, ","), nil)
	}
	if _, ok := t.Find(clean.InvoiceQuantityAliases...); !ok {
		return nil, errors.NewMalformedOutputError(1, "quantity column not found in header "+strings.Join(t.Columns, ","), nil)
	}
	return t, nil
}
