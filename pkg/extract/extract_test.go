package extract_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/extract"
)

func TestInvoice(t *testing.T) {
	var gotInstruction string
	ex := extract.ExtractorFunc(func(_ context.Context, _ extract.Document, instruction string) (string, error) {
		gotInstruction = instruction
		return invoiceCSV, nil
	})

	tbl, err := extract.Invoice(context.Background(), ex, doc(), "")
	require.NoError(t, err)

	assert.Equal(t, extract.DefaultPrompt(), gotInstruction)
	assert.Equal(t, [][]string{{"123456", "Lager 6pk", "5"}}, tbl.Rows)
}

func TestInvoiceErrors(t *testing.T) {
	called := false
	ex := extract.ExtractorFunc(func(context.Context, extract.Document, string) (string, error) {
		called = true
		return "Sorry, I cannot help with that.", nil
	})

	_, err := extract.Invoice(context.Background(), ex, extract.Document{Name: "empty.pdf", MIMEType: "application/pdf"}, "")
	assert.True(t, errors.IsExtractionFailed(err))
	assert.False(t, called, "preflight runs before extraction")

	_, err = extract.Invoice(context.Background(), ex, doc(), "read")
	assert.True(t, errors.IsMalformedOutput(err))
}

func TestCache(t *testing.T) {
	calls := 0
	ex := extract.ExtractorFunc(func(context.Context, extract.Document, string) (string, error) {
		calls++
		return invoiceCSV, nil
	})
	path := filepath.Join(t.TempDir(), "cache.gob")

	c, err := extract.NewCache(ex, 0, path)
	require.NoError(t, err)

	for range 3 {
		got, err := c.Extract(context.Background(), doc(), "read")
		require.NoError(t, err)
		assert.Equal(t, invoiceCSV, got)
	}
	assert.Equal(t, 1, calls)

	_, err = c.Extract(context.Background(), doc(), "another instruction")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Save())

	reloaded, err := extract.NewCache(ex, 0, path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())
	_, err = reloaded.Extract(context.Background(), doc(), "read")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	calls := 0
	ex := extract.ExtractorFunc(func(context.Context, extract.Document, string) (string, error) {
		calls++
		return "", errors.NewExtractionError("invoice.png", "empty response", nil)
	})
	c, err := extract.NewCache(ex, 0, "")
	require.NoError(t, err)

	for range 2 {
		_, err := c.Extract(context.Background(), doc(), "read")
		assert.True(t, errors.IsExtractionFailed(err))
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, c.Save())

	_, err = extract.NewCache(nil, 0, "")
	assert.True(t, errors.IsValidationError(err))
}

func TestCacheKey(t *testing.T) {
	a := extract.CacheKey(doc(), "x")
	assert.Len(t, a, 64)
	assert.Equal(t, a, extract.CacheKey(doc(), "x"))
	assert.NotEqual(t, a, extract.CacheKey(doc(), "y"))
}
