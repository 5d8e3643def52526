package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/extract"
	"github.com/agentstation/restock/pkg/table"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	logger := zerolog.Nop()
	app, err := New("1.0.0", "abc123", "2025-01-01", "test", WithLogger(&logger))
	require.NoError(t, err)
	return app
}

func extractDoc() extract.Document {
	return *extract.NewDocument("invoice.png", []byte("scan"))
}

func TestNew(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2025-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
}

func TestClientSingleton(t *testing.T) {
	app := newTestApp(t)

	c1, err := app.Client(context.Background())
	require.NoError(t, err)
	c2, err := app.Client(context.Background())
	require.NoError(t, err)
	assert.Same(t, c1, c2)
	assert.NoError(t, app.Shutdown(context.Background()))
}

func TestClientWithoutAPIKeyCannotExtract(t *testing.T) {
	app := newTestApp(t)

	client, err := app.Client(context.Background())
	require.NoError(t, err)

	_, err = client.ExtractInvoice(context.Background(), extractDoc())
	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestClientBadPromptFile(t *testing.T) {
	app := newTestApp(t)
	app.config.PromptFile = filepath.Join(t.TempDir(), "missing.md")

	_, err := app.Client(context.Background())
	assert.Error(t, err)
}

func TestExecuteRun(t *testing.T) {
	app := newTestApp(t)
	dir := t.TempDir()
	ledger := filepath.Join(dir, "ledger.csv")
	sales := filepath.Join(dir, "sales.csv")
	out := filepath.Join(dir, "updated.csv")
	require.NoError(t, os.WriteFile(ledger, []byte("UPC,Description,current_stock\n100,Widget,10\n"), 0o600))
	require.NoError(t, os.WriteFile(sales, []byte("Entry Type,Item No,Description,Units\nSale,100,Widget,3\n"), 0o600))

	err := app.Execute(context.Background(), []string{"run", "-o", "csv", "--log-level", "error", "-l", ledger, "-s", sales, "--out", out})
	require.NoError(t, err)

	written, err := table.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "7", written.Rows[0][len(written.Columns)-1])
	assert.Equal(t, "csv", app.OutputFormat())
}

func TestExecuteRejectsFormat(t *testing.T) {
	app := newTestApp(t)

	err := app.Execute(context.Background(), []string{"version", "-o", "wide"})
	assert.Error(t, err)
}

func TestExecuteVersion(t *testing.T) {
	app := newTestApp(t)
	root := app.createRootCommand()

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version", "-v", "--log-level", "error"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, buf.String(), "restock 1.0.0")
	assert.Contains(t, buf.String(), "commit:   abc123")
}
