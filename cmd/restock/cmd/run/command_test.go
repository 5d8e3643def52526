package run_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/restock"
	"github.com/agentstation/restock/cmd/restock/cmd/run"
	"github.com/agentstation/restock/internal/cmd/application"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/extract"
	"github.com/agentstation/restock/pkg/table"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, app *application.Mock, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := run.NewCommand(app)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	ledger := writeFile(t, dir, "ledger.csv", "UPC,Description,current_stock\n100,Widget,10\n200,Gadget,4\n")
	sales := writeFile(t, dir, "sales.csv", "Entry Type,Item No,Description,Units\nSale,100,Widget,3\n")
	invoice := writeFile(t, dir, "invoice.csv", "UPC Code,Product Description,Quantity Confirmed\n100,Widget case,5\n")
	out := filepath.Join(dir, "out", "updated.csv")

	app := &application.Mock{OutputFormatFunc: func() string { return "csv" }}
	stdout, stderr, err := execute(t, app, "--ledger", ledger, "--sales", sales, "--invoice", invoice, "--out", out)
	require.NoError(t, err)

	written, err := table.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "Widget", "10", "Widget", "3", "Widget case", "5", "12"}, written.Rows[0])
	assert.Equal(t, []string{"200", "Gadget", "4", "Not Applicable", "0", "Not Applicable", "0", "4"}, written.Rows[1])

	assert.Contains(t, stdout, "new_stock")
	assert.Contains(t, stderr, "Reconciled 2 ledger rows: 3 sold, 5 received")
	assert.Contains(t, stderr, "wrote "+out)
}

func TestRunCommandInvoiceDocument(t *testing.T) {
	dir := t.TempDir()
	ledger := writeFile(t, dir, "ledger.csv", "UPC,Description,current_stock\n100,Widget,10\n")
	invoice := writeFile(t, dir, "invoice.png", "scan")

	app := &application.Mock{
		OutputFormatFunc: func() string { return "json" },
		ClientFunc: func(context.Context) (restock.Client, error) {
			return restock.New(restock.WithExtractor(extract.ExtractorFunc(
				func(context.Context, extract.Document, string) (string, error) {
					return "```csv\nUPC Code,Product Description,Quantity Confirmed\n100,Widget case,2\n```", nil
				})))
		},
	}

	stdout, _, err := execute(t, app, "-l", ledger, "-i", invoice, "--out", filepath.Join(dir, "updated.xlsx"))
	require.NoError(t, err)
	assert.Contains(t, stdout, `"new_stock": 12`)

	written, err := table.ReadFile(filepath.Join(dir, "updated.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "12", written.Rows[0][len(written.Columns)-1])
}

func TestRunCommandMissingTransactions(t *testing.T) {
	dir := t.TempDir()
	ledger := writeFile(t, dir, "ledger.csv", "UPC,current_stock\n100,10\n")

	_, _, err := execute(t, &application.Mock{}, "--ledger", ledger, "--out", filepath.Join(dir, "u.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsMissingInput(err))
	assert.Contains(t, err.Error(), "--sales")
}

func TestRunCommandDegradedStillWrites(t *testing.T) {
	dir := t.TempDir()
	ledger := writeFile(t, dir, "ledger.csv", "UPC,Description\n100,Widget\n")
	sales := writeFile(t, dir, "sales.csv", "Entry Type,Item No,Description,Units\nSale,999,Ghost,1\n")
	out := filepath.Join(dir, "u.csv")

	_, stderr, err := execute(t, &application.Mock{OutputFormatFunc: func() string { return "yaml" }},
		"--ledger", ledger, "--sales", sales, "--out", out)
	require.NoError(t, err)
	assert.FileExists(t, out)
	assert.Contains(t, stderr, "! Reconciled 1 ledger rows")
	assert.Contains(t, stderr, "current_stock")
}
