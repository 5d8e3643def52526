package rollover_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/restock/cmd/restock/cmd/rollover"
	"github.com/agentstation/restock/internal/cmd/application"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/table"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rollover.NewCommand(&application.Mock{})
	var errOut bytes.Buffer
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return errOut.String(), err
}

func TestRolloverCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "updated.csv")
	require.NoError(t, os.WriteFile(in, []byte(
		"UPC,Description,current_stock,sold_product_name,quantity_sold,received_product_name,quantity_received,new_stock\n"+
			"100,Widget,10,Widget,3,Widget case,5,12\n"), 0o600))
	out := filepath.Join(dir, "next.xlsx")

	stderr, err := execute(t, "--in", in, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Rolled over 1 ledger rows")

	next, err := table.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"UPC", "Description", "current_stock"}, next.Columns)
	assert.Equal(t, []string{"100", "Widget", "12"}, next.Rows[0])
}

func TestRolloverCommandNotUpdated(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "ledger.csv")
	require.NoError(t, os.WriteFile(in, []byte("UPC,current_stock\n100,10\n"), 0o600))

	_, err := execute(t, "--in", in, "--out", filepath.Join(dir, "next.csv"))
	assert.True(t, errors.IsValidationError(err))
	assert.NoFileExists(t, filepath.Join(dir, "next.csv"))
}

func TestRolloverCommandFlagsRequired(t *testing.T) {
	_, err := execute(t, "--in", "updated.csv")
	assert.True(t, errors.IsMissingInput(err))
}
