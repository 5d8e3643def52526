package alerts_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/restock/internal/cmd/alerts"
	"github.com/agentstation/restock/internal/cmd/output"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/inventory"
	"github.com/agentstation/restock/pkg/reconcile"
)

func TestFromResult(t *testing.T) {
	ok := reconcile.NewResultBuilder().Build()
	alert := alerts.FromResult(ok)
	assert.Equal(t, alerts.LevelSuccess, alert.Level)
	assert.Empty(t, alert.Details)

	degraded := reconcile.NewResultBuilder().WithWarning("ledger: key column not found").Build()
	require.Equal(t, inventory.StatusDegraded, degraded.Status)
	alert = alerts.FromResult(degraded)
	assert.Equal(t, alerts.LevelWarning, alert.Level)
	assert.Equal(t, []string{"ledger: key column not found"}, alert.Details)
}

func TestWritePlain(t *testing.T) {
	var buf bytes.Buffer
	alert := alerts.NewError("Extraction failed").WithError(errors.New("blocked")).WithDetails("retry later")

	require.NoError(t, alerts.NewFormatWriter(&buf, output.FormatTable).WriteAlert(alert))

	assert.Equal(t, "✗ Extraction failed: blocked\n   retry later\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	alert := alerts.NewSuccess("Rolled over 3 ledger rows").WithDetails("wrote next.csv")

	require.NoError(t, alerts.NewFormatWriter(&buf, output.FormatJSON).WriteAlert(alert))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "success", decoded["level"])
	assert.NotContains(t, decoded, "timestamp")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, alerts.NewFormatWriter(&buf, output.FormatYAML).WriteAlert(alerts.NewInfo("cache hit")))

	assert.Contains(t, buf.String(), "level: info")
	assert.Contains(t, buf.String(), "message: cache hit")
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "warning", alerts.LevelWarning.String())
	assert.Equal(t, "!", alerts.LevelWarning.Icon())
	assert.Equal(t, "unknown(9)", alerts.Level(9).String())
}
