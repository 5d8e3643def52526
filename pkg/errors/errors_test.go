package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/restock/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestSchemaDegradedError(t *testing.T) {
	t.Run("with column", func(t *testing.T) {
		err := pkgerrors.NewSchemaDegradedError("ledger", "current_stock", "column not found, created with 0")
		assert.Equal(t, `ledger: column "current_stock": column not found, created with 0`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrSchemaDegraded))
	})

	t.Run("without column", func(t *testing.T) {
		err := &pkgerrors.SchemaDegradedError{Source: "sales", Message: "header row not found"}
		assert.Equal(t, "sales: header row not found", err.Error())
		assert.True(t, pkgerrors.IsSchemaDegraded(err))
		assert.False(t, pkgerrors.IsMissingInput(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("cleaning: %w", pkgerrors.NewSchemaDegradedError("invoice", "", "x"))
		assert.True(t, pkgerrors.IsSchemaDegraded(wrapped))
	})
}

func TestMissingInputError(t *testing.T) {
	t.Run("single input", func(t *testing.T) {
		err := pkgerrors.NewMissingInputError("pass --ledger", "ledger")
		assert.Equal(t, "missing required input: ledger (pass --ledger)", err.Error())
		assert.True(t, pkgerrors.IsMissingInput(err))
	})

	t.Run("alternatives", func(t *testing.T) {
		err := pkgerrors.NewMissingInputError("", "sales", "invoice")
		assert.Equal(t, "missing required input: sales or invoice", err.Error())
	})

	t.Run("joined", func(t *testing.T) {
		joined := errors.Join(errors.New("run aborted"), pkgerrors.NewMissingInputError("", "ledger"))
		assert.True(t, pkgerrors.IsMissingInput(joined))
	})
}

func TestExtractionError(t *testing.T) {
	t.Run("blocked", func(t *testing.T) {
		err := &pkgerrors.ExtractionError{Document: "inv.pdf", Reason: "response was blocked", BlockReason: "SAFETY"}
		assert.True(t, err.Blocked())
		assert.True(t, pkgerrors.IsExtractionFailed(err))
		assert.Contains(t, err.Error(), "inv.pdf")
		assert.Contains(t, err.Error(), "SAFETY")
	})

	t.Run("attempts and cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := pkgerrors.NewExtractionError("inv.pdf", "backend unavailable", cause)
		err.Attempts = 3
		assert.Contains(t, err.Error(), "after 3 attempts")
		assert.Equal(t, cause, err.Unwrap())
		assert.False(t, err.Blocked())
	})
}

func TestMalformedOutputError(t *testing.T) {
	t.Run("with line", func(t *testing.T) {
		err := pkgerrors.NewMalformedOutputError(4, "wrong number of fields", nil)
		assert.Equal(t, "malformed extraction output at line 4: wrong number of fields", err.Error())
		assert.True(t, pkgerrors.IsMalformedOutput(err))
	})

	t.Run("without line", func(t *testing.T) {
		err := pkgerrors.NewMalformedOutputError(0, "no header", nil)
		assert.Equal(t, "malformed extraction output: no header", err.Error())
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Field: "new_stock", Message: "column not found"}
		assert.Equal(t, "validation failed for field new_stock: column not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("", nil, "empty table")
		assert.Equal(t, "validation failed: empty table", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		rateLimited bool
		temporary   bool
	}{
		{name: "rate limited", status: 429, rateLimited: true, temporary: true},
		{name: "server error", status: 503, temporary: true},
		{name: "bad request", status: 400},
		{name: "unknown status", status: 0, temporary: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("gemini", tt.status, "boom")
			assert.Equal(t, tt.rateLimited, pkgerrors.IsRateLimited(err))
			assert.Equal(t, tt.temporary, err.Temporary())
			assert.Contains(t, err.Error(), "gemini")
		})
	}

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("connection timeout")
		err := pkgerrors.WrapAPI("gemini", 500, base)
		var apiErr *pkgerrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, base, apiErr.Unwrap())
		assert.Nil(t, pkgerrors.WrapAPI("gemini", 500, nil))
	})
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("extract", "no extractor configured", nil)
	assert.Contains(t, err.Error(), "extract")
	assert.Contains(t, err.Error(), "no extractor configured")
}

func TestAuthenticationError(t *testing.T) {
	err := &pkgerrors.AuthenticationError{Provider: "gemini", Method: "api_key", Message: "GEMINI_API_KEY not set"}
	assert.True(t, errors.Is(err, pkgerrors.ErrAPIKeyRequired))
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestTimeoutError(t *testing.T) {
	err := pkgerrors.NewTimeoutError("extract", "2m0s", "backend did not answer")
	assert.True(t, pkgerrors.IsTimeout(err))
	assert.Contains(t, err.Error(), "2m0s")
}

func TestParseError(t *testing.T) {
	t.Run("with line", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "csv", File: "ledger.csv", Line: 3, Message: "bare quote"}
		assert.Equal(t, "parse error in csv at ledger.csv:3: bare quote", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapParse("xlsx", "sales.xlsx", errors.New("zip: not a valid zip file"))
		var parseErr *pkgerrors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "xlsx", parseErr.Format)
		assert.Nil(t, pkgerrors.WrapParse("xlsx", "x", nil))
	})
}

func TestIOError(t *testing.T) {
	baseErr := errors.New("permission denied")
	err := pkgerrors.WrapIO("read", "/tmp/ledger.csv", baseErr)
	ioErr, ok := err.(*pkgerrors.IOError)
	require.True(t, ok)
	assert.Equal(t, "read", ioErr.Operation)
	assert.Equal(t, baseErr, ioErr.Unwrap())
	assert.Contains(t, err.Error(), "/tmp/ledger.csv")
	assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
}
