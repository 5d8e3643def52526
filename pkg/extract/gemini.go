package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/rs/zerolog"

	"github.com/agentstation/restock/pkg/constants"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/logging"
)

// Gemini extracts documents with a Gemini model.
//
// Each attempt uploads the document, waits for it to become active, asks the
// model and deletes the upload on every exit path. Attempts are bounded by a
// per-attempt timeout and a retry budget with exponential backoff. Blocked
// answers are not retried.
type Gemini struct {
	backend            Backend
	model              string
	temperature        float32
	timeout            time.Duration
	maxRetries         int
	retryBackoff       time.Duration
	activationTimeout  time.Duration
	activationInterval time.Duration
	dumpDir            string
	logger             *zerolog.Logger
	now                func() time.Time
}

// GeminiOption configures a Gemini extractor.
type GeminiOption func(*Gemini) error

// WithModel sets the model name.
func WithModel(model string) GeminiOption {
	return func(g *Gemini) error {
		if model == "" {
			return errors.NewValidationError("model", model, "cannot be empty")
		}
		g.model = model
		return nil
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) GeminiOption {
	return func(g *Gemini) error {
		if t < 0 || t > 2 {
			return errors.NewValidationError("temperature", t, "must be between 0 and 2")
		}
		g.temperature = t
		return nil
	}
}

// WithTimeout bounds each extraction attempt.
func WithTimeout(d time.Duration) GeminiOption {
	return func(g *Gemini) error {
		if d <= 0 {
			return errors.NewValidationError("timeout", d, "must be positive")
		}
		g.timeout = d
		return nil
	}
}

// WithMaxRetries sets how many times a failed attempt is retried.
func WithMaxRetries(n int) GeminiOption {
	return func(g *Gemini) error {
		if n < 0 {
			return errors.NewValidationError("max_retries", n, "cannot be negative")
		}
		g.maxRetries = n
		return nil
	}
}

// WithRetryBackoff sets the initial delay between attempts.
func WithRetryBackoff(d time.Duration) GeminiOption {
	return func(g *Gemini) error {
		if d <= 0 {
			return errors.NewValidationError("retry_backoff", d, "must be positive")
		}
		g.retryBackoff = d
		return nil
	}
}

// WithActivation sets how long to wait for an upload to become active and how often to check.
func WithActivation(timeout, interval time.Duration) GeminiOption {
	return func(g *Gemini) error {
		if timeout <= 0 || interval <= 0 {
			return errors.NewValidationError("activation", timeout, "timeout and interval must be positive")
		}
		g.activationTimeout = timeout
		g.activationInterval = interval
		return nil
	}
}

// WithDumpDir saves every raw model answer under dir for debugging.
func WithDumpDir(dir string) GeminiOption {
	return func(g *Gemini) error {
		g.dumpDir = dir
		return nil
	}
}

// WithGeminiLogger sets the logger. The context logger is used when unset.
func WithGeminiLogger(logger *zerolog.Logger) GeminiOption {
	return func(g *Gemini) error {
		g.logger = logger
		return nil
	}
}

// WithClock overrides the clock used for dump file names.
func WithClock(now func() time.Time) GeminiOption {
	return func(g *Gemini) error {
		g.now = now
		return nil
	}
}

// NewGemini creates a Gemini extractor over the given backend.
func NewGemini(backend Backend, opts ...GeminiOption) (*Gemini, error) {
	if backend == nil {
		return nil, errors.NewValidationError("backend", nil, "cannot be nil")
	}
	g := &Gemini{
		backend:            backend,
		model:              constants.DefaultModel,
		temperature:        constants.DefaultTemperature,
		timeout:            constants.ExtractionTimeout,
		maxRetries:         constants.MaxRetries,
		retryBackoff:       constants.RetryBackoff,
		activationTimeout:  constants.FileActivationTimeout,
		activationInterval: constants.FileActivationPoll,
		now:                time.Now,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string {
	return g.model
}

// Extract implements Extractor.
func (g *Gemini) Extract(ctx context.Context, doc Document, instruction string) (string, error) {
	ctx = logging.WithDocument(ctx, doc.Name)
	log := g.log(ctx)

	var (
		text     string
		attempts int
	)
	op := func() error {
		attempts++
		var err error
		text, err = g.attempt(ctx, doc, instruction)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Int("attempt", attempts).Dur("wait", wait).Msg("Extraction attempt failed, retrying")
	}

	err := backoff.RetryNotify(op, backoff.WithContext(g.retryPolicy(), ctx), notify)
	if err != nil {
		var extractErr *errors.ExtractionError
		if !errors.As(err, &extractErr) {
			extractErr = errors.NewExtractionError(doc.Name, "backend error", err)
		}
		extractErr.Attempts = attempts
		log.Error().Err(extractErr).Msg("Extraction failed")
		return "", extractErr
	}

	log.Info().Int("attempts", attempts).Int("bytes", len(text)).Msg("Extracted document")
	g.dump(ctx, doc, text)
	return text, nil
}

// retryPolicy allows at most maxRetries retries. backoff.WithMaxRetries treats
// zero as unlimited, so zero retries is a single attempt via StopBackOff.
func (g *Gemini) retryPolicy() backoff.BackOff {
	if g.maxRetries == 0 {
		return &backoff.StopBackOff{}
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = g.retryBackoff
	policy.MaxInterval = constants.MaxRetryBackoff
	policy.MaxElapsedTime = constants.MaxExtractionElapsed
	return backoff.WithMaxRetries(policy, uint64(g.maxRetries))
}

// attempt performs one upload, generate, delete cycle.
func (g *Gemini) attempt(ctx context.Context, doc Document, instruction string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	log := g.log(ctx)

	file, err := g.backend.UploadFile(ctx, doc)
	if err != nil {
		return "", err
	}
	log.Debug().Str("file", file.Name).Msg("Uploaded document")
	defer g.cleanup(ctx, file.Name)

	file, err = g.waitActive(ctx, file)
	if err != nil {
		return "", err
	}

	gen, err := g.backend.Generate(ctx, GenerateRequest{
		Model:       g.model,
		Instruction: instruction,
		Temperature: g.temperature,
		File:        file,
	})
	if err != nil {
		return "", err
	}
	if gen.BlockReason != "" {
		log.Error().Str("block_reason", gen.BlockReason).Msg("Extraction blocked")
		e := errors.NewExtractionError(doc.Name, "response blocked", nil)
		e.BlockReason = gen.BlockReason
		return "", e
	}
	if gen.Text == "" {
		return "", errors.NewExtractionError(doc.Name, "empty response", nil)
	}
	return gen.Text, nil
}

// cleanup deletes an upload with a context that outlives attempt cancellation.
func (g *Gemini) cleanup(ctx context.Context, name string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.CleanupTimeout)
	defer cancel()

	if err := g.backend.DeleteFile(ctx, name); err != nil {
		g.log(ctx).Error().Err(err).Str("file", name).Msg("Failed to delete uploaded document")
		return
	}
	g.log(ctx).Debug().Str("file", name).Msg("Deleted uploaded document")
}

func (g *Gemini) waitActive(ctx context.Context, file *RemoteFile) (*RemoteFile, error) {
	deadline := time.Now().Add(g.activationTimeout)
	for {
		switch file.State {
		case FileActive, FileStateUnspecified, "":
			return file, nil
		case FileFailed:
			return nil, errors.NewExtractionError(file.Name, "backend failed to process the upload", nil)
		}
		if time.Now().After(deadline) {
			return nil, errors.NewTimeoutError("file activation", g.activationTimeout.String(), "upload did not become active")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.activationInterval):
		}

		next, err := g.backend.GetFile(ctx, file.Name)
		if err != nil {
			return nil, err
		}
		file = next
	}
}

func (g *Gemini) dump(ctx context.Context, doc Document, text string) {
	if g.dumpDir == "" {
		return
	}
	if err := os.MkdirAll(g.dumpDir, constants.DirPermissions); err != nil {
		g.log(ctx).Error().Err(err).Str("dir", g.dumpDir).Msg("Failed to create dump directory")
		return
	}
	name := fmt.Sprintf("%s_%s.txt", doc.BaseName(), g.now().Format(constants.TimeFormatFilename))
	path := filepath.Join(g.dumpDir, name)
	if err := os.WriteFile(path, []byte(text), constants.FilePermissions); err != nil {
		g.log(ctx).Error().Err(err).Str("path", path).Msg("Failed to write raw response")
		return
	}
	g.log(ctx).Debug().Str("path", path).Msg("Saved raw response")
}

func (g *Gemini) log(ctx context.Context) *zerolog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return logging.FromContext(ctx)
}

// retryable reports whether another attempt may succeed.
func retryable(err error) bool {
	var extractErr *errors.ExtractionError
	if errors.As(err, &extractErr) {
		return !extractErr.Blocked()
	}
	var apiErr *errors.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}
