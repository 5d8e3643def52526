// Package app provides the application context and dependency management
// for the restock CLI. It centralizes configuration, logging and the lazily
// built pipeline client.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/restock"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/extract"
)

// App represents the restock application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// lazily built, shared by all commands of one invocation
	mu     sync.Mutex
	client restock.Client
	cache  *extract.Cache
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Client returns the pipeline client, creating it on first use.
// A missing API key is not an error here: the client is built without an
// extractor and only runs that need document extraction fail.
func (a *App) Client(ctx context.Context) (restock.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	opts := []restock.Option{
		restock.WithLogger(a.logger),
		restock.WithPlaceholder(a.config.Placeholder),
	}

	if a.config.PromptFile != "" {
		instruction, err := extract.LoadPrompt(a.config.PromptFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, restock.WithInstruction(instruction))
	}

	extractor, err := a.extractor(ctx)
	switch {
	case err == nil:
		opts = append(opts, restock.WithExtractor(extractor))
	case errors.Is(err, errors.ErrAPIKeyRequired):
		a.logger.Debug().Msg("No API key configured, invoice documents cannot be extracted")
	default:
		return nil, err
	}

	client, err := restock.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	a.client = client
	return client, nil
}

// extractor builds the Gemini extractor, wrapped in the extraction cache
// when a cache file is configured.
func (a *App) extractor(ctx context.Context) (extract.Extractor, error) {
	apiKey, err := a.config.APIKey()
	if err != nil {
		return nil, err
	}

	backend, err := extract.NewGenAIBackend(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	opts := []extract.GeminiOption{
		extract.WithModel(a.config.Model),
		extract.WithTemperature(float32(a.config.Temperature)),
		extract.WithTimeout(a.config.ExtractionTimeout),
		extract.WithMaxRetries(a.config.MaxRetries),
		extract.WithRetryBackoff(a.config.RetryBackoff),
		extract.WithGeminiLogger(a.logger),
	}
	if a.config.DumpDir != "" {
		opts = append(opts, extract.WithDumpDir(a.config.DumpDir))
	}

	gemini, err := extract.NewGemini(backend, opts...)
	if err != nil {
		return nil, errors.NewConfigError("extraction", "invalid extraction settings", err)
	}

	if a.config.CacheFile == "" {
		return gemini, nil
	}
	cache, err := extract.NewCache(gemini, a.config.CacheTTL, a.config.CacheFile)
	if err != nil {
		return nil, err
	}
	a.cache = cache
	return cache, nil
}

// Shutdown persists the extraction cache.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cache == nil {
		return nil
	}
	return a.cache.Save()
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client (useful for testing).
func WithClient(client restock.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}
