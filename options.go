package restock

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/restock/pkg/constants"
	"github.com/agentstation/restock/pkg/errors"
	"github.com/agentstation/restock/pkg/extract"
)

// Option is a function that configures a Client
type Option func(*config) error

// config holds the client configuration
type config struct {
	extractor   extract.Extractor
	instruction string
	placeholder string
	logger      *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		placeholder: constants.NotApplicable,
	}
}

// apply applies the given options to the config
func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithExtractor configures the document extractor used for invoice documents
func WithExtractor(extractor extract.Extractor) Option {
	return func(c *config) error {
		c.extractor = extractor
		return nil
	}
}

// WithInstruction configures the extraction prompt. The built-in prompt is used when empty.
func WithInstruction(instruction string) Option {
	return func(c *config) error {
		c.instruction = instruction
		return nil
	}
}

// WithPlaceholder configures the product name shown for keys with no transaction
func WithPlaceholder(placeholder string) Option {
	return func(c *config) error {
		if placeholder == "" {
			return errors.NewValidationError("placeholder", placeholder, "cannot be empty")
		}
		c.placeholder = placeholder
		return nil
	}
}

// WithLogger configures the client logger. The context logger is used when unset.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
