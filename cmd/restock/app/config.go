package app

import (
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/restock/internal/config"
	"github.com/agentstation/restock/pkg/constants"
	"github.com/agentstation/restock/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string

	// Config file
	ConfigFile string

	// Extraction configuration
	Model             string
	Temperature       float64
	ExtractionTimeout time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
	PromptFile        string
	CacheFile         string
	CacheTTL          time.Duration
	DumpDir           string

	// Reconciliation configuration
	Placeholder string

	// Logging configuration
	LogFormat string
	LogOutput string

	// source of credentials, nil means the global Viper
	viper *viper.Viper
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.restock.yaml or ./.restock.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile loads configuration, reading the named file instead of
// searching the standard locations when path is set.
func LoadConfigFile(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix("RESTOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if err := bindAPIKeys(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "reading "+v.ConfigFileUsed(), err)
			}
		}
	}

	return &Config{
		Verbose:  v.GetBool("verbose"),
		Quiet:    v.GetBool("quiet"),
		NoColor:  v.GetBool("no_color"),
		Format:   v.GetString("format"),
		LogLevel: v.GetString("log_level"),

		ConfigFile: v.ConfigFileUsed(),

		Model:             v.GetString("model"),
		Temperature:       v.GetFloat64("temperature"),
		ExtractionTimeout: v.GetDuration("extraction_timeout"),
		MaxRetries:        v.GetInt("max_retries"),
		RetryBackoff:      v.GetDuration("retry_backoff"),
		PromptFile:        v.GetString("prompt_file"),
		CacheFile:         v.GetString("cache_file"),
		CacheTTL:          v.GetDuration("cache_ttl"),
		DumpDir:           v.GetString("dump_dir"),

		Placeholder: v.GetString("placeholder"),

		LogFormat: getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),

		viper: v,
	}, nil
}

// APIKey returns the configured Gemini API key.
func (c *Config) APIKey() (string, error) {
	return config.APIKeyFrom(c.viper)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over the config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model", constants.DefaultModel)
	v.SetDefault("temperature", constants.DefaultTemperature)
	v.SetDefault("extraction_timeout", constants.ExtractionTimeout)
	v.SetDefault("max_retries", constants.MaxRetries)
	v.SetDefault("retry_backoff", constants.RetryBackoff)
	v.SetDefault("cache_ttl", constants.ExtractionCacheTTL)
	v.SetDefault("placeholder", constants.NotApplicable)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first because godotenv never overrides a set variable.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// bindAPIKeys binds the API key variables without the RESTOCK_ prefix.
func bindAPIKeys(v *viper.Viper) error {
	for _, key := range []string{config.GeminiAPIKey, config.GoogleAPIKey} {
		if err := v.BindEnv(strings.ToLower(key), key); err != nil {
			return errors.NewConfigError("env", "binding "+key, err)
		}
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
