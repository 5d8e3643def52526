package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		env    string
		want   string
	}{
		{name: "default", config: &Config{}, want: "info"},
		{name: "verbose", config: &Config{Verbose: true}, want: "debug"},
		{name: "quiet", config: &Config{Quiet: true}, want: "warn"},
		{name: "verbose and quiet", config: &Config{Verbose: true, Quiet: true}, want: "warn"},
		{name: "explicit beats verbose", config: &Config{LogLevel: "error", Verbose: true}, want: "error"},
		{name: "invalid explicit", config: &Config{LogLevel: "loud"}, want: "info"},
		{name: "env", config: &Config{}, env: "debug", want: "debug"},
		{name: "flag beats env", config: &Config{Quiet: true}, env: "debug", want: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			assert.Equal(t, tt.want, determineLogLevel(tt.config))
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{LogLevel: "warn", LogOutput: "discard"})
	assert.Equal(t, "warn", logger.GetLevel().String())
}
