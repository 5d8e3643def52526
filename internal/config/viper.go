// Package config resolves credentials from Viper and the environment.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/agentstation/restock/pkg/errors"
)

// API key variables, in lookup order.
const (
	GeminiAPIKey = "GEMINI_API_KEY"
	GoogleAPIKey = "GOOGLE_API_KEY"
)

// GetString is a helper to get string values from the global Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	return GetStringFrom(nil, key)
}

// GetStringFrom is GetString for a specific Viper instance. A nil instance
// uses the global one.
func GetStringFrom(v *viper.Viper, key string) string {
	if v == nil {
		v = viper.GetViper()
	}
	osValue := os.Getenv(key)
	viperValue := v.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// APIKey returns the Gemini API key, falling back to the Google key.
func APIKey() (string, error) {
	return APIKeyFrom(nil)
}

// APIKeyFrom is APIKey for a specific Viper instance.
func APIKeyFrom(v *viper.Viper) (string, error) {
	for _, key := range []string{GeminiAPIKey, GoogleAPIKey} {
		if value := GetStringFrom(v, key); value != "" {
			return value, nil
		}
	}
	return "", &errors.AuthenticationError{
		Provider: "gemini",
		Method:   "api-key",
		Message:  "set " + GeminiAPIKey + " or " + GoogleAPIKey + " to extract invoice documents",
	}
}

// HasAPIKey reports whether an API key is configured without returning it.
func HasAPIKey() bool {
	_, err := APIKey()
	return err == nil
}
