// Package testing provides utility functions for testing purposes across multiple packages.
package testing

import (
	"context"
	"testing"

	"github.com/ryclarke/release-tool/config"
)

// LoadFixture loads test configuration from the config package.
// The configPath parameter should be the relative path from the test file
// to the config directory (e.g., "../config", "../../config").
func LoadFixture(t *testing.T, configPath string) context.Context {
	t.Helper()

	viper := config.New()
	ctx := config.SetViper(context.Background(), viper)

	viper.SetConfigName("fixture")
	viper.AddConfigPath(configPath)

	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("Failed to load fixture config: %v", err)
	}

	return ctx
}
