package config

import (
	"context"
	"strings"

	"github.com/spf13/viper"
)

// CfgFile is an optional config file path supplied via the --config flag.
var CfgFile string

// Init builds the root Viper instance and saves it into the context.
// Action inputs arrive in the environment as INPUT_<NAME>, so every key
// resolves through the INPUT prefix; runner metadata (GITHUB_REPOSITORY,
// GITHUB_SHA, GITHUB_TOKEN) is bound explicitly in setDefaults.
func Init(ctx context.Context) context.Context {
	v := New()

	if CfgFile != "" {
		v.SetConfigFile(CfgFile)

		// A config file is optional; inputs normally arrive via env.
		_ = v.ReadInConfig()
	}

	return SetViper(ctx, v)
}

// New creates a new Viper instance with default configuration.
func New() *viper.Viper {
	return newViper()
}

// Child creates a new Viper instance that inherits all settings from the parent context.
func Child(ctx context.Context) *viper.Viper {
	v := newViper()

	// Copy all settings from parent Viper
	for key, value := range Viper(ctx).AllSettings() {
		v.Set(key, value)
	}

	return v
}

func newViper() *viper.Viper {
	v := viper.NewWithOptions(viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")))

	v.SetEnvPrefix("input")
	v.AutomaticEnv() // read in environment variables that match

	// Initialize default settings
	setDefaults(v)

	return v
}

type contextKey struct{ key string }

var configKey = &contextKey{"viper"}

// SetViper saves the Viper instance into the context. A nil instance
// falls back to the global viper.
func SetViper(ctx context.Context, v *viper.Viper) context.Context {
	if v == nil {
		v = viper.GetViper()
	}

	return context.WithValue(ctx, configKey, v)
}

// Viper retrieves the Viper instance from the context, falling back to
// the global viper when none was stored.
func Viper(ctx context.Context) *viper.Viper {
	v := ctx.Value(configKey)
	if v == nil {
		return viper.GetViper()
	}

	return v.(*viper.Viper)
}
