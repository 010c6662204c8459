// Package config loads configuration files with declared, validated keys.
//
// Keys are declared up front with defaults and a required flag, loading
// fails fast when required keys are missing instead of surfacing zero
// values deep inside the program. Environment variables override file
// values.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingKeys indicates required keys absent from the loaded config.
var ErrMissingKeys = errors.New("missing required config keys")

// Key declares a config entry.
type Key struct {
	// Name is the config key, nested keys use dots ("db.host").
	Name string

	// Required keys fail Load when absent.
	Required bool

	// Default is applied when the key is absent and not required.
	Default interface{}
}

// Loader reads and validates a config file.
type Loader struct {
	v    *viper.Viper
	keys []Key
}

// New creates a loader for the given file with declared keys.
//
// The file format is derived from its extension (yaml, json, toml, ...).
// Environment variables prefixed with envPrefix override file values, dots
// in key names map to underscores ("db.host" -> PREFIX_DB_HOST).
func New(file, envPrefix string, keys ...Key) *Loader {
	v := viper.New()
	v.SetConfigFile(file)

	if envPrefix != "" {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	return &Loader{v: v, keys: keys}
}

// Load reads the file, applies defaults and validates required keys.
func (l *Loader) Load() error {
	for _, k := range l.keys {
		if k.Default != nil {
			l.v.SetDefault(k.Name, k.Default)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var missing []string

	for _, k := range l.keys {
		if k.Required && !l.v.IsSet(k.Name) {
			missing = append(missing, k.Name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingKeys, strings.Join(missing, ", "))
	}

	return nil
}

// IsSet reports whether the key has a value.
func (l *Loader) IsSet(name string) bool {
	return l.v.IsSet(name)
}

// Get returns the raw value for the key.
func (l *Loader) Get(name string) interface{} {
	return l.v.Get(name)
}

// GetString returns the key value as string.
func (l *Loader) GetString(name string) string {
	return l.v.GetString(name)
}

// GetInt returns the key value as int.
func (l *Loader) GetInt(name string) int {
	return l.v.GetInt(name)
}

// GetBool returns the key value as bool.
func (l *Loader) GetBool(name string) bool {
	return l.v.GetBool(name)
}

// GetFloat64 returns the key value as float64.
func (l *Loader) GetFloat64(name string) float64 {
	return l.v.GetFloat64(name)
}

// GetDuration returns the key value as duration.
func (l *Loader) GetDuration(name string) time.Duration {
	return l.v.GetDuration(name)
}

// Unmarshal decodes the whole config into v.
func (l *Loader) Unmarshal(target interface{}) error {
	return l.v.Unmarshal(target)
}
