// Package config defines the timelint run configuration and how it is layered
// from defaults, an optional YAML file and TIMELINT_* environment variables.
// Command-line flags are applied on top by the caller.
package config

import (
	"fmt"
	"strings"

	timelint "github.com/reoring/timelint"
	"github.com/reoring/timelint/i18n"
	"github.com/reoring/timelint/timeline"
)

// Config contains one run's settings.
type Config struct {
	// Content is the timeline file to validate (.json, .yaml or .yml).
	Content string `koanf:"content"`

	// Assets is the directory image sources are resolved against.
	Assets string `koanf:"assets"`

	// Schema selects the item schema: full or minimal.
	Schema string `koanf:"schema"`

	// DuplicateKeys sets the severity of repeated JSON object keys: ignore, warn, error.
	DuplicateKeys string `koanf:"duplicate_keys"`

	// Strict rejects fields the schema does not declare.
	Strict bool `koanf:"strict"`

	// MaxIssues caps reported errors; 0 reports all.
	MaxIssues int `koanf:"max_issues"`

	// AssetWorkers bounds concurrent asset lookups.
	AssetWorkers int `koanf:"asset_workers"`

	// Lang picks the message catalogue.
	Lang string `koanf:"lang"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is console or json.
	LogFormat string `koanf:"log_format"`

	// LogFile, when set, also writes logs to a rotating file.
	LogFile string `koanf:"log_file"`

	// MetricsFile, when set, receives run metrics in Prometheus text format.
	MetricsFile string `koanf:"metrics_file"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Content:       "content/timeline.json",
		Assets:        "public",
		Schema:        "full",
		DuplicateKeys: "warn",
		AssetWorkers:  8,
		Lang:          "en",
		LogLevel:      "warn",
		LogFormat:     "console",
	}
}

// Validate checks enumerated values and bounds.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("%w: content must not be empty", ErrInvalidConfig)
	}
	if _, err := timeline.ParseSchemaVersion(c.Schema); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := timelint.ParseSeverity(c.DuplicateKeys); err != nil {
		return fmt.Errorf("%w: duplicate_keys: %v", ErrInvalidConfig, err)
	}
	if c.MaxIssues < 0 {
		return fmt.Errorf("%w: max_issues must not be negative", ErrInvalidConfig)
	}
	if c.AssetWorkers < 1 {
		return fmt.Errorf("%w: asset_workers must be at least 1", ErrInvalidConfig)
	}
	if !knownLang(c.Lang) {
		return fmt.Errorf("%w: unsupported lang %q (want %s)", ErrInvalidConfig, c.Lang, strings.Join(i18n.Languages(), "|"))
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q (want console|json)", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// ValidatorOptions converts the config into timeline options. The config must
// have passed Validate.
func (c *Config) ValidatorOptions() timeline.Options {
	opt := timeline.DefaultOptions()
	opt.Schema, _ = timeline.ParseSchemaVersion(c.Schema)
	opt.Strictness.OnDuplicateKey, _ = timelint.ParseSeverity(c.DuplicateKeys)
	if c.Strict {
		opt.Unknown = timelint.UnknownStrict
	}
	opt.MaxIssues = c.MaxIssues
	opt.AssetWorkers = c.AssetWorkers
	opt.Translator = i18n.New(c.Lang)
	return opt
}

func knownLang(lang string) bool {
	for _, l := range i18n.Languages() {
		if l == lang {
			return true
		}
	}
	return false
}
