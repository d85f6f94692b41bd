package timelint

import (
	"fmt"
	"path/filepath"
	"strings"
)

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownPassthrough UnknownPolicy = iota // Accept unknown keys silently.
	UnknownStrict                           // Reject unknown keys with an error.
)

// ParseUnknownPolicy accepts "passthrough" or "strict".
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "passthrough":
		return UnknownPassthrough, nil
	case "strict":
		return UnknownStrict, nil
	}
	return UnknownPassthrough, fmt.Errorf("unknown field policy %q (want passthrough|strict)", s)
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "ignore"
	}
}

// ParseSeverity accepts "ignore", "warn" or "error".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "off":
		return Ignore, nil
	case "", "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return Warn, fmt.Errorf("unknown severity %q (want ignore|warn|error)", s)
}

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error (duplicate JSON keys).
}

// Format names the encoding of a content document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFromPath picks the format from the file extension; anything that is
// not .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}
