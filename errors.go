package timelint

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeTooSmall      = "too_small"
	CodeTooShort      = "too_short"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	CodeIOError       = "io_error"
	CodeTruncated     = "truncated"
	// Cross-document passes
	CodeUniqueness        = "uniqueness"
	CodeDanglingReference = "dangling_reference"
	CodeMissingAsset      = "missing_asset"
)

// Category groups issue codes into the diagnostic taxonomy reported to users.
type Category string

const (
	SchemaError         Category = "SchemaError"
	IOError             Category = "IOError"
	ParseError          Category = "ParseError"
	ReferenceWarning    Category = "ReferenceWarning"
	AssetWarning        Category = "AssetWarning"
	DuplicateKeyWarning Category = "DuplicateKeyWarning"
)

// CategoryOf maps an issue code to its category. Unknown codes are schema errors.
func CategoryOf(code string) Category {
	switch code {
	case CodeIOError:
		return IOError
	case CodeParseError:
		return ParseError
	case CodeDanglingReference:
		return ReferenceWarning
	case CodeMissingAsset:
		return AssetWarning
	case CodeDuplicateKey:
		return DuplicateKeyWarning
	default:
		return SchemaError
	}
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /3/people/0/name). Empty for document-level failures.
	Code    string // One of the codes listed above.
	Message string // Localized reason, without the location prefix.
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"field":"blurb"}) for i18n
	// and machine-readable output.
	Params map[string]any
}

// Category returns the taxonomy bucket of the issue.
func (it Issue) Category() Category { return CategoryOf(it.Code) }

// Line renders the issue in the human-readable "item[<index>].<field> <reason>"
// form used by the CLI.
func (it Issue) Line() string {
	switch {
	case it.Path == "":
		return it.Message
	case it.Code == CodeRequired:
		return Location(ParentPointer(it.Path)) + " " + it.Message
	default:
		return Location(it.Path) + " " + it.Message
	}
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /0/title
		fmt.Fprintf(b, "%s at %s", it.Code, pathOrRoot(it.Path))
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the underlying causes so errors.Is sees through Issues.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// Lines renders every issue with Issue.Line, preserving order.
func (iss Issues) Lines() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Line())
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func pathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
