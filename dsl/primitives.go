package dsl

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	timelint "github.com/reoring/timelint"
	js "github.com/reoring/timelint/jsonschema"
)

// StringSchema accepts JSON strings, optionally non-empty or with a fixed prefix.
type StringSchema struct {
	nonEmpty bool
	prefix   string
	example  string
}

// String returns a schema accepting any JSON string.
func String() *StringSchema { return &StringSchema{} }

// NonEmpty rejects "".
func (s *StringSchema) NonEmpty() *StringSchema { s.nonEmpty = true; return s }

// Prefix requires the string to start with prefix; example is shown to users
// as a well-formed value.
func (s *StringSchema) Prefix(prefix, example string) *StringSchema {
	s.prefix, s.example = prefix, example
	return s
}

func (s *StringSchema) Kind() Kind { return KindString }

func (s *StringSchema) Check(c *Ctx, at timelint.PathRef, v any, optional bool) timelint.Issues {
	str, ok := v.(string)
	if !ok {
		return timelint.Issues{c.typeIssue(at, s, optional)}
	}
	var iss timelint.Issues
	if s.nonEmpty && str == "" {
		iss = timelint.AppendIssues(iss, at.Issue(timelint.CodeTooShort, c.msg("too_short", nil), "minLength", 1))
	}
	if s.prefix != "" && !strings.HasPrefix(str, s.prefix) {
		msg := c.msg("invalid_format.prefix", map[string]string{"prefix": s.prefix, "example": s.example})
		iss = timelint.AppendIssues(iss, at.Issue(timelint.CodeInvalidFormat, msg, "prefix", s.prefix, "got", str))
	}
	return iss
}

func (s *StringSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "string"}
	if s.nonEmpty {
		out.MinLength = js.Int(1)
	}
	if s.prefix != "" {
		out.Pattern = "^" + regexp.QuoteMeta(s.prefix)
	}
	return out
}

// NumberSchema accepts JSON numbers, optionally whole and bounded below.
type NumberSchema struct {
	integer bool
	min     *float64
}

// Number returns a schema accepting any JSON number.
func Number() *NumberSchema { return &NumberSchema{} }

// Int returns a schema accepting whole JSON numbers.
func Int() *NumberSchema { return &NumberSchema{integer: true} }

// Min sets an inclusive lower bound.
func (s *NumberSchema) Min(v float64) *NumberSchema { s.min = &v; return s }

func (s *NumberSchema) Kind() Kind { return KindNumber }

func (s *NumberSchema) Check(c *Ctx, at timelint.PathRef, v any, optional bool) timelint.Issues {
	f, ok := toFloat(v)
	if !ok {
		return timelint.Issues{c.typeIssue(at, s, optional)}
	}
	var iss timelint.Issues
	if s.integer && !isWhole(v, f) {
		iss = timelint.AppendIssues(iss, at.Issue(timelint.CodeInvalidFormat, c.msg("invalid_format.int", nil), "got", f))
	}
	if s.min != nil && f < *s.min {
		bound := strconv.FormatFloat(*s.min, 'f', -1, 64)
		iss = timelint.AppendIssues(iss, at.Issue(timelint.CodeTooSmall, c.msg("too_small", map[string]string{"min": bound}), "min", *s.min, "got", f))
	}
	return iss
}

func (s *NumberSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "number"}
	if s.integer {
		out.Type = "integer"
	}
	if s.min != nil {
		out.Minimum = js.Float(*s.min)
	}
	return out
}

// isWhole rejects fractional values; JSON numbers must also be written without
// a fraction or exponent so they decode into Go integers.
func isWhole(v any, f float64) bool {
	if n, ok := v.(json.Number); ok {
		_, err := strconv.ParseInt(string(n), 10, 64)
		return err == nil
	}
	return f == math.Trunc(f)
}

// toFloat accepts the numeric shapes produced by the JSON and YAML decoders.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
