package dsl

import (
	timelint "github.com/reoring/timelint"
	"github.com/reoring/timelint/i18n"
	js "github.com/reoring/timelint/jsonschema"
)

// Kind identifies a descriptor node type.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindArray
	KindObject
)

// Schema is one node of an explicit schema description. Check walks a decoded
// value (map[string]any, []any, string, json.Number ...) and returns every
// violation it finds; it never stops at the first one.
//
// optional tells the node whether its value sits under an optional field, which
// only changes the wording of type mismatches.
type Schema interface {
	Kind() Kind
	Check(c *Ctx, at timelint.PathRef, v any, optional bool) timelint.Issues
	JSONSchema() *js.Schema
}

// Ctx carries per-walk settings. A zero Ctx is valid: English messages and
// unknown fields passed through.
type Ctx struct {
	Translator i18n.Translator
	Unknown    timelint.UnknownPolicy
}

func (c *Ctx) msg(key string, data map[string]string) string {
	if c == nil || c.Translator == nil {
		return i18n.Default.Message(key, data)
	}
	return c.Translator.Message(key, data)
}

// typeIssue reports a value of the wrong JSON type.
func (c *Ctx) typeIssue(at timelint.PathRef, s Schema, optional bool) timelint.Issue {
	key := "invalid_type"
	if optional {
		key = "invalid_type.optional"
	}
	msg := c.msg(key, map[string]string{"expected": c.expected(s)})
	return at.Issue(timelint.CodeInvalidType, msg, "expected", kindName(s.Kind()))
}

// expected renders the localized noun phrase for a schema ("a string",
// "an array of objects").
func (c *Ctx) expected(s Schema) string {
	switch s.Kind() {
	case KindString:
		return c.msg("expected.string", nil)
	case KindNumber:
		return c.msg("expected.number", nil)
	case KindObject:
		return c.msg("expected.object", nil)
	case KindArray:
		elem := "objects"
		if a, ok := s.(*ArraySchema); ok {
			elem = pluralKey(a.elem.Kind())
		}
		return c.msg("expected.array", map[string]string{"elem": c.msg("expected."+elem, nil)})
	}
	return ""
}

func pluralKey(k Kind) string {
	switch k {
	case KindString:
		return "strings"
	case KindNumber:
		return "numbers"
	case KindArray:
		return "arrays"
	default:
		return "objects"
	}
}

func kindName(k Kind) string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindArray:
		return "array"
	default:
		return "object"
	}
}
