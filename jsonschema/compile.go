package jsonschema

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	sj "github.com/santhosh-tekuri/jsonschema/v5"
)

const defaultResource = "timelint.schema.json"

// Compiled is an exported schema that went through a JSON Schema compiler.
type Compiled struct {
	inner *sj.Schema
}

// Violation is one leaf failure reported by Compiled.Validate.
type Violation struct {
	Path    string // JSON Pointer of the offending instance
	Keyword string
	Message string
}

// Compile marshals s and compiles it with santhosh-tekuri/jsonschema. It proves
// the exported document is well-formed JSON Schema.
func Compile(s *Schema) (*Compiled, error) {
	if s == nil {
		return nil, errors.New("nil schema")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	url := s.ID
	if url == "" {
		url = defaultResource
	}
	c := sj.NewCompiler()
	c.Draft = sj.Draft2020
	if err := c.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	inner, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Compiled{inner: inner}, nil
}

// Validate checks a decoded document (any JSON-compatible tree) against the
// compiled schema and flattens the failure tree into leaf violations.
func (c *Compiled) Validate(doc any) ([]Violation, error) {
	// round-trip so numbers reach the validator as float64 regardless of
	// how the caller decoded them
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	err = c.inner.Validate(v)
	if err == nil {
		return nil, nil
	}
	var ve *sj.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	var out []Violation
	collectViolations(ve, &out)
	return out, nil
}

func collectViolations(ve *sj.ValidationError, out *[]Violation) {
	if ve == nil {
		return
	}
	if len(ve.Causes) == 0 {
		p := ve.InstanceLocation
		if p == "" {
			p = "/"
		}
		*out = append(*out, Violation{Path: p, Keyword: ve.KeywordLocation, Message: ve.Message})
		return
	}
	for _, cause := range ve.Causes {
		collectViolations(cause, out)
	}
}
