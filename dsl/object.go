package dsl

import (
	"fmt"
	"sort"

	timelint "github.com/reoring/timelint"
	js "github.com/reoring/timelint/jsonschema"
)

type field struct {
	name     string
	schema   Schema
	required bool
}

// ObjectSchema accepts JSON objects with declared fields. Fields are checked in
// declaration order so issues come out in a stable, author-controlled order.
type ObjectSchema struct {
	fields []field
	index  map[string]int
}

type objectBuilder struct {
	fields []field
	err    error
}

type fieldStep struct {
	b *objectBuilder
}

// Object creates a new object builder. Fields are optional unless marked
// Required.
func Object() *objectBuilder { return &objectBuilder{} }

// Field registers a field with its schema.
func (b *objectBuilder) Field(name string, s Schema) *fieldStep {
	switch {
	case b.err != nil:
	case name == "":
		b.err = fmt.Errorf("dsl: empty field name")
	case s == nil:
		b.err = fmt.Errorf("dsl: nil schema for field %q", name)
	default:
		for _, f := range b.fields {
			if f.name == name {
				b.err = fmt.Errorf("dsl: field %q declared twice", name)
			}
		}
	}
	b.fields = append(b.fields, field{name: name, schema: s})
	return &fieldStep{b: b}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.fields[len(f.b.fields)-1].required = true
	return f.b
}

// Optional keeps the field optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	f.b.fields[len(f.b.fields)-1].required = false
	return f.b
}

// Field is a shortcut for Optional().Field(...).
func (f *fieldStep) Field(name string, s Schema) *fieldStep { return f.b.Field(name, s) }

// Build finalizes the builder.
func (f *fieldStep) Build() (*ObjectSchema, error) { return f.b.Build() }

// MustBuild finalizes the builder and panics on error.
func (f *fieldStep) MustBuild() *ObjectSchema { return f.b.MustBuild() }

// Build returns the object schema or the first declaration error.
func (b *objectBuilder) Build() (*ObjectSchema, error) {
	if b.err != nil {
		return nil, b.err
	}
	o := &ObjectSchema{fields: append([]field(nil), b.fields...), index: make(map[string]int, len(b.fields))}
	for i, f := range o.fields {
		o.index[f.name] = i
	}
	return o, nil
}

// MustBuild is Build for package-level schema declarations.
func (b *objectBuilder) MustBuild() *ObjectSchema {
	o, err := b.Build()
	if err != nil {
		panic(err)
	}
	return o
}

func (o *ObjectSchema) Kind() Kind { return KindObject }

// Has reports whether name is a declared field.
func (o *ObjectSchema) Has(name string) bool {
	_, ok := o.index[name]
	return ok
}

// FieldSchema returns the schema declared for name.
func (o *ObjectSchema) FieldSchema(name string) (Schema, bool) {
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return o.fields[i].schema, true
}

// RequiredFields lists the required field names in declaration order.
func (o *ObjectSchema) RequiredFields() []string {
	var out []string
	for _, f := range o.fields {
		if f.required {
			out = append(out, f.name)
		}
	}
	return out
}

func (o *ObjectSchema) Check(c *Ctx, at timelint.PathRef, v any, optional bool) timelint.Issues {
	src, ok := v.(map[string]any)
	if !ok {
		return timelint.Issues{c.typeIssue(at, o, optional)}
	}
	var iss timelint.Issues
	for _, f := range o.fields {
		val, exists := src[f.name]
		if !exists {
			if f.required {
				msg := c.msg(timelint.CodeRequired, map[string]string{"field": f.name})
				iss = timelint.AppendIssues(iss, at.Field(f.name).Issue(timelint.CodeRequired, msg, "field", f.name))
			}
			continue
		}
		iss = timelint.AppendIssues(iss, f.schema.Check(c, at.Field(f.name), val, !f.required)...)
	}
	if c != nil && c.Unknown == timelint.UnknownStrict {
		// unknown keys in key-sorted order
		var uks []string
		for k := range src {
			if !o.Has(k) {
				uks = append(uks, k)
			}
		}
		sort.Strings(uks)
		for _, k := range uks {
			iss = timelint.AppendIssues(iss, at.Field(k).Issue(timelint.CodeUnknownKey, c.msg(timelint.CodeUnknownKey, nil), "key", k))
		}
	}
	return iss
}

// JSONSchema exports the object. Unknown fields are allowed unless strict is
// requested through JSONSchemaStrict.
func (o *ObjectSchema) JSONSchema() *js.Schema { return o.jsonSchema(false) }

// JSONSchemaStrict exports the object with additionalProperties=false on every
// nested object.
func (o *ObjectSchema) JSONSchemaStrict() *js.Schema { return o.jsonSchema(true) }

func (o *ObjectSchema) jsonSchema(strict bool) *js.Schema {
	out := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(o.fields))}
	for _, f := range o.fields {
		out.Properties[f.name] = exportStrict(f.schema, strict)
		if f.required {
			out.Required = append(out.Required, f.name)
		}
	}
	if strict {
		out.AdditionalProperties = false
	}
	return out
}

// exportStrict threads the strict flag through arrays and objects.
func exportStrict(s Schema, strict bool) *js.Schema {
	switch t := s.(type) {
	case *ObjectSchema:
		return t.jsonSchema(strict)
	case *ArraySchema:
		return &js.Schema{Type: "array", Items: exportStrict(t.elem, strict)}
	default:
		return s.JSONSchema()
	}
}

// Prune returns a copy of v holding only what s declares: objects keep their
// declared fields, matched by exact key, and arrays are pruned element-wise.
// Values of the wrong type are returned unchanged.
func Prune(s Schema, v any) any {
	switch t := s.(type) {
	case *ObjectSchema:
		src, ok := v.(map[string]any)
		if !ok {
			return v
		}
		out := make(map[string]any, len(t.fields))
		for _, f := range t.fields {
			if val, ok := src[f.name]; ok {
				out[f.name] = Prune(f.schema, val)
			}
		}
		return out
	case *ArraySchema:
		src, ok := v.([]any)
		if !ok {
			return v
		}
		out := make([]any, len(src))
		for i, e := range src {
			out[i] = Prune(t.elem, e)
		}
		return out
	default:
		return v
	}
}
