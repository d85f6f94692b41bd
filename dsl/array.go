package dsl

import (
	timelint "github.com/reoring/timelint"
	js "github.com/reoring/timelint/jsonschema"
)

// ArraySchema accepts JSON arrays whose elements match elem.
//
// Element type mismatches are reported differently by element kind: arrays of
// primitives get a single "must contain only ..." issue at the array itself,
// arrays of objects get one issue per offending element.
type ArraySchema struct {
	elem Schema
}

// Array builds an array schema from an element schema.
func Array(elem Schema) *ArraySchema { return &ArraySchema{elem: elem} }

// Elem returns the element schema.
func (a *ArraySchema) Elem() Schema { return a.elem }

func (a *ArraySchema) Kind() Kind { return KindArray }

func (a *ArraySchema) Check(c *Ctx, at timelint.PathRef, v any, optional bool) timelint.Issues {
	arr, ok := v.([]any)
	if !ok {
		return timelint.Issues{c.typeIssue(at, a, optional)}
	}
	if a.elem.Kind() == KindArray || a.elem.Kind() == KindObject {
		var iss timelint.Issues
		for i, e := range arr {
			iss = timelint.AppendIssues(iss, a.elem.Check(c, at.Index(i), e, false)...)
		}
		return iss
	}

	var (
		iss        timelint.Issues
		mismatched bool
	)
	for i, e := range arr {
		child := a.elem.Check(c, at.Index(i), e, false)
		for _, it := range child {
			if it.Code == timelint.CodeInvalidType {
				mismatched = true
				continue
			}
			iss = timelint.AppendIssues(iss, it)
		}
	}
	if mismatched {
		msg := c.msg("invalid_element", map[string]string{"expected": c.msg("expected."+pluralKey(a.elem.Kind()), nil)})
		head := at.Issue(timelint.CodeInvalidType, msg, "expected", "array", "elem", kindName(a.elem.Kind()))
		iss = append(timelint.Issues{head}, iss...)
	}
	return iss
}

func (a *ArraySchema) JSONSchema() *js.Schema {
	return &js.Schema{Type: "array", Items: a.elem.JSONSchema()}
}
