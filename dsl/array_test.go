package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	timelint "github.com/reoring/timelint"
	g "github.com/reoring/timelint/dsl"
)

func TestArray_OfStrings_CollapsesElementMismatches(t *testing.T) {
	s := g.Array(g.String())
	at := timelint.Root().Index(1).Field("tags")
	c := &g.Ctx{}

	assert.Empty(t, s.Check(c, at, []any{"geometry", "proof"}, true))
	assert.Empty(t, s.Check(c, at, []any{}, true))

	iss := s.Check(c, at, []any{"ok", 1, false}, true)
	require.Len(t, iss, 1)
	assert.Equal(t, "item[1].tags must contain only strings", iss[0].Line())

	iss = s.Check(c, at, "geometry", true)
	require.Len(t, iss, 1)
	assert.Equal(t, "item[1].tags must be an array of strings if present", iss[0].Line())
}

func TestArray_OfStrings_KeepsConstraintIssuesPerElement(t *testing.T) {
	s := g.Array(g.String().NonEmpty())
	iss := s.Check(&g.Ctx{}, timelint.Root().Index(0).Field("seeAlso"), []any{"", 3, "x", ""}, true)
	require.Len(t, iss, 3)
	assert.Equal(t, "item[0].seeAlso must contain only strings", iss[0].Line())
	assert.Equal(t, "/0/seeAlso/0", iss[1].Path)
	assert.Equal(t, "/0/seeAlso/3", iss[2].Path)
}

func TestArray_OfObjects_ReportsPerElement(t *testing.T) {
	person := g.Object().
		Field("name", g.String()).Required().
		Field("role", g.String()).
		MustBuild()
	s := g.Array(person)
	at := timelint.Root().Index(0).Field("people")

	iss := s.Check(&g.Ctx{}, at, []any{
		map[string]any{"name": "Euclid"},
		"Archimedes",
		map[string]any{"role": 7},
	}, true)
	require.Len(t, iss, 3)
	assert.Equal(t, []string{
		"item[0].people[1] must be an object",
		"item[0].people[2] missing required field 'name'",
		"item[0].people[2].role must be a string if present",
	}, iss.Lines())

	iss = s.Check(&g.Ctx{}, at, map[string]any{}, true)
	require.Len(t, iss, 1)
	assert.Equal(t, "item[0].people must be an array of objects if present", iss[0].Line())
}
