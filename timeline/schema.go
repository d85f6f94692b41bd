package timeline

import (
	"fmt"
	"strings"

	g "github.com/reoring/timelint/dsl"
	js "github.com/reoring/timelint/jsonschema"
)

// SchemaVersion selects which item fields are required.
type SchemaVersion int

const (
	// SchemaFull requires id, year, title and blurb.
	SchemaFull SchemaVersion = iota
	// SchemaMinimal requires only year, title and blurb; id stays optional.
	SchemaMinimal
)

func (v SchemaVersion) String() string {
	if v == SchemaMinimal {
		return "minimal"
	}
	return "full"
}

// ParseSchemaVersion accepts "full" or "minimal".
func ParseSchemaVersion(s string) (SchemaVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return SchemaFull, nil
	case "minimal":
		return SchemaMinimal, nil
	}
	return SchemaFull, fmt.Errorf("unknown schema version %q (want full|minimal)", s)
}

var (
	personSchema = g.Object().
			Field("name", g.String()).Required().
			Field("link", g.String()).
			Field("role", g.String()).
			MustBuild()

	sourceSchema = g.Object().
			Field("url", g.String()).Required().
			Field("label", g.String()).
			MustBuild()

	imageSchema = g.Object().
			Field("src", g.String().Prefix("/", "/images/...")).Required().
			Field("alt", g.String()).
			Field("caption", g.String()).
			MustBuild()

	fullItemSchema    = itemSchema(true)
	minimalItemSchema = itemSchema(false)
)

func itemSchema(idRequired bool) *g.ObjectSchema {
	b := g.Object()
	id := b.Field("id", g.String())
	if idRequired {
		id.Required()
	}
	return b.
		Field("year", g.String().NonEmpty()).Required().
		Field("endYear", g.String()).
		Field("era", g.String()).
		Field("title", g.String().NonEmpty()).Required().
		Field("blurb", g.String()).Required().
		Field("details", g.String()).
		Field("level", g.Int().Min(1)).
		Field("domains", g.Array(g.String())).
		Field("tags", g.Array(g.String())).
		Field("people", g.Array(personSchema)).
		Field("seeAlso", g.Array(g.String())).
		Field("sources", g.Array(sourceSchema)).
		Field("image", imageSchema).
		MustBuild()
}

// ItemSchema returns the descriptor items are checked against.
func ItemSchema(v SchemaVersion) *g.ObjectSchema {
	if v == SchemaMinimal {
		return minimalItemSchema
	}
	return fullItemSchema
}

// DocumentJSONSchema exports the whole document (an array of items) as JSON
// Schema. strict forbids fields the schema does not declare.
func DocumentJSONSchema(v SchemaVersion, strict bool) *js.Schema {
	item := ItemSchema(v).JSONSchema()
	if strict {
		item = ItemSchema(v).JSONSchemaStrict()
	}
	return &js.Schema{
		Schema:      js.Draft,
		ID:          "https://timelint.dev/schema/timeline-" + v.String() + ".json",
		Title:       "Timeline content (" + v.String() + ")",
		Description: "Items of the mathematical-history timeline, in display order.",
		Type:        "array",
		Items:       item,
	}
}
