package timeline_test

import (
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	timelint "github.com/reoring/timelint"
	"github.com/reoring/timelint/i18n"
	"github.com/reoring/timelint/timeline"
)

const euclid = `[{
  "id": "euclid-elements",
  "year": "c. 300 BCE",
  "title": "Euclid's Elements",
  "blurb": "Axiomatic geometry in thirteen books.",
  "domains": ["geometry"],
  "people": [{"name": "Euclid", "role": "author"}],
  "sources": [{"url": "https://example.org/elements", "label": "Elements"}]
}]`

func writeContent(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func validate(t *testing.T, opt timeline.Options, body string) *timeline.Report {
	t.Helper()
	return timeline.New(opt).ValidateBytes([]byte(body), timelint.FormatJSON, t.TempDir())
}

func TestRun_ValidDocument(t *testing.T) {
	p := writeContent(t, "timeline.json", euclid)
	rep := timeline.New(timeline.DefaultOptions()).Run(p, t.TempDir())

	require.True(t, rep.OK, rep.Errors.Lines())
	assert.False(t, rep.Aborted)
	assert.Equal(t, 1, rep.Count)
	assert.Empty(t, rep.Errors)
	assert.Empty(t, rep.Warnings)
	require.Len(t, rep.Document, 1)
	assert.Equal(t, "Euclid's Elements", rep.Document[0].Title)
	assert.Equal(t, "Euclid", rep.Document[0].People[0].Name)
	assert.NoError(t, rep.Err())
}

func TestRun_EmptyArrayPasses(t *testing.T) {
	rep := validate(t, timeline.DefaultOptions(), `[]`)
	assert.True(t, rep.OK)
	assert.Equal(t, 0, rep.Count)
}

func TestValidate_MissingBlurbMinimalSchema(t *testing.T) {
	opt := timeline.DefaultOptions()
	opt.Schema = timeline.SchemaMinimal
	rep := validate(t, opt, `[{"year":"1700","title":"X"}]`)

	require.False(t, rep.OK)
	assert.False(t, rep.Aborted)
	assert.Equal(t, []string{"item[0] missing required field 'blurb'"}, rep.Errors.Lines())
	assert.Equal(t, "/0/blurb", rep.Errors[0].Path)
	assert.Equal(t, timelint.CodeRequired, rep.Errors[0].Code)
	assert.Nil(t, rep.Document)
}

func TestValidate_FullSchemaRequiresID(t *testing.T) {
	rep := validate(t, timeline.DefaultOptions(), `[{"year":"1700","title":"X"}]`)
	assert.Equal(t, []string{
		"item[0] missing required field 'id'",
		"item[0] missing required field 'blurb'",
	}, rep.Errors.Lines())
}

func TestValidate_FieldErrors(t *testing.T) {
	body := `[{
	  "id": "x", "year": "", "title": 5, "blurb": "b",
	  "endYear": 1, "level": 0, "domains": ["a", 2],
	  "people": [{"role": "r"}, "bob"],
	  "image": {"src": "images/x.png"}
	}]`
	rep := validate(t, timeline.DefaultOptions(), body)

	assert.Equal(t, []string{
		"item[0].year must not be empty",
		"item[0].endYear must be a string if present",
		"item[0].title must be a string",
		"item[0].level must be at least 1",
		"item[0].domains must contain only strings",
		"item[0].people[0] missing required field 'name'",
		"item[0].people[1] must be an object",
		"item[0].image.src should be a root-relative path like '/images/...'",
	}, rep.Errors.Lines())
}

func TestValidate_NestedFieldErrors(t *testing.T) {
	cases := []struct {
		name string
		item string
		want []string
	}{
		{"empty image src", `"image":{"src":""}`, []string{
			"item[0].image.src should be a root-relative path like '/images/...'",
		}},
		{"image not an object", `"image":"cover.png"`, []string{
			"item[0].image must be an object if present",
		}},
		{"image alt and caption not strings", `"image":{"src":"/a.png","alt":1,"caption":false}`, []string{
			"item[0].image.alt must be a string if present",
			"item[0].image.caption must be a string if present",
		}},
		{"source without url and non-object source", `"sources":[{"label":"x"},5]`, []string{
			"item[0].sources[0] missing required field 'url'",
			"item[0].sources[1] must be an object",
		}},
		{"seeAlso not an array", `"seeAlso":"x"`, []string{
			"item[0].seeAlso must be an array of strings if present",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep := validate(t, timeline.DefaultOptions(), `[{"id":"a","year":"1","title":"t","blurb":"b",`+tc.item+`}]`)
			require.False(t, rep.OK)
			assert.Equal(t, tc.want, rep.Errors.Lines())
		})
	}
}

func TestValidate_CaseVariantUnknownKeys(t *testing.T) {
	body := `[{
	  "id": "a", "year": "1", "title": "t", "blurb": "b",
	  "level": 2, "Level": "high", "IMAGE": "cover.png", "Title": 7,
	  "image": {"src": "/a.png", "ALT": 3},
	  "people": [{"name": "n", "Name": false}]
	}]`
	rep := validate(t, timeline.DefaultOptions(), body)

	require.True(t, rep.OK, rep.Errors.Lines())
	require.Len(t, rep.Document, 1)
	it := rep.Document[0]
	assert.Equal(t, 2, it.Level)
	assert.Equal(t, "t", it.Title)
	require.NotNil(t, it.Image)
	assert.Equal(t, "/a.png", it.Image.Src)
	assert.Empty(t, it.Image.Alt)
	assert.Equal(t, "n", it.People[0].Name)

	rep = validate(t, timeline.DefaultOptions(), `[{"id":"a","year":"1","title":"t","blurb":"b","IMAGE":"cover.png"}]`)
	require.True(t, rep.OK, rep.Errors.Lines())
	assert.Nil(t, rep.Document[0].Image)
}

func TestValidate_LevelMustBeWhole(t *testing.T) {
	rep := validate(t, timeline.DefaultOptions(), `[{"id":"a","year":"1","title":"t","blurb":"b","level":1.5}]`)
	assert.Equal(t, []string{"item[0].level must be a whole number"}, rep.Errors.Lines())
}

func TestValidate_ItemNotObject(t *testing.T) {
	rep := validate(t, timeline.DefaultOptions(), `[1]`)
	assert.Equal(t, []string{"item[0] must be an object"}, rep.Errors.Lines())
}

func TestValidate_DuplicateID(t *testing.T) {
	body := `[
	  {"id":"a","year":"1","title":"t","blurb":"b"},
	  {"id":"a","year":"2","title":"u","blurb":"c"}
	]`
	rep := validate(t, timeline.DefaultOptions(), body)

	require.False(t, rep.OK)
	assert.Equal(t, []string{"item[1].id 'a' is duplicated"}, rep.Errors.Lines())
	assert.Equal(t, 0, rep.Errors[0].Params["first"])
}

func TestValidate_DanglingSeeAlsoIsWarning(t *testing.T) {
	rep := validate(t, timeline.DefaultOptions(), `[{"id":"a","year":"1","title":"t","blurb":"b","seeAlso":["missing-id"]}]`)

	require.True(t, rep.OK)
	assert.Equal(t, []string{"item[0].seeAlso[0] references missing id 'missing-id'"}, rep.Warnings.Lines())
	assert.Equal(t, timelint.ReferenceWarning, rep.Warnings[0].Category())
}

func TestValidate_SeeAlsoResolved(t *testing.T) {
	body := `[
	  {"id":"a","year":"1","title":"t","blurb":"b","seeAlso":["b"]},
	  {"id":"b","year":"2","title":"u","blurb":"c","seeAlso":["a"]}
	]`
	rep := validate(t, timeline.DefaultOptions(), body)
	assert.True(t, rep.OK)
	assert.Empty(t, rep.Warnings)
}

func TestValidate_Assets(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "images", "ok.png"), []byte("png"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "images", "dir.png"), 0o755))

	body := `[
	  {"id":"a","year":"1","title":"t","blurb":"b","image":{"src":"/images/ok.png"}},
	  {"id":"b","year":"2","title":"u","blurb":"c","image":{"src":"/images/gone.png"}},
	  {"id":"c","year":"3","title":"v","blurb":"d","image":{"src":"/images/dir.png"}},
	  {"id":"d","year":"4","title":"w","blurb":"e","image":{"src":"/../secret.png"}}
	]`
	rep := timeline.New(timeline.DefaultOptions()).ValidateBytes([]byte(body), timelint.FormatJSON, root)

	require.True(t, rep.OK, rep.Errors.Lines())
	slash := filepath.ToSlash(root)
	assert.Equal(t, []string{
		"item[1].image.src points to missing file: " + path.Join(slash, "images/gone.png"),
		"item[2].image.src points to missing file: " + path.Join(slash, "images/dir.png"),
		"item[3].image.src points to missing file: " + path.Join(slash, "../secret.png"),
	}, rep.Warnings.Lines())
	for _, w := range rep.Warnings {
		assert.Equal(t, timelint.AssetWarning, w.Category())
	}
}

func TestValidate_AssetsWithSingleWorker(t *testing.T) {
	opt := timeline.DefaultOptions()
	opt.AssetWorkers = 1
	body := `[
	  {"id":"a","year":"1","title":"t","blurb":"b","image":{"src":"/x.png"}},
	  {"id":"b","year":"2","title":"u","blurb":"c","image":{"src":"/y.png"}}
	]`
	rep := validate(t, opt, body)
	require.Len(t, rep.Warnings, 2)
	assert.Equal(t, "/0/image/src", rep.Warnings[0].Path)
	assert.Equal(t, "/1/image/src", rep.Warnings[1].Path)
}

func TestValidate_DuplicateKeys(t *testing.T) {
	body := `[{"id":"a","id":"b","year":"1","title":"t","blurb":"b"}]`

	rep := validate(t, timeline.DefaultOptions(), body)
	require.True(t, rep.OK)
	assert.Equal(t, []string{"item[0].id key 'id' is repeated in the same object"}, rep.Warnings.Lines())

	opt := timeline.DefaultOptions()
	opt.Strictness.OnDuplicateKey = timelint.Error
	rep = validate(t, opt, body)
	assert.False(t, rep.OK)
	assert.Equal(t, []string{"item[0].id key 'id' is repeated in the same object"}, rep.Errors.Lines())

	opt.Strictness.OnDuplicateKey = timelint.Ignore
	rep = validate(t, opt, body)
	assert.True(t, rep.OK)
	assert.Empty(t, rep.Warnings)
}

func TestValidate_StrictUnknownFields(t *testing.T) {
	body := `[{"id":"a","year":"1","title":"t","blurb":"b","colour":"red","image":{"src":"/x.png","width":3}}]`

	rep := validate(t, timeline.DefaultOptions(), body)
	assert.True(t, rep.OK)

	opt := timeline.DefaultOptions()
	opt.Unknown = timelint.UnknownStrict
	rep = validate(t, opt, body)
	assert.Equal(t, []string{
		"item[0].image.width is not a known field",
		"item[0].colour is not a known field",
	}, rep.Errors.Lines())
}

func TestValidate_MaxIssues(t *testing.T) {
	opt := timeline.DefaultOptions()
	opt.MaxIssues = 2
	rep := validate(t, opt, `[1, 2, 3, 4]`)

	require.Len(t, rep.Errors, 3)
	assert.Equal(t, timelint.CodeTruncated, rep.Errors[2].Code)
	assert.Equal(t, "too many issues, stopped after 2", rep.Errors[2].Line())
	assert.Equal(t, 4, rep.Errors[2].Params["total"])
}

func TestRun_Aborts(t *testing.T) {
	v := timeline.New(timeline.DefaultOptions())

	missing := filepath.Join(t.TempDir(), "nope.json")
	rep := v.Run(missing, "public")
	assert.True(t, rep.Aborted)
	assert.False(t, rep.OK)
	assert.Equal(t, "Missing content file at "+missing, rep.Message())
	assert.Equal(t, timelint.IOError, rep.Errors[0].Category())

	rep = v.Run(writeContent(t, "bad.json", `[{"id":}]`), "public")
	assert.True(t, rep.Aborted)
	assert.Contains(t, rep.Message(), "Invalid JSON:")

	rep = v.Run(writeContent(t, "obj.json", `{"items":[]}`), "public")
	assert.True(t, rep.Aborted)
	assert.Equal(t, "must be a JSON array of items", rep.Message())
	assert.Equal(t, timelint.SchemaError, rep.Errors[0].Category())
	assert.Error(t, rep.Err())
}

func TestRun_YAML(t *testing.T) {
	body := `
- id: pythagoras
  year: "c. 500 BCE"
  title: Pythagorean theorem
  blurb: Right triangles.
  level: 2
- id: zero
  year: "628"
  title: Zero
  blurb: Brahmagupta's rules.
  seeAlso: [pythagoras]
`
	rep := timeline.New(timeline.DefaultOptions()).Run(writeContent(t, "timeline.yaml", body), t.TempDir())
	require.True(t, rep.OK, rep.Errors.Lines())
	assert.Equal(t, 2, rep.Count)
	assert.Equal(t, 2, rep.Document[0].Level)
	assert.Empty(t, rep.Warnings)
}

func TestRun_Idempotent(t *testing.T) {
	p := writeContent(t, "timeline.json", `[{"id":"a","year":"1","title":"","blurb":"b","seeAlso":["zz"]}]`)
	v := timeline.New(timeline.DefaultOptions())
	first := v.Run(p, "public")
	second := v.Run(p, "public")
	assert.Equal(t, first, second)
}

func TestValidate_Japanese(t *testing.T) {
	opt := timeline.DefaultOptions()
	opt.Schema = timeline.SchemaMinimal
	opt.Translator = i18n.New("ja")
	rep := validate(t, opt, `[{"year":"1700","title":"X"}]`)
	assert.Equal(t, []string{"item[0] 必須フィールド 'blurb' がありません"}, rep.Errors.Lines())
}

func TestCheckShape(t *testing.T) {
	v := timeline.New(timeline.Options{})
	assert.NoError(t, v.CheckShape([]any{}))
	for _, doc := range []any{nil, "x", map[string]any{}} {
		err := v.CheckShape(doc)
		require.Error(t, err)
		iss, ok := timelint.AsIssues(err)
		require.True(t, ok)
		assert.Equal(t, "document must be a JSON array of items", iss[0].Line())
	}
}

func TestCheckUniquenessIgnoresNonStringIDs(t *testing.T) {
	v := timeline.New(timeline.Options{})
	items := []any{
		map[string]any{"id": 1},
		map[string]any{"id": 1},
		"x",
		map[string]any{"id": "b"},
		map[string]any{"id": "b"},
		map[string]any{"id": "b"},
	}
	iss := v.CheckUniqueness(items)
	require.Len(t, iss, 2)
	assert.Equal(t, "/4/id", iss[0].Path)
	assert.Equal(t, "/5/id", iss[1].Path)
}

func TestValidateGenericTree(t *testing.T) {
	doc := []any{map[string]any{"id": "a", "year": "1", "title": "t", "blurb": "b", "level": 3}}
	rep := timeline.New(timeline.DefaultOptions()).Validate(doc, t.TempDir())
	require.True(t, rep.OK, rep.Errors.Lines())
	assert.Equal(t, 3, rep.Document[0].EffectiveLevel())
}
