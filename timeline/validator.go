// Package timeline validates the timeline content file: its top-level shape,
// every item against the selected schema version, id uniqueness, seeAlso
// cross-references and image assets on disk.
package timeline

import (
	"strconv"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	timelint "github.com/reoring/timelint"
	g "github.com/reoring/timelint/dsl"
	"github.com/reoring/timelint/i18n"
)

// Options configures a Validator. The zero value is usable: full schema,
// unknown fields accepted, duplicate JSON keys ignored, English messages.
type Options struct {
	Schema     SchemaVersion
	Unknown    timelint.UnknownPolicy
	Strictness timelint.Strictness
	// MaxIssues caps the error list; 0 means unlimited.
	MaxIssues int
	// AssetWorkers bounds concurrent asset lookups; <= 0 means 8.
	AssetWorkers int
	Translator   i18n.Translator
	Logger       *zap.Logger
}

// DefaultOptions mirrors the CLI defaults.
func DefaultOptions() Options {
	return Options{
		Schema:       SchemaFull,
		Unknown:      timelint.UnknownPassthrough,
		Strictness:   timelint.Strictness{OnDuplicateKey: timelint.Warn},
		AssetWorkers: 8,
		Translator:   i18n.Default,
	}
}

// Validator checks timeline content. It holds no per-run state and is safe
// for concurrent use.
type Validator struct {
	opt    Options
	item   *g.ObjectSchema
	ctx    *g.Ctx
	loader timelint.Loader
	log    *zap.Logger
}

// New builds a Validator from opt.
func New(opt Options) *Validator {
	if opt.Translator == nil {
		opt.Translator = i18n.Default
	}
	if opt.AssetWorkers <= 0 {
		opt.AssetWorkers = 8
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{
		opt:    opt,
		item:   ItemSchema(opt.Schema),
		ctx:    &g.Ctx{Translator: opt.Translator, Unknown: opt.Unknown},
		loader: timelint.Loader{Translator: opt.Translator},
		log:    log,
	}
}

// Options returns the effective options.
func (v *Validator) Options() Options { return v.opt }

// LoadDocument reads and decodes the content file at path.
func (v *Validator) LoadDocument(path string) (any, error) { return v.loader.Load(path) }

// CheckShape fails with a schema issue unless doc is an array.
func (v *Validator) CheckShape(doc any) error {
	if _, ok := doc.([]any); ok {
		return nil
	}
	msg := v.ctx.Translator.Message("invalid_type", map[string]string{"expected": v.ctx.Translator.Message("expected.items", nil)})
	return timelint.Issues{timelint.Root().Issue(timelint.CodeInvalidType, msg, "expected", "array")}
}

// CheckItem validates one item against the item schema and returns every
// violation found.
func (v *Validator) CheckItem(item any, index int) timelint.Issues {
	return v.item.Check(v.ctx, timelint.Root().Index(index), item, false)
}

// CheckUniqueness reports the second and later occurrence of each id.
func (v *Validator) CheckUniqueness(items []any) timelint.Issues {
	var iss timelint.Issues
	seen := map[string]int{}
	for i, raw := range items {
		id, ok := itemID(raw)
		if !ok {
			continue
		}
		if first, dup := seen[id]; dup {
			msg := v.ctx.Translator.Message(timelint.CodeUniqueness, map[string]string{"value": id})
			at := timelint.Root().Index(i).Field("id")
			iss = timelint.AppendIssues(iss, timelint.IssueAt(at, timelint.CodeUniqueness, msg, map[string]any{"value": id, "first": first}))
			continue
		}
		seen[id] = i
	}
	return iss
}

// CheckCrossReferences warns about seeAlso entries naming ids that no item has.
func (v *Validator) CheckCrossReferences(items []any) timelint.Issues {
	ids := make(map[string]struct{}, len(items))
	for _, raw := range items {
		if id, ok := itemID(raw); ok {
			ids[id] = struct{}{}
		}
	}
	var iss timelint.Issues
	for i, raw := range items {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		refs, ok := m["seeAlso"].([]any)
		if !ok {
			continue
		}
		for j, r := range refs {
			ref, ok := r.(string)
			if !ok {
				continue
			}
			if _, found := ids[ref]; found {
				continue
			}
			msg := v.ctx.Translator.Message(timelint.CodeDanglingReference, map[string]string{"id": ref})
			iss = timelint.AppendIssues(iss, timelint.Root().Index(i).Field("seeAlso").Index(j).Issue(timelint.CodeDanglingReference, msg, "id", ref))
		}
	}
	return iss
}

// Run loads the content file at path and validates it, resolving image
// sources against assetRoot.
func (v *Validator) Run(path, assetRoot string) *Report {
	v.log.Debug("validating content", zap.String("path", path), zap.String("assets", assetRoot), zap.Stringer("schema", v.opt.Schema))
	data, err := v.loader.ReadFile(path)
	if err != nil {
		return v.aborted(err)
	}
	return v.ValidateBytes(data, timelint.FormatFromPath(path), assetRoot)
}

// ValidateBytes validates an in-memory content document.
func (v *Validator) ValidateBytes(data []byte, format timelint.Format, assetRoot string) *Report {
	doc, err := v.loader.Decode(data, format)
	if err != nil {
		return v.aborted(err)
	}
	var dups timelint.Issues
	if format == timelint.FormatJSON && v.opt.Strictness.OnDuplicateKey != timelint.Ignore {
		// the decoder accepted data, so the token scan cannot fail
		dups, _ = v.loader.DuplicateKeysBytes(data, v.opt.Strictness, -1)
	}
	return v.validate(doc, assetRoot, dups)
}

// Validate checks an already decoded document tree.
func (v *Validator) Validate(doc any, assetRoot string) *Report {
	return v.validate(doc, assetRoot, nil)
}

func (v *Validator) validate(doc any, assetRoot string, dups timelint.Issues) *Report {
	if err := v.CheckShape(doc); err != nil {
		return v.aborted(err)
	}
	items := doc.([]any)
	rep := &Report{Count: len(items)}

	var errs timelint.Issues
	for i, it := range items {
		errs = append(errs, v.CheckItem(it, i)...)
	}
	errs = append(errs, v.CheckUniqueness(items)...)

	var warns timelint.Issues
	if v.opt.Strictness.OnDuplicateKey == timelint.Error {
		errs = append(errs, dups...)
	} else {
		warns = append(warns, dups...)
	}
	warns = append(warns, v.CheckCrossReferences(items)...)
	warns = append(warns, v.CheckAssets(items, assetRoot)...)

	rep.Errors = v.truncate(errs)
	rep.Warnings = warns
	rep.OK = len(rep.Errors) == 0
	if rep.OK {
		typed, err := v.toDocument(items)
		if err != nil {
			rep.OK = false
			rep.Errors = timelint.Issues{{Path: "/", Code: timelint.CodeInvalidType, Message: err.Error(), Cause: err}}
		}
		rep.Document = typed
	}
	v.log.Debug("validation finished",
		zap.Int("items", rep.Count),
		zap.Int("errors", len(rep.Errors)),
		zap.Int("warnings", len(rep.Warnings)))
	return rep
}

func (v *Validator) aborted(err error) *Report {
	iss, ok := timelint.AsIssues(err)
	if !ok {
		iss = timelint.Issues{{Code: timelint.CodeParseError, Message: err.Error(), Cause: err}}
	}
	return &Report{Aborted: true, Errors: iss}
}

func (v *Validator) truncate(errs timelint.Issues) timelint.Issues {
	if v.opt.MaxIssues <= 0 || len(errs) <= v.opt.MaxIssues {
		return errs
	}
	limit := strconv.Itoa(v.opt.MaxIssues)
	msg := v.ctx.Translator.Message(timelint.CodeTruncated, map[string]string{"max": limit})
	out := append(timelint.Issues{}, errs[:v.opt.MaxIssues]...)
	return append(out, timelint.Issue{Code: timelint.CodeTruncated, Message: msg, Params: map[string]any{"max": v.opt.MaxIssues, "total": len(errs)}})
}

// toDocument projects a schema-valid tree onto the typed model. Undeclared
// keys are dropped first so they cannot collide with struct fields.
func (v *Validator) toDocument(items []any) (Document, error) {
	declared := make([]any, len(items))
	for i, it := range items {
		declared[i] = g.Prune(v.item, it)
	}
	data, err := json.Marshal(declared)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func itemID(raw any) (string, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return "", false
	}
	id, ok := m["id"].(string)
	return id, ok
}
