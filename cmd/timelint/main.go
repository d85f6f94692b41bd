// Command timelint validates the timeline content file before a site build.
//
//	timelint                       validate content/timeline.json against public/
//	timelint --content x.yaml check
//	timelint --schema minimal schema
//	timelint schema --validate content/timeline.json
//	timelint list --domain geometry --max-level 2
//
// Exit status is 0 when validation passes and 1 otherwise.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	timelint "github.com/reoring/timelint"
	"github.com/reoring/timelint/internal/config"
	"github.com/reoring/timelint/internal/logging"
	"github.com/reoring/timelint/internal/metrics"
	"github.com/reoring/timelint/jsonschema"
	"github.com/reoring/timelint/timeline"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		if ec, ok := err.(cli.ExitCoder); ok {
			if msg := ec.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(ec.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:      "timelint",
		Usage:     "validate timeline content before building the site",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags,
		Action:    check,
		// main owns the exit status
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "validate the content file (default)",
				Action: check,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON Schema of the selected item schema",
				Flags:  []cli.Flag{validateFlag},
				Action: printSchema,
			},
			{
				Name:   "list",
				Usage:  "validate, then list items matching the filters",
				Flags:  []cli.Flag{domainFlag, maxLevelFlag, domainsFlag},
				Action: list,
			},
		},
	}
	return app
}

// run is the per-invocation state shared by the commands.
type run struct {
	cfg *config.Config
	log *zap.Logger
	out io.Writer
	err io.Writer
}

func setup(ctx *cli.Context) (*run, error) {
	cfg, err := config.Load(ctx.Context, ctx.String(configFlag.Name))
	if err != nil {
		return nil, cli.Exit(err, 1)
	}
	applyFlags(ctx, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, cli.Exit(err, 1)
	}
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile, Out: ctx.App.ErrWriter})
	if err != nil {
		return nil, cli.Exit(err, 1)
	}
	log = log.With(zap.String("run", uuid.NewString()))
	return &run{cfg: cfg, log: log, out: ctx.App.Writer, err: ctx.App.ErrWriter}, nil
}

// applyFlags lets explicitly set flags win over config and environment.
func applyFlags(ctx *cli.Context, cfg *config.Config) {
	strs := map[string]*string{
		contentFlag.Name:       &cfg.Content,
		assetsFlag.Name:        &cfg.Assets,
		schemaFlag.Name:        &cfg.Schema,
		duplicateKeysFlag.Name: &cfg.DuplicateKeys,
		langFlag.Name:          &cfg.Lang,
		logLevelFlag.Name:      &cfg.LogLevel,
		logFormatFlag.Name:     &cfg.LogFormat,
		logFileFlag.Name:       &cfg.LogFile,
		metricsFileFlag.Name:   &cfg.MetricsFile,
	}
	for name, dst := range strs {
		if ctx.IsSet(name) {
			*dst = ctx.String(name)
		}
	}
	if ctx.IsSet(strictFlag.Name) {
		cfg.Strict = ctx.Bool(strictFlag.Name)
	}
	if ctx.IsSet(maxIssuesFlag.Name) {
		cfg.MaxIssues = ctx.Int(maxIssuesFlag.Name)
	}
	if ctx.IsSet(assetWorkersFlag.Name) {
		cfg.AssetWorkers = ctx.Int(assetWorkersFlag.Name)
	}
}

// validate runs the validator and prints warnings plus the failure report.
// It returns the report and a non-nil exit error when validation failed.
func (r *run) validate() (*timeline.Report, error) {
	defer func() { _ = r.log.Sync() }()

	opt := r.cfg.ValidatorOptions()
	opt.Logger = r.log
	start := time.Now()
	rep := timeline.New(opt).Run(r.cfg.Content, r.cfg.Assets)
	took := time.Since(start)

	r.log.Info("validation finished",
		zap.String("content", r.cfg.Content),
		zap.Bool("ok", rep.OK),
		zap.Int("items", rep.Count),
		zap.Int("errors", len(rep.Errors)),
		zap.Int("warnings", len(rep.Warnings)),
		zap.Duration("took", took))

	if r.cfg.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.Observe(rep, took, time.Now())
		if err := rec.WriteFile(r.cfg.MetricsFile); err != nil {
			r.log.Warn("write metrics", zap.String("file", r.cfg.MetricsFile), zap.Error(err))
		}
	}

	for _, line := range rep.Warnings.Lines() {
		fmt.Fprintf(r.err, "warning: %s\n", line)
	}
	switch {
	case rep.Aborted:
		fmt.Fprintf(r.err, "Content validation failed: %s\n", rep.Message())
		return rep, cli.Exit("", 1)
	case !rep.OK:
		fmt.Fprintln(r.err, "Found the following issues:")
		for _, line := range rep.Errors.Lines() {
			fmt.Fprintf(r.err, "- %s\n", line)
		}
		return rep, cli.Exit("", 1)
	}
	return rep, nil
}

func check(ctx *cli.Context) error {
	r, err := setup(ctx)
	if err != nil {
		return err
	}
	rep, err := r.validate()
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Content validation passed (%d items)\n", rep.Count)
	return nil
}

func printSchema(ctx *cli.Context) error {
	r, err := setup(ctx)
	if err != nil {
		return err
	}
	opt := r.cfg.ValidatorOptions()
	s := timeline.DocumentJSONSchema(opt.Schema, r.cfg.Strict)
	compiled, err := jsonschema.Compile(s)
	if err != nil {
		return cli.Exit(fmt.Errorf("exported schema does not compile: %w", err), 1)
	}
	if file := ctx.String(validateFlag.Name); file != "" {
		return r.validateExport(timeline.New(opt), compiled, file)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintln(r.out, string(data))
	return nil
}

// validateExport checks file against the exported schema instead of the
// built-in validator, for tools that consume the schema directly.
func (r *run) validateExport(v *timeline.Validator, compiled *jsonschema.Compiled, file string) error {
	doc, err := v.LoadDocument(file)
	if err != nil {
		return cli.Exit(fmt.Errorf("load %s: %w", file, err), 1)
	}
	vs, err := compiled.Validate(doc)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if len(vs) > 0 {
		fmt.Fprintln(r.err, "Exported schema rejected the content:")
		for _, vi := range vs {
			fmt.Fprintf(r.err, "- %s %s\n", timelint.Location(vi.Path), vi.Message)
		}
		return cli.Exit("", 1)
	}
	fmt.Fprintf(r.out, "%s matches the exported schema\n", file)
	return nil
}

func list(ctx *cli.Context) error {
	r, err := setup(ctx)
	if err != nil {
		return err
	}
	rep, err := r.validate()
	if err != nil {
		return err
	}
	if ctx.Bool(domainsFlag.Name) {
		for _, d := range rep.Document.Domains() {
			fmt.Fprintln(r.out, d)
		}
		return nil
	}
	f := timeline.Filter{Domains: ctx.StringSlice(domainFlag.Name), MaxLevel: ctx.Int(maxLevelFlag.Name)}
	for _, it := range rep.Document.Filter(f) {
		fmt.Fprintf(r.out, "%s — %s\n", it.Year, it.Title)
	}
	return nil
}
