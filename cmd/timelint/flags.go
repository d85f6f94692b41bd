package main

import "github.com/urfave/cli/v2"

const (
	categoryInput  = "INPUT"
	categoryRules  = "RULES"
	categoryOutput = "OUTPUT"
)

var (
	configFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "Config file, YAML or .toml (defaults to $TIMELINT_CONFIG)",
		Category: categoryInput,
	}
	contentFlag = &cli.StringFlag{
		Name:     "content",
		Usage:    "Timeline content file (.json, .yaml, .yml) (default: content/timeline.json)",
		Category: categoryInput,
	}
	assetsFlag = &cli.StringFlag{
		Name:     "assets",
		Usage:    "Directory image sources are resolved against (default: public)",
		Category: categoryInput,
	}

	schemaFlag = &cli.StringFlag{
		Name:     "schema",
		Usage:    "Item schema version (full|minimal)",
		Category: categoryRules,
	}
	duplicateKeysFlag = &cli.StringFlag{
		Name:     "duplicate-keys",
		Usage:    "Severity of repeated JSON object keys (ignore|warn|error)",
		Category: categoryRules,
	}
	strictFlag = &cli.BoolFlag{
		Name:     "strict",
		Usage:    "Reject fields the schema does not declare",
		Category: categoryRules,
	}
	maxIssuesFlag = &cli.IntFlag{
		Name:     "max-issues",
		Usage:    "Stop reporting errors after this many (0 = all)",
		Category: categoryRules,
	}
	assetWorkersFlag = &cli.IntFlag{
		Name:     "asset-workers",
		Usage:    "Concurrent asset lookups",
		Category: categoryRules,
	}

	langFlag = &cli.StringFlag{
		Name:     "lang",
		Usage:    "Message language (en|ja)",
		Category: categoryOutput,
	}
	logLevelFlag = &cli.StringFlag{
		Name:     "log-level",
		Usage:    "Log level (debug|info|warn|error)",
		Category: categoryOutput,
	}
	logFormatFlag = &cli.StringFlag{
		Name:     "log-format",
		Usage:    "Log format to use (console|json)",
		Category: categoryOutput,
	}
	logFileFlag = &cli.StringFlag{
		Name:     "log-file",
		Usage:    "Also write logs to this file, rotated by size",
		Category: categoryOutput,
	}
	metricsFileFlag = &cli.StringFlag{
		Name:     "metrics-file",
		Usage:    "Write run metrics in Prometheus text format to this file",
		Category: categoryOutput,
	}

	domainFlag = &cli.StringSliceFlag{
		Name:  "domain",
		Usage: "Only list items in one of these domains",
	}
	maxLevelFlag = &cli.IntFlag{
		Name:  "max-level",
		Usage: "Only list items up to this level (0 = all)",
	}
	domainsFlag = &cli.BoolFlag{
		Name:  "domains",
		Usage: "Print the domains used by the content instead of items",
	}

	validateFlag = &cli.StringFlag{
		Name:  "validate",
		Usage: "Check this content file against the exported schema instead of printing it",
	}
)

var globalFlags = []cli.Flag{
	configFlag,
	contentFlag,
	assetsFlag,
	schemaFlag,
	duplicateKeysFlag,
	strictFlag,
	maxIssuesFlag,
	assetWorkersFlag,
	langFlag,
	logLevelFlag,
	logFormatFlag,
	logFileFlag,
	metricsFileFlag,
}
