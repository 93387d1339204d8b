// Package main implements the ifcinspect CLI: parse an IFC/STEP file,
// extract the domain project graph, then either export it (--csv,
// --json) or hand it to the interactive dashboard.
//
// Usage:
//
//	ifcinspect <FILE>                       Parse, then run the dashboard
//	ifcinspect <FILE> --csv out.csv         Parse, write CSV, skip the dashboard
//	ifcinspect <FILE> --json out.json       Parse, write structured output, skip the dashboard
//	ifcinspect <FILE> --csv a.csv --json b.json   Parse once, write both
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/ifcinspect/ifcinspect/internal/config"
	"github.com/ifcinspect/ifcinspect/internal/diag"
	ifcerrors "github.com/ifcinspect/ifcinspect/internal/errors"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	var (
		showVersion = flag.BoolP("version", "V", false, "Show version and exit")
		csvOut      = flag.String("csv", "", "Write a CSV export to this path")
		jsonOut     = flag.String("json", "", "Write a structured JSON export to this path")
		metricsAddr = flag.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (falls back to the config file's metrics_addr; disabled when both are empty)")
		noColor     = flag.Bool("no-color", false, "Disable color output")
		debug       = flag.Bool("debug", false, "Enable debug logging")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `ifcinspect - IFC/STEP building model inspector

Parses an ISO-10303-21 (STEP) IFC file, builds an in-memory project
graph of storeys, categories, element types, and instances, and either
exports it or serves it through an interactive terminal dashboard.

Usage:
  ifcinspect <FILE> [options]

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  ifcinspect model.ifc
  ifcinspect model.ifc --csv report.csv
  ifcinspect model.ifc --json report.json
  ifcinspect model.ifc --csv a.csv --json b.json
  ifcinspect model.ifc --metrics-addr :9090

Environment Variables:
  NO_COLOR   Disable color output (same as --no-color)

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("ifcinspect version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	if os.Getenv("NO_COLOR") != "" {
		*noColor = true
	}

	cfg, err := config.Load()
	if err != nil {
		ifcerrors.FatalError(err, false)
	}
	if cfg.Color == "never" {
		*noColor = true
	}
	if *metricsAddr == "" {
		*metricsAddr = cfg.MetricsAddr
	}
	diag.Init(*noColor)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	run(runOptions{
		path:        args[0],
		csvPath:     *csvOut,
		jsonPath:    *jsonOut,
		metricsAddr: *metricsAddr,
		debug:       *debug,
		cfg:         cfg,
	})
}
