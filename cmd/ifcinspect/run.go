package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"

	"github.com/ifcinspect/ifcinspect/internal/config"
	"github.com/ifcinspect/ifcinspect/internal/dashboard"
	"github.com/ifcinspect/ifcinspect/internal/diag"
	ifcerrors "github.com/ifcinspect/ifcinspect/internal/errors"
	"github.com/ifcinspect/ifcinspect/pkg/export"
	"github.com/ifcinspect/ifcinspect/pkg/extract"
	"github.com/ifcinspect/ifcinspect/pkg/ifcmodel"
	"github.com/ifcinspect/ifcinspect/pkg/step"
)

type runOptions struct {
	path        string
	csvPath     string
	jsonPath    string
	metricsAddr string
	debug       bool
	cfg         *config.Config
}

var (
	parseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "ifcinspect_parse_duration_seconds",
		Help: "Time spent lexing and parsing the STEP source file.",
	})
	entitiesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ifcinspect_entities_total",
		Help: "Number of entities in the most recently parsed document.",
	})
	extractDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "ifcinspect_extract_duration_seconds",
		Help: "Time spent extracting the project graph from the parsed document.",
	})
)

// run parses, extracts, and then either exports or opens the
// dashboard. Any failure is fatal: it reports one diagnostic line and
// exits the process via internal/errors.FatalError.
func run(opts runOptions) {
	logLevel := slog.LevelInfo
	if opts.debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if opts.metricsAddr != "" {
		go serveMetrics(logger, opts.metricsAddr)
	}

	src, err := os.ReadFile(opts.path) //nolint:gosec // G304: path is the user-supplied positional CLI argument
	if err != nil {
		fatal(ifcerrors.FileRead(opts.path, err))
	}

	bar := newProgressBar(len(src), opts.cfg)

	parseStart := time.Now()
	doc, err := step.Parse(src)
	elapsedParse := time.Since(parseStart)
	parseDuration.Observe(elapsedParse.Seconds())
	if err != nil {
		fatal(err)
	}
	entitiesTotal.Set(float64(len(doc.Entities)))
	if bar != nil {
		_ = bar.Finish()
	}

	extractStart := time.Now()
	proj, err := extract.Extract(doc, opts.path, extract.Options{Logger: logger})
	elapsedExtract := time.Since(extractStart)
	extractDuration.Observe(elapsedExtract.Seconds())
	if err != nil {
		fatal(err)
	}

	diag.Info("parsed %d entities in %s, extracted %d elements in %s",
		len(doc.Entities), elapsedParse.Round(time.Millisecond),
		proj.TotalElements(), elapsedExtract.Round(time.Millisecond))

	didExport := false
	if opts.csvPath != "" {
		if err := export.WriteCSV(proj, opts.csvPath); err != nil {
			fatal(err)
		}
		diag.Success("wrote CSV export to %s", opts.csvPath)
		didExport = true
	}
	if opts.jsonPath != "" {
		if err := export.WriteJSON(proj, opts.jsonPath); err != nil {
			fatal(err)
		}
		diag.Success("wrote JSON export to %s", opts.jsonPath)
		didExport = true
	}

	if didExport {
		return
	}

	runDashboard(proj)
}

func newProgressBar(srcLen int, cfg *config.Config) *progressbar.ProgressBar {
	const sizeThreshold = 1 << 20 // 1 MiB
	if cfg != nil && !cfg.ProgressBar {
		return nil
	}
	if srcLen < sizeThreshold {
		return nil
	}
	return progressbar.DefaultBytes(int64(srcLen), "parsing")
}

func serveMetrics(logger *slog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Warn("metrics.http.error", "err", err)
	}
}

func fatal(err error) {
	ifcerrors.FatalError(err, false)
}

// runDashboard drives the dashboard.Controller state machine with a
// line-oriented stdin/stdout loop. ifcinspect has no full-screen
// terminal rendering dependency (spec 4.7 describes the UI Controller
// as a boundary only), so this prints one text frame per command
// rather than repainting a screen.
func runDashboard(proj *ifcmodel.Project) {
	ctrl := dashboard.New(proj)
	scanner := bufio.NewScanner(os.Stdin)

	printFrame(ctrl)
	fmt.Println(`commands: j/k move, enter select, b back, q quit`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "q", "quit":
			return
		case "j":
			ctrl.MoveCursor(1)
		case "k":
			ctrl.MoveCursor(-1)
		case "", "enter":
			ctrl.Select()
		case "b", "back":
			ctrl.Back()
		case "tab":
			ctrl.CycleFocus()
		}
		printFrame(ctrl)
	}
}

func printFrame(ctrl *dashboard.Controller) {
	switch ctrl.View() {
	case dashboard.ViewDashboard:
		diag.Header("Dashboard")
		for i, cat := range ctrl.VisibleCategories() {
			marker := "  "
			if ctrl.Focus() == dashboard.FocusCategories && i == ctrl.CursorIndex() {
				marker = "> "
			}
			fmt.Printf("%s%s (%s)\n", marker, cat.Name, diag.CountText(cat.TotalCount))
		}
	case dashboard.ViewTypeDetail:
		t, ok := ctrl.SelectedType()
		if !ok {
			return
		}
		diag.Header(fmt.Sprintf("Type: %s", t.Name))
		fmt.Printf("instances: %s\n", diag.CountText(t.InstanceCount))
	case dashboard.ViewInstanceBrowser:
		diag.Header("Instances")
		for _, id := range ctrl.VisibleInstances() {
			fmt.Printf("  #%d\n", id)
		}
	}
}
