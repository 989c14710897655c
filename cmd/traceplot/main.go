package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/traceplot/traceplot/internal/observability"
	"github.com/traceplot/traceplot/internal/sentryreport"
	"github.com/traceplot/traceplot/internal/tui"
	"github.com/traceplot/traceplot/internal/version"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	exitCode := mainWithExitCode()
	os.Exit(exitCode)
}

func mainWithExitCode() int {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "traceplot - Terminal Trace Plotter\n\n")
		fmt.Fprintf(os.Stderr, "A terminal UI for exploring data series with tracepoint markers.\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  traceplot [<data.csv>]\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  <data.csv>            Optional CSV file: first column is x, remaining\n")
		fmt.Fprintf(os.Stderr, "                        columns are series. A header row names the series.\n")
		fmt.Fprintf(os.Stderr, "                        Without an argument, built-in demo series are shown.\n\n")
		fmt.Fprintf(os.Stderr, "Environment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TRACEPLOT_DEBUG       Enable debug logging (creates traceplot.debug.log)\n")
		fmt.Fprintf(os.Stderr, "  TRACEPLOT_CONFIG_DIR  Override the configuration directory\n")
	}

	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	// Crash reporting.
	enableErrorReporting := true
	if os.Getenv("TRACEPLOT_ERROR_REPORTING") != "" {
		enableErrorReporting, _ = strconv.ParseBool(os.Getenv("TRACEPLOT_ERROR_REPORTING"))
	}

	dsn := ""
	if enableErrorReporting {
		dsn = os.Getenv("TRACEPLOT_SENTRY_DSN")
	}
	reporter := sentryreport.New(sentryreport.Params{
		DSN:              dsn,
		AttachStacktrace: true,
		Release:          version.Version,
		Environment:      version.Environment,
	})
	defer reporter.Flush(2 * time.Second)

	// Enable debug logging if TRACEPLOT_DEBUG env var is set.
	var writer io.Writer
	if os.Getenv("TRACEPLOT_DEBUG") != "" {
		loggerFile, err := os.OpenFile("traceplot.debug.log", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			fmt.Println("fatal:", err)
			return 1
		}
		writer = loggerFile
		defer func() {
			_ = loggerFile.Close()
		}()
	} else {
		writer = io.Discard
	}

	logger := observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(
			writer,
			&slog.HandlerOptions{
				Level: slog.LevelDebug,
			},
		)),
		&observability.CoreLoggerParams{
			Tags:     observability.Tags{},
			Reporter: reporter,
		},
	)

	var datasets []tui.SeriesData
	if flag.NArg() == 1 {
		loaded, err := loadCSV(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		datasets = loaded
	} else {
		datasets = demoSeries()
	}

	cfg := tui.NewConfigManager(tui.DefaultConfigPath(), logger)

	model := tui.NewModel(datasets, cfg, logger)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error(fmt.Sprintf("traceplot: %v", err))
		return 1
	}

	return 0
}

// demoSeries builds a few synthetic series so the tool is usable without
// a data file.
func demoSeries() []tui.SeriesData {
	const n = 200
	rng := rand.New(rand.NewSource(42))

	sine := tui.SeriesData{Name: "sine"}
	damped := tui.SeriesData{Name: "damped"}
	noisy := tui.SeriesData{Name: "noisy"}
	for i := 0; i < n; i++ {
		x := float64(i) * 0.5
		sine.Xs = append(sine.Xs, x)
		sine.Ys = append(sine.Ys, math.Sin(x/8))
		damped.Xs = append(damped.Xs, x)
		damped.Ys = append(damped.Ys, math.Exp(-x/40)*math.Cos(x/5))
		noisy.Xs = append(noisy.Xs, x)
		noisy.Ys = append(noisy.Ys, math.Sin(x/12)+0.2*rng.NormFloat64())
	}
	return []tui.SeriesData{sine, damped, noisy}
}

// loadCSV reads a data file where the first column is the x value and
// each remaining column is a series. A header row names the series.
func loadCSV(path string) ([]tui.SeriesData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open data file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty data file: %s", path)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("need at least one x column and one series column: %s", path)
	}

	rows := records[1:]
	// Tolerate files without a header row.
	if len(rows) == 0 || headerIsNumeric(header) {
		rows = records
		header = make([]string, len(records[0]))
		for i := range header {
			if i == 0 {
				header[i] = "x"
			} else {
				header[i] = fmt.Sprintf("series-%d", i)
			}
		}
	}

	datasets := make([]tui.SeriesData, len(header)-1)
	for i := range datasets {
		datasets[i].Name = header[i+1]
	}
	for lineNo, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d columns, want %d", lineNo+1, len(row), len(header))
		}
		x, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad x value %q", lineNo+1, row[0])
		}
		for i := range datasets {
			y, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad value %q", lineNo+1, row[i+1])
			}
			datasets[i].Xs = append(datasets[i].Xs, x)
			datasets[i].Ys = append(datasets[i].Ys, y)
		}
	}
	return datasets, nil
}

func headerIsNumeric(header []string) bool {
	for _, cell := range header {
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
	}
	return true
}
