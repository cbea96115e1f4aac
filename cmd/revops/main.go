// Package main is the revops command line:
//
//	revops calculate   -input plan.json [-format json|md|csv]
//	revops sensitivity -input plan.json [-bump 10] [-metric pnl.ebitda,unit.cac]
//	revops reverse     -target 20 -stage sales -contact 0.6 -meeting 0.3 -show 0.7 -close 0.3
//	revops export      -input plan.yaml [-output plan.json]
//	revops report      -input plan.json [-output-dir docs]
//	revops presets     -input plan.json
//
// Without -input the default plan is used.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"revops-engine/internal/config"
	"revops-engine/internal/document"
	"revops-engine/internal/domain"
	"revops-engine/internal/engine"
	"revops-engine/internal/gtm"
	"revops-engine/internal/reporting"
	"revops-engine/internal/sensitivity"
)

var errUsage = errors.New("usage: revops <calculate|sensitivity|reverse|export|report|presets> [flags]")

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	if err := run(context.Background(), os.Args[1:], os.Stdout, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, cfg config.Config, logger *slog.Logger) error {
	if len(args) == 0 {
		return errUsage
	}

	eng := engine.New().
		WithLogger(logger).
		WithCacheSize(cfg.CacheSize).
		WithWorkingDays(cfg.WorkingDays)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "calculate":
		return runCalculate(ctx, eng, rest, stdout)
	case "sensitivity":
		return runSensitivity(rest, stdout, cfg.BumpPct)
	case "reverse":
		return runReverse(rest, stdout)
	case "export":
		return runExport(rest, stdout)
	case "report":
		return runReport(ctx, eng, rest, stdout, cfg.BumpPct, logger)
	case "presets":
		return runPresets(ctx, eng, rest, stdout)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func runCalculate(ctx context.Context, eng *engine.Engine, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("calculate", flag.ContinueOnError)
	input := fs.String("input", "", "Plan document (.json, .yaml or .yml)")
	format := fs.String("format", "json", "Output format: json, md or csv")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := loadInputs(*input)
	if err != nil {
		return err
	}
	res, err := eng.Calculate(ctx, in)
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		return writeJSON(stdout, res)
	case "md", "markdown":
		_, err = io.WriteString(stdout, reporting.RenderResultsMarkdown(res))
	case "csv":
		err = reporting.WriteChannelsCSV(stdout, res)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	return err
}

func runSensitivity(args []string, stdout io.Writer, defaultBump float64) error {
	fs := flag.NewFlagSet("sensitivity", flag.ContinueOnError)
	input := fs.String("input", "", "Plan document (.json, .yaml or .yml)")
	bump := fs.Float64("bump", defaultBump, "Input bump in percent")
	metricList := fs.String("metric", "", "Comma-separated metrics (default: all)")
	format := fs.String("format", "json", "Output format: json or csv")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *bump <= 0 {
		return fmt.Errorf("-bump must be positive, got %g", *bump)
	}

	var metrics []string
	for _, m := range strings.Split(*metricList, ",") {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if !engine.KnownMetric(m) {
			return fmt.Errorf("unknown metric %q", m)
		}
		metrics = append(metrics, m)
	}

	in, err := loadInputs(*input)
	if err != nil {
		return err
	}
	tables := engine.Sensitivity(in, *bump, metrics...)

	if *format == "csv" {
		return reporting.WriteSensitivityCSV(stdout, tables)
	}
	return writeJSON(stdout, struct {
		Tables  []sensitivity.Table  `json:"tables"`
		Drivers []sensitivity.Driver `json:"drivers"`
	}{tables, sensitivity.Summarize(tables)})
}

func runReverse(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("reverse", flag.ContinueOnError)
	target := fs.Float64("target", 0, "Monthly volume to hit at -stage")
	stageName := fs.String("stage", "sales", "Target stage: leads, contacts, meetings or sales")
	var rates domain.FunnelRates
	fs.Float64Var(&rates.ContactRate, "contact", 0, "Lead to contact rate [0, 1]")
	fs.Float64Var(&rates.MeetingRate, "meeting", 0, "Contact to meeting rate [0, 1]")
	fs.Float64Var(&rates.ShowUpRate, "show", 0, "Meeting show-up rate [0, 1]")
	fs.Float64Var(&rates.CloseRate, "close", 0, "Meeting to sale rate [0, 1]")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stage, err := domain.ParseStage(*stageName)
	if err != nil {
		return err
	}
	if err := rates.Validate(); err != nil {
		return err
	}
	if *target < 0 {
		return fmt.Errorf("%w: target", domain.ErrNegativeAmount)
	}

	if stage == domain.StageSales {
		return writeJSON(stdout, gtm.PlanLeads(*target, rates))
	}
	return writeJSON(stdout, map[string]any{
		"target": *target,
		"stage":  stage,
		"leads":  gtm.ReverseEngineerLeads(*target, stage, rates),
	})
}

func runExport(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	input := fs.String("input", "", "Plan document (.json, .yaml or .yml)")
	output := fs.String("output", "", "Output file; format follows the extension (default: JSON to stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := loadInputs(*input)
	if err != nil {
		return err
	}
	doc := document.FromInputs(in, time.Now())

	format := document.FormatJSON
	if *output != "" {
		format = document.FormatFromPath(*output)
	}
	data, err := document.Encode(doc, format)
	if err != nil {
		return err
	}

	if *output == "" {
		_, err = stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(*output, data, 0o644)
}

func runReport(ctx context.Context, eng *engine.Engine, args []string, stdout io.Writer, defaultBump float64, logger *slog.Logger) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	input := fs.String("input", "", "Plan document (.json, .yaml or .yml)")
	outputDir := fs.String("output-dir", "docs", "Output directory for generated files")
	bump := fs.Float64("bump", defaultBump, "Sensitivity bump in percent")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := loadInputs(*input)
	if err != nil {
		return err
	}
	rep, err := reporting.NewGenerator(eng).WithBumpPct(*bump).Generate(ctx, in)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"REPORT.md", func(w io.Writer) error {
			_, err := io.WriteString(w, reporting.RenderMarkdown(rep))
			return err
		}},
		{"CHANNELS.csv", func(w io.Writer) error { return reporting.WriteChannelsCSV(w, rep.Results) }},
		{"SENSITIVITY.csv", func(w io.Writer) error { return reporting.WriteSensitivityCSV(w, rep.Sensitivity) }},
	}
	for _, f := range files {
		path := filepath.Join(*outputDir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
		logger.Info("wrote file", slog.String("path", path))
	}

	_, err = fmt.Fprintf(stdout, "Health: %s\n", rep.Results.Health.Verdict)
	return err
}

func runPresets(ctx context.Context, eng *engine.Engine, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("presets", flag.ContinueOnError)
	input := fs.String("input", "", "Plan document (.json, .yaml or .yml)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := loadInputs(*input)
	if err != nil {
		return err
	}
	rows, err := reporting.Presets(ctx, eng, in)
	if err != nil {
		return err
	}
	return writeJSON(stdout, rows)
}

// loadInputs reads a plan document, or the default plan when path is empty.
func loadInputs(path string) (domain.Inputs, error) {
	if path == "" {
		return document.Default().ToInputs()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Inputs{}, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := document.Decode(data, document.FormatFromPath(path))
	if err != nil {
		return domain.Inputs{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc.ToInputs()
}

// writeFile creates path and fills it with write, reporting close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
