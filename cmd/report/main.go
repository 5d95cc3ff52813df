// Command report generates the storm impact report: it runs the batch
// pipeline over a Storm Events dataset and writes report.md plus the three
// ranking charts into the configured output directory.
//
// Configuration comes from REPORT_-prefixed environment variables or a YAML
// file named by REPORT_CONFIG; REPORT_INPUT_PATH is required.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/chart"
	"github.com/couchcryptid/storm-impact-report/internal/config"
	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/loader"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/pipeline"
	"github.com/couchcryptid/storm-impact-report/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	p := pipeline.New(loader.New(logger), logger, metrics)

	result, err := p.Run(cfg.InputPath)
	if err != nil {
		return err
	}

	rep := report.Build(result.Rows, cfg.TopN, report.QualityCounts{
		RowsRead:     result.RowsRead,
		RowsExcluded: result.RowsExcluded,
		UnknownCodes: result.UnknownCodes,
	}, cfg.InputPath)

	renderStart := time.Now()
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	charts := []struct {
		sel   domain.RankedSelection
		title string
		label string
		file  string
	}{
		{rep.Fatalities, "Top event types by fatalities since 1970", "Fatalities", "fatalities.svg"},
		{rep.Injuries, "Top event types by injuries since 1970", "Injuries", "injuries.svg"},
		{rep.Damage, "Top event types by total damage since 1970", "Damage (USD)", "damage.svg"},
	}
	for _, c := range charts {
		if len(c.sel.Rows) == 0 {
			logger.Warn("no post-1970 groups for chart, skipping", "chart", c.file)
			continue
		}
		svg, err := chart.Bar(c.sel, c.title, c.label, cfg.ChartWidth, cfg.ChartHeight)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(cfg.OutputDir, c.file), svg, 0o644); err != nil {
			return err
		}
	}

	reportPath := filepath.Join(cfg.OutputDir, "report.md")
	if err := os.WriteFile(reportPath, []byte(rep.Markdown()), 0o644); err != nil {
		return err
	}
	metrics.StageDuration.WithLabelValues("render").Observe(time.Since(renderStart).Seconds())
	logger.Info("report written", "path", reportPath)

	summary, err := metrics.Summary()
	if err != nil {
		return err
	}
	logger.Info("run summary", "metrics", summary)

	return nil
}
