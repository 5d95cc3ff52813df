// Package pipeline runs the linear read → clean → aggregate sequence over a
// Storm Events dataset.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
)

// Extractor reads the raw dataset from a path.
type Extractor interface {
	Load(path string) ([]domain.RawEventRecord, error)
}

// Result is the pipeline output: one aggregate row per (era, category) group
// plus the row-level quality counts accumulated along the way.
type Result struct {
	Rows         []domain.AggregateRow
	RowsRead     int
	RowsExcluded int
	UnknownCodes int
}

// Pipeline orchestrates the batch stages. Each stage fully owns its input
// and the pipeline drops the predecessor representation as soon as the
// successor exists, so peak memory stays bounded on large datasets.
type Pipeline struct {
	extractor Extractor
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline with the given extractor and observability.
func New(e Extractor, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{extractor: e, logger: logger, metrics: metrics}
}

// Run executes one full pass: load, normalize, aggregate. A load failure is
// fatal and returned as-is; row-level problems are counted and logged, never
// fatal — the run always produces a best-effort aggregate from the rows that
// parsed.
func (p *Pipeline) Run(path string) (Result, error) {
	start := time.Now()
	raw, err := p.extractor.Load(path)
	if err != nil {
		return Result{}, err
	}
	p.metrics.StageDuration.WithLabelValues("load").Observe(time.Since(start).Seconds())
	p.metrics.RowsRead.Add(float64(len(raw)))

	start = time.Now()
	normalized, excluded, unknown := p.normalize(raw)
	rowsRead := len(raw)
	raw = nil //nolint:ineffassign // release raw records; only the normalized form is needed now
	p.metrics.StageDuration.WithLabelValues("normalize").Observe(time.Since(start).Seconds())
	p.metrics.RowsNormalized.Add(float64(len(normalized)))

	if excluded > 0 {
		p.logger.Warn("rows excluded by begin-date parse", "count", excluded)
	}
	if unknown > 0 {
		p.logger.Warn("damage fields zeroed by unrecognized exponent codes", "count", unknown)
	}

	start = time.Now()
	rows := domain.Aggregate(normalized)
	normalized = nil //nolint:ineffassign // release normalized records after aggregation
	p.metrics.StageDuration.WithLabelValues("aggregate").Observe(time.Since(start).Seconds())

	p.logger.Info("pipeline complete",
		"rows_read", rowsRead,
		"rows_excluded", excluded,
		"unknown_exponent_codes", unknown,
		"groups", len(rows),
	)

	return Result{
		Rows:         rows,
		RowsRead:     rowsRead,
		RowsExcluded: excluded,
		UnknownCodes: unknown,
	}, nil
}

// normalize converts every raw record, excluding rows whose begin date fails
// the fixed-format parse and counting zeroed damage fields.
func (p *Pipeline) normalize(raw []domain.RawEventRecord) ([]domain.NormalizedRecord, int, int) {
	normalized := make([]domain.NormalizedRecord, 0, len(raw))
	excluded := 0
	unknown := 0

	for i := range raw {
		rec, warnings, err := domain.Normalize(raw[i])
		if err != nil {
			p.logger.Debug("row excluded", "error", err, "row", i)
			p.metrics.DateParseErrors.Inc()
			excluded++
			continue
		}
		for _, w := range warnings {
			p.logger.Debug("unrecognized exponent code", "field", w.Field, "code", w.Code, "row", i)
			p.metrics.UnknownExponentCodes.WithLabelValues(w.Field).Inc()
			unknown++
		}
		normalized = append(normalized, rec)
	}

	return normalized, excluded, unknown
}
