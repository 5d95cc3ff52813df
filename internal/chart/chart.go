// Package chart renders ranked selections as SVG bar charts.
package chart

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// Bar renders one bar per ranked row, category labels along the x axis and
// the summed metric on the y axis.
func Bar(sel domain.RankedSelection, title, valueLabel string, width, height int) ([]byte, error) {
	if len(sel.Rows) == 0 {
		return nil, errors.New("render chart: no rows to plot")
	}

	bars := make([]chart.Value, 0, len(sel.Rows))
	for _, row := range sel.Rows {
		bars = append(bars, chart.Value{
			Label: row.EventType,
			Value: row.MetricValue(sel.Metric).InexactFloat64(),
		})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    width,
		Height:   height,
		BarWidth: 60,
		XAxis: chart.Style{
			TextRotationDegrees: 30,
		},
		YAxis: chart.YAxis{
			Name: valueLabel,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render chart %q: %w", title, err)
	}
	return buf.Bytes(), nil
}
