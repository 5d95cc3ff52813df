package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Metric selects which summed column a ranking orders by.
type Metric string

const (
	MetricFatalities  Metric = "fatalities"
	MetricInjuries    Metric = "injuries"
	MetricTotalDamage Metric = "total_damage"
)

// DefaultTopN is the number of leading categories a ranking keeps.
const DefaultTopN = 6

// RankedSelection is an ordered slice of post-1970 aggregate rows, sorted
// descending by one metric. It is a pure function of its inputs and never
// shares backing storage with them.
type RankedSelection struct {
	Metric Metric
	Rows   []AggregateRow
}

// Rank filters rows to the post-1970 era, stable-sorts them descending by
// the metric (ties keep aggregate order), and returns the first topN rows,
// or fewer if fewer post-1970 groups exist. topN values below one fall back
// to DefaultTopN.
func Rank(rows []AggregateRow, metric Metric, topN int) RankedSelection {
	if topN < 1 {
		topN = DefaultTopN
	}

	modern := make([]AggregateRow, 0, len(rows))
	for _, row := range rows {
		if !row.Pre1970 {
			modern = append(modern, row)
		}
	}

	sort.SliceStable(modern, func(i, j int) bool {
		return modern[i].MetricValue(metric).Cmp(modern[j].MetricValue(metric)) > 0
	})

	if len(modern) > topN {
		modern = modern[:topN]
	}
	return RankedSelection{Metric: metric, Rows: modern}
}

// Top returns the highest-ranked row, if any.
func (s RankedSelection) Top() (AggregateRow, bool) { return s.at(0) }

// Second returns the second-ranked row, if any.
func (s RankedSelection) Second() (AggregateRow, bool) { return s.at(1) }

// Third returns the third-ranked row, if any.
func (s RankedSelection) Third() (AggregateRow, bool) { return s.at(2) }

// CombinedTopTwo sums the metric values of the first two rows. The damage
// narrative uses it because the top two damage categories are known
// duplicate labels for one physical event type.
func (s RankedSelection) CombinedTopTwo() decimal.Decimal {
	total := decimal.Zero
	for i := 0; i < 2 && i < len(s.Rows); i++ {
		total = total.Add(s.Rows[i].MetricValue(s.Metric))
	}
	return total
}

func (s RankedSelection) at(i int) (AggregateRow, bool) {
	if i >= len(s.Rows) {
		return AggregateRow{}, false
	}
	return s.Rows[i], true
}
