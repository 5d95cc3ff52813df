package report

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

func aggRow(eventType string, pre1970 bool, fatalities, injuries int64, damage string) domain.AggregateRow {
	return domain.AggregateRow{
		EventType:   eventType,
		Pre1970:     pre1970,
		Fatalities:  fatalities,
		Injuries:    injuries,
		TotalDamage: decimal.RequireFromString(damage),
	}
}

func testRows() []domain.AggregateRow {
	return []domain.AggregateRow{
		aggRow("TORNADO", false, 5633, 91346, "57352114049"),
		aggRow("EXCESSIVE HEAT", false, 1903, 6525, "500155700"),
		aggRow("HURRICANE", false, 61, 46, "40000000000"),
		aggRow("HURRICANE/TYPHOON", false, 64, 1275, "31900000000"),
		aggRow("STORM SURGE", false, 13, 38, "43323541000"),
		aggRow("TORNADO", true, 3210, 51000, "900000000"),
	}
}

func TestBuild(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2012, 5, 20, 9, 0, 0, 0, time.UTC)))
	defer SetClock(nil)

	rep := Build(testRows(), 6, QualityCounts{RowsRead: 902297, RowsExcluded: 12, UnknownCodes: 321}, "StormData.csv.bz2")

	assert.Equal(t, time.Date(2012, 5, 20, 9, 0, 0, 0, time.UTC), rep.GeneratedAt)
	assert.Equal(t, domain.MetricFatalities, rep.Fatalities.Metric)
	assert.Equal(t, domain.MetricInjuries, rep.Injuries.Metric)
	assert.Equal(t, domain.MetricTotalDamage, rep.Damage.Metric)

	top, ok := rep.Fatalities.Top()
	require.True(t, ok)
	assert.Equal(t, "TORNADO", top.EventType)
	assert.False(t, top.Pre1970, "pre-1970 tornado group must not outrank")
	assert.Equal(t, int64(5633), top.Fatalities)
}

func TestMarkdown(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2012, 5, 20, 9, 0, 0, 0, time.UTC)))
	defer SetClock(nil)

	rep := Build(testRows(), 6, QualityCounts{RowsRead: 902297, RowsExcluded: 12, UnknownCodes: 321}, "StormData.csv.bz2")
	md := rep.Markdown()

	t.Run("header and metadata", func(t *testing.T) {
		assert.Contains(t, md, "# Storm Event Impact Report")
		assert.Contains(t, md, "2012-05-20T09:00:00Z")
		assert.Contains(t, md, "`StormData.csv.bz2`")
	})

	t.Run("data quality figures", func(t *testing.T) {
		assert.Contains(t, md, "902,297 rows read")
		assert.Contains(t, md, "12 rows excluded")
		assert.Contains(t, md, "321 damage fields zeroed")
	})

	t.Run("fatality narrative", func(t *testing.T) {
		assert.Contains(t, md, "TORNADO has caused the most fatalities since 1970, with 5,633")
		assert.Contains(t, md, "EXCESSIVE HEAT is second with 1,903")
	})

	t.Run("injury narrative", func(t *testing.T) {
		assert.Contains(t, md, "TORNADO has caused the most injuries since 1970, with 91,346")
	})

	t.Run("damage narrative combines duplicate labels", func(t *testing.T) {
		// Ranked by damage: TORNADO, STORM SURGE lead; the combined-top-two
		// sentence always names ranks 1 and 2 and then the third.
		assert.Contains(t, md, "combined they account for $100,675,655,049")
		assert.Contains(t, md, "The next distinct category is HURRICANE with $40,000,000,000.")
	})

	t.Run("tables", func(t *testing.T) {
		assert.Contains(t, md, "| Rank | Event type | Fatalities |")
		assert.Contains(t, md, "| 1 | TORNADO | 5,633 |")
		assert.Contains(t, md, "| Rank | Event type | Total damage (USD) |")
		assert.Contains(t, md, "| 1 | TORNADO | $57,352,114,049 |")
	})

	t.Run("chart references", func(t *testing.T) {
		assert.Contains(t, md, "](fatalities.svg)")
		assert.Contains(t, md, "](injuries.svg)")
		assert.Contains(t, md, "](damage.svg)")
	})

	t.Run("pre-1970 rows never appear", func(t *testing.T) {
		assert.NotContains(t, md, "51,000")
	})
}

func TestMarkdownSparseData(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2012, 5, 20, 9, 0, 0, 0, time.UTC)))
	defer SetClock(nil)

	t.Run("single group", func(t *testing.T) {
		rep := Build([]domain.AggregateRow{aggRow("HEAT", false, 7, 2, "1500")}, 6, QualityCounts{RowsRead: 1}, "tiny.csv")
		md := rep.Markdown()
		assert.Contains(t, md, "HEAT has caused the most fatalities since 1970, with 7.")
		assert.Contains(t, md, "HEAT has caused the most property and crop damage since 1970, with $1,500.")
	})

	t.Run("no post-1970 groups", func(t *testing.T) {
		rep := Build([]domain.AggregateRow{aggRow("TORNADO", true, 7, 2, "1500")}, 6, QualityCounts{RowsRead: 1}, "tiny.csv")
		md := rep.Markdown()
		assert.Contains(t, md, "# Storm Event Impact Report")
		assert.NotContains(t, md, "has caused the most")
	})
}
