package domain

import "github.com/shopspring/decimal"

// RawEventRecord mirrors one row of the source CSV. All fields are kept as
// raw strings exactly as read; parsing happens during normalization.
type RawEventRecord struct {
	EventType     string // EVTYPE
	BeginDate     string // BGN_DATE, "M/D/YYYY H:MM:SS"
	Fatalities    string // FATALITIES
	Injuries      string // INJURIES
	PropDamage    string // PROPDMG magnitude
	PropDamageExp string // PROPDMGEXP scale code
	CropDamage    string // CROPDMG magnitude
	CropDamageExp string // CROPDMGEXP scale code
}

// NormalizedRecord is the cleaned representation after date parsing and
// damage calculation. TotalDamage is always exactly PropertyDamage plus
// CropDamage; dollar amounts are exact decimals, never floats.
type NormalizedRecord struct {
	EventType      string
	Pre1970        bool
	Fatalities     int64
	Injuries       int64
	PropertyDamage decimal.Decimal
	CropDamage     decimal.Decimal
	TotalDamage    decimal.Decimal
}

// AggregateRow holds the summed metrics for one (pre-1970, event type) group.
type AggregateRow struct {
	Pre1970     bool
	EventType   string
	Fatalities  int64
	Injuries    int64
	TotalDamage decimal.Decimal
}

// MetricValue returns the row's value for the given ranking metric as a
// decimal so all three metrics compare uniformly.
func (r AggregateRow) MetricValue(m Metric) decimal.Decimal {
	switch m {
	case MetricFatalities:
		return decimal.NewFromInt(r.Fatalities)
	case MetricInjuries:
		return decimal.NewFromInt(r.Injuries)
	case MetricTotalDamage:
		return r.TotalDamage
	default:
		return decimal.Zero
	}
}
