package domain

// aggregateKey is the composite grouping key. Event types group by exact
// string equality; near-duplicate labels stay separate.
type aggregateKey struct {
	pre1970   bool
	eventType string
}

// Aggregate groups records by (pre-1970, event type) in a single pass and
// sums fatalities, injuries, and total damage per group. Every input record
// contributes to exactly one row. Rows come back in first-seen order, which
// later stable sorts use as the tie-break order.
func Aggregate(records []NormalizedRecord) []AggregateRow {
	rows := make([]AggregateRow, 0)
	index := make(map[aggregateKey]int)

	for _, rec := range records {
		key := aggregateKey{pre1970: rec.Pre1970, eventType: rec.EventType}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, AggregateRow{Pre1970: rec.Pre1970, EventType: rec.EventType})
		}
		rows[i].Fatalities += rec.Fatalities
		rows[i].Injuries += rec.Injuries
		rows[i].TotalDamage = rows[i].TotalDamage.Add(rec.TotalDamage)
	}

	return rows
}
