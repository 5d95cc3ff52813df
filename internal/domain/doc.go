// Package domain models records from the NOAA Storm Events database and the
// transformations applied to them for the storm impact report.
//
// # Data Source
//
// The input is the NWS Storm Events bulk CSV (1950 onward), distributed as a
// bzip2-compressed file. Each row is one reported event. Only the columns
// relevant to population-health and economic impact are consumed: EVTYPE,
// BGN_DATE, FATALITIES, INJURIES, PROPDMG, PROPDMGEXP, CROPDMG, CROPDMGEXP.
//
// # Storm Events Data Conventions
//
// Event type (EVTYPE):
//
//	Free-text classification label, e.g. "TORNADO" or "HURRICANE/TYPHOON".
//	Labels are matched by exact string equality. Near-duplicate labels
//	("HURRICANE" vs "HURRICANE/TYPHOON") are distinct categories on purpose;
//	the report narrative calls out the duplication rather than merging it.
//
// Begin date (BGN_DATE):
//
//	"M/D/YYYY H:MM:SS" with an optional time-of-day portion, e.g.
//	"4/18/1950 0:00:00". The format is fixed in the source; parsing is
//	format-locked, never auto-detected. Rows whose date fails the parse are
//	excluded from the analysis and counted.
//
// Pre-1970 classification:
//
//	Events before 1970 are recorded far less completely (only tornadoes until
//	1955). Each record carries a pre-1970 flag derived from the parsed begin
//	year; ranked results cover post-1970 data only. 1970 itself is post-1970:
//	the threshold is year < 1970, exactly.
//
// Damage exponent codes (PROPDMGEXP / CROPDMGEXP):
//
//	Damage amounts are stored as a magnitude paired with a scale code.
//	Recognized codes and their multipliers, in resolution order:
//
//	  numeric token "N"  → 10^N   (e.g. "5" → 100,000)
//	  ""                 → 1
//	  "K" / "k"          → 1e3
//	  "M" / "m"          → 1e6
//	  "B" / "b"          → 1e9
//
//	Any other token ("H", "h", "+", "-", "?", stray letters) maps to a
//	multiplier of ZERO: those codes are undocumented by NOAA and guessing a
//	scale would fabricate dollar figures. The zeroing is a deliberate
//	data-quality decision, surfaced as a warning, never an error.
//
// Casualty counts:
//
//	FATALITIES and INJURIES are non-negative counts, serialized by the source
//	as decimal numerals ("0", "15"). Unparseable values are treated as zero.
package domain
