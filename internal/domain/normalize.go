package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Begin-date layouts. The source format is fixed; no auto-detection.
const (
	beginDateTimeLayout = "1/2/2006 15:04:05"
	beginDateLayout     = "1/2/2006"
)

// modernEraYear is the first year of the well-recorded era. Events strictly
// before it carry the pre-1970 flag; 1970 itself does not.
const modernEraYear = 1970

// ParseError reports a row field that failed the format-locked parse.
// It is row-level: the row is excluded, the run continues.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DataQualityWarning records an unrecognized damage exponent code whose
// contribution was zeroed.
type DataQualityWarning struct {
	Field string // "property" or "crop"
	Code  string
}

// Normalize converts one raw record into its cleaned form: category and
// casualty counts copied over, begin date parsed and classified against the
// 1970 threshold, damage pairs resolved to dollar amounts.
//
// A *ParseError is returned when the begin date does not match the fixed
// source format; callers exclude such rows. Unrecognized exponent codes never
// fail the row — they zero the amount and come back as warnings.
func Normalize(raw RawEventRecord) (NormalizedRecord, []DataQualityWarning, error) {
	began, err := ParseBeginDate(raw.BeginDate)
	if err != nil {
		return NormalizedRecord{}, nil, err
	}

	var warnings []DataQualityWarning
	property, ok := DamageAmount(raw.PropDamage, raw.PropDamageExp)
	if !ok {
		warnings = append(warnings, DataQualityWarning{Field: "property", Code: raw.PropDamageExp})
	}
	crop, ok := DamageAmount(raw.CropDamage, raw.CropDamageExp)
	if !ok {
		warnings = append(warnings, DataQualityWarning{Field: "crop", Code: raw.CropDamageExp})
	}

	return NormalizedRecord{
		EventType:      raw.EventType,
		Pre1970:        began.Year() < modernEraYear,
		Fatalities:     parseCountOrZero(raw.Fatalities),
		Injuries:       parseCountOrZero(raw.Injuries),
		PropertyDamage: property,
		CropDamage:     crop,
		TotalDamage:    property.Add(crop),
	}, warnings, nil
}

// ParseBeginDate parses a BGN_DATE value under the fixed "M/D/YYYY H:MM:SS"
// layout, accepting the date-only form as well.
func ParseBeginDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if t, err := time.Parse(beginDateTimeLayout, trimmed); err == nil {
		return t, nil
	}
	t, err := time.Parse(beginDateLayout, trimmed)
	if err != nil {
		return time.Time{}, &ParseError{Field: "begin date", Value: s, Err: err}
	}
	return t, nil
}

// parseCountOrZero parses a casualty count, returning 0 on failure. The
// source serializes counts as decimal numerals, occasionally with a
// fractional ".0" suffix.
func parseCountOrZero(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(v)
}
