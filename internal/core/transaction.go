package core

import (
	"strings"
	"time"
)

// Operation timestamps in the export are day-first: "31.12.2021 16:44:00".
// A bare date is accepted for rows that carry no time of day.
const (
	opDateTimeLayout = "02.01.2006 15:04:05"
	opDateLayout     = "02.01.2006"

	// OutputDateLayout is the date-only form used in report output.
	OutputDateLayout = "02.01.2006"
)

// StatusOK marks a settled operation after status normalization.
const StatusOK = "OK"

// ParseOperationDate parses a day-first operation timestamp.
func ParseOperationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(opDateTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(opDateLayout, s)
}

// NormalizeStatus trims and uppercases a status cell for comparison.
func NormalizeStatus(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeCategory trims and case-folds a category for matching. Both the
// row values and the query category go through this before comparison.
func NormalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
