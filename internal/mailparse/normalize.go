package mailparse

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts covers the literal formats seen across channels. Day-first
// layouts are tried before the US layout so "21/01/2025" never misparses.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
}

// ParseDate normalizes a literal date to a calendar date (midnight UTC).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseMonthNameDate parses "January 15, 2024" style dates, falling back to
// the generic layouts.
func ParseMonthNameDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("January 2, 2006", s); err == nil {
		return t, true
	}
	return ParseDate(s)
}

var currencyStripper = strings.NewReplacer("€", "", "$", "", "£", "", ",", "", " ", "")

// ParseAmountCents normalizes a monetary amount to integer cents, stripping
// currency symbols and thousands separators ("€1,234.50" -> 123450).
func ParseAmountCents(s string) (int64, bool) {
	clean := currencyStripper.Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int64(math.Round(f * 100)), true
}
