/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package trends

import (
	"fmt"
	"math"
	"strconv"
)

// Direction is the classification of a first-to-last change.
type Direction string

// Direction values.
const (
	Increased Direction = "increased"
	Decreased Direction = "decreased"
	NoChange  Direction = "no change"
)

// NotApplicable is rendered in place of a percentage that cannot be computed.
const NotApplicable = "N/A"

// PercentChange returns (last-first)/first*100. ok is false when first is
// zero or the result is not a finite number.
func PercentChange(first, last float64) (pct float64, ok bool) {
	if first == 0 {
		return 0, false
	}

	pct = (last - first) / first * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}

	return pct, true
}

// FormatPercent renders the absolute percentage with one decimal, or N/A.
func FormatPercent(pct float64, ok bool) string {
	if !ok {
		return NotApplicable
	}

	return strconv.FormatFloat(math.Abs(pct), 'f', 1, 64) + "%"
}

// Trend classifies the change between the first and last points.
func Trend(s *Series) Direction {
	first, ok := s.First()
	if !ok {
		return NoChange
	}

	last, _ := s.Last()

	return direction(last.Value - first.Value)
}

func direction(change float64) Direction {
	switch {
	case change > 0:
		return Increased
	case change < 0:
		return Decreased
	default:
		return NoChange
	}
}

// Insight describes a series in one sentence. It compares only the first and
// last points. An empty series yields an empty string.
func Insight(s *Series) string {
	last, ok := s.Last()
	if !ok {
		return ""
	}

	if len(s.Points) == 1 {
		return fmt.Sprintf("Latest %s: %s.", s.Name, withUnit(FormatValue(last.Value), s.Unit))
	}

	first, _ := s.First()
	pct := FormatPercent(PercentChange(first.Value, last.Value))

	return fmt.Sprintf("%s has %s by %s (from %s to %s).",
		s.Name, Trend(s), pct, FormatValue(first.Value), withUnit(FormatValue(last.Value), s.Unit))
}

// FormatValue renders a reading in its shortest exact form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func withUnit(value, unit string) string {
	if unit == "" {
		return value
	}

	return value + " " + unit
}
