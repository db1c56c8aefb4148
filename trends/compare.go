/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package trends

import "strings"

// Status is the clinical reading of a change between two reports.
type Status string

// Status values.
const (
	StatusImproved Status = "improved"
	StatusWorsened Status = "worsened"
	StatusStable   Status = "stable"
)

// DefaultLowerIsBetter lists name fragments of tests where a decrease is an
// improvement.
var DefaultLowerIsBetter = []string{"cholesterol", "ldl", "triglycerides", "glucose", "hba1c"}

// higherIsBetter overrides lower-is-better fragments (HDL is a cholesterol).
var higherIsBetter = []string{"hdl"}

// ComparisonRow is one test found in both reports.
type ComparisonRow struct {
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	Older         float64 `json:"value1"`
	Newer         float64 `json:"value2"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	HasPercent    bool    `json:"has_percent"`
	Status        Status  `json:"status"`
}

// Percent renders the percentage change or N/A.
func (r ComparisonRow) Percent() string {
	return FormatPercent(r.PercentChange, r.HasPercent)
}

// Direction returns the direction of the change.
func (r ComparisonRow) Direction() Direction {
	return direction(r.Change)
}

// ComparisonSummary counts rows by status.
type ComparisonSummary struct {
	Improved int `json:"improved_count"`
	Worsened int `json:"worsened_count"`
	Stable   int `json:"stable_count"`
}

// Comparison is the result of comparing an older report with a newer one.
type Comparison struct {
	Rows    []ComparisonRow   `json:"comparisons"`
	Summary ComparisonSummary `json:"summary"`
}

// Comparer matches readings of two reports and classifies each change.
type Comparer struct {
	lowerIsBetter []string
}

// NewComparer returns a comparer using the given lower-is-better fragments,
// or DefaultLowerIsBetter when none are given.
func NewComparer(lowerIsBetter []string) *Comparer {
	if len(lowerIsBetter) == 0 {
		lowerIsBetter = DefaultLowerIsBetter
	}

	fragments := make([]string, 0, len(lowerIsBetter))
	for _, f := range lowerIsBetter {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			fragments = append(fragments, f)
		}
	}

	return &Comparer{lowerIsBetter: fragments}
}

// Compare compares readings with the default lower-is-better list.
func Compare(older, newer []Reading) Comparison {
	return NewComparer(nil).Compare(older, newer)
}

// LowerIsBetter reports whether a decrease of the named test is an
// improvement.
func (c *Comparer) LowerIsBetter(name string) bool {
	lower := strings.ToLower(name)

	for _, f := range higherIsBetter {
		if strings.Contains(lower, f) {
			return false
		}
	}

	for _, f := range c.lowerIsBetter {
		if strings.Contains(lower, f) {
			return true
		}
	}

	return false
}

// Compare pairs readings by case-insensitive label. Pairs with different
// units are skipped. Rows follow the order of the older readings; the first
// reading of a label wins on either side.
func (c *Comparer) Compare(older, newer []Reading) Comparison {
	newerByName := make(map[string]Reading, len(newer))
	for _, r := range newer {
		key := strings.ToLower(r.Label)
		if _, exists := newerByName[key]; !exists {
			newerByName[key] = r
		}
	}

	var comparison Comparison

	seen := make(map[string]bool, len(older))

	for _, old := range older {
		key := strings.ToLower(old.Label)
		if seen[key] {
			continue
		}
		seen[key] = true

		cur, ok := newerByName[key]
		if !ok || !strings.EqualFold(old.Unit, cur.Unit) {
			continue
		}

		pct, hasPct := PercentChange(old.Value, cur.Value)
		row := ComparisonRow{
			Name:          old.Label,
			Unit:          old.Unit,
			Older:         old.Value,
			Newer:         cur.Value,
			Change:        cur.Value - old.Value,
			PercentChange: pct,
			HasPercent:    hasPct,
		}
		row.Status = c.status(row)

		switch row.Status {
		case StatusImproved:
			comparison.Summary.Improved++
		case StatusWorsened:
			comparison.Summary.Worsened++
		default:
			comparison.Summary.Stable++
		}

		comparison.Rows = append(comparison.Rows, row)
	}

	return comparison
}

func (c *Comparer) status(row ComparisonRow) Status {
	lowerBetter := c.LowerIsBetter(row.Name)

	switch direction(row.Change) {
	case Increased:
		if lowerBetter {
			return StatusWorsened
		}
		return StatusImproved
	case Decreased:
		if lowerBetter {
			return StatusImproved
		}
		return StatusWorsened
	default:
		return StatusStable
	}
}
