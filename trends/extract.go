/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package trends

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	minLabelRunes = 3
	maxLabelWords = 5
)

// Extractor pulls readings out of free-text summaries.
type Extractor struct {
	patterns []Pattern
}

// NewExtractor returns an extractor running the given patterns in order, or
// the built-in set when none are given.
func NewExtractor(patterns ...Pattern) *Extractor {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}

	return &Extractor{patterns: patterns}
}

var defaultExtractor = NewExtractor()

// Extract returns the readings of text using the built-in patterns.
func Extract(text string) []Reading {
	return defaultExtractor.Extract(text)
}

// Extract runs every pattern over text and returns the accepted readings
// ordered by position.
//
// All matches are collected first and then filtered. Candidates whose label
// is too short or reads like a sentence, or whose value does not parse, are
// dropped without error. A candidate whose value overlaps one already
// accepted from an earlier pattern is a second match of the same figure and
// is dropped as well.
func (e *Extractor) Extract(text string) []Reading {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	type scored struct {
		candidate
		pattern string
	}

	var all []scored

	for _, p := range e.patterns {
		for _, c := range p.find(text) {
			all = append(all, scored{candidate: c, pattern: p.Name})
		}
	}

	readings := make([]Reading, 0, len(all))

	for _, c := range all {
		label := cleanLabel(c.label)
		if !acceptLabel(label) {
			continue
		}

		value, err := strconv.ParseFloat(c.value, 64)
		if err != nil {
			continue
		}

		if overlapsAny(readings, c.start, c.end) {
			continue
		}

		readings = append(readings, Reading{
			Label:   label,
			Value:   value,
			Unit:    strings.TrimSpace(c.unit),
			Pattern: c.pattern,
			Start:   c.start,
			End:     c.end,
		})
	}

	slices.SortStableFunc(readings, func(a, b Reading) int {
		return a.Start - b.Start
	})

	return readings
}

func cleanLabel(raw string) string {
	label := strings.TrimSpace(raw)
	label = strings.TrimRight(label, ":")

	return strings.TrimSpace(label)
}

func acceptLabel(label string) bool {
	if utf8.RuneCountInString(label) < minLabelRunes {
		return false
	}

	return len(strings.Fields(label)) <= maxLabelWords
}

func overlapsAny(readings []Reading, start, end int) bool {
	for _, r := range readings {
		if start < r.End && r.Start < end {
			return true
		}
	}

	return false
}
