/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package trends

import "regexp"

// Pattern names of the built-in matchers.
const (
	PatternBold     = "bold"
	PatternPlain    = "plain"
	PatternBulleted = "bulleted"
)

const (
	labelClass = `\p{L}[\p{L}\p{N} ,()/\-]*?`
	valueGroup = `(?P<value>[0-9](?:[0-9.]*[0-9])?)`
	unitGroup  = `(?:[ \t]*(?P<unit>[\p{L}%][\p{L}\p{N}%/^*]*))?`
)

// Pattern is a named textual rule locating "label: value unit" triples.
// Expr must define the named groups label and value, and may define unit.
type Pattern struct {
	Name string
	Expr *regexp.Regexp
}

type candidate struct {
	label      string
	value      string
	unit       string
	start, end int
}

// NewPattern compiles expr into a Pattern.
func NewPattern(name, expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, err
	}

	if re.SubexpIndex("label") < 0 || re.SubexpIndex("value") < 0 {
		return Pattern{}, ErrPatternMissingGroup
	}

	return Pattern{Name: name, Expr: re}, nil
}

func mustPattern(name, expr string) Pattern {
	p, err := NewPattern(name, expr)
	if err != nil {
		panic(err)
	}

	return p
}

var (
	boldPattern = mustPattern(PatternBold,
		`\*\*[ \t]*(?P<label>[^*\n:]+?)[ \t]*:?[ \t]*\*\*[ \t]*:?[ \t]*`+valueGroup+unitGroup)
	plainPattern = mustPattern(PatternPlain,
		`(?P<label>`+labelClass+`)[ \t]*:[ \t]*`+valueGroup+unitGroup)
	bulletedPattern = mustPattern(PatternBulleted,
		`(?m)^[ \t]*[-*•][ \t]+(?P<label>`+labelClass+`)[ \t]*[:=\-–][ \t]*`+valueGroup+unitGroup)
)

// DefaultPatterns returns the built-in matchers in the order they run.
func DefaultPatterns() []Pattern {
	return []Pattern{boldPattern, plainPattern, bulletedPattern}
}

// find returns every non-overlapping match of the pattern in text.
func (p Pattern) find(text string) []candidate {
	labelIdx := p.Expr.SubexpIndex("label")
	valueIdx := p.Expr.SubexpIndex("value")
	unitIdx := p.Expr.SubexpIndex("unit")

	matches := p.Expr.FindAllStringSubmatchIndex(text, -1)
	found := make([]candidate, 0, len(matches))

	for _, m := range matches {
		c := candidate{
			label: group(text, m, labelIdx),
			value: group(text, m, valueIdx),
			unit:  group(text, m, unitIdx),
			start: m[2*valueIdx],
			end:   m[2*valueIdx+1],
		}
		found = append(found, c)
	}

	return found
}

func group(text string, m []int, idx int) string {
	if idx < 0 || m[2*idx] < 0 {
		return ""
	}

	return text[m[2*idx]:m[2*idx+1]]
}
