/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package trends

import (
	"slices"
	"strings"
)

// Aggregate builds series from reports using the built-in patterns.
func Aggregate(reports []Report) Result {
	return defaultExtractor.Aggregate(reports)
}

// Aggregate merges the readings of every report into one series per label.
//
// Reports are visited newest first, so Order starts with the labels of the
// most recent report and Selected is the first of them. Each series is then
// sorted by date ascending; readings from the same day keep report ID order.
// The result is rebuilt from scratch on every call.
func (e *Extractor) Aggregate(reports []Report) Result {
	ordered := slices.Clone(reports)
	slices.SortStableFunc(ordered, func(a, b Report) int {
		if c := b.UploadedAt.Compare(a.UploadedAt); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	result := Result{Series: make(map[string]*Series)}

	for _, report := range ordered {
		for _, reading := range e.Extract(report.Summary) {
			series, ok := result.Series[reading.Label]
			if !ok {
				series = &Series{Name: reading.Label, Unit: reading.Unit}
				result.Series[reading.Label] = series
				result.Order = append(result.Order, reading.Label)
			}

			series.Points = append(series.Points, Point{
				Value:          reading.Value,
				Date:           report.UploadedAt,
				SourceReportID: report.ID,
			})
		}
	}

	for _, series := range result.Series {
		slices.SortStableFunc(series.Points, func(a, b Point) int {
			if c := a.Date.Compare(b.Date); c != 0 {
				return c
			}

			return strings.Compare(a.SourceReportID, b.SourceReportID)
		})
	}

	if len(result.Order) > 0 {
		result.Selected = result.Order[0]
	}

	return result
}
