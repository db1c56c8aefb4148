/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package trends

import "time"

// Report is a stored medical report as seen by the extractor. Only the
// summary text and the upload time take part in extraction.
type Report struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
	Summary    string    `json:"plain_summary"`
}

// Reading is a single "label: value unit" occurrence found in a summary.
type Reading struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	Pattern string  `json:"pattern"`

	// Start and End are the byte offsets of the numeric value in the text.
	Start int `json:"-"`
	End   int `json:"-"`
}

// Point is one reading of a series, dated by the upload time of the report
// it came from.
type Point struct {
	Value          float64   `json:"value"`
	Date           time.Time `json:"date"`
	SourceReportID string    `json:"source_report_id"`
}

// Series is the chronological set of readings for one label.
type Series struct {
	Name   string  `json:"name"`
	Unit   string  `json:"unit"`
	Points []Point `json:"points"`
}

// First returns the chronologically first point.
func (s *Series) First() (Point, bool) {
	if s == nil || len(s.Points) == 0 {
		return Point{}, false
	}

	return s.Points[0], true
}

// Last returns the chronologically last point.
func (s *Series) Last() (Point, bool) {
	if s == nil || len(s.Points) == 0 {
		return Point{}, false
	}

	return s.Points[len(s.Points)-1], true
}

// Result is the output of one aggregation pass.
type Result struct {
	Series map[string]*Series `json:"series"`
	// Order lists series names in creation order.
	Order []string `json:"order"`
	// Selected is the series shown when the caller has not picked one.
	Selected string `json:"selected"`
}

// Empty reports whether no series were found.
func (r Result) Empty() bool {
	return len(r.Order) == 0
}

// Names returns the series names in creation order.
func (r Result) Names() []string {
	names := make([]string, len(r.Order))
	copy(names, r.Order)

	return names
}

// Get returns the named series or nil.
func (r Result) Get(name string) *Series {
	if r.Series == nil {
		return nil
	}

	return r.Series[name]
}

// Pick returns the named series when it exists, falling back to the default
// selection.
func (r Result) Pick(name string) *Series {
	if s := r.Get(name); s != nil {
		return s
	}

	return r.Get(r.Selected)
}
