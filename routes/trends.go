/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	htmltemplate "html/template"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/amangit2224/medlens/db"
	"github.com/amangit2224/medlens/trends"
)

// TrendView is everything the trends page and API show for one user.
type TrendView struct {
	Tests    []string         `json:"tests"`
	Selected string           `json:"selected"`
	Insight  string           `json:"insight"`
	Chart    trends.ChartData `json:"chart"`
	Series   *trends.Series   `json:"-"`
}

// loadTrends aggregates the user's reports and picks the series named by
// test, falling back to the default selection. A failed report fetch is
// logged and yields an empty view.
func loadTrends(ctx context.Context, userID, test string) TrendView {
	reports, err := listReportsFn(ctx, userID)
	if err != nil {
		logger.Error("Failed to fetch report history for trends", "user_id", userID, "error", err)
		reports = nil
	}

	result := extractor.Aggregate(db.TrendsReports(reports))
	series := result.Pick(test)

	view := TrendView{
		Tests:   result.Names(),
		Insight: trends.Insight(series),
		Chart:   trends.NewChartData(series),
		Series:  series,
	}

	if series != nil {
		view.Selected = series.Name
	}

	return view
}

// Trends renders the trend chart and insight for one test.
func Trends(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	setPageTitle(data, "Trends")
	data["IsTrends"] = true

	userID, err := sessionUserID(s)
	if err != nil {
		c.Redirect("/login")
		return
	}

	view := loadTrends(c.Request().Context(), userID, c.Query("test"))

	data["Tests"] = view.Tests
	data["Selected"] = view.Selected
	data["Insight"] = view.Insight
	data["Series"] = view.Series

	if view.Series != nil {
		chart, err := trends.RenderLineChart(view.Series)
		if err != nil {
			logger.Error("Failed to render trend chart", "test", view.Selected, "error", err)
		} else if chart != "" {
			data["ChartHTML"] = htmltemplate.HTML(chart)
		}
	}

	t.HTML(http.StatusOK, "trends")
}

// CompareReports compares the readings of two reports. Without explicit
// report IDs it compares the two most recent uploads.
func CompareReports(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	setPageTitle(data, "Compare")
	data["IsTrends"] = true

	userID, err := sessionUserID(s)
	if err != nil {
		c.Redirect("/login")
		return
	}

	ctx := c.Request().Context()

	reports, err := listReportsFn(ctx, userID)
	if err != nil {
		logger.Error("Failed to list reports for comparison", "user_id", userID, "error", err)
		reports = nil
	}

	data["Reports"] = reports

	olderID, newerID := c.Query("older"), c.Query("newer")
	if olderID == "" && newerID == "" && len(reports) >= 2 {
		olderID, newerID = reports[1].ID.String(), reports[0].ID.String()
	}

	if olderID == "" || newerID == "" {
		data["NeedsSelection"] = true
		t.HTML(http.StatusOK, "compare")

		return
	}

	older, errOlder := getReportFn(ctx, userID, olderID)
	newer, errNewer := getReportFn(ctx, userID, newerID)

	if errOlder != nil || errNewer != nil {
		logger.Warn("Failed to load reports for comparison", "older", olderID, "newer", newerID, "older_error", errOlder, "newer_error", errNewer)
		data["Error"] = "One of the selected reports could not be found"
		t.HTML(http.StatusNotFound, "compare")

		return
	}

	data["Older"] = older
	data["Newer"] = newer
	data["Comparison"] = comparer.Compare(
		extractor.Extract(older.SummaryText()),
		extractor.Extract(newer.SummaryText()),
	)

	t.HTML(http.StatusOK, "compare")
}
