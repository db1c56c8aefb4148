/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/urfave/cli/v3"

	"github.com/amangit2224/medlens/client"
	"github.com/amangit2224/medlens/config"
	"github.com/amangit2224/medlens/trends"
)

const noTestData = "No test data found"

// CmdTrends prints the trend table of a remote account.
var CmdTrends = &cli.Command{
	Name:  "trends",
	Usage: "Fetch report history from a MedLens server and print test trends",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Sources: cli.EnvVars("MEDLENS_API_URL"),
			Value:   "http://localhost:8080",
			Usage:   "base URL of the MedLens server",
		},
		&cli.StringFlag{
			Name:    "token",
			Sources: cli.EnvVars("MEDLENS_TOKEN"),
			Usage:   "API bearer token",
		},
		&cli.StringFlag{
			Name:    "username",
			Sources: cli.EnvVars("MEDLENS_USERNAME"),
			Usage:   "log in with this username instead of a token",
		},
		&cli.StringFlag{
			Name:    "password",
			Sources: cli.EnvVars("MEDLENS_PASSWORD"),
			Usage:   "password for --username",
		},
		&cli.StringFlag{
			Name:  "test",
			Usage: "show the readings of one test",
		},
		&cli.StringFlag{
			Name:    "config",
			Sources: cli.EnvVars("MEDLENS_CONFIG"),
			Usage:   "optional YAML settings file",
		},
	},
	Action: showTrends,
}

func showTrends(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	apiURL := cmd.String("api-url")
	if apiURL == "" {
		return errAPIURLRequired
	}

	username, password := cmd.String("username"), cmd.String("password")
	if (username == "") != (password == "") {
		return errCredentialsIncomplete
	}

	c, err := client.New(apiURL, cmd.String("token"), client.WithTimeout(cfg.Client.Timeout))
	if err != nil {
		return err
	}

	result := fetchTrends(ctx, c, username, password)

	return printTrends(cmd.Root().Writer, result, cmd.String("test"))
}

// fetchTrends never fails: a failed login or fetch is logged and shows up as
// an empty result.
func fetchTrends(ctx context.Context, c *client.Client, username, password string) trends.Result {
	if username != "" {
		if _, err := c.Login(ctx, username, password); err != nil {
			appLogger.Error("Failed to log in", "username", username, "error", err)
			return trends.Result{}
		}
	}

	reports, err := c.History(ctx)
	if err != nil {
		appLogger.Error("Failed to fetch report history", "error", err)
		return trends.Result{}
	}

	return trends.Aggregate(reports)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}

// printTrends writes one row per test, or the readings of test when it
// names a known series.
func printTrends(w io.Writer, result trends.Result, test string) error {
	if result.Empty() {
		_, err := fmt.Fprintln(w, noTestData)
		return err
	}

	if test != "" {
		if series := result.Get(test); series != nil {
			return printSeries(w, series)
		}

		if _, err := fmt.Fprintf(w, "Unknown test %q, showing all tests\n\n", test); err != nil {
			return err
		}
	}

	table := newTable(w)
	table.Header("Test", "Readings", "First", "Latest", "Change", "Trend")

	rows := make([][]string, 0, len(result.Order))

	for _, name := range result.Names() {
		series := result.Get(name)
		first, _ := series.First()
		last, _ := series.Last()

		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", len(series.Points)),
			withUnit(first.Value, series.Unit),
			withUnit(last.Value, series.Unit),
			trends.FormatPercent(trends.PercentChange(first.Value, last.Value)),
			string(trends.Trend(series)),
		})
	}

	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%s\n", trends.Insight(result.Get(result.Selected)))

	return err
}

func printSeries(w io.Writer, series *trends.Series) error {
	table := newTable(w)
	table.Header("Date", "Value", "Report")

	rows := make([][]string, 0, len(series.Points))
	for _, p := range series.Points {
		rows = append(rows, []string{
			p.Date.Format(trends.ChartDateLayout),
			withUnit(p.Value, series.Unit),
			p.SourceReportID,
		})
	}

	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%s\n", trends.Insight(series))

	return err
}

func withUnit(v float64, unit string) string {
	if unit == "" {
		return trends.FormatValue(v)
	}

	return trends.FormatValue(v) + " " + unit
}
