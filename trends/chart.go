/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package trends

import (
	"bytes"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartDateLayout formats point dates on the chart axis (day/month/year).
const ChartDateLayout = "02/01/2006"

// Dataset is one line of chart data.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ChartData is the chart-ready form of a series.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// DatasetLabel returns "Name (unit)", or the name alone without a unit.
func DatasetLabel(s *Series) string {
	if s.Unit == "" {
		return s.Name
	}

	return s.Name + " (" + s.Unit + ")"
}

// NewChartData converts a series into chart labels and a single dataset.
func NewChartData(s *Series) ChartData {
	if s == nil || len(s.Points) == 0 {
		return ChartData{Labels: []string{}, Datasets: []Dataset{}}
	}

	labels := make([]string, 0, len(s.Points))
	data := make([]float64, 0, len(s.Points))

	for _, p := range s.Points {
		labels = append(labels, p.Date.Format(ChartDateLayout))
		data = append(data, p.Value)
	}

	return ChartData{
		Labels:   labels,
		Datasets: []Dataset{{Label: DatasetLabel(s), Data: data}},
	}
}

// RenderLineChart renders the series as an embeddable HTML line chart. An
// empty series renders as an empty string.
func RenderLineChart(s *Series) (string, error) {
	chartData := NewChartData(s)
	if len(chartData.Datasets) == 0 {
		return "", nil
	}

	yData := make([]opts.LineData, 0, len(chartData.Datasets[0].Data))
	for _, v := range chartData.Datasets[0].Data {
		yData = append(yData, opts.LineData{Value: v})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: s.Name,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: s.Unit,
		}),
	)

	line.SetXAxis(chartData.Labels).
		AddSeries(chartData.Datasets[0].Label, yData).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(true),
				ShowSymbol: opts.Bool(true),
			}),
			charts.WithMarkPointNameTypeItemOpts(
				opts.MarkPointNameTypeItem{Name: "Max", Type: "max"},
				opts.MarkPointNameTypeItem{Name: "Min", Type: "min"},
			),
			charts.WithMarkLineNameTypeItemOpts(
				opts.MarkLineNameTypeItem{Name: "Average", Type: "average"},
			),
		)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}
