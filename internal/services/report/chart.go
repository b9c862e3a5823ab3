package report

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/vitae/internal/models"
)

// Chart renders the user's BMI and weight over time as a PNG.
func (s *Service) Chart(ctx context.Context, userID string) ([]byte, error) {
	reports, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(reports) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 reports, got %d", models.ErrInvalidInput, len(reports))
	}
	return RenderTrendChart(reports)
}

// RenderTrendChart renders BMI on the left axis and weight on the right axis,
// oldest report first.
func RenderTrendChart(reports []*models.HealthReport) ([]byte, error) {
	if len(reports) < 2 {
		return nil, fmt.Errorf("need at least 2 reports, got %d", len(reports))
	}

	n := len(reports)
	xValues := make([]time.Time, n)
	bmiY := make([]float64, n)
	weightY := make([]float64, n)

	// History is newest first.
	for i, r := range reports {
		j := n - 1 - i
		xValues[j] = r.CreatedAt
		bmiY[j] = r.BMI
		weightY[j] = r.Weight
	}

	bmiSeries := chart.TimeSeries{
		Name: "BMI",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("16a34a"), // green-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: bmiY,
	}

	weightSeries := chart.TimeSeries{
		Name:  "Weight (kg)",
		YAxis: chart.YAxisSecondary,
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: weightY,
	}

	graph := chart.Chart{
		Title:  "BMI and Weight",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("02 Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Range: paddedRange(bmiY, 1),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.1f", f)
				}
				return ""
			},
		},
		YAxisSecondary: chart.YAxis{
			Range: paddedRange(weightY, 2),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0fkg", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			bmiSeries,
			weightSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// paddedRange spans the values with pad on each side so a flat series still
// has a non-zero range.
func paddedRange(values []float64, pad float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return &chart.ContinuousRange{Min: math.Floor(lo - pad), Max: math.Ceil(hi + pad)}
}
