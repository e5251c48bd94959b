// Package chart renders the moderation activity of the last day as a PNG line chart.
package chart

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robalyx/headline/internal/export/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// FileName is the chart written to the output directory.
const FileName = "activity.png"

// HoursToShow is the number of hourly buckets on the x-axis.
const HoursToShow = 24

const (
	titleFontSize   = 12.0
	xAxisFontSize   = 10.0
	yAxisFontSize   = 12.0
	xAxisRotation   = 45.0
	gridLineWidth   = 1.0
	seriesLineWidth = 3.0
	seriesDotWidth  = 4.0
	padding         = 30
)

// Exporter handles rendering the activity chart.
type Exporter struct {
	outDir string
	now    time.Time
}

// New creates a chart exporter whose last bucket is the hour containing now.
func New(outDir string, now time.Time) *Exporter {
	return &Exporter{outDir: outDir, now: now}
}

// Export renders the activity chart and its thumbnail into the output directory.
func (e *Exporter) Export(activity []*types.HourlyActivity) error {
	buf, err := e.Render(activity)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(e.outDir, FileName), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}

	thumb, err := Thumbnail(buf.Bytes())
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(e.outDir, ThumbnailFile), thumb.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write thumbnail: %w", err)
	}
	return nil
}

// Render draws the chart as PNG.
func (e *Exporter) Render(activity []*types.HourlyActivity) (*bytes.Buffer, error) {
	xValues, submitted, published, spam, deleted := e.series(activity)

	graph := &chart.Chart{
		Title:      "Story Moderation (24h)",
		TitleStyle: chart.Style{FontSize: titleFontSize},
		Background: chart.Style{
			Padding: chart.Box{Top: padding, Left: padding, Right: padding, Bottom: padding},
		},
		XAxis: e.xAxis(),
		YAxis: yAxis(peak(submitted, published, spam, deleted)),
		Series: []chart.Series{
			series("Submitted", xValues, submitted, chart.ColorBlue),
			series("Published", xValues, published, chart.ColorGreen),
			series("Spam", xValues, spam, chart.ColorRed),
			series("Deleted", xValues, deleted, chart.ColorOrange),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}

	buf := new(bytes.Buffer)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

// Buckets groups activity by hour, oldest first, covering the HoursToShow hours up to now.
// Activity outside the window is ignored.
func Buckets(activity []*types.HourlyActivity, now time.Time) []*types.HourlyActivity {
	end := now.UTC().Truncate(time.Hour)
	byHour := make(map[time.Time]*types.HourlyActivity, len(activity))
	for _, a := range activity {
		byHour[a.Hour.UTC().Truncate(time.Hour)] = a
	}

	buckets := make([]*types.HourlyActivity, HoursToShow)
	for i := range HoursToShow {
		hour := end.Add(time.Duration(i-HoursToShow+1) * time.Hour)
		if a, ok := byHour[hour]; ok {
			buckets[i] = a
			continue
		}
		buckets[i] = &types.HourlyActivity{Hour: hour}
	}
	return buckets
}

func (e *Exporter) series(activity []*types.HourlyActivity) ([]float64, []float64, []float64, []float64, []float64) {
	buckets := Buckets(activity, e.now)

	xValues := make([]float64, HoursToShow)
	submitted := make([]float64, HoursToShow)
	published := make([]float64, HoursToShow)
	spam := make([]float64, HoursToShow)
	deleted := make([]float64, HoursToShow)
	for i, b := range buckets {
		xValues[i] = float64(i)
		submitted[i] = float64(b.Submitted)
		published[i] = float64(b.Published)
		spam[i] = float64(b.Spam)
		deleted[i] = float64(b.Deleted)
	}
	return xValues, submitted, published, spam, deleted
}

func (e *Exporter) xAxis() chart.XAxis {
	gridLines := make([]chart.GridLine, HoursToShow)
	ticks := make([]chart.Tick, HoursToShow)
	for i := range HoursToShow {
		gridLines[i] = chart.GridLine{Value: float64(i)}
		ticks[i] = chart.Tick{Value: float64(i), Label: fmt.Sprintf("%dh ago", HoursToShow-1-i)}
	}

	return chart.XAxis{
		Style: chart.Style{
			FontSize:            xAxisFontSize,
			TextRotationDegrees: xAxisRotation,
		},
		GridMajorStyle: chart.Style{
			StrokeColor: chart.ColorAlternateGray,
			StrokeWidth: gridLineWidth,
		},
		GridLines:    gridLines,
		Ticks:        ticks,
		TickPosition: chart.TickPositionUnderTick,
	}
}

// yAxis starts at zero and always spans at least one event so an idle day still renders.
func yAxis(top float64) chart.YAxis {
	return chart.YAxis{
		Style: chart.Style{FontSize: yAxisFontSize},
		Range: &chart.ContinuousRange{Min: 0, Max: max(top, 1)},
		GridMajorStyle: chart.Style{
			StrokeColor: chart.ColorAlternateGray,
			StrokeWidth: gridLineWidth,
		},
		ValueFormatter: func(v any) string {
			if f, ok := v.(float64); ok {
				return fmt.Sprintf("%.0f", f)
			}
			return ""
		},
	}
}

func peak(values ...[]float64) float64 {
	var top float64
	for _, v := range values {
		for _, f := range v {
			top = max(top, f)
		}
	}
	return top
}

func series(name string, xValues, yValues []float64, color drawing.Color) chart.Series {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: seriesLineWidth,
			DotColor:    color,
			DotWidth:    seriesDotWidth,
		},
	}
}
