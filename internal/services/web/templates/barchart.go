package templates

import (
	"strconv"
	"strings"
)

const (
	barChartWidth  = 120
	barChartHeight = 24
	barGap         = 1
)

// ChartPoint is one bar: X is a unix timestamp, Y the count.
type ChartPoint struct {
	X int64
	Y int64
}

// chartBar holds one bar's SVG geometry, already formatted.
type chartBar struct {
	X, Y, Width, Height string
	DataX, DataY        string
	Title               string
}

// chartBars lays points out left to right, one slot per point, with heights
// scaled to the largest count.
func chartBars(points []ChartPoint, label string) []chartBar {
	if len(points) == 0 {
		return nil
	}
	var maxY int64
	for _, p := range points {
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	slot := float64(barChartWidth) / float64(len(points))
	width := slot - barGap
	if width < 1 {
		width = 1
	}
	bars := make([]chartBar, 0, len(points))
	for i, p := range points {
		height := 0.0
		if maxY > 0 && p.Y > 0 {
			height = float64(p.Y) / float64(maxY) * barChartHeight
		}
		count := strconv.FormatInt(p.Y, 10)
		bars = append(bars, chartBar{
			X:      formatFloat(float64(i) * slot),
			Y:      formatFloat(barChartHeight - height),
			Width:  formatFloat(width),
			Height: formatFloat(height),
			DataX:  strconv.FormatInt(p.X, 10),
			DataY:  count,
			Title:  strings.TrimSpace(count + " " + label),
		})
	}
	return bars
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
