// Package chart turns a price series into canvas coordinates. Everything
// here is a pure function of the series and the canvas size.
package chart

import (
	"fmt"
	"time"

	"sol-ticker/internal/domain"
)

// DefaultPadding is the gap, in pixels, between the canvas edge and the plot.
const DefaultPadding = 20.0

// Dimensions describes the canvas and the plotting area inside the padding.
// Inner sizes go negative on canvases smaller than twice the padding.
type Dimensions struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Padding     float64 `json:"padding"`
	InnerWidth  float64 `json:"inner_width"`
	InnerHeight float64 `json:"inner_height"`
}

// PriceRange holds the extremes of a series. Span is zero for a flat series.
type PriceRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Span float64 `json:"span"`
}

// Point is a position in canvas pixel space, y growing downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ComputeDimensions subtracts padding from both sides of each axis. Small
// canvases give negative inner sizes rather than an error.
func ComputeDimensions(width, height, padding float64) Dimensions {
	return Dimensions{
		Width:       width,
		Height:      height,
		Padding:     padding,
		InnerWidth:  width - 2*padding,
		InnerHeight: height - 2*padding,
	}
}

// ComputeRange returns the min, max and span of prices in series.
// Callers must check for an empty series first; an empty series yields the
// zero PriceRange.
func ComputeRange(series domain.PriceSeries) PriceRange {
	if len(series) == 0 {
		return PriceRange{}
	}

	lo, hi := series[0].Price, series[0].Price
	for _, p := range series[1:] {
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}
	return PriceRange{Min: lo, Max: hi, Span: hi - lo}
}

// ProjectPoint maps the index-th of n points onto the canvas. A single point
// sits on the left edge of the plot and a flat series on its vertical midpoint.
func ProjectPoint(p domain.PricePoint, index, n int, dims Dimensions, rng PriceRange) Point {
	x := dims.Padding + float64(index)/float64(max(n-1, 1))*dims.InnerWidth

	normalized := 0.5
	if rng.Span != 0 {
		normalized = (p.Price - rng.Min) / rng.Span
	}
	y := dims.Height - dims.Padding - normalized*dims.InnerHeight

	return Point{X: x, Y: y}
}

// ProjectSeries projects every point of series, in order.
func ProjectSeries(series domain.PriceSeries, dims Dimensions, rng PriceRange) []Point {
	points := make([]Point, len(series))
	for i, p := range series {
		points[i] = ProjectPoint(p, i, len(series), dims, rng)
	}
	return points
}

// FormatPriceLabel renders a USD amount with two decimals, e.g. "$35.23".
func FormatPriceLabel(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}

// FormatDateLabel renders a short month/day/year date in t's own location.
func FormatDateLabel(t time.Time) string {
	return t.Format("1/2/2006")
}
