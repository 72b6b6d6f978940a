package chart

import "sol-ticker/internal/domain"

// Label offsets from the plot corners, in pixels.
const (
	labelGap        = 5.0
	dateLabelOffset = 15.0
)

// Align is the horizontal anchoring of a label relative to its X.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Label is a piece of text anchored at (X, Y) with the given alignment.
type Label struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Align Align   `json:"align"`
}

// Layout is everything a renderer needs to draw the chart.
// Axes is the polyline top-left, bottom-left, bottom-right of the plot.
type Layout struct {
	Dimensions  Dimensions `json:"dimensions"`
	Range       PriceRange `json:"range"`
	Axes        []Point    `json:"axes"`
	Points      []Point    `json:"points"`
	PriceLabels []Label    `json:"price_labels"`
	DateLabels  []Label    `json:"date_labels"`
}

// Empty reports whether there is no line to draw.
func (l Layout) Empty() bool {
	return len(l.Points) == 0
}

// Compute lays out series on a width x height canvas. An empty series still
// gets dimensions and axes, with no points or labels.
func Compute(series domain.PriceSeries, width, height, padding float64) Layout {
	dims := ComputeDimensions(width, height, padding)
	layout := Layout{
		Dimensions:  dims,
		Axes:        axes(dims),
		Points:      []Point{},
		PriceLabels: []Label{},
		DateLabels:  []Label{},
	}

	first, ok := series.First()
	if !ok {
		return layout
	}
	last, _ := series.Last()

	rng := ComputeRange(series)
	layout.Range = rng
	layout.Points = ProjectSeries(series, dims, rng)
	layout.PriceLabels = []Label{
		{Text: FormatPriceLabel(rng.Max), X: dims.Padding - labelGap, Y: dims.Padding + labelGap, Align: AlignRight},
		{Text: FormatPriceLabel(rng.Min), X: dims.Padding - labelGap, Y: dims.Height - dims.Padding, Align: AlignRight},
	}
	layout.DateLabels = []Label{
		{Text: FormatDateLabel(first.Timestamp), X: dims.Padding, Y: dims.Height - dims.Padding + dateLabelOffset, Align: AlignLeft},
		{Text: FormatDateLabel(last.Timestamp), X: dims.Width - dims.Padding, Y: dims.Height - dims.Padding + dateLabelOffset, Align: AlignRight},
	}
	return layout
}

func axes(dims Dimensions) []Point {
	return []Point{
		{X: dims.Padding, Y: dims.Padding},
		{X: dims.Padding, Y: dims.Height - dims.Padding},
		{X: dims.Width - dims.Padding, Y: dims.Height - dims.Padding},
	}
}
