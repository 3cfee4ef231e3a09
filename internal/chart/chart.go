// Package chart lays out the weekly completion bar chart and replays it onto
// a Canvas. Coordinates are in abstract pixels with the origin at the top
// left, matching the layout constants in internal/constants.
package chart

import (
	"fmt"
	"math"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/stats"
)

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

// Label is text centered horizontally on X with its baseline at Y.
type Label struct {
	Text string
	X, Y float64
}

type Bar struct {
	Rect
	Value      float64
	ValueLabel Label
	DayLabel   Label
}

// Chart is a fully computed drawing. Draw replays it onto any Canvas.
type Chart struct {
	Width, Height float64
	Bars          []Bar
	Axis          []Point

	BarColor   string
	AxisColor  string
	LabelColor string
	AxisWidth  float64
}

// Layout computes bar geometry for days within a width x height area. Values
// are clamped to the 0-100 scale.
func Layout(days []stats.Day, width, height int) Chart {
	w, h := float64(width), float64(height)
	pad := float64(constants.ChartPadding)
	drawW := math.Max(w-2*pad, 0)
	drawH := math.Max(h-2*pad, 0)

	c := Chart{
		Width:      w,
		Height:     h,
		BarColor:   constants.ChartBarColor,
		AxisColor:  constants.ChartAxisColor,
		LabelColor: constants.ChartLabelColor,
		AxisWidth:  constants.ChartAxisWidth,
		Axis: []Point{
			{X: pad, Y: pad},
			{X: pad, Y: h - pad},
			{X: w - pad, Y: h - pad},
		},
	}

	slot := drawW / constants.TrailingDays
	gutter := slot * constants.ChartGutterRatio
	barW := slot - 2*gutter

	for i, d := range days {
		value := math.Min(math.Max(d.Value, 0), constants.ChartMaxValue)
		barH := value / constants.ChartMaxValue * drawH
		x := pad + float64(i)*slot + gutter
		y := h - pad - barH
		center := x + barW/2

		c.Bars = append(c.Bars, Bar{
			Rect:  Rect{X: x, Y: y, W: barW, H: barH},
			Value: d.Value,
			ValueLabel: Label{
				Text: PercentLabel(d.Value),
				X:    center,
				Y:    y - constants.ChartValueOffset,
			},
			DayLabel: Label{
				Text: d.Label,
				X:    center,
				Y:    h - pad + constants.ChartDayOffset,
			},
		})
	}

	return c
}

// PercentLabel rounds half up to a whole percent.
func PercentLabel(value float64) string {
	return fmt.Sprintf("%d%%", int(math.Floor(value+0.5)))
}

// Canvas is a 2D drawing surface.
type Canvas interface {
	Clear(width, height float64)
	FillRect(r Rect, color string)
	FillText(text string, x, y float64, color string)
	StrokePolyline(points []Point, color string, width float64)
}

// Draw clears c and paints bars, their labels and the axis.
func Draw(c Canvas, ch Chart) {
	c.Clear(ch.Width, ch.Height)
	for _, b := range ch.Bars {
		if b.H > 0 {
			c.FillRect(b.Rect, ch.BarColor)
		}
		c.FillText(b.ValueLabel.Text, b.ValueLabel.X, b.ValueLabel.Y, ch.LabelColor)
		c.FillText(b.DayLabel.Text, b.DayLabel.X, b.DayLabel.Y, ch.LabelColor)
	}
	c.StrokePolyline(ch.Axis, ch.AxisColor, ch.AxisWidth)
}
