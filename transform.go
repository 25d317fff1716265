package streamzoom

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// ScaleMin is the smallest scale a surface can be zoomed out to.
	ScaleMin = 0.1

	// ZoomStep is the scale change applied per wheel tick.
	ZoomStep = 0.05
)

// Point is a position in host coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is the bounding rectangle of a surface as currently rendered.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Center returns the middle of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Left+r.Width &&
		p.Y >= r.Top && p.Y < r.Top+r.Height
}

// Transform is the translation and uniform scale applied to a surface.
//
// A surface is translated by (TranslateX, TranslateY) and then scaled by
// Scale about its own origin. Scale never drops below the engine's minimum.
type Transform struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
}

// Identity returns the transform that leaves a surface untouched.
func Identity() Transform {
	return Transform{Scale: 1}
}

// Translate returns the transform's translation as a point.
func (t Transform) Translate() Point {
	return Point{X: t.TranslateX, Y: t.TranslateY}
}

// String serializes the transform for a presentation layer.
// The output is write-only; nothing parses it back.
func (t Transform) String() string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)",
		formatFloat(t.TranslateX), formatFloat(t.TranslateY), formatFloat(t.Scale))
}

// zoomDelta maps the sign of a wheel's vertical delta to a scale change.
// Negative deltas (wheel rolled away from the user) zoom in.
func zoomDelta(deltaSign, step float64) float64 {
	if deltaSign < 0 {
		return step
	}
	return -step
}

// clampScale keeps a scale at or above min.
func clampScale(scale, min float64) float64 {
	return math.Max(min, scale)
}

func formatFloat(v float64) string {
	// Round away float noise from repeated 0.05 steps.
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
