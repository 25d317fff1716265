package render

import "github.com/teranos/streamzoom"

// Box is an offscreen surface of a fixed natural size that scales about
// its top-left corner.
type Box struct {
	Width  float64
	Height float64

	transform streamzoom.Transform
}

// NewBox creates a box with the identity transform.
func NewBox(width, height float64) *Box {
	return &Box{Width: width, Height: height, transform: streamzoom.Identity()}
}

// SetTransform implements streamzoom.Surface.
func (b *Box) SetTransform(t streamzoom.Transform) {
	b.transform = t
}

// BoundingRect implements streamzoom.Surface.
func (b *Box) BoundingRect() streamzoom.Rect {
	return streamzoom.Rect{
		Left:   b.transform.TranslateX,
		Top:    b.transform.TranslateY,
		Width:  b.Width * b.transform.Scale,
		Height: b.Height * b.transform.Scale,
	}
}
