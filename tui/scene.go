package tui

import (
	"fmt"
	"strings"

	"github.com/teranos/streamzoom"
)

// Frame is a rectangular stream window drawn in terminal cells.
// It implements streamzoom.Surface and streamzoom.EventSource.
type Frame struct {
	Class  string
	Width  float64 // natural width in cells
	Height float64 // natural height in cells

	transform streamzoom.Transform
	listeners []streamzoom.Listener
}

// SetTransform implements streamzoom.Surface.
func (f *Frame) SetTransform(t streamzoom.Transform) {
	f.transform = t
}

// Transform returns the transform last presented on the frame.
func (f *Frame) Transform() streamzoom.Transform {
	return f.transform
}

// BoundingRect implements streamzoom.Surface. The frame scales about its
// top-left corner.
func (f *Frame) BoundingRect() streamzoom.Rect {
	return streamzoom.Rect{
		Left:   f.transform.TranslateX,
		Top:    f.transform.TranslateY,
		Width:  f.Width * f.transform.Scale,
		Height: f.Height * f.transform.Scale,
	}
}

// AddListener implements streamzoom.EventSource.
func (f *Frame) AddListener(l streamzoom.Listener) {
	for _, existing := range f.listeners {
		if existing == l {
			return
		}
	}
	f.listeners = append(f.listeners, l)
}

// RemoveListener implements streamzoom.EventSource.
func (f *Frame) RemoveListener(l streamzoom.Listener) {
	for i, existing := range f.listeners {
		if existing == l {
			f.listeners = append(f.listeners[:i], f.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the attached listeners.
func (f *Frame) Listeners() []streamzoom.Listener {
	return f.listeners
}

// Scene is a terminal document holding at most one stream frame.
// It implements streamzoom.Document.
type Scene struct {
	frameWidth  float64
	frameHeight float64
	opened      int
	frame       *Frame
}

// NewScene creates an empty scene whose frames have the given size.
func NewScene(frameWidth, frameHeight float64) *Scene {
	return &Scene{
		frameWidth:  frameWidth,
		frameHeight: frameHeight,
	}
}

// Open adds a new frame unless one is already present, and returns it.
func (s *Scene) Open() *Frame {
	if s.frame != nil {
		return s.frame
	}
	s.opened++
	s.frame = &Frame{
		Class:     fmt.Sprintf("%s%d wrapper", streamzoom.DefaultSelector, s.opened),
		Width:     s.frameWidth,
		Height:    s.frameHeight,
		transform: streamzoom.Identity(),
	}
	return s.frame
}

// Close removes the frame. Listeners are left for the engine to detach.
func (s *Scene) Close() {
	s.frame = nil
}

// Frame returns the current frame, or nil.
func (s *Scene) Frame() *Frame {
	return s.frame
}

// Query implements streamzoom.Document.
func (s *Scene) Query(selector string) (streamzoom.Surface, error) {
	if s == nil {
		return nil, streamzoom.ErrNoQueryMechanism
	}
	if s.frame == nil || !strings.Contains(s.frame.Class, selector) {
		return nil, nil
	}
	return s.frame, nil
}
