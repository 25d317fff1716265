package streamzoom

import (
	"errors"
	"fmt"
	"time"
)

// DefaultSelector matches the class name prefix of stream video frames.
const DefaultSelector = "videoFrame_"

// ErrInvalidOptions is wrapped by every error returned from Options.Validate.
var ErrInvalidOptions = errors.New("invalid options")

// Options tunes the engine and the presence polling.
//
// Example usage:
//
//	opts := streamzoom.DefaultOptions()
//	opts.Modifier = streamzoom.ModifierAlt
//	opts.PollInterval = 250 * time.Millisecond
type Options struct {
	// ZoomStep is the scale change per wheel tick
	ZoomStep float64
	// ScaleMin is the lower bound for the scale
	ScaleMin float64
	// InitialOffset is the translation applied when a surface is bound
	InitialOffset Point
	// PollInterval is the presence check cadence
	PollInterval time.Duration
	// Selector is the class name substring identifying the surface
	Selector string
	// Modifier must be held for the wheel to zoom
	Modifier Modifier
}

// DefaultOptions returns the options the plugin shipped with:
//   - 0.05 zoom step, 0.1 minimum scale
//   - (1, -60) initial offset
//   - 1 second presence polling
//   - ctrl as the zoom modifier
func DefaultOptions() Options {
	return Options{
		ZoomStep:      ZoomStep,
		ScaleMin:      ScaleMin,
		InitialOffset: Point{X: 1, Y: -60},
		PollInterval:  time.Second,
		Selector:      DefaultSelector,
		Modifier:      ModifierCtrl,
	}
}

// Validate reports the first unusable setting.
func (o Options) Validate() error {
	switch {
	case o.ZoomStep <= 0:
		return fmt.Errorf("%w: zoom step must be positive, got %g", ErrInvalidOptions, o.ZoomStep)
	case o.ScaleMin <= 0:
		return fmt.Errorf("%w: minimum scale must be positive, got %g", ErrInvalidOptions, o.ScaleMin)
	case o.PollInterval <= 0:
		return fmt.Errorf("%w: poll interval must be positive, got %v", ErrInvalidOptions, o.PollInterval)
	case o.Selector == "":
		return fmt.Errorf("%w: selector must not be empty", ErrInvalidOptions)
	case o.Modifier == 0:
		return fmt.Errorf("%w: a zoom modifier is required", ErrInvalidOptions)
	}
	return nil
}
