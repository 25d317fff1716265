package streamzoom

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teranos/streamzoom/internal/logging"
)

// Engine owns the transform of the single bound surface.
//
// All methods run to completion on the host's event loop and are not safe
// for concurrent use. Every precondition failure (nothing bound, no drag in
// progress, wrong button, modifier not held) is a silent no-op: stray input
// is routine and not an error.
//
// Example usage:
//
//	engine := streamzoom.NewEngine(ctx, streamzoom.DefaultOptions())
//	engine.SurfaceAppeared(surface)
//	engine.BeginPan(100, 100, streamzoom.ButtonMiddle)
//	engine.UpdatePan(150, 120)
//	engine.EndPan()
//	engine.ApplyZoom(400, 300, -1, true)
type Engine struct {
	opts Options
	log  zerolog.Logger

	surface    Surface
	listening  bool
	positioned bool // translation explicitly set since binding
	transform  Transform
	session    *PanSession
}

// NewEngine creates an unbound engine. The logger is taken from ctx.
//
// A non-positive (or NaN) ZoomStep or ScaleMin is replaced by its default,
// so the scale always stays above zero.
func NewEngine(ctx context.Context, opts Options) *Engine {
	log := *logging.FromContext(logging.WithComponent(ctx, "engine"))

	if !(opts.ZoomStep > 0) {
		log.Warn().Float64("zoom_step", opts.ZoomStep).Msg("zoom step must be positive, using default")
		opts.ZoomStep = ZoomStep
	}
	if !(opts.ScaleMin > 0) {
		log.Warn().Float64("min_scale", opts.ScaleMin).Msg("minimum scale must be positive, using default")
		opts.ScaleMin = ScaleMin
	}

	return &Engine{
		opts:      opts,
		log:       log,
		transform: Identity(),
	}
}

// Options returns the engine's options after defaults were filled in.
func (e *Engine) Options() Options {
	return e.opts
}

// Bound reports whether a surface is bound.
func (e *Engine) Bound() bool {
	return e.surface != nil
}

// Surface returns the bound surface, or nil.
func (e *Engine) Surface() Surface {
	return e.surface
}

// Listening reports whether the engine is attached as the surface's listener.
func (e *Engine) Listening() bool {
	return e.listening
}

// Transform returns the current transform. Unbound engines report identity.
func (e *Engine) Transform() Transform {
	return e.transform
}

// State returns the pan gesture state.
func (e *Engine) State() PanState {
	if e.session != nil {
		return Panning
	}
	return Idle
}

// Session returns the active pan session, if any.
func (e *Engine) Session() (PanSession, bool) {
	if e.session == nil {
		return PanSession{}, false
	}
	return *e.session, true
}

// SurfaceAppeared binds s and resets it to the default transform.
// It does nothing while a surface is already bound.
func (e *Engine) SurfaceAppeared(s Surface) {
	if s == nil || e.surface != nil {
		return
	}

	e.surface = s
	e.transform = Transform{
		TranslateX: e.opts.InitialOffset.X,
		TranslateY: e.opts.InitialOffset.Y,
		Scale:      1,
	}
	e.positioned = e.opts.InitialOffset != (Point{})
	e.session = nil
	e.present()

	if src, ok := s.(EventSource); ok {
		src.AddListener(e)
		e.listening = true
	}

	e.log.Info().
		Str("transform", e.transform.String()).
		Msg("surface bound")
}

// SurfaceDisappeared cancels any drag, detaches from the surface and
// forgets its transform. Calling it while unbound does nothing.
func (e *Engine) SurfaceDisappeared() {
	if e.surface == nil {
		return
	}

	e.EndPan()
	if src, ok := e.surface.(EventSource); ok && e.listening {
		src.RemoveListener(e)
	}

	e.surface = nil
	e.listening = false
	e.positioned = false
	e.transform = Identity()

	e.log.Info().Msg("surface unbound")
}

// BeginPan starts a drag at (x, y) when button is the middle button and a
// surface is bound. A drag already in progress is ended first.
//
// It returns true when the press was taken; the host must then suppress
// its default action (autoscroll, drag image) for the event.
func (e *Engine) BeginPan(x, y float64, button Button) bool {
	if e.surface == nil || button != ButtonMiddle {
		return false
	}

	if e.session != nil {
		e.log.Debug().Msg("press without release, restarting pan")
		e.EndPan()
	}

	base := e.transform.Translate()
	if !e.positioned {
		rect := e.surface.BoundingRect()
		base = Point{X: rect.Left, Y: rect.Top}
	}

	e.session = &PanSession{
		Start: Point{X: x, Y: y},
		Base:  base,
	}

	e.log.Debug().
		Float64("x", x).
		Float64("y", y).
		Msg("pan started")
	return true
}

// UpdatePan moves the surface by the pointer's offset from the drag start.
// Panning is unbounded: the surface may leave the viewport entirely.
func (e *Engine) UpdatePan(x, y float64) {
	if e.session == nil || e.surface == nil {
		return
	}

	p := e.session.translateAt(Point{X: x, Y: y})
	e.transform.TranslateX = p.X
	e.transform.TranslateY = p.Y
	e.positioned = true
	e.present()
}

// EndPan discards the active drag, if any.
func (e *Engine) EndPan() {
	if e.session == nil {
		return
	}
	e.session = nil
	e.log.Debug().
		Str("transform", e.transform.String()).
		Msg("pan ended")
}

// ApplyZoom changes the scale by one step around the cursor at (x, y).
//
// A negative deltaSign zooms in. Nothing happens unless modifierHeld is true
// and a surface is bound; the return value tells the host whether to
// suppress the wheel's default action.
func (e *Engine) ApplyZoom(x, y, deltaSign float64, modifierHeld bool) bool {
	if !modifierHeld || e.surface == nil {
		return false
	}

	delta := zoomDelta(deltaSign, e.opts.ZoomStep)
	next := clampScale(e.transform.Scale+delta, e.opts.ScaleMin)

	// First-order correction: the surface scales about its own origin, so
	// shifting by the cursor's offset from the rect center keeps the point
	// under the cursor approximately still for small steps.
	rect := e.surface.BoundingRect()
	dx := (x - rect.Left) - rect.Width/2
	dy := (y - rect.Top) - rect.Height/2
	shiftX := dx * delta / next
	shiftY := dy * delta / next

	e.transform.Scale = next
	e.transform.TranslateX -= shiftX
	e.transform.TranslateY -= shiftY
	e.positioned = true
	e.present()

	e.log.Trace().
		Float64("scale", next).
		Float64("shift_x", shiftX).
		Float64("shift_y", shiftY).
		Msg("zoom applied")
	return true
}

// PointerDown implements Listener.
func (e *Engine) PointerDown(ev PointerEvent) bool {
	return e.BeginPan(ev.X, ev.Y, ev.Button)
}

// PointerMove implements Listener.
func (e *Engine) PointerMove(ev PointerEvent) {
	e.UpdatePan(ev.X, ev.Y)
}

// PointerUp implements Listener. Any release ends the drag.
func (e *Engine) PointerUp(PointerEvent) {
	e.EndPan()
}

// Wheel implements Listener.
func (e *Engine) Wheel(ev WheelEvent) bool {
	return e.ApplyZoom(ev.X, ev.Y, ev.DeltaY, ev.Modifiers.Has(e.opts.Modifier))
}

func (e *Engine) present() {
	if e.surface != nil {
		e.surface.SetTransform(e.transform)
	}
}
