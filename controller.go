package streamzoom

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/teranos/streamzoom/internal/logging"
	"github.com/teranos/streamzoom/trip"
)

// Controller ties a Locator, a Cadence and an Engine together.
//
// It binds the engine when the locator reports a surface, unbinds it when
// the surface goes away, and tears everything down on Stop. Like the engine
// it must only be used from the host's event loop.
//
// Example usage:
//
//	ctrl := streamzoom.NewController(ctx, doc, cadence, streamzoom.DefaultOptions())
//	ctrl.Start()
//	defer ctrl.Stop()
type Controller struct {
	log     zerolog.Logger
	opts    Options
	engine  *Engine
	locator *Locator
	cadence Cadence
	trips   *trip.Handler
	running bool
	polls   int
}

// NewController creates a stopped controller. Engine options fall back to
// their defaults as in NewEngine; so does a non-positive PollInterval.
func NewController(ctx context.Context, doc Document, cadence Cadence, opts Options) *Controller {
	log := *logging.FromContext(logging.WithComponent(ctx, "controller"))
	engine := NewEngine(ctx, opts)

	opts = engine.Options()
	if opts.PollInterval <= 0 {
		log.Warn().Dur("interval", opts.PollInterval).Msg("poll interval must be positive, using default")
		opts.PollInterval = DefaultOptions().PollInterval
	}

	return &Controller{
		log:     log,
		opts:    opts,
		engine:  engine,
		locator: NewLocator(doc, opts.Selector),
		cadence: cadence,
		trips:   trip.NewHandler("locator", trip.DefaultPolicy()),
	}
}

// Engine returns the controlled engine.
func (c *Controller) Engine() *Engine {
	return c.engine
}

// Trips returns the handler collecting locator failures.
func (c *Controller) Trips() *trip.Handler {
	return c.trips
}

// Running reports whether polling is active.
func (c *Controller) Running() bool {
	return c.running
}

// Polls returns the number of presence checks performed.
func (c *Controller) Polls() int {
	return c.polls
}

// Start checks for a surface right away and then begins polling.
// Starting a running controller does nothing.
func (c *Controller) Start() {
	if c.running {
		return
	}
	c.running = true
	c.trips.Reset()

	c.log.Info().
		Dur("interval", c.opts.PollInterval).
		Str("selector", c.opts.Selector).
		Msg("controller started")

	c.Poll()
	if c.running && c.cadence != nil {
		c.cadence.Start(c.opts.PollInterval, c.Poll)
	}
}

// Poll performs one presence check and applies its transition.
func (c *Controller) Poll() {
	if !c.running {
		return
	}
	c.polls++

	transition, surface, err := c.locator.Check()
	if err != nil {
		c.recordQueryError(err)
		return
	}

	switch transition {
	case TransitionAppeared:
		c.engine.SurfaceAppeared(surface)
	case TransitionDisappeared:
		c.engine.SurfaceDisappeared()
	}
}

// Stop cancels polling and unbinds the surface. It is idempotent.
func (c *Controller) Stop() {
	if c.cadence != nil {
		c.cadence.Stop()
	}
	c.engine.SurfaceDisappeared()
	c.locator.Reset()

	if c.running {
		c.running = false
		c.log.Info().
			Int("polls", c.polls).
			Str("trips", c.trips.Summary()).
			Msg("controller stopped")
	}
}

func (c *Controller) recordQueryError(err error) {
	severity := trip.Stumble
	if errors.Is(err, ErrNoQueryMechanism) {
		severity = trip.Fall
	}
	t := trip.Wrap("query", err, severity, trip.Context{
		"selector": c.opts.Selector,
		"poll":     c.polls,
	})
	c.trips.Record(t)

	c.log.Warn().
		Err(err).
		Str("severity", severity.String()).
		Msg("presence check failed")

	if !c.trips.ShouldContinue() {
		c.log.Error().
			Str("trips", c.trips.Summary()).
			Msg("giving up on presence checks")
		c.Stop()
	}
}
