package streamzoom

import (
	"sync"
	"time"
)

// Cadence drives periodic presence checks.
//
// Implementations must deliver ticks on the host's event loop so that the
// engine is only ever touched from one goroutine.
type Cadence interface {
	// Start begins calling tick every interval. Starting a running cadence
	// replaces its schedule.
	Start(interval time.Duration, tick func())
	// Stop cancels the schedule. No tick runs after Stop returns.
	Stop()
}

// TickerCadence runs a time.Ticker and posts each tick to an event loop.
type TickerCadence struct {
	post func(func())

	mu   sync.Mutex
	gen  uint64
	stop chan struct{}
}

// NewTickerCadence creates a cadence that hands ticks to post.
//
// post must enqueue the function on the event loop that owns the engine,
// for example by wrapping it in a message for a bubbletea program. post may
// block until the loop accepts the function.
func NewTickerCadence(post func(func())) *TickerCadence {
	return &TickerCadence{post: post}
}

// Start implements Cadence.
func (c *TickerCadence) Start(interval time.Duration, tick func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	stop := make(chan struct{})
	c.stop = stop
	gen := c.gen

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.post(func() {
					if c.current(gen) {
						tick()
					}
				})
			case <-stop:
				return
			}
		}
	}()
}

// Stop implements Cadence. It never blocks, so it is safe to call from the
// event loop itself; ticks already posted are dropped when they run.
func (c *TickerCadence) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

// Running reports whether a schedule is active.
func (c *TickerCadence) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

func (c *TickerCadence) cancelLocked() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
	c.gen++
}

func (c *TickerCadence) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil && c.gen == gen
}
