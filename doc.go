// Package streamzoom pans and zooms a single on-screen surface.
//
// The user drags the surface with the middle button and zooms it with the
// wheel while holding a modifier key. Zooming keeps the point under the
// cursor where it is. The Engine holds the surface's Transform and updates
// it from pointer input; a Locator finds the surface in a host Document; a
// Controller binds and unbinds the engine as the surface comes and goes,
// polling on a Cadence.
//
// Basic usage:
//
//	opts := streamzoom.DefaultOptions()
//	cadence := streamzoom.NewTickerCadence(post)
//
//	ctrl := streamzoom.NewController(ctx, doc, cadence, opts)
//	ctrl.Start()
//	defer ctrl.Stop()
//
// Hosts route input to the surface's listeners, or straight to the engine:
//
//	if engine.PointerDown(ev) {
//		// suppress the host's middle-click autoscroll
//	}
//
// All state lives on the host's event loop. The only goroutine is the
// ticker behind TickerCadence, and it hands ticks to the loop through post.
package streamzoom
