// Package trip provides error values for the ambient failures around the
// transform engine: presence queries that fail, frames that cannot be
// captured, hosts that go away.
//
// The core engine never returns errors. When something around it "trips",
// the failure is recorded with a severity, and a Handler decides under its
// Policy whether the caller should keep going.
package trip

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Trip represents a recorded failure with context.
//
// Kinds used in streamzoom:
//   - "query": the host document could not be queried for a surface
//   - "render": a frame could not be drawn or written
//   - "host": the host event loop is gone
//
// Example usage:
//
//	err := trip.NewStumble("query", "document not ready",
//	    trip.Context{"selector": "videoFrame_"})
//
//	if err.CanRecover() {
//	    // try again on the next poll
//	}
type Trip struct {
	Kind      string    // Failure category
	Message   string    // Human-readable description
	Context   Context   // Additional debugging information
	Timestamp time.Time // When the failure occurred
	Severity  Severity  // How serious this failure is
	Cause     error     // Underlying error, if any
}

// Context provides structured debugging information for trips.
type Context map[string]interface{}

// Severity indicates how serious a trip is and how it should be handled.
type Severity int

const (
	// Stumble indicates a transient issue; the next attempt may succeed.
	// Example: the host document was mid-update during a poll.
	Stumble Severity = iota

	// Error indicates a significant issue the caller should surface.
	Error

	// Fall indicates the caller cannot continue.
	// Example: the host has no query mechanism at all.
	Fall
)

func (s Severity) String() string {
	switch s {
	case Stumble:
		return "stumble"
	case Error:
		return "error"
	case Fall:
		return "fall"
	default:
		return "unknown"
	}
}

// New creates a trip with Error severity.
func New(kind, message string, context Context) *Trip {
	return newTrip(kind, message, context, Error)
}

// NewStumble creates a trip with Stumble severity.
func NewStumble(kind, message string, context Context) *Trip {
	return newTrip(kind, message, context, Stumble)
}

// NewFall creates a trip with Fall severity.
func NewFall(kind, message string, context Context) *Trip {
	return newTrip(kind, message, context, Fall)
}

func newTrip(kind, message string, context Context, severity Severity) *Trip {
	return &Trip{
		Kind:      kind,
		Message:   message,
		Context:   context,
		Timestamp: time.Now(),
		Severity:  severity,
	}
}

// Wrap creates a trip whose message and cause come from err.
func Wrap(kind string, err error, severity Severity, context Context) *Trip {
	t := newTrip(kind, err.Error(), context, severity)
	t.Cause = err
	return t
}

// Error implements the error interface.
func (t *Trip) Error() string {
	return fmt.Sprintf("[%s:%s] %s", t.Kind, t.Severity, t.Message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (t *Trip) Unwrap() error {
	return t.Cause
}

// CanRecover returns true if the caller may retry.
func (t *Trip) CanRecover() bool {
	return t.Severity == Stumble
}

// IsFall returns true if the caller must stop.
func (t *Trip) IsFall() bool {
	return t.Severity == Fall
}

// DetailedString returns a multi-line description with sorted context keys.
func (t *Trip) DetailedString() string {
	var details strings.Builder

	details.WriteString(t.Error())
	details.WriteString(fmt.Sprintf("\n  Time: %s", t.Timestamp.Format("15:04:05.000")))

	if len(t.Context) > 0 {
		keys := make([]string, 0, len(t.Context))
		for k := range t.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		details.WriteString("\n  Context:")
		for _, k := range keys {
			details.WriteString(fmt.Sprintf("\n    %s: %v", k, t.Context[k]))
		}
	}

	return details.String()
}
