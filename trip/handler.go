package trip

import (
	"fmt"
	"strings"
)

// Policy defines when a Handler tells its owner to stop.
type Policy struct {
	// StopOnFall stops on the first Fall
	StopOnFall bool

	// MaxStumbles stops once more stumbles than this have accumulated.
	// Zero means unlimited.
	MaxStumbles int
}

// DefaultPolicy stops on any fall or after 10 stumbles.
func DefaultPolicy() Policy {
	return Policy{
		StopOnFall:  true,
		MaxStumbles: 10,
	}
}

// Handler collects trips for one component.
// It is not safe for concurrent use.
type Handler struct {
	component string
	policy    Policy
	trips     []*Trip
	stumbles  []*Trip
}

// NewHandler creates a handler for component governed by policy.
func NewHandler(component string, policy Policy) *Handler {
	return &Handler{
		component: component,
		policy:    policy,
	}
}

// Record adds a trip to the collection.
func (h *Handler) Record(t *Trip) {
	if t == nil {
		return
	}
	if t.Severity == Stumble {
		h.stumbles = append(h.stumbles, t)
	} else {
		h.trips = append(h.trips, t)
	}
}

// ShouldContinue reports whether the owner may keep going under the policy.
func (h *Handler) ShouldContinue() bool {
	if h.policy.StopOnFall {
		for _, t := range h.trips {
			if t.IsFall() {
				return false
			}
		}
	}

	if h.policy.MaxStumbles > 0 && len(h.stumbles) > h.policy.MaxStumbles {
		return false
	}

	return true
}

// Trips returns recorded errors and falls.
func (h *Handler) Trips() []*Trip {
	return h.trips
}

// Stumbles returns recorded stumbles.
func (h *Handler) Stumbles() []*Trip {
	return h.stumbles
}

// Last returns the most recent trip of any severity, or nil.
func (h *Handler) Last() *Trip {
	var last *Trip
	for _, t := range h.trips {
		if last == nil || t.Timestamp.After(last.Timestamp) {
			last = t
		}
	}
	for _, t := range h.stumbles {
		if last == nil || t.Timestamp.After(last.Timestamp) {
			last = t
		}
	}
	return last
}

// Reset forgets everything recorded.
func (h *Handler) Reset() {
	h.trips = nil
	h.stumbles = nil
}

// Summary provides a one-line overview.
func (h *Handler) Summary() string {
	if len(h.trips) == 0 && len(h.stumbles) == 0 {
		return fmt.Sprintf("[%s] no issues", h.component)
	}
	return fmt.Sprintf("[%s] %d trips, %d stumbles",
		h.component, len(h.trips), len(h.stumbles))
}

// DetailedReport lists every recorded trip.
func (h *Handler) DetailedReport() string {
	var report strings.Builder

	report.WriteString(fmt.Sprintf("=== %s ===\n", h.component))
	report.WriteString(h.Summary() + "\n")

	if len(h.trips) > 0 {
		report.WriteString("\nTrips:\n")
		for i, t := range h.trips {
			report.WriteString(fmt.Sprintf("%d. %s\n", i+1, t.DetailedString()))
		}
	}

	if len(h.stumbles) > 0 {
		report.WriteString("\nStumbles:\n")
		for i, t := range h.stumbles {
			report.WriteString(fmt.Sprintf("%d. %s\n", i+1, t.DetailedString()))
		}
	}

	return report.String()
}
