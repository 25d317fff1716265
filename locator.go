package streamzoom

import "errors"

// ErrNoQueryMechanism is returned when the host offers no way to look up
// surfaces at all. Locating cannot recover from it.
var ErrNoQueryMechanism = errors.New("host document has no query mechanism")

// Document is the host environment a Locator searches.
type Document interface {
	// Query returns the first surface whose class name contains selector,
	// or nil when there is none. Returned surfaces must be comparable.
	Query(selector string) (Surface, error)
}

// Transition is the outcome of one presence check.
type Transition int

const (
	// TransitionNone means presence did not change.
	TransitionNone Transition = iota
	// TransitionAppeared means a surface was found and none was bound.
	TransitionAppeared
	// TransitionDisappeared means the bound surface is gone.
	TransitionDisappeared
)

func (t Transition) String() string {
	switch t {
	case TransitionAppeared:
		return "appeared"
	case TransitionDisappeared:
		return "disappeared"
	default:
		return "none"
	}
}

// Locator tracks whether a surface is present in a Document.
//
// Appearances and disappearances strictly alternate: Check never reports
// TransitionAppeared twice without a TransitionDisappeared in between.
type Locator struct {
	doc      Document
	selector string
	bound    Surface
}

// NewLocator creates a locator searching doc for selector.
func NewLocator(doc Document, selector string) *Locator {
	return &Locator{
		doc:      doc,
		selector: selector,
	}
}

// Selector returns the class name substring searched for.
func (l *Locator) Selector() string {
	return l.selector
}

// Bound returns the surface reported by the last appearance, or nil.
func (l *Locator) Bound() Surface {
	return l.bound
}

// Check queries the document once.
//
// On TransitionAppeared the returned surface is the one found. A query
// error leaves the tracked state untouched and is returned as is. When a
// different surface has replaced the bound one, the old one is reported
// gone first; the next Check reports the new one.
func (l *Locator) Check() (Transition, Surface, error) {
	if l.doc == nil {
		return TransitionNone, nil, ErrNoQueryMechanism
	}

	found, err := l.doc.Query(l.selector)
	if err != nil {
		return TransitionNone, nil, err
	}

	switch {
	case found != nil && l.bound == nil:
		l.bound = found
		return TransitionAppeared, found, nil
	case l.bound != nil && found != l.bound:
		l.bound = nil
		return TransitionDisappeared, nil, nil
	default:
		return TransitionNone, nil, nil
	}
}

// Reset forgets the bound surface without reporting a transition.
func (l *Locator) Reset() {
	l.bound = nil
}
