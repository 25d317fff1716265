package streamzoom

// PanState is the state of the pan gesture machine.
type PanState int

const (
	// Idle means no drag is in progress.
	Idle PanState = iota
	// Panning means a middle-button drag is being tracked.
	Panning
)

func (s PanState) String() string {
	if s == Panning {
		return "panning"
	}
	return "idle"
}

// PanSession is the state of one drag gesture.
//
// It exists from the initiating press to the terminating release and is
// owned by the engine for that lifetime only.
type PanSession struct {
	// Start is the pointer position when the drag began.
	Start Point
	// Base is the surface translation when the drag began.
	Base Point
}

// translateAt returns the translation for the pointer at p.
// It depends only on the session and p, so replays are harmless.
func (s PanSession) translateAt(p Point) Point {
	return Point{
		X: s.Base.X + (p.X - s.Start.X),
		Y: s.Base.Y + (p.Y - s.Start.Y),
	}
}
