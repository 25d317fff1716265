package streamzoom

import "strings"

// Button identifies the pointer button of a press or release.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// String returns a short name for the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Modifier is a bit set of keyboard modifiers held during an event.
type Modifier uint8

const (
	ModifierCtrl Modifier = 1 << iota
	ModifierAlt
	ModifierShift
)

// Has reports whether all bits of m2 are set in m.
func (m Modifier) Has(m2 Modifier) bool {
	return m2 != 0 && m&m2 == m2
}

// String returns the modifier names joined with "+".
func (m Modifier) String() string {
	var parts []string
	if m&ModifierCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModifierAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModifierShift != 0 {
		parts = append(parts, "shift")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// ParseModifier parses a modifier name as accepted on the command line.
func ParseModifier(s string) (Modifier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ctrl", "control":
		return ModifierCtrl, true
	case "alt", "meta":
		return ModifierAlt, true
	case "shift":
		return ModifierShift, true
	default:
		return 0, false
	}
}

// PointerEvent is a press, motion or release delivered by the host.
type PointerEvent struct {
	X      float64
	Y      float64
	Button Button
}

// WheelEvent is a wheel tick delivered by the host.
type WheelEvent struct {
	X         float64
	Y         float64
	DeltaY    float64 // negative when the wheel rolls away from the user
	Modifiers Modifier
}

// Listener receives host input while attached to a surface.
//
// PointerDown and Wheel return true when the event was consumed, in which
// case the host must suppress its default action for it.
type Listener interface {
	PointerDown(ev PointerEvent) bool
	PointerMove(ev PointerEvent)
	PointerUp(ev PointerEvent)
	Wheel(ev WheelEvent) bool
}

// Surface is the visual element being panned and zoomed.
type Surface interface {
	// SetTransform presents the transform on the surface.
	SetTransform(t Transform)
	// BoundingRect returns the surface's position and size as rendered.
	BoundingRect() Rect
}

// EventSource is implemented by surfaces that deliver input to listeners.
type EventSource interface {
	AddListener(l Listener)
	RemoveListener(l Listener)
}
