// Package tui hosts the streamzoom engine in a bubbletea terminal UI.
//
// The terminal shows a scrolling backdrop and, when open, a stream frame.
// Middle-drag the frame to move it; hold the zoom modifier and roll the
// wheel over it to zoom. Without the modifier the wheel scrolls the
// backdrop, which is what the terminal would do anyway.
//
// Run the viewer:
//
//	streamzoom view
package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/teranos/streamzoom"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// FrameWidth and FrameHeight are the natural size of a frame in cells.
	FrameWidth  = 36
	FrameHeight = 12
)

// DefaultOptions returns engine options sized for a terminal: the frame
// starts a few cells in from the top-left corner.
func DefaultOptions() streamzoom.Options {
	opts := streamzoom.DefaultOptions()
	opts.InitialOffset = streamzoom.Point{X: 4, Y: 2}
	return opts
}

// execMsg carries a function onto the event loop.
type execMsg struct {
	fn func()
}

// Exec wraps fn in a message; Update runs it. Use it as the post function
// of a streamzoom.TickerCadence:
//
//	cadence := streamzoom.NewTickerCadence(func(fn func()) {
//		program.Send(tui.Exec(fn))
//	})
func Exec(fn func()) tea.Msg {
	return execMsg{fn: fn}
}

// Model is the bubbletea model of the viewer.
type Model struct {
	ctrl  *streamzoom.Controller
	scene *Scene

	width  int
	height int

	// scroll is the backdrop offset moved by unconsumed wheel ticks.
	scroll int
	// lastDefault names the host default action last left to run.
	lastDefault string

	statusStyle lipgloss.Style
	helpStyle   lipgloss.Style
}

// New creates a viewer for scene driven by ctrl.
func New(ctrl *streamzoom.Controller, scene *Scene) Model {
	return Model{
		ctrl:        ctrl,
		scene:       scene,
		width:       defaultWidth,
		height:      defaultHeight,
		statusStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		helpStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Init implements tea.Model. It starts the controller on the event loop.
func (m Model) Init() tea.Cmd {
	m.ctrl.Start()
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case execMsg:
		if msg.fn != nil {
			msg.fn()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.ctrl.Stop()
			return m, tea.Quit
		case "o":
			m.scene.Open()
			m.ctrl.Poll()
		case "x":
			m.scene.Close()
			m.ctrl.Poll()
		case "r":
			m.scene.Close()
			m.ctrl.Poll()
			m.scene.Open()
			m.ctrl.Poll()
		}

	case tea.MouseMsg:
		m = m.handleMouse(tea.MouseEvent(msg))
	}

	return m, nil
}

// handleMouse routes a mouse event to the frame's listeners the way a
// browser would: presses and wheel ticks only over the frame, motion and
// releases anywhere.
func (m Model) handleMouse(ev tea.MouseEvent) Model {
	p := streamzoom.Point{X: float64(ev.X), Y: float64(ev.Y)}

	var (
		listeners []streamzoom.Listener
		over      bool
	)
	if frame := m.scene.Frame(); frame != nil {
		listeners = frame.Listeners()
		over = frame.BoundingRect().Contains(p)
	}

	switch {
	case ev.Action == tea.MouseActionPress && ev.IsWheel():
		if ev.Button != tea.MouseButtonWheelUp && ev.Button != tea.MouseButtonWheelDown {
			return m // horizontal wheels carry no vertical delta
		}
		delta := 1.0
		if ev.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		wheel := streamzoom.WheelEvent{X: p.X, Y: p.Y, DeltaY: delta, Modifiers: modifiers(ev)}

		consumed := false
		if over {
			for _, l := range listeners {
				consumed = l.Wheel(wheel) || consumed
			}
		}
		if consumed {
			m.lastDefault = ""
			return m
		}
		m.scroll = max(0, m.scroll+int(delta))
		m.lastDefault = "scroll"

	case ev.Action == tea.MouseActionPress:
		press := streamzoom.PointerEvent{X: p.X, Y: p.Y, Button: button(ev.Button)}

		consumed := false
		if over {
			for _, l := range listeners {
				consumed = l.PointerDown(press) || consumed
			}
		}
		switch {
		case consumed:
			m.lastDefault = ""
		case press.Button == streamzoom.ButtonMiddle:
			m.lastDefault = "autoscroll"
		default:
			m.lastDefault = "click"
		}

	case ev.Action == tea.MouseActionMotion:
		for _, l := range listeners {
			l.PointerMove(streamzoom.PointerEvent{X: p.X, Y: p.Y, Button: button(ev.Button)})
		}

	case ev.Action == tea.MouseActionRelease:
		for _, l := range listeners {
			l.PointerUp(streamzoom.PointerEvent{X: p.X, Y: p.Y, Button: button(ev.Button)})
		}
	}

	return m
}

func button(b tea.MouseButton) streamzoom.Button {
	switch b {
	case tea.MouseButtonLeft:
		return streamzoom.ButtonLeft
	case tea.MouseButtonMiddle:
		return streamzoom.ButtonMiddle
	case tea.MouseButtonRight:
		return streamzoom.ButtonRight
	default:
		return streamzoom.ButtonNone
	}
}

func modifiers(ev tea.MouseEvent) streamzoom.Modifier {
	var m streamzoom.Modifier
	if ev.Ctrl {
		m |= streamzoom.ModifierCtrl
	}
	if ev.Alt {
		m |= streamzoom.ModifierAlt
	}
	if ev.Shift {
		m |= streamzoom.ModifierShift
	}
	return m
}

// Scroll returns the backdrop scroll offset.
func (m Model) Scroll() int {
	return m.scroll
}

// LastDefault names the default action the host last performed, if any.
func (m Model) LastDefault() string {
	return m.lastDefault
}

// View implements tea.Model.
func (m Model) View() string {
	rows := max(1, m.height-2)
	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = []rune(padRight(backdropLine(y+m.scroll), m.width))
	}

	if frame := m.scene.Frame(); frame != nil {
		drawFrame(grid, frame)
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	b.WriteString(m.statusStyle.Render(m.status()))
	b.WriteByte('\n')
	b.WriteString(m.helpStyle.Render("middle-drag: move  " +
		m.ctrl.Engine().Options().Modifier.String() +
		"+wheel: zoom  o: open  x: close  r: reset  q: quit"))

	return b.String()
}

func (m Model) status() string {
	engine := m.ctrl.Engine()
	if !engine.Bound() {
		return "no stream frame"
	}
	t := engine.Transform()
	return fmt.Sprintf("scale %.2f  translate (%.1f, %.1f)  %s",
		t.Scale, t.TranslateX, t.TranslateY, engine.State())
}

func backdropLine(n int) string {
	return fmt.Sprintf(" ~ chat message %03d", n+1)
}

func padRight(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// drawFrame paints the frame's bounding rect into grid, clipped.
func drawFrame(grid [][]rune, frame *Frame) {
	rect := frame.BoundingRect()
	left := int(math.Round(rect.Left))
	top := int(math.Round(rect.Top))
	right := left + max(2, int(math.Round(rect.Width))) - 1
	bottom := top + max(2, int(math.Round(rect.Height))) - 1

	set := func(x, y int, r rune) {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
			grid[y][x] = r
		}
	}

	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			var r rune
			switch {
			case y == top && x == left:
				r = '┌'
			case y == top && x == right:
				r = '┐'
			case y == bottom && x == left:
				r = '└'
			case y == bottom && x == right:
				r = '┘'
			case y == top || y == bottom:
				r = '─'
			case x == left || x == right:
				r = '│'
			default:
				r = '░'
			}
			set(x, y, r)
		}
	}

	label := []rune(strings.Fields(frame.Class)[0])
	for i, r := range label {
		x := left + 2 + i
		if x >= right {
			break
		}
		set(x, top+1, r)
	}
}
