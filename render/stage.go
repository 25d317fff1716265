// Package render draws the viewport offscreen so pan and zoom results can
// be captured as PNG frames and compared.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/teranos/streamzoom"
)

// Config defines the viewport a Stage draws.
type Config struct {
	Width      int        // Viewport width in pixels
	Height     int        // Viewport height in pixels
	Background color.RGBA // Viewport color
	Fill       color.RGBA // Surface color
	Border     color.RGBA // Surface outline color
	Foreground color.RGBA // Caption color
}

// DefaultConfig returns a 640x360 dark viewport.
func DefaultConfig() Config {
	return Config{
		Width:      640,
		Height:     360,
		Background: color.RGBA{16, 16, 20, 255},
		Fill:       color.RGBA{40, 90, 160, 255},
		Border:     color.RGBA{230, 230, 240, 255},
		Foreground: color.RGBA{255, 255, 255, 255},
	}
}

// Stage renders a surface rectangle into an image buffer.
type Stage struct {
	config Config
	img    *image.RGBA
	face   font.Face
}

// NewStage creates a stage with a blank viewport.
func NewStage(config Config) *Stage {
	s := &Stage{
		config: config,
		img:    image.NewRGBA(image.Rect(0, 0, config.Width, config.Height)),
		face:   basicfont.Face7x13,
	}
	s.clear()
	return s
}

func (s *Stage) clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.config.Background), image.Point{}, draw.Src)
}

// Render draws rect, clipped to the viewport, with caption along the
// bottom edge. It returns the frame.
func (s *Stage) Render(rect streamzoom.Rect, caption string) *image.RGBA {
	s.clear()

	r := image.Rect(
		int(math.Round(rect.Left)),
		int(math.Round(rect.Top)),
		int(math.Round(rect.Left+rect.Width)),
		int(math.Round(rect.Top+rect.Height)),
	)
	clipped := r.Intersect(s.img.Bounds())
	if !clipped.Empty() {
		draw.Draw(s.img, clipped, image.NewUniform(s.config.Fill), image.Point{}, draw.Src)
		s.outline(r)
	}

	if caption != "" {
		drawer := &font.Drawer{
			Dst:  s.img,
			Src:  image.NewUniform(s.config.Foreground),
			Face: s.face,
			Dot: fixed.Point26_6{
				X: fixed.I(4),
				Y: fixed.I(s.config.Height - 4),
			},
		}
		drawer.DrawString(caption)
	}

	return s.img
}

// outline strokes the one-pixel border of r inside the viewport.
func (s *Stage) outline(r image.Rectangle) {
	bounds := s.img.Bounds()
	set := func(x, y int) {
		if (image.Point{X: x, Y: y}).In(bounds) {
			s.img.SetRGBA(x, y, s.config.Border)
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		if x < bounds.Min.X || x >= bounds.Max.X {
			continue
		}
		set(x, r.Min.Y)
		set(x, r.Max.Y-1)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		set(r.Min.X, y)
		set(r.Max.X-1, y)
	}
}

// Frame returns the last rendered frame.
func (s *Stage) Frame() *image.RGBA {
	return s.img
}

// CaptureFrame writes the last rendered frame to path as PNG.
func (s *Stage) CaptureFrame(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create frame directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, s.img); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}
