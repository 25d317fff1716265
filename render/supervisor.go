package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Supervisor compares rendered frames against a baseline.
type Supervisor struct {
	tolerance float64 // fraction of pixels allowed to differ
}

// NewSupervisor creates a supervisor with a 5% tolerance.
func NewSupervisor() *Supervisor {
	return &Supervisor{tolerance: 0.05}
}

// WithTolerance sets the allowed fraction of differing pixels.
func (s *Supervisor) WithTolerance(tolerance float64) *Supervisor {
	s.tolerance = tolerance
	return s
}

// Difference returns the fraction of pixels that differ between a and b.
// Frames of different sizes differ entirely.
func (s *Supervisor) Difference(a, b image.Image) float64 {
	ba, bb := a.Bounds(), b.Bounds()
	if ba.Size() != bb.Size() {
		return 1.0
	}

	total := ba.Dx() * ba.Dy()
	if total == 0 {
		return 0
	}

	offset := bb.Min.Sub(ba.Min)
	different := 0
	for y := ba.Min.Y; y < ba.Max.Y; y++ {
		for x := ba.Min.X; x < ba.Max.X; x++ {
			if !sameColor(a.At(x, y), b.At(x+offset.X, y+offset.Y)) {
				different++
			}
		}
	}

	return float64(different) / float64(total)
}

// Matches reports whether b is within tolerance of a.
func (s *Supervisor) Matches(a, b image.Image) bool {
	return s.Difference(a, b) <= s.tolerance
}

// Check returns an error describing the difference when b does not match a.
func (s *Supervisor) Check(a, b image.Image) error {
	d := s.Difference(a, b)
	if d > s.tolerance {
		return fmt.Errorf("frame differs from baseline: %.2f%% of pixels (tolerance %.2f%%)",
			d*100, s.tolerance*100)
	}
	return nil
}

// DiffImage highlights differing pixels in red over a dimmed copy of a.
func (s *Supervisor) DiffImage(a, b image.Image) *image.RGBA {
	bounds := a.Bounds()
	diff := image.NewRGBA(bounds)
	offset := b.Bounds().Min.Sub(bounds.Min)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ca := a.At(x, y)
			if !sameColor(ca, b.At(x+offset.X, y+offset.Y)) {
				diff.Set(x, y, color.RGBA{255, 0, 0, 255})
				continue
			}
			r, g, bl, al := ca.RGBA()
			diff.Set(x, y, color.RGBA{
				uint8(r >> 9), // half brightness
				uint8(g >> 9),
				uint8(bl >> 9),
				uint8(al >> 8),
			})
		}
	}

	return diff
}

// LoadPNG decodes a PNG frame from path.
func LoadPNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}
