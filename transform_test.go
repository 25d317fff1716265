package streamzoom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransform_String(t *testing.T) {
	tests := []struct {
		in   Transform
		want string
	}{
		{Identity(), "translate(0px, 0px) scale(1)"},
		{Transform{TranslateX: 1, TranslateY: -60, Scale: 1}, "translate(1px, -60px) scale(1)"},
		{Transform{TranslateX: 2.5, Scale: 1 + 0.05 + 0.05}, "translate(2.5px, 0px) scale(1.1)"},
		{Transform{TranslateX: -0.0000001, Scale: 0.1}, "translate(0px, 0px) scale(0.1)"},
		{Transform{TranslateX: 1234567, TranslateY: -60, Scale: 1}, "translate(1234567px, -60px) scale(1)"},
		{Transform{TranslateX: -2.5e9, TranslateY: 1e-7, Scale: 25}, "translate(-2500000000px, 0px) scale(25)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.String())
	}
}

func TestRect_CenterAndContains(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 100, Height: 50}
	assert.Equal(t, Point{X: 60, Y: 45}, r.Center())
	assert.True(t, r.Contains(Point{X: 10, Y: 20}))
	assert.True(t, r.Contains(Point{X: 109, Y: 69}))
	assert.False(t, r.Contains(Point{X: 110, Y: 45}))
	assert.False(t, r.Contains(Point{X: 60, Y: 19}))
}

func TestClampScale(t *testing.T) {
	assert.Equal(t, ScaleMin, clampScale(-3, ScaleMin))
	assert.Equal(t, ScaleMin, clampScale(0.05, ScaleMin))
	assert.Equal(t, 2.0, clampScale(2, ScaleMin))
}

func TestModifier(t *testing.T) {
	m := ModifierCtrl | ModifierShift
	assert.True(t, m.Has(ModifierCtrl))
	assert.False(t, m.Has(ModifierAlt))
	assert.False(t, m.Has(0))
	assert.Equal(t, "ctrl+shift", m.String())
	assert.Equal(t, "none", Modifier(0).String())

	for in, want := range map[string]Modifier{"ctrl": ModifierCtrl, " Alt ": ModifierAlt, "shift": ModifierShift} {
		got, ok := ParseModifier(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseModifier("hyper")
	assert.False(t, ok)
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	tests := map[string]func(*Options){
		"zero step":        func(o *Options) { o.ZoomStep = 0 },
		"negative min":     func(o *Options) { o.ScaleMin = -1 },
		"zero interval":    func(o *Options) { o.PollInterval = 0 },
		"empty selector":   func(o *Options) { o.Selector = "" },
		"missing modifier": func(o *Options) { o.Modifier = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			mutate(&opts)
			assert.ErrorIs(t, opts.Validate(), ErrInvalidOptions)
		})
	}

	opts := DefaultOptions()
	assert.Equal(t, time.Second, opts.PollInterval)
	assert.Equal(t, Point{X: 1, Y: -60}, opts.InitialOffset)
}
