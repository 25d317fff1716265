package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/streamzoom"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(New(streamzoom.DefaultOptions()))
	require.NoError(t, err)

	assert.Equal(t, streamzoom.DefaultOptions(), s.Options)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "console", s.Log.Format)
	assert.Empty(t, s.Log.File)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("STREAMZOOM_ZOOM_STEP", "0.1")
	t.Setenv("STREAMZOOM_POLL_INTERVAL", "250ms")
	t.Setenv("STREAMZOOM_MODIFIER", "alt")
	t.Setenv("STREAMZOOM_OFFSET_Y", "12")

	s, err := Load(New(streamzoom.DefaultOptions()))
	require.NoError(t, err)

	assert.Equal(t, 0.1, s.Options.ZoomStep)
	assert.Equal(t, 250*time.Millisecond, s.Options.PollInterval)
	assert.Equal(t, streamzoom.ModifierAlt, s.Options.Modifier)
	assert.Equal(t, streamzoom.Point{X: 1, Y: 12}, s.Options.InitialOffset)
}

func TestLoad_FlagsBeatEnvironment(t *testing.T) {
	t.Setenv("STREAMZOOM_SELECTOR", "fromEnv_")

	opts := streamzoom.DefaultOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, opts)
	require.NoError(t, fs.Parse([]string{"--selector", "fromFlag_", "--min-scale", "0.25", "--log-format", "json"}))

	v := New(opts)
	require.NoError(t, BindFlags(v, fs))

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "fromFlag_", s.Options.Selector)
	assert.Equal(t, 0.25, s.Options.ScaleMin)
	assert.Equal(t, "json", s.Log.Format)
}

func TestLoad_UnsetFlagsKeepEnvironment(t *testing.T) {
	t.Setenv("STREAMZOOM_SELECTOR", "fromEnv_")

	opts := streamzoom.DefaultOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, opts)
	require.NoError(t, fs.Parse(nil))

	v := New(opts)
	require.NoError(t, BindFlags(v, fs))

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "fromEnv_", s.Options.Selector)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"modifier":   {"STREAMZOOM_MODIFIER": "hyper"},
		"zoom step":  {"STREAMZOOM_ZOOM_STEP": "-1"},
		"min scale":  {"STREAMZOOM_MIN_SCALE": "0"},
		"log level":  {"STREAMZOOM_LOG_LEVEL": "loud"},
		"log format": {"STREAMZOOM_LOG_FORMAT": "xml"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, val := range env {
				t.Setenv(k, val)
			}
			_, err := Load(New(streamzoom.DefaultOptions()))
			assert.Error(t, err)
		})
	}
}
