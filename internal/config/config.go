// Package config maps command-line flags and STREAMZOOM_* environment
// variables onto engine options with Viper. No configuration file is read.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/streamzoom"
	"github.com/teranos/streamzoom/internal/logging"
)

// EnvPrefix prefixes every environment variable, e.g. STREAMZOOM_ZOOM_STEP.
const EnvPrefix = "STREAMZOOM"

// Keys, shared by flags and environment variables.
const (
	KeyZoomStep     = "zoom-step"
	KeyMinScale     = "min-scale"
	KeyPollInterval = "poll-interval"
	KeySelector     = "selector"
	KeyModifier     = "modifier"
	KeyOffsetX      = "offset-x"
	KeyOffsetY      = "offset-y"
	KeyLogLevel     = "log-level"
	KeyLogFormat    = "log-format"
	KeyLogFile      = "log-file"
)

// Settings is the resolved configuration of a run.
type Settings struct {
	Options streamzoom.Options
	Log     LogSettings
}

// LogSettings holds logging configuration.
type LogSettings struct {
	Level  string
	Format string
	File   string // empty means stderr
}

// New creates a Viper instance reading STREAMZOOM_* variables, with
// defaults taken from opts.
func New(opts streamzoom.Options) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v, opts)
	return v
}

// SetDefaults registers opts as the fallback for every key.
func SetDefaults(v *viper.Viper, opts streamzoom.Options) {
	v.SetDefault(KeyZoomStep, opts.ZoomStep)
	v.SetDefault(KeyMinScale, opts.ScaleMin)
	v.SetDefault(KeyPollInterval, opts.PollInterval)
	v.SetDefault(KeySelector, opts.Selector)
	v.SetDefault(KeyModifier, opts.Modifier.String())
	v.SetDefault(KeyOffsetX, opts.InitialOffset.X)
	v.SetDefault(KeyOffsetY, opts.InitialOffset.Y)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")
}

// RegisterFlags defines the engine and logging flags on fs.
func RegisterFlags(fs *pflag.FlagSet, opts streamzoom.Options) {
	fs.Float64(KeyZoomStep, opts.ZoomStep, "scale change per wheel tick")
	fs.Float64(KeyMinScale, opts.ScaleMin, "smallest allowed scale")
	fs.Duration(KeyPollInterval, opts.PollInterval, "how often to look for the stream frame")
	fs.String(KeySelector, opts.Selector, "class name substring identifying the stream frame")
	fs.String(KeyModifier, opts.Modifier.String(), "key to hold while scrolling to zoom (ctrl, alt, shift)")
	fs.Float64(KeyOffsetX, opts.InitialOffset.X, "initial horizontal offset of a new frame")
	fs.Float64(KeyOffsetY, opts.InitialOffset.Y, "initial vertical offset of a new frame")
	fs.String(KeyLogLevel, "info", "log level (trace, debug, info, warn, error, off)")
	fs.String(KeyLogFormat, "console", "log format (console, json)")
	fs.String(KeyLogFile, "", "write logs to this file instead of stderr")
}

// BindFlags makes flags on fs override environment variables and defaults.
// Only flags that exist on fs are bound.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// Load resolves and validates the settings held by v.
func Load(v *viper.Viper) (Settings, error) {
	modifier, ok := streamzoom.ParseModifier(v.GetString(KeyModifier))
	if !ok {
		return Settings{}, fmt.Errorf("%w: unknown modifier %q", streamzoom.ErrInvalidOptions, v.GetString(KeyModifier))
	}

	opts := streamzoom.Options{
		ZoomStep:     v.GetFloat64(KeyZoomStep),
		ScaleMin:     v.GetFloat64(KeyMinScale),
		PollInterval: v.GetDuration(KeyPollInterval),
		Selector:     v.GetString(KeySelector),
		Modifier:     modifier,
		InitialOffset: streamzoom.Point{
			X: v.GetFloat64(KeyOffsetX),
			Y: v.GetFloat64(KeyOffsetY),
		},
	}
	if err := opts.Validate(); err != nil {
		return Settings{}, err
	}

	log := LogSettings{
		Level:  v.GetString(KeyLogLevel),
		Format: v.GetString(KeyLogFormat),
		File:   v.GetString(KeyLogFile),
	}
	if _, err := logging.ParseLevel(log.Level); err != nil {
		return Settings{}, err
	}
	switch log.Format {
	case "console", "json":
	default:
		return Settings{}, fmt.Errorf("unknown log format %q", log.Format)
	}

	return Settings{Options: opts, Log: log}, nil
}
