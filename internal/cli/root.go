// Package cli provides the Cobra commands of the streamzoom binary.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/teranos/streamzoom"
	"github.com/teranos/streamzoom/internal/config"
	"github.com/teranos/streamzoom/internal/logging"
)

// BuildInfo identifies the binary. It is set through ldflags in main.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand assembles the command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:   "streamzoom",
		Short: "Pan and zoom a stream window with the mouse",
		Long: `streamzoom - move a stream window with a middle-click drag and zoom it
with the wheel while holding a modifier key. The zoom stays centered on the
cursor.

Use 'streamzoom view' for the interactive terminal viewer, or
'streamzoom snapshot' to render a scripted pan/zoom to a PNG frame.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newViewCommand(),
		newSnapshotCommand(),
		newVersionCommand(info),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute(info BuildInfo) {
	if err := NewRootCommand(info).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "streamzoom %s (commit %s, built %s)\n",
				info.Version, info.Commit, info.Date)
		},
	}
}

// loadSettings resolves flags and environment for cmd.
func loadSettings(cmd *cobra.Command, defaults streamzoom.Options) (config.Settings, error) {
	v := config.New(defaults)
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return config.Settings{}, err
	}
	settings, err := config.Load(v)
	if err != nil {
		return config.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// newLogger builds the logger described by s. Logs go to s.File when set,
// otherwise to fallback. The returned func closes the log file.
func newLogger(s config.LogSettings, fallback io.Writer) (zerolog.Logger, func(), error) {
	level, err := logging.ParseLevel(s.Level)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Format = s.Format
	cfg.Output = fallback

	closer := func() {}
	if s.File != "" {
		f, err := os.OpenFile(s.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		cfg.Output = f
		closer = func() { _ = f.Close() }
	}

	return logging.New(cfg), closer, nil
}
