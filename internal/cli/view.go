package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/streamzoom"
	"github.com/teranos/streamzoom/internal/config"
	"github.com/teranos/streamzoom/internal/logging"
	"github.com/teranos/streamzoom/tui"
)

func newViewCommand() *cobra.Command {
	defaults := tui.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive terminal viewer",
		Long: `Open a terminal viewer with a stream frame.

Middle-drag the frame to move it. Hold the modifier (ctrl by default) and
scroll over the frame to zoom around the cursor. Without the modifier the
wheel scrolls the backdrop. Press o/x to open or close the frame, r to reset
it, q to quit.

Logs are discarded unless --log-file is given, so they never draw over the
viewer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd, defaults)
			if err != nil {
				return err
			}
			return runView(cmd.Context(), settings)
		},
	}

	config.RegisterFlags(cmd.Flags(), defaults)
	return cmd
}

func runView(ctx context.Context, settings config.Settings) error {
	log, closeLog, err := newLogger(settings.Log, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx = logging.WithContext(ctx, log)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	scene := tui.NewScene(tui.FrameWidth, tui.FrameHeight)
	scene.Open()

	var program *tea.Program
	cadence := streamzoom.NewTickerCadence(func(fn func()) {
		program.Send(tui.Exec(fn))
	})
	ctrl := streamzoom.NewController(ctx, scene, cadence, settings.Options)

	program = tea.NewProgram(tui.New(ctrl, scene),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithoutSignalHandler(),
	)

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("run viewer: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		program.Quit()
		return nil
	})

	err = g.Wait()

	// The loop has exited; nothing else touches the controller now.
	ctrl.Stop()

	if trips := ctrl.Trips(); len(trips.Trips()) > 0 || len(trips.Stumbles()) > 0 {
		log.Warn().Msg(trips.DetailedReport())
	}
	log.Info().Int("polls", ctrl.Polls()).Msg("viewer closed")

	return err
}
