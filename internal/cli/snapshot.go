package cli

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/streamzoom"
	"github.com/teranos/streamzoom/internal/config"
	"github.com/teranos/streamzoom/internal/logging"
	"github.com/teranos/streamzoom/render"
)

const (
	snapshotBoxWidth  = 320
	snapshotBoxHeight = 180
)

// snapshotOptions centers the box in the default render viewport.
func snapshotOptions() streamzoom.Options {
	opts := streamzoom.DefaultOptions()
	cfg := render.DefaultConfig()
	opts.InitialOffset = streamzoom.Point{
		X: float64(cfg.Width-snapshotBoxWidth) / 2,
		Y: float64(cfg.Height-snapshotBoxHeight) / 2,
	}
	return opts
}

type snapshotFlags struct {
	out      string
	baseline string
	zoomIn   int
	zoomOut  int
	atX      float64
	atY      float64
	panX     float64
	panY     float64
	report   string
}

func newSnapshotCommand() *cobra.Command {
	defaults := snapshotOptions()
	var f snapshotFlags

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render a scripted pan/zoom to a PNG frame",
		Long: `Bind an offscreen surface, apply wheel ticks and a middle-drag, and write
the resulting viewport as a PNG.

Zoom ticks are applied at --at-x/--at-y, or at the surface center when those
are not given. The drag starts at the surface center and moves by
--pan-x/--pan-y. With --baseline the frame is compared to an earlier one and
a *_diff.png is written when they differ. With --report each step is also
captured and collected into an HTML page.

Examples:
  streamzoom snapshot --out zoomed.png --zoom-in 4
  streamzoom snapshot --out moved.png --pan-x 50 --pan-y -20 --baseline moved.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd, defaults)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(settings.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()
			ctx := logging.WithContext(cmd.Context(), log)

			engine := streamzoom.NewEngine(ctx, settings.Options)
			box := render.NewBox(snapshotBoxWidth, snapshotBoxHeight)
			engine.SurfaceAppeared(box)

			fixed := cmd.Flags().Changed("at-x") || cmd.Flags().Changed("at-y")
			cursor := func() streamzoom.Point {
				if fixed {
					return streamzoom.Point{X: f.atX, Y: f.atY}
				}
				return box.BoundingRect().Center()
			}

			stage := render.NewStage(render.DefaultConfig())
			var steps []render.Step
			capture := func(label string) error {
				if f.report == "" {
					return nil
				}
				t := engine.Transform()
				stage.Render(box.BoundingRect(), t.String())
				name := fmt.Sprintf("%02d-%s.png", len(steps)+1, label)
				if err := stage.CaptureFrame(filepath.Join(f.report, name)); err != nil {
					return err
				}
				steps = append(steps, render.Step{Label: label, Transform: t.String(), Filename: name})
				return nil
			}

			wheel := func(deltaY float64) {
				p := cursor()
				engine.Wheel(streamzoom.WheelEvent{
					X: p.X, Y: p.Y, DeltaY: deltaY, Modifiers: settings.Options.Modifier,
				})
			}

			if err := capture("start"); err != nil {
				return err
			}
			for i := 0; i < f.zoomIn; i++ {
				wheel(-1)
			}
			for i := 0; i < f.zoomOut; i++ {
				wheel(1)
			}
			if f.zoomIn > 0 || f.zoomOut > 0 {
				if err := capture("zoom"); err != nil {
					return err
				}
			}

			if f.panX != 0 || f.panY != 0 {
				start := box.BoundingRect().Center()
				engine.PointerDown(streamzoom.PointerEvent{X: start.X, Y: start.Y, Button: streamzoom.ButtonMiddle})
				engine.PointerMove(streamzoom.PointerEvent{X: start.X + f.panX, Y: start.Y + f.panY})
				engine.PointerUp(streamzoom.PointerEvent{X: start.X + f.panX, Y: start.Y + f.panY, Button: streamzoom.ButtonMiddle})
				if err := capture("pan"); err != nil {
					return err
				}
			}

			transform := engine.Transform()
			stage.Render(box.BoundingRect(), transform.String())

			// Load the baseline before writing, since --out may overwrite it.
			var baseline image.Image
			if f.baseline != "" {
				if baseline, err = render.LoadPNG(f.baseline); err != nil {
					return err
				}
			}

			if err := stage.CaptureFrame(f.out); err != nil {
				return err
			}
			log.Debug().Str("out", f.out).Str("transform", transform.String()).Msg("frame captured")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", f.out, transform)

			if f.report != "" {
				err := render.WriteReport(f.report, render.Report{
					Title:     "streamzoom snapshot",
					Timestamp: time.Now(),
					Steps:     steps,
				})
				if err != nil {
					return err
				}
				log.Info().Str("dir", f.report).Int("frames", len(steps)).Msg("report written")
			}

			if baseline == nil {
				return nil
			}
			supervisor := render.NewSupervisor()
			if err := supervisor.Check(baseline, stage.Frame()); err != nil {
				diff := diffPath(f.out)
				if werr := writePNG(diff, supervisor.DiffImage(baseline, stage.Frame())); werr != nil {
					log.Warn().Err(werr).Str("path", diff).Msg("diff image not written")
				}
				return fmt.Errorf("compare with %s: %w", f.baseline, err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.out, "out", "", "PNG file to write")
	flags.StringVar(&f.baseline, "baseline", "", "PNG frame to compare against")
	flags.IntVar(&f.zoomIn, "zoom-in", 0, "wheel ticks toward the screen")
	flags.IntVar(&f.zoomOut, "zoom-out", 0, "wheel ticks away from the screen")
	flags.Float64Var(&f.atX, "at-x", 0, "cursor x for zoom ticks")
	flags.Float64Var(&f.atY, "at-y", 0, "cursor y for zoom ticks")
	flags.Float64Var(&f.panX, "pan-x", 0, "horizontal drag distance")
	flags.Float64Var(&f.panY, "pan-y", 0, "vertical drag distance")
	flags.StringVar(&f.report, "report", "", "directory for an HTML report of each step")
	config.RegisterFlags(flags, defaults)
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// diffPath turns frame.png into frame_diff.png.
func diffPath(out string) string {
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "_diff" + ext
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
