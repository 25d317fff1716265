package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/streamzoom/render"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "streamzoom 1.2.3 (commit abc, built today)\n", out)
}

func TestSnapshot_WritesFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames", "zoomed.png")

	out, err := run(t, "snapshot", "--out", path, "--zoom-in", "2", "--log-level", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "scale(1.1)")
	assert.Contains(t, out, "translate(160px, 90px)")

	img, err := render.LoadPNG(path)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 360, img.Bounds().Dy())
}

func TestSnapshot_PanMovesSurface(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moved.png")

	out, err := run(t, "snapshot", "--out", path, "--pan-x", "50", "--pan-y", "-20", "--log-level", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "translate(210px, 70px) scale(1)")
}

func TestSnapshot_ZoomAtCursor(t *testing.T) {
	dir := t.TempDir()

	// The box starts at (160, 90), 320x180; the cursor sits 100px right of
	// its center, so zooming in shifts it left by 100*0.05/1.05.
	out, err := run(t, "snapshot", "--out", filepath.Join(dir, "in.png"),
		"--zoom-in", "1", "--at-x", "420", "--at-y", "180", "--log-level", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "translate(155.238095px, 90px) scale(1.05)")

	// Zooming back out at the same cursor does not return exactly to the
	// start; the correction is first order.
	out, err = run(t, "snapshot", "--out", filepath.Join(dir, "inout.png"),
		"--zoom-in", "1", "--zoom-out", "1", "--at-x", "420", "--at-y", "180", "--log-level", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "translate(160.07619px, 90px) scale(1)")

	out, err = run(t, "snapshot", "--out", filepath.Join(dir, "out.png"),
		"--zoom-out", "1", "--log-level", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "translate(160px, 90px) scale(0.95)")
}

func TestSnapshot_Baseline(t *testing.T) {
	dir := t.TempDir()
	baseline := filepath.Join(dir, "baseline.png")
	_, err := run(t, "snapshot", "--out", baseline, "--log-level", "off")
	require.NoError(t, err)

	_, err = run(t, "snapshot", "--out", filepath.Join(dir, "same.png"),
		"--baseline", baseline, "--log-level", "off")
	require.NoError(t, err)

	moved := filepath.Join(dir, "moved.png")
	_, err = run(t, "snapshot", "--out", moved, "--pan-x", "200",
		"--baseline", baseline, "--log-level", "off")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "differs from baseline")

	_, statErr := os.Stat(filepath.Join(dir, "moved_diff.png"))
	assert.NoError(t, statErr)
}

func TestSnapshot_Report(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report")

	_, err := run(t, "snapshot", "--out", filepath.Join(dir, "final.png"),
		"--zoom-in", "3", "--pan-x", "10", "--report", report, "--log-level", "off")
	require.NoError(t, err)

	for _, name := range []string{"01-start.png", "02-zoom.png", "03-pan.png", "index.html"} {
		_, err := os.Stat(filepath.Join(report, name))
		assert.NoError(t, err, name)
	}

	page, err := os.ReadFile(filepath.Join(report, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "translate(160px, 90px) scale(1)")
	assert.Contains(t, string(page), "scale(1.15)")
}

func TestSnapshot_RequiresOut(t *testing.T) {
	_, err := run(t, "snapshot")
	assert.Error(t, err)
}

func TestSnapshot_RejectsInvalidOptions(t *testing.T) {
	_, err := run(t, "snapshot", "--out", filepath.Join(t.TempDir(), "x.png"), "--modifier", "hyper")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown modifier")
}

func TestDiffPath(t *testing.T) {
	assert.Equal(t, "a/frame_diff.png", diffPath("a/frame.png"))
	assert.Equal(t, "frame_diff", diffPath("frame"))
}
