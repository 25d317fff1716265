package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf

	log := New(cfg)
	log.Info().Str("surface", "videoFrame_1").Msg("bound")
	log.Debug().Msg("filtered")

	assert.Contains(t, buf.String(), `"surface":"videoFrame_1"`)
	assert.Contains(t, buf.String(), `"message":"bound"`)
	assert.NotContains(t, buf.String(), "filtered")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf

	ctx := WithContext(context.Background(), New(cfg))
	ctx = WithComponent(ctx, "locator")
	FromContext(ctx).Info().Msg("poll")

	assert.Contains(t, buf.String(), `"component":"locator"`)
}

func TestFromContext_NoLogger(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	// Must not panic on a bare context.
	log.Info().Msg("dropped")
}
