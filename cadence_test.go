package streamzoom

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickerCadence_PostsTicks(t *testing.T) {
	loop := make(chan func(), 16)
	cadence := NewTickerCadence(func(fn func()) { loop <- fn })

	var ticks atomic.Int32
	cadence.Start(5*time.Millisecond, func() { ticks.Add(1) })
	assert.True(t, cadence.Running())

	for i := 0; i < 3; i++ {
		select {
		case fn := <-loop:
			fn()
		case <-time.After(time.Second):
			t.Fatal("no tick posted")
		}
	}
	assert.Equal(t, int32(3), ticks.Load())

	cadence.Stop()
	assert.False(t, cadence.Running())
}

func TestTickerCadence_DropsTicksPostedBeforeStop(t *testing.T) {
	loop := make(chan func(), 16)
	cadence := NewTickerCadence(func(fn func()) { loop <- fn })

	var ticks atomic.Int32
	cadence.Start(time.Millisecond, func() { ticks.Add(1) })

	var pending func()
	select {
	case pending = <-loop:
	case <-time.After(time.Second):
		t.Fatal("no tick posted")
	}

	cadence.Stop()
	pending()
	assert.Equal(t, int32(0), ticks.Load())

	// Stop is idempotent.
	cadence.Stop()
}

func TestTickerCadence_RestartReplacesSchedule(t *testing.T) {
	loop := make(chan func(), 64)
	cadence := NewTickerCadence(func(fn func()) { loop <- fn })

	var first, second atomic.Int32
	cadence.Start(time.Millisecond, func() { first.Add(1) })
	cadence.Start(time.Millisecond, func() { second.Add(1) })
	defer cadence.Stop()

	deadline := time.After(time.Second)
	for second.Load() == 0 {
		select {
		case fn := <-loop:
			fn()
		case <-deadline:
			t.Fatal("restarted schedule never ticked")
		}
	}
	assert.Equal(t, int32(0), first.Load())
}
