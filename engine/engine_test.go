package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func runAsync(e Engine) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	return done
}

func TestHeadlessRunTicksUntilQuit(t *testing.T) {
	e := NewEngine(WithTickRate(200), WithRenderFrameLimit(200))

	var ticks, frames atomic.Int32
	e.SetTickCallback(func(dt float32) {
		assert.Greater(t, dt, float32(0))
		ticks.Add(1)
	})
	e.SetRenderCallback(func(float32) { frames.Add(1) })

	done := runAsync(e)
	require.Eventually(t, func() bool { return ticks.Load() >= 3 && frames.Load() >= 3 }, 5*time.Second, 5*time.Millisecond)

	e.Quit()
	e.Quit()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}

	settled := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, ticks.Load(), "no ticks after quit")
	assert.Nil(t, e.Window())
}

func TestRenderPanicQuitsAndLogs(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := NewEngine(WithLogger(zap.New(core)))
	e.SetRenderCallback(func(float32) { panic("device lost") })

	done := runAsync(e)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("render panic did not stop the engine")
	}
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "device lost", logs.All()[0].ContextMap()["panic"])
}

func TestSetTickRateWhileRunning(t *testing.T) {
	e := NewEngine(WithTickRate(1))
	var ticks atomic.Int32
	e.SetTickCallback(func(float32) { ticks.Add(1) })

	done := runAsync(e)
	defer func() {
		e.Quit()
		<-done
	}()

	require.Eventually(t, func() bool { return e.(*engine).running.Load() }, time.Second, time.Millisecond)
	e.SetTickRate(500)
	assert.Eventually(t, func() bool { return ticks.Load() >= 5 }, 3*time.Second, 5*time.Millisecond)
}

func TestFrameLimitOptions(t *testing.T) {
	e := NewEngine(WithRenderFrameLimit(50), WithTickRate(-1)).(*engine)
	assert.Equal(t, 20*time.Millisecond, e.renderFrameLimit)
	assert.Equal(t, time.Second/60, e.engineTickRate)

	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)

	e.SetTickRate(120)
	assert.Equal(t, time.Second/120, e.engineTickRate)
}
