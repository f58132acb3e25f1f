package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewProfiler("tick", zap.New(core))

	clock := p.lastTime
	p.now = func() time.Time { return clock }

	for i := 0; i < 59; i++ {
		clock = clock.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	clock = clock.Add(410 * time.Millisecond)
	assert.True(t, p.Tick())

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "profile", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "tick", fields["loop"])
	assert.InDelta(t, 60, fields["rate"], 1e-9)
	assert.Equal(t, 0, p.frameCount)
}

func TestNilLoggerIsSilent(t *testing.T) {
	p := NewProfiler("render", nil)
	p.now = func() time.Time { return p.lastTime.Add(2 * time.Second) }
	assert.True(t, p.Tick())
}
