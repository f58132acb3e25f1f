package viewer

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/Carmen-Shannon/oxy-nav/engine/config"
	"github.com/Carmen-Shannon/oxy-nav/engine/input"
	"github.com/Carmen-Shannon/oxy-nav/engine/locomotion"
	"github.com/Carmen-Shannon/oxy-nav/engine/session"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const tickDt = float32(1.0 / 60)

func quad(name string, y, half float32) collision.Surface {
	a := mgl32.Vec3{-half, y, -half}
	b := mgl32.Vec3{half, y, -half}
	c := mgl32.Vec3{half, y, half}
	d := mgl32.Vec3{-half, y, half}
	return collision.NewSurface(name, []collision.Triangle{{a, b, c}, {a, c, d}})
}

func TestDiningHallConverges(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	v := NewViewer(WithLogger(zap.New(core)))
	target := mgl32.Vec3{-18.41, 4.66, 28.42}

	v.LocationCallback("Dining Hall")()
	v.Tick(tickDt)

	f := v.Frame()
	assert.Equal(t, locomotion.ModeSeeking, f.State.Mode)
	assert.Equal(t, target, f.State.Target)
	assert.True(t, f.Marker.Visible)
	assert.Equal(t, target, f.Marker.Position)

	require.Equal(t, 1, logs.FilterMessage("teleport").Len())
	assert.Equal(t, "Dining Hall", logs.All()[0].ContextMap()["label"])

	last := f.State.Position.Sub(target).Len()
	for i := 0; i < 300 && v.Frame().State.Mode == locomotion.ModeSeeking; i++ {
		v.Tick(tickDt)
		d := v.Frame().State.Position.Sub(target).Len()
		assert.LessOrEqual(t, d, last)
		last = d
	}

	f = v.Frame()
	assert.Equal(t, locomotion.ModeIdle, f.State.Mode)
	assert.Less(t, f.State.Position.Sub(target).Len(), float32(config.Default().Navigation.ArriveEpsilon))
	assert.False(t, f.Marker.Visible)
}

func TestDesktopTapTeleports(t *testing.T) {
	set := collision.NewSet(quad("floor", 0, 100))
	v := NewViewer(WithSurfaces(set))

	v.Post(input.PointerDown{X: 640, Y: 600, Kind: input.PointerMouse})
	v.Post(input.PointerUp{X: 643, Y: 602})
	v.Tick(tickDt)

	st := v.Frame().State
	require.Equal(t, locomotion.ModeSeeking, st.Mode)
	assert.InDelta(t, 0, st.Target.X(), 0.05)
	assert.InDelta(t, 0, st.Target.Y(), 1e-5)
	assert.Less(t, st.Target.Z(), float32(-1))
}

func TestImmersiveTriggerTeleport(t *testing.T) {
	set := collision.NewSet(quad("platform", 2, 10))
	sess := session.NewManual()
	sess.SetImmersive(true)
	sess.SetController(session.ControllerPose{Origin: mgl32.Vec3{1, 5, 3}, Direction: mgl32.Vec3{0, -1, 0}})
	v := NewViewer(WithSurfaces(set), WithSession(sess))

	v.Tick(tickDt)
	f := v.Frame()
	require.True(t, f.Reticle.Visible)
	assert.InDelta(t, 1, f.Reticle.Position.X(), 1e-5)
	assert.InDelta(t, 2, f.Reticle.Position.Y(), 1e-5)
	assert.InDelta(t, 3, f.Reticle.Position.Z(), 1e-5)
	assert.True(t, f.Immersive)
	assert.Equal(t, f.State.Position, f.Eye, "no eye offset while immersive")

	// Desktop input arriving in the same tick as the trigger is ignored.
	v.Post(input.PointerDown{X: 10, Y: 10})
	v.Post(input.PointerMove{X: 200, Y: 10})
	v.Post(input.PointerUp{X: 10, Y: 10})
	v.Post(input.KeyDown{Key: common.KeyW})
	v.Post(input.SelectEnd{})
	v.Tick(tickDt)

	st := v.Frame().State
	assert.Equal(t, locomotion.ModeSeeking, st.Mode)
	assert.Zero(t, st.Yaw)
	assert.InDelta(t, 1, st.Target.X(), 1e-5)
	assert.InDelta(t, 2, st.Target.Y(), 1e-5)
	assert.InDelta(t, 3, st.Target.Z(), 1e-5)
}

func TestWalkForwardTracksFloor(t *testing.T) {
	set := collision.NewSet(quad("floor", 0.5, 100))
	v := NewViewer(WithSurfaces(set))

	v.Post(input.KeyDown{Key: common.KeyW})
	for i := 0; i < 10; i++ {
		v.Tick(tickDt)
	}
	st := v.Frame().State
	assert.Equal(t, locomotion.ModeWalking, st.Mode)
	assert.InDelta(t, 0, st.Position.X(), 1e-5)
	assert.InDelta(t, -10*config.Default().Navigation.WalkSpeed, st.Position.Z(), 1e-4)
	assert.InDelta(t, 0.5*(1-0.107374), st.Position.Y(), 1e-3)

	v.Post(input.FocusLost{})
	v.Tick(tickDt)
	assert.Equal(t, locomotion.ModeIdle, v.Frame().State.Mode)
}

func TestEnteringImmersiveStopsDesktopWalk(t *testing.T) {
	sess := session.NewManual()
	v := NewViewer(WithSurfaces(collision.NewSet(quad("floor", 0, 100))), WithSession(sess))

	v.Post(input.KeyDown{Key: common.KeyW})
	for i := 0; i < 3; i++ {
		v.Tick(tickDt)
	}
	require.Equal(t, locomotion.ModeWalking, v.Frame().State.Mode)

	sess.SetImmersive(true)
	v.Post(input.KeyUp{Key: common.KeyW})
	v.Tick(tickDt)
	stopped := v.Frame().State
	assert.Equal(t, locomotion.ModeIdle, stopped.Mode)
	assert.Zero(t, stopped.Walking)

	for i := 0; i < 100; i++ {
		v.Tick(tickDt)
	}
	assert.Equal(t, stopped.Position, v.Frame().State.Position)

	// Back on the desktop, a fresh press walks again.
	sess.SetImmersive(false)
	v.Post(input.KeyDown{Key: common.KeyW})
	v.Tick(tickDt)
	assert.Equal(t, locomotion.ModeWalking, v.Frame().State.Mode)
	assert.Less(t, v.Frame().State.Position.Z(), stopped.Position.Z())
}

func TestFrameSnapshot(t *testing.T) {
	set := collision.NewSet()
	cfg := config.Default()
	cfg.Start.Position = [3]float32{1, 0, 2}
	v := NewViewer(WithConfig(cfg), WithSurfaces(set))

	f := v.Frame()
	assert.Zero(t, f.Tick)
	assert.False(t, f.WorldLoaded)
	assert.Equal(t, mgl32.Vec3{1, 0, 2}, f.State.Position)
	assert.Equal(t, mgl32.Vec3{1, cfg.Navigation.EyeHeight, 2}, f.Eye)
	assert.Same(t, set, v.Surfaces())

	set.Publish([]collision.Surface{quad("floor", 0, 5)})
	v.Tick(tickDt)
	f = v.Frame()
	assert.Equal(t, uint64(1), f.Tick)
	assert.True(t, f.WorldLoaded)
	assert.Equal(t, v.Camera().ViewMatrix(), f.View)
}

func TestLocationsAndResize(t *testing.T) {
	v := NewViewer()
	labels := make([]string, 0)
	for _, loc := range v.Locations() {
		labels = append(labels, loc.Label)
	}
	assert.Equal(t, []string{"Entrance", "Dining Hall", "Library", "Courtyard"}, labels)

	v.Resize(640, 480)
	w, h := v.Camera().Viewport()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.InDelta(t, 640.0/480.0, v.Camera().Aspect(), 1e-6)
}

func TestConcurrentPost(t *testing.T) {
	v := NewViewer(WithSurfaces(collision.NewSet(quad("floor", 0, 100))))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				v.Post(input.KeyDown{Key: common.KeyD})
				v.Post(input.KeyUp{Key: common.KeyD})
			}
		}()
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		v.Tick(tickDt)
		_ = v.Frame()
	}
	v.Tick(tickDt)
	assert.Equal(t, locomotion.ModeIdle, v.Frame().State.Mode, "every key press was released")
}
