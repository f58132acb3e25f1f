package viewer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/Carmen-Shannon/oxy-nav/engine/locomotion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	keyDown   func(int)
	keyUp     func(int)
	mouseDown func(int, float32, float32)
	mouseUp   func(int, float32, float32)
	mouseMove func(float32, float32)
	focus     func(bool)
}

func (f *fakeWindow) SetKeyDownCallback(cb func(key int))                    { f.keyDown = cb }
func (f *fakeWindow) SetKeyUpCallback(cb func(key int))                      { f.keyUp = cb }
func (f *fakeWindow) SetMouseDownCallback(cb func(button int, x, y float32)) { f.mouseDown = cb }
func (f *fakeWindow) SetMouseUpCallback(cb func(button int, x, y float32))   { f.mouseUp = cb }
func (f *fakeWindow) SetMouseMoveCallback(cb func(x, y float32))             { f.mouseMove = cb }
func (f *fakeWindow) SetFocusCallback(cb func(focused bool))                 { f.focus = cb }

func TestBindRoutesWindowInput(t *testing.T) {
	w := &fakeWindow{}
	v := NewViewer(WithSurfaces(collision.NewSet(quad("floor", 0, 100))))
	Bind(w, v)
	require.NotNil(t, w.focus)

	// Right button presses are not taps.
	w.mouseDown(common.MouseButtonRight, 640, 600)
	w.mouseUp(common.MouseButtonRight, 640, 600)
	v.Tick(tickDt)
	assert.Equal(t, locomotion.ModeIdle, v.Frame().State.Mode)

	w.mouseDown(common.MouseButtonLeft, 640, 600)
	w.mouseUp(common.MouseButtonLeft, 640, 600)
	v.Tick(tickDt)
	assert.Equal(t, locomotion.ModeSeeking, v.Frame().State.Mode)

	w.mouseDown(common.MouseButtonLeft, 100, 100)
	w.mouseMove(160, 100)
	w.mouseUp(common.MouseButtonLeft, 160, 100)
	v.Tick(tickDt)
	st := v.Frame().State
	assert.Equal(t, locomotion.ModeIdle, st.Mode, "look cancels the seek")
	assert.Less(t, st.Yaw, float32(0))

	w.keyDown(common.KeyA)
	v.Tick(tickDt)
	assert.Equal(t, locomotion.ModeWalking, v.Frame().State.Mode)

	w.focus(true)
	v.Tick(tickDt)
	assert.Equal(t, locomotion.ModeWalking, v.Frame().State.Mode)

	w.focus(false)
	v.Tick(tickDt)
	assert.Equal(t, locomotion.ModeIdle, v.Frame().State.Mode)

	w.keyUp(common.KeyA)
	w.keyDown(common.Key3)
	v.Tick(tickDt)
	st = v.Frame().State
	assert.Equal(t, locomotion.ModeSeeking, st.Mode)
	assert.Equal(t, v.Locations()[2].Position, st.Target)
}
