package viewer

import (
	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/Carmen-Shannon/oxy-nav/engine/input"
)

// InputSource is the callback surface of a platform window.
type InputSource interface {
	SetKeyDownCallback(callback func(key int))
	SetKeyUpCallback(callback func(key int))
	SetMouseDownCallback(callback func(button int, x, y float32))
	SetMouseUpCallback(callback func(button int, x, y float32))
	SetMouseMoveCallback(callback func(x, y float32))
	SetFocusCallback(callback func(focused bool))
}

// Bind routes a window's raw callbacks into v's event queue.
// Only the left mouse button drives taps and drags; other buttons are ignored.
//
// Parameters:
//   - src: the window
//   - v: the viewer receiving events
func Bind(src InputSource, v Viewer) {
	src.SetMouseDownCallback(func(button int, x, y float32) {
		if button == common.MouseButtonLeft {
			v.Post(input.PointerDown{X: x, Y: y, Kind: input.PointerMouse})
		}
	})
	src.SetMouseUpCallback(func(button int, x, y float32) {
		if button == common.MouseButtonLeft {
			v.Post(input.PointerUp{X: x, Y: y})
		}
	})
	src.SetMouseMoveCallback(func(x, y float32) {
		v.Post(input.PointerMove{X: x, Y: y})
	})
	src.SetKeyDownCallback(func(key int) {
		v.Post(input.KeyDown{Key: key})
	})
	src.SetKeyUpCallback(func(key int) {
		v.Post(input.KeyUp{Key: key})
	})
	src.SetFocusCallback(func(focused bool) {
		if !focused {
			v.Post(input.FocusLost{})
		}
	})
}
