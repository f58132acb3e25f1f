package common

import (
	"math"
)

// ScreenToNDC converts a window pixel coordinate to normalized device coordinates.
// The window origin is the top-left corner; NDC y points up.
//
// Parameters:
//   - x, y: pixel coordinate
//   - width, height: viewport size in pixels
//
// Returns:
//   - nx, ny: coordinates in [-1, 1]
//   - ok: false if the viewport is empty
func ScreenToNDC(x, y float32, width, height int) (nx, ny float32, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	nx = 2*x/float32(width) - 1
	ny = 1 - 2*y/float32(height)
	return nx, ny, true
}

// CursorToFramebuffer scales a cursor position from window coordinates to framebuffer pixels.
// The two differ on high-DPI displays, where one window unit covers several pixels.
//
// Parameters:
//   - x, y: cursor position in window coordinates
//   - winWidth, winHeight: window size in window coordinates
//   - fbWidth, fbHeight: framebuffer size in pixels
//
// Returns:
//   - float32, float32: the position in framebuffer pixels (unscaled if either size is empty)
func CursorToFramebuffer(x, y float64, winWidth, winHeight, fbWidth, fbHeight int) (float32, float32) {
	if winWidth <= 0 || winHeight <= 0 || fbWidth <= 0 || fbHeight <= 0 {
		return float32(x), float32(y)
	}
	sx := float64(fbWidth) / float64(winWidth)
	sy := float64(fbHeight) / float64(winHeight)
	return float32(x * sx), float32(y * sy)
}

// PixelDistance returns the Euclidean distance between two screen points.
//
// Parameters:
//   - x0, y0: first point
//   - x1, y1: second point
//
// Returns:
//   - float32: the distance in pixels
func PixelDistance(x0, y0, x1, y1 float32) float32 {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	return float32(math.Hypot(dx, dy))
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * (math.Pi / 180.0)
}
