package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW   = 87  // W key (ASCII)
	KeyA   = 65  // A key (ASCII)
	KeyS   = 83  // S key (ASCII)
	KeyD   = 68  // D key (ASCII)
	KeyEsc = 256 // Escape key (GLFW)

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)
	Key5 = 53 // 5 key (ASCII)
	Key6 = 54 // 6 key (ASCII)
	Key7 = 55 // 7 key (ASCII)
	Key8 = 56 // 8 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)

// Arrow keys
const (
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

// Mouse buttons
const (
	MouseButtonLeft   = 0 // Left mouse button (GLFW)
	MouseButtonRight  = 1 // Right mouse button (GLFW)
	MouseButtonMiddle = 2 // Middle mouse button (GLFW)
)

// DigitIndex returns the zero-based index of a number-row key (1 through 9).
//
// Parameters:
//   - key: the key code
//
// Returns:
//   - int: 0 for Key1 up to 8 for Key9
//   - bool: false if key is not Key1 through Key9
func DigitIndex(key int) (int, bool) {
	if key < Key1 || key > Key9 {
		return 0, false
	}
	return key - Key1, true
}
