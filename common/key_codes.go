package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA     = 65  // A key (ASCII)
	KeyD     = 68  // D key (ASCII)
	KeyF     = 70  // F key (ASCII)
	KeyR     = 82  // R key (ASCII)
	KeyS     = 83  // S key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)

	Key0 = 48 // 0 key (ASCII)
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

// Navigation and modifier keys
const (
	KeyRight      = 262 // Right arrow (GLFW)
	KeyLeft       = 263 // Left arrow (GLFW)
	KeyDown       = 264 // Down arrow (GLFW)
	KeyUp         = 265 // Up arrow (GLFW)
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
	KeyLeftCtrl   = 341 // Left Control (GLFW)
	KeyLeftAlt    = 342 // Left Alt (GLFW)
)
