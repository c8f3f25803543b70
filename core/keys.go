package core

// Key codes use the GLFW numbering so the platform layer can index the key
// array without translation.
const (
	KeyA      = 65
	KeyD      = 68
	KeyS      = 83
	KeyW      = 87
	KeyEscape = 256
)

// MaxKeys is the size of the key state array; codes outside [0, MaxKeys) are ignored.
const MaxKeys = 1024

// KeyState is the read side of the keyboard state.
type KeyState interface {
	IsKeyDown(key int) bool
}
