package core

// Input accumulates keyboard and cursor state between frames. The platform
// layer feeds it from its callbacks; the render loop reads it once per frame.
type Input struct {
	keys [MaxKeys]bool

	lastX, lastY   float64
	deltaX, deltaY float32
	mouseSeen      bool
}

func NewInput() *Input { return &Input{} }

// SetKey records a press or release. Out-of-range codes (including GLFW's
// KeyUnknown = -1) are dropped.
func (in *Input) SetKey(key int, down bool) {
	if key < 0 || key >= MaxKeys {
		return
	}
	in.keys[key] = down
}

func (in *Input) IsKeyDown(key int) bool {
	if key < 0 || key >= MaxKeys {
		return false
	}
	return in.keys[key]
}

// Keys returns a copy of the full key array.
func (in *Input) Keys() [MaxKeys]bool { return in.keys }

// HandleCursor consumes an absolute cursor position. The first sample only
// seeds the last position, so it contributes no delta. Y is inverted so that
// moving the mouse up yields a positive delta.
func (in *Input) HandleCursor(x, y float64) {
	if !in.mouseSeen {
		in.lastX, in.lastY = x, y
		in.mouseSeen = true
	}
	in.deltaX += float32(x - in.lastX)
	in.deltaY += float32(in.lastY - y)
	in.lastX, in.lastY = x, y
}

// CursorDelta returns the movement accumulated since the previous call and
// resets it to zero.
func (in *Input) CursorDelta() (dx, dy float32) {
	dx, dy = in.deltaX, in.deltaY
	in.deltaX, in.deltaY = 0, 0
	return dx, dy
}

// ResetCursor forgets the last position so the next sample is discarded again,
// e.g. after the cursor is re-captured.
func (in *Input) ResetCursor() {
	in.mouseSeen = false
	in.deltaX, in.deltaY = 0, 0
}
