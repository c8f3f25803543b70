package core

import "testing"

func TestInputKeys(t *testing.T) {
	in := NewInput()

	in.SetKey(KeyW, true)
	in.SetKey(KeyD, true)
	if !in.IsKeyDown(KeyW) || !in.IsKeyDown(KeyD) {
		t.Errorf("SetKey: expected W and D down")
	}

	in.SetKey(KeyW, false)
	if in.IsKeyDown(KeyW) {
		t.Errorf("SetKey: expected W released")
	}

	// Out of range codes are ignored rather than panicking.
	in.SetKey(-1, true)
	in.SetKey(MaxKeys, true)
	if in.IsKeyDown(-1) || in.IsKeyDown(MaxKeys) {
		t.Errorf("IsKeyDown: expected out-of-range keys to read false")
	}
}

func TestInputFirstCursorSampleDiscarded(t *testing.T) {
	in := NewInput()

	in.HandleCursor(400, 300)
	if dx, dy := in.CursorDelta(); dx != 0 || dy != 0 {
		t.Errorf("first sample: expected (0,0), got (%v,%v)", dx, dy)
	}

	in.HandleCursor(410, 290)
	dx, dy := in.CursorDelta()
	if dx != 10 || dy != 10 {
		t.Errorf("second sample: expected (10,10), got (%v,%v)", dx, dy)
	}
}

func TestInputCursorDeltaReadOnce(t *testing.T) {
	in := NewInput()
	in.HandleCursor(0, 0)
	in.HandleCursor(5, -5)

	if dx, dy := in.CursorDelta(); dx != 5 || dy != 5 {
		t.Errorf("first read: expected (5,5), got (%v,%v)", dx, dy)
	}
	if dx, dy := in.CursorDelta(); dx != 0 || dy != 0 {
		t.Errorf("second read: expected (0,0), got (%v,%v)", dx, dy)
	}
}

func TestInputCursorAccumulatesWithinFrame(t *testing.T) {
	in := NewInput()
	in.HandleCursor(0, 0)
	in.HandleCursor(3, 0)
	in.HandleCursor(7, 0)

	if dx, _ := in.CursorDelta(); dx != 7 {
		t.Errorf("accumulate: expected dx 7, got %v", dx)
	}
}

func TestInputResetCursor(t *testing.T) {
	in := NewInput()
	in.HandleCursor(0, 0)
	in.HandleCursor(100, 0)
	in.ResetCursor()

	in.HandleCursor(500, 500)
	if dx, dy := in.CursorDelta(); dx != 0 || dy != 0 {
		t.Errorf("after reset: expected (0,0), got (%v,%v)", dx, dy)
	}
}
