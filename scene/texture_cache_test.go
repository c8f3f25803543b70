package scene

import (
	"bytes"
	"image/color"
	"path/filepath"
	"testing"

	"glscene/internal/gputest"
)

func TestTextureCacheProcedural(t *testing.T) {
	dev := gputest.New()
	tc := NewTextureCache(dev)

	checker, err := tc.Load(TextureChecker)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if checker.Width != 64 || !checker.Uploaded() {
		t.Errorf("checker: expected uploaded 64x64, got %dx%d", checker.Width, checker.Height)
	}
	again, _ := tc.Load(TextureChecker)
	if again != checker {
		t.Errorf("Load: expected cached texture")
	}

	white, err := tc.Load(TextureWhite)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if white.Width != 1 {
		t.Errorf("white: expected 1x1, got %dx%d", white.Width, white.Height)
	}
	if tc.Len() != 2 || len(dev.Textures) != 2 {
		t.Errorf("Len: expected 2 textures, got %d cached %d uploaded", tc.Len(), len(dev.Textures))
	}

	tc.DestroyAll()
	if tc.Len() != 0 || len(dev.Textures) != 0 {
		t.Errorf("DestroyAll: expected empty cache")
	}
}

func TestTextureCacheFallback(t *testing.T) {
	tc := NewTextureCache(gputest.New())
	missing := filepath.Join(t.TempDir(), "missing.png")

	if _, err := tc.Load(missing); err == nil {
		t.Errorf("Load: expected error for missing file")
	}

	a := tc.GetOrDefault(missing)
	b := tc.GetOrDefault("")
	if a == nil || a != b || a != tc.Default() {
		t.Errorf("GetOrDefault: expected the shared default texture")
	}
	if !bytes.Equal(a.Pixels, []byte{255, 255, 255, 255}) {
		t.Errorf("Default: expected white, got %v", a.Pixels)
	}
}

func TestNewCheckerTexture(t *testing.T) {
	c1 := color.RGBA{255, 0, 0, 255}
	c2 := color.RGBA{0, 0, 255, 255}
	tex := NewCheckerTexture("c", 16, c1, c2)

	at := func(x, y int) color.RGBA {
		i := (y*16 + x) * 4
		return color.RGBA{tex.Pixels[i], tex.Pixels[i+1], tex.Pixels[i+2], tex.Pixels[i+3]}
	}
	if at(0, 0) != c1 || at(2, 0) != c2 || at(2, 2) != c1 {
		t.Errorf("checker: unexpected pattern %v %v %v", at(0, 0), at(2, 0), at(2, 2))
	}
}
