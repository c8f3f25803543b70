package scene

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"glscene/gpu"
)

// TextureUnit is the sampler unit the fragment shader reads from.
const TextureUnit = 0

// Texture holds RGBA8 pixels (4 bytes per pixel, row-major, bottom row first
// to match OpenGL's origin) and, once uploaded, its GPU name.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []byte

	dev gpu.Device
	id  uint32
}

// LoadTexture decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	tex, err := DecodeTexture(path, f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return tex, nil
}

// DecodeTexture decodes any registered image format into a Texture.
func DecodeTexture(name string, r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	// Repack tightly and flip vertically.
	pixels := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		copy(pixels[(h-1-y)*w*4:], src)
	}

	return &Texture{Name: name, Width: w, Height: h, Pixels: pixels}, nil
}

func decodeTextureBytes(name string, data []byte) (*Texture, error) {
	return DecodeTexture(name, bytes.NewReader(data))
}

// NewSolidTexture creates a 1x1 texture with the given RGBA colour.
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// Upload creates the GPU texture. Uploading twice is a no-op.
func (t *Texture) Upload(dev gpu.Device) error {
	if t.id != 0 {
		return nil
	}
	id, err := dev.CreateTexture(t.Width, t.Height, t.Pixels)
	if err != nil {
		return fmt.Errorf("texture %q: %w", t.Name, err)
	}
	t.dev = dev
	t.id = id
	return nil
}

func (t *Texture) Uploaded() bool { return t.id != 0 }

// Use binds the texture to TextureUnit.
func (t *Texture) Use() {
	if t.id == 0 {
		return
	}
	t.dev.BindTexture(TextureUnit, t.id)
}

// Destroy frees the GPU texture; the CPU pixels are kept.
func (t *Texture) Destroy() {
	if t.id == 0 {
		return
	}
	t.dev.DeleteTexture(t.id)
	t.id = 0
}
