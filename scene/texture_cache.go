package scene

import (
	"image/color"

	"go.uber.org/zap"

	"glscene/gpu"
	"glscene/internal/logger"
)

// Procedural texture names understood by TextureCache.Get.
const (
	TextureWhite   = "@white"
	TextureChecker = "@checker"
)

const defaultTextureKey = "__default_white__"

// TextureCache loads and uploads each texture path once.
type TextureCache struct {
	dev      gpu.Device
	textures map[string]*Texture
}

func NewTextureCache(dev gpu.Device) *TextureCache {
	return &TextureCache{dev: dev, textures: map[string]*Texture{}}
}

// Load returns the cached texture for path, decoding and uploading it on
// first use. Names starting with '@' select a procedural texture.
func (tc *TextureCache) Load(path string) (*Texture, error) {
	if tex, ok := tc.textures[path]; ok {
		return tex, nil
	}

	var tex *Texture
	switch {
	case path == TextureWhite:
		tex = NewSolidTexture(path, 255, 255, 255, 255)
	case path == TextureChecker:
		tex = NewCheckerTexture(path, 64, color.RGBA{200, 200, 200, 255}, color.RGBA{90, 90, 90, 255})
	default:
		var err error
		if tex, err = LoadTexture(path); err != nil {
			return nil, err
		}
	}

	if err := tex.Upload(tc.dev); err != nil {
		return nil, err
	}
	tc.textures[path] = tex
	return tex, nil
}

// GetOrDefault returns the texture at path, or the default white texture
// when it cannot be loaded.
func (tc *TextureCache) GetOrDefault(path string) *Texture {
	if path == "" {
		return tc.Default()
	}
	tex, err := tc.Load(path)
	if err != nil {
		logger.Log.Warn("texture unavailable, using default", zap.String("path", path), zap.Error(err))
		return tc.Default()
	}
	return tex
}

// Default returns a 1x1 white texture, or nil if it cannot be uploaded.
func (tc *TextureCache) Default() *Texture {
	if tex, ok := tc.textures[defaultTextureKey]; ok {
		return tex
	}
	tex := NewSolidTexture(defaultTextureKey, 255, 255, 255, 255)
	if err := tex.Upload(tc.dev); err != nil {
		logger.Log.Error("default texture upload failed", zap.Error(err))
		return nil
	}
	tc.textures[defaultTextureKey] = tex
	return tex
}

// Len returns the number of cached textures.
func (tc *TextureCache) Len() int { return len(tc.textures) }

// DestroyAll frees every cached texture.
func (tc *TextureCache) DestroyAll() {
	for _, tex := range tc.textures {
		tex.Destroy()
	}
	tc.textures = map[string]*Texture{}
}

// NewCheckerTexture creates a size x size checkerboard of 8x8 blocks.
func NewCheckerTexture(name string, size int, c1, c2 color.RGBA) *Texture {
	if size < 1 {
		size = 1
	}
	pixels := make([]byte, size*size*4)
	blockSize := size / 8
	if blockSize < 1 {
		blockSize = 1
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := c2
			if ((x/blockSize)+(y/blockSize))%2 == 0 {
				c = c1
			}
			idx := (y*size + x) * 4
			pixels[idx] = c.R
			pixels[idx+1] = c.G
			pixels[idx+2] = c.B
			pixels[idx+3] = c.A
		}
	}
	return &Texture{Name: name, Width: size, Height: size, Pixels: pixels}
}
