package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"glscene/gpu"
)

// CreateTexture uploads tightly packed RGBA8 pixels as a mipmapped 2D texture.
func (d *Device) CreateTexture(width, height int, rgba []byte) (uint32, error) {
	if width <= 0 || height <= 0 || len(rgba) < width*height*4 {
		return 0, fmt.Errorf("%w: %dx%d with %d bytes", gpu.ErrTextureCreation, width, height, len(rgba))
	}

	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("%w: glGenTextures returned 0", gpu.ErrTextureCreation)
	}
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}

// BindTexture binds id to the given texture unit.
func (d *Device) BindTexture(unit uint32, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (d *Device) DeleteTexture(id uint32) {
	if id == 0 {
		return
	}
	gl.DeleteTextures(1, &id)
}
