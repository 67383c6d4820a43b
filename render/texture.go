package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureArray holds every block texture as one layer of a 2D array texture.
type TextureArray struct {
	id     uint32
	layers int
}

// NewTextureArray uploads images, which must all share one square size, as
// consecutive layers.
func NewTextureArray(images []*image.RGBA) (*TextureArray, error) {
	if len(images) == 0 {
		return nil, errors.New("no textures")
	}
	size := images[0].Bounds().Size()
	for i, img := range images {
		if img.Bounds().Size() != size {
			return nil, fmt.Errorf("texture %d is %v, want %v", i, img.Bounds().Size(), size)
		}
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, id)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA,
		int32(size.X), int32(size.Y), int32(len(images)),
		0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	for layer, img := range images {
		gl.TexSubImage3D(gl.TEXTURE_2D_ARRAY, 0,
			0, 0, int32(layer),
			int32(size.X), int32(size.Y), 1,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.GenerateMipmap(gl.TEXTURE_2D_ARRAY)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	var maxAnisotropy float32
	gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &maxAnisotropy)
	gl.TexParameterf(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAX_ANISOTROPY, maxAnisotropy)

	return &TextureArray{id: id, layers: len(images)}, nil
}

// Bind attaches the array to texture unit 0 and points the sampler at it.
func (t *TextureArray) Bind(p *Program) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.id)
	p.SetInt("textures", 0)
}

func (t *TextureArray) Layers() int { return t.layers }

func (t *TextureArray) Delete() {
	gl.DeleteTextures(1, &t.id)
}
