// Package textures loads the block textures that fill the texture array.
package textures

import (
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"MinecraftGolang/logging"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"neilpa.me/go-stbi"
)

// Load returns one size x size image per name, read from dir/<name>.png.
// Missing files are replaced by a labelled placeholder so a fresh checkout
// still runs.
func Load(dir string, names []string, size int, logger *zap.Logger) ([]*image.RGBA, error) {
	logger = logging.OrNop(logger)
	out := make([]*image.RGBA, len(names))
	var missing []string

	for i, name := range names {
		path := filepath.Join(dir, name+".png")
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			img, err := Placeholder(name, size)
			if err != nil {
				return nil, err
			}
			out[i] = img
			missing = append(missing, name)
			continue
		}

		img, err := stbi.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load texture %s: %w", path, err)
		}
		out[i] = fit(img, size)
	}

	if len(missing) > 0 {
		logger.Warn("using placeholder textures", zap.String("dir", dir), zap.Strings("missing", missing))
	}
	return out, nil
}

// fit scales img to size x size with nearest-neighbour sampling, keeping texels sharp.
func fit(img *image.RGBA, size int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size && b.Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

var (
	fontOnce sync.Once
	goFont   *truetype.Font
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		goFont, fontErr = freetype.ParseFont(goregular.TTF)
	})
	return goFont, fontErr
}

// Placeholder draws a tile in a colour derived from name, with a darker
// border and the first letters of the name.
func Placeholder(name string, size int) (*image.RGBA, error) {
	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	h := fnv.New32a()
	h.Write([]byte(name))
	sum := h.Sum32()
	fill := color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 255}
	edge := color.RGBA{R: fill.R / 2, G: fill.G / 2, B: fill.B / 2, A: 255}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: edge}, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(1, 1, size-1, size-1), &image.Uniform{C: fill}, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetFont(f)
	ctx.SetDPI(72)
	ctx.SetFontSize(float64(size) / 2)
	ctx.SetDst(dst)
	ctx.SetClip(dst.Bounds())
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	label := strings.ToUpper(name)
	if len(label) > 2 {
		label = label[:2]
	}
	if _, err := ctx.DrawString(label, freetype.Pt(size/8, size*3/4)); err != nil {
		return nil, fmt.Errorf("draw label %q: %w", label, err)
	}
	return dst, nil
}
