package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// MaxTextureSize caps the longest texture side; larger images are scaled down.
const MaxTextureSize = 2048

// ErrUnsupportedTexture is returned when a texture file is not an image.
var ErrUnsupportedTexture = errors.New("unsupported texture format")

// LoadTexture decodes an image file into bottom-up NRGBA rows, ready for
// glTexImage2D.
func LoadTexture(path string) (*image.NRGBA, error) {
	head, err := readHead(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	if !filetype.IsImage(head) {
		return nil, fmt.Errorf("texture %s: %w", path, ErrUnsupportedTexture)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("texture %s (%s): empty image", path, format)
	}
	return toTexels(img), nil
}

// toTexels converts img to NRGBA, scales it under MaxTextureSize and flips
// it vertically.
func toTexels(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if long := max(w, h); long > MaxTextureSize {
		w = max(w*MaxTextureSize/long, 1)
		h = max(h*MaxTextureSize/long, 1)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	}
	flipRows(dst)
	return dst
}

func flipRows(img *image.NRGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bot := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bot)
		copy(bot, row)
	}
}

// isKnownBinary reports whether head matches any registered binary format.
func isKnownBinary(head []byte) bool {
	kind, err := filetype.Match(head)
	return err == nil && kind != filetype.Unknown
}
