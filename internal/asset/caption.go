package asset

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Caption layout in pixels.
const (
	CaptionPadding = 4
	CaptionLeading = 6
)

// CaptionColor matches the red overlay text of the scene.
var CaptionColor = color.NRGBA{R: 255, A: 255}

// RenderCaption rasterizes lines onto a transparent image, top to bottom,
// and returns it bottom-up for upload. An empty slice yields a 1x1 image.
func RenderCaption(lines []string, col color.Color) *image.NRGBA {
	if len(lines) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	face := basicfont.Face7x13
	lineH := face.Metrics().Height.Ceil() + CaptionLeading

	w := 1
	for _, l := range lines {
		w = max(w, font.MeasureString(face, l).Ceil())
	}
	w += 2 * CaptionPadding
	h := len(lines)*lineH + 2*CaptionPadding

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()
	for i, l := range lines {
		d.Dot = fixed.P(CaptionPadding, CaptionPadding+i*lineH+ascent)
		d.DrawString(l)
	}
	flipRows(img)
	return img
}
