package render

import (
	"image/color"
	"slices"

	"stairwalk/internal/asset"
)

// Label is a block of text kept as a texture. The texture is rebuilt only
// when the text changes.
type Label struct {
	Color color.Color

	lines []string
	tex   *Texture
}

// Set replaces the text. An empty text clears the label.
func (l *Label) Set(lines ...string) error {
	if l.tex != nil && slices.Equal(lines, l.lines) {
		return nil
	}
	l.Delete()
	if len(lines) == 0 {
		return nil
	}
	col := l.Color
	if col == nil {
		col = asset.CaptionColor
	}
	tex, err := NewTexture(asset.RenderCaption(lines, col), false)
	if err != nil {
		return err
	}
	l.tex = tex
	l.lines = slices.Clone(lines)
	return nil
}

// Texture returns the current texture, nil when the label is empty.
func (l *Label) Texture() *Texture { return l.tex }

// Delete frees the texture. It is safe to call more than once.
func (l *Label) Delete() {
	l.tex.Delete()
	l.tex = nil
	l.lines = nil
}
