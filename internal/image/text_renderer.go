package image

import (
	"github.com/fogleman/gg"

	"memeinator/internal/meme"
)

// BaselineOffset is added to the overlay's top edge: text is drawn from its
// baseline, not its top-left corner.
const BaselineOffset = 50.0

// Underline geometry as fractions of the render size.
const (
	UnderlineOffset    = 1.0 / 9
	UnderlineThickness = 1.0 / 18
)

type TextRenderer struct {
	Fonts *FontSet
}

// Draw paints one line of text with its top-left overlay corner at pos.
// Nothing is wrapped or clipped.
func (tr *TextRenderer) Draw(dc *gg.Context, text string, pos meme.Position, style meme.RenderStyle) error {
	if text == "" {
		return nil
	}

	face, err := tr.Fonts.Face(style.Weight, style.Slant, style.Size)
	if err != nil {
		return err
	}
	defer face.Close()

	dc.SetFontFace(face)
	dc.SetColor(style.Fill)

	x := pos.X
	baseline := pos.Y + BaselineOffset
	dc.DrawString(text, x, baseline)

	if style.Decoration == meme.DecorationUnderline {
		w, _ := dc.MeasureString(text)
		thickness := max(1, style.Size*UnderlineThickness)
		dc.DrawRectangle(x, baseline+style.Size*UnderlineOffset, w, thickness)
		dc.Fill()
	}
	return nil
}
