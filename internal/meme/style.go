package meme

import "image/color"

// RenderScale converts the on-screen font size (sp) to raster pixels.
const RenderScale = 2.0

type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
)

type Slant int

const (
	SlantNormal Slant = iota
	SlantItalic
)

type Decoration int

const (
	DecorationNone Decoration = iota
	DecorationUnderline
)

type RenderStyle struct {
	Fill       color.RGBA
	Weight     Weight
	Slant      Slant
	Decoration Decoration
	Size       float64
}

// Palette holds the concrete fill for each swatch.
type Palette map[Color]color.RGBA

var DefaultPalette = Palette{
	White:   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	Black:   {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	Red:     {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	Yellow:  {R: 0xff, G: 0xff, B: 0x00, A: 0xff},
	Blue:    {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	Green:   {R: 0x00, G: 0xff, B: 0x00, A: 0xff},
	Magenta: {R: 0xff, G: 0x00, B: 0xff, A: 0xff},
}

// Merge returns a copy of p with the entries of override applied on top.
func (p Palette) Merge(override Palette) Palette {
	out := make(Palette, len(p)+len(override))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func Resolve(c Color, bold, italic, underline bool, fontSizePt float64) RenderStyle {
	return DefaultPalette.Resolve(c, bold, italic, underline, fontSizePt)
}

// Resolve never fails: a swatch missing from p falls back to the default
// palette, and then to white.
func (p Palette) Resolve(c Color, bold, italic, underline bool, fontSizePt float64) RenderStyle {
	fill, ok := p[c]
	if !ok {
		if fill, ok = DefaultPalette[c]; !ok {
			fill = DefaultPalette[White]
		}
	}

	rs := RenderStyle{
		Fill: fill,
		Size: ClampFontSize(fontSizePt) * RenderScale,
	}
	if bold {
		rs.Weight = WeightBold
	}
	if italic {
		rs.Slant = SlantItalic
	}
	if underline {
		rs.Decoration = DecorationUnderline
	}
	return rs
}

// StyleOf resolves the style for a state snapshot.
func (p Palette) StyleOf(s State) RenderStyle {
	return p.Resolve(s.Color, s.Bold, s.Italic, s.Underline, s.FontSize)
}
