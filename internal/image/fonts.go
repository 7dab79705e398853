package image

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"memeinator/internal/meme"
)

// FontDPI makes one font point equal one raster pixel.
const FontDPI = 72

// FontSet holds one parsed font per weight/slant combination.
type FontSet struct {
	regular    *opentype.Font
	bold       *opentype.Font
	italic     *opentype.Font
	boldItalic *opentype.Font
}

var (
	defaultOnce  sync.Once
	defaultFonts *FontSet
	defaultErr   error
)

// DefaultFontSet parses the embedded Go fonts once.
func DefaultFontSet() (*FontSet, error) {
	defaultOnce.Do(func() {
		defaultFonts, defaultErr = parseFontSet(goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF)
	})
	return defaultFonts, defaultErr
}

// NewFontSet parses custom TTF/OTF data. Empty entries use the embedded Go
// font for that variant.
func NewFontSet(regular, bold, italic, boldItalic []byte) (*FontSet, error) {
	if len(regular) == 0 {
		regular = goregular.TTF
	}
	if len(bold) == 0 {
		bold = gobold.TTF
	}
	if len(italic) == 0 {
		italic = goitalic.TTF
	}
	if len(boldItalic) == 0 {
		boldItalic = gobolditalic.TTF
	}
	return parseFontSet(regular, bold, italic, boldItalic)
}

func parseFontSet(regular, bold, italic, boldItalic []byte) (*FontSet, error) {
	fs := &FontSet{}
	for _, v := range []struct {
		name string
		data []byte
		dst  **opentype.Font
	}{
		{"regular", regular, &fs.regular},
		{"bold", bold, &fs.bold},
		{"italic", italic, &fs.italic},
		{"bold italic", boldItalic, &fs.boldItalic},
	} {
		f, err := opentype.Parse(v.data)
		if err != nil {
			return nil, fmt.Errorf("parse %s font: %w", v.name, err)
		}
		*v.dst = f
	}
	return fs, nil
}

// Face builds a fresh face; faces keep glyph caches and must not be shared
// between goroutines.
func (fs *FontSet) Face(w meme.Weight, s meme.Slant, size float64) (font.Face, error) {
	f := fs.regular
	switch {
	case w == meme.WeightBold && s == meme.SlantItalic:
		f = fs.boldItalic
	case w == meme.WeightBold:
		f = fs.bold
	case s == meme.SlantItalic:
		f = fs.italic
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     FontDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}
