package image

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"memeinator/internal/meme"
)

// Compositor draws a meme state onto its background. It is safe for
// concurrent use.
type Compositor struct {
	processor Processor
	text      TextRenderer
	palette   meme.Palette
}

// NewCompositor uses the embedded Go fonts when fonts is nil and the default
// palette when palette is nil.
func NewCompositor(fonts *FontSet, palette meme.Palette) (*Compositor, error) {
	if fonts == nil {
		var err error
		if fonts, err = DefaultFontSet(); err != nil {
			return nil, err
		}
	}
	if palette == nil {
		palette = meme.DefaultPalette
	}
	return &Compositor{
		text:    TextRenderer{Fonts: fonts},
		palette: palette,
	}, nil
}

// Composite renders state over bg, or over a blank 300x300 canvas when bg is
// nil. bg is never modified and the result is a fresh buffer. The only error
// source is font face construction.
func (c *Compositor) Composite(bg image.Image, state meme.State) (*meme.CompositedImage, error) {
	dc := gg.NewContextForImage(baseLayer(bg))

	style := c.palette.StyleOf(state)
	if err := c.text.Draw(dc, state.Text, state.Position, style); err != nil {
		return nil, fmt.Errorf("text render: %w", err)
	}

	rgba, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, errors.New("unexpected canvas type")
	}

	state.Background = bg
	return &meme.CompositedImage{Image: rgba, State: state}, nil
}

// CompositeBytes decodes the background from r first. When decoding fails the
// meme is still composed on the blank canvas and returned together with the
// *meme.DecodeError.
func (c *Compositor) CompositeBytes(r io.Reader, state meme.State) (*meme.CompositedImage, error) {
	bg, decodeErr := c.processor.Decode(r)

	out, err := c.Composite(bg, state)
	if err != nil {
		return nil, err
	}
	return out, decodeErr
}

// Bounds reports the canvas size a state will be composed on.
func Bounds(bg image.Image) meme.Bounds {
	if bg == nil {
		return meme.Bounds{Width: DefaultCanvasSize, Height: DefaultCanvasSize}
	}
	b := bg.Bounds()
	return meme.Bounds{Width: float64(b.Dx()), Height: float64(b.Dy())}
}
