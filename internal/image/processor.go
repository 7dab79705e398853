package image

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"memeinator/internal/meme"
)

const DefaultCanvasSize = 300

// BlankCanvasColor matches the gray behind the on-screen preview.
var BlankCanvasColor = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}

type Processor struct{}

// Decode reads PNG, JPEG, GIF, BMP or TIFF data and applies EXIF
// orientation, so phone photos come out upright.
func (p *Processor) Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &meme.DecodeError{Err: err}
	}
	return img, nil
}

func (p *Processor) DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	return p.Decode(f)
}

// Thumbnail shrinks img to fit in a maxSide square, keeping aspect ratio.
// Smaller images are returned as is.
func (p *Processor) Thumbnail(img image.Image, maxSide int) image.Image {
	if maxSide <= 0 {
		return img
	}
	return resize.Thumbnail(uint(maxSide), uint(maxSide), img, resize.Lanczos3)
}

// BlankCanvas returns an opaque w x h image filled with c.
func BlankCanvas(w, h int, c color.Color) image.Image {
	return imaging.New(w, h, c)
}

// baseLayer returns a zero-origin base image. gg copies it before drawing.
func baseLayer(bg image.Image) image.Image {
	if bg == nil {
		return BlankCanvas(DefaultCanvasSize, DefaultCanvasSize, BlankCanvasColor)
	}
	if bg.Bounds().Min != (image.Point{}) {
		return imaging.Clone(bg)
	}
	return bg
}
