package meme

import "image"

const MimePNG = "image/png"

// CompositedImage is the compositor's output together with the state that
// produced it.
type CompositedImage struct {
	Image *image.RGBA
	State State
}

func (c *CompositedImage) Width() int  { return c.Image.Bounds().Dx() }
func (c *CompositedImage) Height() int { return c.Image.Bounds().Dy() }

// Bounds returns the image size as drag bounds.
func (c *CompositedImage) Bounds() Bounds {
	return Bounds{Width: float64(c.Width()), Height: float64(c.Height())}
}

// Artifact is one encoded export, ready to be handed to storage or sharing.
type Artifact struct {
	Filename string
	Bytes    []byte
	MimeType string
}

// ShareDescriptor is what an OS share facility needs to send the artifact.
type ShareDescriptor struct {
	URI       string
	Path      string
	Filename  string
	MimeType  string
	GrantRead bool
	Title     string
}
