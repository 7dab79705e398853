package services

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"log"
	"strings"

	"memeinator/internal/export"
	"memeinator/internal/image"
	"memeinator/internal/meme"
)

// PictureSink persists exported artifacts and reports where they went.
type PictureSink interface {
	Write(artifact *meme.Artifact) (string, error)
}

type Saved struct {
	Artifact *meme.Artifact
	Location string
}

type MemeService struct {
	compositor   *image.Compositor
	processor    *image.Processor
	exporter     *export.Exporter
	sink         PictureSink
	shareBaseURL string
	logger       *log.Logger
}

func NewMemeService(
	compositor *image.Compositor,
	exporter *export.Exporter,
	sink PictureSink,
	shareBaseURL string,
	logger *log.Logger,
) *MemeService {
	if logger == nil {
		logger = log.Default()
	}
	return &MemeService{
		compositor:   compositor,
		processor:    &image.Processor{},
		exporter:     exporter,
		sink:         sink,
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
		logger:       logger,
	}
}

// SetImage decodes a new background. On a decode failure the session falls
// back to the blank canvas and the *meme.DecodeError is returned.
func (s *MemeService) SetImage(sess *meme.Session, r io.Reader) error {
	img, err := s.processor.Decode(r)
	if err != nil {
		sess.State.SetImage(nil)
		s.logger.Printf("background decode failed, using blank canvas: %v", err)
		return err
	}
	sess.State.SetImage(img)
	return nil
}

func (s *MemeService) SetImageFile(sess *meme.Session, path string) error {
	img, err := s.processor.DecodeFile(path)
	if err != nil {
		sess.State.SetImage(nil)
		s.logger.Printf("background load failed, using blank canvas: %v", err)
		return err
	}
	sess.State.SetImage(img)
	return nil
}

// DragBy moves the overlay within the current canvas.
func (s *MemeService) DragBy(sess *meme.Session, dx, dy float64) meme.Position {
	return sess.State.DragBy(meme.Position{X: dx, Y: dy}, image.Bounds(sess.State.Background))
}

func (s *MemeService) Compose(sess *meme.Session) (*meme.CompositedImage, error) {
	return s.compositor.Composite(sess.State.Background, sess.State)
}

// Preview renders the same composite as Save, scaled down to maxSide, as PNG.
func (s *MemeService) Preview(sess *meme.Session, maxSide int) ([]byte, error) {
	composed, err := s.Compose(sess)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, s.processor.Thumbnail(composed.Image, maxSide)); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// Save composes, exports and stores the meme. A failed store write returns a
// *meme.WriteError and keeps the previously saved artifact.
func (s *MemeService) Save(sess *meme.Session) (*Saved, error) {
	composed, err := s.Compose(sess)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}

	artifact, err := s.exporter.Export(composed)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	location, err := s.sink.Write(artifact)
	if err != nil {
		return nil, err
	}

	sess.Record(artifact, location)
	s.logger.Printf("saved %s (%d bytes)", location, len(artifact.Bytes))
	return &Saved{Artifact: artifact, Location: location}, nil
}

// Share describes the last saved meme for a share facility, or returns
// meme.ErrNotReady when nothing was saved yet.
func (s *MemeService) Share(sess *meme.Session) (*meme.ShareDescriptor, error) {
	artifact, location := sess.LastExport()
	if artifact != nil && s.shareBaseURL != "" {
		location = s.shareBaseURL + "/memes/" + artifact.Filename
	}
	return export.PrepareShare(artifact, location)
}
