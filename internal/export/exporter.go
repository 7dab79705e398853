package export

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strconv"
	"sync"
	"time"

	"memeinator/internal/meme"
)

const FilenamePrefix = "meme_"

// Exporter encodes composited memes to PNG and names them. Tokens are Unix
// milliseconds, bumped when needed so every export of one Exporter gets a
// strictly larger token than the previous one.
type Exporter struct {
	now     func() time.Time
	encoder png.Encoder

	mu   sync.Mutex
	last int64
}

func NewExporter() *Exporter {
	return NewExporterWithClock(time.Now)
}

func NewExporterWithClock(now func() time.Time) *Exporter {
	return &Exporter{
		now:     now,
		encoder: png.Encoder{CompressionLevel: png.DefaultCompression},
	}
}

func (e *Exporter) Export(img *meme.CompositedImage) (*meme.Artifact, error) {
	if img == nil || img.Image == nil {
		return nil, errors.New("nothing to export")
	}

	var buf bytes.Buffer
	if err := e.encoder.Encode(&buf, img.Image); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return &meme.Artifact{
		Filename: Filename(e.nextToken()),
		Bytes:    buf.Bytes(),
		MimeType: meme.MimePNG,
	}, nil
}

func (e *Exporter) nextToken() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	token := e.now().UnixMilli()
	if token <= e.last {
		token = e.last + 1
	}
	e.last = token
	return token
}

func Filename(token int64) string {
	return FilenamePrefix + strconv.FormatInt(token, 10) + ".png"
}
