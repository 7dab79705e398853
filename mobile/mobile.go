// Package mobile exposes the meme editor to an Android front end through
// gomobile bind. Only gomobile-friendly types cross the boundary.
package mobile

import (
	"bytes"
	"errors"
	"log"
	"sync"

	"memeinator/internal/export"
	"memeinator/internal/files"
	"memeinator/internal/image"
	"memeinator/internal/meme"
	"memeinator/internal/services"
)

// MemeControl owns one editing session. Calls are serialized, so the UI may
// invoke it from any thread.
type MemeControl struct {
	mu      sync.Mutex
	service *services.MemeService
	session *meme.Session
}

// NewMemeControl stores exports under picturesDir, typically the app's
// external Pictures directory.
func NewMemeControl(picturesDir string) (*MemeControl, error) {
	compositor, err := image.NewCompositor(nil, nil)
	if err != nil {
		return nil, err
	}
	return &MemeControl{
		service: services.NewMemeService(
			compositor,
			export.NewExporter(),
			files.NewPictureStore(picturesDir),
			"",
			log.Default(),
		),
		session: meme.NewSession(),
	}, nil
}

func (mc *MemeControl) update(fn func(*meme.State)) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	fn(&mc.session.State)
}

func (mc *MemeControl) SetText(text string) {
	mc.update(func(s *meme.State) { s.SetText(text) })
}

// SetSpokenText applies a speech recognizer result; empty means no result.
func (mc *MemeControl) SetSpokenText(text string) bool {
	var applied bool
	mc.update(func(s *meme.State) {
		if text != "" {
			applied = s.ApplySpokenText([]string{text})
		}
	})
	return applied
}

func (mc *MemeControl) SetFontSize(pt float64) {
	mc.update(func(s *meme.State) { s.SetFontSize(pt) })
}

func (mc *MemeControl) SetColor(name string) error {
	c, err := meme.ParseColor(name)
	if err != nil {
		return err
	}
	mc.update(func(s *meme.State) { s.SetColor(c) })
	return nil
}

func (mc *MemeControl) SetStyle(bold, italic, underline bool) {
	mc.update(func(s *meme.State) { s.SetStyle(bold, italic, underline) })
}

func (mc *MemeControl) ToggleBold()      { mc.update(func(s *meme.State) { s.ToggleBold() }) }
func (mc *MemeControl) ToggleItalic()    { mc.update(func(s *meme.State) { s.ToggleItalic() }) }
func (mc *MemeControl) ToggleUnderline() { mc.update(func(s *meme.State) { s.ToggleUnderline() }) }

// DragBy moves the overlay inside the visible width x height area.
func (mc *MemeControl) DragBy(dx, dy, width, height float64) {
	mc.update(func(s *meme.State) {
		s.DragBy(meme.Position{X: dx, Y: dy}, meme.Bounds{Width: width, Height: height})
	})
}

func (mc *MemeControl) PositionX() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.session.State.Position.X
}

func (mc *MemeControl) PositionY() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.session.State.Position.Y
}

// SetImage decodes picked image bytes. Empty data clears the background. A
// decode error is returned, but the editor keeps working on a blank canvas.
func (mc *MemeControl) SetImage(data []byte) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if len(data) == 0 {
		mc.session.State.SetImage(nil)
		return nil
	}
	return mc.service.SetImage(mc.session, bytes.NewReader(data))
}

// Preview returns PNG bytes of the current meme scaled to maxSide.
func (mc *MemeControl) Preview(maxSide int) ([]byte, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.service.Preview(mc.session, maxSide)
}

// Save exports the meme and returns the stored file path.
func (mc *MemeControl) Save() (string, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	saved, err := mc.service.Save(mc.session)
	if err != nil {
		return "", err
	}
	return saved.Location, nil
}

// ShareURI returns the URI of the last saved meme. The error message is
// meant for the user when nothing was saved yet.
func (mc *MemeControl) ShareURI() (string, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	d, err := mc.service.Share(mc.session)
	if errors.Is(err, meme.ErrNotReady) {
		return "", errors.New("Save the meme first!")
	}
	if err != nil {
		return "", err
	}
	return d.URI, nil
}

func (mc *MemeControl) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.session.Reset()
}
