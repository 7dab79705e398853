package mobile

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"strings"
	"testing"
)

func newControl(t *testing.T) *MemeControl {
	t.Helper()
	mc, err := NewMemeControl(t.TempDir())
	if err != nil {
		t.Fatalf("NewMemeControl failed: %v", err)
	}
	return mc
}

func TestMemeControl_DragClamps(t *testing.T) {
	mc := newControl(t)
	mc.DragBy(-40, -40, 300, 300)
	mc.DragBy(1000, 1000, 300, 300)
	if mc.PositionX() != 250 || mc.PositionY() != 250 {
		t.Errorf("position = (%v,%v), want (250,250)", mc.PositionX(), mc.PositionY())
	}
}

func TestMemeControl_SpokenText(t *testing.T) {
	mc := newControl(t)
	if mc.SetSpokenText("") {
		t.Error("empty speech result should be ignored")
	}
	if !mc.SetSpokenText("hello world") {
		t.Error("speech result should be applied")
	}
	if mc.session.State.Text != "hello world" {
		t.Errorf("text = %q", mc.session.State.Text)
	}
}

func TestMemeControl_SaveAndShare(t *testing.T) {
	mc := newControl(t)

	if _, err := mc.ShareURI(); err == nil || err.Error() != "Save the meme first!" {
		t.Fatalf("ShareURI before Save: %v", err)
	}

	mc.SetText("Hi")
	mc.SetStyle(true, false, true)
	if err := mc.SetColor("yellow"); err != nil {
		t.Fatal(err)
	}
	mc.SetFontSize(5)

	path, err := mc.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 300 {
		t.Errorf("saved %dx%d", b.Dx(), b.Dy())
	}

	uri, err := mc.ShareURI()
	if err != nil {
		t.Fatalf("ShareURI failed: %v", err)
	}
	if !strings.HasPrefix(uri, "file://") {
		t.Errorf("uri = %q", uri)
	}

	mc.Reset()
	if _, err := mc.ShareURI(); err == nil {
		t.Error("Reset should forget the saved meme")
	}
}

func TestMemeControl_ImageAndPreview(t *testing.T) {
	mc := newControl(t)

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 800, 400))); err != nil {
		t.Fatal(err)
	}
	if err := mc.SetImage(buf.Bytes()); err != nil {
		t.Fatalf("SetImage failed: %v", err)
	}

	data, err := mc.Preview(200)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("preview %dx%d, want 200x100", b.Dx(), b.Dy())
	}

	if err := mc.SetImage([]byte("junk")); err == nil {
		t.Error("expected decode error")
	}
	if err := mc.SetColor("plaid"); err == nil {
		t.Error("expected color error")
	}
	if err := mc.SetImage(nil); err != nil {
		t.Errorf("clearing the image failed: %v", err)
	}
}
