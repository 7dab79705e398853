package handlers

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mymmrac/telego"

	"memeinator/internal/bot"
	"memeinator/internal/export"
	"memeinator/internal/files"
	memeimage "memeinator/internal/image"
	"memeinator/internal/meme"
	"memeinator/internal/services"
	"memeinator/internal/storage"
)

type fakeBot struct {
	mu        sync.Mutex
	texts     []string
	menus     int
	photos    []string
	documents []string
}

func (b *fakeBot) Start(context.Context, func(context.Context, telego.Update)) error { return nil }

func (b *fakeBot) SendText(_ context.Context, _ int64, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.texts = append(b.texts, text)
	return nil
}

func (b *fakeBot) ShowMenu(_ context.Context, _ int64, text string, _ [][]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.menus++
	b.texts = append(b.texts, text)
	return nil
}

func (b *fakeBot) SendPhoto(_ context.Context, _ int64, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := os.Stat(path); err != nil {
		return err
	}
	b.photos = append(b.photos, path)
	return nil
}

func (b *fakeBot) SendDocument(_ context.Context, _ int64, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.documents = append(b.documents, path)
	return nil
}

func (b *fakeBot) SendChatAction(context.Context, int64, string) error { return nil }

func (b *fakeBot) SendFileAuto(ctx context.Context, chatID int64, path string) error {
	return b.SendPhoto(ctx, chatID, path)
}

func (b *fakeBot) GetFile(context.Context, string) (*bot.File, error) { return nil, nil }

func (b *fakeBot) FileDownloadURL(string) string { return "" }

func (b *fakeBot) lastText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.texts) == 0 {
		return ""
	}
	return b.texts[len(b.texts)-1]
}

type fakeFiles struct {
	data []byte
	dir  string
}

func (f *fakeFiles) DownloadToTemp(context.Context, string) (string, func(), error) {
	path := filepath.Join(f.dir, "upload.png")
	if err := os.WriteFile(path, f.data, 0o644); err != nil {
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}

type harness struct {
	handler  *Handler
	bot      *fakeBot
	files    *fakeFiles
	sessions *storage.SessionStore
	pictures string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	c, err := memeimage.NewCompositor(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard, "", 0)
	pictures := t.TempDir()
	svc := services.NewMemeService(c, export.NewExporter(), files.NewPictureStore(pictures), "", logger)

	h := &harness{
		bot:      &fakeBot{},
		files:    &fakeFiles{dir: t.TempDir()},
		sessions: storage.NewSessionStore(),
		pictures: pictures,
	}
	h.handler = NewHandler(svc, h.bot, h.files, h.sessions, t.TempDir(), 256, logger)
	return h
}

func (h *harness) send(text string) {
	h.handler.HandleUpdate(context.Background(), telego.Update{
		Message: &telego.Message{Chat: telego.Chat{ID: 1}, Text: text},
	})
}

func (h *harness) sendPhoto(caption string, data []byte) {
	h.files.data = data
	h.handler.HandleUpdate(context.Background(), telego.Update{
		Message: &telego.Message{
			Chat:    telego.Chat{ID: 1},
			Caption: caption,
			Photo:   []telego.PhotoSize{{FileID: "small"}, {FileID: "large"}},
		},
	})
}

func (h *harness) state() meme.State {
	var s meme.State
	_ = h.sessions.With(1, func(sess *meme.Session) error {
		s = sess.State
		return nil
	})
	return s
}

func TestHandler_StyleCommands(t *testing.T) {
	h := newHarness(t)

	h.send("/start")
	if h.bot.menus != 1 {
		t.Fatalf("menus = %d, want 1", h.bot.menus)
	}

	h.send("Hello meme")
	h.send(buttonBold)
	h.send("/italic")
	h.send("/underline")
	h.send("/size 100")
	h.send("/color magenta")

	s := h.state()
	if s.Text != "Hello meme" || !s.Bold || !s.Italic || !s.Underline {
		t.Errorf("unexpected state %+v", s)
	}
	if s.FontSize != meme.MaxFontSize {
		t.Errorf("FontSize = %v, want clamped to 72", s.FontSize)
	}
	if s.Color != meme.Magenta {
		t.Errorf("Color = %v", s.Color)
	}
	if !strings.Contains(h.bot.lastText(), "magenta") {
		t.Errorf("summary = %q", h.bot.lastText())
	}

	h.send("/color teal")
	if !strings.HasPrefix(h.bot.lastText(), "❌") {
		t.Errorf("expected error reply, got %q", h.bot.lastText())
	}
	h.send("/size big")
	if h.state().FontSize != meme.MaxFontSize {
		t.Error("bad /size changed the font size")
	}
}

func TestHandler_MoveClampsToCanvas(t *testing.T) {
	h := newHarness(t)
	h.send("/move -40 -40")
	h.send("/move 1000 1000")

	if got := h.state().Position; got != (meme.Position{X: 250, Y: 250}) {
		t.Errorf("position = %v, want (250,250)", got)
	}
	if !strings.Contains(h.bot.lastText(), "(250, 250)") {
		t.Errorf("reply = %q", h.bot.lastText())
	}

	h.send("/move 5")
	if !strings.Contains(h.bot.lastText(), "usage") {
		t.Errorf("reply = %q", h.bot.lastText())
	}
}

func TestHandler_RejectsNonFiniteNumbers(t *testing.T) {
	h := newHarness(t)
	before := h.state()

	for _, cmd := range []string{"/move NaN 0", "/move 0 +Inf", "/size NaN", "/size -Inf"} {
		h.send(cmd)
		if !strings.HasPrefix(h.bot.lastText(), "❌") {
			t.Errorf("%s: reply = %q", cmd, h.bot.lastText())
		}
	}
	if s := h.state(); s.Position != before.Position || s.FontSize != before.FontSize {
		t.Errorf("state changed to %v / %v", s.Position, s.FontSize)
	}

	h.send("/move -10 5")
	if got := h.state().Position; got != (meme.Position{X: 40, Y: 55}) {
		t.Errorf("position = %v, want (40,55)", got)
	}
}

func TestHandler_ShareRequiresSave(t *testing.T) {
	h := newHarness(t)

	h.send(buttonShare)
	if h.bot.lastText() != msgNotReady {
		t.Fatalf("reply = %q, want %q", h.bot.lastText(), msgNotReady)
	}
	if len(h.bot.documents) != 0 {
		t.Error("nothing should be sent before saving")
	}

	h.send("/save")
	if len(h.bot.photos) != 1 {
		t.Fatalf("photos sent = %d, want 1", len(h.bot.photos))
	}
	if filepath.Dir(h.bot.photos[0]) != h.pictures {
		t.Errorf("saved outside pictures dir: %s", h.bot.photos[0])
	}
	if !export.ValidFilename(filepath.Base(h.bot.photos[0])) {
		t.Errorf("bad filename %s", h.bot.photos[0])
	}

	h.send("/share")
	if len(h.bot.documents) != 1 || h.bot.documents[0] != h.bot.photos[0] {
		t.Errorf("shared %v, want the saved file", h.bot.documents)
	}
	if !strings.Contains(h.bot.lastText(), "file://") {
		t.Errorf("reply = %q", h.bot.lastText())
	}
}

func TestHandler_PhotoSetsBackground(t *testing.T) {
	h := newHarness(t)

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 640, 480))); err != nil {
		t.Fatal(err)
	}
	h.sendPhoto("Caption text", buf.Bytes())

	s := h.state()
	if s.Background == nil {
		t.Fatal("background not set")
	}
	if s.Text != "Caption text" {
		t.Errorf("text = %q", s.Text)
	}
	if !strings.Contains(h.bot.lastText(), "640x480") {
		t.Errorf("reply = %q", h.bot.lastText())
	}

	h.sendPhoto("", []byte("not an image"))
	if h.state().Background != nil {
		t.Error("corrupt upload should fall back to the blank canvas")
	}
	if !strings.Contains(h.bot.lastText(), "blank canvas") {
		t.Errorf("reply = %q", h.bot.lastText())
	}
}

func TestHandler_IgnoresNonImageDocument(t *testing.T) {
	h := newHarness(t)

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 120, 80))); err != nil {
		t.Fatal(err)
	}
	h.sendPhoto("", buf.Bytes())

	h.files.data = []byte("%PDF-1.7")
	h.handler.HandleUpdate(context.Background(), telego.Update{
		Message: &telego.Message{
			Chat:     telego.Chat{ID: 1},
			Document: &telego.Document{FileID: "doc", MimeType: "application/pdf"},
		},
	})
	if h.bot.lastText() != msgNotImage {
		t.Errorf("reply = %q", h.bot.lastText())
	}
	if bg := h.state().Background; bg == nil || bg.Bounds().Dx() != 120 {
		t.Error("a PDF must not replace the background")
	}

	var small bytes.Buffer
	if err := png.Encode(&small, image.NewRGBA(image.Rect(0, 0, 60, 40))); err != nil {
		t.Fatal(err)
	}
	h.files.data = small.Bytes()
	h.handler.HandleUpdate(context.Background(), telego.Update{
		Message: &telego.Message{
			Chat:     telego.Chat{ID: 1},
			Document: &telego.Document{FileID: "img", MimeType: "image/png"},
		},
	})
	if bg := h.state().Background; bg == nil || bg.Bounds().Dx() != 60 {
		t.Error("an image document should become the background")
	}
}

func TestHandler_Preview(t *testing.T) {
	h := newHarness(t)
	h.send(buttonPreview)

	if len(h.bot.photos) != 1 {
		t.Fatalf("photos sent = %d, want 1", len(h.bot.photos))
	}
	if _, err := os.Stat(h.bot.photos[0]); !os.IsNotExist(err) {
		t.Error("preview temp file should be removed after sending")
	}
	h.send("/share")
	if h.bot.lastText() != msgNotReady {
		t.Error("preview must not enable sharing")
	}
}

func TestHandler_BusyAndUnknown(t *testing.T) {
	h := newHarness(t)

	h.sessions.TryStart(1)
	h.send("/save")
	if h.bot.lastText() != msgBusy {
		t.Errorf("reply = %q, want busy", h.bot.lastText())
	}
	h.sessions.Finish(1)

	h.send("/frobnicate")
	if h.bot.lastText() != msgUsage {
		t.Errorf("reply = %q", h.bot.lastText())
	}

	before := len(h.bot.texts)
	h.handler.HandleUpdate(context.Background(), telego.Update{})
	h.send("   ")
	if len(h.bot.texts) != before {
		t.Error("empty updates should be ignored")
	}
}

func TestHandler_ResetDropsSession(t *testing.T) {
	h := newHarness(t)
	h.send("keep me?")
	h.send("/save")
	h.send(buttonReset)

	if s := h.state(); s.Text != meme.DefaultText {
		t.Errorf("text = %q after reset", s.Text)
	}
	h.send("/share")
	if h.bot.lastText() != msgNotReady {
		t.Error("reset should forget the saved meme")
	}
}
