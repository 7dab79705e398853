package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"

	"memeinator/internal/bot"
	"memeinator/internal/files"
	"memeinator/internal/meme"
	"memeinator/internal/services"
	"memeinator/internal/storage"
)

const (
	buttonBold      = "🅱️ Bold"
	buttonItalic    = "🔤 Italic"
	buttonUnderline = "〰️ Underline"
	buttonPreview   = "👀 Preview"
	buttonSave      = "💾 Save"
	buttonShare     = "📤 Share"
	buttonReset     = "🧹 Reset"
)

var menuRows = [][]string{
	{buttonBold, buttonItalic, buttonUnderline},
	{buttonPreview, buttonSave, buttonShare},
	{buttonReset},
}

const (
	msgWelcome  = "🖼️ Send a picture, type your meme text, then hit Save.\nCommands: /size 12-72, /color white|black|red|yellow|blue|green|magenta, /move dx dy"
	msgNotReady = "❌ Save the meme first!"
	msgBusy     = "😵‍💫 Slow down, I'm already meminatin' it!"
	msgUsage    = "🤔 Unknown command. Try /start."
	msgNotImage = "❌ That file is not a picture."
)

type Handler struct {
	memeService *services.MemeService
	bot         bot.Bot
	fileManager files.FileManager
	sessions    *storage.SessionStore
	tempDir     string
	previewSize int
	logger      *log.Logger
}

func NewHandler(
	memeService *services.MemeService,
	bot bot.Bot,
	fileManager files.FileManager,
	sessions *storage.SessionStore,
	tempDir string,
	previewSize int,
	logger *log.Logger,
) *Handler {
	return &Handler{
		memeService: memeService,
		bot:         bot,
		fileManager: fileManager,
		sessions:    sessions,
		tempDir:     tempDir,
		previewSize: previewSize,
		logger:      logger,
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update telego.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID

	if hasPhoto(msg) {
		_ = h.handlePhoto(ctx, msg)
		return
	}
	if msg.Document != nil {
		_ = h.bot.SendText(ctx, chatID, msgNotImage)
		return
	}

	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return
	}

	switch cmd := fields[0]; {
	case cmd == "/start":
		h.sessions.Drop(chatID)
		_ = h.bot.ShowMenu(ctx, chatID, msgWelcome, menuRows)
	case cmd == "/reset" || msg.Text == buttonReset:
		h.sessions.Drop(chatID)
		_ = h.bot.SendText(ctx, chatID, "🧹 Fresh meme, blank canvas.")
	case cmd == "/bold" || msg.Text == buttonBold:
		h.edit(ctx, chatID, func(s *meme.State) error { s.ToggleBold(); return nil })
	case cmd == "/italic" || msg.Text == buttonItalic:
		h.edit(ctx, chatID, func(s *meme.State) error { s.ToggleItalic(); return nil })
	case cmd == "/underline" || msg.Text == buttonUnderline:
		h.edit(ctx, chatID, func(s *meme.State) error { s.ToggleUnderline(); return nil })
	case cmd == "/size":
		h.edit(ctx, chatID, func(s *meme.State) error {
			pt, err := parseArgs(fields, 1)
			if err != nil {
				return err
			}
			s.SetFontSize(pt[0])
			return nil
		})
	case cmd == "/color":
		h.edit(ctx, chatID, func(s *meme.State) error {
			if len(fields) != 2 {
				return errors.New("usage: /color red")
			}
			c, err := meme.ParseColor(fields[1])
			if err != nil {
				return err
			}
			s.SetColor(c)
			return nil
		})
	case cmd == "/move":
		h.move(ctx, chatID, fields)
	case cmd == "/preview" || msg.Text == buttonPreview:
		_ = h.withProcessing(ctx, chatID, func() error { return h.sendPreview(ctx, chatID) })
	case cmd == "/save" || msg.Text == buttonSave:
		_ = h.withProcessing(ctx, chatID, func() error { return h.save(ctx, chatID) })
	case cmd == "/share" || msg.Text == buttonShare:
		_ = h.withProcessing(ctx, chatID, func() error { return h.share(ctx, chatID) })
	case strings.HasPrefix(cmd, "/"):
		_ = h.bot.SendText(ctx, chatID, msgUsage)
	default:
		h.edit(ctx, chatID, func(s *meme.State) error { s.SetText(msg.Text); return nil })
	}
}

// edit applies fn to the chat's state and answers with the new settings.
func (h *Handler) edit(ctx context.Context, chatID int64, fn func(*meme.State) error) {
	var summary string
	err := h.sessions.With(chatID, func(sess *meme.Session) error {
		if err := fn(&sess.State); err != nil {
			return err
		}
		summary = describe(sess.State)
		return nil
	})
	if err != nil {
		_ = h.bot.SendText(ctx, chatID, "❌ "+err.Error())
		return
	}
	_ = h.bot.SendText(ctx, chatID, summary)
}

func (h *Handler) move(ctx context.Context, chatID int64, fields []string) {
	d, err := parseArgs(fields, 2)
	if err != nil {
		_ = h.bot.SendText(ctx, chatID, "❌ usage: /move dx dy")
		return
	}

	var pos meme.Position
	_ = h.sessions.With(chatID, func(sess *meme.Session) error {
		pos = h.memeService.DragBy(sess, d[0], d[1])
		return nil
	})
	_ = h.bot.SendText(ctx, chatID, fmt.Sprintf("↔️ Text moved to (%.0f, %.0f).", pos.X, pos.Y))
}

func (h *Handler) sendPreview(ctx context.Context, chatID int64) error {
	var data []byte
	err := h.sessions.With(chatID, func(sess *meme.Session) error {
		var err error
		data, err = h.memeService.Preview(sess, h.previewSize)
		return err
	})
	if err != nil {
		return h.fail(ctx, chatID, "preview failed", "🚧 Error while previewing.", err)
	}

	f, err := os.CreateTemp(h.tempDir, "preview-*.png")
	if err != nil {
		return h.fail(ctx, chatID, "preview temp file", "🚧 Error while previewing.", err)
	}
	path := f.Name()
	defer os.Remove(path)

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return h.fail(ctx, chatID, "preview write", "🚧 Error while previewing.", err)
	}

	return h.bot.SendPhoto(ctx, chatID, path)
}

func (h *Handler) save(ctx context.Context, chatID int64) error {
	_ = h.bot.SendChatAction(ctx, chatID, "upload_photo")

	var saved *services.Saved
	err := h.sessions.With(chatID, func(sess *meme.Session) error {
		var err error
		saved, err = h.memeService.Save(sess)
		return err
	})
	if err != nil {
		var writeErr *meme.WriteError
		if errors.As(err, &writeErr) {
			return h.fail(ctx, chatID, "save failed", "🚧 Could not store the meme, try Save again.", err)
		}
		return h.fail(ctx, chatID, "save failed", "🚧 Error while meminating.", err)
	}

	if err := h.bot.SendFileAuto(ctx, chatID, saved.Location); err != nil {
		return h.fail(ctx, chatID, "send error", "🚧 Error sending result", err)
	}
	return h.bot.SendText(ctx, chatID, "✅ Meme saved as "+filepath.Base(saved.Location))
}

func (h *Handler) share(ctx context.Context, chatID int64) error {
	var (
		desc     *meme.ShareDescriptor
		location string
	)
	err := h.sessions.With(chatID, func(sess *meme.Session) error {
		var err error
		if desc, err = h.memeService.Share(sess); err != nil {
			return err
		}
		_, location = sess.LastExport()
		return nil
	})
	if errors.Is(err, meme.ErrNotReady) {
		return h.bot.SendText(ctx, chatID, msgNotReady)
	}
	if err != nil {
		return h.fail(ctx, chatID, "share failed", "🚧 Error while sharing.", err)
	}

	if err := h.bot.SendDocument(ctx, chatID, location); err != nil {
		return h.fail(ctx, chatID, "share send error", "🚧 Error while sharing.", err)
	}
	return h.bot.SendText(ctx, chatID, "📤 "+desc.Title+": "+desc.URI)
}

func (h *Handler) withProcessing(ctx context.Context, chatID int64, fn func() error) error {
	if !h.sessions.TryStart(chatID) {
		_ = h.bot.SendText(ctx, chatID, msgBusy)
		return fmt.Errorf("already processing")
	}
	defer h.sessions.Finish(chatID)
	return fn()
}

func (h *Handler) fail(ctx context.Context, chatID int64, logMsg, userMsg string, err error) error {
	h.logger.Printf("%s: %v", logMsg, err)
	_ = h.bot.SendText(ctx, chatID, userMsg)
	return err
}

func parseArgs(fields []string, n int) ([]float64, error) {
	if len(fields) != n+1 {
		return nil, fmt.Errorf("expected %d number(s)", n)
	}
	out := make([]float64, n)
	for i := range out {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("not a number: %s", fields[i+1])
		}
		out[i] = v
	}
	return out, nil
}

func describe(s meme.State) string {
	var flags []string
	if s.Bold {
		flags = append(flags, "bold")
	}
	if s.Italic {
		flags = append(flags, "italic")
	}
	if s.Underline {
		flags = append(flags, "underline")
	}
	style := "regular"
	if len(flags) > 0 {
		style = strings.Join(flags, "+")
	}
	return fmt.Sprintf("✏️ %q · %.0fpt %s %s · at (%.0f, %.0f)",
		s.Text, s.FontSize, s.Color, style, s.Position.X, s.Position.Y)
}
