package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mymmrac/telego"

	"memeinator/internal/image"
	"memeinator/internal/meme"
)

// handlePhoto makes the uploaded picture the background. A caption, if any,
// becomes the meme text.
func (h *Handler) handlePhoto(ctx context.Context, msg *telego.Message) error {
	chatID := msg.Chat.ID

	fileID, err := extractFileID(msg)
	if err != nil {
		return h.fail(ctx, chatID, "no file", "❌ Photo required.", err)
	}

	localPath, cleanup, err := h.fileManager.DownloadToTemp(ctx, fileID)
	if err != nil {
		return h.fail(ctx, chatID, "download failed", "🚧 Error downloading image", err)
	}
	defer cleanup()

	var (
		decodeErr error
		bounds    meme.Bounds
	)
	_ = h.sessions.With(chatID, func(sess *meme.Session) error {
		decodeErr = h.memeService.SetImageFile(sess, localPath)
		if msg.Caption != "" {
			sess.State.SetText(msg.Caption)
		}
		bounds = image.Bounds(sess.State.Background)
		return nil
	})

	var de *meme.DecodeError
	if errors.As(decodeErr, &de) {
		h.logger.Printf("decode failed for chat %d: %v", chatID, decodeErr)
		return h.bot.SendText(ctx, chatID, "⚠️ Couldn't read that picture, using a blank canvas.")
	}
	if decodeErr != nil {
		return h.fail(ctx, chatID, "load failed", "🚧 Error loading image", decodeErr)
	}

	return h.bot.SendText(ctx, chatID, fmt.Sprintf("🖼️ Background set (%.0fx%.0f).", bounds.Width, bounds.Height))
}

func extractFileID(msg *telego.Message) (string, error) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, nil
	}
	if isImageDocument(msg.Document) {
		return msg.Document.FileID, nil
	}
	return "", fmt.Errorf("no file")
}

func hasPhoto(msg *telego.Message) bool {
	return len(msg.Photo) > 0 || isImageDocument(msg.Document)
}

func isImageDocument(doc *telego.Document) bool {
	return doc != nil && strings.HasPrefix(doc.MimeType, "image/")
}
