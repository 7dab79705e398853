package files

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"memeinator/internal/bot"
)

type telegramFileManager struct {
	client     bot.Bot
	httpClient *http.Client
	tempDir    string
	maxSize    int64
}

func NewTelegramFileManager(client bot.Bot, tempDir string, maxSize int64) (FileManager, error) {
	if tempDir == "" {
		tempDir = "temp"
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	return &telegramFileManager{
		client:     client,
		httpClient: http.DefaultClient,
		tempDir:    tempDir,
		maxSize:    maxSize,
	}, nil
}

func (fm *telegramFileManager) DownloadToTemp(ctx context.Context, fileID string) (string, func(), error) {
	tf, err := fm.client.GetFile(ctx, fileID)
	if err != nil {
		return "", nil, fmt.Errorf("GetFile error: %w", err)
	}
	if tf == nil || tf.FilePath == "" {
		return "", nil, fmt.Errorf("invalid file info from telegram for id %s", fileID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fm.client.FileDownloadURL(tf.FilePath), nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := fm.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", nil, fmt.Errorf("download failed: status %s, body: %s", resp.Status, string(body))
	}

	out, err := os.CreateTemp(fm.tempDir, "bg-*"+filepath.Ext(tf.FilePath))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create local file: %w", err)
	}
	localName := out.Name()

	var src io.Reader = resp.Body
	if fm.maxSize > 0 {
		src = io.LimitReader(resp.Body, fm.maxSize+1)
	}
	n, err := io.Copy(out, src)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err == nil && fm.maxSize > 0 && n > fm.maxSize {
		err = fmt.Errorf("file is larger than %d bytes", fm.maxSize)
	}
	if err != nil {
		_ = os.Remove(localName)
		return "", nil, fmt.Errorf("failed to save downloaded file: %w", err)
	}

	cleanup := func() {
		_ = os.Remove(localName)
	}

	return localName, cleanup, nil
}
