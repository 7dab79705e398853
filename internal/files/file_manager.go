package files

import (
	"context"
)

// FileManager fetches user uploads (background pictures) to local temp files.
type FileManager interface {
	DownloadToTemp(ctx context.Context, fileID string) (localPath string, cleanup func(), err error)
}
