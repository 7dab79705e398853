package files

import (
	"fmt"
	"os"
	"path/filepath"

	"memeinator/internal/meme"
)

// PictureStore writes exported memes into one directory.
type PictureStore struct {
	dir string
}

func NewPictureStore(dir string) *PictureStore {
	if dir == "" {
		dir = "pictures"
	}
	return &PictureStore{dir: dir}
}

func (ps *PictureStore) Dir() string {
	return ps.dir
}

// Write stores the artifact and returns its path. Any failure is a
// *meme.WriteError; nothing is left behind on failure.
func (ps *PictureStore) Write(artifact *meme.Artifact) (string, error) {
	path := filepath.Join(ps.dir, filepath.Base(artifact.Filename))

	if err := os.MkdirAll(ps.dir, 0755); err != nil {
		return "", &meme.WriteError{Path: path, Err: fmt.Errorf("failed to create pictures dir: %w", err)}
	}

	tmp, err := os.CreateTemp(ps.dir, ".meme-*.tmp")
	if err != nil {
		return "", &meme.WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(artifact.Bytes)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return "", &meme.WriteError{Path: path, Err: err}
	}

	return path, nil
}

// Open returns the stored file with the given name.
func (ps *PictureStore) Open(name string) (*os.File, error) {
	return os.Open(filepath.Join(ps.dir, filepath.Base(name)))
}
