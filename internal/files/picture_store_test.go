package files

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"memeinator/internal/meme"
)

func TestPictureStore_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Pictures")
	ps := NewPictureStore(dir)
	a := &meme.Artifact{Filename: "meme_1.png", Bytes: []byte("png bytes"), MimeType: meme.MimePNG}

	path, err := ps.Write(a)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != filepath.Join(dir, "meme_1.png") {
		t.Errorf("path = %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(got, a.Bytes) {
		t.Errorf("stored %q, %v", got, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the artifact in %s, found %d entries", dir, len(entries))
	}

	f, err := ps.Open("meme_1.png")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	f.Close()
}

func TestPictureStore_WriteKeepsNameInsideDir(t *testing.T) {
	dir := t.TempDir()
	ps := NewPictureStore(dir)

	path, err := ps.Write(&meme.Artifact{Filename: "../../escape.png", Bytes: []byte("x")})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("artifact written outside store: %q", path)
	}
}

func TestPictureStore_WriteError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}

	ps := NewPictureStore(blocker)
	_, err := ps.Write(&meme.Artifact{Filename: "meme_1.png", Bytes: []byte("x")})

	var writeErr *meme.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if writeErr.Path != filepath.Join(blocker, "meme_1.png") {
		t.Errorf("WriteError.Path = %q", writeErr.Path)
	}
}
