// Package share serves saved memes over HTTP so share descriptors can point
// at a public URL.
package share

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"memeinator/internal/export"
	"memeinator/internal/meme"
)

// Pictures opens stored memes by file name.
type Pictures interface {
	Open(name string) (*os.File, error)
}

type Server struct {
	pictures Pictures
	logger   *log.Logger
	router   chi.Router
}

func NewServer(pictures Pictures, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{pictures: pictures, logger: logger}

	r := chi.NewRouter()
	r.Get("/memes/{name}", s.handleMeme)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleMeme(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !export.ValidFilename(name) {
		http.NotFound(w, r)
		return
	}

	f, err := s.pictures.Open(name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Printf("open %s: %v", name, err)
		}
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	var modTime time.Time
	if st, err := f.Stat(); err == nil {
		modTime = st.ModTime()
	}

	w.Header().Set("Content-Type", meme.MimePNG)
	w.Header().Set("Content-Disposition", `inline; filename="`+name+`"`)
	http.ServeContent(w, r, name, modTime, f)
}

// ListenAndServe runs the server on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("Share server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
