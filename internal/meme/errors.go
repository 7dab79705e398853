package meme

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned when sharing is requested before anything was saved.
var ErrNotReady = errors.New("save the meme first")

// DecodeError reports an unreadable background. Callers still get a meme
// composed on the blank canvas.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode background: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError reports a failed write to the picture store. Saving again with
// the same state is safe.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
