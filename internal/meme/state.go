package meme

import (
	"fmt"
	"image"
	"strings"
)

const (
	MinFontSize = 12.0
	MaxFontSize = 72.0

	DefaultText     = "When Go hits different!"
	DefaultFontSize = 24.0
)

type Color int

const (
	White Color = iota
	Black
	Red
	Yellow
	Blue
	Green
	Magenta
)

var colorNames = []string{"white", "black", "red", "yellow", "blue", "green", "magenta"}

// Colors lists every swatch in menu order.
func Colors() []Color {
	return []Color{White, Black, Red, Yellow, Blue, Green, Magenta}
}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return fmt.Sprintf("color(%d)", int(c))
	}
	return colorNames[c]
}

// ParseColor maps a case-insensitive swatch name to its Color.
func ParseColor(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, cn := range colorNames {
		if cn == n {
			return Color(i), nil
		}
	}
	return White, fmt.Errorf("unknown color %q", name)
}

type Position struct {
	X float64
	Y float64
}

// Bounds is the visible placement area supplied by the front end.
type Bounds struct {
	Width  float64
	Height float64
}

// State is everything the compositor needs to draw one meme. It is a plain
// value: copying it produces an independent snapshot, and the background is
// treated as immutable.
type State struct {
	Background image.Image
	Text       string
	FontSize   float64
	Color      Color
	Bold       bool
	Italic     bool
	Underline  bool
	Position   Position
}

func NewState() State {
	return State{
		Text:     DefaultText,
		FontSize: DefaultFontSize,
		Color:    White,
		Position: Position{X: 50, Y: 50},
	}
}

func (s *State) SetText(text string) {
	s.Text = text
}

// ApplySpokenText takes the recognizer's candidate list and uses the first
// one. A missing or empty result leaves the text untouched.
func (s *State) ApplySpokenText(results []string) bool {
	if len(results) == 0 || results[0] == "" {
		return false
	}
	s.Text = results[0]
	return true
}

func (s *State) SetFontSize(pt float64) {
	s.FontSize = ClampFontSize(pt)
}

func (s *State) SetColor(c Color) {
	s.Color = c
}

func (s *State) SetStyle(bold, italic, underline bool) {
	s.Bold = bold
	s.Italic = italic
	s.Underline = underline
}

func (s *State) ToggleBold()      { s.Bold = !s.Bold }
func (s *State) ToggleItalic()    { s.Italic = !s.Italic }
func (s *State) ToggleUnderline() { s.Underline = !s.Underline }

// DragBy moves the overlay by delta and keeps it inside bounds.
func (s *State) DragBy(delta Position, bounds Bounds) Position {
	s.Position = Clamp(s.Position, delta, bounds)
	return s.Position
}

// SetImage replaces the background; nil falls back to the blank canvas.
func (s *State) SetImage(img image.Image) {
	s.Background = img
}

// ClampFontSize pins pt into [MinFontSize, MaxFontSize].
func ClampFontSize(pt float64) float64 {
	return clip(pt, MinFontSize, MaxFontSize)
}
