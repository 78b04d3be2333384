package digitalrain

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Screen adapts a tcell.Screen to the Terminal interface. The screen must be
// initialized by the caller, who also owns Fini.
type Screen struct {
	screen   tcell.Screen
	style    tcell.Style
	col, row int
	visible  bool
}

func NewScreen(screen tcell.Screen, style tcell.Style) *Screen {
	return &Screen{screen: screen, style: style, visible: true}
}

func (s *Screen) MoveTo(col, row int) error {
	w, h := s.screen.Size()
	if col < 0 || row < 0 || col >= w || row >= h {
		return fmt.Errorf("cursor position %d,%d outside %dx%d screen", col, row, w, h)
	}
	s.col, s.row = col, row
	return nil
}

// WriteRune puts r under the cursor and advances it past the glyph.
func (s *Screen) WriteRune(r rune) error {
	style := s.style
	if r == ' ' {
		style = tcell.StyleDefault
	}
	s.screen.SetContent(s.col, s.row, r, nil, style)
	s.col += runeWidth(r)
	return nil
}

func (s *Screen) Flush() error {
	s.screen.Show()
	return nil
}

func (s *Screen) Clear() error {
	s.screen.Clear()
	s.screen.Show()
	return nil
}

// ShowCursor places a shown cursor on the last cell written, kept inside the
// screen since tcell hides a cursor past the edge.
func (s *Screen) ShowCursor(show bool) error {
	s.visible = show
	if show {
		w, h := s.screen.Size()
		s.screen.ShowCursor(min(s.col, w-1), min(s.row, h-1))
	} else {
		s.screen.HideCursor()
	}
	s.screen.Show()
	return nil
}

// CursorVisible reports the last state set through ShowCursor.
func (s *Screen) CursorVisible() bool {
	return s.visible
}

func (s *Screen) Size() (Bounds, error) {
	w, h := s.screen.Size()
	if w <= 0 || h <= 0 {
		return Bounds{}, ErrNoTerminal
	}
	return Bounds{Width: w, Height: h}, nil
}
