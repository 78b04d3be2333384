package digitalrain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// ErrNoTerminal is returned when the terminal dimensions cannot be determined.
var ErrNoTerminal = errors.New("unable to determine terminal size")

// Terminal is the output surface everything is drawn on. Implementations do
// not need to be safe for concurrent use; see Surface.
type Terminal interface {
	MoveTo(col, row int) error
	WriteRune(r rune) error
	Flush() error
	Clear() error
	ShowCursor(show bool) error
	Size() (Bounds, error)
}

type XtermOpt func(term *Xterm)

// WithStyle renders every non blank glyph through style.
func WithStyle(style lipgloss.Style) XtermOpt {
	return func(term *Xterm) {
		term.style = &style
	}
}

// WithSizeFrom sets the file descriptors queried for the window size, in order.
func WithSizeFrom(fds ...uintptr) XtermOpt {
	return func(term *Xterm) {
		term.fds = fds
	}
}

// Xterm drives an ANSI terminal through escape sequences. Output is buffered
// until Flush.
type Xterm struct {
	w     *bufio.Writer
	style *lipgloss.Style
	fds   []uintptr
}

func NewXterm(w io.Writer, opts ...XtermOpt) *Xterm {
	term := Xterm{
		w: bufio.NewWriter(w),
		// Stdout may be redirected, so fall back on the other standard streams.
		fds: []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()},
	}
	for _, opt := range opts {
		opt(&term)
	}
	return &term
}

// MoveTo positions the cursor at a zero based column and row.
func (term *Xterm) MoveTo(col, row int) error {
	if col < 0 || row < 0 {
		return fmt.Errorf("cursor position %d,%d out of range", col, row)
	}
	_, err := fmt.Fprintf(term.w, "\033[%d;%dH", row+1, col+1)
	return err
}

func (term *Xterm) WriteRune(r rune) error {
	if term.style != nil && r != ' ' {
		_, err := term.w.WriteString(term.style.Render(string(r)))
		return err
	}
	_, err := term.w.WriteRune(r)
	return err
}

func (term *Xterm) Flush() error {
	return term.w.Flush()
}

// Clear blanks the screen and homes the cursor.
func (term *Xterm) Clear() error {
	if _, err := term.w.WriteString("\033[2J\033[H"); err != nil {
		return err
	}
	return term.w.Flush()
}

// ShowCursor also switches autowrap, off while the cursor is hidden, so a
// glyph written in the last column never wraps or scrolls the screen.
func (term *Xterm) ShowCursor(show bool) error {
	seq := "\033[?7l\033[?25l"
	if show {
		seq = "\033[?7h\033[?12l\033[?25h"
	}
	if _, err := term.w.WriteString(seq); err != nil {
		return err
	}
	return term.w.Flush()
}

func (term *Xterm) Size() (Bounds, error) {
	return terminalSize(term.fds)
}
