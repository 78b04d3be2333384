package digitalrain

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Cell is a single glyph placed on screen.
type Cell struct {
	Position
	Rune rune
}

// NewLogger returns the logger used when none is configured.
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.New(w, "digitalrain: ", log.LstdFlags)
}

type SurfaceOpt func(s *Surface)

func WithSurfaceLogger(logger *log.Logger) SurfaceOpt {
	return func(s *Surface) {
		s.logger = logger
	}
}

// Surface serializes access to a Terminal. Each Draw call owns the terminal
// for one whole frame, so the cells of a frame reach the output together.
// Frames from different callers that target the same cell are not ordered;
// the last one written wins.
type Surface struct {
	mu     sync.Mutex
	term   Terminal
	logger *log.Logger
}

func NewSurface(term Terminal, opts ...SurfaceOpt) *Surface {
	s := Surface{term: term}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = NewLogger(nil)
	}
	return &s
}

// Draw writes every cell and flushes. A cell that fails to move or write is
// logged and skipped; the remaining cells are still drawn and the failures
// are returned together.
func (s *Surface) Draw(cells []Cell) error {
	if len(cells) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, c := range cells {
		if err := s.term.MoveTo(c.Col, c.Row); err != nil {
			errs = append(errs, s.fail("move cursor", c.Position, err))
			continue
		}
		if err := s.term.WriteRune(c.Rune); err != nil {
			errs = append(errs, s.fail("write", c.Position, err))
		}
	}
	if err := s.term.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush: %w", err))
		s.logger.Printf("flush failed: %v", err)
	}
	return errors.Join(errs...)
}

// DrawLines writes each line on consecutive rows starting at origin, then
// flushes. Lines are not clipped; callers size them to the terminal.
func (s *Surface) DrawLines(origin Position, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for i, line := range lines {
		at := Position{Col: origin.Col, Row: origin.Row + i}
		if err := s.term.MoveTo(at.Col, at.Row); err != nil {
			errs = append(errs, s.fail("move cursor", at, err))
			continue
		}
		for _, r := range line {
			if err := s.term.WriteRune(r); err != nil {
				errs = append(errs, s.fail("write", at, err))
				break
			}
		}
	}
	if err := s.term.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush: %w", err))
		s.logger.Printf("flush failed: %v", err)
	}
	return errors.Join(errs...)
}

func (s *Surface) fail(op string, p Position, err error) error {
	s.logger.Printf("%s at %d,%d failed: %v", op, p.Col, p.Row, err)
	return fmt.Errorf("%s at %d,%d: %w", op, p.Col, p.Row, err)
}

func (s *Surface) Size() (Bounds, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term.Size()
}

func (s *Surface) ShowCursor(show bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term.ShowCursor(show)
}

func (s *Surface) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term.Clear()
}
