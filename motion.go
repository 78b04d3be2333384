package digitalrain

import (
	"context"
	"time"
)

// DefaultFrameDelay is how long each frame of a falling string stays on screen.
const DefaultFrameDelay = 100 * time.Millisecond

// FallingString is one string of rain. Character i sits i cells further
// along the travel axis than the first character.
type FallingString struct {
	Text      []rune
	Origin    Position
	Direction Direction
}

// Steps is the number of frames needed to carry the string to the far edge.
func (fs FallingString) Steps(b Bounds) int {
	return Steps(fs.Direction, fs.Origin, b)
}

// Frame returns the visible cells of the string at the given step, in string
// order. Characters beyond any edge are left out, as are wide characters
// whose second column would fall past the right edge.
func (fs FallingString) Frame(step int, b Bounds) []Cell {
	cells := make([]Cell, 0, len(fs.Text))
	for i, r := range fs.Text {
		p, ok := Offset(fs.Direction, fs.Origin, step+i)
		if !ok || !b.Visible(p) || p.Col+runeWidth(r) > b.Width {
			continue
		}
		cells = append(cells, Cell{Position: p, Rune: r})
	}
	return cells
}

// blank returns cells covering the same positions with spaces. Overwriting
// the first column of a wide glyph clears the whole glyph, so a single space
// per cell is enough.
func blank(cells []Cell) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = Cell{Position: c.Position, Rune: ' '}
	}
	return out
}

type AnimatorOpt func(a *Animator)

func WithFrameDelay(d time.Duration) AnimatorOpt {
	return func(a *Animator) {
		a.delay = d
	}
}

// Animator moves falling strings across a Surface.
type Animator struct {
	surface *Surface
	delay   time.Duration
}

func NewAnimator(surface *Surface, opts ...AnimatorOpt) *Animator {
	a := Animator{
		surface: surface,
		delay:   DefaultFrameDelay,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return &a
}

// Result summarizes one animation.
type Result struct {
	Steps   int // frames painted and erased
	Painted int // cells painted over all frames
}

/*
Animate paints fs one step at a time, holds each frame for the frame delay
and erases it before advancing, until the string has left the bounds. Write
failures only cost the affected cells. A cancelled context ends the
animation at the next step boundary; the frame on screen is always erased
first.
*/
func (a *Animator) Animate(ctx context.Context, fs FallingString, b Bounds) Result {
	var res Result
	if len(fs.Text) == 0 {
		return res
	}

	steps := fs.Steps(b)
	for step := 0; step < steps; step++ {
		if ctx.Err() != nil {
			break
		}
		cells := fs.Frame(step, b)

		// Errors are logged cell by cell by the surface.
		_ = a.surface.Draw(cells)
		res.Painted += len(cells)

		sleep(ctx, a.delay)

		_ = a.surface.Draw(blank(cells))
		res.Steps++
	}
	return res
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
