package digitalrain

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

const (
	DefaultBatchSize     = 4
	DefaultBatchInterval = 150 * time.Millisecond
	DefaultMinLength     = 5
	DefaultMaxLength     = 20 // exclusive
)

type RainOpt func(r *Rain)

// WithBatchSize sets how many strings are launched together.
func WithBatchSize(n int) RainOpt {
	return func(r *Rain) {
		r.batchSize = n
	}
}

// WithBatchInterval sets the pause between two launches.
func WithBatchInterval(d time.Duration) RainOpt {
	return func(r *Rain) {
		r.interval = d
	}
}

// WithLengthRange sets the string length range, min inclusive and max exclusive.
func WithLengthRange(min, max int) RainOpt {
	return func(r *Rain) {
		r.minLen, r.maxLen = min, max
	}
}

func WithRand(rnd Rand) RainOpt {
	return func(r *Rain) {
		r.rnd = rnd
	}
}

func WithAnimator(a *Animator) RainOpt {
	return func(r *Rain) {
		r.animator = a
	}
}

func WithRainLogger(logger *log.Logger) RainOpt {
	return func(r *Rain) {
		r.logger = logger
	}
}

// Rain launches batches of falling strings until its time budget runs out.
type Rain struct {
	surface   *Surface
	animator  *Animator
	rnd       Rand
	batchSize int
	interval  time.Duration
	minLen    int
	maxLen    int
	logger    *log.Logger
}

func NewRain(surface *Surface, opts ...RainOpt) *Rain {
	r := Rain{
		surface:   surface,
		batchSize: DefaultBatchSize,
		interval:  DefaultBatchInterval,
		minLen:    DefaultMinLength,
		maxLen:    DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.animator == nil {
		r.animator = NewAnimator(surface)
	}
	if r.rnd == nil {
		r.rnd = NewRand(0)
	}
	if r.logger == nil {
		r.logger = NewLogger(nil)
	}
	return &r
}

// Stats counts the work done by one Run.
type Stats struct {
	Batches   int
	Launched  int
	Completed int
}

/*
Run makes it rain in direction d with characters of alphabet a until duration
has elapsed, then waits for every string still on screen to finish. The
cursor is hidden for the whole run and shown again on every way out.

The terminal size is read before anything is drawn; failing to read it is
the only error Run returns. Running out of duration only stops launching:
strings in flight always travel to the far edge. Cancelling ctx stops new
launches and also ends the strings in flight at their next step.
*/
func (r *Rain) Run(ctx context.Context, d Direction, a Alphabet, duration time.Duration) (stats Stats, err error) {
	bounds, err := r.surface.Size()
	if err != nil {
		return stats, fmt.Errorf("rain: %w", err)
	}
	if bounds.Empty() {
		return stats, fmt.Errorf("rain: %w: %dx%d", ErrNoTerminal, bounds.Width, bounds.Height)
	}

	if err := r.surface.ShowCursor(false); err != nil {
		r.logger.Printf("hide cursor failed: %v", err)
	}
	defer func() {
		if err := r.surface.ShowCursor(true); err != nil {
			r.logger.Printf("show cursor failed: %v", err)
		}
	}()
	if err := r.surface.Clear(); err != nil {
		r.logger.Printf("clear screen failed: %v", err)
	}

	var (
		wg        sync.WaitGroup
		completed atomic.Int64
	)
	defer func() {
		wg.Wait()
		stats.Completed = int(completed.Load())
	}()

	start := time.Now()
	for time.Since(start) < duration && ctx.Err() == nil {
		if b, err := r.surface.Size(); err != nil {
			r.logger.Printf("terminal size unavailable, keeping %dx%d: %v", bounds.Width, bounds.Height, err)
		} else if !b.Empty() {
			bounds = b
		}

		for i := 0; i < r.batchSize; i++ {
			fs := r.spawn(d, a, bounds)
			wg.Add(1)
			stats.Launched++
			go func(fs FallingString, b Bounds) {
				defer wg.Done()
				defer func() {
					if p := recover(); p != nil {
						r.logger.Printf("animation at %d,%d panicked: %v", fs.Origin.Col, fs.Origin.Row, p)
					}
					completed.Add(1)
				}()
				r.animator.Animate(ctx, fs, b)
			}(fs, bounds)
		}
		stats.Batches++

		sleep(ctx, r.interval)
	}
	return stats, nil
}

func (r *Rain) spawn(d Direction, a Alphabet, b Bounds) FallingString {
	n := between(r.rnd, r.minLen, r.maxLen)
	return FallingString{
		Text:      RandomString(r.rnd, a, n),
		Origin:    SpawnOrigin(r.rnd, d, b),
		Direction: d,
	}
}

// SpawnOrigin picks where a string enters the screen: a random cell along the
// edge it comes from. Strings moving up or left start one cell past the far
// bound. b must not be empty.
func SpawnOrigin(rnd Rand, d Direction, b Bounds) Position {
	switch d {
	case Up:
		return Position{Col: rnd.Intn(b.Width), Row: b.Height}
	case Left:
		return Position{Col: b.Width, Row: rnd.Intn(b.Height)}
	case Right:
		return Position{Col: 0, Row: rnd.Intn(b.Height)}
	default:
		return Position{Col: rnd.Intn(b.Width), Row: 0}
	}
}
