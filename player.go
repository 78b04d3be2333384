package digitalrain

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultFrameInterval paces video playback.
const DefaultFrameInterval = 80 * time.Millisecond

// fallbackBounds is used when the terminal size cannot be read during playback.
var fallbackBounds = Bounds{Width: 80, Height: 24}

type PlayerOpt func(p *Player)

func WithFrameInterval(d time.Duration) PlayerOpt {
	return func(p *Player) {
		p.interval = d
	}
}

func WithPlayerLogger(logger *log.Logger) PlayerOpt {
	return func(p *Player) {
		p.logger = logger
	}
}

// Player draws converted frames one after another at a fixed cadence.
type Player struct {
	surface  *Surface
	interval time.Duration
	logger   *log.Logger
}

func NewPlayer(surface *Surface, opts ...PlayerOpt) *Player {
	p := Player{
		surface:  surface,
		interval: DefaultFrameInterval,
	}
	for _, opt := range opts {
		opt(&p)
	}
	if p.logger == nil {
		p.logger = NewLogger(nil)
	}
	return &p
}

/*
Play converts and draws each frame file in order from the top left corner of
the screen. Frames are decoded one at a time, so long videos are not held in
memory. The cursor is hidden while playing. A frame that cannot be decoded
stops playback with an error.
*/
func (p *Player) Play(ctx context.Context, paths []string, conv Converter) error {
	if err := p.surface.ShowCursor(false); err != nil {
		p.logger.Printf("hide cursor failed: %v", err)
	}
	defer func() {
		if err := p.surface.ShowCursor(true); err != nil {
			p.logger.Printf("show cursor failed: %v", err)
		}
	}()
	if err := p.surface.Clear(); err != nil {
		p.logger.Printf("clear screen failed: %v", err)
	}

	for _, path := range paths {
		delay := time.After(p.interval)

		b, err := p.surface.Size()
		if err != nil {
			b = fallbackBounds
		}
		lines, err := conv.ConvertFile(path, b)
		if err != nil {
			return err
		}
		// Failed cells are logged by the surface.
		_ = p.surface.DrawLines(Position{}, lines)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-delay:
		}
	}
	return nil
}

// ParseDisplayChar returns the single printable character of s.
func ParseDisplayChar(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid display character %q", s)
	}
	if size != len(s) {
		return 0, fmt.Errorf("display character %q must be a single character", s)
	}
	if unicode.IsSpace(r) || !unicode.IsPrint(r) {
		return 0, fmt.Errorf("%w: %q", errNoChar, s)
	}
	return r, nil
}

// Video plays a video file as ASCII art: frames are extracted into a
// temporary directory, played, and the directory is removed afterwards.
type Video struct {
	Extractor Extractor
	Player    *Player
	Converter Converter
	// TempDir is the parent of the frame directory; empty means os.TempDir.
	TempDir string
	Logger  *log.Logger
}

func (v *Video) Run(ctx context.Context, videoPath string, char rune) error {
	if _, err := os.Stat(videoPath); err != nil {
		return fmt.Errorf("video: %w", err)
	}
	logger := v.Logger
	if logger == nil {
		logger = NewLogger(nil)
	}

	dir, err := os.MkdirTemp(v.TempDir, "digitalrain-frames-")
	if err != nil {
		return fmt.Errorf("video: create frame directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Printf("remove %s failed: %v", dir, err)
		}
	}()

	if err := v.Extractor.Extract(ctx, videoPath, dir); err != nil {
		return fmt.Errorf("video: %w", err)
	}
	paths, err := LoadFrames(dir)
	if err != nil {
		return fmt.Errorf("video: %w", err)
	}

	conv := v.Converter
	conv.Char = char
	if conv.Threshold == 0 {
		conv.Threshold = DefaultThreshold
	}
	return v.Player.Play(ctx, paths, conv)
}
