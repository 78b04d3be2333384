package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/codegangsta/cli"
	"github.com/gdamore/tcell/v2"
	"github.com/kevin-cantwell/digitalrain"
	"golang.org/x/term"
)

// Named colors accepted by --color, besides #rrggbb values.
var colors = map[string]string{
	"green":   "#00ff41",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"blue":    "#0096ff",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"yellow":  "#ffff00",
	"amber":   "#ffbf00",
}

const (
	rainUsage  = "<direction> <alphabet> <duration_seconds>"
	videoUsage = "<video_path> <display_character>"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		// Exit errors never get here, the cli package exits on them.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "digitalrain"
	app.Usage = "Digital rain and ASCII video in the terminal."
	app.UsageText = "1) digitalrain rain [options] " + rainUsage + "\n" +
		/*      */ "   2) digitalrain video [options] " + videoUsage
	app.Author = "Kevin Cantwell"
	app.Email = "kevin.cantwell@gmail.com"
	// Stdout carries the drawing, help goes to stderr.
	app.Writer = os.Stderr
	app.Action = noMode
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "backend",
			Usage: "`BACKEND` used to draw: ansi writes escape sequences, tcell drives the screen through tcell.",
			Value: "ansi",
		},
		cli.StringFlag{
			Name:  "log",
			Usage: "Append warnings to `FILE`. Without it they go to stderr, unless stderr is the terminal being drawn on.",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "rain",
			Aliases:   []string{"1"},
			Usage:     "Strings of characters travel across the screen for a while.",
			ArgsUsage: rainUsage,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "color,c",
					Usage: "`COLOR` of the characters: a name (green, white, red, blue, cyan, magenta, yellow, amber) or #rrggbb.",
				},
				cli.IntFlag{
					Name:  "seed",
					Usage: "`SEED` for the random generator. 0 picks one from the clock.",
				},
			},
			Action: rain,
		},
		{
			Name:      "video",
			Aliases:   []string{"2"},
			Usage:     "Plays a video as ASCII art. Needs ffmpeg on the PATH.",
			ArgsUsage: videoUsage,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "fps",
					Usage: "`FPS` frames extracted per second of video.",
					Value: digitalrain.DefaultFPS,
				},
				cli.IntFlag{
					Name:  "threshold,t",
					Usage: "`THRESHOLD` brightness (0-255) below which a pixel is left blank.",
					Value: digitalrain.DefaultThreshold,
				},
				cli.StringFlag{
					Name:  "format",
					Usage: "`FORMAT` of the extracted frames: png or bmp.",
					Value: "png",
				},
				cli.Float64Flag{
					Name:  "gamma,g",
					Usage: "`GAMMA` = 1.0 gives the original image. GAMMA less than 1.0 darkens the image and GAMMA greater than 1.0 lightens it.",
					Value: 1.0,
				},
				cli.Float64Flag{
					Name:  "brightness,b",
					Usage: "`BRIGHTNESS` = 0 gives the original image. BRIGHTNESS = -100 gives solid black image. BRIGHTNESS = 100 gives solid white image.",
				},
				cli.Float64Flag{
					Name:  "contrast",
					Usage: "`CONTRAST` = 0 gives the original image. CONTRAST = -100 gives solid grey image. CONTRAST = 100 gives maximum contrast.",
				},
				cli.BoolFlag{
					Name:  "invert,i",
					Usage: "Inverts the image.",
				},
				cli.BoolFlag{
					Name:  "braille",
					Usage: "Draws braille symbols, eight pixels per cell, instead of the display character.",
				},
				cli.BoolFlag{
					Name:  "dither",
					Usage: "With --braille, uses Floyd Steinberg diffusion instead of the threshold.",
				},
			},
			Action: video,
		},
	}
	return app
}

// noMode runs when the first argument names no command.
func noMode(c *cli.Context) error {
	msg := "missing mode"
	if c.NArg() > 0 {
		msg = fmt.Sprintf("unknown mode %q (use rain or video)", c.Args().First())
	}
	return cli.NewExitError(fmt.Sprintf("Error: %s\nUsage: %s", msg, c.App.UsageText), 1)
}

func rain(c *cli.Context) error {
	if c.NArg() != 3 {
		return usageError(c, rainUsage, "expected 3 arguments, got %d", c.NArg())
	}
	direction, err := digitalrain.ParseDirection(c.Args().Get(0))
	if err != nil {
		return usageError(c, rainUsage, "%v", err)
	}
	alphabet, err := digitalrain.ParseAlphabet(c.Args().Get(1))
	if err != nil {
		return usageError(c, rainUsage, "%v", err)
	}
	seconds, err := strconv.ParseUint(c.Args().Get(2), 10, 32)
	if err != nil {
		return usageError(c, rainUsage, "%q is not a valid duration (expected a non-negative number of seconds)", c.Args().Get(2))
	}
	color, err := resolveColor(c.String("color"))
	if err != nil {
		return usageError(c, rainUsage, "%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withSurface(c, color, func(surface *digitalrain.Surface, logger *log.Logger) error {
		r := digitalrain.NewRain(surface,
			digitalrain.WithRand(digitalrain.NewRand(int64(c.Int("seed")))),
			digitalrain.WithRainLogger(logger),
		)
		if _, err := r.Run(ctx, direction, alphabet, time.Duration(seconds)*time.Second); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		return nil
	})
}

func video(c *cli.Context) error {
	if c.NArg() != 2 {
		return usageError(c, videoUsage, "expected 2 arguments, got %d", c.NArg())
	}
	char, err := digitalrain.ParseDisplayChar(c.Args().Get(1))
	if err != nil {
		return usageError(c, videoUsage, "%v", err)
	}
	threshold := c.Int("threshold")
	if threshold < 0 || threshold > 255 {
		return usageError(c, videoUsage, "threshold must be between 0 and 255, got %d", threshold)
	}
	format := strings.ToLower(c.String("format"))
	if format != "png" && format != "bmp" {
		return usageError(c, videoUsage, "unsupported frame format %q (use png or bmp)", format)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withSurface(c, "", func(surface *digitalrain.Surface, logger *log.Logger) error {
		v := digitalrain.Video{
			Extractor: digitalrain.FFmpeg{FPS: c.Int("fps"), Format: format},
			Player:    digitalrain.NewPlayer(surface, digitalrain.WithPlayerLogger(logger)),
			Converter: digitalrain.Converter{
				Threshold: uint8(threshold),
				Adjust: digitalrain.Adjustments{
					Gamma:      c.Float64("gamma"),
					Contrast:   c.Float64("contrast"),
					Brightness: c.Float64("brightness"),
					Invert:     c.Bool("invert"),
				},
				Braille: c.Bool("braille"),
				Dither:  c.Bool("dither"),
			},
			Logger: logger,
		}
		err := v.Run(ctx, c.Args().Get(0), char)
		if err != nil && !errors.Is(err, context.Canceled) {
			return cli.NewExitError(err.Error(), 1)
		}
		return nil
	})
}

// withSurface opens the backend selected on the command line and hands a
// surface over it to fn.
func withSurface(c *cli.Context, color string, fn func(*digitalrain.Surface, *log.Logger) error) error {
	logger, closeLog, err := openLogger(c.GlobalString("log"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer closeLog()

	switch backend := c.GlobalString("backend"); backend {
	case "ansi":
		var opts []digitalrain.XtermOpt
		if color != "" {
			opts = append(opts, digitalrain.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(color))))
		}
		xterm := digitalrain.NewXterm(os.Stdout, opts...)
		return fn(digitalrain.NewSurface(xterm, digitalrain.WithSurfaceLogger(logger)), logger)
	case "tcell":
		screen, err := tcell.NewScreen()
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		if err := screen.Init(); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer screen.Fini()
		style := tcell.StyleDefault
		if color != "" {
			style = style.Foreground(tcell.GetColor(color))
		}
		return fn(digitalrain.NewSurface(digitalrain.NewScreen(screen, style), digitalrain.WithSurfaceLogger(logger)), logger)
	default:
		return cli.NewExitError(fmt.Sprintf("unknown backend %q (use ansi or tcell)", backend), 1)
	}
}

// openLogger picks where warnings go. Lines written to the terminal being
// drawn on would be painted over the animation, so they are dropped then.
func openLogger(path string) (*log.Logger, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening log file: %v", err)
		}
		return digitalrain.NewLogger(f), func() { f.Close() }, nil
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return digitalrain.NewLogger(io.Discard), func() {}, nil
	}
	return digitalrain.NewLogger(os.Stderr), func() {}, nil
}

func resolveColor(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if hex, ok := colors[strings.ToLower(name)]; ok {
		return hex, nil
	}
	if len(name) == 7 && name[0] == '#' {
		if _, err := strconv.ParseUint(name[1:], 16, 32); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown color %q", name)
}

func usageError(c *cli.Context, usage, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return cli.NewExitError(fmt.Sprintf("Error: %s\nUsage: %s %s %s", msg, c.App.Name, c.Command.Name, usage), 1)
}
