package digitalrain

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	"golang.org/x/text/width"
)

// DefaultThreshold is the brightness below which a pixel is left blank.
const DefaultThreshold = 128

var frameExts = map[string]bool{
	".png":  true,
	".bmp":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// LoadFrames lists the image files in dir in name order, which is frame
// order for numbered files.
func LoadFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !frameExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames in %s", dir)
	}
	return paths, nil
}

// Adjustments are applied to a frame before it is thresholded. Zero values
// leave the frame unchanged.
type Adjustments struct {
	Gamma      float64 // 1.0 is the original image
	Contrast   float64 // -100 to 100
	Brightness float64 // -100 to 100
	Invert     bool
}

func (adj Adjustments) apply(img image.Image) image.Image {
	if adj.Gamma > 0 && adj.Gamma != 1 {
		img = imaging.AdjustGamma(img, adj.Gamma)
	}
	if adj.Brightness != 0 {
		img = imaging.AdjustBrightness(img, adj.Brightness)
	}
	if adj.Contrast != 0 {
		img = imaging.AdjustContrast(img, adj.Contrast)
	}
	if adj.Invert {
		img = imaging.Invert(img)
	}
	return img
}

// Converter renders images as rows of a single display character, or of
// braille symbols when Braille is set.
type Converter struct {
	Char      rune
	Threshold uint8
	Adjust    Adjustments
	Braille   bool
	Dither    bool // braille only
}

var errNoChar = errors.New("display character must not be blank")

/*
Convert scales img to fill b and returns one string per terminal row. The
image is sampled at twice the row count and every other row is kept, which
roughly compensates for cells being twice as tall as they are wide. Pixels
darker than the threshold become blanks, the rest become the display
character.
*/
func (c Converter) Convert(img image.Image, b Bounds) []string {
	if b.Empty() {
		return nil
	}
	if c.Braille {
		return c.convertBraille(c.Adjust.apply(img), b)
	}
	w := runeWidth(c.Char)
	cols := b.Width / w
	if cols < 1 {
		cols = 1
	}
	blank := strings.Repeat(" ", w)

	img = c.Adjust.apply(img)
	gray := imaging.Grayscale(img)
	scaled := resize.Resize(uint(cols), uint(b.Height*2), gray, resize.NearestNeighbor)

	bounds := scaled.Bounds()
	lines := make([]string, 0, b.Height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		var line strings.Builder
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if luma(scaled.At(x, y)) < c.Threshold {
				line.WriteString(blank)
			} else {
				line.WriteRune(c.Char)
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}

// ConvertFile decodes the image at path and converts it.
func (c Converter) ConvertFile(path string, b Bounds) ([]string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", filepath.Base(path), err)
	}
	return c.Convert(img, b), nil
}

func luma(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// runeWidth is the number of cells r takes on screen.
func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
