package digitalrain

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// brailleDots is an 8 dot braille cell in x,y coordinates:
//
//	+----------+
//	|(0,0)(1,0)|
//	|(0,1)(1,1)|
//	|(0,2)(1,2)|
//	|(0,3)(1,3)|
//	+----------+
type brailleDots [2][4]bool

// Rune numbers each dot and returns the matching unicode symbol.
//
//	+------+
//	|(1)(4)|
//	|(2)(5)|
//	|(3)(6)|
//	|(7)(8)|
//	+------+
//
// See https://en.wikipedia.org/wiki/Braille_Patterns#Identifying.2C_naming_and_ordering
func (dots brailleDots) Rune() rune {
	order := [8]bool{dots[0][0], dots[0][1], dots[0][2], dots[1][0], dots[1][1], dots[1][2], dots[0][3], dots[1][3]}
	var v rune
	for i, set := range order {
		if set {
			v |= 1 << uint(i)
		}
	}
	return '\u2800' + v
}

var monochrome = color.Palette{color.Black, color.White}

/*
convertBraille packs 2x4 pixel blocks into braille symbols, so each cell
carries eight pixels instead of one. Lit pixels become raised dots. With
Dither set the frame is reduced to black and white by Floyd Steinberg error
diffusion, otherwise by the threshold.
*/
func (c Converter) convertBraille(img image.Image, b Bounds) []string {
	gray := imaging.Grayscale(img)
	scaled := resize.Resize(uint(b.Width*2), uint(b.Height*4), gray, resize.Bilinear)
	bounds := scaled.Bounds()

	lit := func(x, y int) bool {
		return luma(scaled.At(x, y)) >= c.Threshold
	}
	if c.Dither {
		paletted := image.NewPaletted(bounds, monochrome)
		draw.FloydSteinberg.Draw(paletted, bounds, scaled, bounds.Min)
		lit = func(x, y int) bool {
			return paletted.ColorIndexAt(x, y) == 1
		}
	}

	lines := make([]string, 0, b.Height)
	for py := bounds.Min.Y; py < bounds.Max.Y; py += 4 {
		var line strings.Builder
		for px := bounds.Min.X; px < bounds.Max.X; px += 2 {
			var dots brailleDots
			for y := 0; y < 4; y++ {
				for x := 0; x < 2; x++ {
					// The last block may hang past the frame.
					if px+x >= bounds.Max.X || py+y >= bounds.Max.Y {
						continue
					}
					dots[x][y] = lit(px+x, py+y)
				}
			}
			line.WriteRune(dots.Rune())
		}
		lines = append(lines, line.String())
	}
	return lines
}
