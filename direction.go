package digitalrain

import "fmt"

// Direction is the way a falling string travels across the screen.
type Direction int

const (
	Down Direction = iota
	Up
	Left
	Right
)

var directionNames = map[Direction]string{
	Down:  "down",
	Up:    "up",
	Left:  "left",
	Right: "right",
}

// ParseDirection converts user input into a Direction.
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return Down, fmt.Errorf("unknown direction %q (valid directions: down, up, left, right)", s)
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Position is a terminal cell, zero based.
type Position struct {
	Col int
	Row int
}

// Bounds are the terminal dimensions in cells.
type Bounds struct {
	Width  int
	Height int
}

// Visible reports whether p lies strictly inside the bounds.
func (b Bounds) Visible(p Position) bool {
	return p.Col >= 0 && p.Row >= 0 && p.Col < b.Width && p.Row < b.Height
}

// Empty reports whether nothing can ever be drawn within b.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Steps returns how many frames a string starting at origin needs to cross
// the travel axis up to the far edge.
func Steps(d Direction, origin Position, b Bounds) int {
	switch d {
	case Down:
		return subClamp(b.Height, origin.Row)
	case Up:
		return addClamp(origin.Row, 1)
	case Left:
		return addClamp(origin.Col, 1)
	case Right:
		return subClamp(b.Width, origin.Col)
	}
	return 0
}

// Offset moves origin by offset cells in direction d. Moving up or left
// saturates at zero; ok is false when it did, since the real position lies
// beyond the screen edge.
func Offset(d Direction, origin Position, offset int) (p Position, ok bool) {
	p = origin
	switch d {
	case Down:
		p.Row = origin.Row + offset
	case Right:
		p.Col = origin.Col + offset
	case Up:
		p.Row = subClamp(origin.Row, offset)
		ok = offset <= origin.Row
		return p, ok
	case Left:
		p.Col = subClamp(origin.Col, offset)
		ok = offset <= origin.Col
		return p, ok
	}
	return p, true
}

func subClamp(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

func addClamp(a, b int) int {
	if a+b < 0 {
		return 0
	}
	return a + b
}
