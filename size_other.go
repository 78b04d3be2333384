//go:build !unix

package digitalrain

import (
	"fmt"

	"golang.org/x/term"
)

func terminalSize(fds []uintptr) (Bounds, error) {
	var lastErr error
	for _, fd := range fds {
		width, height, err := term.GetSize(int(fd))
		if err != nil {
			lastErr = err
			continue
		}
		if width == 0 || height == 0 {
			continue
		}
		return Bounds{Width: width, Height: height}, nil
	}
	if lastErr != nil {
		return Bounds{}, fmt.Errorf("%w: %v", ErrNoTerminal, lastErr)
	}
	return Bounds{}, ErrNoTerminal
}
