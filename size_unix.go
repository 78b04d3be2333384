//go:build unix

package digitalrain

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func terminalSize(fds []uintptr) (Bounds, error) {
	var lastErr error
	for _, fd := range fds {
		ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
		if err != nil {
			lastErr = err
			continue
		}
		if ws.Col == 0 || ws.Row == 0 {
			continue
		}
		return Bounds{Width: int(ws.Col), Height: int(ws.Row)}, nil
	}
	if lastErr != nil {
		return Bounds{}, fmt.Errorf("%w: %v", ErrNoTerminal, lastErr)
	}
	return Bounds{}, ErrNoTerminal
}
