package tide

import (
	"fmt"
	"io"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Fallback size when the terminal cannot be queried.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// fileDescriptor is implemented by *os.File and anything else backed by a
// file descriptor.
type fileDescriptor interface {
	Fd() uintptr
}

// IsTerminal reports whether v is backed by a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(fileDescriptor)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// GetSize returns the size of the terminal behind v, falling back to 80x24
// when v is not a terminal or the query fails.
func GetSize(v any) (width, height int) {
	f, ok := v.(fileDescriptor)
	if !ok || !IsTerminal(v) {
		return defaultWidth, defaultHeight
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}

// terminal holds the raw-mode state of the Program's input.
type terminal struct {
	in    io.Reader
	fd    int
	state *term.State
}

// acquireTerminal switches in to raw mode when it is a terminal. Inputs that
// are not terminals (pipes, tests) are used as they are.
func acquireTerminal(in io.Reader) (*terminal, error) {
	t := &terminal{in: in, fd: -1}
	if !IsTerminal(in) {
		return t, nil
	}

	fd := int(in.(fileDescriptor).Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	t.fd = fd
	t.state = state
	return t, nil
}

// release restores the terminal mode saved by acquireTerminal.
func (t *terminal) release() error {
	if t == nil || t.state == nil {
		return nil
	}
	state := t.state
	t.state = nil
	if err := term.Restore(t.fd, state); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}
