package tide

import (
	"context"
	"io"
)

// ProgramOption configures a Program.
type ProgramOption func(*Program)

// WithFPS sets the renderer frame rate, clamped to [1, 120] (default 60).
func WithFPS(fps int) ProgramOption {
	return func(p *Program) {
		p.fps = ClampFPS(fps)
	}
}

// WithAltScreen starts the Program in the alternate screen buffer.
func WithAltScreen() ProgramOption {
	return func(p *Program) {
		p.altScreen = true
	}
}

// WithInput reads keys from r instead of stdin. A nil reader disables
// keyboard input.
func WithInput(r io.Reader) ProgramOption {
	return func(p *Program) {
		p.input = r
	}
}

// WithOutput paints to w instead of stdout.
func WithOutput(w io.Writer) ProgramOption {
	return func(p *Program) {
		p.output = w
	}
}

// WithLogger sends runtime diagnostics to l.
func WithLogger(l *Logger) ProgramOption {
	return func(p *Program) {
		if l != nil {
			p.log = l
		}
	}
}

// WithContext stops the Program when ctx is done. Run then returns
// ErrProgramKilled.
func WithContext(ctx context.Context) ProgramOption {
	return func(p *Program) {
		p.ctx = ctx
	}
}

// WithoutSignalHandler leaves SIGINT, SIGTERM and SIGWINCH to the caller.
func WithoutSignalHandler() ProgramOption {
	return func(p *Program) {
		p.catchSignals = false
	}
}

// WithMaxWorkers bounds how many Cmds run at once. Zero means unbounded.
func WithMaxWorkers(n int) ProgramOption {
	return func(p *Program) {
		if n >= 0 {
			p.maxWorkers = n
		}
	}
}

// WithSize fixes the render bounds instead of querying the terminal.
func WithSize(width, height int) ProgramOption {
	return func(p *Program) {
		p.width = width
		p.height = height
		p.fixedSize = true
	}
}

// WithRenderer replaces the StandardRenderer.
func WithRenderer(r Renderer) ProgramOption {
	return func(p *Program) {
		p.customRenderer = r
	}
}
