package tide

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"
)

var (
	// ErrProgramRunning is returned by Run when the Program is already running.
	ErrProgramRunning = errors.New("tide: program is already running")
	// ErrProgramKilled is returned by Run when its context is cancelled.
	ErrProgramKilled = errors.New("tide: program was killed")
)

// pollInterval bounds how long the loop waits for a message before it
// checks for cancellation.
const pollInterval = 50 * time.Millisecond

// Program owns the current Model, the message queue and the event loop.
//
// Update and View only ever run on the goroutine that called Run, one
// message at a time, so a Model needs no locking of its own.
type Program struct {
	initialModel Model

	ctx          context.Context
	fps          int
	altScreen    bool
	input        io.Reader
	output       io.Writer
	log          *Logger
	catchSignals bool
	maxWorkers   int

	width, height int
	fixedSize     bool

	customRenderer Renderer

	running  atomic.Bool
	queue    *messageQueue
	renderer Renderer
	executor *Executor
}

// NewProgram creates a Program for model. Nothing touches the terminal
// until Run.
func NewProgram(model Model, opts ...ProgramOption) *Program {
	p := &Program{
		initialModel: model,
		ctx:          context.Background(),
		fps:          DefaultFPS,
		input:        os.Stdin,
		output:       os.Stdout,
		log:          discardLogger(),
		catchSignals: true,
		queue:        newMessageQueue(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.output == nil {
		p.output = io.Discard
	}
	return p
}

// Send delivers msg to the event loop. It is safe to call from any
// goroutine. Messages sent while the Program is not running are dropped.
func (p *Program) Send(msg Msg) {
	p.queue.pushIf(msg, p.running.Load)
}

// Quit asks the event loop to stop.
func (p *Program) Quit() {
	p.Send(QuitMsg{})
}

// Running reports whether Run is in progress.
func (p *Program) Running() bool {
	return p.running.Load()
}

// eventLoop applies messages to model until a QuitMsg arrives or the
// context ends, and returns the final Model.
func (p *Program) eventLoop(model Model) (Model, error) {
	dirty := true
	p.renderer.MarkDirty()

	for {
		// Only render when the Model changed since the last push
		if dirty {
			p.renderer.Write(model.View())
			dirty = false
		}

		msg, ok := p.queue.Poll(p.ctx, pollInterval)
		if !ok {
			if err := p.ctx.Err(); err != nil {
				return model, fmt.Errorf("%w: %w", ErrProgramKilled, err)
			}
			continue
		}

		switch msg := msg.(type) {
		case QuitMsg:
			p.log.Trace("program.quit", nil)
			return model, nil
		case EnterAltScreenMsg:
			p.renderer.EnterAltScreen()
			continue
		case ExitAltScreenMsg:
			p.renderer.ExitAltScreen()
			continue
		case ClearScreenMsg:
			p.renderer.ClearScreen()
			continue
		case BatchMsg:
			for _, cmd := range msg {
				p.executor.Submit(cmd)
			}
			continue
		}

		next, cmd := model.Update(msg)
		if next == nil {
			p.log.Warn("update returned a nil model for %T, keeping the previous one", msg)
		} else {
			model = next
		}
		p.executor.Submit(cmd)
		p.renderer.MarkDirty()
		dirty = true
	}
}
