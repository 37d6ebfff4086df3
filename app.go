package tide

import (
	"time"
)

// inputStopTimeout bounds how long shutdown waits for the keyboard reader.
const inputStopTimeout = 100 * time.Millisecond

// Run acquires the terminal, starts the renderer, the keyboard reader and
// the signal handlers, and runs the event loop until a QuitMsg arrives or
// the context ends. The terminal is restored on every way out.
//
// Run returns the final Model. It fails with ErrProgramRunning when called
// while the Program is already running, and with a wrapped error when the
// terminal cannot be acquired.
func (p *Program) Run() (Model, error) {
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrProgramRunning
	}
	var term *terminal
	if p.input != nil {
		var err error
		term, err = acquireTerminal(p.input)
		if err != nil {
			p.running.Store(false)
			p.log.Error("terminal: %v", err)
			return p.initialModel, err
		}
	}

	width, height := p.width, p.height
	if !p.fixedSize {
		width, height = GetSize(p.output)
	}

	p.renderer = p.customRenderer
	if p.renderer == nil {
		p.renderer = NewStandardRenderer(RendererOptions{
			Output: p.output,
			Width:  width,
			Height: height,
			FPS:    p.fps,
			Logger: p.log,
		})
	}
	p.executor = NewExecutor(p.Send, ExecutorOptions{
		MaxWorkers: p.maxWorkers,
		Logger:     p.log,
	})

	p.log.Info("program starting (%dx%d, %d fps)", width, height, p.fps)
	p.log.Trace("program.start", map[string]any{
		"width":     width,
		"height":    height,
		"fps":       p.fps,
		"altScreen": p.altScreen,
	})

	model := p.initialModel
	p.executor.Submit(model.Init())

	p.renderer.HideCursor()
	if p.altScreen {
		p.renderer.EnterAltScreen()
	}
	p.renderer.Start()

	var input *inputReader
	if p.input != nil {
		var err error
		input, err = startInput(p.input, p.Send, p.running.Load, p.log)
		if err != nil {
			p.log.Error("%v", err)
			p.shutdown(model, term, nil, nil)
			return model, err
		}
	}

	var stopSignals func()
	if p.catchSignals {
		stopSignals = p.handleSignals()
	}

	model, err := p.eventLoop(model)
	p.shutdown(model, term, input, stopSignals)
	return model, err
}

// shutdown stops accepting messages, paints the final view and releases
// everything Run acquired.
func (p *Program) shutdown(model Model, term *terminal, input *inputReader, stopSignals func()) {
	p.running.Store(false)
	p.queue.drain()

	p.renderer.MarkDirty()
	p.renderer.Write(model.View())
	p.renderer.Stop()

	input.stop(inputStopTimeout)
	if err := term.release(); err != nil {
		p.log.Error("%v", err)
	}
	if stopSignals != nil {
		stopSignals()
	}

	// Running Cmds finish on their own; their Msgs are dropped by Send
	p.executor.Shutdown()
	p.log.Info("program stopped")
}

// resize re-reads the terminal size after SIGWINCH.
func (p *Program) resize() {
	if p.fixedSize {
		return
	}
	width, height := GetSize(p.output)
	p.renderer.Resize(width, height)
	p.Send(WindowSizeMsg{Width: width, Height: height})
}
