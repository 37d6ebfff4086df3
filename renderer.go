package tide

import (
	"io"
	"os"
	"sync"
	"time"
)

// Renderer paints views to the terminal.
type Renderer interface {
	// Start begins the periodic flush.
	Start()
	// Stop flushes what is pending, restores the cursor and the main screen,
	// and stops the periodic flush. A stopped renderer cannot be restarted.
	Stop()
	// Write replaces the pending frame. It is ignored unless the renderer is
	// running and MarkDirty was called since the previous Write.
	Write(view string)
	// MarkDirty records that the Model changed and the next Write counts.
	MarkDirty()
	ClearScreen()
	ShowCursor()
	HideCursor()
	EnterAltScreen()
	ExitAltScreen()
	AltScreen() bool
	// Resize sets new clip bounds and repaints the current frame.
	Resize(width, height int)
}

// Frame rate limits.
const (
	DefaultFPS = 60
	MaxFPS     = 120
)

// ClampFPS bounds fps to [1, MaxFPS]; zero selects DefaultFPS.
func ClampFPS(fps int) int {
	switch {
	case fps == 0:
		return DefaultFPS
	case fps < 1:
		return 1
	case fps > MaxFPS:
		return MaxFPS
	default:
		return fps
	}
}

type rendererState int

const (
	rendererIdle rendererState = iota
	rendererRunning
	rendererStopped
)

// RendererOptions configures NewStandardRenderer.
type RendererOptions struct {
	Output io.Writer
	Width  int // 0 disables truncation
	Height int // 0 disables scroll-clipping
	FPS    int
	Logger *Logger
}

// StandardRenderer repaints line by line: each flush compares the pending
// frame with the one on screen and rewrites only rows that differ, moving
// the cursor relative to the render region.
//
// All fields are guarded by mu; the periodic flush never interleaves with
// Write, ClearScreen or cursor operations.
type StandardRenderer struct {
	mu     sync.Mutex
	out    io.Writer
	log    *Logger
	state  rendererState
	frame  time.Duration
	width  int
	height int

	needsRender       bool
	buf               string   // submitted, not yet painted
	lastRender        string   // last painted view
	lastRenderedLines []string // rows of the last painted view, nil forces a rewrite
	linesRendered     int      // rows occupied on screen by the render region

	altScreen      bool
	inlineRendered int // linesRendered of the main screen while in the alt screen

	stop chan struct{}
	done chan struct{}
}

// NewStandardRenderer creates an idle renderer.
func NewStandardRenderer(opts RendererOptions) *StandardRenderer {
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}

	return &StandardRenderer{
		out:         output,
		log:         logger,
		frame:       time.Second / time.Duration(ClampFPS(opts.FPS)),
		width:       opts.Width,
		height:      opts.Height,
		needsRender: true,
	}
}

// FrameInterval returns the time between flushes.
func (r *StandardRenderer) FrameInterval() time.Duration {
	return r.frame
}

// Start begins the periodic flush. Only an idle renderer can start.
func (r *StandardRenderer) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != rendererIdle {
		return
	}
	r.state = rendererRunning
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.ticker(r.stop, r.done)
}

func (r *StandardRenderer) ticker(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	t := time.NewTicker(r.frame)
	defer t.Stop()

	r.flush()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			r.flush()
		}
	}
}

// Stop ends the periodic flush, paints what is still pending, shows the
// cursor, leaves the alternate screen and moves to a fresh line.
func (r *StandardRenderer) Stop() {
	r.mu.Lock()
	if r.state != rendererRunning {
		r.state = rendererStopped
		r.mu.Unlock()
		return
	}
	r.state = rendererStopped
	close(r.stop)
	done := r.done
	r.mu.Unlock()

	// Give an in-flight flush a bounded amount of time to finish
	select {
	case <-done:
	case <-time.After(2 * r.frame):
		r.log.Warn("renderer: flush still running after %s", 2*r.frame)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.flushLocked()
	r.writeLocked(showCursor)
	if r.altScreen {
		r.altScreen = false
		r.writeLocked(exitAltScreen)
	}
	r.writeLocked(carriageReturn + lineFeed)
}

// Running reports whether the periodic flush is active.
func (r *StandardRenderer) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == rendererRunning
}

// MarkDirty flags the next Write as carrying a changed view.
func (r *StandardRenderer) MarkDirty() {
	r.mu.Lock()
	r.needsRender = true
	r.mu.Unlock()
}

// Write replaces the pending frame with view.
func (r *StandardRenderer) Write(view string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != rendererRunning || !r.needsRender {
		return
	}
	r.buf = view
	r.needsRender = false
}

func (r *StandardRenderer) flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()
}

func (r *StandardRenderer) flushLocked() {
	if r.buf == "" || r.buf == r.lastRender {
		return
	}

	lines := SplitFrame(r.buf, r.width, r.height)
	r.writeLocked(FrameToAnsi(r.lastRenderedLines, r.linesRendered, lines))

	r.lastRender = r.buf
	r.lastRenderedLines = lines
	r.linesRendered = len(lines)
	r.buf = ""
}

// writeLocked emits s in one write and flushes buffered outputs.
func (r *StandardRenderer) writeLocked(s string) {
	if _, err := io.WriteString(r.out, s); err != nil {
		r.log.Warn("renderer: write failed: %v", err)
		return
	}
	if f, ok := r.out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			r.log.Warn("renderer: flush failed: %v", err)
		}
	}
}

// repaintLocked forgets what is on screen so the next flush rewrites every
// row of the current frame.
func (r *StandardRenderer) repaintLocked() {
	if r.buf == "" {
		r.buf = r.lastRender
	}
	r.lastRender = ""
	r.lastRenderedLines = nil
}

// ClearScreen clears the terminal and homes the cursor. The current frame is
// painted again on the next flush.
func (r *StandardRenderer) ClearScreen() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writeLocked(clearScreen())
	r.repaintLocked()
	r.linesRendered = 0
}

// ShowCursor makes the terminal cursor visible.
func (r *StandardRenderer) ShowCursor() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writeLocked(showCursor)
}

// HideCursor hides the terminal cursor.
func (r *StandardRenderer) HideCursor() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writeLocked(hideCursor)
}

// EnterAltScreen switches to the alternate screen buffer.
func (r *StandardRenderer) EnterAltScreen() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.altScreen {
		return
	}
	r.altScreen = true
	r.inlineRendered = r.linesRendered

	r.writeLocked(enterAltScreen + clearScreen())
	r.repaintLocked()
	r.linesRendered = 0
}

// ExitAltScreen switches back to the main screen buffer. The terminal
// restores the cursor saved on entry, so painting resumes over the inline
// region.
func (r *StandardRenderer) ExitAltScreen() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.altScreen {
		return
	}
	r.altScreen = false

	r.writeLocked(exitAltScreen)
	r.repaintLocked()
	r.linesRendered = r.inlineRendered
	r.inlineRendered = 0
}

// AltScreen reports whether the alternate screen is active.
func (r *StandardRenderer) AltScreen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.altScreen
}

// Resize sets the clip bounds and repaints the current frame.
func (r *StandardRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width = width
	r.height = height
	r.repaintLocked()
}

// Size returns the clip bounds.
func (r *StandardRenderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}
