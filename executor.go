package tide

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Executor runs Cmds off the event loop and hands their Msgs back through
// send. Cmds run concurrently with each other and with the loop; completion
// order follows execution time, not submission order.
type Executor struct {
	send   func(Msg)
	log    *Logger
	slots  *semaphore.Weighted // nil means unbounded
	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool
	wg     sync.WaitGroup
}

// ExecutorOptions configures NewExecutor.
type ExecutorOptions struct {
	// MaxWorkers bounds how many Cmds run at once (0 = unbounded).
	MaxWorkers int
	Logger     *Logger
}

// NewExecutor creates an executor delivering results to send.
func NewExecutor(send func(Msg), opts ExecutorOptions) *Executor {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Executor{
		send:   send,
		log:    logger,
		ctx:    ctx,
		cancel: cancel,
	}
	if opts.MaxWorkers > 0 {
		e.slots = semaphore.NewWeighted(int64(opts.MaxWorkers))
	}
	return e
}

// Submit schedules cmd and returns immediately. It reports false when cmd
// is nil or the executor has been shut down.
func (e *Executor) Submit(cmd Cmd) bool {
	if cmd == nil {
		return false
	}
	if e.closed.Load() {
		e.log.Debug("executor closed, dropping command")
		return false
	}

	e.wg.Add(1)
	go e.run(cmd)
	return true
}

func (e *Executor) run(cmd Cmd) {
	defer e.wg.Done()

	if e.slots != nil {
		if err := e.slots.Acquire(e.ctx, 1); err != nil {
			// Shut down before a slot freed up: the command never starts
			e.log.Debug("command cancelled before start: %v", err)
			return
		}
		defer e.slots.Release(1)
	}

	msg, ok := e.execute(cmd)
	if ok && msg != nil {
		e.send(msg)
	}
}

// execute runs cmd, turning a panic into "no message".
func (e *Executor) execute(cmd Cmd) (msg Msg, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("command panicked: %v\n%s", r, debug.Stack())
			e.log.Trace("command.panic", map[string]any{"error": fmt.Sprint(r)})
			msg, ok = nil, false
		}
	}()
	return cmd(), true
}

// Shutdown stops accepting Cmds and cancels those still waiting for a worker
// slot. Running Cmds are not interrupted.
func (e *Executor) Shutdown() {
	if e.closed.Swap(true) {
		return
	}
	e.cancel()
}

// Closed reports whether Shutdown has been called.
func (e *Executor) Closed() bool {
	return e.closed.Load()
}

// Wait blocks until every submitted Cmd has returned or been cancelled.
func (e *Executor) Wait() {
	e.wg.Wait()
}
