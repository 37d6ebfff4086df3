package tide

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muesli/cancelreader"
)

// sequenceTimeout is how long the start of an escape sequence waits for the
// rest of it before it is decoded as it is.
const sequenceTimeout = 50 * time.Millisecond

// inputReader turns terminal input into KeyPressMsgs. Ctrl+C becomes a
// QuitMsg, the same as an interrupt from a cooked terminal.
type inputReader struct {
	reader  cancelreader.CancelReader
	send    func(Msg)
	running func() bool
	log     *Logger
	done    chan struct{}

	mu      sync.Mutex
	decoder keyDecoder
	timer   *time.Timer
	gen     int
}

// startInput begins reading in on its own goroutine.
func startInput(in io.Reader, send func(Msg), running func() bool, log *Logger) (*inputReader, error) {
	reader, err := cancelreader.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("create input reader: %w", err)
	}

	ir := &inputReader{
		reader:  reader,
		send:    send,
		running: running,
		log:     log,
		done:    make(chan struct{}),
	}
	go ir.loop()
	return ir, nil
}

func (ir *inputReader) loop() {
	defer close(ir.done)

	buf := make([]byte, 256)
	for {
		n, err := ir.reader.Read(buf)
		if n > 0 {
			ir.handle(buf[:n])
		}
		if err == nil {
			continue
		}
		ir.flushPending(-1)

		switch {
		case errors.Is(err, cancelreader.ErrCanceled):
			// Shutdown tore the reader down
		case errors.Is(err, io.EOF):
			ir.log.Debug("input: end of input")
		case !ir.running():
			// Errors while shutting down are expected
		default:
			// The Program keeps running for programmatic control
			ir.log.Error("input: read failed: %v", err)
		}
		return
	}
}

// handle decodes one read and sends the completed keys. An unfinished
// sequence is flushed by a timer unless the next read completes it.
func (ir *inputReader) handle(b []byte) {
	ir.mu.Lock()
	defer ir.mu.Unlock()

	if ir.timer != nil {
		ir.timer.Stop()
		ir.timer = nil
	}
	ir.gen++
	ir.dispatch(ir.decoder.decode(b))

	if ir.decoder.buffered() {
		gen := ir.gen
		ir.timer = time.AfterFunc(sequenceTimeout, func() { ir.flushPending(gen) })
	}
}

// flushPending sends whatever the decoder holds back. A timer only flushes
// the read that armed it; gen -1 flushes unconditionally.
func (ir *inputReader) flushPending(gen int) {
	ir.mu.Lock()
	defer ir.mu.Unlock()

	if gen >= 0 && gen != ir.gen {
		return
	}
	if ir.timer != nil {
		ir.timer.Stop()
		ir.timer = nil
	}
	ir.dispatch(ir.decoder.flush())
}

func (ir *inputReader) dispatch(keys []KeyPressMsg) {
	if !ir.running() {
		return
	}
	for _, key := range keys {
		if key.Seq == CtrlC {
			ir.send(QuitMsg{})
			continue
		}
		ir.send(key)
	}
}

// stop cancels a pending read and waits up to timeout for the reader to
// return. Readers that cannot be cancelled (non-file inputs) are left
// blocked; whatever they read afterwards is discarded.
func (ir *inputReader) stop(timeout time.Duration) {
	if ir == nil {
		return
	}
	if ir.reader.Cancel() {
		select {
		case <-ir.done:
		case <-time.After(timeout):
			ir.log.Warn("input: reader did not stop within %s", timeout)
		}
	}
	if err := ir.reader.Close(); err != nil {
		ir.log.Warn("input: close failed: %v", err)
	}
}
