//go:build unix

package tide

import (
	"os"
	"os/signal"
	"syscall"
)

// handleSignals turns SIGINT and SIGTERM into a QuitMsg and SIGWINCH into a
// resize. The returned function unregisters the handlers.
func (p *Program) handleSignals() func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGWINCH)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case sig := <-sigCh:
				if sig == syscall.SIGWINCH {
					p.resize()
					continue
				}
				p.log.Info("received %s, quitting", sig)
				p.Send(QuitMsg{})
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
