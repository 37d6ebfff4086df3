//go:build windows

package tide

import (
	"os"
	"os/signal"
	"syscall"
)

// handleSignals turns interrupts into a QuitMsg. Windows consoles do not
// deliver resize signals. The returned function unregisters the handlers.
func (p *Program) handleSignals() func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case sig := <-sigCh:
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
