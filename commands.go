package tide

import "time"

// Cmd is a deferred unit of work. It runs on an executor goroutine and may
// block. A nil result means the Cmd produced no follow-up event.
type Cmd func() Msg

// Quit is a Cmd that stops the Program.
func Quit() Msg {
	return QuitMsg{}
}

// EnterAltScreen is a Cmd that switches to the alternate screen buffer.
func EnterAltScreen() Msg {
	return EnterAltScreenMsg{}
}

// ExitAltScreen is a Cmd that switches back to the main screen buffer.
func ExitAltScreen() Msg {
	return ExitAltScreenMsg{}
}

// ClearScreen is a Cmd that clears the terminal and repaints the view.
func ClearScreen() Msg {
	return ClearScreenMsg{}
}

// Batch combines Cmds so they run concurrently. Nil Cmds are dropped.
// There is no ordering between the resulting Msgs.
//
// Example:
//
//	return m, tide.Batch(fetchUser, tide.Tick(time.Second, tickMsg))
func Batch(cmds ...Cmd) Cmd {
	valid := make([]Cmd, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd != nil {
			valid = append(valid, cmd)
		}
	}

	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return func() Msg {
			return BatchMsg(valid)
		}
	}
}

// Tick waits for d and then builds a Msg from the time it fired.
//
// Example:
//
//	type tickMsg time.Time
//
//	func tick() tide.Cmd {
//	    return tide.Tick(time.Second, func(t time.Time) tide.Msg {
//	        return tickMsg(t)
//	    })
//	}
func Tick(d time.Duration, fn func(time.Time) Msg) Cmd {
	return func() Msg {
		t := time.NewTimer(d)
		defer t.Stop()
		return fn(<-t.C)
	}
}
