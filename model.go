// Package tide provides a message-driven terminal UI runtime.
//
// An application is a Model: Init returns an optional startup Cmd, Update
// applies one Msg and returns the next Model with an optional Cmd, and View
// renders the Model to a string. A Program owns the terminal, feeds Msgs to
// Update one at a time, runs Cmds in the background and repaints only the
// lines that changed.
package tide

// Msg is any event delivered to a Model. The runtime reserves a handful of
// types below; everything else is passed to Update untouched.
type Msg interface{}

// Model is the application state driven by a Program.
type Model interface {
	// Init returns a Cmd to run when the Program starts, or nil.
	Init() Cmd
	// Update applies msg and returns the next Model and an optional Cmd.
	Update(msg Msg) (Model, Cmd)
	// View renders the Model. Lines are separated by "\n".
	View() string
}

// KeyPressMsg is sent for every key read from the terminal.
//
// Code is the first rune of the key. For printable keys and control
// characters it is the key itself ('k', '\r', 0x03); for escape sequences it
// is the final byte of the sequence ('A' for the up arrow).
type KeyPressMsg struct {
	Code rune
	// Name is a readable key name such as "a", "enter", "ctrl+c" or "up".
	Name string
	// Seq holds the raw bytes read for the key.
	Seq string
}

// String returns the key name.
func (k KeyPressMsg) String() string {
	return k.Name
}

// QuitMsg stops the Program. The Model current when it is dequeued is the
// final Model.
type QuitMsg struct{}

// EnterAltScreenMsg switches the terminal to the alternate screen buffer.
type EnterAltScreenMsg struct{}

// ExitAltScreenMsg switches the terminal back to the main screen buffer.
type ExitAltScreenMsg struct{}

// ClearScreenMsg clears the terminal and repaints the current frame.
type ClearScreenMsg struct{}

// BatchMsg carries Cmds that are submitted to the executor individually.
// Update is never called with a BatchMsg.
type BatchMsg []Cmd

// WindowSizeMsg reports the terminal size after a resize.
type WindowSizeMsg struct {
	Width  int
	Height int
}
