package tide

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Escape sequences emitted by the renderer.
const (
	carriageReturn   = "\r"
	lineFeed         = "\n"
	cursorDown       = ansi.CUD1
	eraseLineRight   = ansi.EraseLineRight
	eraseScreenBelow = ansi.EraseScreenBelow
	showCursor       = ansi.SetModeTextCursorEnable
	hideCursor       = ansi.ResetModeTextCursorEnable
	enterAltScreen   = ansi.SetModeAltScreenSaveCursor
	exitAltScreen    = ansi.ResetModeAltScreenSaveCursor
)

// cursorUp returns the sequence moving the cursor up n rows, or "" for n < 1.
func cursorUp(n int) string {
	if n < 1 {
		return ""
	}
	return ansi.CursorUp(n)
}

// clearScreen returns the sequence clearing the screen and homing the cursor.
func clearScreen() string {
	return ansi.EraseEntireScreen + ansi.CursorHomePosition
}

// StripAnsi removes ANSI escape sequences from a string,
// returning only the visible text content.
func StripAnsi(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return ansi.Strip(s)
}

// truncateLine cuts s to at most width cells, keeping escape sequences
// intact. A width below 1 disables truncation.
func truncateLine(s string, width int) string {
	if width < 1 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "")
}
