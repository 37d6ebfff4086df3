package tide

import (
	"strings"
)

// SplitFrame splits a view into the rows the renderer paints.
//
// Trailing empty lines are dropped (an empty view is one blank row), frames
// taller than height keep only their last height rows, and every row is
// truncated to width cells. A width or height below 1 disables that limit.
func SplitFrame(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	for len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	// Scroll-clip: never paint more rows than the terminal has
	if height > 0 && len(lines) > height {
		lines = lines[len(lines)-height:]
	}

	for i, line := range lines {
		lines[i] = truncateLine(strings.TrimSuffix(line, "\r"), width)
	}
	return lines
}

// DiffLines returns the indexes of rows in next that must be repainted.
// prev holds the rows currently on screen; a row is reused only when the
// same index holds identical text.
func DiffLines(prev, next []string) []int {
	changed := make([]int, 0, len(next))
	for i, line := range next {
		if i < len(prev) && prev[i] == line {
			continue
		}
		changed = append(changed, i)
	}
	return changed
}

// FrameToAnsi builds the escape sequence that turns the painted frame into
// next.
//
// The cursor must sit in column 0 of the last painted row; prevCount is the
// number of rows painted last time and prev the text of those rows (nil
// forces every row to be rewritten). The sequence leaves the cursor in
// column 0 of the last row of next.
func FrameToAnsi(prev []string, prevCount int, next []string) string {
	if len(next) == 0 {
		next = []string{""}
	}
	if len(prev) > prevCount {
		prev = prev[:prevCount]
	}

	changed := DiffLines(prev, next)

	var sb strings.Builder
	sb.Grow(len(changed)*80 + len(next)*4)

	// Back to the top of the render region
	if prevCount > 1 {
		sb.WriteString(cursorUp(prevCount - 1))
	}

	c := 0
	for i := range next {
		if i > 0 {
			// Rows already on screen are reached without scrolling
			if i < prevCount {
				sb.WriteString(cursorDown)
			} else {
				sb.WriteString(lineFeed)
			}
		}

		if c < len(changed) && changed[c] == i {
			sb.WriteString(carriageReturn)
			sb.WriteString(eraseLineRight)
			sb.WriteString(next[i])
			c++
		}
	}

	// Clear stale rows left over from a taller frame
	if prevCount > len(next) {
		sb.WriteString(cursorDown)
		sb.WriteString(carriageReturn)
		sb.WriteString(eraseScreenBelow)
		sb.WriteString(cursorUp(1))
	}

	sb.WriteString(carriageReturn)
	return sb.String()
}
