package tide

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// screen is a small terminal model used to check what the renderer's
// escape sequences actually leave on screen. It understands the subset of
// sequences the renderer emits.
type screen struct {
	width, height int
	rows          [][]rune
	row, col      int

	cursorVisible bool
	altActive     bool
	savedRows     [][]rune
	savedRow      int
	savedCol      int
}

func newScreen(width, height int) *screen {
	s := &screen{width: width, height: height, cursorVisible: true}
	s.rows = blankRows(width, height)
	return s
}

func blankRows(width, height int) [][]rune {
	rows := make([][]rune, height)
	for i := range rows {
		rows[i] = blankRow(width)
	}
	return rows
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// Write interprets p.
func (s *screen) Write(p []byte) (int, error) {
	s.WriteString(string(p))
	return len(p), nil
}

func (s *screen) WriteString(p string) {
	for i := 0; i < len(p); {
		c := p[i]
		switch {
		case c == 0x1b && i+1 < len(p) && p[i+1] == '[':
			// CSI: parameters until a final byte in 0x40-0x7E
			j := i + 2
			for j < len(p) && !(p[j] >= 0x40 && p[j] <= 0x7e) {
				j++
			}
			if j == len(p) {
				return
			}
			s.csi(p[i+2:j], p[j])
			i = j + 1
		case c == '\r':
			s.col = 0
			i++
		case c == '\n':
			s.lineFeed()
			i++
		default:
			r, size := utf8.DecodeRuneInString(p[i:])
			s.put(r)
			i += size
		}
	}
}

func (s *screen) put(r rune) {
	if s.col >= s.width {
		s.col = 0
		s.lineFeed()
	}
	s.rows[s.row][s.col] = r
	s.col++
}

func (s *screen) lineFeed() {
	if s.row < s.height-1 {
		s.row++
		return
	}
	// Scroll up one row
	copy(s.rows, s.rows[1:])
	s.rows[s.height-1] = blankRow(s.width)
}

func (s *screen) csi(params string, final byte) {
	private := strings.HasPrefix(params, "?")
	params = strings.TrimPrefix(params, "?")

	n := 1
	if params != "" && !private {
		if v, err := strconv.Atoi(params); err == nil {
			n = v
		}
	}

	switch final {
	case 'A':
		s.row = max(0, s.row-n)
	case 'B':
		s.row = min(s.height-1, s.row+n)
	case 'H':
		s.row, s.col = 0, 0
	case 'K':
		for x := s.col; x < s.width; x++ {
			s.rows[s.row][x] = ' '
		}
	case 'J':
		if params == "2" {
			s.rows = blankRows(s.width, s.height)
			return
		}
		for x := s.col; x < s.width; x++ {
			s.rows[s.row][x] = ' '
		}
		for y := s.row + 1; y < s.height; y++ {
			s.rows[y] = blankRow(s.width)
		}
	case 'h', 'l':
		if !private {
			return
		}
		on := final == 'h'
		switch params {
		case "25":
			s.cursorVisible = on
		case "1049":
			s.switchBuffer(on)
		}
	}
}

func (s *screen) switchBuffer(alt bool) {
	if alt == s.altActive {
		return
	}
	s.altActive = alt
	if alt {
		s.savedRows = s.rows
		s.savedRow, s.savedCol = s.row, s.col
		s.rows = blankRows(s.width, s.height)
		return
	}
	s.rows = s.savedRows
	s.row, s.col = s.savedRow, s.savedCol
	s.savedRows = nil
}

// Lines returns every row with trailing spaces removed.
func (s *screen) Lines() []string {
	lines := make([]string, len(s.rows))
	for i, row := range s.rows {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return lines
}

// Region returns n rows starting at top.
func (s *screen) Region(top, n int) []string {
	return s.Lines()[top : top+n]
}
