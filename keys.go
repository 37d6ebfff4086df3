package tide

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Common terminal key codes.
const (
	// Basic keys
	Space   = " "
	Enter   = "\r"
	EnterLF = "\n"
	Tab     = "\t"
	Escape  = "\x1b"

	// Editing keys
	Backspace     = "\x7f"
	BackspaceCtrl = "\b"
	Delete        = "\x1b[3~"
	Insert        = "\x1b[2~"

	// Navigation keys
	Left     = "\x1b[D"
	Right    = "\x1b[C"
	Up       = "\x1b[A"
	Down     = "\x1b[B"
	Home     = "\x1b[H"
	HomeAlt  = "\x1b[1~"
	End      = "\x1b[F"
	EndAlt   = "\x1b[4~"
	PageUp   = "\x1b[5~"
	PageDown = "\x1b[6~"

	// Shift combinations
	ShiftTab   = "\x1b[Z"
	ShiftUp    = "\x1b[1;2A"
	ShiftDown  = "\x1b[1;2B"
	ShiftLeft  = "\x1b[1;2D"
	ShiftRight = "\x1b[1;2C"

	// Alt combinations
	AltBackspace = "\x1b\x7f"
	AltLeft      = "\x1b[1;3D"
	AltRight     = "\x1b[1;3C"
	AltUp        = "\x1b[1;3A"
	AltDown      = "\x1b[1;3B"

	// Ctrl+Arrow combinations
	CtrlUp    = "\x1b[1;5A"
	CtrlDown  = "\x1b[1;5B"
	CtrlLeft  = "\x1b[1;5D"
	CtrlRight = "\x1b[1;5C"

	// Function keys
	F1  = "\x1bOP"
	F2  = "\x1bOQ"
	F3  = "\x1bOR"
	F4  = "\x1bOS"
	F5  = "\x1b[15~"
	F6  = "\x1b[17~"
	F7  = "\x1b[18~"
	F8  = "\x1b[19~"
	F9  = "\x1b[20~"
	F10 = "\x1b[21~"
	F11 = "\x1b[23~"
	F12 = "\x1b[24~"
)

// Ctrl+letter bytes.
const (
	CtrlA = "\x01"
	CtrlC = "\x03"
	CtrlD = "\x04"
	CtrlL = "\x0c"
	CtrlZ = "\x1a"
)

var sequenceNames = map[string]string{
	Delete:       "delete",
	Insert:       "insert",
	Left:         "left",
	Right:        "right",
	Up:           "up",
	Down:         "down",
	Home:         "home",
	HomeAlt:      "home",
	End:          "end",
	EndAlt:       "end",
	PageUp:       "pgup",
	PageDown:     "pgdown",
	ShiftTab:     "shift+tab",
	ShiftUp:      "shift+up",
	ShiftDown:    "shift+down",
	ShiftLeft:    "shift+left",
	ShiftRight:   "shift+right",
	AltBackspace: "alt+backspace",
	AltLeft:      "alt+left",
	AltRight:     "alt+right",
	AltUp:        "alt+up",
	AltDown:      "alt+down",
	CtrlUp:       "ctrl+up",
	CtrlDown:     "ctrl+down",
	CtrlLeft:     "ctrl+left",
	CtrlRight:    "ctrl+right",
	F1:           "f1",
	F2:           "f2",
	F3:           "f3",
	F4:           "f4",
	F5:           "f5",
	F6:           "f6",
	F7:           "f7",
	F8:           "f8",
	F9:           "f9",
	F10:          "f10",
	F11:          "f11",
	F12:          "f12",
}

// knownSequences lists sequenceNames keys, longest first, so prefixes never
// shadow longer sequences.
var knownSequences = func() []string {
	seqs := make([]string, 0, len(sequenceNames))
	for seq := range sequenceNames {
		seqs = append(seqs, seq)
	}
	sort.Slice(seqs, func(i, j int) bool {
		if len(seqs[i]) != len(seqs[j]) {
			return len(seqs[i]) > len(seqs[j])
		}
		return seqs[i] < seqs[j]
	})
	return seqs
}()

// runeName names a single rune key.
func runeName(r rune) string {
	switch r {
	case '\r':
		return "enter"
	case '\t':
		return "tab"
	case ' ':
		return "space"
	case 0x7f:
		return "backspace"
	case 0x1b:
		return "esc"
	case 0:
		return "ctrl+@"
	}
	if r > 0 && r <= 0x1a {
		return "ctrl+" + string('a'+r-1)
	}
	if r < 0x20 {
		return "ctrl+" + string('@'+r)
	}
	return string(r)
}

// DecodeKeys splits raw terminal input into key presses. Known escape
// sequences become one key each, unknown CSI and SS3 sequences are kept
// whole, ESC followed by a rune is an alt combination, and everything else
// is decoded one UTF-8 rune at a time.
func DecodeKeys(input []byte) []KeyPressMsg {
	s := string(input)
	keys := make([]KeyPressMsg, 0, len(s))

	for len(s) > 0 {
		n, key := decodeKey(s)
		keys = append(keys, key)
		s = s[n:]
	}
	return keys
}

// decodeKey decodes the first key of s and reports how many bytes it used.
func decodeKey(s string) (int, KeyPressMsg) {
	if s[0] != 0x1b {
		r, size := utf8.DecodeRuneInString(s)
		return size, KeyPressMsg{Code: r, Name: runeName(r), Seq: s[:size]}
	}

	for _, seq := range knownSequences {
		if strings.HasPrefix(s, seq) {
			code := rune(seq[len(seq)-1])
			if seq == AltBackspace {
				code = 0x7f
			}
			return len(seq), KeyPressMsg{Code: code, Name: sequenceNames[seq], Seq: seq}
		}
	}

	if len(s) == 1 {
		return 1, KeyPressMsg{Code: 0x1b, Name: "esc", Seq: s}
	}

	switch s[1] {
	case '[':
		// CSI: parameters until a final byte in 0x40-0x7E
		i := 2
		for i < len(s) && !(s[i] >= 0x40 && s[i] <= 0x7e) {
			i++
		}
		if i == len(s) {
			return len(s), KeyPressMsg{Code: 0x1b, Name: "unknown", Seq: s}
		}
		return i + 1, KeyPressMsg{Code: rune(s[i]), Name: "unknown", Seq: s[:i+1]}
	case 'O':
		if len(s) >= 3 {
			return 3, KeyPressMsg{Code: rune(s[2]), Name: "unknown", Seq: s[:3]}
		}
	}

	r, size := utf8.DecodeRuneInString(s[1:])
	if r == 0x1b {
		// ESC ESC: report the first one alone
		return 1, KeyPressMsg{Code: 0x1b, Name: "esc", Seq: s[:1]}
	}
	return 1 + size, KeyPressMsg{Code: r, Name: "alt+" + runeName(r), Seq: s[:1+size]}
}

// maxPendingSequence bounds how much of an unfinished escape sequence is
// held back waiting for the rest of it.
const maxPendingSequence = 32

// keyDecoder decodes a stream of reads, holding back a CSI or SS3 sequence
// that was split across two reads until the rest of it arrives.
type keyDecoder struct {
	pending []byte
}

// decode returns the keys completed by b.
func (d *keyDecoder) decode(b []byte) []KeyPressMsg {
	d.pending = append(d.pending, b...)
	n := len(d.pending) - unfinishedSequence(d.pending)
	keys := DecodeKeys(d.pending[:n])
	d.pending = append(d.pending[:0], d.pending[n:]...)
	return keys
}

// flush decodes whatever is held back as it is.
func (d *keyDecoder) flush() []KeyPressMsg {
	keys := DecodeKeys(d.pending)
	d.pending = d.pending[:0]
	return keys
}

// buffered reports whether part of a sequence is held back.
func (d *keyDecoder) buffered() bool {
	return len(d.pending) > 0
}

// unfinishedSequence returns the length of the CSI or SS3 sequence at the
// end of b that still lacks its final byte, or 0.
func unfinishedSequence(b []byte) int {
	i := len(b) - 1
	for i >= 0 && b[i] != 0x1b {
		i--
	}
	if i < 0 {
		return 0
	}
	tail := b[i:]
	if len(tail) < 2 || len(tail) > maxPendingSequence {
		return 0
	}

	switch tail[1] {
	case 'O':
		if len(tail) == 2 {
			return 2
		}
	case '[':
		// Parameter and intermediate bytes only, no final byte yet
		for _, c := range tail[2:] {
			if c < 0x20 || c > 0x3f {
				return 0
			}
		}
		return len(tail)
	}
	return 0
}
