package event

import "unicode/utf8"

// csiKeys maps the final byte of a CSI sequence (ESC [ <final>) to a
// key code. Covers the cursor and home/end keys every terminal emits.
var csiKeys = map[byte]KeyCode{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// ss3Keys maps the final byte of an SS3 sequence (ESC O <final>),
// emitted by terminals in application-cursor mode and for F1-F4.
var ss3Keys = map[byte]KeyCode{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// csiTildeKeys maps the numeric parameter of a CSI ~ sequence
// (ESC [ <n> ~) to a key code.
var csiTildeKeys = map[int]KeyCode{
	1: KeyHome,
	3: KeyDelete,
	4: KeyEnd,
	5: KeyPgUp,
	6: KeyPgDn,
	7: KeyHome,
	8: KeyEnd,
}

// parseKeys decodes one raw-mode read into zero or more key events.
// A single read may carry several keypresses (paste, fast typing) or a
// multi-byte escape sequence. Unrecognized escape sequences are skipped
// rather than misreported as Esc plus garbage.
func parseKeys(buf []byte) []KeyEvent {
	var keys []KeyEvent
	for len(buf) > 0 {
		k, n := parseOne(buf)
		if n == 0 {
			// Defensive: always make progress.
			n = 1
		}
		buf = buf[n:]
		if k != nil {
			keys = append(keys, *k)
		}
	}
	return keys
}

// parseOne decodes the first key in buf, returning the key (nil if the
// bytes should be discarded) and the number of bytes consumed.
func parseOne(buf []byte) (*KeyEvent, int) {
	b := buf[0]

	switch {
	case b == 0x1b:
		return parseEscape(buf)
	case b == '\r' || b == '\n':
		return &KeyEvent{Code: KeyEnter}, 1
	case b == '\t':
		return &KeyEvent{Code: KeyTab}, 1
	case b == 0x7f || b == 0x08:
		return &KeyEvent{Code: KeyBackspace}, 1
	case b < 0x20:
		// Control byte: Ctrl+A..Ctrl+Z map onto 0x01..0x1a.
		return &KeyEvent{Code: KeyRune, Rune: rune(b) + 'a' - 1, Mods: ModCtrl}, 1
	}

	r, n := utf8.DecodeRune(buf)
	if r == utf8.RuneError && n <= 1 {
		return nil, 1
	}
	return &KeyEvent{Code: KeyRune, Rune: r}, n
}

// parseEscape decodes an escape-prefixed input: a bare Esc keypress,
// an Alt-modified character, a CSI sequence, or an SS3 sequence.
func parseEscape(buf []byte) (*KeyEvent, int) {
	if len(buf) == 1 {
		return &KeyEvent{Code: KeyEsc}, 1
	}

	switch buf[1] {
	case '[':
		return parseCSI(buf)
	case 'O':
		if len(buf) >= 3 {
			if code, ok := ss3Keys[buf[2]]; ok {
				return &KeyEvent{Code: code}, 3
			}
			return nil, 3
		}
		return &KeyEvent{Code: KeyEsc}, 1
	default:
		// ESC followed by a character is Alt+<char>.
		r, n := utf8.DecodeRune(buf[1:])
		if r == utf8.RuneError && n <= 1 {
			return &KeyEvent{Code: KeyEsc}, 1
		}
		return &KeyEvent{Code: KeyRune, Rune: r, Mods: ModAlt}, 1 + n
	}
}

// parseCSI decodes ESC [ <params> <final>. Only the small set of
// sequences a cell-based loop cares about is recognized; anything else
// (mouse reports, bracketed paste markers) is consumed and dropped.
func parseCSI(buf []byte) (*KeyEvent, int) {
	// Scan past parameter and intermediate bytes to the final byte.
	i := 2
	param := 0
	for i < len(buf) && buf[i] >= 0x30 && buf[i] <= 0x3f {
		if buf[i] >= '0' && buf[i] <= '9' {
			param = param*10 + int(buf[i]-'0')
		}
		i++
	}
	if i >= len(buf) {
		// Truncated sequence; treat the lone ESC as Esc.
		return &KeyEvent{Code: KeyEsc}, 1
	}

	final := buf[i]
	consumed := i + 1

	if code, ok := csiKeys[final]; ok {
		return &KeyEvent{Code: code}, consumed
	}
	if final == 'Z' {
		return &KeyEvent{Code: KeyTab, Mods: ModShift}, consumed
	}
	if final == '~' {
		if code, ok := csiTildeKeys[param]; ok {
			return &KeyEvent{Code: code}, consumed
		}
	}
	return nil, consumed
}
