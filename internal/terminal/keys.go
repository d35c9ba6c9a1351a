package terminal

import (
	"unicode/utf8"
)

// KeyKind distinguishes presses from repeats and releases.
type KeyKind uint8

const (
	KeyPress KeyKind = iota
	KeyRepeat
	KeyRelease
)

func (k KeyKind) String() string {
	switch k {
	case KeyPress:
		return "press"
	case KeyRepeat:
		return "repeat"
	case KeyRelease:
		return "release"
	default:
		return "unknown"
	}
}

// KeyCode identifies the key. KeyRune and KeyCtrl carry a Rune.
type KeyCode uint8

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyCtrl
)

// KeyEvent is a single decoded key.
type KeyEvent struct {
	Code KeyCode
	Rune rune
	Kind KeyKind
}

// Char builds a press of the printable rune r.
func Char(r rune) KeyEvent {
	return KeyEvent{Code: KeyRune, Rune: r, Kind: KeyPress}
}

func (k KeyEvent) String() string {
	switch k.Code {
	case KeyRune:
		return string(k.Rune)
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyCtrl:
		return "ctrl+" + string(k.Rune)
	default:
		return "unknown"
	}
}

// keyDecoder turns raw-mode input bytes into key presses. Escape sequences
// (CSI and SS3) are consumed without producing events; a lone ESC is reported
// as KeyEscape. Incomplete UTF-8 and CSI sequences carry over between calls.
type keyDecoder struct {
	pending []byte
	inCSI   bool
}

func (d *keyDecoder) decode(p []byte) []KeyEvent {
	buf := p
	if len(d.pending) > 0 {
		buf = append(d.pending, p...)
		d.pending = nil
	}

	var out []KeyEvent
	for i := 0; i < len(buf); {
		b := buf[i]
		if d.inCSI {
			i++
			if b >= 0x40 && b <= 0x7e {
				d.inCSI = false
			}
			continue
		}
		switch {
		case b == 0x1b:
			if i+1 < len(buf) && buf[i+1] == '[' {
				d.inCSI = true
				i += 2
				continue
			}
			if i+2 < len(buf) && buf[i+1] == 'O' {
				i += 3
				continue
			}
			out = append(out, KeyEvent{Code: KeyEscape, Kind: KeyPress})
			i++
		case b == '\r' || b == '\n':
			out = append(out, KeyEvent{Code: KeyEnter, Kind: KeyPress})
			i++
		case b == '\t':
			out = append(out, KeyEvent{Code: KeyTab, Kind: KeyPress})
			i++
		case b == 0x7f || b == 0x08:
			out = append(out, KeyEvent{Code: KeyBackspace, Kind: KeyPress})
			i++
		case b < 0x20:
			out = append(out, KeyEvent{Code: KeyCtrl, Rune: rune(b) + '`', Kind: KeyPress})
			i++
		default:
			if !utf8.FullRune(buf[i:]) {
				d.pending = append([]byte(nil), buf[i:]...)
				return out
			}
			r, size := utf8.DecodeRune(buf[i:])
			out = append(out, Char(r))
			i += size
		}
	}
	return out
}
