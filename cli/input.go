package cli

import (
	"time"
	"unicode/utf8"
)

// inputKind classifies decoded terminal input
type inputKind int

const (
	inputRune      inputKind = iota // A typed character
	inputPress                      // Left mouse button pressed
	inputRelease                    // Left mouse button released
	inputInterrupt                  // Ctrl-C or Ctrl-D
)

// inputEvent is one decoded unit of terminal input.
// Mouse positions are 0-based cells.
type inputEvent struct {
	kind inputKind
	r    rune
	x, y int
}

// maxPending bounds an unfinished escape sequence held between reads
const maxPending = 32

// escapeTimeout is how long held bytes wait for the rest of their sequence
const escapeTimeout = 50 * time.Millisecond

// inputParser decodes raw tty bytes: UTF-8 text, SGR mouse reports
// (ESC [ < Btn ; X ; Y M/m) and the interrupt keys. Other escape
// sequences (cursor keys, function keys) are consumed and ignored.
// Sequences split across reads are carried over to the next feed.
type inputParser struct {
	pending []byte
}

// feed decodes data, appending to out
func (p *inputParser) feed(data []byte, out []inputEvent) []inputEvent {
	buf := make([]byte, 0, len(p.pending)+len(data))
	buf = append(append(buf, p.pending...), data...)
	p.pending = p.pending[:0]

	i := 0
	for i < len(buf) {
		b := buf[i]
		switch {
		case b == 0x03 || b == 0x04: // Ctrl-C, Ctrl-D
			out = append(out, inputEvent{kind: inputInterrupt})
			i++

		case b == 0x1b:
			n, ev, ok := parseEscape(buf[i:])
			if n == 0 {
				// Incomplete: wait for more bytes unless it has grown past
				// any sequence we understand. A lone ESC is held too; the
				// rest of a sequence may be in the next read.
				rest := buf[i:]
				if len(rest) < maxPending {
					p.pending = append(p.pending, rest...)
				}
				return out
			}
			if ok {
				out = append(out, ev)
			}
			i += n

		case b < 0x80:
			out = append(out, inputEvent{kind: inputRune, r: rune(b)})
			i++

		default:
			if !utf8.FullRune(buf[i:]) {
				p.pending = append(p.pending, buf[i:]...)
				return out
			}
			r, size := utf8.DecodeRune(buf[i:])
			out = append(out, inputEvent{kind: inputRune, r: r})
			i += size
		}
	}
	return out
}

// waiting reports whether bytes are held for the next feed
func (p *inputParser) waiting() bool {
	return len(p.pending) > 0
}

// flush drops held bytes once escapeTimeout passed with no more input.
// A lone ESC key press carries no glyph, so nothing is emitted.
func (p *inputParser) flush() {
	p.pending = p.pending[:0]
}

// parseEscape parses a sequence starting with ESC.
// Returns bytes consumed (0 if incomplete) and an event if it maps to one.
func parseEscape(data []byte) (int, inputEvent, bool) {
	if len(data) < 2 {
		return 0, inputEvent{}, false
	}
	switch data[1] {
	case '[':
		if len(data) >= 3 && data[2] == '<' {
			return parseSGRMouse(data)
		}
		return skipCSI(data)
	case 'O':
		// SS3: ESC O <final>
		if len(data) < 3 {
			return 0, inputEvent{}, false
		}
		return 3, inputEvent{}, false
	default:
		// Alt+key: drop the ESC, the key is decoded on its own
		return 1, inputEvent{}, false
	}
}

// skipCSI consumes ESC [ params final
func skipCSI(data []byte) (int, inputEvent, bool) {
	for end := 2; end < len(data) && end < maxPending; end++ {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			return end + 1, inputEvent{}, false
		}
		if b < 0x20 || b > 0x3f {
			// Not a CSI after all; drop the ESC
			return 1, inputEvent{}, false
		}
	}
	if len(data) >= maxPending {
		return 1, inputEvent{}, false
	}
	return 0, inputEvent{}, false
}

// parseSGRMouse parses ESC [ < Btn ; X ; Y M/m
func parseSGRMouse(data []byte) (int, inputEvent, bool) {
	end := 3
	for end < len(data) && end < maxPending {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) {
		if len(data) >= maxPending {
			return 1, inputEvent{}, false
		}
		return 0, inputEvent{}, false
	}
	if data[end] != 'M' && data[end] != 'm' {
		return 1, inputEvent{}, false
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return end + 1, inputEvent{}, false
	}

	// Bits 0-1: button (0=left), bit 5: motion, bit 6: wheel
	if btn&0x03 != 0 || btn&32 != 0 || btn&64 != 0 {
		return end + 1, inputEvent{}, false
	}
	ev := inputEvent{kind: inputPress, x: x - 1, y: y - 1} // Convert to 0-indexed
	if data[end] == 'm' {
		ev.kind = inputRelease
	}
	return end + 1, ev, true
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y" format
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0

	for _, b := range data {
		if b == ';' {
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		} else if b >= '0' && b <= '9' {
			val = val*10 + int(b-'0')
			if val > 9999 { // Sanity limit
				return 0, 0, 0, false
			}
		} else {
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}
