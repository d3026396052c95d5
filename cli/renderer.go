package cli

import (
	"strconv"
	"strings"

	"github.com/phroun/gridui"
)

// Escape sequences written to the host terminal
const (
	csiAltScreenEnter = "\033[?1049h"
	csiAltScreenExit  = "\033[?1049l"
	csiCursorHide     = "\033[?25l"
	csiCursorShow     = "\033[?25h"
	csiMouseClickOn   = "\033[?1000h"
	csiMouseClickOff  = "\033[?1000l"
	csiMouseSGROn     = "\033[?1006h"
	csiMouseSGROff    = "\033[?1006l"
	csiAutoWrapOff    = "\033[?7l"
	csiAutoWrapOn     = "\033[?7h"
	csiClear          = "\033[2J\033[H"
	csiSGR0           = "\033[0m"
)

// Renderer batches one redraw into a single write.
// Colors are emitted as true color SGR, only when they change.
type Renderer struct {
	output strings.Builder

	attrSet bool
	fg, bg  gridui.Color
}

// Begin starts a new frame
func (r *Renderer) Begin() {
	r.output.Reset()
	r.attrSet = false
	r.output.WriteString(csiCursorHide)
}

// String returns the frame built so far, ending with an attribute reset
func (r *Renderer) String() string {
	return r.output.String() + csiSGR0
}

// FillRect implements gridui.Painter
func (r *Renderer) FillRect(rect gridui.Rect, c gridui.Color) {
	if rect.Empty() {
		return
	}
	r.setColors(c, c)
	blank := strings.Repeat(" ", rect.W)
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		r.moveTo(rect.X, y)
		r.output.WriteString(blank)
	}
}

// DrawGlyph implements gridui.Painter
func (r *Renderer) DrawGlyph(x, y int, g gridui.Glyph) {
	r.moveTo(x, y)
	r.setColors(g.Foreground, g.Background)
	r.output.WriteRune(gridui.DisplayRune(g.Character))
}

// moveTo positions the cursor at a 0-based cell
func (r *Renderer) moveTo(x, y int) {
	r.output.WriteString("\033[")
	r.output.WriteString(strconv.Itoa(y + 1))
	r.output.WriteByte(';')
	r.output.WriteString(strconv.Itoa(x + 1))
	r.output.WriteByte('H')
}

func (r *Renderer) setColors(fg, bg gridui.Color) {
	if r.attrSet && fg == r.fg && bg == r.bg {
		return
	}
	var sgr []string
	if !r.attrSet || fg != r.fg {
		sgr = append(sgr, fg.ToSGRCode(true))
	}
	if !r.attrSet || bg != r.bg {
		sgr = append(sgr, bg.ToSGRCode(false))
	}
	r.output.WriteString("\033[" + strings.Join(sgr, ";") + "m")
	r.fg, r.bg = fg, bg
	r.attrSet = true
}
