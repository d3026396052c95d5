package main

import "github.com/phroun/gridui"

const (
	title    = "gridui demo - type to echo, click to mark"
	maxCols  = 200
	maxRows  = 100
	maxTyped = maxCols * maxRows
)

var (
	titleColor = gridui.Color{R: 120, G: 200, B: 255}
	markColor  = gridui.Color{R: 90, G: 90, B: 140}
)

// echo is the demo application: a title row, the typed text wrapped from
// the third row down, and a highlight on the last clicked cell
type echo struct {
	fg, bg     gridui.Color
	cols, rows int
	typed      []gridui.GlyphCode

	marked           bool
	markCol, markRow int
}

func newEcho() *echo {
	return &echo{fg: gridui.DefaultForeground, bg: gridui.DefaultBackground}
}

// Handle applies one event. It returns false once the window has closed.
func (e *echo) Handle(ev gridui.InputEvent) bool {
	switch ev.Kind {
	case gridui.EventClose:
		return false
	case gridui.EventResize:
		e.cols = min(int(ev.Cols), maxCols)
		e.rows = min(int(ev.Rows), maxRows)
	case gridui.EventPointerDown:
		e.marked = true
		e.markCol, e.markRow = int(ev.Col), int(ev.Row)
	case gridui.EventKeyDown:
		e.typed = append(e.typed, ev.Key)
		if len(e.typed) > maxTyped {
			e.typed = append(e.typed[:0], e.typed[len(e.typed)-maxTyped:]...)
		}
	}
	return true
}

// Screen renders the current state at the last announced size
func (e *echo) Screen() gridui.Screen {
	if e.cols == 0 || e.rows == 0 {
		return gridui.EmptyScreen()
	}

	space, _ := gridui.Encode(' ')
	blank := gridui.Glyph{Character: space, Foreground: e.fg, Background: e.bg}
	glyphs := make([]gridui.Glyph, e.cols*e.rows)
	for i := range glyphs {
		glyphs[i] = blank
	}

	heading, _ := gridui.EncodeString(title)
	for i, c := range heading {
		if i >= e.cols {
			break
		}
		glyphs[i].Character = c
		glyphs[i].Foreground = titleColor
	}

	// Show the tail of the text that fits
	if avail := (e.rows - 2) * e.cols; avail > 0 {
		text := e.typed
		if len(text) > avail {
			text = text[len(text)-avail:]
		}
		for i, c := range text {
			glyphs[2*e.cols+i].Character = c
		}
	}

	if e.marked && e.markCol < e.cols && e.markRow < e.rows {
		glyphs[e.markRow*e.cols+e.markCol].Background = markColor
	}

	return gridui.MustScreen(e.cols, glyphs)
}
