package gridui

// Painter draws on a backend's native surface during a redraw
type Painter interface {
	// FillRect fills a native-space rectangle
	FillRect(r Rect, c Color)

	// DrawGlyph draws one cell with its top-left corner at (x, y)
	DrawGlyph(x, y int, g Glyph)
}

// Frame is the render thread's private state: the current screen and the
// last grid size announced to the application. It also carries the policies
// every backend shares (drain-to-latest, resize de-duplication, pixel to
// cell conversion, redraw and filler).
//
// A Frame belongs to the render thread and is never locked.
type Frame struct {
	link     *Link
	geometry Geometry

	screen Screen

	announced    bool
	announceCols uint32
	announceRows uint32

	closed bool
}

// NewFrame creates the render-thread state for a backend
func NewFrame(link *Link, geometry Geometry) *Frame {
	if !geometry.valid() {
		geometry = link.PixelGeometry()
	}
	return &Frame{
		link:     link,
		geometry: geometry,
	}
}

// Geometry returns the cell geometry
func (f *Frame) Geometry() Geometry {
	return f.geometry
}

// Screen returns the screen currently stored for redraws
func (f *Frame) Screen() Screen {
	return f.screen
}

// Announced returns the last grid size sent as a Resize event
func (f *Frame) Announced() (cols, rows uint32, ok bool) {
	return f.announceCols, f.announceRows, f.announced
}

// Closed reports whether Close has been emitted
func (f *Frame) Closed() bool {
	return f.closed
}

// CheckScreens drains every pending screen and keeps only the newest.
// Returns true if the stored screen was replaced and a redraw is needed.
func (f *Frame) CheckScreens() bool {
	if f.closed {
		return false
	}
	changed := false
	skipped := 0
	for {
		select {
		case s := <-f.link.screens:
			if changed {
				skipped++
			}
			f.screen = s
			changed = true
		default:
			if skipped > 0 {
				f.link.logger.Trace("skipped stale screens", "count", skipped)
			}
			return changed
		}
	}
}

// Resized handles a new client area size. A Resize event is emitted only
// when the grid size differs from the last one announced.
func (f *Frame) Resized(clientW, clientH int) bool {
	if f.closed {
		return false
	}
	cols, rows := f.geometry.GridSize(clientW, clientH)
	if f.announced && cols == f.announceCols && rows == f.announceRows {
		return false
	}
	f.announced = true
	f.announceCols, f.announceRows = cols, rows
	f.emit(ResizeEvent(cols, rows))
	return true
}

// PointerDown handles a primary button press at a native position
func (f *Frame) PointerDown(x, y int) {
	col, row := f.geometry.PixelToCell(x, y)
	f.emit(PointerDownEvent(col, row))
}

// PointerUp handles a primary button release at a native position
func (f *Frame) PointerUp(x, y int) {
	col, row := f.geometry.PixelToCell(x, y)
	f.emit(PointerUpEvent(col, row))
}

// KeyDown forwards a key press already translated to a glyph code
func (f *Frame) KeyDown(code GlyphCode) {
	f.emit(KeyDownEvent(code))
}

// KeyUp forwards a key release already translated to a glyph code
func (f *Frame) KeyUp(code GlyphCode) {
	f.emit(KeyUpEvent(code))
}

// KeyRune encodes a native key character and forwards it.
// Unsupported characters are logged and dropped.
func (f *Frame) KeyRune(down bool, r rune) bool {
	code, ok := Encode(r)
	if !ok {
		f.link.logger.Debug("unsupported key", "rune", r, "down", down)
		return false
	}
	if down {
		f.KeyDown(code)
	} else {
		f.KeyUp(code)
	}
	return true
}

// Close emits the Close event. Only the first call has any effect;
// after it every other Frame operation is a no-op.
func (f *Frame) Close() bool {
	if f.closed {
		return false
	}
	f.link.emit(CloseEvent())
	f.closed = true
	return true
}

// Paint redraws the stored screen cell by cell in row-major order and then
// fills the client area outside the screen's extent with FillerColor.
func (f *Frame) Paint(p Painter, clientW, clientH int) {
	for row, cells := range f.screen.Rows() {
		for col, g := range cells {
			x, y := f.geometry.CellOrigin(col, row)
			p.DrawGlyph(x, y, g)
		}
	}
	for _, r := range f.geometry.FillerRects(f.screen, clientW, clientH) {
		p.FillRect(r, FillerColor)
	}
}

func (f *Frame) emit(ev InputEvent) {
	if f.closed {
		return
	}
	f.link.emit(ev)
}
