package gridui

// DefaultCellHeight is the cell height in logical pixels for window backends
const DefaultCellHeight = 30

// Geometry converts between native coordinates and grid cells.
type Geometry struct {
	CellWidth  int
	CellHeight int
}

// PixelGeometry returns the geometry for pixel-addressed windows.
// Cells are half as wide as they are tall.
func PixelGeometry(cellHeight int) Geometry {
	if cellHeight < 2 {
		cellHeight = DefaultCellHeight
	}
	return Geometry{CellWidth: cellHeight / 2, CellHeight: cellHeight}
}

// TextGeometry returns the geometry for backends whose native unit is
// already a character cell (terminals).
func TextGeometry() Geometry {
	return Geometry{CellWidth: 1, CellHeight: 1}
}

func (g Geometry) valid() bool {
	return g.CellWidth > 0 && g.CellHeight > 0
}

// PixelToCell converts a native position to a grid cell.
// Fractions are truncated; negative positions clamp to zero.
func (g Geometry) PixelToCell(x, y int) (col, row uint32) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return uint32(x / g.CellWidth), uint32(y / g.CellHeight)
}

// GridSize returns how many whole cells fit in a client area
func (g Geometry) GridSize(clientW, clientH int) (cols, rows uint32) {
	return g.PixelToCell(clientW, clientH)
}

// CellOrigin returns the native position of a cell's top-left corner
func (g Geometry) CellOrigin(col, row int) (x, y int) {
	return col * g.CellWidth, row * g.CellHeight
}

// Extent returns the native size covered by a screen
func (g Geometry) Extent(s Screen) (w, h int) {
	return s.Width() * g.CellWidth, s.Height() * g.CellHeight
}

// Rect is a native-space rectangle
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers nothing
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// FillerRects returns the client area not covered by the screen:
// the strip to the right of it and the strip below it.
func (g Geometry) FillerRects(s Screen, clientW, clientH int) []Rect {
	filledW, filledH := g.Extent(s)
	rects := make([]Rect, 0, 2)
	right := Rect{X: filledW, Y: 0, W: clientW - filledW, H: clientH}
	if !right.Empty() {
		rects = append(rects, right)
	}
	below := Rect{X: 0, Y: filledH, W: min(filledW, clientW), H: clientH - filledH}
	if !below.Empty() {
		rects = append(rects, below)
	}
	return rects
}
