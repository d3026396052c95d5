package griduiqt

import (
	"github.com/mappu/miqt/qt"
	"github.com/phroun/gridui"
)

// qtPainter draws cells with a QPainter during a paint event
type qtPainter struct {
	painter    *qt.QPainter
	cellWidth  int
	cellHeight int
	ascent     int
}

func qColor(c gridui.Color) *qt.QColor {
	return qt.NewQColor3(int(c.R), int(c.G), int(c.B))
}

func (p *qtPainter) FillRect(r gridui.Rect, c gridui.Color) {
	p.painter.FillRect5(r.X, r.Y, r.W, r.H, qColor(c))
}

func (p *qtPainter) DrawGlyph(x, y int, g gridui.Glyph) {
	p.painter.FillRect5(x, y, p.cellWidth, p.cellHeight, qColor(g.Background))

	r, ok := gridui.Decode(g.Character)
	if !ok {
		p.drawMissingBox(x, y, g.Foreground)
		return
	}
	if r == ' ' {
		return
	}
	p.painter.SetPenWithPen(qt.NewQPen3(qColor(g.Foreground)))
	p.painter.DrawText3(x, y+p.ascent, string(r))
}

// drawMissingBox outlines the cell so unsupported codes stand out
func (p *qtPainter) drawMissingBox(x, y int, fg gridui.Color) {
	c := qColor(fg)
	inset := 2
	w := p.cellWidth - 2*inset
	h := p.cellHeight - 2*inset
	if w <= 0 || h <= 0 {
		return
	}
	left, top := x+inset, y+inset
	p.painter.FillRect5(left, top, w, 1, c)
	p.painter.FillRect5(left, top+h-1, w, 1, c)
	p.painter.FillRect5(left, top, 1, h, c)
	p.painter.FillRect5(left+w-1, top, 1, h, c)
}

// fitFont returns the largest font whose "M" fits one cell, and its ascent
func fitFont(family string, cellWidth, cellHeight int) (*qt.QFont, int) {
	size := cellHeight
	for {
		font := qt.NewQFont6(family, 12)
		font.SetPixelSize(size)
		font.SetFixedPitch(true)
		metrics := qt.NewQFontMetrics(font)
		if size <= 4 || (metrics.HorizontalAdvance("M") <= cellWidth && metrics.Height() <= cellHeight) {
			return font, metrics.Ascent()
		}
		size--
	}
}
