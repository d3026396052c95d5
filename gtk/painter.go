package griduigtk

import (
	"fmt"

	"github.com/gotk3/gotk3/cairo"
	"github.com/phroun/gridui"
)

// atlas is a bitmap font: gridui.AtlasSize cells stacked vertically.
// Opaque pixels are coverage; color comes from the glyph's foreground.
type atlas struct {
	surface    *cairo.Surface
	cellWidth  float64
	cellHeight float64
}

func loadAtlas(path string) (*atlas, error) {
	surface, err := cairo.NewSurfaceFromPNG(path)
	if err != nil {
		return nil, fmt.Errorf("load atlas %s: %w", path, err)
	}
	w, h := surface.GetWidth(), surface.GetHeight()
	if w <= 0 || h < gridui.AtlasSize {
		return nil, fmt.Errorf("atlas %s is %dx%d, need %d stacked cells", path, w, h, gridui.AtlasSize)
	}
	return &atlas{
		surface:    surface,
		cellWidth:  float64(w),
		cellHeight: float64(h / gridui.AtlasSize),
	}, nil
}

// cairoPainter draws cells on a GTK draw callback's context
type cairoPainter struct {
	cr         *cairo.Context
	cellWidth  int
	cellHeight int
	fontFamily string
	fontSize   int
	atlas      *atlas // nil draws with Pango
}

func (p *cairoPainter) FillRect(r gridui.Rect, c gridui.Color) {
	red, green, blue := c.Floats()
	p.cr.SetSourceRGB(red, green, blue)
	p.cr.Rectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
	p.cr.Fill()
}

func (p *cairoPainter) DrawGlyph(x, y int, g gridui.Glyph) {
	p.FillRect(gridui.Rect{X: x, Y: y, W: p.cellWidth, H: p.cellHeight}, g.Background)

	if p.atlas != nil {
		for _, part := range gridui.GlyphToParts(g.Character) {
			p.drawAtlasPart(x, y, part, g.Foreground)
		}
		return
	}

	r, ok := gridui.Decode(g.Character)
	if !ok {
		p.drawMissingBox(x, y, g.Foreground)
		return
	}
	if r == ' ' {
		return
	}
	fr, fg, fb := g.Foreground.Floats()
	p.cr.MoveTo(float64(x), float64(y))
	pangoRenderText(p.cr, string(r), p.fontFamily, p.fontSize, fr, fg, fb)
}

// drawAtlasPart masks the foreground color through one atlas cell
func (p *cairoPainter) drawAtlasPart(x, y int, part gridui.AtlasIndex, fg gridui.Color) {
	a := p.atlas
	cr := p.cr
	cr.Save()
	cr.Rectangle(float64(x), float64(y), float64(p.cellWidth), float64(p.cellHeight))
	cr.Clip()
	cr.Translate(float64(x), float64(y))
	cr.Scale(float64(p.cellWidth)/a.cellWidth, float64(p.cellHeight)/a.cellHeight)
	r, g, b := fg.Floats()
	cr.SetSourceRGB(r, g, b)
	cr.MaskSurface(a.surface, 0, -float64(part)*a.cellHeight)
	cr.Restore()
}

// drawMissingBox outlines the cell so unsupported codes stand out
func (p *cairoPainter) drawMissingBox(x, y int, fg gridui.Color) {
	r, g, b := fg.Floats()
	p.cr.SetSourceRGB(r, g, b)
	p.cr.SetLineWidth(1)
	inset := 2.5
	p.cr.Rectangle(float64(x)+inset, float64(y)+inset,
		float64(p.cellWidth)-2*inset, float64(p.cellHeight)-2*inset)
	p.cr.Stroke()
}

// fitFontSize picks the largest pixel size whose "M" fits one cell
func fitFontSize(family string, cellWidth, cellHeight int) int {
	size := cellHeight
	for size > 4 {
		w, h := pangoTextSize("M", family, size)
		if w <= cellWidth && h <= cellHeight {
			break
		}
		size--
	}
	return size
}
