package gridui

import "fmt"

// Glyph is one grid cell: a character code and its colors
type Glyph struct {
	Character  GlyphCode
	Foreground Color
	Background Color
}

// Screen is a complete snapshot of the grid, row-major.
// A zero-width screen is empty. Screens are never modified once built;
// the next frame is a new Screen.
type Screen struct {
	glyphs []Glyph
	width  int
}

// NewScreen builds a screen from row-major glyphs.
// The slice is copied so the caller may reuse its buffer.
func NewScreen(width int, glyphs []Glyph) (Screen, error) {
	if width < 0 {
		return Screen{}, fmt.Errorf("%w: negative width %d", ErrInvalidScreen, width)
	}
	if width == 0 {
		if len(glyphs) != 0 {
			return Screen{}, fmt.Errorf("%w: %d glyphs with zero width", ErrInvalidScreen, len(glyphs))
		}
		return Screen{}, nil
	}
	if len(glyphs)%width != 0 {
		return Screen{}, fmt.Errorf("%w: %d glyphs is not a multiple of width %d", ErrInvalidScreen, len(glyphs), width)
	}
	owned := make([]Glyph, len(glyphs))
	copy(owned, glyphs)
	return Screen{glyphs: owned, width: width}, nil
}

// MustScreen is NewScreen that panics on an invalid shape
func MustScreen(width int, glyphs []Glyph) Screen {
	s, err := NewScreen(width, glyphs)
	if err != nil {
		panic(err)
	}
	return s
}

// EmptyScreen returns the zero-width screen
func EmptyScreen() Screen {
	return Screen{}
}

// FilledScreen returns a cols x rows screen with every cell set to g
func FilledScreen(cols, rows int, g Glyph) Screen {
	if cols <= 0 || rows <= 0 {
		return Screen{}
	}
	glyphs := make([]Glyph, cols*rows)
	for i := range glyphs {
		glyphs[i] = g
	}
	return Screen{glyphs: glyphs, width: cols}
}

// Width returns the number of columns
func (s Screen) Width() int {
	return s.width
}

// Height returns the number of rows
func (s Screen) Height() int {
	if s.width == 0 {
		return 0
	}
	return len(s.glyphs) / s.width
}

// Len returns the number of cells
func (s Screen) Len() int {
	return len(s.glyphs)
}

// IsEmpty reports whether the screen has no cells
func (s Screen) IsEmpty() bool {
	return s.width == 0
}

// At returns the glyph at (col, row). Out-of-range cells return false.
func (s Screen) At(col, row int) (Glyph, bool) {
	if col < 0 || row < 0 || col >= s.width || row >= s.Height() {
		return Glyph{}, false
	}
	return s.glyphs[row*s.width+col], true
}

// Rows returns the screen chunked into rows of Width glyphs.
// The row slices alias the screen and must not be modified.
func (s Screen) Rows() [][]Glyph {
	if s.width == 0 {
		return nil
	}
	rows := make([][]Glyph, 0, s.Height())
	for start := 0; start < len(s.glyphs); start += s.width {
		rows = append(rows, s.glyphs[start:start+s.width:start+s.width])
	}
	return rows
}

// Glyphs returns a copy of the row-major cells
func (s Screen) Glyphs() []Glyph {
	out := make([]Glyph, len(s.glyphs))
	copy(out, s.glyphs)
	return out
}

// Text decodes one row; false if any cell does not decode
func (s Screen) Text(row int) (string, bool) {
	if row < 0 || row >= s.Height() {
		return "", false
	}
	codes := make([]GlyphCode, s.width)
	for i, g := range s.glyphs[row*s.width : (row+1)*s.width] {
		codes[i] = g.Character
	}
	return DecodeString(codes)
}
