package gridui

import (
	"errors"
	"testing"
)

func spaces(n int) []Glyph {
	glyphs := make([]Glyph, n)
	for i := range glyphs {
		glyphs[i] = Glyph{Character: 0, Foreground: DefaultForeground, Background: DefaultBackground}
	}
	return glyphs
}

func TestNewScreenShape(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		n       int
		wantErr bool
		rows    int
	}{
		{"empty", 0, 0, false, 0},
		{"zero width with glyphs", 0, 3, true, 0},
		{"negative width", -1, 0, true, 0},
		{"ragged", 3, 4, true, 0},
		{"one row", 3, 3, false, 1},
		{"two rows", 2, 4, false, 2},
		{"width without rows", 5, 0, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScreen(tt.width, spaces(tt.n))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidScreen) {
					t.Fatalf("err = %v, want ErrInvalidScreen", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Height() != tt.rows {
				t.Errorf("Height() = %d, want %d", s.Height(), tt.rows)
			}
			if s.Len() != tt.n {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.n)
			}
		})
	}
}

func TestNewScreenCopiesGlyphs(t *testing.T) {
	buf := spaces(4)
	s := MustScreen(2, buf)
	buf[0].Character = 0x1000
	if g, _ := s.At(0, 0); g.Character != 0 {
		t.Errorf("screen changed with caller buffer: %#x", g.Character)
	}
	out := s.Glyphs()
	out[1].Character = 0x1000
	if g, _ := s.At(1, 0); g.Character != 0 {
		t.Error("Glyphs() aliases the screen")
	}
}

func TestScreenRowsAndAt(t *testing.T) {
	codes, _ := EncodeString("abcdef")
	glyphs := make([]Glyph, len(codes))
	for i, c := range codes {
		glyphs[i] = Glyph{Character: c}
	}
	s := MustScreen(3, glyphs)

	rows := s.Rows()
	if len(rows) != 2 || len(rows[0]) != 3 || len(rows[1]) != 3 {
		t.Fatalf("Rows() shape wrong: %v", rows)
	}
	if g, ok := s.At(2, 1); !ok || g.Character != codes[5] {
		t.Errorf("At(2,1) = %v, %v", g, ok)
	}
	if _, ok := s.At(3, 0); ok {
		t.Error("At(3,0) should be out of range")
	}
	if text, ok := s.Text(1); !ok || text != "def" {
		t.Errorf("Text(1) = %q, %v", text, ok)
	}
}

func TestEmptyScreen(t *testing.T) {
	s := EmptyScreen()
	if !s.IsEmpty() || s.Width() != 0 || s.Height() != 0 || s.Rows() != nil {
		t.Errorf("EmptyScreen not empty: %+v", s)
	}
	if FilledScreen(0, 3, Glyph{}).Len() != 0 {
		t.Error("FilledScreen with zero cols should be empty")
	}
	if got := FilledScreen(4, 3, Glyph{}).Len(); got != 12 {
		t.Errorf("FilledScreen(4,3).Len() = %d", got)
	}
}

func TestColorWords(t *testing.T) {
	c := RGB24(0x123456)
	if c != (Color{R: 0x12, G: 0x34, B: 0x56}) {
		t.Errorf("RGB24 = %+v", c)
	}
	if c.Uint32() != 0x123456 {
		t.Errorf("Uint32 = %#x", c.Uint32())
	}
	if RGB24(0xff000000) != (Color{}) {
		t.Error("RGB24 should ignore the top byte")
	}
}

func TestParseHexColor(t *testing.T) {
	c, ok := ParseHexColor("#D4D0C8")
	if !ok || c != FillerColor {
		t.Errorf("ParseHexColor = %+v, %v", c, ok)
	}
	if _, ok := ParseHexColor("#GG0000"); ok {
		t.Error("invalid nibble accepted")
	}
	if c.ToHex() != "#D4D0C8" {
		t.Errorf("ToHex = %s", c.ToHex())
	}
}
