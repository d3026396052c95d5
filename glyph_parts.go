package gridui

// AtlasIndex selects one cell of a bitmap font atlas.
type AtlasIndex = uint32

// Bitmap atlas layout. Cells are stacked vertically, one glyph part each.
const (
	AtlasMissingFrame  AtlasIndex = 0                                     // outline of the missing-glyph box
	AtlasMissingPieces AtlasIndex = 1                                     // first of the missing-glyph pieces
	AtlasMissingCount             = 16 * 8                                // pieces reserved for missing glyphs
	AtlasSymbols                  = AtlasMissingPieces + AtlasMissingCount // fixed symbols, code order
	AtlasDigits                   = AtlasSymbols + 10                      // digits 0-9
	AtlasSize                     = AtlasDigits + 10                       // total cells in an atlas
)

// MissingGlyphParts is drawn for any code without a simple atlas cell.
var MissingGlyphParts = []AtlasIndex{AtlasMissingFrame, AtlasMissingPieces, AtlasDigits + 9}

// GlyphToParts returns the atlas cells to overlay for a glyph code.
// Symbols and digits map to a single cell; everything else maps to
// the missing-glyph placeholder.
func GlyphToParts(code GlyphCode) []AtlasIndex {
	switch {
	case code < glyphDigitsStart:
		return []AtlasIndex{AtlasSymbols + code}
	case code < glyphDigitsStart+10:
		return []AtlasIndex{AtlasDigits + (code - glyphDigitsStart)}
	}
	parts := make([]AtlasIndex, len(MissingGlyphParts))
	copy(parts, MissingGlyphParts)
	return parts
}
