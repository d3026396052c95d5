package gridui

import "github.com/rivo/uniseg"

// GlyphCode identifies the character drawn in one grid cell.
//
// The code space is partitioned into disjoint ranges:
//   - 0..9: fixed symbols (space _ - . , / \ : ; @)
//   - 10..19: digits 0-9
//   - 0x1000 + 16*n: lowercase a-z
//   - 0x3000 + 16*n: uppercase A-Z (case differs by bit 0x2000)
//
// Letter codes with a non-zero low nibble, and anything outside these
// ranges, do not decode.
type GlyphCode = uint32

const (
	glyphDigitsStart GlyphCode = 10
	glyphLowerStart  GlyphCode = 0x1000
	glyphCaseMask    GlyphCode = 0x2000
	glyphUpperStart            = glyphLowerStart ^ glyphCaseMask
	glyphLetterCount           = 26
	glyphLetterStep            = 16
	glyphLowerEnd              = glyphLowerStart + glyphLetterCount*glyphLetterStep
	glyphUpperEnd              = glyphLowerEnd ^ glyphCaseMask
)

// TerminatorSymbol is the symbol at code 9.
const TerminatorSymbol = '@'

// MissingRune is shown by text backends for codes that do not decode
const MissingRune = '?'

// fixedSymbols lists the symbols at codes 0..9 in code order
var fixedSymbols = [10]rune{' ', '_', '-', '.', ',', '/', '\\', ':', ';', TerminatorSymbol}

// Encode maps a character to its glyph code.
// Returns false for anything outside a-z, A-Z, 0-9 and the fixed symbols.
func Encode(ch rune) (GlyphCode, bool) {
	switch {
	case ch >= 'a' && ch <= 'z':
		return glyphLowerStart + GlyphCode(ch-'a')*glyphLetterStep, true
	case ch >= 'A' && ch <= 'Z':
		return glyphUpperStart + GlyphCode(ch-'A')*glyphLetterStep, true
	case ch >= '0' && ch <= '9':
		return glyphDigitsStart + GlyphCode(ch-'0'), true
	}
	for i, sym := range fixedSymbols {
		if sym == ch {
			return GlyphCode(i), true
		}
	}
	return 0, false
}

// Decode maps a glyph code back to its character
func Decode(code GlyphCode) (rune, bool) {
	if code&0x0f == 0 {
		if code >= glyphLowerStart && code < glyphLowerEnd {
			return 'a' + rune((code-glyphLowerStart)/glyphLetterStep), true
		}
		if code >= glyphUpperStart && code < glyphUpperEnd {
			return 'A' + rune((code-glyphUpperStart)/glyphLetterStep), true
		}
	}
	if code < glyphDigitsStart {
		return fixedSymbols[code], true
	}
	if code < glyphDigitsStart+10 {
		return '0' + rune(code-glyphDigitsStart), true
	}
	return 0, false
}

// DisplayRune returns the character for a code, or MissingRune
func DisplayRune(code GlyphCode) rune {
	if r, ok := Decode(code); ok {
		return r
	}
	return MissingRune
}

// DecodeString decodes every code. Any undecodable code fails the whole string.
func DecodeString(codes []GlyphCode) (string, bool) {
	buf := make([]rune, 0, len(codes))
	for _, code := range codes {
		r, ok := Decode(code)
		if !ok {
			return "", false
		}
		buf = append(buf, r)
	}
	return string(buf), true
}

// EncodeString splits text into grapheme clusters and encodes each one.
// A cluster that is not exactly one encodable character (combining marks,
// multi-rune clusters, unsupported characters) fails the whole string.
func EncodeString(text string) ([]GlyphCode, bool) {
	codes := make([]GlyphCode, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		if len(runes) != 1 {
			return nil, false
		}
		code, ok := Encode(runes[0])
		if !ok {
			return nil, false
		}
		codes = append(codes, code)
	}
	return codes, true
}
