package gridui

import "fmt"

// EventKind distinguishes input event variants
type EventKind uint8

const (
	EventClose       EventKind = iota // Window closed; always the last event
	EventResize                       // Cols/Rows hold the new grid size
	EventPointerDown                  // Col/Row hold the pressed cell
	EventPointerUp                    // Col/Row hold the released cell
	EventKeyDown                      // Key holds the glyph code
	EventKeyUp                        // Key holds the glyph code
)

// String returns human-readable kind name
func (k EventKind) String() string {
	switch k {
	case EventClose:
		return "Close"
	case EventResize:
		return "Resize"
	case EventPointerDown:
		return "PointerDown"
	case EventPointerUp:
		return "PointerUp"
	case EventKeyDown:
		return "KeyDown"
	case EventKeyUp:
		return "KeyUp"
	default:
		return "Unknown"
	}
}

// InputEvent is a platform-independent input event.
// Only the fields belonging to Kind are meaningful.
type InputEvent struct {
	Kind EventKind

	// Grid size in cells (EventResize)
	Cols uint32
	Rows uint32

	// Grid cell (EventPointerDown, EventPointerUp)
	Col uint32
	Row uint32

	// Glyph code (EventKeyDown, EventKeyUp)
	Key GlyphCode
}

// CloseEvent returns the terminal Close event
func CloseEvent() InputEvent {
	return InputEvent{Kind: EventClose}
}

// ResizeEvent returns a Resize event for a grid of cols x rows cells
func ResizeEvent(cols, rows uint32) InputEvent {
	return InputEvent{Kind: EventResize, Cols: cols, Rows: rows}
}

// PointerDownEvent returns a pointer press at a grid cell
func PointerDownEvent(col, row uint32) InputEvent {
	return InputEvent{Kind: EventPointerDown, Col: col, Row: row}
}

// PointerUpEvent returns a pointer release at a grid cell
func PointerUpEvent(col, row uint32) InputEvent {
	return InputEvent{Kind: EventPointerUp, Col: col, Row: row}
}

// KeyDownEvent returns a key press for a glyph code
func KeyDownEvent(key GlyphCode) InputEvent {
	return InputEvent{Kind: EventKeyDown, Key: key}
}

// KeyUpEvent returns a key release for a glyph code
func KeyUpEvent(key GlyphCode) InputEvent {
	return InputEvent{Kind: EventKeyUp, Key: key}
}

// IsClose reports whether this is the Close event
func (e InputEvent) IsClose() bool {
	return e.Kind == EventClose
}

func (e InputEvent) String() string {
	switch e.Kind {
	case EventResize:
		return fmt.Sprintf("Resize{%d, %d}", e.Cols, e.Rows)
	case EventPointerDown, EventPointerUp:
		return fmt.Sprintf("%s{%d, %d}", e.Kind, e.Col, e.Row)
	case EventKeyDown, EventKeyUp:
		if r, ok := Decode(e.Key); ok {
			return fmt.Sprintf("%s{%q}", e.Kind, r)
		}
		return fmt.Sprintf("%s{%#x}", e.Kind, e.Key)
	default:
		return e.Kind.String()
	}
}
