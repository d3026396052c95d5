// Package cli renders a gridui grid directly on a raw host terminal, with
// no screen library in between.
//
// Each terminal cell is one grid cell. The render thread blocks in poll(2)
// on two descriptors: the tty and a private non-blocking pipe. Other
// goroutines wake it by writing a one-byte token into the pipe:
//
//   - 's': a new screen was queued with SendScreen
//   - 'r': the host terminal was resized (SIGWINCH)
//   - 'q': the application asked the window to close
//
// When the pipe becomes readable it is drained completely, and each kind of
// token seen becomes a single synthetic event. Any number of queued screens
// therefore cost one redraw of the latest one.
//
// # Basic Usage
//
//	import (
//	    "github.com/phroun/gridui"
//	    "github.com/phroun/gridui/cli"
//	)
//
//	ui, err := gridui.New(cli.New(cli.Options{}), gridui.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ui.Close()
//
// # Input
//
// The terminal is put into raw mode with SGR mouse reporting enabled.
// Printable characters that have a glyph code arrive as KeyDown followed
// immediately by KeyUp, since terminals do not report releases. The left
// mouse button produces PointerDown and PointerUp. Ctrl-C, Ctrl-D and end
// of input close the window. Other keys are ignored.
//
// # Architecture
//
//   - Backend: owns the tty, the signaling pipe and the render loop
//   - Renderer: turns one frame into a single batch of ANSI output
//   - inputParser: decodes UTF-8 text and SGR mouse reports from raw bytes
package cli
