// Example program demonstrating the CLI backend
//
// This paints a grid directly on your terminal. Click cells to toggle
// them; type letters to fill the first row. Ctrl-C or Ctrl-D exits.
//
// Usage:
//   go run main.go

package main

import (
	"fmt"
	"os"

	"github.com/phroun/gridui"
	"github.com/phroun/gridui/cli"
)

func main() {
	ui, err := gridui.New(cli.New(cli.Options{}), gridui.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting grid: %v\n", err)
		os.Exit(1)
	}
	defer ui.Close()

	const cols, rows = 16, 8
	on := gridui.Color{R: 230, G: 160, B: 40}
	space, _ := gridui.Encode(' ')

	glyphs := make([]gridui.Glyph, cols*rows)
	for i := range glyphs {
		glyphs[i] = gridui.Glyph{Character: space, Foreground: gridui.DefaultForeground, Background: gridui.DefaultBackground}
	}
	typed := 0

	for {
		ui.SendScreen(gridui.MustScreen(cols, glyphs))

		ev, err := ui.RecvInputEvent()
		if err != nil || ev.IsClose() {
			return
		}
		switch ev.Kind {
		case gridui.EventPointerDown:
			if ev.Col < cols && ev.Row < rows {
				g := &glyphs[int(ev.Row)*cols+int(ev.Col)]
				if g.Background == on {
					g.Background = gridui.DefaultBackground
				} else {
					g.Background = on
				}
			}
		case gridui.EventKeyDown:
			glyphs[typed%cols].Character = ev.Key
			typed++
		}
	}
}
