package main

import (
	"github.com/phroun/gridui"
	griduitcell "github.com/phroun/gridui/tcell"
)

func init() {
	backends["tcell"] = func() gridui.Backend {
		return griduitcell.New(griduitcell.Options{})
	}
}
