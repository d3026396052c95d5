//go:build !nogtk

package main

import (
	"github.com/phroun/gridui"
	griduigtk "github.com/phroun/gridui/gtk"
)

func init() {
	backends["gtk"] = func() gridui.Backend {
		return griduigtk.New(griduigtk.Options{Title: windowTitle, AtlasPath: atlasPath})
	}
}
