//go:build !noqt

package main

import (
	"github.com/phroun/gridui"
	griduiqt "github.com/phroun/gridui/qt"
)

func init() {
	backends["qt"] = func() gridui.Backend {
		return griduiqt.New(griduiqt.Options{Title: windowTitle})
	}
}
