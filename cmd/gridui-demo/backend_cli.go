//go:build unix

package main

import (
	"github.com/phroun/gridui"
	"github.com/phroun/gridui/cli"
)

func init() {
	backends["cli"] = func() gridui.Backend {
		return cli.New(cli.Options{})
	}
}
