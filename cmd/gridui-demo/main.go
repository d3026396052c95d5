// Command gridui-demo opens a grid window on one of the gridui backends and
// echoes typed text into it.
//
// Build tags nogtk and noqt leave out the cgo backends.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/phroun/gridui"
	"github.com/phroun/gridui/vm"
	"github.com/spf13/cobra"
)

var (
	backendName string
	cellHeight  int
	logLevel    string
	windowTitle string
	atlasPath   string
	throughVM   bool
	textColor   string
	backColor   string
	rootCmd     *cobra.Command
)

// backends maps --backend values to constructors; each backend file
// registers itself
var backends = map[string]func() gridui.Backend{}

func backendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "gridui-demo",
		Short: "Echo typed text in a gridui window",
		Long: `Echo typed text in a gridui window.

Typed characters appear below the title row and a click marks a cell.
With --vm the same application runs as a machine behind the syscall
bridge instead of calling the window API directly.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&backendName, "backend", "b", "tcell", "Backend to open (gtk, qt, tcell, cli)")
	rootCmd.Flags().IntVar(&cellHeight, "cell-height", gridui.DefaultCellHeight, "Cell height in pixels for window backends")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().StringVar(&windowTitle, "title", "gridui demo", "Window title for window backends")
	rootCmd.Flags().StringVar(&atlasPath, "atlas", "", "PNG glyph atlas for the gtk backend")
	rootCmd.Flags().BoolVar(&throughVM, "vm", false, "Run the application through the vm syscall bridge")
	rootCmd.Flags().StringVar(&textColor, "fg", gridui.DefaultForeground.ToHex(), "Text color (#RRGGBB or #RGB)")
	rootCmd.Flags().StringVar(&backColor, "bg", gridui.DefaultBackground.ToHex(), "Background color (#RRGGBB or #RGB)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if logLevel == "" {
		logLevel = gridui.LogLevel()
	}
	logger := gridui.NewLogger("gridui-demo", logLevel, nil)

	newBackend, ok := backends[backendName]
	if !ok {
		return fmt.Errorf("unknown backend %q (available: %s)", backendName, strings.Join(backendNames(), ", "))
	}

	var err error
	app := newEcho()
	if app.fg, err = parseColorFlag("fg", textColor); err != nil {
		return err
	}
	if app.bg, err = parseColorFlag("bg", backColor); err != nil {
		return err
	}

	ui, err := gridui.New(newBackend(), gridui.Options{CellHeight: cellHeight, Logger: logger})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	go func() {
		select {
		case <-ctx.Done():
			ui.Close()
		case <-ui.Done():
		}
	}()

	if throughVM {
		host := &vm.Host{Machine: newEchoMachine(app), UI: ui, Logger: logger.Named("vm")}
		err = host.Run(ctx)
		if errors.Is(err, vm.ErrClosedByUI) || errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = runEcho(ui, app)
	}

	if closeErr := ui.Close(); err == nil {
		err = closeErr
	}
	return err
}

// runEcho drives the echo application directly from the event stream
func runEcho(ui *gridui.GridUI, app *echo) error {
	for {
		ev, err := ui.RecvInputEvent()
		if err != nil {
			if errors.Is(err, gridui.ErrClosed) {
				return nil
			}
			return err
		}
		if !app.Handle(ev) {
			return nil
		}
		if err := ui.SendScreen(app.Screen()); err != nil {
			if errors.Is(err, gridui.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

// parseColorFlag reads a hex color given on the command line
func parseColorFlag(name, value string) (gridui.Color, error) {
	c, ok := gridui.ParseHexColor(value)
	if !ok {
		return gridui.Color{}, fmt.Errorf("invalid --%s color %q (want #RRGGBB or #RGB)", name, value)
	}
	return c, nil
}
