// Package griduigtk is the GTK3 render backend for gridui.
//
// The window, its cairo drawing and the GTK main loop all live on the
// render thread gridui.New creates. New screens are announced by posting an
// idle callback onto the GTK main context, so the wake-up is observed on the
// loop's next iteration whatever it was blocked on.
//
// GTK requires the thread that initialized it to run every GTK call. On
// macOS that must be the process main thread; run the application logic on
// another goroutine there.
//
// That thread exits with its window, so a process opens one GTK window.
// A second Run fails and gridui.New reports ErrBackendUnavailable.
package griduigtk

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/hashicorp/go-hclog"
	"github.com/phroun/gridui"
)

// Options configures the GTK backend
type Options struct {
	Title      string // Window title (default: "gridui")
	Width      int    // Initial client width in pixels (default: 800)
	Height     int    // Initial client height in pixels (default: 600)
	FontFamily string // Font for text rendering (default: "Monospace")
	AtlasPath  string // Optional PNG bitmap atlas; replaces font rendering
}

var errWindowExists = errors.New("gtk is bound to the render thread of an earlier window")

var (
	claimMu sync.Mutex
	claimed bool
)

// claimProcess reserves GTK for the calling render thread
func claimProcess() error {
	claimMu.Lock()
	defer claimMu.Unlock()
	if claimed {
		return errWindowExists
	}
	claimed = true
	return nil
}

// Backend renders a grid in a GTK window
type Backend struct {
	opts Options

	// Render thread only
	frame    *gridui.Frame
	win      *gtk.Window
	area     *gtk.DrawingArea
	atlas    *atlas
	fontSize int
	logger   hclog.Logger

	// pendingWake coalesces idle callbacks between redraws
	mu          sync.Mutex
	pendingWake bool
}

// New creates a GTK backend. Nothing native happens until gridui.New runs it.
func New(opts Options) *Backend {
	if opts.Title == "" {
		opts.Title = "gridui"
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.FontFamily == "" {
		opts.FontFamily = "Monospace"
	}
	return &Backend{opts: opts}
}

// Name implements gridui.Backend
func (b *Backend) Name() string {
	return "gtk"
}

// Run implements gridui.Backend
func (b *Backend) Run(link *gridui.Link) error {
	if err := claimProcess(); err != nil {
		return err
	}
	if err := gtk.InitCheck(nil); err != nil {
		return fmt.Errorf("gtk init: %w", err)
	}
	b.logger = link.Logger()
	b.frame = gridui.NewFrame(link, link.PixelGeometry())
	geo := b.frame.Geometry()

	if b.opts.AtlasPath != "" {
		a, err := loadAtlas(b.opts.AtlasPath)
		if err != nil {
			return err
		}
		b.atlas = a
	} else {
		if !fontFamilyExists(b.opts.FontFamily) {
			b.logger.Debug("font family not found, Pango will substitute", "family", b.opts.FontFamily)
		}
		b.fontSize = fitFontSize(b.opts.FontFamily, geo.CellWidth, geo.CellHeight)
	}

	var err error
	b.win, err = gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	b.win.SetTitle(b.opts.Title)
	b.win.SetDefaultSize(b.opts.Width, b.opts.Height)

	b.area, err = gtk.DrawingAreaNew()
	if err != nil {
		return fmt.Errorf("create drawing area: %w", err)
	}

	// Enable events
	b.area.AddEvents(int(gdk.BUTTON_PRESS_MASK | gdk.BUTTON_RELEASE_MASK |
		gdk.KEY_PRESS_MASK | gdk.KEY_RELEASE_MASK | gdk.STRUCTURE_MASK))
	b.area.SetCanFocus(true)

	// Connect signals
	b.area.Connect("draw", b.onDraw)
	b.area.Connect("button-press-event", b.onButtonPress)
	b.area.Connect("button-release-event", b.onButtonRelease)
	b.area.Connect("key-press-event", b.onKeyPress)
	b.area.Connect("key-release-event", b.onKeyRelease)
	b.area.Connect("configure-event", b.onConfigure)
	b.win.Connect("delete-event", b.onDelete)
	b.win.Connect("destroy", func() {
		b.frame.Close()
		gtk.MainQuit()
	})

	b.win.Add(b.area)
	b.win.ShowAll()
	b.area.GrabFocus()

	link.Ready()
	gtk.Main()
	return nil
}

// Wake implements gridui.Backend. Safe from any goroutine.
func (b *Backend) Wake() {
	b.mu.Lock()
	if b.pendingWake {
		b.mu.Unlock()
		return
	}
	b.pendingWake = true
	b.mu.Unlock()

	glib.IdleAdd(func() bool {
		b.mu.Lock()
		b.pendingWake = false
		b.mu.Unlock()
		if b.frame.CheckScreens() {
			b.area.QueueDraw()
		}
		return false // Don't repeat
	})
}

// RequestClose implements gridui.Backend. Safe from any goroutine.
func (b *Backend) RequestClose() {
	glib.IdleAdd(func() bool {
		if b.win != nil {
			b.win.Close()
		}
		return false
	})
}

func (b *Backend) onDraw(da *gtk.DrawingArea, cr *cairo.Context) bool {
	geo := b.frame.Geometry()
	p := &cairoPainter{
		cr:         cr,
		cellWidth:  geo.CellWidth,
		cellHeight: geo.CellHeight,
		fontFamily: b.opts.FontFamily,
		fontSize:   b.fontSize,
		atlas:      b.atlas,
	}
	b.frame.Paint(p, da.GetAllocatedWidth(), da.GetAllocatedHeight())
	return true
}

func (b *Backend) onConfigure(da *gtk.DrawingArea, ev *gdk.Event) bool {
	if b.frame.Resized(da.GetAllocatedWidth(), da.GetAllocatedHeight()) {
		da.QueueDraw()
	}
	return false
}

func (b *Backend) onButtonPress(da *gtk.DrawingArea, ev *gdk.Event) bool {
	btn := gdk.EventButtonNewFromEvent(ev)
	if btn.Button() != 1 { // Left button only
		return false
	}
	da.GrabFocus()
	b.frame.PointerDown(int(btn.X()), int(btn.Y()))
	return true
}

func (b *Backend) onButtonRelease(da *gtk.DrawingArea, ev *gdk.Event) bool {
	btn := gdk.EventButtonNewFromEvent(ev)
	if btn.Button() != 1 {
		return false
	}
	b.frame.PointerUp(int(btn.X()), int(btn.Y()))
	return true
}

func (b *Backend) onKeyPress(da *gtk.DrawingArea, ev *gdk.Event) bool {
	return b.handleKey(true, ev)
}

func (b *Backend) onKeyRelease(da *gtk.DrawingArea, ev *gdk.Event) bool {
	return b.handleKey(false, ev)
}

func (b *Backend) handleKey(down bool, ev *gdk.Event) bool {
	key := gdk.EventKeyNewFromEvent(ev)
	r := gdk.KeyvalToUnicode(key.KeyVal())
	if r == 0 {
		b.logger.Trace("key without character", "keyval", key.KeyVal())
		return false
	}
	return b.frame.KeyRune(down, r)
}

// onDelete runs for both the window manager's close button and RequestClose
func (b *Backend) onDelete() bool {
	b.frame.Close()
	return false // let GTK destroy the window
}
