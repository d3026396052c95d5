// Package griduiqt is the Qt render backend for gridui, built on miqt.
//
// The QApplication, the window and every paint happen on the render thread
// gridui.New creates. Wake-ups are posted onto the Qt event loop with
// mainthread.Start, so they are seen on the loop's next iteration.
//
// The QApplication belongs to the first render thread, which exits with its
// window, so a process opens one Qt window. A second Run fails and
// gridui.New reports ErrBackendUnavailable.
package griduiqt

import (
	"errors"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/mappu/miqt/qt"
	"github.com/mappu/miqt/qt/mainthread"
	"github.com/phroun/gridui"
)

// Options configures the Qt backend
type Options struct {
	Title      string // Window title (default: "gridui")
	Width      int    // Initial client width in pixels (default: 800)
	Height     int    // Initial client height in pixels (default: 600)
	FontFamily string // Font family (default: "Monospace")
}

var errWindowExists = errors.New("the QApplication belongs to the render thread of an earlier window")

var (
	claimMu sync.Mutex
	claimed bool
)

// claimProcess reserves the QApplication for the calling render thread
func claimProcess() error {
	claimMu.Lock()
	defer claimMu.Unlock()
	if claimed {
		return errWindowExists
	}
	claimed = true
	return nil
}

// Backend renders a grid in a Qt widget
type Backend struct {
	opts Options

	// Render thread only
	frame  *gridui.Frame
	widget *qt.QWidget
	font   *qt.QFont
	ascent int
	logger hclog.Logger

	mu          sync.Mutex
	pendingWake bool
}

// New creates a Qt backend. Nothing native happens until gridui.New runs it.
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
	return "qt"
}

// Run implements gridui.Backend
func (b *Backend) Run(link *gridui.Link) error {
	if err := claimProcess(); err != nil {
		return err
	}
	qt.NewQApplication(os.Args)

	b.logger = link.Logger()
	b.frame = gridui.NewFrame(link, link.PixelGeometry())
	geo := b.frame.Geometry()
	b.font, b.ascent = fitFont(b.opts.FontFamily, geo.CellWidth, geo.CellHeight)

	b.widget = qt.NewQWidget2()
	b.widget.SetWindowTitle(b.opts.Title)
	b.widget.Resize(b.opts.Width, b.opts.Height)
	b.widget.SetFocusPolicy(qt.StrongFocus)

	// Connect events using miqt's OnXxxEvent pattern
	b.widget.OnPaintEvent(func(super func(event *qt.QPaintEvent), event *qt.QPaintEvent) {
		b.paintEvent()
	})
	b.widget.OnResizeEvent(func(super func(event *qt.QResizeEvent), event *qt.QResizeEvent) {
		super(event)
		if b.frame.Resized(b.widget.Width(), b.widget.Height()) {
			b.widget.Update()
		}
	})
	b.widget.OnMousePressEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		if event.Button() == qt.LeftButton {
			pos := event.Pos()
			b.frame.PointerDown(pos.X(), pos.Y())
		}
	})
	b.widget.OnMouseReleaseEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		if event.Button() == qt.LeftButton {
			pos := event.Pos()
			b.frame.PointerUp(pos.X(), pos.Y())
		}
	})
	b.widget.OnKeyPressEvent(func(super func(event *qt.QKeyEvent), event *qt.QKeyEvent) {
		b.keyEvent(true, event)
	})
	b.widget.OnKeyReleaseEvent(func(super func(event *qt.QKeyEvent), event *qt.QKeyEvent) {
		b.keyEvent(false, event)
	})
	b.widget.OnCloseEvent(func(super func(event *qt.QCloseEvent), event *qt.QCloseEvent) {
		b.frame.Close()
		super(event)
	})

	b.widget.Show()
	b.widget.SetFocus()

	link.Ready()
	qt.QApplication_Exec()

	// Exec also returns when the application quits without closing us
	b.frame.Close()
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

	mainthread.Start(func() {
		b.mu.Lock()
		b.pendingWake = false
		b.mu.Unlock()
		if b.frame.CheckScreens() {
			b.widget.Update()
		}
	})
}

// RequestClose implements gridui.Backend. Safe from any goroutine.
func (b *Backend) RequestClose() {
	mainthread.Start(func() {
		if b.widget != nil {
			b.widget.Close()
		}
	})
}

func (b *Backend) paintEvent() {
	geo := b.frame.Geometry()
	painter := qt.NewQPainter2(b.widget.QPaintDevice)
	defer painter.End()
	painter.SetFont(b.font)

	p := &qtPainter{
		painter:    painter,
		cellWidth:  geo.CellWidth,
		cellHeight: geo.CellHeight,
		ascent:     b.ascent,
	}
	b.frame.Paint(p, b.widget.Width(), b.widget.Height())
}

func (b *Backend) keyEvent(down bool, event *qt.QKeyEvent) {
	// One KeyDown per physical press
	if event.IsAutoRepeat() {
		return
	}
	text := []rune(event.Text())
	if len(text) != 1 {
		b.logger.Trace("key without single character", "key", event.Key(), "text", event.Text())
		return
	}
	b.frame.KeyRune(down, text[0])
}
