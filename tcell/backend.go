// Package griduitcell renders a gridui grid in a terminal through tcell.
//
// Each terminal cell is one grid cell. Wake-ups are private events posted
// into tcell's own event queue, which the render thread already drains with
// PollEvent. Terminals do not report key releases, so every key press is
// delivered as KeyDown immediately followed by KeyUp.
package griduitcell

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/phroun/gridui"
)

// Options configures the tcell backend
type Options struct {
	// Screen to draw on (default: tcell.NewScreen()). The backend calls
	// Init and owns the screen from then on, including Fini.
	Screen tcell.Screen
}

// wakeEvent tells the render thread a new screen is pending
type wakeEvent struct {
	tcell.EventTime
}

// closeEvent asks the render thread to shut down
type closeEvent struct {
	tcell.EventTime
}

// Backend renders a grid on a tcell screen
type Backend struct {
	mu             sync.Mutex
	screen         tcell.Screen
	running        bool // screen initialized; events may be posted
	closeRequested bool // RequestClose arrived before running
	pendingWake    bool
	done           chan struct{}

	// Render thread only
	frame    *gridui.Frame
	logger   hclog.Logger
	leftDown bool
}

// New creates a tcell backend
func New(opts Options) *Backend {
	return &Backend{screen: opts.Screen, done: make(chan struct{})}
}

// Name implements gridui.Backend
func (b *Backend) Name() string {
	return "tcell"
}

// Run implements gridui.Backend
func (b *Backend) Run(link *gridui.Link) error {
	defer close(b.done)
	b.logger = link.Logger()

	b.mu.Lock()
	s := b.screen
	b.mu.Unlock()
	if s == nil {
		var err error
		s, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer s.Fini()

	s.EnableMouse()
	s.HideCursor()

	b.mu.Lock()
	b.screen = s
	b.running = true
	closing := b.closeRequested
	b.mu.Unlock()
	if closing {
		return nil
	}

	b.frame = gridui.NewFrame(link, gridui.TextGeometry())
	link.Ready()

	b.frame.Resized(s.Size())
	b.paint(s)

	for {
		ev := s.PollEvent()
		if !b.handleEvent(s, ev) {
			b.frame.Close()
			return nil
		}
	}
}

// handleEvent processes one event; false ends the loop
func (b *Backend) handleEvent(s tcell.Screen, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		// Screen finalized
		return false

	case *closeEvent:
		return false

	case *wakeEvent:
		b.mu.Lock()
		b.pendingWake = false
		b.mu.Unlock()
		if b.frame.CheckScreens() {
			b.paint(s)
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		b.frame.Resized(w, h)
		s.Sync()
		b.paint(s)

	case *tcell.EventMouse:
		x, y := ev.Position()
		pressed := ev.Buttons()&tcell.Button1 != 0
		switch {
		case pressed && !b.leftDown:
			b.leftDown = true
			b.frame.PointerDown(x, y)
		case !pressed && b.leftDown:
			b.leftDown = false
			b.frame.PointerUp(x, y)
		}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if b.frame.KeyRune(true, ev.Rune()) {
				b.frame.KeyRune(false, ev.Rune())
			}
		default:
			b.logger.Trace("unsupported key", "key", ev.Name())
		}
	}
	return true
}

func (b *Backend) paint(s tcell.Screen) {
	w, h := s.Size()
	b.frame.Paint(&cellPainter{screen: s}, w, h)
	s.Show()
}

// Wake implements gridui.Backend. Safe from any goroutine.
func (b *Backend) Wake() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pendingWake || !b.running {
		return
	}
	ev := &wakeEvent{}
	ev.SetEventNow()
	if err := b.screen.PostEvent(ev); err != nil {
		b.logger.Trace("wake not posted", "error", err)
		return
	}
	b.pendingWake = true
}

// RequestClose implements gridui.Backend. Safe from any goroutine.
func (b *Backend) RequestClose() {
	b.mu.Lock()
	s := b.screen
	if !b.running {
		b.closeRequested = true
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	ev := &closeEvent{}
	ev.SetEventNow()
	if s.PostEvent(ev) == nil {
		return
	}
	// Queue full: keep retrying until the render thread drains it or exits
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-b.done:
				return
			case <-ticker.C:
				if s.PostEvent(ev) == nil {
					return
				}
			}
		}
	}()
}

// cellPainter writes glyphs into tcell's cell buffer
type cellPainter struct {
	screen tcell.Screen
}

func rgb(c gridui.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (p *cellPainter) FillRect(r gridui.Rect, c gridui.Color) {
	style := tcell.StyleDefault.Background(rgb(c))
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (p *cellPainter) DrawGlyph(x, y int, g gridui.Glyph) {
	style := tcell.StyleDefault.Foreground(rgb(g.Foreground)).Background(rgb(g.Background))
	p.screen.SetContent(x, y, gridui.DisplayRune(g.Character), nil, style)
}
