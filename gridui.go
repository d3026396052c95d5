package gridui

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Options configures GridUI creation
type Options struct {
	CellHeight     int           // Cell height in pixels for window backends (default: 30)
	Logger         hclog.Logger  // Logger (default: NewLogger("gridui", LogLevel(), nil))
	StartupTimeout time.Duration // Max wait for the window to exist (default: 10s)
	ScreenQueue    int           // Screens buffered between redraws (default: 4)
}

// GridUI is the application goroutine's handle on a running backend.
// Screens go in through SendScreen, input comes out through RecvInputEvent.
type GridUI struct {
	backend Backend
	logger  hclog.Logger

	screens chan Screen
	events  *eventQueue

	done chan struct{}
	err  error // Run's result; read only after done is closed
}

// New starts the backend on its own render thread and blocks until its
// window exists. Any failure to get there is reported as
// ErrBackendUnavailable; no partial GridUI is returned.
func New(b Backend, opts Options) (*GridUI, error) {
	// Apply defaults
	if opts.CellHeight <= 0 {
		opts.CellHeight = DefaultCellHeight
	}
	if opts.Logger == nil {
		opts.Logger = NewLogger("gridui", LogLevel(), nil)
	}
	if opts.StartupTimeout <= 0 {
		opts.StartupTimeout = 10 * time.Second
	}
	if opts.ScreenQueue <= 0 {
		opts.ScreenQueue = 4
	}

	g := &GridUI{
		backend: b,
		logger:  opts.Logger,
		screens: make(chan Screen, opts.ScreenQueue),
		events:  newEventQueue(),
		done:    make(chan struct{}),
	}
	link := newLink(g.screens, g.events, opts.CellHeight, opts.Logger.Named(b.Name()))

	go g.renderMain(link)

	timer := time.NewTimer(opts.StartupTimeout)
	defer timer.Stop()

	select {
	case err := <-link.ready:
		if err != nil {
			<-g.done
			return nil, fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, b.Name(), err)
		}
	case <-timer.C:
		b.RequestClose()
		return nil, fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, b.Name(), ErrStartupTimeout)
	}

	g.logger.Debug("backend running", "backend", b.Name(), "cell_height", opts.CellHeight)
	return g, nil
}

// renderMain is the render thread
func (g *GridUI) renderMain(link *Link) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	defer close(g.done)
	defer g.events.close()

	err := g.runBackend(link)
	link.fail(err)
	g.err = err

	if err != nil {
		g.logger.Error("render loop ended", "backend", g.backend.Name(), "error", err)
	} else {
		g.logger.Debug("render loop ended", "backend", g.backend.Name())
	}
}

func (g *GridUI) runBackend(link *Link) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render loop panic: %v\n%s", r, debug.Stack())
		}
	}()
	return g.backend.Run(link)
}

// SendScreen hands a screen to the render thread and wakes it.
// It never waits for the screen to be drawn. If the render thread is behind,
// the oldest queued screen is discarded since only the newest is ever drawn.
func (g *GridUI) SendScreen(s Screen) error {
	select {
	case <-g.done:
		return ErrClosed
	default:
	}

	for {
		select {
		case g.screens <- s:
			g.backend.Wake()
			return nil
		default:
		}
		// Queue full: drop the oldest frame and retry
		select {
		case <-g.screens:
			g.logger.Trace("discarding stale screen")
		default:
		}
	}
}

// RecvInputEvent blocks until the next input event. Once the render thread
// has exited and every event has been read it returns ErrClosed, which
// callers should treat like having received Close.
func (g *GridUI) RecvInputEvent() (InputEvent, error) {
	ev, ok := <-g.events.events()
	if !ok {
		return InputEvent{}, ErrClosed
	}
	return ev, nil
}

// Events returns the event channel for use in select statements.
// It is closed after the last event.
func (g *GridUI) Events() <-chan InputEvent {
	return g.events.events()
}

// Close asks the backend to close its window and waits for the render
// thread to exit. Pending events, including Close, remain readable.
func (g *GridUI) Close() error {
	select {
	case <-g.done:
	default:
		g.backend.RequestClose()
		<-g.done
	}
	return g.err
}

// Done is closed when the render thread has exited
func (g *GridUI) Done() <-chan struct{} {
	return g.done
}

// Err returns the render loop's error after Done is closed
func (g *GridUI) Err() error {
	select {
	case <-g.done:
		return g.err
	default:
		return nil
	}
}

// Backend returns the backend driving this GridUI
func (g *GridUI) Backend() Backend {
	return g.backend
}
