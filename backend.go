package gridui

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Backend owns a native window, its graphics context and its event loop.
//
// Run is called once on a dedicated goroutine locked to its OS thread; every
// native call happens there. Wake and RequestClose may be called from any
// goroutine and must only post work onto the render thread.
type Backend interface {
	// Name identifies the backend in logs and errors
	Name() string

	// Run creates the window, calls link.Ready once it exists, then services
	// the native loop until the window closes. An error returned before
	// Ready is a construction failure.
	Run(link *Link) error

	// Wake tells the render thread a new screen is pending
	Wake()

	// RequestClose asks the render thread to close the window
	RequestClose()
}

// Link is the render thread's end of the transport: the screen source, the
// event sink, configuration, and the one-shot startup handoff.
type Link struct {
	screens    <-chan Screen
	events     *eventQueue
	cellHeight int
	logger     hclog.Logger

	readyOnce sync.Once
	ready     chan error
}

var errExitedEarly = errors.New("render loop exited before the window was created")

func newLink(screens <-chan Screen, events *eventQueue, cellHeight int, logger hclog.Logger) *Link {
	return &Link{
		screens:    screens,
		events:     events,
		cellHeight: cellHeight,
		logger:     logger,
		ready:      make(chan error, 1),
	}
}

// Ready reports that the native window exists. Later calls are ignored.
func (l *Link) Ready() {
	l.readyOnce.Do(func() {
		l.ready <- nil
	})
}

// fail reports a construction failure if Ready was never called
func (l *Link) fail(err error) {
	if err == nil {
		err = errExitedEarly
	}
	l.readyOnce.Do(func() {
		l.ready <- err
	})
}

// Logger returns the logger for the backend
func (l *Link) Logger() hclog.Logger {
	return l.logger
}

// CellHeight returns the configured cell height for pixel backends
func (l *Link) CellHeight() int {
	return l.cellHeight
}

// PixelGeometry returns the pixel geometry for the configured cell height
func (l *Link) PixelGeometry() Geometry {
	return PixelGeometry(l.cellHeight)
}

// Screens returns the screen source. Backends normally use Frame.CheckScreens.
func (l *Link) Screens() <-chan Screen {
	return l.screens
}

// emit forwards an event to the application side
func (l *Link) emit(ev InputEvent) {
	if !l.events.push(ev) {
		l.logger.Trace("event dropped after shutdown", "event", ev)
	}
}
