//go:build unix

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/phroun/gridui"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Options configures the CLI backend
type Options struct {
	In  *os.File // Terminal input (default: os.Stdin)
	Out *os.File // Terminal output (default: os.Stdout)
}

// Tokens written to the signaling pipe
const (
	tokenScreen byte = 's' // a screen is pending
	tokenResize byte = 'r' // SIGWINCH arrived
	tokenClose  byte = 'q' // RequestClose
)

// nativeKind classifies entries of the render thread's event queue
type nativeKind int

const (
	nativeInput  nativeKind = iota // decoded tty input
	nativeRedraw                   // synthetic: new screen available
	nativeResize                   // synthetic: host terminal resized
	nativeClose                    // synthetic: close requested or input ended
)

type nativeEvent struct {
	kind  nativeKind
	input inputEvent
}

// Backend renders a grid on a raw terminal. One thread blocks in poll(2)
// on both the tty and a private pipe; any goroutine can write a token
// into the pipe to wake it.
type Backend struct {
	opts Options

	// Write end of the signaling pipe, guarded so no token is written
	// after the render thread closed it
	wakeMu         sync.RWMutex
	wakeFd         int
	started        bool
	closed         bool
	closeRequested bool // RequestClose arrived before started

	pendingMu     sync.Mutex
	pendingScreen bool // tokenScreen written but not yet drained

	// Render thread only
	frame      *gridui.Frame
	logger     hclog.Logger
	inFd       int
	outFd      int
	pipeR      int
	queue      []nativeEvent
	parser     inputParser
	renderer   Renderer
	cols, rows int
}

// New creates a CLI backend. The terminal is not touched until Run.
func New(opts Options) *Backend {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Backend{opts: opts, wakeFd: -1}
}

// Name implements gridui.Backend
func (b *Backend) Name() string {
	return "cli"
}

// Run implements gridui.Backend
func (b *Backend) Run(link *gridui.Link) error {
	b.logger = link.Logger()
	b.inFd = int(b.opts.In.Fd())
	b.outFd = int(b.opts.Out.Fd())

	pipeR, pipeW, err := newWakePipe()
	if err != nil {
		return fmt.Errorf("create wake pipe: %w", err)
	}
	b.pipeR = pipeR
	defer b.closePipe(pipeR, pipeW)

	// Enter raw mode
	if term.IsTerminal(b.inFd) {
		oldState, err := term.MakeRaw(b.inFd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer term.Restore(b.inFd, oldState)
	}

	b.write(csiAltScreenEnter + csiCursorHide + csiAutoWrapOff + csiMouseClickOn + csiMouseSGROn + csiClear)
	defer b.write(csiMouseSGROff + csiMouseClickOff + csiAutoWrapOn + csiSGR0 + csiCursorShow + csiAltScreenExit)

	stopResize := b.handleSIGWINCH()
	defer stopResize()

	b.wakeMu.Lock()
	b.wakeFd = pipeW
	b.started = true
	closing := b.closeRequested
	b.wakeMu.Unlock()
	if closing {
		return nil
	}

	b.frame = gridui.NewFrame(link, gridui.TextGeometry())
	link.Ready()

	b.cols, b.rows = b.size()
	b.frame.Resized(b.cols, b.rows)
	b.paint()

	for {
		ev, err := b.next()
		if err != nil {
			b.frame.Close()
			return err
		}
		if !b.handle(ev) {
			b.frame.Close()
			return nil
		}
	}
}

// newWakePipe creates the signaling pipe, non-blocking and close-on-exec
func newWakePipe() (r, w int, err error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return -1, -1, err
	}
	for _, fd := range fds {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(fds[0])
			unix.Close(fds[1])
			return -1, -1, err
		}
	}
	return fds[0], fds[1], nil
}

func (b *Backend) closePipe(r, w int) {
	b.wakeMu.Lock()
	defer b.wakeMu.Unlock()
	b.closed = true
	unix.Close(r)
	unix.Close(w)
}

// handleSIGWINCH forwards terminal resizes into the pipe
func (b *Backend) handleSIGWINCH() (stop func()) {
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})

	go func() {
		defer close(doneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-stopCh:
				return
			case <-sigCh:
				b.signal(tokenResize)
			}
		}
	}()

	return func() {
		close(stopCh)
		<-doneCh
	}
}

// signal writes one token into the pipe; false if it could not be delivered
func (b *Backend) signal(token byte) bool {
	b.wakeMu.RLock()
	defer b.wakeMu.RUnlock()
	if !b.started || b.closed {
		return false
	}
	for {
		_, err := unix.Write(b.wakeFd, []byte{token})
		if err == unix.EINTR {
			continue
		}
		// EAGAIN: the pipe is full, so the render thread is already awake
		return err == nil || err == unix.EAGAIN
	}
}

// Wake implements gridui.Backend. Safe from any goroutine.
func (b *Backend) Wake() {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	if b.pendingScreen {
		return
	}
	b.pendingScreen = b.signal(tokenScreen)
}

// RequestClose implements gridui.Backend. Safe from any goroutine.
func (b *Backend) RequestClose() {
	b.wakeMu.Lock()
	if !b.started {
		b.closeRequested = true
		b.wakeMu.Unlock()
		return
	}
	b.wakeMu.Unlock()
	b.signal(tokenClose)
}

// next returns the next native event, waiting for one if the queue is empty
func (b *Backend) next() (nativeEvent, error) {
	for len(b.queue) == 0 {
		if err := b.wait(); err != nil {
			return nativeEvent{}, err
		}
	}
	ev := b.queue[0]
	b.queue = b.queue[1:]
	return ev, nil
}

// wait blocks until the tty or the pipe is readable and queues what arrived
func (b *Backend) wait() error {
	fds := []unix.PollFd{
		{Fd: int32(b.inFd), Events: unix.POLLIN},
		{Fd: int32(b.pipeR), Events: unix.POLLIN},
	}
	// Held escape bytes get escapeTimeout to be completed
	timeout := -1
	if b.parser.waiting() {
		timeout = int(escapeTimeout / time.Millisecond)
	}
	n, err := unix.Poll(fds, timeout)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return fmt.Errorf("poll: %w", err)
	}
	if n == 0 {
		b.parser.flush()
		return nil
	}

	// The pipe is drained completely before the tty is read again
	if fds[1].Revents&unix.POLLIN != 0 {
		b.drainPipe()
	}
	if fds[0].Revents&unix.POLLNVAL != 0 {
		return fmt.Errorf("poll: input descriptor %d is not open", b.inFd)
	}
	if fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
		b.readInput()
	}
	return nil
}

// drainPipe reads every pending token and queues one synthetic event per kind
func (b *Backend) drainPipe() {
	var buf [64]byte
	redraw, resize, closing := false, false, false
	for {
		n, err := unix.Read(b.pipeR, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil || n <= 0 {
			break
		}
		for _, token := range buf[:n] {
			switch token {
			case tokenScreen:
				redraw = true
			case tokenResize:
				resize = true
			case tokenClose:
				closing = true
			}
		}
	}

	if redraw {
		b.pendingMu.Lock()
		b.pendingScreen = false
		b.pendingMu.Unlock()
	}

	if resize {
		b.queue = append(b.queue, nativeEvent{kind: nativeResize})
	}
	if redraw {
		b.queue = append(b.queue, nativeEvent{kind: nativeRedraw})
	}
	if closing {
		b.queue = append(b.queue, nativeEvent{kind: nativeClose})
	}
}

// readInput reads once from the tty and queues the decoded input
func (b *Backend) readInput() {
	buf := make([]byte, 256)
	n, err := unix.Read(b.inFd, buf)
	if err == unix.EINTR || err == unix.EAGAIN {
		return
	}
	if err != nil || n == 0 {
		// EOF
		b.logger.Debug("terminal input ended", "error", err)
		b.queue = append(b.queue, nativeEvent{kind: nativeClose})
		return
	}
	for _, in := range b.parser.feed(buf[:n], nil) {
		b.queue = append(b.queue, nativeEvent{kind: nativeInput, input: in})
	}
}

// handle processes one native event; false ends the loop
func (b *Backend) handle(ev nativeEvent) bool {
	switch ev.kind {
	case nativeClose:
		return false

	case nativeRedraw:
		if b.frame.CheckScreens() {
			b.paint()
		}

	case nativeResize:
		cols, rows := b.size()
		if cols == b.cols && rows == b.rows {
			return true
		}
		b.cols, b.rows = cols, rows
		b.frame.Resized(cols, rows)
		b.write(csiClear)
		b.paint()

	case nativeInput:
		in := ev.input
		switch in.kind {
		case inputInterrupt:
			return false
		case inputRune:
			if b.frame.KeyRune(true, in.r) {
				b.frame.KeyRune(false, in.r)
			}
		case inputPress:
			b.frame.PointerDown(in.x, in.y)
		case inputRelease:
			b.frame.PointerUp(in.x, in.y)
		}
	}
	return true
}

func (b *Backend) paint() {
	b.renderer.Begin()
	b.frame.Paint(&b.renderer, b.cols, b.rows)
	b.write(b.renderer.String())
}

func (b *Backend) write(s string) {
	if _, err := b.opts.Out.WriteString(s); err != nil {
		b.logger.Debug("terminal write failed", "error", err)
	}
}

// size returns the host terminal size in cells
func (b *Backend) size() (cols, rows int) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}
