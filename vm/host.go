package vm

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/phroun/gridui"
)

// UI is the window side of the bridge. *gridui.GridUI implements it.
type UI interface {
	SendScreen(s gridui.Screen) error
	RecvInputEvent() (gridui.InputEvent, error)
}

// Config tunes the host loop
type Config struct {
	Quantum        int    // Instructions per Machine.Run (default: 10000)
	MaxScreenCells uint64 // Largest width*height accepted (default: 65536)
}

// Default configuration values
const (
	DefaultQuantum        = 10000
	DefaultMaxScreenCells = 1 << 16
)

// Host runs a Machine and services its syscalls against a UI
type Host struct {
	Machine Machine
	UI      UI
	Config  Config
	Logger  hclog.Logger // default: a null logger
}

// Run drives the machine until it halts, faults, raises an application
// error, or ctx is cancelled. A FaultHalt ends the loop with a nil error.
// Cancellation is checked between quanta; a get input call already waiting
// on the UI returns only when an event arrives or the window closes.
func (h *Host) Run(ctx context.Context) error {
	cfg := h.Config
	if cfg.Quantum <= 0 {
		cfg.Quantum = DefaultQuantum
	}
	if cfg.MaxScreenCells == 0 {
		cfg.MaxScreenCells = DefaultMaxScreenCells
	}
	logger := h.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fault := h.Machine.Run(cfg.Quantum)
		if fault == nil {
			continue
		}

		switch fault.Kind {
		case FaultSyscall:
			if err := h.syscall(cfg, logger); err != nil {
				logger.Debug("run loop ended", "error", err)
				return err
			}
		case FaultHalt:
			logger.Debug("machine halted", "pc", fault.PC)
			return nil
		default:
			logger.Warn("machine fault", "kind", fault.Kind.String(), "pc", fault.PC)
			return fault
		}
	}
}

// syscall dispatches on the number register
func (h *Host) syscall(cfg Config, logger hclog.Logger) error {
	number := h.Machine.Register(RegNumber)
	arg := h.Machine.Register(RegArgument)
	logger.Trace("syscall", "number", number, "arg", arg)

	switch number {
	case SyscallShowScreen:
		return h.showScreen(cfg, arg)
	case SyscallGetInput:
		return h.getInput(arg)
	default:
		return &AppError{Kind: KindUnknownSyscall, Syscall: number, Addr: arg}
	}
}

// showScreen reads a screen record at base and sends it to the UI
func (h *Host) showScreen(cfg Config, base uint32) error {
	if base%4 != 0 {
		return &AppError{Kind: KindUnalignedScreen, Syscall: SyscallShowScreen, Addr: base}
	}

	m := h.Machine
	width := m.ReadMemory(base)
	height := m.ReadMemory(base + 4)
	cells := uint64(width) * uint64(height)
	if cells > cfg.MaxScreenCells {
		return &AppError{Kind: KindScreenTooLarge, Syscall: SyscallShowScreen, Addr: base, Cells: cells}
	}

	glyphs := make([]gridui.Glyph, cells)
	addr := base + 8
	for i := range glyphs {
		glyphs[i] = gridui.Glyph{
			Character:  gridui.GlyphCode(m.ReadMemory(addr)),
			Foreground: gridui.RGB24(m.ReadMemory(addr + 4)),
			Background: gridui.RGB24(m.ReadMemory(addr + 8)),
		}
		addr += 12
	}

	// A zero width with rows is still an empty screen
	if cells == 0 {
		width = 0
	}
	screen, err := gridui.NewScreen(int(width), glyphs)
	if err != nil {
		return fmt.Errorf("show screen %dx%d: %w", width, height, err)
	}

	if err := h.UI.SendScreen(screen); err != nil {
		if errors.Is(err, gridui.ErrClosed) {
			return &AppError{Kind: KindClosedByUI, Syscall: SyscallShowScreen, Addr: base, Err: err}
		}
		return fmt.Errorf("show screen: %w", err)
	}
	return nil
}

// getInput waits for the next event and stores it at addr
func (h *Host) getInput(addr uint32) error {
	ev, err := h.UI.RecvInputEvent()
	if err != nil {
		return &AppError{Kind: KindClosedByUI, Syscall: SyscallGetInput, Addr: addr, Err: err}
	}
	if ev.IsClose() {
		return &AppError{Kind: KindClosedByUI, Syscall: SyscallGetInput, Addr: addr}
	}

	code, a, b := EncodeEvent(ev)
	m := h.Machine
	m.WriteMemory(addr, a)
	m.WriteMemory(addr+4, b)
	m.SetRegister(RegNumber, code)
	return nil
}

// EncodeEvent maps an input event to its event code and record words.
// Close has no code; it returns 0.
func EncodeEvent(ev gridui.InputEvent) (code, a, b uint32) {
	switch ev.Kind {
	case gridui.EventResize:
		return EventResize, ev.Cols, ev.Rows
	case gridui.EventPointerDown:
		return EventPointerDown, ev.Col, ev.Row
	case gridui.EventPointerUp:
		return EventPointerUp, ev.Col, ev.Row
	case gridui.EventKeyDown:
		return EventKeyDown, uint32(ev.Key), 0
	case gridui.EventKeyUp:
		return EventKeyUp, uint32(ev.Key), 0
	}
	return 0, 0, 0
}

// DecodeEvent is the inverse of EncodeEvent, for Machine implementations
// that read their event record back. It reports false for unknown codes.
func DecodeEvent(code, a, b uint32) (gridui.InputEvent, bool) {
	switch code {
	case EventResize:
		return gridui.ResizeEvent(a, b), true
	case EventPointerDown:
		return gridui.PointerDownEvent(a, b), true
	case EventPointerUp:
		return gridui.PointerUpEvent(a, b), true
	case EventKeyDown:
		return gridui.KeyDownEvent(gridui.GlyphCode(a)), true
	case EventKeyUp:
		return gridui.KeyUpEvent(gridui.GlyphCode(a)), true
	}
	return gridui.InputEvent{}, false
}
