package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnalignedScreen is a show screen call with a base address that is
	// not a multiple of 4
	ErrUnalignedScreen = errors.New("vm: unaligned screen address")

	// ErrScreenTooLarge is a show screen call whose width*height exceeds
	// Config.MaxScreenCells
	ErrScreenTooLarge = errors.New("vm: screen too large")

	// ErrUnknownSyscall is a syscall fault with an unassigned number
	ErrUnknownSyscall = errors.New("vm: unknown syscall")

	// ErrClosedByUI ends the run loop when the window has closed
	ErrClosedByUI = errors.New("vm: closed by ui")
)

// ErrorKind classifies an AppError
type ErrorKind int

const (
	KindUnalignedScreen ErrorKind = iota + 1
	KindScreenTooLarge
	KindUnknownSyscall
	KindClosedByUI
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindUnalignedScreen:
		return ErrUnalignedScreen
	case KindScreenTooLarge:
		return ErrScreenTooLarge
	case KindUnknownSyscall:
		return ErrUnknownSyscall
	case KindClosedByUI:
		return ErrClosedByUI
	}
	return nil
}

// AppError is an application exception raised while servicing a syscall.
// It ends the interpreter run loop; the window keeps running.
type AppError struct {
	Kind    ErrorKind
	Syscall uint32 // Number register at the fault
	Addr    uint32 // Argument register at the fault
	Cells   uint64 // Requested screen size (KindScreenTooLarge)
	Err     error  // Underlying cause, if any
}

func (e *AppError) Error() string {
	msg := "vm: application error"
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	switch e.Kind {
	case KindUnalignedScreen:
		msg = fmt.Sprintf("%s 0x%08x", msg, e.Addr)
	case KindScreenTooLarge:
		msg = fmt.Sprintf("%s: %d cells at 0x%08x", msg, e.Cells, e.Addr)
	case KindUnknownSyscall:
		msg = fmt.Sprintf("%s %d", msg, e.Syscall)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the sentinel for the error's kind
func (e *AppError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
