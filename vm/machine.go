// Package vm connects a register-machine interpreter to a gridui window.
//
// The interpreter itself is not part of this package. It is driven through
// the Machine interface, a quantum at a time, and talks to the window only
// by raising syscall faults:
//
//	number register   argument register   effect
//	SyscallShowScreen screen base address  draw the screen record in memory
//	SyscallGetInput   event record address wait for input, store it
//
// A screen record is a run of 32-bit words starting at a 4-aligned address:
// width, height, then width*height cells of three words each (glyph code,
// foreground 0xRRGGBB, background 0xRRGGBB).
//
// An event record is two words, filled according to the event code that
// get input leaves in the number register:
//
//	EventResize      cols, rows
//	EventPointerDown col, row
//	EventPointerUp   col, row
//	EventKeyDown     glyph code, 0
//	EventKeyUp       glyph code, 0
package vm

import "fmt"

// Registers used by the syscall convention
const (
	RegNumber   = 0 // syscall number in, event code out
	RegArgument = 1 // syscall argument, always an address
)

// Syscall numbers
const (
	SyscallShowScreen uint32 = 1
	SyscallGetInput   uint32 = 2
)

// Event codes written back by SyscallGetInput
const (
	EventResize      uint32 = 1
	EventPointerDown uint32 = 2
	EventPointerUp   uint32 = 3
	EventKeyDown     uint32 = 4
	EventKeyUp       uint32 = 5
)

// FaultKind classifies why a Machine stopped before its quantum ran out
type FaultKind int

const (
	FaultSyscall FaultKind = iota + 1 // Syscall requested; resume after servicing it
	FaultHalt                         // Program finished
	FaultIllegal                      // Illegal instruction
	FaultMemory                       // Access outside memory
)

func (k FaultKind) String() string {
	switch k {
	case FaultSyscall:
		return "syscall"
	case FaultHalt:
		return "halt"
	case FaultIllegal:
		return "illegal instruction"
	case FaultMemory:
		return "memory fault"
	default:
		return fmt.Sprintf("fault(%d)", int(k))
	}
}

// Fault is raised by Machine.Run. Any kind other than FaultSyscall ends the
// host loop and is returned from Host.Run as is.
type Fault struct {
	Kind FaultKind
	PC   uint32 // Instruction address, when the machine has one
}

func (f *Fault) Error() string {
	return fmt.Sprintf("vm: %s at pc 0x%08x", f.Kind, f.PC)
}

// Machine is the interpreter. All methods are called from the goroutine
// running Host.Run.
type Machine interface {
	// Run executes up to quantum instructions. It returns nil if the
	// quantum ran out without a fault.
	Run(quantum int) *Fault

	ReadMemory(addr uint32) uint32
	WriteMemory(addr uint32, value uint32)

	Register(i int) uint32
	SetRegister(i int, value uint32)
}
