package main

import "github.com/phroun/gridui/vm"

// Memory layout of the echo machine
const (
	eventBase  = 0x10
	screenBase = 0x100
	memorySize = screenBase + 8 + maxCols*maxRows*12
)

type echoPhase int

const (
	phaseShow  echoPhase = iota // store the screen, raise show screen
	phaseInput                  // raise get input
	phaseApply                  // read the event record back
)

// echoMachine runs the echo application behind the vm syscall interface,
// one syscall per quantum, so the demo can exercise the bridge end to end
type echoMachine struct {
	app   *echo
	mem   *vm.Memory
	regs  [2]uint32
	phase echoPhase
}

func newEchoMachine(app *echo) *echoMachine {
	return &echoMachine{app: app, mem: vm.NewMemory(memorySize)}
}

func (m *echoMachine) Run(quantum int) *vm.Fault {
	switch m.phase {
	case phaseShow:
		m.mem.StoreScreen(screenBase, m.app.Screen())
		m.regs[vm.RegNumber] = vm.SyscallShowScreen
		m.regs[vm.RegArgument] = screenBase
		m.phase = phaseInput
		return &vm.Fault{Kind: vm.FaultSyscall}

	case phaseInput:
		m.regs[vm.RegNumber] = vm.SyscallGetInput
		m.regs[vm.RegArgument] = eventBase
		m.phase = phaseApply
		return &vm.Fault{Kind: vm.FaultSyscall}

	default:
		ev, ok := vm.DecodeEvent(m.regs[vm.RegNumber], m.mem.Read(eventBase), m.mem.Read(eventBase+4))
		if ok {
			m.app.Handle(ev)
		}
		m.phase = phaseShow
		return nil
	}
}

func (m *echoMachine) ReadMemory(addr uint32) uint32 {
	return m.mem.Read(addr)
}

func (m *echoMachine) WriteMemory(addr, value uint32) {
	m.mem.Write(addr, value)
}

func (m *echoMachine) Register(i int) uint32 {
	return m.regs[i]
}

func (m *echoMachine) SetRegister(i int, value uint32) {
	m.regs[i] = value
}
