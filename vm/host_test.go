package vm

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/phroun/gridui"
)

// fakeMachine runs one scripted step per Run call, then halts
type fakeMachine struct {
	mem      *Memory
	regs     [2]uint32
	steps    []func(m *fakeMachine) *Fault
	quantums []int
}

func newFakeMachine(steps ...func(m *fakeMachine) *Fault) *fakeMachine {
	return &fakeMachine{mem: NewMemory(0x10000), steps: steps}
}

func (m *fakeMachine) Run(quantum int) *Fault {
	m.quantums = append(m.quantums, quantum)
	if len(m.steps) == 0 {
		return &Fault{Kind: FaultHalt}
	}
	step := m.steps[0]
	m.steps = m.steps[1:]
	return step(m)
}

func (m *fakeMachine) ReadMemory(addr uint32) uint32 { return m.mem.Read(addr) }
func (m *fakeMachine) WriteMemory(addr, value uint32) { m.mem.Write(addr, value) }
func (m *fakeMachine) Register(i int) uint32 { return m.regs[i] }
func (m *fakeMachine) SetRegister(i int, value uint32) { m.regs[i] = value }

// syscallStep raises a syscall with the given registers
func syscallStep(number, arg uint32) func(m *fakeMachine) *Fault {
	return func(m *fakeMachine) *Fault {
		m.regs[RegNumber] = number
		m.regs[RegArgument] = arg
		return &Fault{Kind: FaultSyscall}
	}
}

type fakeUI struct {
	screens []gridui.Screen
	events  []gridui.InputEvent
	sendErr error
}

func (u *fakeUI) SendScreen(s gridui.Screen) error {
	if u.sendErr != nil {
		return u.sendErr
	}
	u.screens = append(u.screens, s)
	return nil
}

func (u *fakeUI) RecvInputEvent() (gridui.InputEvent, error) {
	if len(u.events) == 0 {
		return gridui.InputEvent{}, gridui.ErrClosed
	}
	ev := u.events[0]
	u.events = u.events[1:]
	return ev, nil
}

func testScreen() gridui.Screen {
	codes, _ := gridui.EncodeString("ab12")
	glyphs := make([]gridui.Glyph, len(codes))
	for i, c := range codes {
		glyphs[i] = gridui.Glyph{
			Character:  c,
			Foreground: gridui.RGB24(0x102030 + uint32(i)),
			Background: gridui.RGB24(0xa0b0c0),
		}
	}
	return gridui.MustScreen(2, glyphs)
}

func TestShowScreen(t *testing.T) {
	want := testScreen()
	m := newFakeMachine(syscallStep(SyscallShowScreen, 0x100))
	m.mem.StoreScreen(0x100, want)
	ui := &fakeUI{}

	h := &Host{Machine: m, UI: ui}
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(ui.screens) != 1 {
		t.Fatalf("got %d screens, want 1", len(ui.screens))
	}
	got := ui.screens[0]
	if got.Width() != 2 || got.Height() != 2 {
		t.Errorf("screen is %dx%d, want 2x2", got.Width(), got.Height())
	}
	if !reflect.DeepEqual(got.Glyphs(), want.Glyphs()) {
		t.Errorf("glyphs = %+v, want %+v", got.Glyphs(), want.Glyphs())
	}
}

func TestShowEmptyScreen(t *testing.T) {
	m := newFakeMachine(syscallStep(SyscallShowScreen, 0x40))
	m.mem.Load(0x40, 5, 0) // five columns, no rows
	ui := &fakeUI{}

	h := &Host{Machine: m, UI: ui}
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ui.screens) != 1 || !ui.screens[0].IsEmpty() {
		t.Errorf("screens = %+v, want one empty screen", ui.screens)
	}
}

func TestGetInput(t *testing.T) {
	a, _ := gridui.Encode('a')
	tests := []struct {
		ev      gridui.InputEvent
		code    uint32
		payload [2]uint32
	}{
		{gridui.ResizeEvent(80, 24), EventResize, [2]uint32{80, 24}},
		{gridui.PointerDownEvent(3, 4), EventPointerDown, [2]uint32{3, 4}},
		{gridui.PointerUpEvent(5, 6), EventPointerUp, [2]uint32{5, 6}},
		{gridui.KeyDownEvent(a), EventKeyDown, [2]uint32{uint32(a), 0}},
		{gridui.KeyUpEvent(a), EventKeyUp, [2]uint32{uint32(a), 0}},
	}

	for _, tt := range tests {
		t.Run(tt.ev.String(), func(t *testing.T) {
			var code uint32
			var payload [2]uint32
			m := newFakeMachine(
				syscallStep(SyscallGetInput, 0x200),
				func(m *fakeMachine) *Fault {
					code = m.regs[RegNumber]
					payload = [2]uint32{m.mem.Read(0x200), m.mem.Read(0x204)}
					return &Fault{Kind: FaultHalt}
				},
			)
			m.mem.Load(0x200, 0xdead, 0xbeef)
			ui := &fakeUI{events: []gridui.InputEvent{tt.ev}}

			h := &Host{Machine: m, UI: ui}
			if err := h.Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if code != tt.code {
				t.Errorf("event code = %d, want %d", code, tt.code)
			}
			if payload != tt.payload {
				t.Errorf("payload = %v, want %v", payload, tt.payload)
			}
		})
	}
}

func TestAppErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *fakeMachine, ui *fakeUI)
		step  func(m *fakeMachine) *Fault
		want  error
		kind  ErrorKind
	}{
		{
			name: "unaligned screen",
			step: syscallStep(SyscallShowScreen, 0x102),
			want: ErrUnalignedScreen,
			kind: KindUnalignedScreen,
		},
		{
			name:  "screen too large",
			setup: func(m *fakeMachine, ui *fakeUI) { m.mem.Load(0x100, 1000, 1000) },
			step:  syscallStep(SyscallShowScreen, 0x100),
			want:  ErrScreenTooLarge,
			kind:  KindScreenTooLarge,
		},
		{
			name: "unknown syscall",
			step: syscallStep(99, 0),
			want: ErrUnknownSyscall,
			kind: KindUnknownSyscall,
		},
		{
			name:  "close event",
			setup: func(m *fakeMachine, ui *fakeUI) { ui.events = []gridui.InputEvent{gridui.CloseEvent()} },
			step:  syscallStep(SyscallGetInput, 0x200),
			want:  ErrClosedByUI,
			kind:  KindClosedByUI,
		},
		{
			name: "event channel closed",
			step: syscallStep(SyscallGetInput, 0x200),
			want: ErrClosedByUI,
			kind: KindClosedByUI,
		},
		{
			name:  "screen after close",
			setup: func(m *fakeMachine, ui *fakeUI) { ui.sendErr = gridui.ErrClosed },
			step:  syscallStep(SyscallShowScreen, 0x100),
			want:  ErrClosedByUI,
			kind:  KindClosedByUI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFakeMachine(tt.step, func(m *fakeMachine) *Fault {
				t.Error("machine resumed after an application error")
				return &Fault{Kind: FaultHalt}
			})
			ui := &fakeUI{}
			if tt.setup != nil {
				tt.setup(m, ui)
			}

			h := &Host{Machine: m, UI: ui}
			err := h.Run(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run = %v, want %v", err, tt.want)
			}
			var appErr *AppError
			if !errors.As(err, &appErr) || appErr.Kind != tt.kind {
				t.Errorf("Run = %#v, want AppError kind %d", err, tt.kind)
			}
			if len(ui.screens) != 0 {
				t.Errorf("UI received %d screens", len(ui.screens))
			}
		})
	}
}

func TestAppErrorKindsAreDistinct(t *testing.T) {
	err := &AppError{Kind: KindScreenTooLarge}
	for _, other := range []error{ErrUnalignedScreen, ErrUnknownSyscall, ErrClosedByUI} {
		if errors.Is(err, other) {
			t.Errorf("screen too large matched %v", other)
		}
	}

	closed := &AppError{Kind: KindClosedByUI, Err: gridui.ErrClosed}
	if !errors.Is(closed, gridui.ErrClosed) {
		t.Error("closed by ui does not unwrap to gridui.ErrClosed")
	}
}

func TestMachineFaultEndsRun(t *testing.T) {
	m := newFakeMachine(func(m *fakeMachine) *Fault {
		return &Fault{Kind: FaultIllegal, PC: 0x44}
	})

	h := &Host{Machine: m, UI: &fakeUI{}}
	err := h.Run(context.Background())

	var fault *Fault
	if !errors.As(err, &fault) || fault.Kind != FaultIllegal || fault.PC != 0x44 {
		t.Errorf("Run = %v, want illegal instruction fault at 0x44", err)
	}
}

func TestQuantum(t *testing.T) {
	m := newFakeMachine(func(*fakeMachine) *Fault { return nil })
	h := &Host{Machine: m, UI: &fakeUI{}}
	h.Run(context.Background())
	if m.quantums[0] != DefaultQuantum {
		t.Errorf("default quantum = %d, want %d", m.quantums[0], DefaultQuantum)
	}

	m = newFakeMachine()
	h = &Host{Machine: m, UI: &fakeUI{}, Config: Config{Quantum: 7}}
	h.Run(context.Background())
	if m.quantums[0] != 7 {
		t.Errorf("quantum = %d, want 7", m.quantums[0])
	}
}

func TestMaxScreenCells(t *testing.T) {
	m := newFakeMachine(syscallStep(SyscallShowScreen, 0x100))
	m.mem.Load(0x100, 4, 4)

	h := &Host{Machine: m, UI: &fakeUI{}, Config: Config{MaxScreenCells: 15}}
	if err := h.Run(context.Background()); !errors.Is(err, ErrScreenTooLarge) {
		t.Errorf("16 cells with a limit of 15: Run = %v", err)
	}
}

func TestContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runs := 0
	spin := func(*fakeMachine) *Fault {
		runs++
		if runs == 3 {
			cancel()
		}
		return nil
	}
	m := newFakeMachine(spin, spin, spin, spin, spin)

	h := &Host{Machine: m, UI: &fakeUI{}}
	if err := h.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
	if runs != 3 {
		t.Errorf("machine ran %d quanta after cancel, want 3 total", runs)
	}
}

func TestMemory(t *testing.T) {
	mem := NewMemory(10)
	if mem.Size() != 12 {
		t.Errorf("Size = %d, want 12", mem.Size())
	}

	mem.Write(5, 42)
	if got := mem.Read(4); got != 42 {
		t.Errorf("Read(4) after Write(5) = %d, want 42", got)
	}

	mem.Write(100, 1)
	if got := mem.Read(100); got != 0 {
		t.Errorf("Read past end = %d, want 0", got)
	}
}

func TestDecodeEvent(t *testing.T) {
	z, _ := gridui.Encode('Z')
	for _, ev := range []gridui.InputEvent{
		gridui.ResizeEvent(40, 12),
		gridui.PointerDownEvent(1, 2),
		gridui.PointerUpEvent(3, 4),
		gridui.KeyDownEvent(z),
		gridui.KeyUpEvent(z),
	} {
		got, ok := DecodeEvent(EncodeEvent(ev))
		if !ok || got != ev {
			t.Errorf("DecodeEvent(EncodeEvent(%v)) = %v, %v", ev, got, ok)
		}
	}

	if _, ok := DecodeEvent(0, 0, 0); ok {
		t.Error("code 0 decoded")
	}
	if code, _, _ := EncodeEvent(gridui.CloseEvent()); code != 0 {
		t.Errorf("Close encoded as %d, want 0", code)
	}
}
