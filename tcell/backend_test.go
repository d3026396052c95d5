package griduitcell

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/phroun/gridui"
)

func startSim(t *testing.T) (*gridui.GridUI, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	g, err := gridui.New(New(Options{Screen: screen}), gridui.Options{Logger: hclog.NewNullLogger()})
	if err != nil {
		t.Fatalf("gridui.New: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g, screen
}

// nextInput returns the next event that is not a Resize
func nextInput(t *testing.T, g *gridui.GridUI) gridui.InputEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-g.Events():
			if !ok {
				t.Fatal("event channel closed")
			}
			if ev.Kind == gridui.EventResize {
				continue
			}
			return ev
		case <-deadline:
			t.Fatal("timed out waiting for event")
		}
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestInitialResizeMatchesScreen(t *testing.T) {
	g, screen := startSim(t)

	select {
	case ev := <-g.Events():
		w, h := screen.Size()
		if ev != gridui.ResizeEvent(uint32(w), uint32(h)) {
			t.Errorf("first event = %v, want Resize{%d, %d}", ev, w, h)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial resize")
	}
}

func TestKeyPressDeliversDownThenUp(t *testing.T) {
	g, screen := startSim(t)

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)

	a, _ := gridui.Encode('a')
	if ev := nextInput(t, g); ev != gridui.KeyDownEvent(a) {
		t.Errorf("event = %v, want KeyDown{'a'}", ev)
	}
	if ev := nextInput(t, g); ev != gridui.KeyUpEvent(a) {
		t.Errorf("event = %v, want KeyUp{'a'}", ev)
	}
}

func TestUnsupportedKeyIgnored(t *testing.T) {
	g, screen := startSim(t)

	screen.InjectKey(tcell.KeyRune, '!', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'Z', tcell.ModNone)

	z, _ := gridui.Encode('Z')
	if ev := nextInput(t, g); ev != gridui.KeyDownEvent(z) {
		t.Errorf("event = %v, want KeyDown{'Z'}", ev)
	}
}

func TestEscapeKeepsWindowOpen(t *testing.T) {
	g, screen := startSim(t)

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)

	a, _ := gridui.Encode('a')
	if ev := nextInput(t, g); ev != gridui.KeyDownEvent(a) {
		t.Fatalf("event = %v, want KeyDown{'a'}", ev)
	}
	select {
	case <-g.Done():
		t.Error("render thread stopped after Escape")
	default:
	}
}

func TestMouseClick(t *testing.T) {
	g, screen := startSim(t)

	screen.InjectMouse(3, 2, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(4, 2, tcell.ButtonNone, tcell.ModNone)

	if ev := nextInput(t, g); ev != gridui.PointerDownEvent(3, 2) {
		t.Errorf("event = %v, want PointerDown{3, 2}", ev)
	}
	if ev := nextInput(t, g); ev != gridui.PointerUpEvent(4, 2) {
		t.Errorf("event = %v, want PointerUp{4, 2}", ev)
	}
}

func TestScreenDrawnWithFiller(t *testing.T) {
	g, screen := startSim(t)

	codes, _ := gridui.EncodeString("hi")
	red := gridui.Color{R: 200}
	glyphs := []gridui.Glyph{
		{Character: codes[0], Foreground: red, Background: gridui.DefaultBackground},
		{Character: codes[1], Foreground: red, Background: gridui.DefaultBackground},
		{Character: 0xffff, Foreground: red, Background: gridui.DefaultBackground},
	}
	if err := g.SendScreen(gridui.MustScreen(3, glyphs)); err != nil {
		t.Fatalf("SendScreen: %v", err)
	}

	waitFor(t, "screen contents", func() bool {
		r, _, _, _ := screen.GetContent(1, 0)
		return r == 'i'
	})

	r, _, style, _ := screen.GetContent(0, 0)
	fg, bg, _ := style.Decompose()
	if r != 'h' || fg != rgb(red) || bg != rgb(gridui.DefaultBackground) {
		t.Errorf("cell (0,0) = %q fg %v bg %v", r, fg, bg)
	}
	if r, _, _, _ := screen.GetContent(2, 0); r != gridui.MissingRune {
		t.Errorf("undecodable cell = %q, want %q", r, gridui.MissingRune)
	}

	_, _, style, _ = screen.GetContent(3, 0)
	if _, bg, _ := style.Decompose(); bg != rgb(gridui.FillerColor) {
		t.Errorf("filler right of screen bg = %v", bg)
	}
	_, _, style, _ = screen.GetContent(0, 1)
	if _, bg, _ := style.Decompose(); bg != rgb(gridui.FillerColor) {
		t.Errorf("filler below screen bg = %v", bg)
	}
}

func TestCtrlCCloses(t *testing.T) {
	g, screen := startSim(t)

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	if ev := nextInput(t, g); !ev.IsClose() {
		t.Fatalf("event = %v, want Close", ev)
	}
	select {
	case <-g.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("render thread still running")
	}
	if _, err := g.RecvInputEvent(); !errors.Is(err, gridui.ErrClosed) {
		t.Errorf("RecvInputEvent = %v, want ErrClosed", err)
	}
}

func TestRequestClose(t *testing.T) {
	g, _ := startSim(t)

	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if ev := nextInput(t, g); !ev.IsClose() {
		t.Errorf("event = %v, want Close", ev)
	}
	if err := g.SendScreen(gridui.EmptyScreen()); !errors.Is(err, gridui.ErrClosed) {
		t.Errorf("SendScreen after close = %v", err)
	}
}
