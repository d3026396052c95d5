package cli

import (
	"reflect"
	"testing"
)

func TestInputParserFeed(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []inputEvent
	}{
		{"ascii", "ab", []inputEvent{{kind: inputRune, r: 'a'}, {kind: inputRune, r: 'b'}}},
		{"utf8", "é", []inputEvent{{kind: inputRune, r: 'é'}}},
		{"ctrl-c", "\x03", []inputEvent{{kind: inputInterrupt}}},
		{"ctrl-d", "\x04", []inputEvent{{kind: inputInterrupt}}},
		{"sgr press", "\x1b[<0;3;2M", []inputEvent{{kind: inputPress, x: 2, y: 1}}},
		{"sgr release", "\x1b[<0;10;20m", []inputEvent{{kind: inputRelease, x: 9, y: 19}}},
		{"right button ignored", "\x1b[<2;3;2M", nil},
		{"motion ignored", "\x1b[<32;3;2M", nil},
		{"wheel ignored", "\x1b[<64;3;2M", nil},
		{"cursor key ignored", "\x1b[Ax", []inputEvent{{kind: inputRune, r: 'x'}}},
		{"function key ignored", "\x1b[15~y", []inputEvent{{kind: inputRune, r: 'y'}}},
		{"ss3 ignored", "\x1bOPz", []inputEvent{{kind: inputRune, r: 'z'}}},
		{"alt key", "\x1bq", []inputEvent{{kind: inputRune, r: 'q'}}},
		{"lone esc held", "\x1b", nil},
		{"bad mouse params", "\x1b[<0;x;2Mk", []inputEvent{{kind: inputRune, r: 'k'}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p inputParser
			got := p.feed([]byte(tt.data), nil)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("feed(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestInputParserSplitSequences(t *testing.T) {
	var p inputParser

	if got := p.feed([]byte("\x1b[<0;1"), nil); len(got) != 0 {
		t.Fatalf("partial mouse report produced %+v", got)
	}
	got := p.feed([]byte("2;7M"), nil)
	want := []inputEvent{{kind: inputPress, x: 11, y: 6}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("completed mouse report = %+v, want %+v", got, want)
	}

	// "é" is 0xC3 0xA9
	if got := p.feed([]byte{0xc3}, nil); len(got) != 0 {
		t.Fatalf("partial rune produced %+v", got)
	}
	got = p.feed([]byte{0xa9, 'a'}, nil)
	want = []inputEvent{{kind: inputRune, r: 'é'}, {kind: inputRune, r: 'a'}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("completed rune = %+v, want %+v", got, want)
	}
}

func TestInputParserEscapeAcrossReads(t *testing.T) {
	var p inputParser

	if got := p.feed([]byte("\x1b"), nil); len(got) != 0 {
		t.Fatalf("lone ESC produced %+v", got)
	}
	if !p.waiting() {
		t.Fatal("lone ESC was not held for the next read")
	}
	got := p.feed([]byte("[<0;5;7M"), nil)
	want := []inputEvent{{kind: inputPress, x: 4, y: 6}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mouse report split after ESC = %+v, want %+v", got, want)
	}
	if p.waiting() {
		t.Error("bytes still held after the report completed")
	}
}

func TestInputParserFlush(t *testing.T) {
	var p inputParser

	p.feed([]byte("\x1b"), nil)
	p.flush()
	if p.waiting() {
		t.Fatal("flush left bytes held")
	}

	// After an ESC key press times out, the next bytes are plain text
	got := p.feed([]byte("[A"), nil)
	want := []inputEvent{{kind: inputRune, r: '['}, {kind: inputRune, r: 'A'}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("feed after flush = %+v, want %+v", got, want)
	}
}

func TestInputParserRunawaySequence(t *testing.T) {
	var p inputParser

	// A CSI that never terminates is abandoned instead of buffering forever
	data := "\x1b[1;1;1;1;1;1;1;1;1;1;1;1;1;1;1;1;1;1"
	p.feed([]byte(data), nil)
	if len(p.pending) >= maxPending {
		t.Errorf("pending grew to %d bytes", len(p.pending))
	}
}
