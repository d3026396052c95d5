package vm

import "github.com/phroun/gridui"

// Memory is a byte-addressed store of 32-bit words for Machine
// implementations. Addresses are rounded down to their word; accesses
// past the end read 0 and are not stored.
type Memory struct {
	words []uint32
}

// NewMemory creates a memory of size bytes, rounded up to whole words
func NewMemory(size uint32) *Memory {
	return &Memory{words: make([]uint32, (uint64(size)+3)/4)}
}

// Size returns the memory size in bytes
func (m *Memory) Size() uint32 {
	return uint32(len(m.words) * 4)
}

// Read returns the word containing addr
func (m *Memory) Read(addr uint32) uint32 {
	i := addr / 4
	if uint64(i) >= uint64(len(m.words)) {
		return 0
	}
	return m.words[i]
}

// Write stores the word containing addr
func (m *Memory) Write(addr, value uint32) {
	i := addr / 4
	if uint64(i) >= uint64(len(m.words)) {
		return
	}
	m.words[i] = value
}

// Load writes consecutive words starting at addr
func (m *Memory) Load(addr uint32, words ...uint32) {
	for _, w := range words {
		m.Write(addr, w)
		addr += 4
	}
}

// StoreScreen writes s as a screen record at base and returns the address
// just past it
func (m *Memory) StoreScreen(base uint32, s gridui.Screen) uint32 {
	m.Load(base, uint32(s.Width()), uint32(s.Height()))
	addr := base + 8
	for _, g := range s.Glyphs() {
		m.Load(addr, uint32(g.Character), g.Foreground.Uint32(), g.Background.Uint32())
		addr += 12
	}
	return addr
}
