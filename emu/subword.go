package emu

// SubwordAdapter derives byte and halfword accesses from a WordMemory.
// Every access uses the word the 32-bit primitive returns for the same
// address: the slice is always the low bits of that word, and writes
// preserve the untouched bytes.
type SubwordAdapter struct {
	WordMemory
}

// NewSubwordAdapter wraps mem.
func NewSubwordAdapter(mem WordMemory) SubwordAdapter {
	return SubwordAdapter{WordMemory: mem}
}

// Read8 returns the low byte of the word at addr.
func (a SubwordAdapter) Read8(addr uint32) uint8 {
	return uint8(a.Read32(addr))
}

// Read16 returns the low halfword of the word at addr.
func (a SubwordAdapter) Read16(addr uint32) uint16 {
	return uint16(a.Read32(addr))
}

// Write8 replaces the low byte of the word at addr.
func (a SubwordAdapter) Write8(addr uint32, value uint8) {
	word := a.Read32(addr)
	a.Write32(addr, word&0xFFFFFF00|uint32(value))
}

// Write16 replaces the low halfword of the word at addr.
func (a SubwordAdapter) Write16(addr uint32, value uint16) {
	word := a.Read32(addr)
	a.Write32(addr, word&0xFFFF0000|uint32(value))
}
