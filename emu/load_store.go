// Package emu provides functional MIPS32 emulation.
package emu

// LoadStoreUnit implements MIPS load and store operations of widths 8, 16
// and 32 bits on top of a word-granular memory.
type LoadStoreUnit struct {
	memory SubwordAdapter
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given memory.
func NewLoadStoreUnit(memory WordMemory) *LoadStoreUnit {
	return &LoadStoreUnit{memory: NewSubwordAdapter(memory)}
}

// LB loads a byte with sign extension.
func (lsu *LoadStoreUnit) LB(addr uint32) uint32 {
	return uint32(int32(int8(lsu.memory.Read8(addr))))
}

// LBU loads a byte with zero extension.
func (lsu *LoadStoreUnit) LBU(addr uint32) uint32 {
	return uint32(lsu.memory.Read8(addr))
}

// LH loads a halfword with sign extension.
func (lsu *LoadStoreUnit) LH(addr uint32) uint32 {
	return uint32(int32(int16(lsu.memory.Read16(addr))))
}

// LHU loads a halfword with zero extension.
func (lsu *LoadStoreUnit) LHU(addr uint32) uint32 {
	return uint32(lsu.memory.Read16(addr))
}

// LW loads a word.
func (lsu *LoadStoreUnit) LW(addr uint32) uint32 {
	return lsu.memory.Read32(addr)
}

// SB stores the low byte of value, preserving the rest of the word.
func (lsu *LoadStoreUnit) SB(addr, value uint32) {
	lsu.memory.Write8(addr, uint8(value))
}

// SH stores the low halfword of value, preserving the rest of the word.
func (lsu *LoadStoreUnit) SH(addr, value uint32) {
	lsu.memory.Write16(addr, uint16(value))
}

// SW stores a word.
func (lsu *LoadStoreUnit) SW(addr, value uint32) {
	lsu.memory.Write32(addr, value)
}
