// Package emu provides functional MIPS32 emulation.
package emu

// State is the architectural state visible to software: the program
// counter, the 32 general-purpose registers and the HI/LO multiply/divide
// registers. Register 0 is not special-cased.
type State struct {
	// PC is the program counter.
	PC uint32

	// Regs holds the general-purpose registers.
	Regs [32]uint32

	// HI holds the upper product word or the division remainder.
	HI uint32

	// LO holds the lower product word or the division quotient.
	LO uint32
}

// ReadReg reads a general-purpose register. Only the low 5 bits of reg are
// used.
func (s *State) ReadReg(reg uint8) uint32 {
	return s.Regs[reg&0x1F]
}

// WriteReg writes a general-purpose register. Only the low 5 bits of reg
// are used.
func (s *State) WriteReg(reg uint8, value uint32) {
	s.Regs[reg&0x1F] = value
}
