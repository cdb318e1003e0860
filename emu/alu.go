// Package emu provides functional MIPS32 emulation.
package emu

// ALU implements MIPS arithmetic, logic, shift and multiply/divide
// operations over 32-bit wraparound values. It holds no state.
type ALU struct{}

// NewALU creates a new ALU.
func NewALU() *ALU {
	return &ALU{}
}

// Add returns a + b. No overflow trap is modeled, so ADD and ADDU agree.
func (a *ALU) Add(op1, op2 uint32) uint32 {
	return op1 + op2
}

// Sub returns a - b. No overflow trap is modeled, so SUB and SUBU agree.
func (a *ALU) Sub(op1, op2 uint32) uint32 {
	return op1 - op2
}

// And returns the bitwise AND.
func (a *ALU) And(op1, op2 uint32) uint32 {
	return op1 & op2
}

// Or returns the bitwise OR.
func (a *ALU) Or(op1, op2 uint32) uint32 {
	return op1 | op2
}

// Xor returns the bitwise XOR.
func (a *ALU) Xor(op1, op2 uint32) uint32 {
	return op1 ^ op2
}

// Nor returns the complement of the bitwise OR.
func (a *ALU) Nor(op1, op2 uint32) uint32 {
	return ^(op1 | op2)
}

// SetLessThan returns 1 if op1 < op2 as signed 32-bit values, else 0.
func (a *ALU) SetLessThan(op1, op2 uint32) uint32 {
	return boolToWord(int32(op1) < int32(op2))
}

// SetLessThanUnsigned returns 1 if op1 < op2 as unsigned values, else 0.
func (a *ALU) SetLessThanUnsigned(op1, op2 uint32) uint32 {
	return boolToWord(op1 < op2)
}

// ShiftLeft performs a logical left shift by the low 5 bits of amount.
func (a *ALU) ShiftLeft(value, amount uint32) uint32 {
	return value << (amount & 0x1F)
}

// ShiftRightLogical performs a zero-filling right shift by the low 5 bits
// of amount.
func (a *ALU) ShiftRightLogical(value, amount uint32) uint32 {
	return value >> (amount & 0x1F)
}

// ShiftRightArith performs a sign-preserving right shift by the low 5 bits
// of amount.
func (a *ALU) ShiftRightArith(value, amount uint32) uint32 {
	return uint32(int32(value) >> (amount & 0x1F))
}

// LoadUpper places imm in the upper halfword with the lower halfword zero.
func (a *ALU) LoadUpper(imm uint16) uint32 {
	return uint32(imm) << 16
}

// Mult returns the signed 64-bit product split into (hi, lo).
func (a *ALU) Mult(op1, op2 uint32) (hi, lo uint32) {
	product := int64(int32(op1)) * int64(int32(op2))
	return uint32(uint64(product) >> 32), uint32(product)
}

// MultUnsigned returns the unsigned 64-bit product split into (hi, lo).
func (a *ALU) MultUnsigned(op1, op2 uint32) (hi, lo uint32) {
	product := uint64(op1) * uint64(op2)
	return uint32(product >> 32), uint32(product)
}

// Div returns the signed remainder (hi) and quotient (lo). ok is false when
// the divisor is zero, in which case hi and lo are meaningless.
// MinInt32 / -1 wraps to MinInt32 with remainder 0.
func (a *ALU) Div(op1, op2 uint32) (hi, lo uint32, ok bool) {
	if op2 == 0 {
		return 0, 0, false
	}

	dividend, divisor := int32(op1), int32(op2)
	if divisor == -1 {
		return 0, uint32(-dividend), true
	}

	return uint32(dividend % divisor), uint32(dividend / divisor), true
}

// DivUnsigned returns the unsigned remainder (hi) and quotient (lo). ok is
// false when the divisor is zero.
func (a *ALU) DivUnsigned(op1, op2 uint32) (hi, lo uint32, ok bool) {
	if op2 == 0 {
		return 0, 0, false
	}
	return op1 % op2, op1 / op2, true
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
