// Package emu provides functional MIPS32 emulation.
package emu

import "github.com/sarchlab/mips32sim/insts"

// BranchUnit evaluates MIPS branch conditions and jump destinations.
type BranchUnit struct{}

// NewBranchUnit creates a new BranchUnit.
func NewBranchUnit() *BranchUnit {
	return &BranchUnit{}
}

// Taken reports whether the conditional branch op is taken for the given
// rs and rt register values. Ops that are not conditional branches are
// never taken.
func (b *BranchUnit) Taken(op insts.Op, rs, rt uint32) bool {
	switch op {
	case insts.OpBEQ:
		return rs == rt
	case insts.OpBNE:
		return rs != rt
	case insts.OpBLEZ:
		return int32(rs) <= 0
	case insts.OpBGTZ:
		return int32(rs) > 0
	case insts.OpBLTZ, insts.OpBLTZAL:
		return int32(rs) < 0
	case insts.OpBGEZ, insts.OpBGEZAL:
		return int32(rs) >= 0
	default:
		return false
	}
}

// Links reports whether op writes the return address to a register.
// BLTZAL and BGEZAL link whether or not the branch is taken.
func (b *BranchUnit) Links(op insts.Op) bool {
	switch op {
	case insts.OpJAL, insts.OpJALR, insts.OpBLTZAL, insts.OpBGEZAL:
		return true
	default:
		return false
	}
}

// ReturnAddress is the link value for an instruction at pc. No delay slot
// is modeled, so it is pc + 4.
func (b *BranchUnit) ReturnAddress(pc uint32) uint32 {
	return pc + 4
}
