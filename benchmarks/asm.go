package benchmarks

import "github.com/sarchlab/mips32sim/insts"

// Register numbers used by the benchmark programs.
const (
	zero = insts.RegZero
	v0   = insts.RegV0
	t0   = uint8(8)
	t1   = uint8(9)
	t2   = uint8(10)
	t3   = uint8(11)
	t4   = uint8(12)
	s0   = uint8(16)
	s1   = uint8(17)
	ra   = insts.RegRA
)

// Helper functions for building MIPS programs. Branch offsets are counted
// in instructions relative to the instruction after the branch.

func addi(rt, rs uint8, imm int16) uint32 {
	return insts.EncodeI(insts.OpcodeADDI, rs, rt, uint16(imm))
}

func andi(rt, rs uint8, imm int16) uint32 {
	return insts.EncodeI(insts.OpcodeANDI, rs, rt, uint16(imm))
}

func ori(rt, rs uint8, imm int16) uint32 {
	return insts.EncodeI(insts.OpcodeORI, rs, rt, uint16(imm))
}

func lui(rt uint8, imm uint16) uint32 {
	return insts.EncodeI(insts.OpcodeLUI, 0, rt, imm)
}

func add(rd, rs, rt uint8) uint32 {
	return insts.EncodeR(rs, rt, rd, 0, insts.FunctADD)
}

func mult(rs, rt uint8) uint32 {
	return insts.EncodeR(rs, rt, 0, 0, insts.FunctMULT)
}

func div(rs, rt uint8) uint32 {
	return insts.EncodeR(rs, rt, 0, 0, insts.FunctDIV)
}

func mflo(rd uint8) uint32 {
	return insts.EncodeR(0, 0, rd, 0, insts.FunctMFLO)
}

func mfhi(rd uint8) uint32 {
	return insts.EncodeR(0, 0, rd, 0, insts.FunctMFHI)
}

func lw(rt, base uint8, off int16) uint32 {
	return insts.EncodeI(insts.OpcodeLW, base, rt, uint16(off))
}

func sw(rt, base uint8, off int16) uint32 {
	return insts.EncodeI(insts.OpcodeSW, base, rt, uint16(off))
}

func lbu(rt, base uint8, off int16) uint32 {
	return insts.EncodeI(insts.OpcodeLBU, base, rt, uint16(off))
}

func sb(rt, base uint8, off int16) uint32 {
	return insts.EncodeI(insts.OpcodeSB, base, rt, uint16(off))
}

func beq(rs, rt uint8, off int16) uint32 {
	return insts.EncodeI(insts.OpcodeBEQ, rs, rt, uint16(off))
}

func bne(rs, rt uint8, off int16) uint32 {
	return insts.EncodeI(insts.OpcodeBNE, rs, rt, uint16(off))
}

func bgtz(rs uint8, off int16) uint32 {
	return insts.EncodeI(insts.OpcodeBGTZ, rs, 0, uint16(off))
}

// j and jal take the instruction index within the program.
func j(index int) uint32 {
	return insts.EncodeJ(insts.OpcodeJ, programBase+uint32(index)*4)
}

func jal(index int) uint32 {
	return insts.EncodeJ(insts.OpcodeJAL, programBase+uint32(index)*4)
}

func jr(rs uint8) uint32 {
	return insts.EncodeR(rs, 0, 0, 0, insts.FunctJR)
}

// exit returns the exit syscall sequence.
func exit() []uint32 {
	return []uint32{addi(v0, zero, 10), insts.EncodeSyscall()}
}

// program concatenates instructions and instruction sequences.
func program(parts ...any) []uint32 {
	var out []uint32
	for _, p := range parts {
		switch v := p.(type) {
		case uint32:
			out = append(out, v)
		case []uint32:
			out = append(out, v...)
		default:
			panic("program: unsupported part")
		}
	}
	return out
}
