package insts

// EncodeR builds an R-type instruction word.
func EncodeR(rs, rt, rd, shamt, funct uint8) uint32 {
	return uint32(rs&0x1F)<<21 | uint32(rt&0x1F)<<16 | uint32(rd&0x1F)<<11 |
		uint32(shamt&0x1F)<<6 | uint32(funct&0x3F)
}

// EncodeI builds an I-type instruction word. Only the low 16 bits of imm
// are kept, so negative immediates can be passed as uint16(int16(x)).
func EncodeI(opcode, rs, rt uint8, imm uint16) uint32 {
	return uint32(opcode&0x3F)<<26 | uint32(rs&0x1F)<<21 | uint32(rt&0x1F)<<16 | uint32(imm)
}

// EncodeJ builds a J-type instruction word from a byte address. The low 2
// bits and the upper 4 bits of addr are dropped.
func EncodeJ(opcode uint8, addr uint32) uint32 {
	return uint32(opcode&0x3F)<<26 | (addr>>2)&0x03FFFFFF
}

// EncodeSyscall returns the SYSCALL instruction word.
func EncodeSyscall() uint32 {
	return EncodeR(0, 0, 0, 0, FunctSYSCALL)
}
