// Package insts provides MIPS32 instruction definitions and decoding.
package insts

import "fmt"

// Op represents a resolved MIPS instruction.
type Op uint8

// MIPS operations.
const (
	OpUnknown Op = iota

	// R-type shifts
	OpSLL
	OpSRL
	OpSRA
	OpSLLV
	OpSRLV
	OpSRAV

	// R-type jumps and system
	OpJR
	OpJALR
	OpSYSCALL

	// HI/LO moves
	OpMFHI
	OpMTHI
	OpMFLO
	OpMTLO

	// Multiply/divide
	OpMULT
	OpMULTU
	OpDIV
	OpDIVU

	// R-type arithmetic and logic
	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpAND
	OpOR
	OpXOR
	OpNOR
	OpSLT
	OpSLTU

	// REGIMM branches
	OpBLTZ
	OpBGEZ
	OpBLTZAL
	OpBGEZAL

	// Jumps
	OpJ
	OpJAL

	// I-type branches
	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ

	// I-type arithmetic and logic
	OpADDI
	OpADDIU
	OpSLTI
	OpSLTIU
	OpANDI
	OpORI
	OpXORI
	OpLUI

	// Loads and stores
	OpLB
	OpLH
	OpLW
	OpLBU
	OpLHU
	OpSB
	OpSH
	OpSW

	opCount
)

var opNames = [opCount]string{
	OpUnknown: "unknown",
	OpSLL:     "sll", OpSRL: "srl", OpSRA: "sra",
	OpSLLV: "sllv", OpSRLV: "srlv", OpSRAV: "srav",
	OpJR: "jr", OpJALR: "jalr", OpSYSCALL: "syscall",
	OpMFHI: "mfhi", OpMTHI: "mthi", OpMFLO: "mflo", OpMTLO: "mtlo",
	OpMULT: "mult", OpMULTU: "multu", OpDIV: "div", OpDIVU: "divu",
	OpADD: "add", OpADDU: "addu", OpSUB: "sub", OpSUBU: "subu",
	OpAND: "and", OpOR: "or", OpXOR: "xor", OpNOR: "nor",
	OpSLT: "slt", OpSLTU: "sltu",
	OpBLTZ: "bltz", OpBGEZ: "bgez", OpBLTZAL: "bltzal", OpBGEZAL: "bgezal",
	OpJ: "j", OpJAL: "jal",
	OpBEQ: "beq", OpBNE: "bne", OpBLEZ: "blez", OpBGTZ: "bgtz",
	OpADDI: "addi", OpADDIU: "addiu", OpSLTI: "slti", OpSLTIU: "sltiu",
	OpANDI: "andi", OpORI: "ori", OpXORI: "xori", OpLUI: "lui",
	OpLB: "lb", OpLH: "lh", OpLW: "lw", OpLBU: "lbu", OpLHU: "lhu",
	OpSB: "sb", OpSH: "sh", OpSW: "sw",
}

// String returns the assembler mnemonic of the operation.
func (op Op) String() string {
	if op >= opCount {
		return fmt.Sprintf("op(%d)", uint8(op))
	}
	return opNames[op]
}

// Format represents the executor class of an instruction.
type Format uint8

// Instruction formats.
const (
	FormatUnknown   Format = iota
	FormatALU              // Register-register arithmetic, logic and shifts
	FormatALUImm           // Register-immediate arithmetic and logic
	FormatMulDiv           // Multiply, divide and HI/LO moves
	FormatLoadStore        // Memory access
	FormatBranch           // PC-relative conditional branches
	FormatJump             // Absolute and register jumps
	FormatSyscall          // SYSCALL
)

var formatNames = [...]string{
	FormatUnknown:   "unknown",
	FormatALU:       "alu",
	FormatALUImm:    "alu-imm",
	FormatMulDiv:    "muldiv",
	FormatLoadStore: "load-store",
	FormatBranch:    "branch",
	FormatJump:      "jump",
	FormatSyscall:   "syscall",
}

func (f Format) String() string {
	if int(f) >= len(formatNames) {
		return fmt.Sprintf("format(%d)", uint8(f))
	}
	return formatNames[f]
}

// Instruction represents a decoded MIPS instruction.
type Instruction struct {
	Op     Op     // Resolved operation
	Format Format // Executor class
	Word   uint32 // Raw instruction word

	// Raw fields
	Opcode uint8 // bits [31:26]
	Rs     uint8 // bits [25:21]
	Rt     uint8 // bits [20:16]
	Rd     uint8 // bits [15:11]
	Shamt  uint8 // bits [10:6]
	Funct  uint8 // bits [5:0]

	// Imm is the raw 16-bit immediate field.
	Imm uint16

	// ExtImm is Imm sign-extended to 32 bits.
	ExtImm int32

	// Offset is ExtImm shifted left by 2, the PC-relative branch displacement.
	Offset int32

	// Target is the 26-bit jump field shifted left by 2.
	Target uint32
}

// Address returns the effective load/store address for the given rs value.
// The immediate is not scaled.
func (i *Instruction) Address(base uint32) uint32 {
	return base + uint32(i.ExtImm)
}

// JumpTarget returns the J/JAL destination for an instruction located at pc.
// The upper 4 bits of pc itself are kept.
func (i *Instruction) JumpTarget(pc uint32) uint32 {
	return (pc & 0xF0000000) | i.Target
}

// BranchTarget returns the destination of a taken branch located at pc.
func (i *Instruction) BranchTarget(pc uint32) uint32 {
	return pc + 4 + uint32(i.Offset)
}

type entry struct {
	op     Op
	format Format
}

// Decoder decodes MIPS machine code into instructions.
type Decoder struct {
	opcodes [64]entry
	functs  [64]entry
	regimm  [32]entry
}

// NewDecoder creates a new MIPS instruction decoder.
func NewDecoder() *Decoder {
	d := &Decoder{}

	d.opcodes[OpcodeJ] = entry{OpJ, FormatJump}
	d.opcodes[OpcodeJAL] = entry{OpJAL, FormatJump}
	d.opcodes[OpcodeBEQ] = entry{OpBEQ, FormatBranch}
	d.opcodes[OpcodeBNE] = entry{OpBNE, FormatBranch}
	d.opcodes[OpcodeBLEZ] = entry{OpBLEZ, FormatBranch}
	d.opcodes[OpcodeBGTZ] = entry{OpBGTZ, FormatBranch}
	d.opcodes[OpcodeADDI] = entry{OpADDI, FormatALUImm}
	d.opcodes[OpcodeADDIU] = entry{OpADDIU, FormatALUImm}
	d.opcodes[OpcodeSLTI] = entry{OpSLTI, FormatALUImm}
	d.opcodes[OpcodeSLTIU] = entry{OpSLTIU, FormatALUImm}
	d.opcodes[OpcodeANDI] = entry{OpANDI, FormatALUImm}
	d.opcodes[OpcodeORI] = entry{OpORI, FormatALUImm}
	d.opcodes[OpcodeXORI] = entry{OpXORI, FormatALUImm}
	d.opcodes[OpcodeLUI] = entry{OpLUI, FormatALUImm}
	d.opcodes[OpcodeLB] = entry{OpLB, FormatLoadStore}
	d.opcodes[OpcodeLH] = entry{OpLH, FormatLoadStore}
	d.opcodes[OpcodeLW] = entry{OpLW, FormatLoadStore}
	d.opcodes[OpcodeLBU] = entry{OpLBU, FormatLoadStore}
	d.opcodes[OpcodeLHU] = entry{OpLHU, FormatLoadStore}
	d.opcodes[OpcodeSB] = entry{OpSB, FormatLoadStore}
	d.opcodes[OpcodeSH] = entry{OpSH, FormatLoadStore}
	d.opcodes[OpcodeSW] = entry{OpSW, FormatLoadStore}

	d.functs[FunctSLL] = entry{OpSLL, FormatALU}
	d.functs[FunctSRL] = entry{OpSRL, FormatALU}
	d.functs[FunctSRA] = entry{OpSRA, FormatALU}
	d.functs[FunctSLLV] = entry{OpSLLV, FormatALU}
	d.functs[FunctSRLV] = entry{OpSRLV, FormatALU}
	d.functs[FunctSRAV] = entry{OpSRAV, FormatALU}
	d.functs[FunctJR] = entry{OpJR, FormatJump}
	d.functs[FunctJALR] = entry{OpJALR, FormatJump}
	d.functs[FunctSYSCALL] = entry{OpSYSCALL, FormatSyscall}
	d.functs[FunctMFHI] = entry{OpMFHI, FormatMulDiv}
	d.functs[FunctMTHI] = entry{OpMTHI, FormatMulDiv}
	d.functs[FunctMFLO] = entry{OpMFLO, FormatMulDiv}
	d.functs[FunctMTLO] = entry{OpMTLO, FormatMulDiv}
	d.functs[FunctMULT] = entry{OpMULT, FormatMulDiv}
	d.functs[FunctMULTU] = entry{OpMULTU, FormatMulDiv}
	d.functs[FunctDIV] = entry{OpDIV, FormatMulDiv}
	d.functs[FunctDIVU] = entry{OpDIVU, FormatMulDiv}
	d.functs[FunctADD] = entry{OpADD, FormatALU}
	d.functs[FunctADDU] = entry{OpADDU, FormatALU}
	d.functs[FunctSUB] = entry{OpSUB, FormatALU}
	d.functs[FunctSUBU] = entry{OpSUBU, FormatALU}
	d.functs[FunctAND] = entry{OpAND, FormatALU}
	d.functs[FunctOR] = entry{OpOR, FormatALU}
	d.functs[FunctXOR] = entry{OpXOR, FormatALU}
	d.functs[FunctNOR] = entry{OpNOR, FormatALU}
	d.functs[FunctSLT] = entry{OpSLT, FormatALU}
	d.functs[FunctSLTU] = entry{OpSLTU, FormatALU}

	d.regimm[RtBLTZ] = entry{OpBLTZ, FormatBranch}
	d.regimm[RtBGEZ] = entry{OpBGEZ, FormatBranch}
	d.regimm[RtBLTZAL] = entry{OpBLTZAL, FormatBranch}
	d.regimm[RtBGEZAL] = entry{OpBGEZAL, FormatBranch}

	return d
}

// Decode decodes a 32-bit MIPS instruction word. Every word decodes; words
// that name no supported instruction yield Op == OpUnknown.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{Word: word}
	d.DecodeInto(word, inst)
	return inst
}

// DecodeInto decodes word into inst, overwriting every field.
func (d *Decoder) DecodeInto(word uint32, inst *Instruction) {
	imm := uint16(word & 0xFFFF)
	extImm := int32(int16(imm))

	*inst = Instruction{
		Word:   word,
		Opcode: uint8(word>>26) & 0x3F,
		Rs:     uint8(word>>21) & 0x1F,
		Rt:     uint8(word>>16) & 0x1F,
		Rd:     uint8(word>>11) & 0x1F,
		Shamt:  uint8(word>>6) & 0x1F,
		Funct:  uint8(word) & 0x3F,
		Imm:    imm,
		ExtImm: extImm,
		Offset: extImm << 2,
		Target: (word & 0x03FFFFFF) << 2,
	}

	var e entry
	switch inst.Opcode {
	case OpcodeSpecial:
		e = d.functs[inst.Funct]
	case OpcodeRegImm:
		e = d.regimm[inst.Rt]
	default:
		e = d.opcodes[inst.Opcode]
	}

	inst.Op = e.op
	inst.Format = e.format
}
