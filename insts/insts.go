// Package insts provides MIPS32 instruction definitions and decoding.
//
// This package implements decoding of MIPS-I machine code into structured
// instruction representations. It supports:
//   - R-type ALU, shift, multiply/divide and HI/LO moves
//   - I-type ALU immediates, loads and stores
//   - Conditional branches, including the REGIMM (opcode 0x01) group
//   - J, JAL, JR, JALR and SYSCALL
//
// Opcode, funct and rt disambiguation happens once, in Decode, so every
// decoded Instruction carries a resolved Op. Words that do not name a
// supported instruction decode to OpUnknown.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x20080005) // ADDI $t0, $zero, 5
//	fmt.Printf("Op: %v, Rt: %d, Imm: %d\n", inst.Op, inst.Rt, inst.ExtImm)
package insts
