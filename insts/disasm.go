package insts

import "fmt"

// RegNames holds the conventional assembler names of the 32 GPRs.
var RegNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

func reg(r uint8) string {
	return "$" + RegNames[r&0x1F]
}

// String renders the instruction in assembler syntax. Branch and jump
// destinations are shown as raw offsets and targets since the PC is not known.
func (i *Instruction) String() string {
	switch i.Op {
	case OpUnknown:
		return fmt.Sprintf(".word 0x%08x", i.Word)
	case OpSYSCALL:
		return "syscall"
	case OpSLL, OpSRL, OpSRA:
		return fmt.Sprintf("%s %s, %s, %d", i.Op, reg(i.Rd), reg(i.Rt), i.Shamt)
	case OpSLLV, OpSRLV, OpSRAV:
		return fmt.Sprintf("%s %s, %s, %s", i.Op, reg(i.Rd), reg(i.Rt), reg(i.Rs))
	case OpJR, OpMTHI, OpMTLO:
		return fmt.Sprintf("%s %s", i.Op, reg(i.Rs))
	case OpJALR:
		return fmt.Sprintf("%s %s, %s", i.Op, reg(i.Rd), reg(i.Rs))
	case OpMFHI, OpMFLO:
		return fmt.Sprintf("%s %s", i.Op, reg(i.Rd))
	case OpMULT, OpMULTU, OpDIV, OpDIVU:
		return fmt.Sprintf("%s %s, %s", i.Op, reg(i.Rs), reg(i.Rt))
	case OpBLTZ, OpBGEZ, OpBLTZAL, OpBGEZAL, OpBLEZ, OpBGTZ:
		return fmt.Sprintf("%s %s, %d", i.Op, reg(i.Rs), i.Offset)
	case OpBEQ, OpBNE:
		return fmt.Sprintf("%s %s, %s, %d", i.Op, reg(i.Rs), reg(i.Rt), i.Offset)
	case OpJ, OpJAL:
		return fmt.Sprintf("%s 0x%07x", i.Op, i.Target)
	case OpLUI:
		return fmt.Sprintf("%s %s, 0x%x", i.Op, reg(i.Rt), i.Imm)
	case OpADDI, OpADDIU, OpSLTI, OpSLTIU, OpANDI, OpORI, OpXORI:
		return fmt.Sprintf("%s %s, %s, %d", i.Op, reg(i.Rt), reg(i.Rs), i.ExtImm)
	case OpLB, OpLH, OpLW, OpLBU, OpLHU, OpSB, OpSH, OpSW:
		return fmt.Sprintf("%s %s, %d(%s)", i.Op, reg(i.Rt), i.ExtImm, reg(i.Rs))
	default:
		return fmt.Sprintf("%s %s, %s, %s", i.Op, reg(i.Rd), reg(i.Rs), reg(i.Rt))
	}
}
