// Package emu provides functional MIPS32 emulation.
package emu

import (
	"context"

	"github.com/ethereum/go-ethereum/log"

	"github.com/sarchlab/mips32sim/insts"
)

// cycle carries the views of a single execution cycle. cur is read-only;
// every architectural write goes to next.
type cycle struct {
	inst *insts.Instruction
	cur  *State
	next *State
	mem  WordMemory
	lsu  *LoadStoreUnit
	run  *RunFlag
}

func (c *cycle) rs() uint32 { return c.cur.ReadReg(c.inst.Rs) }
func (c *cycle) rt() uint32 { return c.cur.ReadReg(c.inst.Rt) }

// imm is the sign-extended immediate, used by every immediate form.
func (c *cycle) imm() uint32 { return uint32(c.inst.ExtImm) }

func (c *cycle) addr() uint32 { return c.inst.Address(c.rs()) }

func (c *cycle) writeRd(v uint32) { c.next.WriteReg(c.inst.Rd, v) }
func (c *cycle) writeRt(v uint32) { c.next.WriteReg(c.inst.Rt, v) }

type handler func(c *cycle)

// Core executes one MIPS instruction per call. It holds no architectural
// state between calls.
type Core struct {
	decoder        *insts.Decoder
	syscallHandler SyscallHandler
	logger         log.Logger

	alu        *ALU
	branchUnit *BranchUnit

	handlers map[insts.Op]handler
}

// CoreOption is a functional option for configuring the Core.
type CoreOption func(*Core)

// WithCoreSyscallHandler sets the handler invoked by SYSCALL.
func WithCoreSyscallHandler(h SyscallHandler) CoreOption {
	return func(c *Core) {
		c.syscallHandler = h
	}
}

// WithCoreLogger sets the logger used for per-instruction tracing.
func WithCoreLogger(l log.Logger) CoreOption {
	return func(c *Core) {
		c.logger = l
	}
}

// NewCore creates a new Core.
func NewCore(opts ...CoreOption) *Core {
	c := &Core{
		decoder:        insts.NewDecoder(),
		syscallHandler: NewDefaultSyscallHandler(),
		logger:         log.Root(),
		alu:            NewALU(),
		branchUnit:     NewBranchUnit(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.handlers = make(map[insts.Op]handler)
	c.registerALU()
	c.registerMulDiv()
	c.registerLoadStore()
	c.registerControlFlow()

	return c
}

// Step fetches the word at cur.PC, executes it and returns the successor
// state. cur is passed by value and is never modified.
func (c *Core) Step(cur State, mem WordMemory, run *RunFlag) State {
	var inst insts.Instruction
	c.decoder.DecodeInto(mem.Read32(cur.PC), &inst)
	return c.Execute(&inst, cur, mem, run)
}

// Execute executes an already decoded instruction located at cur.PC.
// Unrecognized instructions only advance the PC.
func (c *Core) Execute(inst *insts.Instruction, cur State, mem WordMemory, run *RunFlag) State {
	next := cur
	next.PC = cur.PC + 4

	if c.logger.Enabled(context.Background(), log.LevelTrace) {
		c.logger.Trace("Execute", "pc", hexWord(cur.PC), "word", hexWord(inst.Word), "format", inst.Format, "inst", inst.String())
	}

	h, ok := c.handlers[inst.Op]
	if !ok {
		c.logger.Debug("Skipping unrecognized instruction", "pc", hexWord(cur.PC), "word", hexWord(inst.Word))
		return next
	}

	h(&cycle{
		inst: inst,
		cur:  &cur,
		next: &next,
		mem:  mem,
		lsu:  NewLoadStoreUnit(mem),
		run:  run,
	})

	return next
}

func (c *Core) registerALU() {
	alu := c.alu
	h := c.handlers

	h[insts.OpSLL] = func(x *cycle) { x.writeRd(alu.ShiftLeft(x.rt(), uint32(x.inst.Shamt))) }
	h[insts.OpSRL] = func(x *cycle) { x.writeRd(alu.ShiftRightLogical(x.rt(), uint32(x.inst.Shamt))) }
	h[insts.OpSRA] = func(x *cycle) { x.writeRd(alu.ShiftRightArith(x.rt(), uint32(x.inst.Shamt))) }
	h[insts.OpSLLV] = func(x *cycle) { x.writeRd(alu.ShiftLeft(x.rt(), x.rs())) }
	h[insts.OpSRLV] = func(x *cycle) { x.writeRd(alu.ShiftRightLogical(x.rt(), x.rs())) }
	h[insts.OpSRAV] = func(x *cycle) { x.writeRd(alu.ShiftRightArith(x.rt(), x.rs())) }

	h[insts.OpADD] = func(x *cycle) { x.writeRd(alu.Add(x.rs(), x.rt())) }
	h[insts.OpADDU] = h[insts.OpADD]
	h[insts.OpSUB] = func(x *cycle) { x.writeRd(alu.Sub(x.rs(), x.rt())) }
	h[insts.OpSUBU] = h[insts.OpSUB]
	h[insts.OpAND] = func(x *cycle) { x.writeRd(alu.And(x.rs(), x.rt())) }
	h[insts.OpOR] = func(x *cycle) { x.writeRd(alu.Or(x.rs(), x.rt())) }
	h[insts.OpXOR] = func(x *cycle) { x.writeRd(alu.Xor(x.rs(), x.rt())) }
	h[insts.OpNOR] = func(x *cycle) { x.writeRd(alu.Nor(x.rs(), x.rt())) }
	h[insts.OpSLT] = func(x *cycle) { x.writeRd(alu.SetLessThan(x.rs(), x.rt())) }
	h[insts.OpSLTU] = func(x *cycle) { x.writeRd(alu.SetLessThanUnsigned(x.rs(), x.rt())) }

	h[insts.OpADDI] = func(x *cycle) { x.writeRt(alu.Add(x.rs(), x.imm())) }
	h[insts.OpADDIU] = h[insts.OpADDI]
	h[insts.OpSLTI] = func(x *cycle) { x.writeRt(alu.SetLessThan(x.rs(), x.imm())) }
	h[insts.OpSLTIU] = func(x *cycle) { x.writeRt(alu.SetLessThanUnsigned(x.rs(), x.imm())) }
	// ANDI, ORI and XORI take the sign-extended immediate.
	h[insts.OpANDI] = func(x *cycle) { x.writeRt(alu.And(x.rs(), x.imm())) }
	h[insts.OpORI] = func(x *cycle) { x.writeRt(alu.Or(x.rs(), x.imm())) }
	h[insts.OpXORI] = func(x *cycle) { x.writeRt(alu.Xor(x.rs(), x.imm())) }
	h[insts.OpLUI] = func(x *cycle) { x.writeRt(alu.LoadUpper(x.inst.Imm)) }
}

func (c *Core) registerMulDiv() {
	alu := c.alu
	h := c.handlers

	h[insts.OpMFHI] = func(x *cycle) { x.writeRd(x.cur.HI) }
	h[insts.OpMFLO] = func(x *cycle) { x.writeRd(x.cur.LO) }
	h[insts.OpMTHI] = func(x *cycle) { x.next.HI = x.rs() }
	h[insts.OpMTLO] = func(x *cycle) { x.next.LO = x.rs() }

	h[insts.OpMULT] = func(x *cycle) { x.next.HI, x.next.LO = alu.Mult(x.rs(), x.rt()) }
	h[insts.OpMULTU] = func(x *cycle) { x.next.HI, x.next.LO = alu.MultUnsigned(x.rs(), x.rt()) }

	h[insts.OpDIV] = func(x *cycle) { c.divide(x, alu.Div) }
	h[insts.OpDIVU] = func(x *cycle) { c.divide(x, alu.DivUnsigned) }
}

// divide writes the remainder to HI and the quotient to LO. A zero divisor
// leaves both unchanged.
func (c *Core) divide(x *cycle, div func(a, b uint32) (uint32, uint32, bool)) {
	hi, lo, ok := div(x.rs(), x.rt())
	if !ok {
		c.logger.Warn("Division by zero, HI/LO unchanged", "pc", hexWord(x.cur.PC), "op", x.inst.Op.String())
		return
	}
	x.next.HI, x.next.LO = hi, lo
}

func (c *Core) registerLoadStore() {
	h := c.handlers

	h[insts.OpLB] = func(x *cycle) { x.writeRt(x.lsu.LB(x.addr())) }
	h[insts.OpLBU] = func(x *cycle) { x.writeRt(x.lsu.LBU(x.addr())) }
	h[insts.OpLH] = func(x *cycle) { x.writeRt(x.lsu.LH(x.addr())) }
	h[insts.OpLHU] = func(x *cycle) { x.writeRt(x.lsu.LHU(x.addr())) }
	h[insts.OpLW] = func(x *cycle) { x.writeRt(x.lsu.LW(x.addr())) }
	h[insts.OpSB] = func(x *cycle) { x.lsu.SB(x.addr(), x.rt()) }
	h[insts.OpSH] = func(x *cycle) { x.lsu.SH(x.addr(), x.rt()) }
	h[insts.OpSW] = func(x *cycle) { x.lsu.SW(x.addr(), x.rt()) }
}

func (c *Core) registerControlFlow() {
	bu := c.branchUnit
	h := c.handlers

	jump := func(x *cycle) {
		if bu.Links(x.inst.Op) {
			x.next.WriteReg(insts.RegRA, bu.ReturnAddress(x.cur.PC))
		}
		x.next.PC = x.inst.JumpTarget(x.cur.PC)
	}
	h[insts.OpJ] = jump
	h[insts.OpJAL] = jump

	h[insts.OpJR] = func(x *cycle) { x.next.PC = x.rs() }
	h[insts.OpJALR] = func(x *cycle) {
		target := x.rs()
		x.writeRd(bu.ReturnAddress(x.cur.PC))
		x.next.PC = target
	}

	branch := func(x *cycle) {
		if bu.Links(x.inst.Op) {
			x.next.WriteReg(insts.RegRA, bu.ReturnAddress(x.cur.PC))
		}
		if bu.Taken(x.inst.Op, x.rs(), x.rt()) {
			x.next.PC = x.inst.BranchTarget(x.cur.PC)
		}
	}
	for _, op := range []insts.Op{
		insts.OpBEQ, insts.OpBNE, insts.OpBLEZ, insts.OpBGTZ,
		insts.OpBLTZ, insts.OpBGEZ, insts.OpBLTZAL, insts.OpBGEZAL,
	} {
		h[op] = branch
	}

	h[insts.OpSYSCALL] = func(x *cycle) { c.syscallHandler.Handle(x.cur, x.mem, x.run) }
}
