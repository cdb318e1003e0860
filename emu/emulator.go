// Package emu provides functional MIPS32 emulation.
package emu

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/sarchlab/mips32sim/insts"
)

// ErrMaxInstructions is returned once the instruction budget is spent.
var ErrMaxInstructions = errors.New("max instructions reached")

// ErrHalted is returned when stepping a halted simulator.
var ErrHalted = errors.New("simulator is halted")

// ctxCheckInterval is how many cycles Run executes between context checks.
const ctxCheckInterval = 4096

// StepResult represents the result of executing a single cycle.
type StepResult struct {
	// Halted is true once the run flag has been cleared.
	Halted bool

	// Err is set if the cycle could not be issued.
	Err error
}

// Emulator drives the Core: it owns the committed architectural state, the
// memory and the run flag, and commits each cycle's successor state.
type Emulator struct {
	core   *Core
	memory WordMemory
	run    *RunFlag
	logger log.Logger

	current State

	syscallHandler SyscallHandler

	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithLogger sets the logger used by the emulator and its core.
func WithLogger(l log.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = l
	}
}

// WithMemory sets the backing memory. The default is an empty *Memory.
func WithMemory(m WordMemory) EmulatorOption {
	return func(e *Emulator) {
		e.memory = m
	}
}

// WithSyscallHandler sets a custom syscall handler.
func WithSyscallHandler(handler SyscallHandler) EmulatorOption {
	return func(e *Emulator) {
		e.syscallHandler = handler
	}
}

// WithEntryPoint sets the initial program counter.
func WithEntryPoint(pc uint32) EmulatorOption {
	return func(e *Emulator) {
		e.current.PC = pc
	}
}

// WithStackPointer sets the initial $sp value.
func WithStackPointer(sp uint32) EmulatorOption {
	return func(e *Emulator) {
		e.current.Regs[insts.RegSP] = sp
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new MIPS emulator.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		run:            NewRunFlag(),
		logger:         log.Root(),
		syscallHandler: NewDefaultSyscallHandler(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.memory == nil {
		e.memory = NewMemory()
	}

	e.core = NewCore(
		WithCoreLogger(e.logger),
		WithCoreSyscallHandler(e.syscallHandler),
	)

	return e
}

// State returns a copy of the committed architectural state.
func (e *Emulator) State() State {
	return e.current
}

// SetState replaces the committed architectural state.
func (e *Emulator) SetState(s State) {
	e.current = s
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() WordMemory {
	return e.memory
}

// Running reports whether the run flag is still set.
func (e *Emulator) Running() bool {
	return e.run.Running()
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LoadProgram writes words consecutively from base and sets the PC to entry.
func (e *Emulator) LoadProgram(entry, base uint32, words []uint32) {
	for i, w := range words {
		e.memory.Write32(base+uint32(i)*4, w)
	}
	e.current.PC = entry
}

// Step executes a single instruction and commits its result.
func (e *Emulator) Step() StepResult {
	if !e.run.Running() {
		return StepResult{Halted: true, Err: ErrHalted}
	}

	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Err: ErrMaxInstructions}
	}

	e.current = e.core.Step(e.current, e.memory, e.run)
	e.instructionCount++

	if !e.run.Running() {
		e.logger.Info("Simulation halted",
			"pc", hexWord(e.current.PC), "instructions", e.instructionCount)
		return StepResult{Halted: true}
	}

	return StepResult{}
}

// RunN executes at most n cycles, stopping early when the simulation halts.
// It returns the number of cycles executed.
func (e *Emulator) RunN(n uint64) (uint64, error) {
	var executed uint64
	for executed < n {
		result := e.Step()
		if result.Err != nil {
			return executed, result.Err
		}
		executed++
		if result.Halted {
			break
		}
	}
	return executed, nil
}

// Run executes until the simulation halts, the instruction budget is spent
// or ctx is cancelled.
func (e *Emulator) Run(ctx context.Context) error {
	for i := uint64(0); ; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("run interrupted at pc %s: %w", hexWord(e.current.PC), err)
			}
		}

		result := e.Step()
		if result.Err != nil {
			return result.Err
		}
		if result.Halted {
			return nil
		}
	}
}

func hexWord(v uint32) string {
	return fmt.Sprintf("0x%08x", v)
}
