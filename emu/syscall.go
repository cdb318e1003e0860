// Package emu provides functional MIPS32 emulation.
package emu

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/sarchlab/mips32sim/insts"
)

// SPIM/MARS syscall numbers, selected by $v0.
const (
	SyscallPrintInt    uint32 = 1
	SyscallPrintString uint32 = 4
	SyscallExit        uint32 = 10
	SyscallPrintChar   uint32 = 11
)

// maxStringLen bounds print_string when no terminator is found.
const maxStringLen = 4096

// RunFlag controls whether the driving loop keeps issuing cycles. It starts
// set and, once cleared, stays cleared.
type RunFlag struct {
	cleared atomic.Bool
}

// NewRunFlag returns a set run flag.
func NewRunFlag() *RunFlag {
	return &RunFlag{}
}

// Running reports whether the flag is still set.
func (f *RunFlag) Running() bool {
	return !f.cleared.Load()
}

// Clear clears the flag.
func (f *RunFlag) Clear() {
	f.cleared.Store(true)
}

// SyscallHandler is the interface for handling SYSCALL.
type SyscallHandler interface {
	// Handle executes the syscall selected by cur. It may only read
	// architectural state and memory, and may only clear run.
	Handle(cur *State, mem WordMemory, run *RunFlag)
}

// DefaultSyscallHandler halts the simulation when $v0 holds 10 and ignores
// every other request.
type DefaultSyscallHandler struct{}

// NewDefaultSyscallHandler creates a default syscall handler.
func NewDefaultSyscallHandler() *DefaultSyscallHandler {
	return &DefaultSyscallHandler{}
}

// Handle clears run for the exit syscall.
func (h *DefaultSyscallHandler) Handle(cur *State, _ WordMemory, run *RunFlag) {
	if cur.ReadReg(insts.RegV0) == SyscallExit {
		run.Clear()
	}
}

// ConsoleSyscallHandler extends DefaultSyscallHandler with the SPIM console
// output calls. Output has no effect on architectural state.
type ConsoleSyscallHandler struct {
	DefaultSyscallHandler
	stdout io.Writer
}

// NewConsoleSyscallHandler creates a syscall handler that prints to stdout.
func NewConsoleSyscallHandler(stdout io.Writer) *ConsoleSyscallHandler {
	return &ConsoleSyscallHandler{stdout: stdout}
}

// Handle executes print_int, print_string, print_char and exit.
func (h *ConsoleSyscallHandler) Handle(cur *State, mem WordMemory, run *RunFlag) {
	a0 := cur.ReadReg(insts.RegA0)

	switch cur.ReadReg(insts.RegV0) {
	case SyscallPrintInt:
		_, _ = fmt.Fprintf(h.stdout, "%d", int32(a0))
	case SyscallPrintChar:
		_, _ = h.stdout.Write([]byte{byte(a0)})
	case SyscallPrintString:
		_, _ = h.stdout.Write(readString(mem, a0))
	default:
		h.DefaultSyscallHandler.Handle(cur, mem, run)
	}
}

// readString reads a NUL-terminated string one byte at a time. Bytes are
// taken from aligned words so that strings packed by an assembler are read
// in address order.
func readString(mem WordMemory, addr uint32) []byte {
	var out []byte
	for i := uint32(0); i < maxStringLen; i++ {
		a := addr + i
		b := byte(mem.Read32(a&^3) >> (8 * (a & 3)))
		if b == 0 {
			break
		}
		out = append(out, b)
	}
	return out
}
