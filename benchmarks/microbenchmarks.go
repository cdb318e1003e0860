package benchmarks

import (
	"fmt"

	"github.com/sarchlab/mips32sim/emu"
	"github.com/sarchlab/mips32sim/loader"
)

// GetMicrobenchmarks returns the standard set of microbenchmarks. Each one
// exercises a specific instruction class and checks its final state.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticLoop(),
		dependencyChain(),
		memorySequential(),
		functionCalls(),
		branchHeavy(),
		mulDiv(),
		stringCopy(),
	}
}

// GetCoreBenchmarks returns a minimal set for quick validation: a loop,
// memory traffic and branch-heavy code.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticLoop(),
		memorySequential(),
		branchHeavy(),
	}
}

func expectReg(st emu.State, reg uint8, want uint32) error {
	if got := st.Regs[reg]; got != want {
		return fmt.Errorf("$%d = %d, want %d", reg, got, want)
	}
	return nil
}

// arithmeticLoop sums 1..100 in a counted loop.
func arithmeticLoop() Benchmark {
	return Benchmark{
		Name:        "arithmetic_loop",
		Description: "Sum of 1..100 in a counted loop",
		Program: program(
			addi(t0, zero, 100),
			addi(t1, zero, 0),
			add(t1, t1, t0), // loop
			addi(t0, t0, -1),
			bne(t0, zero, -3),
			exit(),
		),
		Check: func(st emu.State, _ *emu.Memory) error {
			return expectReg(st, t1, 5050)
		},
	}
}

// dependencyChain doubles a register 20 times, each add reading the last.
func dependencyChain() Benchmark {
	chain := make([]uint32, 20)
	for i := range chain {
		chain[i] = add(t0, t0, t0)
	}

	return Benchmark{
		Name:        "dependency_chain",
		Description: "20 dependent ADD operations",
		Program:     program(addi(t0, zero, 1), chain, exit()),
		Check: func(st emu.State, _ *emu.Memory) error {
			return expectReg(st, t0, 1<<20)
		},
	}
}

// memorySequential stores 0..15 to an array and sums it back.
func memorySequential() Benchmark {
	return Benchmark{
		Name:        "memory_sequential",
		Description: "Sequential word stores then loads over a 16-word array",
		Program: program(
			lui(s0, uint16(loader.DataBase>>16)),
			addi(t0, zero, 0),
			addi(t2, zero, 16),
			add(t3, s0, zero),
			sw(t0, t3, 0), // store loop
			addi(t0, t0, 1),
			addi(t3, t3, 4),
			bne(t0, t2, -4),
			addi(t1, zero, 0),
			add(t3, s0, zero),
			addi(t0, zero, 0),
			lw(t4, t3, 0), // load loop
			add(t1, t1, t4),
			addi(t3, t3, 4),
			addi(t0, t0, 1),
			bne(t0, t2, -5),
			exit(),
		),
		Check: func(st emu.State, mem *emu.Memory) error {
			if err := expectReg(st, t1, 120); err != nil {
				return err
			}
			if last := mem.Read32(loader.DataBase + 15*4); last != 15 {
				return fmt.Errorf("array[15] = %d, want 15", last)
			}
			return nil
		},
	}
}

// functionCalls calls a leaf subroutine 10 times.
func functionCalls() Benchmark {
	return Benchmark{
		Name:        "function_calls",
		Description: "10 JAL/JR call and return pairs",
		Program: program(
			addi(t0, zero, 0),
			addi(t1, zero, 10),
			jal(6), // loop
			addi(t1, t1, -1),
			bne(t1, zero, -3),
			j(8),
			addi(t0, t0, 1), // subroutine
			jr(ra),
			exit(),
		),
		Check: func(st emu.State, _ *emu.Memory) error {
			if err := expectReg(st, t0, 10); err != nil {
				return err
			}
			return expectReg(st, ra, programBase+12)
		},
	}
}

// branchHeavy counts the odd numbers below 64.
func branchHeavy() Benchmark {
	return Benchmark{
		Name:        "branch_heavy",
		Description: "Data-dependent branches over 64 iterations",
		Program: program(
			addi(t0, zero, 0),
			addi(t1, zero, 0),
			addi(t2, zero, 64),
			andi(t3, t0, 1), // loop
			beq(t3, zero, 1),
			addi(t1, t1, 1),
			addi(t0, t0, 1),
			bne(t0, t2, -5),
			exit(),
		),
		Check: func(st emu.State, _ *emu.Memory) error {
			return expectReg(st, t1, 32)
		},
	}
}

// mulDiv computes 10! with MULT and splits it with DIV.
func mulDiv() Benchmark {
	return Benchmark{
		Name:        "mul_div",
		Description: "Factorial with MULT/MFLO then DIV into HI/LO",
		Program: program(
			addi(t0, zero, 1),
			addi(t1, zero, 10),
			mult(t0, t1), // loop
			mflo(t0),
			addi(t1, t1, -1),
			bgtz(t1, -4),
			addi(t2, zero, 11),
			div(t0, t2),
			mflo(t3),
			mfhi(t4),
			exit(),
		),
		Check: func(st emu.State, _ *emu.Memory) error {
			if err := expectReg(st, t0, 3628800); err != nil {
				return err
			}
			if err := expectReg(st, t3, 329890); err != nil {
				return err
			}
			return expectReg(st, t4, 10)
		},
	}
}

// stringCopy copies a NUL-terminated string byte by byte.
func stringCopy() Benchmark {
	const dstOffset = 0x100

	return Benchmark{
		Name:        "string_copy",
		Description: "Byte loads and stores copying a C string",
		Setup: func(mem *emu.Memory) {
			mem.LoadBytes(loader.DataBase, []byte("hello\x00"))
		},
		Program: program(
			lui(s0, uint16(loader.DataBase>>16)),
			ori(s1, s0, dstOffset),
			addi(t1, zero, 0),
			lbu(t0, s0, 0), // loop
			sb(t0, s1, 0),
			beq(t0, zero, 4),
			addi(s0, s0, 1),
			addi(s1, s1, 1),
			addi(t1, t1, 1),
			j(3),
			exit(),
		),
		Check: func(st emu.State, mem *emu.Memory) error {
			if err := expectReg(st, t1, 5); err != nil {
				return err
			}
			for i, want := range []byte("hello\x00") {
				if got := mem.Read8(loader.DataBase + dstOffset + uint32(i)); got != want {
					return fmt.Errorf("dst[%d] = %q, want %q", i, got, want)
				}
			}
			return nil
		},
	}
}
