package shell_test

import (
	"bytes"
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mips32sim/emu"
	"github.com/sarchlab/mips32sim/shell"
)

const textBase = uint32(0x00400000)

// sumProgram computes $t2 = 5 + 7 and exits.
var sumProgram = []uint32{
	0x20080005, // addi $t0, $zero, 5
	0x20090007, // addi $t1, $zero, 7
	0x01095020, // add  $t2, $t0, $t1
	0x2002000A, // addi $v0, $zero, 10
	0x0000000C, // syscall
}

var _ = Describe("Shell", func() {
	var (
		e   *emu.Emulator
		out *bytes.Buffer
		ctx context.Context
	)

	newShell := func(input string) *shell.Shell {
		return shell.New(e, strings.NewReader(input), out,
			shell.WithLogger(log.NewLogger(log.DiscardHandler())))
	}

	BeforeEach(func() {
		e = emu.NewEmulator(emu.WithLogger(log.NewLogger(log.DiscardHandler())))
		e.LoadProgram(textBase, textBase, sumProgram)
		out = &bytes.Buffer{}
		ctx = context.Background()
	})

	Describe("Run", func() {
		It("should execute commands until quit", func() {
			sh := newShell("run 2\nquit\nrun 3\n")
			Expect(sh.Run(ctx)).To(Succeed())

			Expect(e.InstructionCount()).To(Equal(uint64(2)))
			Expect(out.String()).To(ContainSubstring(shell.Prompt))
		})

		It("should stop at end of input", func() {
			sh := newShell("go\n")
			Expect(sh.Run(ctx)).To(Succeed())
			Expect(e.Running()).To(BeFalse())
		})

		It("should report errors and keep reading", func() {
			sh := newShell("bogus\nrun 1\n")
			Expect(sh.Run(ctx)).To(Succeed())

			Expect(out.String()).To(ContainSubstring(`unknown command "bogus"`))
			Expect(e.InstructionCount()).To(Equal(uint64(1)))
		})

		It("should return the context error when cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			sh := newShell("go\n")
			Expect(sh.Run(cancelled)).To(MatchError(context.Canceled))
			Expect(e.InstructionCount()).To(BeZero())
		})
	})

	Describe("Exec", func() {
		var sh *shell.Shell

		BeforeEach(func() {
			sh = newShell("")
		})

		It("should ignore blank lines", func() {
			Expect(sh.Exec(ctx, "   ")).To(Succeed())
			Expect(out.Len()).To(BeZero())
		})

		It("should reject a wrong number of arguments", func() {
			Expect(sh.Exec(ctx, "run")).To(MatchError(ContainSubstring("usage: run <n>")))
		})

		Context("go", func() {
			It("should run the program to completion", func() {
				Expect(sh.Exec(ctx, "go")).To(Succeed())

				Expect(e.Running()).To(BeFalse())
				Expect(e.State().Regs[10]).To(Equal(uint32(12)))
				Expect(out.String()).To(ContainSubstring("Simulator halted"))
			})

			It("should refuse to simulate once halted", func() {
				Expect(sh.Exec(ctx, "go")).To(Succeed())
				out.Reset()

				Expect(sh.Exec(ctx, "go")).To(Succeed())
				Expect(out.String()).To(ContainSubstring("Can't simulate"))
			})

			It("should surface the instruction budget", func() {
				e = emu.NewEmulator(
					emu.WithLogger(log.NewLogger(log.DiscardHandler())),
					emu.WithMaxInstructions(2),
				)
				e.LoadProgram(textBase, textBase, sumProgram)
				sh = newShell("")

				Expect(sh.Exec(ctx, "go")).To(MatchError(emu.ErrMaxInstructions))
			})
		})

		Context("run", func() {
			It("should execute exactly n instructions", func() {
				Expect(sh.Exec(ctx, "run 3")).To(Succeed())

				Expect(e.InstructionCount()).To(Equal(uint64(3)))
				Expect(e.State().PC).To(Equal(textBase + 12))
			})

			It("should stop early when the program halts", func() {
				Expect(sh.Exec(ctx, "run 100")).To(Succeed())

				Expect(e.InstructionCount()).To(Equal(uint64(5)))
				Expect(out.String()).To(ContainSubstring("halted after 5 cycles"))
			})

			It("should reject a non-numeric count", func() {
				Expect(sh.Exec(ctx, "run many")).To(MatchError(ContainSubstring("invalid instruction count")))
			})
		})

		Context("mdump", func() {
			It("should print each word in the range", func() {
				Expect(sh.Exec(ctx, "mdump 0x00400000 0x00400004")).To(Succeed())

				Expect(out.String()).To(ContainSubstring("0x00400000"))
				Expect(out.String()).To(ContainSubstring("0x20080005"))
				Expect(out.String()).To(ContainSubstring("0x20090007"))
				Expect(out.String()).NotTo(ContainSubstring("0x01095020"))
			})

			It("should show the bytes of each word in address order", func() {
				e.Memory().(*emu.Memory).LoadBytes(0x10010000, []byte("MIPS\x00\n!"))

				Expect(sh.Exec(ctx, "mdump 0x10010000 0x10010004")).To(Succeed())

				Expect(out.String()).To(ContainSubstring(" MIPS "))
				Expect(out.String()).To(ContainSubstring("0x5350494d"))
				Expect(out.String()).To(ContainSubstring("..!."))
			})

			It("should accept addresses without a prefix", func() {
				Expect(sh.Exec(ctx, "mdump 400008 400008")).To(Succeed())
				Expect(out.String()).To(ContainSubstring("0x01095020"))
			})

			It("should reject an inverted range", func() {
				Expect(sh.Exec(ctx, "mdump 0x10 0x0")).To(MatchError(ContainSubstring("above high address")))
			})

			It("should reject oversized ranges", func() {
				Expect(sh.Exec(ctx, "mdump 0 0xFFFFFFFF")).To(MatchError(ContainSubstring("at most")))
			})

			It("should reject invalid addresses", func() {
				Expect(sh.Exec(ctx, "mdump xyz 0x10")).To(MatchError(ContainSubstring("invalid address")))
			})
		})

		Context("rdump", func() {
			It("should print the PC, registers and HI/LO", func() {
				Expect(sh.Exec(ctx, "run 3")).To(Succeed())
				out.Reset()

				Expect(sh.Exec(ctx, "rdump")).To(Succeed())
				dump := out.String()
				Expect(dump).To(ContainSubstring("0x0040000c"))
				Expect(dump).To(ContainSubstring("$t2"))
				Expect(dump).To(ContainSubstring("0x0000000c"))
				Expect(dump).To(ContainSubstring("HI"))
				Expect(dump).To(ContainSubstring("LO"))
			})
		})

		Context("input, high and low", func() {
			It("should set registers by number or name", func() {
				Expect(sh.Exec(ctx, "input 8 42")).To(Succeed())
				Expect(sh.Exec(ctx, "input $t1 0x10")).To(Succeed())
				Expect(sh.Exec(ctx, "input a0 -1")).To(Succeed())

				st := e.State()
				Expect(st.Regs[8]).To(Equal(uint32(42)))
				Expect(st.Regs[9]).To(Equal(uint32(0x10)))
				Expect(st.Regs[4]).To(Equal(uint32(0xFFFFFFFF)))
			})

			It("should accept unsigned values above the signed range", func() {
				Expect(sh.Exec(ctx, "input 8 0xFFFFFFFE")).To(Succeed())
				Expect(e.State().Regs[8]).To(Equal(uint32(0xFFFFFFFE)))
			})

			It("should reject unknown registers", func() {
				Expect(sh.Exec(ctx, "input 32 1")).To(MatchError(ContainSubstring("out of range")))
				Expect(sh.Exec(ctx, "input $foo 1")).To(MatchError(ContainSubstring("unknown register")))
			})

			It("should reject invalid values", func() {
				Expect(sh.Exec(ctx, "input 8 twelve")).To(MatchError(ContainSubstring("invalid value")))
			})

			It("should set HI and LO", func() {
				Expect(sh.Exec(ctx, "high 7")).To(Succeed())
				Expect(sh.Exec(ctx, "low 0x9")).To(Succeed())

				Expect(e.State().HI).To(Equal(uint32(7)))
				Expect(e.State().LO).To(Equal(uint32(9)))
			})

			It("should not touch the program counter", func() {
				Expect(sh.Exec(ctx, "input 2 10")).To(Succeed())
				Expect(e.State().PC).To(Equal(textBase))
			})
		})

		Context("help", func() {
			It("should list every command", func() {
				Expect(sh.Exec(ctx, "?")).To(Succeed())
				for _, name := range []string{"go", "run <n>", "mdump <low> <high>", "rdump", "input <reg> <value>", "high <value>", "low <value>", "quit"} {
					Expect(out.String()).To(ContainSubstring(name))
				}
			})

			It("should accept help as an alias", func() {
				Expect(sh.Exec(ctx, "HELP")).To(Succeed())
				Expect(out.String()).To(ContainSubstring("Exit the shell"))
			})
		})
	})
})
