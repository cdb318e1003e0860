package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sarchlab/mips32sim/emu"
	"github.com/sarchlab/mips32sim/insts"
)

// maxDumpWords bounds a single mdump.
const maxDumpWords = 4096

// byteReader is implemented by memories that can be read a byte at a time.
type byteReader interface {
	Read8(addr uint32) uint8
}

type command struct {
	name string
	args []string
	help string
	run  func(ctx context.Context, args []string) error
}

func (c *command) usage() string {
	if len(c.args) == 0 {
		return c.name
	}
	return c.name + " " + strings.Join(c.args, " ")
}

// commandOrder is the order commands are listed in by help.
var commandOrder = []string{"go", "run", "mdump", "rdump", "input", "high", "low", "?", "quit"}

func (s *Shell) registerCommands() {
	list := []*command{
		{name: "go", help: "Run the program until it halts", run: s.cmdGo},
		{name: "run", args: []string{"<n>"}, help: "Execute n instructions", run: s.cmdRun},
		{name: "mdump", args: []string{"<low>", "<high>"}, help: "Dump memory words from low to high", run: s.cmdMdump},
		{name: "rdump", help: "Dump the register file", run: s.cmdRdump},
		{name: "input", args: []string{"<reg>", "<value>"}, help: "Set a general-purpose register", run: s.cmdInput},
		{name: "high", args: []string{"<value>"}, help: "Set the HI register", run: s.cmdHigh},
		{name: "low", args: []string{"<value>"}, help: "Set the LO register", run: s.cmdLow},
		{name: "?", help: "Print this help", run: s.cmdHelp},
		{name: "quit", help: "Exit the shell", run: func(context.Context, []string) error { return errQuit }},
	}

	s.commands = make(map[string]*command, len(list)+1)
	for _, c := range list {
		s.commands[c.name] = c
	}
	s.commands["help"] = s.commands["?"]
}

func (s *Shell) cmdGo(ctx context.Context, _ []string) error {
	if !s.emulator.Running() {
		s.printf("Can't simulate, simulator is halted\n\n")
		return nil
	}

	s.printf("Simulating...\n\n")
	start := s.emulator.InstructionCount()
	err := s.emulator.Run(ctx)
	s.printf("Executed %d instructions\n", s.emulator.InstructionCount()-start)
	if err != nil {
		return err
	}

	s.printf("Simulator halted\n\n")
	return nil
}

func (s *Shell) cmdRun(_ context.Context, args []string) error {
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid instruction count %q", args[0])
	}

	if !s.emulator.Running() {
		s.printf("Can't simulate, simulator is halted\n\n")
		return nil
	}

	s.printf("Simulating for %d cycles...\n\n", n)
	executed, err := s.emulator.RunN(n)
	if err != nil && !errors.Is(err, emu.ErrHalted) {
		return err
	}

	if executed < n || !s.emulator.Running() {
		s.printf("Simulator halted after %d cycles\n\n", executed)
	}
	return nil
}

func (s *Shell) cmdMdump(_ context.Context, args []string) error {
	low, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	high, err := parseAddress(args[1])
	if err != nil {
		return err
	}
	if low > high {
		return fmt.Errorf("low address 0x%08x is above high address 0x%08x", low, high)
	}

	low &^= 3
	if words := (uint64(high)-uint64(low))/4 + 1; words > maxDumpWords {
		return fmt.Errorf("range covers %d words, at most %d can be dumped", words, maxDumpWords)
	}

	mem := s.emulator.Memory()
	byteMem, hasBytes := mem.(byteReader)

	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetTitle(fmt.Sprintf("Memory content [0x%08x..0x%08x]", low, high))
	header := table.Row{"Address", "Word", "Decimal"}
	if hasBytes {
		header = append(header, "ASCII")
	}
	t.AppendHeader(header)
	for addr := uint64(low); addr <= uint64(high); addr += 4 {
		w := mem.Read32(uint32(addr))
		row := table.Row{fmt.Sprintf("0x%08x", addr), fmt.Sprintf("0x%08x", w), int32(w)}
		if hasBytes {
			row = append(row, printable(byteMem, uint32(addr)))
		}
		t.AppendRow(row)
	}
	t.Render()
	s.printf("\n")

	return nil
}

// printable renders the four bytes at addr in address order, with
// non-printing bytes shown as dots.
func printable(mem byteReader, addr uint32) string {
	var b [4]byte
	for i := range b {
		c := mem.Read8(addr + uint32(i))
		if c < 0x20 || c > 0x7E {
			c = '.'
		}
		b[i] = c
	}
	return string(b[:])
}

func (s *Shell) cmdRdump(_ context.Context, _ []string) error {
	st := s.emulator.State()

	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetTitle("Current register values")
	t.AppendHeader(table.Row{"Register", "Name", "Hex", "Decimal"})
	t.AppendRow(table.Row{"PC", "", fmt.Sprintf("0x%08x", st.PC), ""})
	t.AppendSeparator()
	for i, v := range st.Regs {
		t.AppendRow(table.Row{fmt.Sprintf("R%d", i), "$" + insts.RegNames[i], fmt.Sprintf("0x%08x", v), int32(v)})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"HI", "", fmt.Sprintf("0x%08x", st.HI), int32(st.HI)})
	t.AppendRow(table.Row{"LO", "", fmt.Sprintf("0x%08x", st.LO), int32(st.LO)})
	t.AppendFooter(table.Row{"Instructions", "", s.emulator.InstructionCount(), ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
	s.printf("\n")

	return nil
}

func (s *Shell) cmdInput(_ context.Context, args []string) error {
	reg, err := parseRegister(args[0])
	if err != nil {
		return err
	}
	v, err := parseValue(args[1])
	if err != nil {
		return err
	}

	st := s.emulator.State()
	st.WriteReg(reg, v)
	s.emulator.SetState(st)
	return nil
}

func (s *Shell) cmdHigh(_ context.Context, args []string) error {
	v, err := parseValue(args[0])
	if err != nil {
		return err
	}

	st := s.emulator.State()
	st.HI = v
	s.emulator.SetState(st)
	return nil
}

func (s *Shell) cmdLow(_ context.Context, args []string) error {
	v, err := parseValue(args[0])
	if err != nil {
		return err
	}

	st := s.emulator.State()
	st.LO = v
	s.emulator.SetState(st)
	return nil
}

func (s *Shell) cmdHelp(_ context.Context, _ []string) error {
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.AppendHeader(table.Row{"Command", "Description"})
	for _, name := range commandOrder {
		c := s.commands[name]
		t.AppendRow(table.Row{c.usage(), c.help})
	}
	t.Render()
	s.printf("\n")
	return nil
}

// parseAddress parses a hexadecimal address with an optional 0x prefix.
func parseAddress(s string) (uint32, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint32(v), nil
}

// parseValue parses a register value. Decimal, 0x hex and negative values
// are accepted; negative values are stored in two's complement.
func parseValue(s string) (uint32, error) {
	if v, err := strconv.ParseInt(s, 0, 32); err == nil {
		return uint32(v), nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return uint32(v), nil
}

// parseRegister accepts a register number (8, $8) or name ($t0, t0).
func parseRegister(s string) (uint8, error) {
	name := strings.TrimPrefix(strings.ToLower(s), "$")
	if n, err := strconv.ParseUint(name, 10, 8); err == nil {
		if n > 31 {
			return 0, fmt.Errorf("register %q out of range", s)
		}
		return uint8(n), nil
	}
	for i, r := range insts.RegNames {
		if r == name {
			return uint8(i), nil
		}
	}
	if name == "s8" {
		return 30, nil
	}
	return 0, fmt.Errorf("unknown register %q", s)
}
