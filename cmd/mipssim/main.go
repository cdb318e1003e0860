// Package main provides the mipssim command, a functional MIPS32
// instruction-level simulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jeandeaual/go-locale"
	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/message"

	"github.com/sarchlab/mips32sim/config"
	"github.com/sarchlab/mips32sim/emu"
	"github.com/sarchlab/mips32sim/loader"
	"github.com/sarchlab/mips32sim/shell"
)

var (
	ConfigFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to a YAML or JSON run configuration",
	}
	MaxInstructionsFlag = &cli.Uint64Flag{
		Name:  "max-instructions",
		Usage: "Stop after this many instructions (0 for no limit)",
	}
	LogLevelFlag = &cli.StringFlag{
		Name:  "log.level",
		Usage: "Log level: trace, debug, info, warn, error or crit",
		Value: "info",
	}
	ShellFlag = &cli.BoolFlag{
		Name:  "shell",
		Usage: "Start the interactive command shell",
	}
	DumpFlag = &cli.BoolFlag{
		Name:  "dump",
		Usage: "Print the register file after the run",
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := newApp()
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Application failed: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "mipssim"
	app.Usage = "MIPS32 instruction-level simulator"
	app.ArgsUsage = "<program>"
	app.Description = "Runs a MIPS32 ELF executable or text image until it halts"
	app.Flags = []cli.Flag{ConfigFlag, MaxInstructionsFlag, LogLevelFlag, ShellFlag, DumpFlag}
	app.Action = run
	app.Reader = os.Stdin
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	return app
}

// loadConfig builds the run configuration from the config file, if any,
// and the command line. Flags given explicitly override the file.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String(ConfigFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if c.Args().Present() {
		cfg.Program = c.Args().First()
	}
	if c.IsSet(MaxInstructionsFlag.Name) {
		cfg.MaxInstructions = c.Uint64(MaxInstructionsFlag.Name)
	}
	if c.IsSet(LogLevelFlag.Name) || cfg.LogLevel == "" {
		cfg.LogLevel = c.String(LogLevelFlag.Name)
	}
	if c.IsSet(ShellFlag.Name) {
		cfg.Interactive = c.Bool(ShellFlag.Name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) (log.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return log.NewLogger(log.NewTerminalHandlerWithLevel(w, lvl, false)), nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, c.App.ErrWriter)
	if err != nil {
		return err
	}
	if logger.Enabled(c.Context, log.LevelDebug) {
		_, _ = pretty.Fprintf(c.App.ErrWriter, "Config:\n%# v\n", cfg)
	}

	prog, err := loader.Load(cfg.Program)
	if err != nil {
		return fmt.Errorf("error loading program: %w", err)
	}
	logger.Info("Loaded program", "path", cfg.Program,
		"entry", fmt.Sprintf("0x%08x", prog.EntryPoint), "segments", len(prog.Segments))

	emulator := newEmulator(cfg, prog, logger, c.App.Writer)

	if cfg.Interactive {
		sh := shell.New(emulator, c.App.Reader, c.App.Writer, shell.WithLogger(logger))
		return sh.Run(c.Context)
	}

	runErr := emulator.Run(c.Context)
	printSummary(c.App.Writer, emulator)

	if c.Bool(DumpFlag.Name) {
		sh := shell.New(emulator, nil, c.App.Writer, shell.WithLogger(logger))
		if err := sh.Exec(c.Context, "rdump"); err != nil {
			return err
		}
	}

	if errors.Is(runErr, emu.ErrMaxInstructions) {
		logger.Warn("Instruction budget exhausted", "max", cfg.MaxInstructions)
		return nil
	}
	return runErr
}

// newEmulator loads prog into a fresh memory and applies the entry point
// and stack pointer overrides from cfg.
func newEmulator(cfg *config.Config, prog *loader.Program, logger log.Logger, stdout io.Writer) *emu.Emulator {
	memory := emu.NewMemory()
	prog.LoadInto(memory)

	entry := prog.EntryPoint
	if cfg.EntryPoint != 0 {
		entry = cfg.EntryPoint
	}
	sp := prog.InitialSP
	if cfg.StackPointer != 0 {
		sp = cfg.StackPointer
	}

	return emu.NewEmulator(
		emu.WithLogger(logger),
		emu.WithMemory(memory),
		emu.WithSyscallHandler(emu.NewConsoleSyscallHandler(stdout)),
		emu.WithEntryPoint(entry),
		emu.WithStackPointer(sp),
		emu.WithMaxInstructions(cfg.MaxInstructions),
	)
}

// newPrinter returns a printer for the user's locale, falling back to
// en-US.
func newPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil || len(locales) == 0 {
		locales = []string{"en-US"}
	}
	return message.NewPrinter(message.MatchLanguage(locales...))
}

func printSummary(w io.Writer, e *emu.Emulator) {
	p := newPrinter()
	st := e.State()

	status := "halted"
	if e.Running() {
		status = "stopped"
	}

	_, _ = p.Fprintf(w, "\nSimulation %s\n", status)
	_, _ = p.Fprintf(w, "Instructions executed: %d\n", e.InstructionCount())
	_, _ = fmt.Fprintf(w, "Final PC: 0x%08x\n", st.PC)
}
