// Package shell implements the interactive command shell used to drive and
// inspect an emulator.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/sarchlab/mips32sim/emu"
)

// Prompt is printed before each command is read.
const Prompt = "MIPS-SIM> "

// errQuit is returned by the quit command to stop the read loop.
var errQuit = errors.New("quit")

// Shell reads commands from an input stream and applies them to an
// emulator.
type Shell struct {
	emulator *emu.Emulator
	in       io.Reader
	out      io.Writer
	logger   log.Logger
	commands map[string]*command
}

// Option is a functional option for configuring the Shell.
type Option func(*Shell)

// WithLogger sets the logger used for command tracing.
func WithLogger(l log.Logger) Option {
	return func(s *Shell) {
		s.logger = l
	}
}

// New creates a shell over e reading from in and writing to out.
func New(e *emu.Emulator, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		emulator: e,
		in:       in,
		out:      out,
		logger:   log.Root(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerCommands()

	return s
}

// Run reads and executes commands until quit, end of input or ctx is
// cancelled. Command errors are printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printf("%s", Prompt)
		if !scanner.Scan() {
			s.printf("\n")
			return scanner.Err()
		}

		err := s.Exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.printf("Error: %v\n", err)
		}
	}
}

// Exec executes a single command line. Blank lines are ignored.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, type ? for help", fields[0])
	}

	args := fields[1:]
	if len(args) != len(cmd.args) {
		return fmt.Errorf("usage: %s", cmd.usage())
	}

	s.logger.Debug("Shell command", "cmd", name, "args", args)

	return cmd.run(ctx, args)
}

func (s *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
