// Command benchmark runs the MIPS32 benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	--format      Output format: table, csv or json (default: table)
//	--core        Run only the core benchmark subset
//	--cpuprofile  Write a CPU profile to file
//	--memprofile  Write a memory profile to file
//
// Example:
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark --format csv > results.csv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"

	"github.com/urfave/cli/v2"

	"github.com/sarchlab/mips32sim/benchmarks"
)

var (
	FormatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Output format: table, csv or json",
		Value: "table",
	}
	CoreFlag = &cli.BoolFlag{
		Name:  "core",
		Usage: "Run only the core benchmark subset",
	}
	MaxInstructionsFlag = &cli.Uint64Flag{
		Name:  "max-instructions",
		Usage: "Per-benchmark instruction budget",
		Value: benchmarks.DefaultConfig().MaxInstructions,
	}
	CPUProfileFlag = &cli.StringFlag{
		Name:  "cpuprofile",
		Usage: "Write a CPU profile to file",
	}
	MemProfileFlag = &cli.StringFlag{
		Name:  "memprofile",
		Usage: "Write a memory profile to file",
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cli.NewApp()
	app.Name = "benchmark"
	app.Usage = "Run the MIPS32 benchmark harness"
	app.Flags = []cli.Flag{FormatFlag, CoreFlag, MaxInstructionsFlag, CPUProfileFlag, MemProfileFlag}
	app.Action = run
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	format := c.String(FormatFlag.Name)
	switch format {
	case "table", "csv", "json":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if path := c.String(CPUProfileFlag.Name); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("error creating CPU profile: %w", err)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("error starting CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	config := benchmarks.DefaultConfig()
	config.MaxInstructions = c.Uint64(MaxInstructionsFlag.Name)
	config.Output = c.App.Writer

	harness := benchmarks.NewHarness(config)
	if c.Bool(CoreFlag.Name) {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	results := harness.RunAll(c.Context)

	switch format {
	case "csv":
		harness.PrintCSV(results)
	case "json":
		if err := harness.PrintJSON(results); err != nil {
			return err
		}
	default:
		harness.PrintResults(results)
	}

	if path := c.String(MemProfileFlag.Name); path != "" {
		if err := writeMemProfile(path); err != nil {
			return err
		}
	}

	for _, r := range results {
		if !r.Passed {
			return fmt.Errorf("benchmark %s failed: %s", r.Name, r.Error)
		}
	}
	return nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating memory profile: %w", err)
	}
	defer func() { _ = f.Close() }()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("error writing memory profile: %w", err)
	}
	return nil
}
