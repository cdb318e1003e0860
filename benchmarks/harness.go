// Package benchmarks provides workload programs and a harness that runs
// them through the emulator, validating their results and measuring host
// throughput.
package benchmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/mips32sim/emu"
	"github.com/sarchlab/mips32sim/loader"
)

// programBase is where benchmark programs are loaded and started.
const programBase = loader.TextBase

// BenchmarkResult holds the results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// Instructions is the number of executed instructions
	Instructions uint64 `json:"instructions"`

	// Halted is true if the program reached the exit syscall
	Halted bool `json:"halted"`

	// Passed is true if the program halted with the expected state
	Passed bool `json:"passed"`

	// Error describes why the benchmark did not pass
	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`

	// InstructionsPerSecond is the host simulation throughput
	InstructionsPerSecond float64 `json:"instructions_per_second"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup prepares memory before the run (e.g., static data)
	Setup func(memory *emu.Memory)

	// Program is the MIPS machine code, loaded at the text base
	Program []uint32

	// Check validates the final state
	Check func(st emu.State, memory *emu.Memory) error
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// MaxInstructions bounds each benchmark run
	MaxInstructions uint64

	// Logger receives emulator logs (default: discarded)
	Logger log.Logger

	// Output is where to write results (default: os.Stdout)
	Output io.Writer
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		MaxInstructions: 1_000_000,
		Logger:          log.NewLogger(log.DiscardHandler()),
		Output:          os.Stdout,
	}
}

// Harness runs benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Logger == nil {
		config.Logger = log.NewLogger(log.DiscardHandler())
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results. It stops early if ctx
// is cancelled.
func (h *Harness) RunAll(ctx context.Context) []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		if ctx.Err() != nil {
			break
		}
		results = append(results, h.runBenchmark(ctx, bench))
	}

	return results
}

func (h *Harness) runBenchmark(ctx context.Context, bench Benchmark) BenchmarkResult {
	memory := emu.NewMemory()
	if bench.Setup != nil {
		bench.Setup(memory)
	}
	memory.LoadWords(programBase, bench.Program)

	e := emu.NewEmulator(
		emu.WithLogger(h.config.Logger.With("benchmark", bench.Name)),
		emu.WithMemory(memory),
		emu.WithEntryPoint(programBase),
		emu.WithStackPointer(loader.DefaultStackPointer),
		emu.WithMaxInstructions(h.config.MaxInstructions),
	)

	start := time.Now()
	err := e.Run(ctx)
	wallTime := time.Since(start)

	result := BenchmarkResult{
		Name:         bench.Name,
		Description:  bench.Description,
		Instructions: e.InstructionCount(),
		Halted:       !e.Running(),
		WallTime:     wallTime,
	}
	if secs := wallTime.Seconds(); secs > 0 {
		result.InstructionsPerSecond = float64(result.Instructions) / secs
	}

	switch {
	case err != nil:
		result.Error = err.Error()
	case bench.Check != nil:
		if err := bench.Check(e.State(), memory); err != nil {
			result.Error = err.Error()
		}
	}
	result.Passed = result.Halted && result.Error == ""

	return result
}

// PrintResults outputs benchmark results as a table.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	t := table.NewWriter()
	t.SetOutputMirror(h.config.Output)
	t.SetTitle("MIPS32 Benchmark Results")
	t.AppendHeader(table.Row{"Benchmark", "Instructions", "Result", "Wall Time", "Inst/s"})

	var total uint64
	passed := 0
	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL: " + r.Error
		} else {
			passed++
		}
		total += r.Instructions
		t.AppendRow(table.Row{r.Name, r.Instructions, status, r.WallTime, fmt.Sprintf("%.0f", r.InstructionsPerSecond)})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{"Total", total, fmt.Sprintf("%d/%d passed", passed, len(results)), "", ""})
	t.Render()
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "name,instructions,halted,passed,wall_time_ns,instructions_per_second")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%t,%t,%d,%.0f\n",
			r.Name,
			r.Instructions,
			r.Halted,
			r.Passed,
			r.WallTime.Nanoseconds(),
			r.InstructionsPerSecond,
		)
	}
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	// Timestamp when the benchmark was run
	Timestamp string `json:"timestamp"`

	// MaxInstructions is the per-benchmark instruction budget
	MaxInstructions uint64 `json:"max_instructions"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	// TotalBenchmarks is the number of benchmarks run
	TotalBenchmarks int `json:"total_benchmarks"`

	// Passed is the number of benchmarks that passed
	Passed int `json:"passed"`

	// TotalInstructions is the sum of all executed instructions
	TotalInstructions uint64 `json:"total_instructions"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	summary := ReportSummary{TotalBenchmarks: len(results)}
	for _, r := range results {
		summary.TotalInstructions += r.Instructions
		summary.TotalWallTime += r.WallTime
		if r.Passed {
			summary.Passed++
		}
	}

	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
			MaxInstructions: h.config.MaxInstructions,
		},
		Results: results,
		Summary: summary,
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
