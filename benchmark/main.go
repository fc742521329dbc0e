// Package main provides a performance benchmarking tool for the decider CLI.
// It measures execution times across matrix sizes and commands, running each test
// multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - decider binary installed and available in PATH
//
// Usage: go run benchmark/main.go [runs]
//
//	runs: Number of runs per command and phase (default 4)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/huangsam/decider/core"
	"github.com/huangsam/decider/internal/codec"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Size          string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// MatrixSize is the shape of a generated matrix.
type MatrixSize struct {
	Options  int
	Criteria int
}

func (s MatrixSize) String() string {
	return fmt.Sprintf("%dx%d", s.Options, s.Criteria)
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout  time.Duration
	Runs     int
	Sizes    []MatrixSize
	Commands map[string][]string
}

func main() {
	runs := 4
	if len(os.Args) == 2 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 2 {
			fmt.Printf("Usage: %s [runs >= 2]\n", os.Args[0])
			os.Exit(1)
		}
		runs = n
	}

	config := BenchmarkConfig{
		Timeout: 1 * time.Minute,
		Runs:    runs,
		Sizes:   []MatrixSize{{5, 5}, {25, 10}, {100, 20}, {300, 40}},
		Commands: map[string][]string{
			"results": {"results", "--output", "csv"},
			"export":  {"export", "--format", "csv", "--output-file", "-"},
		},
	}

	if _, err := exec.LookPath("decider"); err != nil {
		fmt.Printf("Prerequisites check failed: decider binary not found in PATH\n")
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// generateFragment builds a fully rated matrix and encodes it as a share fragment.
func generateFragment(size MatrixSize) (string, error) {
	m := core.NewMatrix()
	options := make([]string, size.Options)
	for i := range options {
		options[i] = m.AddOption(fmt.Sprintf("Option %d", i+1))
	}
	for j := range size.Criteria {
		c := m.AddCriterion(fmt.Sprintf("Criterion %d", j+1), float64(j%10+1))
		for i, o := range options {
			m.SetRating(o, c, float64((i*7+j*3)%10+1))
		}
	}
	return codec.EncodeState(m.Snapshot())
}

// runBenchmarks executes all benchmark tests across configured matrix sizes
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, %d runs per phase\n",
		len(config.Sizes), config.Timeout, config.Runs)

	for _, size := range config.Sizes {
		sizeResults, err := benchmarkSize(config, size)
		if err != nil {
			return nil, err
		}
		results = append(results, sizeResults...)
	}

	return results, nil
}

// benchmarkSize loads a generated matrix into a scratch home and benchmarks every command on it
func benchmarkSize(config BenchmarkConfig, size MatrixSize) ([]BenchmarkResult, error) {
	fmt.Printf("Benchmarking %s matrix\n", size)

	home, err := os.MkdirTemp("", "decider-benchmark-*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(home) }()

	fragment, err := generateFragment(size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s matrix: %w", size, err)
	}
	if output, err := deciderCommand(home, "none", "load", fragment).CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to load %s matrix: %w\nOutput: %s", size, err, output)
	}

	var results []BenchmarkResult
	for _, name := range []string{"results", "export"} {
		results = append(results, runBenchmarkSuite(config, size, home, name, config.Commands[name]))
	}
	return results, nil
}

// runBenchmarkSuite runs a command without and with history tracking
func runBenchmarkSuite(config BenchmarkConfig, size MatrixSize, home, command string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, size)

	// Helper to run a benchmark phase
	runPhase := func(historyBackend, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, config.Runs)
		cold, times := runBenchmark(config, home, historyBackend, args)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noHistoryAvg := runPhase("none", "No-history")
	coldTime, warmAvg := runPhase("sqlite", "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Size:          size.String(),
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// deciderCommand prepares a decider invocation isolated in home.
func deciderCommand(home, historyBackend string, args ...string) *exec.Cmd {
	cmd := exec.Command("decider", append(args, "--history-backend", historyBackend)...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(), "HOME="+home)
	return cmd
}

// runBenchmark executes a decider command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, home, historyBackend string, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for range config.Runs {
		start := time.Now()
		cmd := deciderCommand(home, historyBackend, args...)

		done := make(chan error, 1)
		go func() {
			done <- cmd.Run()
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/decider_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"size", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Size, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"results", "export"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: No-history: %s, Cold: %s, Warm: %s\n", result.Size, result.NoHistoryTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
