// Package main provides a performance benchmarking tool for the snpfiltr CLI.
// It measures execution times across synthetic VCF datasets of increasing size,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - snpfiltr binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic VCFs are generated
package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Command  string
	ColdTime string
	WarmTime string
}

// DatasetSpec describes a synthetic VCF to generate.
type DatasetSpec struct {
	Name        string
	NumSites    int
	NumSamples  int
	MissingRate float64
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Datasets []DatasetSpec
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 5 * time.Minute,
		Runs:    4,
		Datasets: []DatasetSpec{
			{Name: "small", NumSites: 1_000, NumSamples: 20, MissingRate: 0.15},
			{Name: "medium", NumSites: 50_000, NumSamples: 100, MissingRate: 0.15},
			{Name: "large", NumSites: 500_000, NumSamples: 200, MissingRate: 0.15},
			{Name: "sparse", NumSites: 100_000, NumSamples: 100, MissingRate: 0.60},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating synthetic datasets in %s...\n", config.WorkDir)
	paths, err := generateDatasets(config)
	if err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, paths)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the snpfiltr binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if snpfiltr is available
	if _, err := exec.LookPath("snpfiltr"); err != nil {
		return fmt.Errorf("snpfiltr binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work directory %s: %w", config.WorkDir, err)
	}

	return nil
}

// generateDatasets writes one synthetic VCF per dataset spec and returns
// the paths keyed by dataset name.
func generateDatasets(config BenchmarkConfig) (map[string]string, error) {
	paths := make(map[string]string, len(config.Datasets))
	for _, spec := range config.Datasets {
		path := filepath.Join(config.WorkDir, spec.Name+".vcf")
		fmt.Printf("  %s: %d sites x %d samples (%.0f%% missing)\n",
			spec.Name, spec.NumSites, spec.NumSamples, spec.MissingRate*100)
		if err := writeSyntheticVCF(path, spec); err != nil {
			return nil, fmt.Errorf("dataset %s: %w", spec.Name, err)
		}
		paths[spec.Name] = path
	}
	return paths, nil
}

// writeSyntheticVCF generates a VCF with random diploid genotypes, dropping
// calls to "./." at the configured missing rate. The seed is fixed so runs
// are comparable.
func writeSyntheticVCF(path string, spec DatasetSpec) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := bufio.NewWriterSize(file, 1<<20)
	rng := rand.New(rand.NewPCG(42, uint64(spec.NumSites)))

	fmt.Fprintln(w, "##fileformat=VCFv4.2")
	fmt.Fprintln(w, "##source=snpfiltr-benchmark")
	fmt.Fprint(w, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT")
	for i := 0; i < spec.NumSamples; i++ {
		fmt.Fprintf(w, "\tind%d", i+1)
	}
	fmt.Fprintln(w)

	genotypes := []string{"0/0", "0/1", "1/1"}
	for s := 0; s < spec.NumSites; s++ {
		fmt.Fprintf(w, "chr1\t%d\trs%d\tA\tG\t50\tPASS\t.\tGT", (s+1)*10, s+1)
		for n := 0; n < spec.NumSamples; n++ {
			if rng.Float64() < spec.MissingRate {
				fmt.Fprint(w, "\t./.")
			} else {
				fmt.Fprintf(w, "\t%s", genotypes[rng.IntN(len(genotypes))])
			}
		}
		fmt.Fprintln(w)
	}

	return w.Flush()
}

// runBenchmarks executes all benchmark tests across the generated datasets
func runBenchmarks(config BenchmarkConfig, paths map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d runs each\n",
		len(config.Datasets), config.Timeout, config.Runs)

	for _, spec := range config.Datasets {
		fmt.Printf("Benchmarking %s\n", spec.Name)
		vcfPath := paths[spec.Name]

		// Explore: full threshold sweep plus per-level sample distributions
		result := runBenchmarkSuite(config, spec.Name, "explore", "missingness exploration", vcfPath, nil)
		results = append(results, result)

		// Filter: sweep plus a single-cutoff filtering pass
		result = runBenchmarkSuite(config, spec.Name, "filter", "cutoff filtering (0.85)", vcfPath,
			[]string{"--cutoff", "0.85"})
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs the timed repetitions for one command on one dataset
func runBenchmarkSuite(config BenchmarkConfig, dataset, command, description, vcfPath string, extraArgs []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	cold, times := runBenchmark(config, command, vcfPath, extraArgs)

	coldTimeStr := "TIMEOUT"
	if cold > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", cold)
	}

	warmAvg := "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:  dataset,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a snpfiltr command multiple times and returns the cold time and the warm times
func runBenchmark(config BenchmarkConfig, command, vcfPath string, extraArgs []string) (coldTime float64, warmTimes []float64) {
	args := []string{command, vcfPath,
		"--no-plots",
		"--store-backend", "none",
		"--emoji", "no",
		"--color", "no",
	}
	args = append(args, extraArgs...)

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("snpfiltr", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Analysis completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/snpfiltr_benchmark_%s.csv", timestamp)

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

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "explore", "Explore:")
	printCommandSummary(results, "filter", "Filter:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: Cold: %s, Warm: %s\n", result.Dataset, result.ColdTime, result.WarmTime)
		}
	}
}
