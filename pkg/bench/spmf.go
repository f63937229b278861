package bench

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/nresta/itembench/pkg/metrics"
)

// Algorithm names a frequent-itemset miner shipped with the SPMF toolkit.
type Algorithm string

const (
	Apriori  Algorithm = "Apriori"
	FPGrowth Algorithm = "FPGrowth"
	Eclat    Algorithm = "Eclat"
	LCM      Algorithm = "LCM"
	Charm    Algorithm = "Charm"
)

// KnownAlgorithms lists the miners this runner knows how to invoke.
func KnownAlgorithms() []Algorithm {
	return []Algorithm{Apriori, FPGrowth, Eclat, LCM, Charm}
}

// Runner invokes the SPMF jar as an external process. SPMF itself stays an
// external collaborator: only the invocation and result parsing live here.
type Runner struct {
	JarPath string
	// JavaMemory is the maximum heap passed as -Xmx (default "4g").
	JavaMemory string
}

// NewRunner checks the jar and the java binary up front so a missing
// dependency fails before any dataset work.
func NewRunner(jarPath string) (*Runner, error) {
	if _, err := os.Stat(jarPath); err != nil {
		return nil, fmt.Errorf("spmf jar not found at %s: %w", jarPath, err)
	}
	if _, err := exec.LookPath("java"); err != nil {
		return nil, fmt.Errorf("java not found in PATH: %w", err)
	}
	return &Runner{JarPath: jarPath, JavaMemory: "4g"}, nil
}

// RunResult is one miner invocation: what it found and how long it took.
type RunResult struct {
	Algorithm Algorithm
	Duration  time.Duration
	Mined     []MinedItemset
	// Skipped counts result lines that could not be parsed.
	Skipped int
}

// Run executes one mining algorithm over an SPMF-format input file. The
// minimum support is forwarded to SPMF as given (SPMF accepts a fraction
// such as 0.05). Cancellation and timeouts come from ctx.
func (r *Runner) Run(ctx context.Context, algo Algorithm, inputPath, outputPath string, minSupport float64) (*RunResult, error) {
	args := []string{
		"-Xmx" + r.JavaMemory,
		"-jar", r.JarPath,
		"run", string(algo),
		inputPath, outputPath,
		strconv.FormatFloat(minSupport, 'g', -1, 64),
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, "java", args...)
	out, err := cmd.CombinedOutput()
	elapsed := time.Since(start)
	if err != nil {
		metrics.BenchmarkRuns.WithLabelValues(string(algo), "error").Inc()
		return nil, fmt.Errorf("spmf %s failed: %w: %s", algo, err, tail(out))
	}

	mined, skipped, err := ParseResultFile(outputPath)
	if err != nil {
		metrics.BenchmarkRuns.WithLabelValues(string(algo), "error").Inc()
		return nil, err
	}
	metrics.BenchmarkRuns.WithLabelValues(string(algo), "ok").Inc()
	return &RunResult{Algorithm: algo, Duration: elapsed, Mined: mined, Skipped: skipped}, nil
}

// ParseResults parses SPMF frequent-itemset output: one itemset per line,
// space-separated item ids followed by "#SUP: <count>". Malformed lines are
// skipped and counted, matching the validator's recover-locally policy.
func ParseResults(r io.Reader) ([]MinedItemset, int, error) {
	var mined []MinedItemset
	skipped := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		itemsPart, supPart, ok := strings.Cut(line, "#SUP:")
		if !ok {
			skipped++
			continue
		}
		support, err := strconv.ParseFloat(strings.TrimSpace(supPart), 64)
		if err != nil {
			skipped++
			continue
		}
		fields := strings.Fields(itemsPart)
		if len(fields) == 0 {
			skipped++
			continue
		}
		items := make([]int, 0, len(fields))
		bad := false
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				bad = true
				break
			}
			items = append(items, v)
		}
		if bad {
			skipped++
			continue
		}
		mined = append(mined, MinedItemset{Items: items, Support: support})
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, fmt.Errorf("failed to read result file: %w", err)
	}
	return mined, skipped, nil
}

// ParseResultFile parses an SPMF result file from disk.
func ParseResultFile(path string) ([]MinedItemset, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open result file: %w", err)
	}
	defer f.Close()
	return ParseResults(f)
}

// tail keeps error messages short when SPMF dumps a long stack trace.
func tail(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > 400 {
		s = "..." + s[len(s)-400:]
	}
	return s
}
