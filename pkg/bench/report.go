package bench

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nresta/itembench/pkg/dataset"
)

// AlgorithmResult pairs one miner invocation with its validation summary
// (nil when no ground truth was available).
type AlgorithmResult struct {
	Algorithm Algorithm
	Duration  time.Duration
	Found     int
	Summary   *Summary
}

// WriteReport renders a human-readable benchmark report: dataset info, per
// algorithm timing and accuracy, and a small comparison section.
func WriteReport(w io.Writer, stats dataset.Stats, results []AlgorithmResult) error {
	line := strings.Repeat("=", 60)
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nItemBench Benchmark Report\n%s\n\n", line, line)
	fmt.Fprintf(&b, "Dataset Information:\n")
	fmt.Fprintf(&b, "  Transactions: %d\n", stats.NumTransactions)
	fmt.Fprintf(&b, "  Items: %d\n", stats.NumItems)
	fmt.Fprintf(&b, "  Density: %.2f%%\n", stats.ActualDensity*100)
	fmt.Fprintf(&b, "  Avg transaction length: %.2f\n\n", stats.AvgTransactionLn)

	if len(results) > 0 {
		fmt.Fprintf(&b, "Algorithm Results:\n")
		var fastest, mostPatterns, bestRecall *AlgorithmResult
		for i := range results {
			r := &results[i]
			fmt.Fprintf(&b, "\n  %s:\n", r.Algorithm)
			fmt.Fprintf(&b, "    Execution Time: %.4fs\n", r.Duration.Seconds())
			fmt.Fprintf(&b, "    Patterns Found: %d\n", r.Found)
			if r.Summary != nil {
				fmt.Fprintf(&b, "    Precision: %.2f%%\n", r.Summary.Precision*100)
				fmt.Fprintf(&b, "    Recall: %.2f%%\n", r.Summary.Recall*100)
				fmt.Fprintf(&b, "    F1 Score: %.4f\n", r.Summary.F1)
				if r.Summary.Warnings > 0 {
					fmt.Fprintf(&b, "    Warnings: %d malformed entries skipped\n", r.Summary.Warnings)
				}
				if r.Summary.ReducedConfidence {
					fmt.Fprintf(&b, "    Note: no ground-truth sidecar, support-proximity matching only\n")
				}
			}

			if fastest == nil || r.Duration < fastest.Duration {
				fastest = r
			}
			if mostPatterns == nil || r.Found > mostPatterns.Found {
				mostPatterns = r
			}
			if r.Summary != nil && (bestRecall == nil || r.Summary.Recall > bestRecall.Summary.Recall) {
				bestRecall = r
			}
		}

		fmt.Fprintf(&b, "\nPerformance Comparison:\n")
		fmt.Fprintf(&b, "  Fastest Algorithm: %s\n", fastest.Algorithm)
		fmt.Fprintf(&b, "  Most Patterns Found: %s\n", mostPatterns.Algorithm)
		if bestRecall != nil {
			fmt.Fprintf(&b, "  Best Recall: %s\n", bestRecall.Algorithm)
		}
	}

	fmt.Fprintf(&b, "%s\n", line)
	_, err := io.WriteString(w, b.String())
	return err
}
