package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Define global variables for metrics.
// We use 'promauto' which automatically registers metrics without complex initialization.

var (
	// 1. Datasets Generated (Counter)
	// Counts completed generation runs, labeled by distribution method.
	DatasetsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itembench_datasets_generated_total",
			Help: "Total number of datasets generated successfully",
		},
		[]string{"distribution"},
	)

	// 2. Transactions Sampled (Counter)
	// Volume of baseline transactions drawn, across all runs.
	TransactionsSampled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "itembench_transactions_sampled_total",
			Help: "Total number of baseline transactions sampled",
		},
	)

	// 3. Patterns Injected (Counter)
	PatternsInjected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "itembench_patterns_injected_total",
			Help: "Total number of ground-truth patterns injected",
		},
	)

	// 4. Injection Conflicts (Counter)
	// A non-zero value means runs failed because host pools were exhausted.
	InjectionConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "itembench_injection_conflicts_total",
			Help: "Total number of generation runs aborted by host-pool exhaustion",
		},
	)

	// 5. Generation Duration (Histogram)
	// Buckets cover tiny test datasets up to multi-million transaction runs.
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "itembench_generation_duration_seconds",
			Help:    "Wall time of full generation runs in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60, 300},
		},
	)

	// 6. Benchmark Runs (Counter)
	// External miner invocations, labeled by algorithm and outcome.
	BenchmarkRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itembench_benchmark_runs_total",
			Help: "Total number of external miner invocations",
		},
		[]string{"algorithm", "status"},
	)
)
