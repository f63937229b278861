package gen

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nresta/itembench/pkg/dataset"
	"github.com/nresta/itembench/pkg/metrics"
)

// Generator runs one full generation pass: weight building, baseline
// sampling, pattern injection and final assembly. A run either completes or
// fails atomically; no partial dataset is ever returned.
//
// Basic usage:
//
//	cfg, err := gen.LoadConfig("retail.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, err := gen.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := g.Generate()
type Generator struct {
	cfg *Config
	log *slog.Logger
}

// Result bundles the two artifacts of a run: the dataset itself and the
// ground-truth bookkeeping needed for exact validation later.
type Result struct {
	Dataset     *dataset.Dataset
	GroundTruth *GroundTruth
}

// New validates the configuration eagerly and returns a ready Generator.
// Every configuration problem surfaces here, before any sampling.
func New(cfg *Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, log: slog.Default()}, nil
}

// SetLogger replaces the logger used for run-level progress messages.
func (g *Generator) SetLogger(l *slog.Logger) {
	if l != nil {
		g.log = l
	}
}

// Generate produces the dataset. For a fixed seed the result is fully
// reproducible, byte for byte, regardless of the worker count: every
// transaction is sampled from its own seed+index-derived sub-stream, and the
// injector runs sequentially on a separate master stream.
func (g *Generator) Generate() (*Result, error) {
	start := time.Now()
	cfg := g.cfg
	seed := cfg.SeedOrDefault()

	weights, err := BuildWeights(cfg.Distribution.Method, cfg.Distribution.Params, cfg.NumItems)
	if err != nil {
		return nil, err
	}
	sampler := NewSampler(weights, NewLengthSampler(cfg))

	txs := make([]dataset.Transaction, cfg.NumTransactions)
	if err := g.sampleBaseline(sampler, seed, txs); err != nil {
		return nil, err
	}
	metrics.TransactionsSampled.Add(float64(cfg.NumTransactions))

	d := &dataset.Dataset{NumItems: cfg.NumItems, Transactions: txs}
	gt := NewGroundTruth(cfg)

	if len(cfg.Patterns) > 0 {
		rng := masterSource(seed)
		inj := NewInjector(cfg)
		for _, p := range cfg.Patterns {
			hosts, err := inj.Inject(d, p, rng)
			if err != nil {
				metrics.InjectionConflicts.Inc()
				return nil, err
			}
			gt.Hosts[p.ID] = hosts
			metrics.PatternsInjected.Inc()
		}
	}

	// Final assembly gate: nothing leaves this function unless every
	// invariant holds for every transaction.
	if err := assemble(cfg.NumTransactions, d); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.DatasetsGenerated.WithLabelValues(cfg.Distribution.Method).Inc()
	metrics.GenerationDuration.Observe(elapsed.Seconds())
	g.log.Info("dataset generated",
		"transactions", cfg.NumTransactions,
		"items", cfg.NumItems,
		"patterns", len(cfg.Patterns),
		"seed", seed,
		"elapsed", elapsed)

	return &Result{Dataset: d, GroundTruth: gt}, nil
}

// sampleBaseline fills txs with independent draws. Workers split the index
// space into contiguous ranges; each slot is written exactly once, so the
// goroutines share no mutable state.
func (g *Generator) sampleBaseline(s *Sampler, seed uint64, txs []dataset.Transaction) error {
	workers := g.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(txs) {
		workers = len(txs)
	}
	if workers == 1 {
		for i := range txs {
			t, err := s.Sample(subSource(seed, i))
			if err != nil {
				return err
			}
			txs[i] = t
		}
		return nil
	}

	chunk := (len(txs) + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(txs) {
			hi = len(txs)
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				t, err := s.Sample(subSource(seed, i))
				if err != nil {
					errs[w] = err
					return
				}
				txs[i] = t
			}
		}(w, lo, hi)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// assemble is the fail-fast integrity check over the merged dataset: exact
// transaction count, non-empty transactions, ids in range, no duplicates.
// Transaction order is never touched here; index identity must survive for
// the validator's host bookkeeping.
func assemble(numTransactions int, d *dataset.Dataset) error {
	if len(d.Transactions) != numTransactions {
		return &dataset.IntegrityError{
			Index:  -1,
			Reason: fmt.Sprintf("expected %d transactions, got %d", numTransactions, len(d.Transactions)),
		}
	}
	return d.CheckIntegrity()
}
