package gen

import (
	"math/rand/v2"
	"sort"

	"github.com/nresta/itembench/pkg/dataset"
)

// hostPool tracks which transaction indices are still unclaimed by a
// pattern. Patterns are applied in input order; an index claimed by an
// earlier pattern is never offered to a later one (first-pattern-wins).
type hostPool struct {
	free []int
}

func newHostPool(n int) *hostPool {
	free := make([]int, n)
	for i := range free {
		free[i] = i
	}
	return &hostPool{free: free}
}

// draw removes k indices uniformly at random from the unclaimed set, or
// reports the pool too small. Swap-remove keeps each draw O(1).
func (p *hostPool) draw(k int, rng *rand.Rand) ([]int, bool) {
	if k > len(p.free) {
		return nil, false
	}
	hosts := make([]int, 0, k)
	for len(hosts) < k {
		i := rng.IntN(len(p.free))
		hosts = append(hosts, p.free[i])
		last := len(p.free) - 1
		p.free[i] = p.free[last]
		p.free = p.free[:last]
	}
	return hosts, true
}

// Injector embeds ground-truth patterns into an already-sampled dataset.
type Injector struct {
	cfg  *Config
	pool *hostPool
}

// NewInjector prepares injection over a dataset of cfg.NumTransactions
// entries.
func NewInjector(cfg *Config) *Injector {
	return &Injector{cfg: cfg, pool: newHostPool(cfg.NumTransactions)}
}

// Inject mutates the dataset in place so the pattern's items co-occur, at
// the configured noise level, in k = round(target_support*N) host
// transactions. It returns the claimed host indices (sorted) for ground-truth
// bookkeeping.
//
// Per host, each pattern item is included with probability 1-noise_ratio and
// silently omitted otherwise; items the transaction already holds are left
// untouched. Host lengths may therefore grow past the value the length
// sampler drew — injection takes precedence over the length invariant.
func (inj *Injector) Inject(d *dataset.Dataset, p PatternSpec, rng *rand.Rand) ([]int, error) {
	k := inj.cfg.HostCount(p)
	hosts, ok := inj.pool.draw(k, rng)
	if !ok {
		return nil, &InjectionConflictError{PatternID: p.ID, Needed: k, Available: len(inj.pool.free)}
	}
	sort.Ints(hosts)

	items := p.SortedItems()
	for _, h := range hosts {
		t := d.Transactions[h]
		for _, item := range items {
			if rng.Float64() >= p.NoiseRatio {
				t = t.Add(item)
			}
		}
		d.Transactions[h] = t
	}
	return hosts, nil
}
