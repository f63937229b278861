package gen

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/nresta/itembench/pkg/dataset"
)

// Sampler draws baseline transactions: a length from the length sampler,
// then that many distinct items by weighted sampling without replacement.
// The without-replacement step uses an explicit weighted index structure
// (sampleuv.Weighted), so "no duplicates, weights respected" holds by
// construction rather than by convention.
type Sampler struct {
	weights []float64
	length  LengthSampler
}

// NewSampler builds a sampler over the given normalized weight vector.
func NewSampler(weights []float64, length LengthSampler) *Sampler {
	return &Sampler{weights: weights, length: length}
}

// Sample draws one transaction from the given random source. The result is
// canonical (sorted, unique) and never empty. A draw is a pure function of
// the source state, which is what makes per-index sub-stream parallelism
// possible.
func (s *Sampler) Sample(src rand.Source) (dataset.Transaction, error) {
	n := s.length.Sample(src)

	// sampleuv.Weighted consumes weights as it takes items, so it gets a
	// private copy of the vector for every transaction.
	w := make([]float64, len(s.weights))
	copy(w, s.weights)
	pool := sampleuv.NewWeighted(w, src)

	t := make(dataset.Transaction, 0, n)
	for len(t) < n {
		idx, ok := pool.Take()
		if !ok {
			return nil, fmt.Errorf("weighted pool exhausted after %d of %d items", len(t), n)
		}
		t = append(t, idx)
	}
	sort.Ints(t)
	return t, nil
}

// subSource derives the deterministic per-transaction random stream for the
// given seed and transaction index.
func subSource(seed uint64, index int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(index)))
}

// masterStreamSalt separates the injector's master stream from the
// per-transaction sub-streams, which occupy the low sequence numbers.
const masterStreamSalt = 0x9e3779b97f4a7c15

// masterSource derives the sequential stream used for host selection and
// noise application.
func masterSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, masterStreamSalt))
}
