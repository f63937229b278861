// Package bench scores the output of external pattern-mining tools against
// the ground truth embedded by the generator, and carries the small amount of
// glue needed to invoke the SPMF toolkit and parse its result files.
package bench

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/btree"

	"github.com/nresta/itembench/pkg/dataset"
	"github.com/nresta/itembench/pkg/gen"
)

// DefaultTolerance is the absolute support tolerance used when none is
// configured.
const DefaultTolerance = 0.02

// MinedItemset is one entry of a mining tool's parsed output. Support may be
// an absolute transaction count (anything > 1) or an already-normalized
// fraction; the validator normalizes counts by the dataset size.
type MinedItemset struct {
	Items   []int
	Support float64
}

// ValidationReport scores one injected pattern against the mined output.
type ValidationReport struct {
	PatternID     string  `json:"pattern_id"`
	Items         []int   `json:"items"`
	TargetSupport float64 `json:"target_support"`
	// ExpectedSupport is the first-order estimate after noise:
	// target_support * (1-noise_ratio)^|items|.
	ExpectedSupport float64 `json:"expected_support"`
	// RealizedSupport counts how many host transactions actually retained the
	// complete item set, divided by the dataset size. -1 when the dataset or
	// the host bookkeeping is unavailable.
	RealizedSupport float64 `json:"realized_support"`
	// DataSupport is the support of the full item set over the whole
	// generated dataset. -1 when the dataset is unavailable.
	DataSupport float64 `json:"observed_support_in_generated_data"`
	// MinedSupport is the (normalized) support the miner reported for the
	// exact item set, -1 when the miner did not emit it.
	MinedSupport      float64 `json:"mined_support"`
	Found             bool    `json:"found_in_mined_output"`
	ReducedConfidence bool    `json:"reduced_confidence,omitempty"`
}

// Summary aggregates a validation pass.
type Summary struct {
	Reports   []ValidationReport `json:"reports"`
	Recall    float64            `json:"recall"`
	Precision float64            `json:"precision"`
	F1        float64            `json:"f1_score"`
	// Warnings counts malformed mined entries that were skipped.
	Warnings   int `json:"warnings"`
	MinedCount int `json:"mined_count"`
	// ReducedConfidence is set when validation ran without host bookkeeping
	// and had to rely on support proximity alone.
	ReducedConfidence bool `json:"reduced_confidence,omitempty"`
}

// Validator compares mined itemsets against injected patterns.
//
// Dataset is optional: when present, the validator also computes the exact
// realized support per pattern (host transactions that kept the full set)
// and the pattern's support over the whole dataset.
type Validator struct {
	Tolerance float64
	Dataset   *dataset.Dataset
}

// NewValidator returns a Validator with the given absolute support
// tolerance; zero or negative selects DefaultTolerance.
func NewValidator(tolerance float64) *Validator {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Validator{Tolerance: tolerance}
}

// ExpectedSupport is the documented first-order approximation of the support
// of the complete item set after per-item noise.
func ExpectedSupport(p gen.PatternSpec) float64 {
	return p.TargetSupport * math.Pow(1-p.NoiseRatio, float64(len(p.Items)))
}

// Validate scores the mined output against the configured patterns.
// hosts is the realized host-index map from the ground-truth sidecar; pass
// nil when the dataset was produced without bookkeeping, in which case the
// pass degrades to support-proximity matching and flags every report.
//
// Malformed mined entries (empty item sets, negative or impossible supports)
// are skipped and counted, never fatal.
func (v *Validator) Validate(mined []MinedItemset, patterns []gen.PatternSpec, hosts map[string][]int, datasetSize int) *Summary {
	sum := &Summary{ReducedConfidence: hosts == nil}

	// Index the mined output by canonical item-set key. The tree keeps the
	// entries in deterministic sorted order for the precision scan.
	var index btree.Map[string, float64]
	for _, m := range mined {
		support, ok := normalizeSupport(m.Support, datasetSize)
		if len(m.Items) == 0 || !ok {
			sum.Warnings++
			continue
		}
		key := itemsKey(dataset.NewTransaction(m.Items))
		if _, dup := index.Get(key); dup {
			sum.Warnings++
			continue
		}
		index.Set(key, support)
		sum.MinedCount++
	}

	patternKeys := make(map[string]struct{}, len(patterns))
	found := 0
	for _, p := range patterns {
		items := p.SortedItems()
		key := itemsKey(items)
		patternKeys[key] = struct{}{}

		r := ValidationReport{
			PatternID:         p.ID,
			Items:             items,
			TargetSupport:     p.TargetSupport,
			ExpectedSupport:   ExpectedSupport(p),
			RealizedSupport:   -1,
			DataSupport:       -1,
			MinedSupport:      -1,
			ReducedConfidence: hosts == nil,
		}
		if v.Dataset != nil {
			r.DataSupport = v.Dataset.Support(items)
			if hostIdx, ok := hosts[p.ID]; ok {
				r.RealizedSupport = realizedSupport(v.Dataset, items, hostIdx)
			}
		}
		if support, ok := index.Get(key); ok {
			r.MinedSupport = support
			r.Found = math.Abs(support-r.ExpectedSupport) <= v.Tolerance
		}
		if r.Found {
			found++
		}
		sum.Reports = append(sum.Reports, r)
	}

	if len(patterns) > 0 {
		sum.Recall = float64(found) / float64(len(patterns))
	}
	if sum.MinedCount > 0 {
		matched := 0
		index.Scan(func(key string, _ float64) bool {
			if _, ok := patternKeys[key]; ok {
				matched++
			}
			return true
		})
		sum.Precision = float64(matched) / float64(sum.MinedCount)
	}
	if sum.Precision+sum.Recall > 0 {
		sum.F1 = 2 * sum.Precision * sum.Recall / (sum.Precision + sum.Recall)
	}
	return sum
}

// realizedSupport counts host transactions that retained the complete item
// set, as a fraction of the whole dataset.
func realizedSupport(d *dataset.Dataset, items []int, hosts []int) float64 {
	if d.Len() == 0 {
		return 0
	}
	kept := 0
	for _, h := range hosts {
		if h < 0 || h >= d.Len() {
			continue
		}
		if d.Transactions[h].ContainsAll(items) {
			kept++
		}
	}
	return float64(kept) / float64(d.Len())
}

// normalizeSupport converts absolute counts to fractions and rejects values
// that cannot be a support.
func normalizeSupport(s float64, datasetSize int) (float64, bool) {
	if math.IsNaN(s) || s < 0 {
		return 0, false
	}
	if s > 1 {
		if datasetSize <= 0 || s > float64(datasetSize) {
			return 0, false
		}
		return s / float64(datasetSize), true
	}
	return s, true
}

// itemsKey renders a sorted item set as its canonical string key.
func itemsKey(items []int) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(it))
	}
	return b.String()
}
