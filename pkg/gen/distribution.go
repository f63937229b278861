package gen

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Default distribution parameters, matching the generator's documented
// behavior when a parameter is omitted.
const (
	defaultZipfAlpha = 1.1
	defaultExpLambda = 0.5
	weightFloor      = 1e-12
)

// BuildWeights converts a distribution specification into per-item selection
// probabilities: a vector of length numItems with strictly positive entries
// summing to 1 within 1e-9. No item is ever categorically impossible; a tiny
// floor is applied before normalization so noise and pattern overlap stay
// representable under every method.
func BuildWeights(method string, params map[string]float64, numItems int) ([]float64, error) {
	if numItems <= 0 {
		return nil, configErrorf("num_items", "must be > 0, got %d", numItems)
	}
	get := func(key string, def float64) float64 {
		if v, ok := params[key]; ok {
			return v
		}
		return def
	}

	w := make([]float64, numItems)
	switch method {
	case "uniform", "random": // "random" is the legacy name for uniform
		for i := range w {
			w[i] = 1
		}

	case "zipf":
		alpha := get("alpha", defaultZipfAlpha)
		if alpha <= 0 {
			return nil, configErrorf("distribution.params.alpha", "must be > 0, got %g", alpha)
		}
		for i := range w {
			w[i] = math.Pow(float64(i+1), -alpha)
		}

	case "normal":
		mean := get("mean", float64(numItems-1)/2)
		std := get("std", float64(numItems)/6)
		if std <= 0 {
			return nil, configErrorf("distribution.params.std", "must be > 0, got %g", std)
		}
		n := distuv.Normal{Mu: mean, Sigma: std}
		for i := range w {
			w[i] = n.Prob(float64(i))
		}

	case "exponential":
		lambda := get("lambda", defaultExpLambda)
		if lambda <= 0 {
			return nil, configErrorf("distribution.params.lambda", "must be > 0, got %g", lambda)
		}
		e := distuv.Exponential{Rate: lambda}
		for i := range w {
			w[i] = e.Prob(float64(i))
		}

	default:
		return nil, configErrorf("distribution.method", "unknown method %q", method)
	}

	normalize(w)
	return w, nil
}

// normalize floors and rescales the vector into a probability distribution.
func normalize(w []float64) {
	sum := 0.0
	for i := range w {
		if w[i] < weightFloor {
			w[i] = weightFloor
		}
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
}

// LengthSampler draws transaction lengths in [1, Max]. With AvgLen set it is
// a truncated Poisson: out-of-range draws are rejected and re-sampled rather
// than clamped, so the boundaries do not bias the mean. With AvgLen zero it
// returns the fixed density-derived length.
type LengthSampler struct {
	AvgLen float64
	Fixed  int
	Max    int
}

// NewLengthSampler builds the sampler for a validated configuration.
func NewLengthSampler(cfg *Config) LengthSampler {
	if cfg.AvgTransactionLen > 0 {
		return LengthSampler{AvgLen: float64(cfg.AvgTransactionLen), Max: cfg.NumItems}
	}
	density := cfg.Density
	if density == 0 {
		density = DefaultDensity
	}
	fixed := int(math.Round(density * float64(cfg.NumItems)))
	if fixed < 1 {
		fixed = 1
	}
	if fixed > cfg.NumItems {
		fixed = cfg.NumItems
	}
	return LengthSampler{Fixed: fixed, Max: cfg.NumItems}
}

// Sample draws one length from the given random source.
func (ls LengthSampler) Sample(src rand.Source) int {
	if ls.AvgLen == 0 {
		return ls.Fixed
	}
	p := distuv.Poisson{Lambda: ls.AvgLen, Src: src}
	for {
		v := int(p.Rand())
		if v >= 1 && v <= ls.Max {
			return v
		}
	}
}
