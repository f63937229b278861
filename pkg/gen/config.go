// Package gen implements the dataset generation engine: distribution
// modeling, transaction sampling, ground-truth pattern injection and the
// orchestration that assembles the final dataset.
//
// This file defines the Go structs that correspond to the generation
// configuration. The configuration object is typically produced by an LLM
// client (via the MCP tools) or written by hand as YAML/JSON; either way it
// is validated eagerly, before any sampling begins.
package gen

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// DistributionConfig selects the item-popularity model.
type DistributionConfig struct {
	// Method is one of "uniform" (alias "random"), "zipf", "normal",
	// "exponential".
	Method string `yaml:"method" json:"method" jsonschema:"Item popularity distribution: uniform|zipf|normal|exponential"`
	// Params holds method-specific parameters: zipf alpha, normal mean/std,
	// exponential lambda. Missing parameters fall back to defaults.
	Params map[string]float64 `yaml:"params" json:"params,omitempty" jsonschema:"Method-specific parameters: zipf alpha; normal mean and std; exponential lambda"`
}

// PatternSpec describes one ground-truth itemset to embed in the dataset.
type PatternSpec struct {
	ID            string  `yaml:"id" json:"id,omitempty" jsonschema:"Pattern identifier; auto-assigned when empty"`
	Items         []int   `yaml:"items" json:"items" jsonschema:"Item ids to co-occur; at least 2 distinct ids below num_items"`
	TargetSupport float64 `yaml:"target_support" json:"target_support" jsonschema:"Fraction of transactions hosting the pattern, in (0,1]"`
	NoiseRatio    float64 `yaml:"noise_ratio" json:"noise_ratio,omitempty" jsonschema:"Per-item omission probability in [0,1)"`
}

// Config is the full generation configuration (§external interface): the
// immutable input of one generation run.
type Config struct {
	NumTransactions int                `yaml:"num_transactions" json:"num_transactions" jsonschema:"Number of transactions to generate"`
	NumItems        int                `yaml:"num_items" json:"num_items" jsonschema:"Size of the item universe"`
	Distribution    DistributionConfig `yaml:"distribution" json:"distribution"`
	// AvgTransactionLen drives a truncated-Poisson length sampler. When zero,
	// the density rule applies instead.
	AvgTransactionLen int `yaml:"avg_transaction_len" json:"avg_transaction_len,omitempty" jsonschema:"Average transaction length, 1..num_items"`
	// Density is the fallback fixed-length rule: length = round(density *
	// num_items), at least 1. Defaults to 0.1 when unset.
	Density  float64       `yaml:"density" json:"density,omitempty" jsonschema:"Fallback dataset density in (0,1], default 0.1"`
	Patterns []PatternSpec `yaml:"pattern_injection" json:"pattern_injection,omitempty" jsonschema:"Ground-truth patterns to embed"`
	// Seed makes the whole run reproducible. Zero selects the default seed.
	Seed int64 `yaml:"seed" json:"seed,omitempty" jsonschema:"Random seed; 0 selects the default"`
	// Workers parallelizes baseline sampling. Output is byte-identical for
	// any worker count; zero or one means sequential.
	Workers int `yaml:"workers" json:"workers,omitempty" jsonschema:"Parallel sampling workers; output is independent of this value"`
}

// DefaultSeed is used when the configuration leaves the seed unset.
const DefaultSeed = 42

// DefaultDensity is the fallback density when neither avg_transaction_len nor
// density is configured.
const DefaultDensity = 0.1

// SeedOrDefault resolves the effective seed of the run.
func (c *Config) SeedOrDefault() uint64 {
	if c.Seed == 0 {
		return DefaultSeed
	}
	return uint64(c.Seed)
}

// HostCount returns k, the number of host transactions a pattern must claim
// to realize its target support.
func (c *Config) HostCount(p PatternSpec) int {
	return int(math.Round(p.TargetSupport * float64(c.NumTransactions)))
}

// Validate performs the eager configuration checks. It also normalizes the
// config in place: empty pattern ids are assigned ("pattern_1", ...) so the
// ground-truth bookkeeping always has a key.
//
// Cumulative host demand across patterns is deliberately NOT checked here:
// whether the unclaimed pool suffices depends on the injection order, and the
// injector reports the exhaustion as an InjectionConflictError naming the
// pattern that could not be placed.
func (c *Config) Validate() error {
	if c.NumTransactions <= 0 {
		return configErrorf("num_transactions", "must be > 0, got %d", c.NumTransactions)
	}
	if c.NumItems <= 0 {
		return configErrorf("num_items", "must be > 0, got %d", c.NumItems)
	}
	if _, err := BuildWeights(c.Distribution.Method, c.Distribution.Params, c.NumItems); err != nil {
		return err
	}
	if c.AvgTransactionLen != 0 && (c.AvgTransactionLen < 1 || c.AvgTransactionLen > c.NumItems) {
		return configErrorf("avg_transaction_len", "must be in [1,%d], got %d", c.NumItems, c.AvgTransactionLen)
	}
	if c.Density != 0 && (c.Density < 0 || c.Density > 1) {
		return configErrorf("density", "must be in (0,1], got %g", c.Density)
	}
	if c.Workers < 0 {
		return configErrorf("workers", "must be >= 0, got %d", c.Workers)
	}

	seen := make(map[string]struct{}, len(c.Patterns))
	for i := range c.Patterns {
		p := &c.Patterns[i]
		field := fmt.Sprintf("pattern_injection[%d]", i)
		if p.ID == "" {
			p.ID = fmt.Sprintf("pattern_%d", i+1)
		}
		if _, dup := seen[p.ID]; dup {
			return configErrorf(field, "duplicate pattern id %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		if len(p.Items) < 2 {
			return configErrorf(field, "needs at least 2 items, got %d", len(p.Items))
		}
		itemSeen := make(map[int]struct{}, len(p.Items))
		for _, item := range p.Items {
			if item < 0 || item >= c.NumItems {
				return configErrorf(field, "item %d out of range [0,%d)", item, c.NumItems)
			}
			if _, dup := itemSeen[item]; dup {
				return configErrorf(field, "duplicate item %d", item)
			}
			itemSeen[item] = struct{}{}
		}
		if p.TargetSupport <= 0 || p.TargetSupport > 1 {
			return configErrorf(field, "target_support must be in (0,1], got %g", p.TargetSupport)
		}
		if p.NoiseRatio < 0 || p.NoiseRatio >= 1 {
			return configErrorf(field, "noise_ratio must be in [0,1), got %g", p.NoiseRatio)
		}

		if k := c.HostCount(*p); k == 0 {
			return configErrorf(field, "target_support %g rounds to 0 hosts for %d transactions", p.TargetSupport, c.NumTransactions)
		} else if k > c.NumTransactions {
			return configErrorf(field, "target_support %g needs %d hosts, dataset has %d transactions", p.TargetSupport, k, c.NumTransactions)
		}
	}
	return nil
}

// SortedItems returns the pattern's items in ascending order without
// mutating the original slice.
func (p PatternSpec) SortedItems() []int {
	items := make([]int, len(p.Items))
	copy(items, p.Items)
	sort.Ints(items)
	return items
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Resolved
	schemaErr  error
)

func configSchema() (*jsonschema.Resolved, error) {
	schemaOnce.Do(func() {
		s, err := jsonschema.For[Config](nil)
		if err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = s.Resolve(nil)
	})
	return schema, schemaErr
}

// ParseJSON decodes and validates a JSON configuration object. The raw value
// is first checked against the generated JSON schema, so structurally garbled
// input (the usual failure mode of LLM-produced configs) surfaces as a
// ConfigError instead of a zero-valued struct downstream.
func ParseJSON(data []byte) (*Config, error) {
	res, err := configSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build config schema: %w", err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := res.Validate(raw); err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("schema validation failed: %v", err)}
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseYAML decodes and validates a YAML configuration.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("invalid YAML: %v", err)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads a configuration file, dispatching on extension: .json is
// schema-validated JSON, everything else is treated as YAML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}
