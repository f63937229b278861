package gen

import (
	"errors"
	"testing"
)

func TestParseYAML(t *testing.T) {
	data := []byte(`
num_transactions: 1000
num_items: 100
distribution:
  method: zipf
  params:
    alpha: 1.2
avg_transaction_len: 10
pattern_injection:
  - items: [5, 10, 15]
    target_support: 0.08
    noise_ratio: 0.05
seed: 42
`)
	cfg, err := ParseYAML(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NumTransactions != 1000 || cfg.NumItems != 100 {
		t.Fatalf("bad dimensions: %+v", cfg)
	}
	if cfg.Distribution.Params["alpha"] != 1.2 {
		t.Errorf("alpha not parsed: %+v", cfg.Distribution)
	}
	// Validate assigns ids to anonymous patterns
	if cfg.Patterns[0].ID != "pattern_1" {
		t.Errorf("expected auto id pattern_1, got %q", cfg.Patterns[0].ID)
	}
}

func TestParseJSONSchemaRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{num_transactions: 1000`},
		{"missing required fields", `{"num_items": 10}`},
		{"wrong type", `{"num_transactions": "many", "num_items": 10, "distribution": {"method": "uniform"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tc.data))
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
		})
	}
}

func TestParseJSONValid(t *testing.T) {
	data := []byte(`{
		"num_transactions": 500,
		"num_items": 20,
		"distribution": {"method": "uniform"},
		"pattern_injection": [
			{"id": "combo", "items": [1, 2], "target_support": 0.1}
		]
	}`)
	cfg, err := ParseJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Patterns[0].ID != "combo" {
		t.Errorf("pattern id lost: %+v", cfg.Patterns)
	}
}

func TestValidateErrors(t *testing.T) {
	base := func() *Config {
		return &Config{
			NumTransactions: 100,
			NumItems:        10,
			Distribution:    DistributionConfig{Method: "uniform"},
		}
	}
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-positive transactions", func(c *Config) { c.NumTransactions = 0 }},
		{"non-positive items", func(c *Config) { c.NumItems = -1 }},
		{"bad method", func(c *Config) { c.Distribution.Method = "fancy" }},
		{"avg len too large", func(c *Config) { c.AvgTransactionLen = 11 }},
		{"density above one", func(c *Config) { c.Density = 1.5 }},
		{"pattern too small", func(c *Config) {
			c.Patterns = []PatternSpec{{Items: []int{1}, TargetSupport: 0.5}}
		}},
		{"pattern item out of range", func(c *Config) {
			c.Patterns = []PatternSpec{{Items: []int{1, 10}, TargetSupport: 0.5}}
		}},
		{"pattern duplicate item", func(c *Config) {
			c.Patterns = []PatternSpec{{Items: []int{1, 1}, TargetSupport: 0.5}}
		}},
		{"support zero", func(c *Config) {
			c.Patterns = []PatternSpec{{Items: []int{1, 2}, TargetSupport: 0}}
		}},
		{"support above one", func(c *Config) {
			c.Patterns = []PatternSpec{{Items: []int{1, 2}, TargetSupport: 1.5}}
		}},
		{"noise at one", func(c *Config) {
			c.Patterns = []PatternSpec{{Items: []int{1, 2}, TargetSupport: 0.5, NoiseRatio: 1}}
		}},
		{"support rounds to zero hosts", func(c *Config) {
			c.Patterns = []PatternSpec{{Items: []int{1, 2}, TargetSupport: 0.001}}
		}},
		{"duplicate pattern id", func(c *Config) {
			c.Patterns = []PatternSpec{
				{ID: "p", Items: []int{1, 2}, TargetSupport: 0.5},
				{ID: "p", Items: []int{3, 4}, TargetSupport: 0.5},
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
		})
	}
}

func TestSeedOrDefault(t *testing.T) {
	c := &Config{}
	if c.SeedOrDefault() != DefaultSeed {
		t.Errorf("expected default seed %d", DefaultSeed)
	}
	c.Seed = 7
	if c.SeedOrDefault() != 7 {
		t.Error("explicit seed ignored")
	}
}
