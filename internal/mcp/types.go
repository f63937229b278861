package mcp

import (
	"github.com/nresta/itembench/pkg/bench"
	"github.com/nresta/itembench/pkg/dataset"
	"github.com/nresta/itembench/pkg/gen"
)

// --- Tool Arguments ---

// GenerateArgs carries the full generation configuration plus output paths.
// The config object is exactly the one an LLM client is expected to derive
// from a natural-language dataset description.
type GenerateArgs struct {
	Config      gen.Config `json:"config" jsonschema:"The full generation configuration object,required"`
	OutputPath  string     `json:"output_path" jsonschema:"Where to write the SPMF dataset file,required"`
	SidecarPath string     `json:"sidecar_path,omitempty" jsonschema:"Where to write the ground-truth sidecar JSON. Defaults to <output_path>.groundtruth.json"`
}

type GenerateResult struct {
	RunID       string           `json:"run_id"`
	OutputPath  string           `json:"output_path"`
	SidecarPath string           `json:"sidecar_path"`
	Stats       dataset.Stats    `json:"stats"`
	Patterns    []PatternOutcome `json:"patterns,omitempty"`
}

// PatternOutcome summarizes one injected pattern right after generation.
type PatternOutcome struct {
	ID              string  `json:"id"`
	Items           []int   `json:"items"`
	TargetSupport   float64 `json:"target_support"`
	RealizedSupport float64 `json:"realized_support"`
}

type StatsArgs struct {
	Path string `json:"path" jsonschema:"Path of an SPMF dataset file,required"`
}

type StatsResult struct {
	Stats dataset.Stats `json:"stats"`
}

type ValidateArgs struct {
	DatasetPath string  `json:"dataset_path" jsonschema:"Path of the generated SPMF dataset,required"`
	SidecarPath string  `json:"sidecar_path,omitempty" jsonschema:"Ground-truth sidecar JSON; without it validation degrades to support-proximity matching"`
	MinedPath   string  `json:"mined_path" jsonschema:"Path of the SPMF miner output file to score,required"`
	Tolerance   float64 `json:"tolerance,omitempty" jsonschema:"Absolute support tolerance (default 0.02)"`
}

type ValidateResult struct {
	Summary *bench.Summary `json:"summary"`
}
