package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nresta/itembench/pkg/bench"
	"github.com/nresta/itembench/pkg/dataset"
	"github.com/nresta/itembench/pkg/gen"
)

// Service implements the tool handlers. It is stateless: every call works on
// files, so concurrent tool invocations do not interfere.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// --- Tool Handlers ---

func (s *Service) GenerateDataset(ctx context.Context, req *mcp.CallToolRequest, args GenerateArgs) (*mcp.CallToolResult, GenerateResult, error) {
	if args.OutputPath == "" {
		return nil, GenerateResult{}, fmt.Errorf("output_path is required")
	}
	sidecar := args.SidecarPath
	if sidecar == "" {
		sidecar = args.OutputPath + ".groundtruth.json"
	}

	// 1. Build & run the generator (validation happens inside New)
	cfg := args.Config
	g, err := gen.New(&cfg)
	if err != nil {
		return nil, GenerateResult{}, err
	}
	res, err := g.Generate()
	if err != nil {
		return nil, GenerateResult{}, err
	}

	// 2. Persist dataset + sidecar
	if err := dataset.WriteFile(args.OutputPath, res.Dataset); err != nil {
		return nil, GenerateResult{}, err
	}
	if err := res.GroundTruth.WriteFile(sidecar); err != nil {
		return nil, GenerateResult{}, err
	}

	// 3. Summarize for the client
	out := GenerateResult{
		RunID:       res.GroundTruth.RunID,
		OutputPath:  args.OutputPath,
		SidecarPath: sidecar,
		Stats:       res.Dataset.ComputeStats(),
	}
	for _, p := range cfg.Patterns {
		out.Patterns = append(out.Patterns, PatternOutcome{
			ID:              p.ID,
			Items:           p.SortedItems(),
			TargetSupport:   p.TargetSupport,
			RealizedSupport: res.Dataset.Support(p.Items),
		})
	}
	return nil, out, nil
}

func (s *Service) DatasetStats(ctx context.Context, req *mcp.CallToolRequest, args StatsArgs) (*mcp.CallToolResult, StatsResult, error) {
	d, err := dataset.ReadFile(args.Path, 0)
	if err != nil {
		return nil, StatsResult{}, err
	}
	return nil, StatsResult{Stats: d.ComputeStats()}, nil
}

func (s *Service) ValidateResults(ctx context.Context, req *mcp.CallToolRequest, args ValidateArgs) (*mcp.CallToolResult, ValidateResult, error) {
	d, err := dataset.ReadFile(args.DatasetPath, 0)
	if err != nil {
		return nil, ValidateResult{}, err
	}
	mined, _, err := bench.ParseResultFile(args.MinedPath)
	if err != nil {
		return nil, ValidateResult{}, err
	}

	// The sidecar is optional: without it the validator falls back to
	// support-proximity matching and flags the reports.
	var patterns []gen.PatternSpec
	var hosts map[string][]int
	if args.SidecarPath != "" {
		gt, err := gen.ReadGroundTruth(args.SidecarPath)
		if err != nil {
			return nil, ValidateResult{}, err
		}
		patterns = gt.Config.Patterns
		hosts = gt.Hosts
	}

	v := bench.NewValidator(args.Tolerance)
	v.Dataset = d
	summary := v.Validate(mined, patterns, hosts, d.Len())
	return nil, ValidateResult{Summary: summary}, nil
}
