package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer builds the MCP tool surface of the generator. The client on
// the other side is typically an LLM: it owns the natural-language
// understanding and calls these tools with the structured configuration
// object.
func NewMCPServer(version string) *mcp.Server {
	service := NewService()

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "ItemBench Generator",
		Version: version,
	}, nil)

	// Register Tools using the Generic AddTool which inspects structs!

	mcp.AddTool(s, &mcp.Tool{
		Name:        "generate_dataset",
		Description: "Generate a synthetic transactional dataset (SPMF format) with embedded ground-truth patterns, from a structured configuration object.",
	}, service.GenerateDataset)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "dataset_stats",
		Description: "Compute summary statistics (density, transaction lengths, item frequencies) for an existing SPMF dataset file.",
	}, service.DatasetStats)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "validate_results",
		Description: "Score a mining tool's output file against the ground-truth patterns embedded in a generated dataset (recall, precision, per-pattern support).",
	}, service.ValidateResults)

	return s
}
