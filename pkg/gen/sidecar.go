package gen

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// GroundTruth is the sidecar artifact written next to a generated dataset:
// the original configuration plus the realized host-index map per pattern.
// It is what allows exact validation later; without it the validator can
// only fall back to support-proximity matching.
type GroundTruth struct {
	RunID     string           `json:"run_id"`
	CreatedAt time.Time        `json:"created_at"`
	Config    *Config          `json:"config"`
	Hosts     map[string][]int `json:"host_indices"`
}

// NewGroundTruth starts empty bookkeeping for one run.
func NewGroundTruth(cfg *Config) *GroundTruth {
	return &GroundTruth{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
		Hosts:     make(map[string][]int, len(cfg.Patterns)),
	}
}

// WriteFile persists the sidecar as indented JSON.
func (gt *GroundTruth) WriteFile(path string) error {
	data, err := json.MarshalIndent(gt, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ground truth: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write ground truth: %w", err)
	}
	return nil
}

// ReadGroundTruth loads a sidecar written by a previous run.
func ReadGroundTruth(path string) (*GroundTruth, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ground truth: %w", err)
	}
	var gt GroundTruth
	if err := json.Unmarshal(data, &gt); err != nil {
		return nil, fmt.Errorf("failed to decode ground truth: %w", err)
	}
	return &gt, nil
}
