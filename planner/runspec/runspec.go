// Package runspec loads YAML run specifications: everything one planning run
// needs, in a file instead of positional arguments.
package runspec

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/genoplan/genoplan/planner"
	"github.com/genoplan/genoplan/planner/trace"
)

// RunSpec is the top-level run configuration.
// Loaded from YAML via LoadRunSpec(path).
type RunSpec struct {
	Version     string            `yaml:"version"`
	Strategy    string            `yaml:"strategy"` // "dp" (default) or "greedy"
	MaxBlockLen int               `yaml:"max_block_len"`
	Cost        planner.CostModel `yaml:"cost"`
	Target      string            `yaml:"target"`
	Sources     []string          `yaml:"sources"` // index files; more than one takes the union fallback
	Threads     int               `yaml:"threads,omitempty"`
	Trace       string            `yaml:"trace,omitempty"`
	BlocksOut   string            `yaml:"blocks_out,omitempty"`
}

var validVersions = map[string]bool{"": true, "1": true}

// LoadRunSpec reads and parses a YAML run specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadRunSpec(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run spec: %w", err)
	}
	var spec RunSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing run spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *RunSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unsupported version %q; valid: 1", s.Version)
	}
	if _, err := planner.ParseStrategy(s.Strategy); err != nil {
		return err
	}
	if s.MaxBlockLen < 1 {
		return fmt.Errorf("max_block_len must be at least 1, got %d", s.MaxBlockLen)
	}
	if err := s.Cost.Validate(); err != nil {
		return fmt.Errorf("cost: %w", err)
	}
	if s.Target == "" {
		return fmt.Errorf("target path required")
	}
	if len(s.Sources) == 0 {
		return fmt.Errorf("at least one source index required")
	}
	for i, src := range s.Sources {
		if src == "" {
			return fmt.Errorf("sources[%d]: empty path", i)
		}
	}
	if s.Threads < 0 {
		return fmt.Errorf("threads must be non-negative, got %d", s.Threads)
	}
	if !trace.IsValidTraceLevel(s.Trace) {
		return fmt.Errorf("unknown trace level %q; valid: none, blocks", s.Trace)
	}
	return nil
}

// PlanStrategy returns the parsed strategy. Call Validate first.
func (s *RunSpec) PlanStrategy() planner.Strategy {
	st, _ := planner.ParseStrategy(s.Strategy)
	return st
}
