package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatchRun binds one input file and policy to one trace output file.
type BatchRun struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Policy string `yaml:"policy"`
}

// BatchConfig is the full batch-run YAML structure.
type BatchConfig struct {
	Runs []BatchRun `yaml:"runs"`
}

// loadBatchConfig parses a batch-run YAML file with strict field checking,
// so typos in keys fail loudly instead of silently running defaults.
func loadBatchConfig(path string) (BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BatchConfig{}, err
	}

	var cfg BatchConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return BatchConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(cfg.Runs) == 0 {
		return BatchConfig{}, fmt.Errorf("%s: no runs configured", path)
	}
	return cfg, nil
}

// defaultBatchConfig mirrors the classic sample setup: each policy bound to
// its own input and results file.
func defaultBatchConfig() BatchConfig {
	return BatchConfig{Runs: []BatchRun{
		{Input: "fcfs.txt", Output: "fcfs_results.txt", Policy: "fcfs"},
		{Input: "sjf.txt", Output: "sjf_results.txt", Policy: "sjf"},
		{Input: "srtf.txt", Output: "srtf_results.txt", Policy: "srtf"},
	}}
}
