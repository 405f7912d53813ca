package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the batch driver.
// Zero values mean "unspecified" and will be replaced by defaults in the CLI.
type Config struct {
	// InferBin is the external inference program, e.g. "python".
	InferBin string `json:"infer_bin" yaml:"infer_bin" toml:"infer_bin"`
	// InferArgs are tokens placed before the driver-supplied flags,
	// e.g. the inference entry script.
	InferArgs []string `json:"infer_args" yaml:"infer_args" toml:"infer_args"`
	// DataDir is the directory holding the evaluation JSONL files.
	DataDir string `json:"data_dir" yaml:"data_dir" toml:"data_dir"`
	// ResultsDir is scanned for experiment checkpoints.
	ResultsDir string `json:"results_dir" yaml:"results_dir" toml:"results_dir"`
	// Checkpoints overrides the built-in checkpoint list when non-empty.
	Checkpoints []string `json:"checkpoints" yaml:"checkpoints" toml:"checkpoints"`
	// StatusAddr enables the status/metrics HTTP server when non-empty.
	StatusAddr string `json:"status_addr" yaml:"status_addr" toml:"status_addr"`
	// FailFast stops the batch at the first failing invocation.
	FailFast bool `json:"fail_fast" yaml:"fail_fast" toml:"fail_fast"`
	// Summary prints a per-checkpoint outcome table after the batch.
	Summary bool `json:"summary" yaml:"summary" toml:"summary"`
	// LogLevel is one of debug|info|warn|error.
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
