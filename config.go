// config.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// --- Batch Configuration ---
// A batch file converts many drawings in one run:
//
//	[[convert]]
//	input = "designs/login.svg"
//	output = "out/LoginWindow.axaml"
//	worksheets = ["styles/base.xml", "styles/login.xml"]

// ConvertJob is one input/output pair with optional worksheets.
type ConvertJob struct {
	Input      string   `toml:"input"`
	Output     string   `toml:"output"`
	Worksheets []string `toml:"worksheets"`
}

// BatchConfig is the top-level batch file layout.
type BatchConfig struct {
	Convert []ConvertJob `toml:"convert"`
}

// LoadBatchConfig reads and validates a batch file. Relative job paths
// resolve against the batch file's directory, so a batch file can live next
// to its drawings.
func LoadBatchConfig(path string) (*BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file '%s': %w", path, err)
	}
	var cfg BatchConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse batch file '%s': %w", path, err)
	}
	if len(cfg.Convert) == 0 {
		return nil, fmt.Errorf("batch file '%s' defines no [[convert]] jobs", path)
	}

	base := filepath.Dir(path)
	for i := range cfg.Convert {
		job := &cfg.Convert[i]
		if job.Input == "" {
			return nil, fmt.Errorf("batch job %d is missing 'input'", i+1)
		}
		if job.Output == "" {
			return nil, fmt.Errorf("batch job %d is missing 'output'", i+1)
		}
		job.Input = resolveJobPath(base, job.Input)
		job.Output = resolveJobPath(base, job.Output)
		for j, ws := range job.Worksheets {
			job.Worksheets[j] = resolveJobPath(base, ws)
		}
	}
	return &cfg, nil
}

func resolveJobPath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
