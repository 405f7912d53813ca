package cli

import (
	"fmt"

	"hleval/internal/config"
	"hleval/internal/registry"
)

const defaultResultsDir = "results"

// listCheckpoints scans a results directory and prints what a batch over it
// would evaluate, in order.
func listCheckpoints(cfg *Config, dir string) error {
	if dir == "" && cfg.ConfigPath != "" {
		fileCfg, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		dir = fileCfg.ResultsDir
	}
	if dir == "" {
		dir = defaultResultsDir
	}
	ckpts, err := registry.Scan(dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	for _, c := range ckpts {
		fmt.Printf("%s\t%s\n", c.ID, c.Path)
	}
	fmt.Printf("%d checkpoint(s) in %s\n", len(ckpts), dir)
	return nil
}
