package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"hleval/internal/config"
	"hleval/internal/dataset"
	"hleval/internal/runner"
)

// inspectDataset preflights the evaluation-data file a batch on this split
// would hand to the inference command.
func inspectDataset(cfg *Config, split string) error {
	if strings.TrimSpace(split) == "" {
		return runner.ErrMissingSplit()
	}
	log := newLogger(cfg.LogLvl)
	path := runner.EvalDataPath(split)
	if cfg.ConfigPath != "" {
		fileCfg, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		// data_dir relocates the file for inspection only; the batch
		// always hands the inference command the derived path
		if fileCfg.DataDir != "" {
			path = filepath.Join(fileCfg.DataDir, filepath.Base(path))
		}
	}
	records, rep, err := dataset.ReadFile(path)
	if err != nil {
		return err
	}
	var totalDur float64
	for _, r := range records {
		totalDur += r.Duration
	}
	fmt.Printf("%s: %d example(s), %d malformed line(s), %.0fs of video\n", path, rep.Records, rep.Malformed, totalDur)
	if rep.Malformed > 0 {
		log.Warn().Ints("lines", rep.BadLines).Msg("undecodable eval-data lines")
	}
	return nil
}
