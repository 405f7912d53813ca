package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hleval/pkg/types"
)

// checkpointName is the file each experiment directory is expected to hold.
const checkpointName = "model_best.ckpt"

// Scan walks a results directory for experiment subdirectories containing a
// model_best.ckpt and builds an ordered checkpoint list from them.
// ID is the experiment directory name; Path keeps the directory prefix so the
// value can be handed to the inference command as-is. Entries are sorted by
// ID, which for timestamped experiment names yields chronological order.
func Scan(dir string) ([]types.Checkpoint, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var ckpts []types.Checkpoint
	for _, e := range entries {
		if !e.IsDir() { continue }
		p := filepath.Join(base, e.Name(), checkpointName)
		if _, err := os.Stat(p); err != nil { continue }
		ckpts = append(ckpts, types.Checkpoint{ID: e.Name(), Path: p})
	}
	sort.Slice(ckpts, func(i, j int) bool { return ckpts[i].ID < ckpts[j].ID })
	return ckpts, nil
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" { return path, nil }
	if path[0] != '~' { return path, nil }
	home, err := os.UserHomeDir()
	if err != nil { return "", fmt.Errorf("home dir: %w", err) }
	if path == "~" { return home, nil }
	// handle cases like ~/experiments/results
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
