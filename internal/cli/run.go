package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hleval/internal/config"
	"hleval/internal/httpapi"
	"hleval/internal/runner"
	"hleval/pkg/types"
)

// Defaults applied when the config file leaves the inference command unset.
const (
	defaultInferBin = "python"
)

var defaultInferArgs = []string{"qd_detr/inference.py"}

// runBatch is the core driver: args[0] is the split name, everything after it
// is forwarded verbatim to each inference invocation. A missing split is
// tolerated and produces the empty-split eval path.
func runBatch(cfg *Config, args []string) error {
	split := ""
	var passThrough []string
	if len(args) > 0 {
		split = args[0]
		passThrough = args[1:]
	}

	log := newLogger(cfg.LogLvl)

	fileCfg := config.Config{}
	if cfg.ConfigPath != "" {
		var err error
		fileCfg, err = config.Load(cfg.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	inferBin := fileCfg.InferBin
	if inferBin == "" {
		inferBin = defaultInferBin
	}
	inferArgs := fileCfg.InferArgs
	if len(inferArgs) == 0 {
		inferArgs = defaultInferArgs
	}
	checkpoints := fileCfg.Checkpoints
	if len(checkpoints) == 0 {
		checkpoints = runner.DefaultCheckpoints
	}
	failFast := cfg.FailFast || fileCfg.FailFast
	summary := cfg.Summary || fileCfg.Summary
	statusAddr := cfg.StatusAddr
	if statusAddr == "" {
		statusAddr = fileCfg.StatusAddr
	}

	pm := runner.NewProcManager()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer pm.KillAll()

	batch := &runner.Batch{
		Split:       split,
		Checkpoints: checkpoints,
		PassThrough: passThrough,
		InferBin:    inferBin,
		InferArgs:   inferArgs,
		FailFast:    failFast,
		Runner:      runner.ExecRunner{Procs: pm},
		Log:         &log,
	}

	if statusAddr != "" {
		httpapi.SetLogger(log)
		srv := &http.Server{Addr: statusAddr, Handler: httpapi.NewMux(batch)}
		go func() {
			log.Info().Str("addr", statusAddr).Msg("status server listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("status server error")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	log.Info().Str("split", split).Int("checkpoints", len(checkpoints)).Msg("batch start")
	err := batch.Run(ctx)
	if summary {
		printSummary(batch.Status())
	}
	if err != nil {
		log.Warn().Err(err).Msg("batch finished with failing last invocation")
		return err
	}
	log.Info().Msg("batch done")
	return nil
}

// printSummary writes the opt-in per-checkpoint outcome table to stderr so it
// never mixes with the stdout contract lines.
func printSummary(st types.BatchStatus) {
	fmt.Fprintf(os.Stderr, "split=%s eval_path=%s completed=%d/%d\n", st.Split, st.EvalPath, st.Completed, st.Total)
	for _, inv := range st.Invocations {
		line := fmt.Sprintf("%-6s %8.1fs  %s", inv.State, inv.DurationSeconds, inv.Checkpoint)
		if inv.Error != "" {
			line += "  (" + inv.Error + ")"
		}
		fmt.Fprintln(os.Stderr, line)
	}
}
