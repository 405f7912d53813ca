package cli

import (
	"flag"
	"fmt"
	"os"
)

// Config carries CLI-level settings shared by all commands. File-backed
// settings (checkpoint list, inference command) live in internal/config.
type Config struct {
	ConfigPath string
	StatusAddr string
	LogLvl     string
	FailFast   bool
	Summary    bool
}

func usage() {
	fmt.Println("Usage: hleval [--config file] [--status-addr :9090] [--log-level info] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run <split> [pass-through args...]   evaluate every checkpoint on a split")
	fmt.Println("  checkpoints [dir]                    list checkpoints found in a results dir")
	fmt.Println("  inspect <split>                      preflight the evaluation-data file")
}

// Run dispatches the CLI command. It returns an error instead of exiting,
// enabling reuse from other packages or tests.
func Run(args []string, cfg *Config) error {
	switch args[0] {
	case "run":
		// everything after the split is forwarded verbatim
		return fnRunBatch(cfg, args[1:])
	case "checkpoints":
		dir := ""
		if len(args) > 1 {
			dir = args[1]
		}
		return fnListCheckpoints(cfg, dir)
	case "inspect":
		if len(args) < 2 {
			return fmt.Errorf("inspect requires a split name, e.g. val")
		}
		return fnInspectDataset(cfg, args[1])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// ParseConfig parses os.Args with the default FlagSet.
func ParseConfig() (*Config, []string) {
	return ParseConfigWith(flag.CommandLine, os.Args[1:])
}

// ParseConfigWith parses flags using the provided FlagSet and args slice.
// This enables tests to inject their own FlagSet and arguments without
// mutating global state.
func ParseConfigWith(fs *flag.FlagSet, args []string) (*Config, []string) {
	cfg := &Config{}
	if fs.Lookup("config") == nil {
		fs.String("config", envStr("HLEVAL_CONFIG", ""), "Config file (yaml|json|toml)")
	}
	if fs.Lookup("status-addr") == nil {
		fs.String("status-addr", envStr("HLEVAL_STATUS_ADDR", ""), "Serve batch status/metrics on this address while running")
	}
	if fs.Lookup("log-level") == nil {
		fs.String("log-level", envStr("HLEVAL_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	}
	if fs.Lookup("fail-fast") == nil {
		fs.Bool("fail-fast", envBool("HLEVAL_FAIL_FAST", false), "Stop the batch at the first failing invocation")
	}
	if fs.Lookup("summary") == nil {
		fs.Bool("summary", envBool("HLEVAL_SUMMARY", false), "Print per-checkpoint outcomes after the batch")
	}
	_ = fs.Parse(args)
	cfg.ConfigPath = envStr("HLEVAL_CONFIG", "")
	if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
		cfg.ConfigPath = f.Value.String()
	}
	cfg.StatusAddr = envStr("HLEVAL_STATUS_ADDR", "")
	if f := fs.Lookup("status-addr"); f != nil && f.Value.String() != "" {
		cfg.StatusAddr = f.Value.String()
	}
	cfg.LogLvl = envStr("HLEVAL_LOG_LEVEL", "info")
	if f := fs.Lookup("log-level"); f != nil && f.Value.String() != "" {
		cfg.LogLvl = f.Value.String()
	}
	if f := fs.Lookup("fail-fast"); f != nil {
		cfg.FailFast = f.Value.String() == "true"
	}
	if f := fs.Lookup("summary"); f != nil {
		cfg.Summary = f.Value.String() == "true"
	}
	return cfg, fs.Args()
}

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code (0 for success, non-zero on error).
func MainWithArgs(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}
	// only the leading token may ask for help: later tokens can be
	// pass-through arguments that must reach the inference command
	if a := args[0]; a == "-h" || a == "--help" || a == "help" {
		usage()
		return 0
	}
	root := buildRootCmdWith(&Config{
		ConfigPath: envStr("HLEVAL_CONFIG", ""),
		StatusAddr: envStr("HLEVAL_STATUS_ADDR", ""),
		LogLvl:     envStr("HLEVAL_LOG_LEVEL", "info"),
		FailFast:   envBool("HLEVAL_FAIL_FAST", false),
		Summary:    envBool("HLEVAL_SUMMARY", false),
	})
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// Main returns an exit code (0 for success, non-zero on error) for use by cmd/hleval.
func Main() int { return MainWithArgs(os.Args[1:]) }
