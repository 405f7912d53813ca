package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// buildRootCmdWith constructs the Cobra command tree wired to the fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "hleval",
		Short:         "Batch evaluation driver for highlight-detection checkpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> Config
	root.PersistentFlags().String("config", cfg.ConfigPath, "Config file: yaml|json|toml (defaults HLEVAL_CONFIG)")
	root.PersistentFlags().String("status-addr", cfg.StatusAddr, "Serve batch status/metrics on this address (defaults HLEVAL_STATUS_ADDR)")
	root.PersistentFlags().String("log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults HLEVAL_LOG_LEVEL or info)")
	root.PersistentFlags().Bool("fail-fast", cfg.FailFast, "Stop the batch at the first failing invocation")
	root.PersistentFlags().Bool("summary", cfg.Summary, "Print per-checkpoint outcomes after the batch")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.InheritedFlags().Lookup("config"); f != nil {
			if v := f.Value.String(); v != "" { cfg.ConfigPath = v }
		}
		if f := cmd.InheritedFlags().Lookup("status-addr"); f != nil {
			if v := f.Value.String(); v != "" { cfg.StatusAddr = v }
		}
		if f := cmd.InheritedFlags().Lookup("log-level"); f != nil {
			if v := f.Value.String(); v != "" { cfg.LogLvl = v }
		}
		if f := cmd.InheritedFlags().Lookup("fail-fast"); f != nil {
			cfg.FailFast = f.Value.String() == "true"
		}
		if f := cmd.InheritedFlags().Lookup("summary"); f != nil {
			cfg.Summary = f.Value.String() == "true"
		}
	}

	// run: cobra flag parsing is disabled so pass-through tokens after the
	// split reach the inference command unchanged, flags included. Driver
	// flags may still precede the split; flag.FlagSet stops at the first
	// non-flag token, which is exactly the contract.
	runCmd := &cobra.Command{
		Use:                "run [driver flags] <split> [pass-through args...]",
		Short:              "Evaluate every configured checkpoint on a dataset split",
		Example:            "  hleval run val\n  hleval run --fail-fast test --nms_thd 0.7 --no_sort_results",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// help is handled manually since flag parsing is off
			if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
				return cmd.Help()
			}
			runCfg, rest := ParseConfigWith(flag.NewFlagSet("run", flag.ContinueOnError), args)
			return fnRunBatch(runCfg, rest)
		},
	}
	root.AddCommand(runCmd)

	checkpointsCmd := &cobra.Command{
		Use:     "checkpoints [dir]",
		Short:   "List checkpoints found in a results directory",
		Example: "  hleval checkpoints\n  hleval checkpoints results",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 { dir = args[0] }
			return fnListCheckpoints(cfg, dir)
		},
	}
	root.AddCommand(checkpointsCmd)

	inspectCmd := &cobra.Command{
		Use:     "inspect <split>",
		Short:   "Preflight the evaluation-data file for a split",
		Example: "  hleval inspect val",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnInspectDataset(cfg, args[0])
		},
	}
	root.AddCommand(inspectCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(os.Stdout) }})
	root.AddCommand(completionCmd)

	root.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return fmt.Errorf("unknown command: %s", args[0])
	}

	return root
}
