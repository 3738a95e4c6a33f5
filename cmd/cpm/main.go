package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/config"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/ctxlog"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/ui"
)

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
	flagStoreDir  string
	flagJSON      bool
)

// cfg is the effective configuration: the config file with flags applied.
var cfg = config.Default()

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.BoldRed("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cpm",
		Short: "Critical path scheduling for activity networks",
		Long: `cpm reads a network of activities with durations and predecessors,
computes earliest and latest start and finish times with the critical path
method, reports the slack of every activity and the critical path, and can
render the network as Graphviz DOT or serve it over HTTP.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default cpm.toml if present)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&flagStoreDir, "store-dir", "", "Directory of the run archive")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(dotCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(initCmd())

	return rootCmd
}

// setup loads the config file, applies global flag overrides and installs
// the logger in the command context.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = flagLogFormat
	}
	if flags.Changed("store-dir") {
		cfg.Store.Dir = flagStoreDir
	}

	logger := config.NewLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	logger.Debug("Configuration loaded.", "config", flagConfig, "store", cfg.Store.Dir)
	return nil
}

func initCmd() *cobra.Command {
	var flagForce bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to cpm.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			if path == "" {
				path = config.DefaultFile
			}
			if _, err := os.Stat(path); err == nil && !flagForce {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("%s Wrote %s\n", ui.Green("✓"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config file")
	return cmd
}

func outputJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
