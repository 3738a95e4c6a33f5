package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/config"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/cpm"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/ctxlog"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/ingest"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/metrics"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/reporter"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/store"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/ui"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/viewer"
)

var (
	flagFormat    string
	flagSelect    string
	flagRoots     []string
	flagTerminals []string
	flagOneBased  bool
	flagTable     bool
	flagSave      bool
	flagAddr      string
)

// addScheduleFlags registers the flags shared by every command that
// schedules an input file.
func addScheduleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFormat, "format", "", "Input format (csv, json; default by extension)")
	cmd.Flags().StringVar(&flagSelect, "select", "", "Critical path selection among ties (duration, count)")
	cmd.Flags().StringSliceVar(&flagRoots, "root", nil, "Activity the forward pass starts from (repeatable)")
	cmd.Flags().StringSliceVar(&flagTerminals, "terminal", nil, "Activity the backward pass is anchored at (repeatable)")
}

// applyScheduleFlags overrides the [schedule] config section with the flags
// set on cmd.
func applyScheduleFlags(cmd *cobra.Command, sc *config.ScheduleConfig) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		sc.Format = flagFormat
	}
	if flags.Changed("select") {
		sc.Select = flagSelect
	}
	if flags.Changed("root") {
		sc.Roots = flagRoots
	}
	if flags.Changed("terminal") {
		sc.Terminals = flagTerminals
	}
	if flags.Changed("one-based") {
		sc.OneBased = flagOneBased
	}
}

// schedule reads path and runs the critical path method over it. Every run
// is recorded in the metrics, failed or not. The network is returned when it
// was built, even if scheduling then failed.
func schedule(ctx context.Context, path string, sc config.ScheduleConfig) (n *network.Network, result *cpm.Result, err error) {
	logger := ctxlog.FromContext(ctx)

	defer func() {
		size := 0
		if n != nil {
			size = n.Len()
		}
		if err != nil {
			metrics.ObserveRun(size, 0, 0, err)
			return
		}
		metrics.ObserveRun(size, result.ProjectDuration, result.CriticalPath.Len(), nil)
	}()

	format, err := ingest.ParseFormat(sc.Format)
	if err != nil {
		return nil, nil, err
	}
	n, err = ingest.Load(path, format)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Network loaded.", "path", path, "activities", n.Len())

	opts, err := buildOptions(n, sc)
	if err != nil {
		return n, nil, err
	}

	result, err = cpm.Analyze(ctx, n, opts)
	if err != nil {
		return n, nil, fmt.Errorf("CPM analysis: %w", err)
	}
	return n, result, nil
}

// buildOptions resolves the configured root and terminal names against n.
func buildOptions(n *network.Network, sc config.ScheduleConfig) (cpm.Options, error) {
	sel, err := cpm.ParseSelection(sc.Select)
	if err != nil {
		return cpm.Options{}, err
	}
	roots, err := resolveNames(n, sc.Roots)
	if err != nil {
		return cpm.Options{}, fmt.Errorf("root: %w", err)
	}
	terminals, err := resolveNames(n, sc.Terminals)
	if err != nil {
		return cpm.Options{}, fmt.Errorf("terminal: %w", err)
	}
	return cpm.Options{Roots: roots, Terminals: terminals, Selection: sel}, nil
}

func resolveNames(n *network.Network, names []string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		a, err := n.Lookup(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule FILE",
		Short: "Compute the schedule and critical path of an activity network",
		Long: `Reads activities from FILE and prints, for every activity, its duration,
predecessors, earliest and latest start and finish, and slack, followed by
the critical path.

FILE is either the semicolon-separated table "name;duration;pred1,pred2"
(one activity per line, predecessors defined before use) or a JSON array of
{"name", "duration", "predecessors"} objects.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc := cfg.Schedule
			applyScheduleFlags(cmd, &sc)

			n, result, err := schedule(ctx, args[0], sc)
			if flagSave {
				archive(ctx, args[0], n, result, err)
			}
			if err != nil {
				return err
			}

			r := reporter.New(n, result, sc.OneBased)
			switch {
			case flagJSON:
				data, err := r.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			case flagTable:
				r.PrintTable(os.Stdout)
			default:
				r.PrintSummary(os.Stdout)
			}
			return nil
		},
	}

	addScheduleFlags(cmd)
	cmd.Flags().BoolVar(&flagOneBased, "one-based", false, "Number time units from 1 when printing start times")
	cmd.Flags().BoolVar(&flagTable, "table", false, "Print a compact table instead of the full summary")
	cmd.Flags().BoolVar(&flagSave, "save", false, "Archive the run in the store")

	return cmd
}

// archive records the run in the store. A run that failed is archived with
// its error whether or not the network could be built. Archive failures are
// logged, never returned: the schedule itself is still valid.
func archive(ctx context.Context, source string, n *network.Network, result *cpm.Result, runErr error) {
	logger := ctxlog.FromContext(ctx)

	s, err := store.Open(cfg.Store.Dir)
	if err != nil {
		logger.Warn("Run not archived.", "error", err)
		return
	}
	defer s.Close()

	var id string
	if runErr != nil {
		id, err = s.SaveFailure(ctx, source, runErr)
	} else {
		id, err = s.SaveRun(ctx, source, n, result)
	}
	if err != nil {
		logger.Warn("Run not archived.", "error", err)
		return
	}
	logger.Info("Run archived.", "run_id", id)
	if runErr == nil && !flagJSON {
		fmt.Printf("%s\n\n", ui.Dim("Saved run "+id))
	}
}

func dotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dot FILE",
		Short: "Print the scheduled network as a Graphviz digraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := cfg.Schedule
			applyScheduleFlags(cmd, &sc)

			n, result, err := schedule(cmd.Context(), args[0], sc)
			if err != nil {
				return err
			}
			return viewer.WriteDOT(os.Stdout, viewer.ToGraph(n, result))
		},
	}

	addScheduleFlags(cmd)
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Serve the scheduled network over HTTP",
		Long: `Schedules FILE once and serves the result as JSON:

  GET /api/graph              nodes, edges and the critical path
  GET /api/graph.dot          the same graph as Graphviz DOT
  GET /api/activities         every activity with its times and slack
  GET /api/activities/{name}  a single activity
  GET /metrics                Prometheus metrics
  GET /healthz                liveness`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := cfg.Schedule
			applyScheduleFlags(cmd, &sc)
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = flagAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			n, result, err := schedule(ctx, args[0], sc)
			if err != nil {
				return err
			}

			srv := viewer.NewServer(ctx, viewer.ToGraph(n, result))
			fmt.Printf("%s Serving %s on http://%s\n", ui.BoldCyan("▶"), args[0], cfg.Serve.Addr)
			return srv.Serve(ctx, cfg.Serve.Addr)
		},
	}

	addScheduleFlags(cmd)
	cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, 127.0.0.1:7272)")
	return cmd
}
