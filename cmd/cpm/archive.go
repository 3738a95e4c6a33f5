package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/store"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/ui"
)

func historyCmd() *cobra.Command {
	var flagLimit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.Store.Dir)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(cmd.Context(), flagLimit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if flagJSON {
				return outputJSON(runs)
			}

			if len(runs) == 0 {
				fmt.Println(ui.Dim("No archived runs."))
				return nil
			}
			for _, r := range runs {
				fmt.Printf("%s %s  %s  %s\n",
					statusIcon(r.Status), ui.Dim(r.ID), r.CreatedAt.Format("2006-01-02 15:04:05"), ui.Bold(r.Source))
				if r.Status == store.StatusFailed {
					fmt.Printf("    %s\n", ui.Red(r.Error))
					continue
				}
				fmt.Printf("    duration %d, critical path %s\n", r.ProjectDuration, ui.Arrow(r.CriticalPath))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum runs to list (0 for all)")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.Store.Dir)
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := s.LoadRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if flagJSON {
				return outputJSON(run)
			}
			printRun(run)
			return nil
		},
	}
}

func printRun(run *store.RunDetail) {
	fmt.Printf("%s %s %s\n", statusIcon(run.Status), ui.BoldCyan("Run:"), ui.Dim(run.ID))
	fmt.Printf("Source:    %s\n", run.Source)
	fmt.Printf("Created:   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	if run.Status == store.StatusFailed {
		fmt.Printf("Error:     %s\n", ui.Red(run.Error))
		return
	}
	fmt.Printf("Duration:  %s\n", ui.Bold(run.ProjectDuration))
	fmt.Printf("Selection: %s\n\n", run.Selection)

	fmt.Printf("%-16s %5s %5s %5s %5s %5s  %-6s %s\n", "ACTIVITY", "DUR", "ES", "EF", "LS", "LF", "SLACK", "PREDECESSORS")
	for _, a := range run.Activities {
		name := a.Name
		if a.OnCriticalPath {
			name += " " + ui.CriticalMark
		}
		fmt.Printf("%-16s %5d %5d %5d %5d %5d  %-6d %s\n",
			name, a.Duration, a.ES, a.EF, a.LS, a.LF, a.Slack, strings.Join(a.Predecessors, ","))
	}
	fmt.Println()
	fmt.Printf("Critical path: %s\n", ui.BoldYellow(ui.Arrow(run.CriticalPath)))
}

func statusIcon(status store.RunStatus) string {
	if status == store.StatusFailed {
		return ui.Red("✗")
	}
	return ui.Green("✓")
}
