package cpm

import (
	"context"
	"fmt"
	"strings"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/ctxlog"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"
)

// Analyze runs the full critical path method over n: topological ordering,
// forward pass, backward pass, slack and critical path extraction. Times and
// slack are written onto the activities. On any error the network's times are
// reset and no result is returned.
func Analyze(ctx context.Context, n *network.Network, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	if n.Len() == 0 {
		return nil, ErrEmptyNetwork
	}
	n.Reset()

	order, err := n.TopoOrder()
	if err != nil {
		return nil, err
	}
	logger.Debug("Analyze: topological order computed.", "activities", len(order))

	roots, err := resolveRoots(n, opts.Roots)
	if err != nil {
		return nil, err
	}
	terminals, err := resolveTerminals(n, opts.Terminals)
	if err != nil {
		return nil, err
	}

	finish := ForwardPass(n, order, roots)
	logger.Debug("Analyze: forward pass complete.", "roots", roots, "finish", finish)

	anchor, err := anchorTime(n, terminals)
	if err != nil {
		n.Reset()
		return nil, err
	}
	BackwardPass(n, order, terminals, anchor)
	logger.Debug("Analyze: backward pass complete.", "terminals", terminals, "anchor", anchor)

	if err := ComputeSlack(n); err != nil {
		n.Reset()
		return nil, err
	}

	extract := ExtractCriticalPaths
	if opts.Selection == SelectByActivityCount {
		extract = ExtractZeroSlackPaths
	}
	paths, err := extract(n, roots)
	if err != nil {
		n.Reset()
		return nil, err
	}
	best := SelectPath(paths, opts.Selection)
	logger.Debug("Analyze: critical paths extracted.",
		"paths", len(paths), "selected", n.Names(best.IDs), "duration", best.Duration)

	result := &Result{
		ProjectDuration: anchor,
		Order:           order,
		Roots:           roots,
		Terminals:       terminals,
		CriticalPath:    best,
		CriticalPaths:   paths,
		Selection:       opts.Selection,
	}
	result.Waves = computeWaves(n, order)

	return result, nil
}

// ForwardPass assigns earliest start and finish along order, a topological
// order of n. Roots start at 0; every other activity starts at the largest
// earliest finish among its assigned predecessors. Activities not reachable
// from a root keep network.Unset. It returns the largest earliest finish.
func ForwardPass(n *network.Network, order []int, roots []int) int {
	isRoot := make(map[int]bool, len(roots))
	for _, id := range roots {
		isRoot[id] = true
	}

	finish := 0
	for _, id := range order {
		a, err := n.Get(id)
		if err != nil {
			continue
		}

		es := network.Unset
		if isRoot[id] {
			es = 0
		}
		for _, pred := range a.Predecessors {
			p, err := n.Get(pred)
			if err != nil || p.EF == network.Unset {
				continue
			}
			if p.EF > es {
				es = p.EF
			}
		}
		if es == network.Unset {
			continue
		}

		// Milestones have zero duration, so EF == ES without special casing.
		a.ES = es
		a.EF = es + a.Duration
		if a.EF > finish {
			finish = a.EF
		}
	}
	return finish
}

// BackwardPass assigns latest start and finish in reverse order. Terminals
// finish at anchor; every other activity finishes at the smallest latest
// start among its assigned successors. Activities that cannot reach a
// terminal keep network.Unset.
func BackwardPass(n *network.Network, order []int, terminals []int, anchor int) {
	isTerminal := make(map[int]bool, len(terminals))
	for _, id := range terminals {
		isTerminal[id] = true
	}

	for i := len(order) - 1; i >= 0; i-- {
		a, err := n.Get(order[i])
		if err != nil {
			continue
		}

		lf := network.Unset
		if isTerminal[a.ID] {
			lf = anchor
		}
		for _, succ := range a.Successors {
			s, err := n.Get(succ)
			if err != nil || s.LS == network.Unset {
				continue
			}
			if lf == network.Unset || s.LS < lf {
				lf = s.LS
			}
		}
		if lf == network.Unset {
			continue
		}

		a.LF = lf
		a.LS = lf - a.Duration
	}
}

// ComputeSlack sets Slack = LS - ES on every activity. It fails with
// ErrIncompletePropagation, writing nothing, if any activity still has an
// unset time field.
func ComputeSlack(n *network.Network) error {
	activities := n.Activities()

	var missing []string
	for _, a := range activities {
		if !a.Scheduled() {
			missing = append(missing, a.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s not reached from the roots or the terminals",
			ErrIncompletePropagation, strings.Join(missing, ", "))
	}

	for _, a := range activities {
		a.Slack = a.LS - a.ES
	}
	return nil
}

func resolveRoots(n *network.Network, ids []int) ([]int, error) {
	if len(ids) == 0 {
		sources := n.Sources()
		if len(sources) == 0 {
			return nil, fmt.Errorf("%w: network has no activity without predecessors", ErrInvalidDesignation)
		}
		return sources[:1], nil
	}
	for _, id := range ids {
		a, err := n.Get(id)
		if err != nil {
			return nil, fmt.Errorf("%w: root: %w", ErrInvalidDesignation, err)
		}
		if len(a.Predecessors) > 0 {
			return nil, fmt.Errorf("%w: root %s has predecessors", ErrInvalidDesignation, a.Name)
		}
	}
	return ids, nil
}

func resolveTerminals(n *network.Network, ids []int) ([]int, error) {
	if len(ids) == 0 {
		sinks := n.Sinks()
		if len(sinks) == 0 {
			return nil, fmt.Errorf("%w: network has no activity without successors", ErrInvalidDesignation)
		}
		return sinks, nil
	}
	for _, id := range ids {
		a, err := n.Get(id)
		if err != nil {
			return nil, fmt.Errorf("%w: terminal: %w", ErrInvalidDesignation, err)
		}
		if len(a.Successors) > 0 {
			return nil, fmt.Errorf("%w: terminal %s has successors", ErrInvalidDesignation, a.Name)
		}
	}
	return ids, nil
}

// anchorTime returns the largest earliest finish among the terminals.
func anchorTime(n *network.Network, terminals []int) (int, error) {
	anchor := network.Unset
	for _, id := range terminals {
		a, err := n.Get(id)
		if err != nil {
			return 0, err
		}
		if a.EF > anchor {
			anchor = a.EF
		}
	}
	if anchor == network.Unset {
		return 0, fmt.Errorf("%w: no terminal reached by the forward pass", ErrIncompletePropagation)
	}
	return anchor, nil
}
