package cpm

import (
	"fmt"
	"slices"
	"sort"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"
)

// pathNode is one link of an immutable path. Branches share their common
// prefix and extend it with new nodes, so siblings never see each other's
// activities.
type pathNode struct {
	id       int
	parent   *pathNode
	length   int
	duration int
}

func (p *pathNode) extend(a *network.Activity) *pathNode {
	node := &pathNode{id: a.ID, parent: p, length: 1, duration: a.Duration}
	if p != nil {
		node.length += p.length
		node.duration += p.duration
	}
	return node
}

func (p *pathNode) path() Path {
	ids := make([]int, p.length)
	for cur, i := p, p.length-1; cur != nil; cur, i = cur.parent, i-1 {
		ids[i] = cur.id
	}
	return Path{IDs: ids, Duration: p.duration}
}

// ExtractCriticalPaths enumerates every critical path: a chain of zero-slack
// activities from one of roots to an activity without successors in which
// each activity starts exactly when its predecessor on the chain finishes.
// Slack must already be computed. A branch stops at the first activity with
// nonzero slack or at an edge with a gap, so every returned path spans the
// whole project.
func ExtractCriticalPaths(n *network.Network, roots []int) ([]Path, error) {
	return extractPaths(n, roots, true)
}

// ExtractZeroSlackPaths is ExtractCriticalPaths without the gap check: it
// follows any edge between two zero-slack activities. A shortcut edge past a
// longer zero-slack chain yields a route shorter than the project.
func ExtractZeroSlackPaths(n *network.Network, roots []int) ([]Path, error) {
	return extractPaths(n, roots, false)
}

func extractPaths(n *network.Network, roots []int, tight bool) ([]Path, error) {
	type frame struct {
		id     int
		prefix *pathNode
	}

	var paths []Path
	for _, root := range roots {
		stack := []frame{{id: root}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			a, err := n.Get(f.id)
			if err != nil {
				return nil, err
			}
			if a.Slack != 0 || !a.Scheduled() {
				continue
			}

			node := f.prefix.extend(a)
			if len(a.Successors) == 0 {
				paths = append(paths, node.path())
				continue
			}
			// Push in reverse so successors are explored in edge order.
			for i := len(a.Successors) - 1; i >= 0; i-- {
				succ := a.Successors[i]
				if tight {
					s, err := n.Get(succ)
					if err != nil {
						return nil, err
					}
					if s.ES != a.EF {
						continue
					}
				}
				stack = append(stack, frame{id: succ, prefix: node})
			}
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no zero-slack route from %v to a sink", ErrNoCriticalPath, n.Names(roots))
	}
	return paths, nil
}

// SelectPath returns the preferred path according to sel. Ties that survive
// both length criteria go to the lexicographically smallest id sequence, so
// the choice is deterministic. It returns the zero Path for no input.
func SelectPath(paths []Path, sel Selection) Path {
	if len(paths) == 0 {
		return Path{}
	}
	ranked := slices.Clone(paths)
	sort.SliceStable(ranked, func(i, j int) bool {
		return better(ranked[i], ranked[j], sel)
	})
	return ranked[0]
}

func better(a, b Path, sel Selection) bool {
	primaryA, primaryB := a.Duration, b.Duration
	secondaryA, secondaryB := a.Len(), b.Len()
	if sel == SelectByActivityCount {
		primaryA, primaryB = secondaryA, secondaryB
		secondaryA, secondaryB = a.Duration, b.Duration
	}
	if primaryA != primaryB {
		return primaryA > primaryB
	}
	if secondaryA != secondaryB {
		return secondaryA > secondaryB
	}
	return slices.Compare(a.IDs, b.IDs) < 0
}
