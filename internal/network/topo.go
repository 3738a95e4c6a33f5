package network

import (
	"fmt"
	"sort"
	"strings"
)

// TopoOrder performs Kahn's algorithm over the network. Among activities that
// become ready together, smaller ids come first, so the order is stable for a
// given network.
func (n *Network) TopoOrder() ([]int, error) {
	inDegree := make(map[int]int, len(n.activities))
	for id, a := range n.activities {
		inDegree[id] = len(a.Predecessors)
	}

	queue := n.Sources()

	order := make([]int, 0, len(n.activities))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var newReady []int
		for _, succ := range n.activities[id].Successors {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				newReady = append(newReady, succ)
			}
		}
		sort.Ints(newReady)
		queue = append(queue, newReady...)
	}

	if len(order) != len(n.activities) {
		cycle := n.DetectCycle()
		return nil, fmt.Errorf("%w: %s (%d of %d activities sorted)",
			ErrCyclicDependency, strings.Join(n.Names(cycle), " -> "), len(order), len(n.activities))
	}
	return order, nil
}

// DetectCycle returns a cycle as a closed walk of ids (first == last), or nil
// if the network is acyclic. It walks successors depth-first with an explicit
// stack, colouring nodes white (unvisited), gray (on the stack) and black (done).
func (n *Network) DetectCycle() []int {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	type frame struct {
		id   int
		next int
	}

	color := make(map[int]int, len(n.activities))
	for _, start := range n.Activities() {
		if color[start.ID] != white {
			continue
		}
		color[start.ID] = gray
		stack := []frame{{id: start.ID}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succs := n.activities[top.id].Successors
			if top.next == len(succs) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			next := succs[top.next]
			top.next++

			switch color[next] {
			case gray:
				var cycle []int
				for i := range stack {
					if stack[i].id == next {
						for _, f := range stack[i:] {
							cycle = append(cycle, f.id)
						}
						break
					}
				}
				return append(cycle, next)
			case white:
				color[next] = gray
				stack = append(stack, frame{id: next})
			}
		}
	}
	return nil
}
