package cpm

import (
	"sort"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"
)

// computeWaves groups activities by their earliest start time.
func computeWaves(n *network.Network, order []int) []Wave {
	esGroups := make(map[int][]int)
	for _, id := range order {
		a, err := n.Get(id)
		if err != nil {
			continue
		}
		esGroups[a.ES] = append(esGroups[a.ES], id)
	}

	esValues := make([]int, 0, len(esGroups))
	for es := range esGroups {
		esValues = append(esValues, es)
	}
	sort.Ints(esValues)

	waves := make([]Wave, len(esValues))
	for i, es := range esValues {
		ids := esGroups[es]
		sort.Ints(ids)

		hasCritical := false
		for _, id := range ids {
			if a, _ := n.Get(id); a.Slack == 0 {
				hasCritical = true
			}
		}

		// Critical activities first within a wave
		sort.SliceStable(ids, func(x, y int) bool {
			ax, _ := n.Get(ids[x])
			ay, _ := n.Get(ids[y])
			return ax.Slack == 0 && ay.Slack != 0
		})

		waves[i] = Wave{
			Index:       i,
			Start:       es,
			ActivityIDs: ids,
			IsCritical:  hasCritical,
		}
	}
	return waves
}

// WaveOf returns the index of the wave holding id, or -1.
func (r *Result) WaveOf(id int) int {
	for _, w := range r.Waves {
		for _, x := range w.ActivityIDs {
			if x == id {
				return w.Index
			}
		}
	}
	return -1
}
