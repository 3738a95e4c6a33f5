package cpm

import "github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"

// CriticalNames returns the names along the selected critical path.
func (r *Result) CriticalNames(n *network.Network) []string {
	return n.Names(r.CriticalPath.IDs)
}

// IsOnCriticalPath reports whether id lies on the selected critical path.
func (r *Result) IsOnCriticalPath(id int) bool {
	return r.CriticalPath.Contains(id)
}

// IsCriticalEdge reports whether from -> to is a consecutive pair on the
// selected critical path.
func (r *Result) IsCriticalEdge(from, to int) bool {
	ids := r.CriticalPath.IDs
	for i := 0; i+1 < len(ids); i++ {
		if ids[i] == from && ids[i+1] == to {
			return true
		}
	}
	return false
}
