package planner

import (
	"fmt"

	"github.com/greboid/termplan/pkg/graph"
)

func EarliestSlots(g *graph.Graph, order graph.Order) ([]int, error) {
	if !order.OK {
		return nil, fmt.Errorf("computing earliest slots: %w", graph.ErrCyclicGraph)
	}
	if len(order.Vertices) != g.V() {
		return nil, fmt.Errorf("computing earliest slots: order covers %d of %d vertices", len(order.Vertices), g.V())
	}

	earliest := make([]int, g.V())
	for _, v := range order.Vertices {
		slot := 1
		for _, u := range g.Prerequisites(v) {
			if earliest[u]+1 > slot {
				slot = earliest[u] + 1
			}
		}
		earliest[v] = slot
	}

	return earliest, nil
}

func byID(g *graph.Graph, values []int) map[string]int {
	out := make(map[string]int, len(values))
	for v, value := range values {
		out[g.ID(v)] = value
	}
	return out
}
