package planner

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/greboid/termplan/pkg/catalog"
	"github.com/greboid/termplan/pkg/graph"
)

const Unassigned = 0

// AssignInput holds everything AssignSlots needs. Per-vertex slices are
// indexed like the graph's vertices.
type AssignInput struct {
	Graph    *graph.Graph
	Order    graph.Order
	Earliest []int
	Weights  []int
	// Allowed lists the slots a vertex may occupy; a nil entry allows all.
	Allowed [][]int
	// Rank orders vertices with equal earliest slots; nil ranks all equally.
	Rank []int
	// Labels names vertices in notes; nil uses the graph ids.
	Labels      []string
	Constraints catalog.Constraints
}

type PlanResult struct {
	Assignments map[string]int `json:"assignments" yaml:"assignments"`
	Feasible    bool           `json:"feasible" yaml:"feasible"`
	Notes       []string       `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (r PlanResult) Slot(id string) int {
	return r.Assignments[id]
}

// AssignSlots places vertices greedily. Once a vertex runs out of slots every
// later candidate is left unassigned.
func AssignSlots(ctx context.Context, in AssignInput) (PlanResult, error) {
	g := in.Graph
	if !in.Order.OK {
		return PlanResult{}, fmt.Errorf("assigning slots: %w", graph.ErrCyclicGraph)
	}
	if len(in.Earliest) != g.V() || len(in.Weights) != g.V() {
		return PlanResult{}, fmt.Errorf("assigning slots: got %d earliest slots and %d weights for %d vertices",
			len(in.Earliest), len(in.Weights), g.V())
	}

	cons := in.Constraints
	pos := in.Order.Positions(g.V())
	candidates := slices.Clone(in.Order.Vertices)
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if in.Earliest[a] != in.Earliest[b] {
			return in.Earliest[a] < in.Earliest[b]
		}
		if ra, rb := rankOf(in.Rank, a), rankOf(in.Rank, b); ra != rb {
			return ra < rb
		}
		if da, db := len(g.Dependents(a)), len(g.Dependents(b)); da != db {
			return da > db
		}
		return pos[a] < pos[b]
	})

	result := PlanResult{
		Assignments: make(map[string]int, g.V()),
		Feasible:    true,
	}
	slot := make([]int, g.V())
	load := make([]int, cons.Slots+2)
	current := 1
	stoppedAt := ""

	for _, v := range candidates {
		if err := ctx.Err(); err != nil {
			return PlanResult{}, fmt.Errorf("assigning slots: %w", err)
		}

		id := g.ID(v)
		label := labelOf(in.Labels, g, v)
		result.Assignments[id] = Unassigned

		if stoppedAt != "" {
			result.Notes = append(result.Notes,
				fmt.Sprintf("%s left unassigned: planning stopped at %s", label, stoppedAt))
			continue
		}

		target := max(in.Earliest[v], current, 1)
		blocked := ""
		for _, u := range g.Prerequisites(v) {
			if slot[u] == Unassigned {
				blocked = labelOf(in.Labels, g, u)
				break
			}
			target = max(target, slot[u]+1)
		}
		if blocked != "" {
			result.Feasible = false
			result.Notes = append(result.Notes,
				fmt.Sprintf("%s left unassigned: prerequisite %s is unassigned", label, blocked))
			continue
		}

		allowed := allowedFor(in.Allowed, v)
		if allowed != nil && len(allowed) == 0 {
			result.Feasible = false
			result.Notes = append(result.Notes,
				fmt.Sprintf("%s left unassigned: it is not offered in any of the %d terms", label, cons.Slots))
			continue
		}

		weight := in.Weights[v]
		target = nextFit(target, weight, allowed, load, cons)
		if target > cons.Slots {
			result.Feasible = false
			result.Notes = append(result.Notes,
				fmt.Sprintf("%s could not be placed: out of terms while respecting quotas (%d credits, max %d per term, %d terms)",
					label, weight, cons.MaxPerSlot, cons.Slots))
			stoppedAt = label
			continue
		}

		slot[v] = target
		load[target] += weight
		result.Assignments[id] = target

		if load[target] >= cons.MaxPerSlot {
			current = target + 1
		} else {
			current = target
		}

		slog.Debug("assigned item to slot",
			"item", id,
			"slot", target,
			"load", load[target])
	}

	return result, nil
}

func nextFit(target, weight int, allowed []int, load []int, cons catalog.Constraints) int {
	for target <= cons.Slots {
		if allowed != nil && !slices.Contains(allowed, target) {
			target++
			continue
		}
		if load[target]+weight > cons.MaxPerSlot {
			target++
			continue
		}
		break
	}
	return target
}

func rankOf(rank []int, v int) int {
	if rank == nil {
		return 0
	}
	return rank[v]
}

func labelOf(labels []string, g *graph.Graph, v int) string {
	if labels == nil {
		return g.ID(v)
	}
	return labels[v]
}

func allowedFor(allowed [][]int, v int) []int {
	if allowed == nil {
		return nil
	}
	return allowed[v]
}
