package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/greboid/termplan/pkg/catalog"
	"github.com/greboid/termplan/pkg/graph"
)

type Options struct {
	Policy          ClassificationPolicy
	PreferLightLoad bool
}

// Outcome is everything a planning run produced. Catalog is the catalog the
// plan was built from, after unselected electives were dropped.
type Outcome struct {
	Catalog    *catalog.Catalog
	Selection  *GroupSelection
	Clusters   *ClusterResult
	Order      []string
	Cycle      graph.Cycle
	Earliest   map[string]int
	Categories map[string]string
	Result     PlanResult
	Hints      []Hint
}

func (o *Outcome) Feasible() bool {
	return o.Result.Feasible
}

// Plan returns an error only for invalid constraints, structural catalog
// faults and cancellation. Everything else is reported in the outcome.
func Plan(ctx context.Context, cat *catalog.Catalog, cons catalog.Constraints, opts Options) (*Outcome, error) {
	if err := cons.Validate(); err != nil {
		return nil, fmt.Errorf("invalid constraints: %w", err)
	}

	out := &Outcome{Catalog: cat}
	advise := func(electiveConflict bool) {
		out.Hints = Advise(AdviceInput{
			Slots:            cons.Slots,
			MaxPerSlot:       cons.MaxPerSlot,
			CoreqTogether:    cons.CoreqTogether,
			ElectiveConflict: electiveConflict,
			PreferLightLoad:  opts.PreferLightLoad,
		})
	}

	if len(cat.Groups) > 0 {
		selection, reduced, missing := selectElectives(cat)
		out.Selection = &selection
		if !selection.Feasible {
			out.Result = PlanResult{Notes: []string{selection.Message}}
			advise(true)
			return out, nil
		}
		if len(missing) > 0 {
			out.Catalog = reduced
			out.Result = infeasible(reduced, missing)
			advise(true)
			return out, nil
		}
		out.Catalog = reduced
		cat = reduced
	}

	g, err := graph.Build(cat)
	if err != nil {
		return nil, fmt.Errorf("building prerequisite graph: %w", err)
	}

	order := g.Order()
	if !order.OK {
		out.Cycle = g.FindCycle()
		out.Result = PlanResult{Notes: []string{fmt.Sprintf("prerequisite cycle: %s", out.Cycle)}}
		slog.Debug("planning stopped on cycle", "cycle", out.Cycle.String())
		return out, nil
	}
	out.Order = order.IDs(g)

	earliest, err := EarliestSlots(g, order)
	if err != nil {
		return nil, err
	}
	out.Earliest = byID(g, earliest)

	categories := make(map[string]Category, len(cat.Items))
	out.Categories = make(map[string]string)
	for _, item := range cat.Items {
		c := classify(opts.Policy, item)
		categories[item.ID] = c
		if c.Key != "" {
			out.Categories[item.ID] = c.Key
		}
	}

	var result PlanResult
	if cons.CoreqTogether {
		clusters := BuildClusters(cat.Weights(), cat.Corequisites(), cons.MaxPerSlot)
		out.Clusters = &clusters
		if !clusters.Feasible {
			out.Result = PlanResult{Notes: clusters.Notes}
			advise(false)
			return out, nil
		}
		result, err = assignClusters(ctx, cat, cons, clusters, categories)
	} else {
		result, err = assignItems(ctx, g, order, earliest, cat, cons, categories)
	}
	if err != nil {
		return nil, err
	}

	out.Result = result
	if !result.Feasible {
		advise(false)
	}

	slog.Debug("plan complete",
		"items", len(cat.Items),
		"feasible", result.Feasible,
		"notes", len(result.Notes))

	return out, nil
}

// selectElectives resolves elective groups and drops the candidates that
// were not selected. Kept items that depend on a dropped candidate are
// returned as notes.
func selectElectives(cat *catalog.Catalog) (GroupSelection, *catalog.Catalog, []string) {
	groups := make([]catalog.ElectiveGroup, len(cat.Groups))
	candidate := make(map[string]bool)
	for i, group := range cat.Groups {
		group.Candidates = cat.GroupPool(group)
		groups[i] = group
		for _, id := range group.Candidates {
			candidate[id] = true
		}
	}

	selection := SelectGroups(groups, cat.Weights(), cat.Prerequisites())
	if !selection.Feasible {
		return selection, nil, nil
	}

	chosen := make(map[string]bool, len(selection.Selected))
	for _, id := range selection.Selected {
		chosen[id] = true
	}

	keep := make(map[string]bool, len(cat.Items))
	for _, item := range cat.Items {
		if !candidate[item.ID] || chosen[item.ID] {
			keep[item.ID] = true
		}
	}

	var missing []string
	for _, item := range cat.Items {
		if !keep[item.ID] {
			continue
		}
		for _, pre := range item.Prereqs {
			if candidate[pre] && !chosen[pre] {
				missing = append(missing, fmt.Sprintf("%s requires unselected elective %s", item.ID, pre))
			}
		}
	}

	slog.Debug("resolved elective groups",
		"groups", len(groups),
		"selected", len(selection.Selected),
		"kept", len(keep))

	return selection, cat.Subset(keep), missing
}

func assignItems(ctx context.Context, g *graph.Graph, order graph.Order, earliest []int,
	cat *catalog.Catalog, cons catalog.Constraints, categories map[string]Category) (PlanResult, error) {
	weights := make([]int, g.V())
	allowed := make([][]int, g.V())
	rank := make([]int, g.V())

	for _, item := range cat.Items {
		v, _ := g.Index(item.ID)
		weights[v] = item.Weight
		allowed[v] = allowedSlots(item, cons, categories[item.ID])
		rank[v] = categories[item.ID].Rank
	}

	return AssignSlots(ctx, AssignInput{
		Graph:       g,
		Order:       order,
		Earliest:    earliest,
		Weights:     weights,
		Allowed:     allowed,
		Rank:        rank,
		Constraints: cons,
	})
}

// assignClusters places each co-requisite cluster as a single unit. Units
// inherit the prerequisites of their members, weigh the sum of their members
// and may only use slots every member allows.
func assignClusters(ctx context.Context, cat *catalog.Catalog, cons catalog.Constraints,
	clusters ClusterResult, categories map[string]Category) (PlanResult, error) {
	// Unit ids are zero-padded cluster indexes; member names only appear in notes.
	width := len(strconv.Itoa(len(clusters.Members)))
	unitIDs := make([]string, len(clusters.Members))
	unitLabels := make(map[string]string, len(clusters.Members))
	for i, members := range clusters.Members {
		unitIDs[i] = fmt.Sprintf("%0*d", width, i)
		unitLabels[unitIDs[i]] = strings.Join(members, "+")
	}

	var notes []string
	unitPrereqs := make(map[string][]string, len(unitIDs))
	for _, item := range cat.Items {
		unit := clusters.ItemCluster[item.ID]
		for _, pre := range item.Prereqs {
			preUnit := clusters.ItemCluster[pre]
			if preUnit == unit {
				notes = append(notes, fmt.Sprintf("%s requires %s but corequisites must share a term", item.ID, pre))
				continue
			}
			unitPrereqs[unitIDs[unit]] = append(unitPrereqs[unitIDs[unit]], unitIDs[preUnit])
		}
	}
	if len(notes) > 0 {
		return infeasible(cat, notes), nil
	}

	ug, err := graph.New(unitIDs, unitPrereqs)
	if err != nil {
		return PlanResult{}, fmt.Errorf("building cluster graph: %w", err)
	}

	order := ug.Order()
	if !order.OK {
		var cycle graph.Cycle
		for _, id := range ug.FindCycle() {
			cycle = append(cycle, unitLabels[id])
		}
		return infeasible(cat, []string{fmt.Sprintf("corequisite clusters form a prerequisite cycle: %s", cycle)}), nil
	}

	earliest, err := EarliestSlots(ug, order)
	if err != nil {
		return PlanResult{}, err
	}

	weights := make([]int, ug.V())
	allowed := make([][]int, ug.V())
	rank := make([]int, ug.V())
	labels := make([]string, ug.V())
	for i, members := range clusters.Members {
		v, _ := ug.Index(unitIDs[i])
		labels[v] = unitLabels[unitIDs[i]]
		lists := make([][]int, 0, len(members))
		for j, id := range members {
			item, _ := cat.Lookup(id)
			weights[v] += item.Weight
			lists = append(lists, allowedSlots(item, cons, categories[id]))
			if r := categories[id].Rank; j == 0 || r < rank[v] {
				rank[v] = r
			}
		}
		allowed[v] = intersectSlots(lists...)
	}

	units, err := AssignSlots(ctx, AssignInput{
		Graph:       ug,
		Order:       order,
		Earliest:    earliest,
		Weights:     weights,
		Allowed:     allowed,
		Rank:        rank,
		Labels:      labels,
		Constraints: cons,
	})
	if err != nil {
		return PlanResult{}, err
	}

	result := PlanResult{
		Assignments: make(map[string]int, len(cat.Items)),
		Feasible:    units.Feasible,
		Notes:       units.Notes,
	}
	for i, members := range clusters.Members {
		for _, id := range members {
			result.Assignments[id] = units.Assignments[unitIDs[i]]
		}
	}
	return result, nil
}

func infeasible(cat *catalog.Catalog, notes []string) PlanResult {
	result := PlanResult{
		Assignments: make(map[string]int, len(cat.Items)),
		Notes:       notes,
	}
	for _, item := range cat.Items {
		result.Assignments[item.ID] = Unassigned
	}
	return result
}
