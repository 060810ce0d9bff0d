package graph

import (
	"log/slog"
	"sort"

	"github.com/greboid/termplan/pkg/catalog"
)

func Build(cat *catalog.Catalog) (*Graph, error) {
	ids := make([]string, 0, len(cat.Items))
	prereqs := make(map[string][]string, len(cat.Items))
	known := make(map[string]bool, len(cat.Items))

	for _, item := range cat.Items {
		if item.ID == "" {
			return nil, &StructuralError{Kind: EmptyIdentifier}
		}
		if known[item.ID] {
			return nil, &StructuralError{Kind: DuplicateIdentifier, ID: item.ID}
		}
		known[item.ID] = true
		ids = append(ids, item.ID)
		prereqs[item.ID] = item.Prereqs
	}

	for _, item := range cat.Items {
		for _, co := range item.Coreqs {
			if !known[co] {
				return nil, &StructuralError{Kind: UnknownReference, ID: item.ID, Ref: co}
			}
		}
	}

	return New(ids, prereqs)
}

func New(ids []string, prereqs map[string][]string) (*Graph, error) {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	g := &Graph{
		ids:     sorted,
		index:   make(map[string]int, len(sorted)),
		adj:     make([][]int, len(sorted)),
		prereqs: make([][]int, len(sorted)),
		indeg:   make([]int, len(sorted)),
	}

	for i, id := range sorted {
		if id == "" {
			return nil, &StructuralError{Kind: EmptyIdentifier}
		}
		if _, exists := g.index[id]; exists {
			return nil, &StructuralError{Kind: DuplicateIdentifier, ID: id}
		}
		g.index[id] = i
	}

	for v, id := range sorted {
		seen := make(map[int]bool, len(prereqs[id]))
		for _, pre := range prereqs[id] {
			u, ok := g.index[pre]
			if !ok {
				return nil, &StructuralError{Kind: UnknownReference, ID: id, Ref: pre}
			}
			if seen[u] {
				continue
			}
			seen[u] = true
			g.adj[u] = append(g.adj[u], v)
			g.prereqs[v] = append(g.prereqs[v], u)
			g.indeg[v]++
		}
	}

	for u := range g.adj {
		sort.Ints(g.adj[u])
	}

	slog.Debug("built prerequisite graph",
		"vertices", g.V(),
		"edges", g.Edges())

	return g, nil
}
