package planner

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
)

type ClusterResult struct {
	ItemCluster map[string]int `json:"item-cluster" yaml:"item-cluster"`
	Members     [][]string     `json:"members" yaml:"members"`
	Sums        []int          `json:"sums" yaml:"sums"`
	Feasible    bool           `json:"feasible" yaml:"feasible"`
	Notes       []string       `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Symmetrize returns the symmetric closure of a co-requisite table: when X
// lists Y, Y also lists X. Declarations missing their counterpart are logged.
// Each resulting list is sorted and free of repeats.
func Symmetrize(coreqs map[string][]string) map[string][]string {
	sets := make(map[string]map[string]bool, len(coreqs))
	add := func(a, b string) {
		if sets[a] == nil {
			sets[a] = make(map[string]bool)
		}
		sets[a][b] = true
	}

	keys := make([]string, 0, len(coreqs))
	for id := range coreqs {
		keys = append(keys, id)
	}
	sort.Strings(keys)

	for _, id := range keys {
		for _, co := range coreqs[id] {
			if co == id {
				continue
			}
			add(id, co)
			add(co, id)
			if !slices.Contains(coreqs[co], id) {
				slog.Warn("corequisite declared on one side only",
					"item", id,
					"corequisite", co)
			}
		}
	}

	out := make(map[string][]string, len(sets))
	for id, set := range sets {
		list := make([]string, 0, len(set))
		for co := range set {
			list = append(list, co)
		}
		sort.Strings(list)
		out[id] = list
	}
	return out
}

// Clusters are numbered in order of their smallest member.
func BuildClusters(weights map[string]int, coreqs map[string][]string, quota int) ClusterResult {
	links := Symmetrize(coreqs)

	ids := make([]string, 0, len(weights))
	for id := range weights {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := ClusterResult{
		ItemCluster: make(map[string]int, len(ids)),
		Feasible:    true,
	}

	for _, start := range ids {
		if _, seen := result.ItemCluster[start]; seen {
			continue
		}

		cluster := len(result.Members)
		var members []string
		sum := 0

		stack := []string{start}
		result.ItemCluster[start] = cluster
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			members = append(members, cur)
			sum += weights[cur]

			for _, next := range links[cur] {
				if _, known := weights[next]; !known {
					continue
				}
				if _, seen := result.ItemCluster[next]; seen {
					continue
				}
				result.ItemCluster[next] = cluster
				stack = append(stack, next)
			}
		}

		sort.Strings(members)
		result.Members = append(result.Members, members)
		result.Sums = append(result.Sums, sum)

		if sum > quota {
			result.Feasible = false
			result.Notes = append(result.Notes,
				fmt.Sprintf("Cluster %d (%s) exceeds quota (%d > %d)", cluster, strings.Join(members, ", "), sum, quota))
		}
	}

	slog.Debug("built corequisite clusters",
		"items", len(ids),
		"clusters", len(result.Members),
		"feasible", result.Feasible)

	return result
}
