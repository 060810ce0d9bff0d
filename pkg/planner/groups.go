package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/greboid/termplan/pkg/catalog"
)

type GroupSelection struct {
	Selected []string            `json:"selected" yaml:"selected"`
	ByGroup  map[string][]string `json:"by-group" yaml:"by-group"`
	Feasible bool                `json:"feasible" yaml:"feasible"`
	Message  string              `json:"message,omitempty" yaml:"message,omitempty"`
}

// SelectGroups picks Required candidates from each group, preferring higher
// priority, then lower weight, then the smaller identifier. It stops at the
// first group whose pool is too small.
//
// Once every group is resolved, each selected item's prerequisites must be
// satisfied: a prerequisite counts when it is selected itself or when it is
// not a candidate of any group, in which case the regular schedule covers it.
func SelectGroups(groups []catalog.ElectiveGroup, weights map[string]int, prereqs map[string][]string) GroupSelection {
	result := GroupSelection{
		ByGroup:  make(map[string][]string, len(groups)),
		Feasible: true,
	}

	candidate := make(map[string]bool)
	for _, group := range groups {
		for _, id := range group.Candidates {
			candidate[id] = true
		}
	}

	chosen := make(map[string]bool)
	for _, group := range groups {
		pool := rankPool(group, weights)

		if len(pool) < group.Required {
			result.Feasible = false
			result.Message = fmt.Sprintf("Group %s has %d courses, needs %d", group.ID, len(pool), group.Required)
			return result
		}

		picked := pool[:group.Required]
		result.ByGroup[group.ID] = picked
		for _, id := range picked {
			chosen[id] = true
		}
	}

	for id := range chosen {
		result.Selected = append(result.Selected, id)
	}
	sort.Strings(result.Selected)

	var missing []string
	for _, id := range result.Selected {
		for _, pre := range prereqs[id] {
			if candidate[pre] && !chosen[pre] {
				missing = append(missing, fmt.Sprintf("%s requires %s", id, pre))
			}
		}
	}
	if len(missing) > 0 {
		result.Feasible = false
		result.Message = "Missing prerequisite: " + strings.Join(missing, "; ")
	}

	return result
}

func rankPool(group catalog.ElectiveGroup, weights map[string]int) []string {
	seen := make(map[string]bool, len(group.Candidates))
	pool := make([]string, 0, len(group.Candidates))
	for _, id := range group.Candidates {
		if !seen[id] {
			seen[id] = true
			pool = append(pool, id)
		}
	}

	sort.Slice(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if pa, pb := group.Priorities[a], group.Priorities[b]; pa != pb {
			return pa > pb
		}
		if wa, wb := weights[a], weights[b]; wa != wb {
			return wa < wb
		}
		return a < b
	})
	return pool
}
