package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/greboid/termplan/pkg/catalog"
)

func TestRulePolicy_Classify(t *testing.T) {
	policy := RulePolicy{
		{Category: "capstone", IDs: []string{"CS499"}, Rank: -1, Terms: []int{8}},
		{Category: "math", Prefixes: []string{"MATH"}, Rank: 1},
		{Category: "ai-track", Groups: []string{"ai"}, Terms: []int{5, 6, 7}},
	}

	tests := []struct {
		name string
		item catalog.Item
		want Category
	}{
		{
			name: "by id",
			item: catalog.Item{ID: "CS499"},
			want: Category{Key: "capstone", Rank: -1, Slots: []int{8}},
		},
		{
			name: "by prefix",
			item: catalog.Item{ID: "MATH201"},
			want: Category{Key: "math", Rank: 1},
		},
		{
			name: "by group",
			item: catalog.Item{ID: "CS470", Group: "ai"},
			want: Category{Key: "ai-track", Slots: []int{5, 6, 7}},
		},
		{
			name: "first rule wins",
			item: catalog.Item{ID: "CS499", Group: "ai"},
			want: Category{Key: "capstone", Rank: -1, Slots: []int{8}},
		},
		{
			name: "unmatched",
			item: catalog.Item{ID: "CS101"},
			want: Category{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, policy.Classify(tt.item)); diff != "" {
				t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPolicyFunc(t *testing.T) {
	policy := PolicyFunc(func(item catalog.Item) Category {
		return Category{Key: item.Group}
	})

	if got := classify(policy, catalog.Item{Group: "x"}); got.Key != "x" {
		t.Errorf("classify() key = %q, want x", got.Key)
	}
	if got := classify(nil, catalog.Item{Group: "x"}); got.Key != "" {
		t.Errorf("classify(nil) key = %q, want empty", got.Key)
	}
}

func TestAllowedSlots(t *testing.T) {
	tests := []struct {
		name     string
		item     catalog.Item
		cons     catalog.Constraints
		category Category
		want     []int
	}{
		{
			name: "unrestricted",
			item: catalog.Item{ID: "A"},
			cons: catalog.Constraints{Slots: 4},
			want: nil,
		},
		{
			name: "item offered terms",
			item: catalog.Item{ID: "A", OfferedSlots: []int{3, 1}},
			cons: catalog.Constraints{Slots: 4},
			want: []int{1, 3},
		},
		{
			name:     "all restrictions intersect",
			item:     catalog.Item{ID: "A", OfferedSlots: []int{1, 2, 3}},
			cons:     catalog.Constraints{Slots: 4, OfferedSlots: []int{2, 3, 4}},
			category: Category{Slots: []int{3, 4}},
			want:     []int{3},
		},
		{
			name:     "nothing left",
			item:     catalog.Item{ID: "A", OfferedSlots: []int{1}},
			cons:     catalog.Constraints{Slots: 4},
			category: Category{Slots: []int{2}},
			want:     []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, allowedSlots(tt.item, tt.cons, tt.category)); diff != "" {
				t.Errorf("allowedSlots() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIntersectSlots(t *testing.T) {
	if got := intersectSlots(nil, nil); got != nil {
		t.Errorf("intersectSlots(nil, nil) = %v, want nil", got)
	}
	if diff := cmp.Diff([]int{2, 3}, intersectSlots(nil, []int{1, 2, 3}, []int{2, 3, 4})); diff != "" {
		t.Errorf("intersectSlots() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{}, intersectSlots([]int{1}, []int{2})); diff != "" {
		t.Errorf("intersectSlots() mismatch (-want +got):\n%s", diff)
	}
}
