package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/greboid/termplan/pkg/catalog"
	"github.com/greboid/termplan/pkg/graph"
)

func hintKeys(hints []Hint) []string {
	var keys []string
	for _, hint := range hints {
		keys = append(keys, hint.Key)
	}
	return keys
}

func TestPlan_Scenarios(t *testing.T) {
	chain := []catalog.Item{
		{ID: "A", Name: "A", Weight: 3},
		{ID: "B", Name: "B", Weight: 3, Prereqs: []string{"A"}},
		{ID: "C", Name: "C", Weight: 3, Prereqs: []string{"B"}},
		{ID: "D", Name: "D", Weight: 3, Prereqs: []string{"C"}},
	}

	t.Run("chain over five terms", func(t *testing.T) {
		out, err := Plan(context.Background(), catalog.New(chain...),
			catalog.Constraints{Slots: 5, MinPerSlot: 3, MaxPerSlot: 6}, Options{})
		if err != nil {
			t.Fatalf("Plan() unexpected error: %v", err)
		}
		if !out.Feasible() {
			t.Fatalf("Plan() infeasible: %v", out.Result.Notes)
		}
		want := map[string]int{"A": 1, "B": 2, "C": 3, "D": 4}
		if diff := cmp.Diff(want, out.Result.Assignments); diff != "" {
			t.Errorf("Assignments mismatch (-want +got):\n%s", diff)
		}
		if out.Hints != nil {
			t.Errorf("Hints = %v, want none for a feasible plan", out.Hints)
		}
	})

	t.Run("independent items in two terms", func(t *testing.T) {
		var items []catalog.Item
		for _, id := range []string{"P", "Q", "R", "S", "T", "U"} {
			items = append(items, catalog.Item{ID: id, Name: id, Weight: 3})
		}
		out, err := Plan(context.Background(), catalog.New(items...),
			catalog.Constraints{Slots: 4, MinPerSlot: 3, MaxPerSlot: 9}, Options{})
		if err != nil {
			t.Fatalf("Plan() unexpected error: %v", err)
		}
		if !out.Feasible() {
			t.Fatalf("Plan() infeasible: %v", out.Result.Notes)
		}
		perSlot := make(map[int]int)
		for _, slot := range out.Result.Assignments {
			perSlot[slot]++
		}
		if diff := cmp.Diff(map[int]int{1: 3, 2: 3}, perSlot); diff != "" {
			t.Errorf("items per slot mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("chain in two terms", func(t *testing.T) {
		out, err := Plan(context.Background(), catalog.New(chain...),
			catalog.Constraints{Slots: 2, MinPerSlot: 3, MaxPerSlot: 6}, Options{})
		if err != nil {
			t.Fatalf("Plan() unexpected error: %v", err)
		}
		if out.Feasible() {
			t.Fatal("Plan() feasible, want infeasible")
		}
		if len(out.Result.Notes) == 0 {
			t.Error("infeasible plan has no notes")
		}
		if diff := cmp.Diff([]string{HintIncreaseSlotCount, HintIncreaseMaxPerSlot}, hintKeys(out.Hints)); diff != "" {
			t.Errorf("Hints mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("self prerequisite", func(t *testing.T) {
		out, err := Plan(context.Background(),
			catalog.New(catalog.Item{ID: "A", Name: "A", Weight: 3, Prereqs: []string{"A"}}),
			catalog.Constraints{Slots: 4, MinPerSlot: 3, MaxPerSlot: 6}, Options{})
		if err != nil {
			t.Fatalf("Plan() unexpected error: %v", err)
		}
		if out.Feasible() {
			t.Fatal("Plan() feasible, want cycle")
		}
		if diff := cmp.Diff(graph.Cycle{"A"}, out.Cycle); diff != "" {
			t.Errorf("Cycle mismatch (-want +got):\n%s", diff)
		}
		if !strings.Contains(out.Result.Notes[0], "A → A") {
			t.Errorf("Notes = %v, want the cycle", out.Result.Notes)
		}
	})

	t.Run("elective pool too small", func(t *testing.T) {
		cat := &catalog.Catalog{
			Items: []catalog.Item{
				{ID: "E1", Name: "E1", Weight: 3, Group: "electives"},
				{ID: "E2", Name: "E2", Weight: 3, Group: "electives"},
			},
			Groups: []catalog.ElectiveGroup{{ID: "electives", Required: 3}},
		}
		out, err := Plan(context.Background(), cat,
			catalog.Constraints{Slots: 8, MinPerSlot: 3, MaxPerSlot: 30}, Options{})
		if err != nil {
			t.Fatalf("Plan() unexpected error: %v", err)
		}
		if out.Feasible() || out.Selection == nil || out.Selection.Feasible {
			t.Fatal("Plan() feasible, want elective failure")
		}
		msg := out.Selection.Message
		if !strings.Contains(msg, "2") || !strings.Contains(msg, "3") {
			t.Errorf("Message = %q, want both counts", msg)
		}
		if diff := cmp.Diff([]string{HintChangeElectiveGroup}, hintKeys(out.Hints)); diff != "" {
			t.Errorf("Hints mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestPlan_InvalidConstraints(t *testing.T) {
	_, err := Plan(context.Background(), catalog.New(), catalog.Constraints{Slots: 0, MinPerSlot: 1, MaxPerSlot: 2}, Options{})
	if err == nil {
		t.Fatal("Plan() expected error for zero terms")
	}
}

func TestPlan_StructuralError(t *testing.T) {
	cat := catalog.New(
		catalog.Item{ID: "A", Weight: 3},
		catalog.Item{ID: "A", Weight: 3},
	)
	_, err := Plan(context.Background(), cat, catalog.Constraints{Slots: 2, MinPerSlot: 1, MaxPerSlot: 6}, Options{})

	var structural *graph.StructuralError
	if !errors.As(err, &structural) || structural.Kind != graph.DuplicateIdentifier {
		t.Errorf("Plan() error = %v, want duplicate identifier", err)
	}
}

func TestPlan_Electives(t *testing.T) {
	cons := catalog.Constraints{Slots: 4, MinPerSlot: 3, MaxPerSlot: 6}

	t.Run("selected electives are planned", func(t *testing.T) {
		cat := &catalog.Catalog{
			Items: []catalog.Item{
				{ID: "CORE", Name: "Core", Weight: 3},
				{ID: "E1", Name: "E1", Weight: 3, Group: "elec", Prereqs: []string{"CORE"}},
				{ID: "E2", Name: "E2", Weight: 4, Group: "elec"},
				{ID: "E3", Name: "E3", Weight: 3, Group: "elec"},
			},
			Groups: []catalog.ElectiveGroup{
				{ID: "elec", Required: 2, Priorities: map[string]int{"E3": 5}},
			},
		}

		out, err := Plan(context.Background(), cat, cons, Options{})
		if err != nil {
			t.Fatalf("Plan() unexpected error: %v", err)
		}
		if !out.Feasible() {
			t.Fatalf("Plan() infeasible: %v", out.Result.Notes)
		}

		if diff := cmp.Diff([]string{"E1", "E3"}, out.Selection.Selected); diff != "" {
			t.Errorf("Selected mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"CORE", "E1", "E3"}, out.Catalog.IDs()); diff != "" {
			t.Errorf("planned catalog mismatch (-want +got):\n%s", diff)
		}
		if _, ok := out.Result.Assignments["E2"]; ok {
			t.Error("unselected elective E2 was planned")
		}
		if out.Result.Slot("E1") <= out.Result.Slot("CORE") {
			t.Errorf("E1 in slot %d, CORE in slot %d", out.Result.Slot("E1"), out.Result.Slot("CORE"))
		}
	})

	t.Run("required course depends on an unselected elective", func(t *testing.T) {
		cat := &catalog.Catalog{
			Items: []catalog.Item{
				{ID: "E1", Name: "E1", Weight: 3},
				{ID: "E2", Name: "E2", Weight: 3},
				{ID: "M", Name: "M", Weight: 3, Prereqs: []string{"E2"}},
			},
			Groups: []catalog.ElectiveGroup{
				{ID: "g", Required: 1, Candidates: []string{"E1", "E2"}},
			},
		}

		out, err := Plan(context.Background(), cat, catalog.Constraints{Slots: 4, MinPerSlot: 3, MaxPerSlot: 10}, Options{})
		if err != nil {
			t.Fatalf("Plan() unexpected error: %v", err)
		}
		if out.Feasible() {
			t.Fatal("Plan() feasible, want infeasible")
		}
		if diff := cmp.Diff([]string{"M requires unselected elective E2"}, out.Result.Notes); diff != "" {
			t.Errorf("Notes mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(map[string]int{"E1": Unassigned, "M": Unassigned}, out.Result.Assignments); diff != "" {
			t.Errorf("Assignments mismatch (-want +got):\n%s", diff)
		}
		found := false
		for _, hint := range out.Hints {
			if hint.Key == HintChangeElectiveGroup {
				found = true
			}
		}
		if !found {
			t.Errorf("Hints = %v, want %s", out.Hints, HintChangeElectiveGroup)
		}
	})
}

func TestPlan_CoreqTogether(t *testing.T) {
	items := []catalog.Item{
		{ID: "A", Name: "A", Weight: 3, Coreqs: []string{"B"}},
		{ID: "B", Name: "B", Weight: 3, Coreqs: []string{"A"}},
		{ID: "C", Name: "C", Weight: 3, Prereqs: []string{"A"}},
		{ID: "D", Name: "D", Weight: 3},
	}
	cons := catalog.Constraints{Slots: 4, MinPerSlot: 3, MaxPerSlot: 6, CoreqTogether: true}

	out, err := Plan(context.Background(), catalog.New(items...), cons, Options{})
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}
	if !out.Feasible() {
		t.Fatalf("Plan() infeasible: %v", out.Result.Notes)
	}

	want := map[string]int{"A": 1, "B": 1, "C": 2, "D": 2}
	if diff := cmp.Diff(want, out.Result.Assignments); diff != "" {
		t.Errorf("Assignments mismatch (-want +got):\n%s", diff)
	}
	if out.Clusters == nil || len(out.Clusters.Members) != 3 {
		t.Errorf("Clusters = %+v, want 3 clusters", out.Clusters)
	}
}

func TestPlan_CoreqTogetherItemNamedLikeCluster(t *testing.T) {
	items := []catalog.Item{
		{ID: "A", Name: "A", Weight: 3, Coreqs: []string{"B"}},
		{ID: "B", Name: "B", Weight: 3, Coreqs: []string{"A"}},
		{ID: "A+B", Name: "A and B", Weight: 3},
	}
	cons := catalog.Constraints{Slots: 4, MinPerSlot: 3, MaxPerSlot: 6, CoreqTogether: true}

	out, err := Plan(context.Background(), catalog.New(items...), cons, Options{})
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}
	if !out.Feasible() {
		t.Fatalf("Plan() infeasible: %v", out.Result.Notes)
	}

	want := map[string]int{"A": 1, "B": 1, "A+B": 2}
	if diff := cmp.Diff(want, out.Result.Assignments); diff != "" {
		t.Errorf("Assignments mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_CoreqTogetherInfeasible(t *testing.T) {
	tests := []struct {
		name  string
		items []catalog.Item
		max   int
		want  string
	}{
		{
			name: "cluster over quota",
			items: []catalog.Item{
				{ID: "A", Name: "A", Weight: 4, Coreqs: []string{"B"}},
				{ID: "B", Name: "B", Weight: 4, Coreqs: []string{"A"}},
			},
			max:  6,
			want: "Cluster 0 (A, B) exceeds quota (8 > 6)",
		},
		{
			name: "prerequisite inside cluster",
			items: []catalog.Item{
				{ID: "A", Name: "A", Weight: 3, Coreqs: []string{"B"}},
				{ID: "B", Name: "B", Weight: 3, Coreqs: []string{"A"}, Prereqs: []string{"A"}},
			},
			max:  10,
			want: "B requires A but corequisites must share a term",
		},
		{
			name: "members share no offered term",
			items: []catalog.Item{
				{ID: "A", Name: "A", Weight: 3, Coreqs: []string{"B"}, OfferedSlots: []int{1}},
				{ID: "B", Name: "B", Weight: 3, Coreqs: []string{"A"}, OfferedSlots: []int{2}},
			},
			max:  10,
			want: "A+B left unassigned: it is not offered in any of the 4 terms",
		},
		{
			name: "clusters depend on each other",
			items: []catalog.Item{
				{ID: "A", Name: "A", Weight: 3, Coreqs: []string{"B"}},
				{ID: "B", Name: "B", Weight: 3, Coreqs: []string{"A"}, Prereqs: []string{"D"}},
				{ID: "C", Name: "C", Weight: 3, Coreqs: []string{"D"}, Prereqs: []string{"A"}},
				{ID: "D", Name: "D", Weight: 3, Coreqs: []string{"C"}},
			},
			max:  10,
			want: "corequisite clusters form a prerequisite cycle: A+B → C+D → A+B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cons := catalog.Constraints{Slots: 4, MinPerSlot: 3, MaxPerSlot: tt.max, CoreqTogether: true}
			out, err := Plan(context.Background(), catalog.New(tt.items...), cons, Options{})
			if err != nil {
				t.Fatalf("Plan() unexpected error: %v", err)
			}
			if out.Feasible() {
				t.Fatal("Plan() feasible, want infeasible")
			}
			if !strings.Contains(strings.Join(out.Result.Notes, "\n"), tt.want) {
				t.Errorf("Notes = %v, want %q", out.Result.Notes, tt.want)
			}
			found := false
			for _, hint := range out.Hints {
				if hint.Key == HintRelaxCoreqTogether {
					found = true
				}
			}
			if !found {
				t.Errorf("Hints = %v, want %s", out.Hints, HintRelaxCoreqTogether)
			}
		})
	}
}

func TestPlan_Policy(t *testing.T) {
	items := []catalog.Item{
		{ID: "CS101", Name: "Intro", Weight: 3},
		{ID: "CS499", Name: "Capstone", Weight: 3},
	}
	opts := Options{Policy: RulePolicy{{Category: "capstone", IDs: []string{"CS499"}, Terms: []int{4}}}}

	out, err := Plan(context.Background(), catalog.New(items...),
		catalog.Constraints{Slots: 4, MinPerSlot: 3, MaxPerSlot: 6}, opts)
	if err != nil {
		t.Fatalf("Plan() unexpected error: %v", err)
	}
	if !out.Feasible() {
		t.Fatalf("Plan() infeasible: %v", out.Result.Notes)
	}
	if got := out.Result.Slot("CS499"); got != 4 {
		t.Errorf("CS499 slot = %d, want 4", got)
	}
	if diff := cmp.Diff(map[string]string{"CS499": "capstone"}, out.Categories); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
}
