package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/greboid/termplan/pkg/catalog"
	"github.com/greboid/termplan/pkg/planner"
)

// now is replaced in tests.
var now = time.Now

type Course struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Credits  int    `json:"credits" yaml:"credits"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

type Term struct {
	Number  int      `json:"term" yaml:"term"`
	Credits int      `json:"credits" yaml:"credits"`
	Courses []Course `json:"courses" yaml:"courses"`
}

type Limits struct {
	Terms         int  `json:"terms" yaml:"terms"`
	MinCredits    int  `json:"min-credits" yaml:"min-credits"`
	MaxCredits    int  `json:"max-credits" yaml:"max-credits"`
	CoreqTogether bool `json:"coreq-together" yaml:"coreq-together"`
}

// Report is a plan laid out term by term, ready to be written out.
type Report struct {
	Feasible     bool           `json:"feasible" yaml:"feasible"`
	GeneratedAt  time.Time      `json:"generated-at" yaml:"generated-at"`
	TermsUsed    int            `json:"terms-used" yaml:"terms-used"`
	TotalCredits int            `json:"total-credits" yaml:"total-credits"`
	Constraints  Limits         `json:"constraints" yaml:"constraints"`
	Terms        []Term         `json:"terms" yaml:"terms"`
	Unassigned   []Course       `json:"unassigned,omitempty" yaml:"unassigned,omitempty"`
	Notes        []string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	Warnings     []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Hints        []planner.Hint `json:"hints,omitempty" yaml:"hints,omitempty"`
}

// Build lays out result against the catalog it was planned from. Terms that
// end up outside the credit range produce warnings; they do not change
// feasibility.
func Build(cat *catalog.Catalog, cons catalog.Constraints, result planner.PlanResult, hints []planner.Hint) *Report {
	r := &Report{
		Feasible:    result.Feasible,
		GeneratedAt: now(),
		Constraints: Limits{
			Terms:         cons.Slots,
			MinCredits:    cons.MinPerSlot,
			MaxCredits:    cons.MaxPerSlot,
			CoreqTogether: cons.CoreqTogether,
		},
		Notes: result.Notes,
		Hints: hints,
	}

	terms := make(map[int]*Term)
	for _, id := range cat.IDs() {
		item, _ := cat.Lookup(id)
		course := Course{ID: item.ID, Name: item.Name, Credits: item.Weight}

		slot := result.Slot(id)
		if slot == planner.Unassigned {
			r.Unassigned = append(r.Unassigned, course)
			continue
		}

		term, ok := terms[slot]
		if !ok {
			term = &Term{Number: slot}
			terms[slot] = term
		}
		term.Courses = append(term.Courses, course)
		term.Credits += course.Credits
	}

	for _, term := range terms {
		r.Terms = append(r.Terms, *term)
		r.TotalCredits += term.Credits
	}
	sort.Slice(r.Terms, func(i, j int) bool {
		return r.Terms[i].Number < r.Terms[j].Number
	})
	r.TermsUsed = len(r.Terms)

	for _, term := range r.Terms {
		if term.Credits > cons.MaxPerSlot {
			r.Warnings = append(r.Warnings,
				fmt.Sprintf("Term %d exceeds max credits (%d > %d)", term.Number, term.Credits, cons.MaxPerSlot))
		}
		if term.Credits < cons.MinPerSlot {
			r.Warnings = append(r.Warnings,
				fmt.Sprintf("Term %d below min credits (%d < %d)", term.Number, term.Credits, cons.MinPerSlot))
		}
	}

	return r
}

// WithCategories tags courses with the category keys of a planning run.
func (r *Report) WithCategories(categories map[string]string) *Report {
	for i := range r.Terms {
		for j := range r.Terms[i].Courses {
			r.Terms[i].Courses[j].Category = categories[r.Terms[i].Courses[j].ID]
		}
	}
	for i := range r.Unassigned {
		r.Unassigned[i].Category = categories[r.Unassigned[i].ID]
	}
	return r
}
