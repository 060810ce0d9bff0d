package planner

import (
	"slices"
	"strings"

	"github.com/greboid/termplan/pkg/catalog"
)

// Category is the classification of an item. A lower Rank is placed first
// among items with the same earliest slot. A non-empty Slots restricts the
// item to those slots on top of its own offered terms.
type Category struct {
	Key   string
	Rank  int
	Slots []int
}

type ClassificationPolicy interface {
	Classify(item catalog.Item) Category
}

type PolicyFunc func(item catalog.Item) Category

func (f PolicyFunc) Classify(item catalog.Item) Category {
	return f(item)
}

// Rule is one entry of a RulePolicy. An item matches when its id is listed,
// starts with one of the prefixes, or carries one of the group tags.
type Rule struct {
	Category string   `yaml:"category"`
	IDs      []string `yaml:"ids,omitempty"`
	Prefixes []string `yaml:"prefixes,omitempty"`
	Groups   []string `yaml:"groups,omitempty"`
	Rank     int      `yaml:"rank,omitempty"`
	Terms    []int    `yaml:"terms,omitempty"`
}

func (r Rule) Matches(item catalog.Item) bool {
	if slices.Contains(r.IDs, item.ID) {
		return true
	}
	for _, prefix := range r.Prefixes {
		if strings.HasPrefix(item.ID, prefix) {
			return true
		}
	}
	return item.Group != "" && slices.Contains(r.Groups, item.Group)
}

// RulePolicy classifies an item by the first rule it matches. Unmatched items
// get the zero Category.
type RulePolicy []Rule

func (p RulePolicy) Classify(item catalog.Item) Category {
	for _, rule := range p {
		if rule.Matches(item) {
			return Category{Key: rule.Category, Rank: rule.Rank, Slots: rule.Terms}
		}
	}
	return Category{}
}

func classify(policy ClassificationPolicy, item catalog.Item) Category {
	if policy == nil {
		return Category{}
	}
	return policy.Classify(item)
}

// allowedSlots returns the slots item may occupy, or nil when every slot in
// 1..cons.Slots is allowed. An empty non-nil result means no slot is.
func allowedSlots(item catalog.Item, cons catalog.Constraints, category Category) []int {
	if !item.Restricted() && len(cons.OfferedSlots) == 0 && len(category.Slots) == 0 {
		return nil
	}

	allowed := []int{}
	for s := 1; s <= cons.Slots; s++ {
		if !item.OfferedIn(s) {
			continue
		}
		if len(cons.OfferedSlots) > 0 && !slices.Contains(cons.OfferedSlots, s) {
			continue
		}
		if len(category.Slots) > 0 && !slices.Contains(category.Slots, s) {
			continue
		}
		allowed = append(allowed, s)
	}
	return allowed
}

// intersectSlots combines allowed-slot lists where nil means unrestricted.
func intersectSlots(lists ...[]int) []int {
	var out []int
	for _, list := range lists {
		if list == nil {
			continue
		}
		if out == nil {
			out = slices.Clone(list)
			if out == nil {
				out = []int{}
			}
			continue
		}
		out = slices.DeleteFunc(out, func(s int) bool {
			return !slices.Contains(list, s)
		})
	}
	return out
}
