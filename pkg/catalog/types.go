package catalog

import (
	"fmt"
	"slices"
	"sort"
)

// Item is a schedulable course.
type Item struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Weight       int      `yaml:"credits"`
	Prereqs      []string `yaml:"prereqs,omitempty"`
	Coreqs       []string `yaml:"coreqs,omitempty"`
	Group        string   `yaml:"group,omitempty"`
	OfferedSlots []int    `yaml:"offered-terms,omitempty"`
}

// Restricted reports whether the item may only be placed in some slots.
func (i Item) Restricted() bool {
	return len(i.OfferedSlots) > 0
}

// OfferedIn reports whether the item may be placed in slot.
func (i Item) OfferedIn(slot int) bool {
	return !i.Restricted() || slices.Contains(i.OfferedSlots, slot)
}

// Constraints bound a plan. They are never mutated once handed to the planner.
type Constraints struct {
	Slots         int   `yaml:"terms"`
	MinPerSlot    int   `yaml:"min-credits"`
	MaxPerSlot    int   `yaml:"max-credits"`
	CoreqTogether bool  `yaml:"coreq-together,omitempty"`
	OfferedSlots  []int `yaml:"offered-terms,omitempty"`
}

func (c Constraints) IsEmpty() bool {
	return c.Slots == 0 && c.MinPerSlot == 0 && c.MaxPerSlot == 0 &&
		!c.CoreqTogether && len(c.OfferedSlots) == 0
}

func (c Constraints) Validate() error {
	if c.Slots <= 0 {
		return fmt.Errorf("terms must be greater than 0, got %d", c.Slots)
	}
	if c.MinPerSlot <= 0 {
		return fmt.Errorf("min-credits must be greater than 0, got %d", c.MinPerSlot)
	}
	if c.MaxPerSlot < c.MinPerSlot {
		return fmt.Errorf("max-credits (%d) cannot be less than min-credits (%d)", c.MaxPerSlot, c.MinPerSlot)
	}
	for _, s := range c.OfferedSlots {
		if s < 1 || s > c.Slots {
			return fmt.Errorf("offered term %d must be within [1..%d]", s, c.Slots)
		}
	}
	return nil
}

// ElectiveGroup is a named pool from which Required items must be chosen.
// An empty Candidates list means every item tagged with the group id.
type ElectiveGroup struct {
	ID         string         `yaml:"id"`
	Required   int            `yaml:"required"`
	Candidates []string       `yaml:"candidates,omitempty"`
	Priorities map[string]int `yaml:"priorities,omitempty"`
}

// Catalog is the set of items a plan is built from.
type Catalog struct {
	Items  []Item
	Groups []ElectiveGroup
}

func New(items ...Item) *Catalog {
	return &Catalog{Items: items}
}

func (c *Catalog) Lookup(id string) (Item, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// IDs returns the item identifiers in ascending order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ID)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) Weights() map[string]int {
	weights := make(map[string]int, len(c.Items))
	for _, item := range c.Items {
		weights[item.ID] = item.Weight
	}
	return weights
}

func (c *Catalog) Prerequisites() map[string][]string {
	prereqs := make(map[string][]string, len(c.Items))
	for _, item := range c.Items {
		prereqs[item.ID] = item.Prereqs
	}
	return prereqs
}

func (c *Catalog) Corequisites() map[string][]string {
	coreqs := make(map[string][]string, len(c.Items))
	for _, item := range c.Items {
		if len(item.Coreqs) > 0 {
			coreqs[item.ID] = item.Coreqs
		}
	}
	return coreqs
}

// Subset returns a catalog holding only the items in keep. Co-requisite
// references to dropped items are removed; groups are not carried over.
func (c *Catalog) Subset(keep map[string]bool) *Catalog {
	out := &Catalog{}
	for _, item := range c.Items {
		if !keep[item.ID] {
			continue
		}
		var coreqs []string
		for _, co := range item.Coreqs {
			if keep[co] {
				coreqs = append(coreqs, co)
			}
		}
		item.Coreqs = coreqs
		out.Items = append(out.Items, item)
	}
	return out
}

// GroupPool returns the candidate pool of g.
func (c *Catalog) GroupPool(g ElectiveGroup) []string {
	if len(g.Candidates) > 0 {
		return g.Candidates
	}
	var pool []string
	for _, item := range c.Items {
		if item.Group == g.ID {
			pool = append(pool, item.ID)
		}
	}
	return pool
}
