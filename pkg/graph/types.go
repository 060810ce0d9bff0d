package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Vertices are numbered in ascending identifier order.
type Graph struct {
	ids     []string
	index   map[string]int
	adj     [][]int
	prereqs [][]int
	indeg   []int
}

func (g *Graph) V() int {
	return len(g.ids)
}

func (g *Graph) ID(v int) string {
	return g.ids[v]
}

func (g *Graph) Index(id string) (int, bool) {
	v, ok := g.index[id]
	return v, ok
}

func (g *Graph) IDs() []string {
	out := make([]string, len(g.ids))
	copy(out, g.ids)
	return out
}

func (g *Graph) Dependents(v int) []int {
	return g.adj[v]
}

func (g *Graph) Prerequisites(v int) []int {
	return g.prereqs[v]
}

func (g *Graph) Indegree(v int) int {
	return g.indeg[v]
}

func (g *Graph) Edges() int {
	n := 0
	for _, out := range g.adj {
		n += len(out)
	}
	return n
}

type ErrorKind int

const (
	EmptyIdentifier ErrorKind = iota + 1
	DuplicateIdentifier
	UnknownReference
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyIdentifier:
		return "empty identifier"
	case DuplicateIdentifier:
		return "duplicate identifier"
	case UnknownReference:
		return "unknown reference"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

type StructuralError struct {
	Kind ErrorKind
	ID   string
	Ref  string
}

func (e *StructuralError) Error() string {
	switch e.Kind {
	case EmptyIdentifier:
		return "structural error: item with empty identifier"
	case DuplicateIdentifier:
		return fmt.Sprintf("structural error: duplicate identifier %q", e.ID)
	case UnknownReference:
		return fmt.Sprintf("structural error: %q references unknown item %q", e.ID, e.Ref)
	default:
		return fmt.Sprintf("structural error: %s", e.Kind)
	}
}

var ErrCyclicGraph = errors.New("graph contains a cycle")

// On a cycle OK is false and Vertices holds only what could be ordered.
type Order struct {
	Vertices []int
	OK       bool
}

func (o Order) IDs(g *Graph) []string {
	ids := make([]string, len(o.Vertices))
	for i, v := range o.Vertices {
		ids[i] = g.ID(v)
	}
	return ids
}

func (o Order) Positions(v int) []int {
	pos := make([]int, v)
	for i := range pos {
		pos[i] = -1
	}
	for i, u := range o.Vertices {
		pos[u] = i
	}
	return pos
}

// Cycle lists a closed walk without repeating the first element.
type Cycle []string

func (c Cycle) String() string {
	if len(c) == 0 {
		return ""
	}
	return strings.Join(append(append([]string{}, c...), c[0]), " → ")
}

type CircularDependencyError struct {
	Chain Cycle
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular prerequisite chain detected: %s", e.Chain)
}
