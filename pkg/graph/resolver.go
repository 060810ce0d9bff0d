package graph

import (
	"container/heap"
	"log/slog"
)

func (g *Graph) Order() Order {
	indeg := make([]int, g.V())
	copy(indeg, g.indeg)

	ready := &minHeap{}
	for v, d := range indeg {
		if d == 0 {
			heap.Push(ready, v)
		}
	}

	order := make([]int, 0, g.V())
	for ready.Len() > 0 {
		u := heap.Pop(ready).(int)
		order = append(order, u)

		for _, v := range g.adj[u] {
			indeg[v]--
			if indeg[v] == 0 {
				heap.Push(ready, v)
			}
		}
	}

	ok := len(order) == g.V()
	if !ok {
		slog.Debug("topological order incomplete",
			"ordered", len(order),
			"vertices", g.V())
	}

	return Order{Vertices: order, OK: ok}
}

type color uint8

const (
	white color = iota
	gray
	black
)

type frame struct {
	v    int
	next int
}

func (g *Graph) FindCycle() Cycle {
	colors := make([]color, g.V())
	parent := make([]int, g.V())
	for i := range parent {
		parent[i] = -1
	}

	for s := 0; s < g.V(); s++ {
		if colors[s] != white {
			continue
		}

		colors[s] = gray
		stack := []frame{{v: s}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.next < len(g.adj[top.v]) {
				u := top.v
				w := g.adj[u][top.next]
				top.next++

				switch colors[w] {
				case white:
					parent[w] = u
					colors[w] = gray
					stack = append(stack, frame{v: w})
				case gray:
					return g.buildCyclePath(u, w, parent)
				}
				continue
			}

			colors[top.v] = black
			stack = stack[:len(stack)-1]
		}
	}

	return nil
}

// buildCyclePath walks parent pointers from u back to the gray ancestor w and
// returns the path in edge direction, starting at w.
func (g *Graph) buildCyclePath(u, w int, parent []int) Cycle {
	path := []int{u}
	for x := u; x != w; {
		x = parent[x]
		path = append(path, x)
	}

	cycle := make(Cycle, len(path))
	for i, v := range path {
		cycle[len(path)-1-i] = g.ids[v]
	}
	return cycle
}

type minHeap []int

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) {
	*h = append(*h, x.(int))
}

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
