package planner

// chainLink is a prerequisite chain stored back to front, so that chains
// sharing a prefix share their links.
type chainLink struct {
	id     string
	prev   *chainLink
	length int
}

func (l *chainLink) ids() []string {
	if l == nil {
		return nil
	}
	out := make([]string, l.length)
	for i := l.length - 1; l != nil; i, l = i-1, l.prev {
		out[i] = l.id
	}
	return out
}

type chainFrame struct {
	id      string
	next    int
	longest *chainLink
}

// ExplainChain returns the longest prerequisite chain ending at target,
// ordered from the deepest ancestor to target. On equal lengths the earlier
// listed prerequisite wins. A prerequisite met again while its own chain is
// still being computed contributes a chain of just itself.
func ExplainChain(prereqs map[string][]string, target string) []string {
	memo := make(map[string]*chainLink)
	visiting := map[string]bool{target: true}
	stack := []*chainFrame{{id: target}}

	for {
		top := stack[len(stack)-1]

		if pres := prereqs[top.id]; top.next < len(pres) {
			pre := pres[top.next]
			top.next++

			chain, done := memo[pre]
			if !done {
				if !visiting[pre] {
					visiting[pre] = true
					stack = append(stack, &chainFrame{id: pre})
					continue
				}
				chain = &chainLink{id: pre, length: 1}
			}
			if top.longest == nil || chain.length > top.longest.length {
				top.longest = chain
			}
			continue
		}

		chain := &chainLink{id: top.id, prev: top.longest, length: 1}
		if top.longest != nil {
			chain.length += top.longest.length
		}
		memo[top.id] = chain
		delete(visiting, top.id)
		stack = stack[:len(stack)-1]

		if len(stack) == 0 {
			return chain.ids()
		}
		if parent := stack[len(stack)-1]; parent.longest == nil || chain.length > parent.longest.length {
			parent.longest = chain
		}
	}
}
