package rdf

// Graph is an in-memory set of triples with subject and object indexes.
// Add is not safe for concurrent use; all query methods are, once the
// graph is fully built.
type Graph struct {
	triples []Triple
	seen    map[Triple]struct{}
	spo     map[Term]map[Term][]Term // subject -> predicate -> objects
	ops     map[Term]map[Term][]Term // object -> predicate -> subjects
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		seen: make(map[Triple]struct{}),
		spo:  make(map[Term]map[Term][]Term),
		ops:  make(map[Term]map[Term][]Term),
	}
}

// Add inserts a triple. Duplicate triples are ignored, matching RDF set
// semantics.
func (g *Graph) Add(s, p, o Term) {
	t := Triple{S: s, P: p, O: o}
	if _, dup := g.seen[t]; dup {
		return
	}
	g.seen[t] = struct{}{}
	g.triples = append(g.triples, t)

	byPred := g.spo[s]
	if byPred == nil {
		byPred = make(map[Term][]Term)
		g.spo[s] = byPred
	}
	byPred[p] = append(byPred[p], o)

	byPredInv := g.ops[o]
	if byPredInv == nil {
		byPredInv = make(map[Term][]Term)
		g.ops[o] = byPredInv
	}
	byPredInv[p] = append(byPredInv[p], s)
}

// AddTriple inserts a pre-built triple.
func (g *Graph) AddTriple(t Triple) {
	g.Add(t.S, t.P, t.O)
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns all triples in insertion order. The returned slice is
// shared; callers must not modify it.
func (g *Graph) Triples() []Triple {
	return g.triples
}

// Has reports whether the exact triple is present.
func (g *Graph) Has(s, p, o Term) bool {
	_, ok := g.seen[Triple{S: s, P: p, O: o}]
	return ok
}

// HasAny reports whether the subject has at least one value for the
// predicate.
func (g *Graph) HasAny(s, p Term) bool {
	return len(g.spo[s][p]) > 0
}

// Objects returns all objects of (s, p, ?), in insertion order.
func (g *Graph) Objects(s, p Term) []Term {
	return g.spo[s][p]
}

// Object returns the first object of (s, p, ?) or the zero Term.
func (g *Graph) Object(s, p Term) Term {
	if os := g.spo[s][p]; len(os) > 0 {
		return os[0]
	}
	return Term{}
}

// Subjects returns all subjects of (?, p, o), in insertion order.
func (g *Graph) Subjects(p, o Term) []Term {
	return g.ops[o][p]
}

// SubjectsOfType returns all subjects declared rdf:type class.
func (g *Graph) SubjectsOfType(class Term) []Term {
	return g.Subjects(IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"), class)
}

// HasType reports whether s is declared rdf:type class.
func (g *Graph) HasType(s, class Term) bool {
	return g.Has(s, IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"), class)
}

// SubjectsWithPredicate returns the distinct subjects that have at least
// one value for p, in first-seen order.
func (g *Graph) SubjectsWithPredicate(p Term) []Term {
	var out []Term
	seen := make(map[Term]struct{})
	for _, t := range g.triples {
		if t.P != p {
			continue
		}
		if _, ok := seen[t.S]; ok {
			continue
		}
		seen[t.S] = struct{}{}
		out = append(out, t.S)
	}
	return out
}

// PathObjects follows a property path s/p1/p2/... and returns the distinct
// terms reachable at the end of the path.
func (g *Graph) PathObjects(s Term, path ...Term) []Term {
	frontier := []Term{s}
	for _, p := range path {
		var next []Term
		dedup := make(map[Term]struct{})
		for _, node := range frontier {
			for _, o := range g.Objects(node, p) {
				if _, ok := dedup[o]; ok {
					continue
				}
				dedup[o] = struct{}{}
				next = append(next, o)
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return frontier
}

// Reachable reports whether target is reachable from start via zero or
// more hops along predicate p (forward direction). A visited set bounds
// the walk, so cyclic data terminates.
func (g *Graph) Reachable(start, p, target Term) bool {
	return g.reachable(start, p, target, false)
}

// ReachableInverse is Reachable along the inverse direction of p: each hop
// follows a (child, p, parent) triple from parent to child.
func (g *Graph) ReachableInverse(start, p, target Term) bool {
	return g.reachable(start, p, target, true)
}

func (g *Graph) reachable(start, p, target Term, inverse bool) bool {
	if start == target {
		return true
	}
	visited := map[Term]struct{}{start: {}}
	queue := []Term{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		var next []Term
		if inverse {
			next = g.Subjects(p, node)
		} else {
			next = g.Objects(node, p)
		}
		for _, n := range next {
			if n == target {
				return true
			}
			if _, ok := visited[n]; ok {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return false
}

// Distinct returns terms with duplicates removed, preserving order.
func Distinct(terms []Term) []Term {
	seen := make(map[Term]struct{}, len(terms))
	out := terms[:0:0]
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
