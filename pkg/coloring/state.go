package coloring

import "github.com/matzehuels/chromatic/pkg/graph"

// State is a k-coloring under local search with incremental conflict
// bookkeeping. For every vertex v and color c it keeps the number of
// neighbors of v currently colored c, so the conflict delta of any
// recoloring is available in O(1) and applying a move costs O(deg(v)).
//
// State also maintains the set of vertices that sit on at least one
// conflicting edge, which tabu search and conflict-focused annealing moves
// sample from.
//
// A State is owned by one engine invocation and is not safe for concurrent use.
type State struct {
	g         *graph.Graph
	k         int
	colors    Coloring
	table     []int32 // table[v*k+c] = neighbors of v colored c
	conflicts int

	// conflicting is an indexed set: pos[v] is v's index in conflicting, or -1.
	conflicting []int
	pos         []int
}

// NewState builds the conflict table for initial, which must be a complete
// coloring of g with every color in [0, k). initial is copied.
func NewState(g *graph.Graph, k int, initial Coloring) *State {
	n := g.N()
	s := &State{
		g:      g,
		k:      k,
		colors: initial.Clone(),
		table:  make([]int32, n*k),
		pos:    make([]int, n),
	}
	for v := range n {
		s.pos[v] = -1
		for _, w := range g.Neighbors(v) {
			s.table[v*k+s.colors[w]]++
		}
	}
	for _, e := range g.Edges() {
		if s.colors[e.U] == s.colors[e.V] {
			s.conflicts++
		}
	}
	for v := range n {
		s.refresh(v)
	}
	return s
}

// K returns the color budget.
func (s *State) K() int { return s.k }

// Color returns the current color of v.
func (s *State) Color(v int) int { return s.colors[v] }

// Conflicts returns the number of conflicting edges.
func (s *State) Conflicts() int { return s.conflicts }

// NeighborsColored returns how many neighbors of v currently have color c.
func (s *State) NeighborsColored(v, c int) int { return int(s.table[v*s.k+c]) }

// Delta returns the change in conflicting edges if v were recolored to c.
func (s *State) Delta(v, c int) int {
	row := s.table[v*s.k : (v+1)*s.k]
	return int(row[c]) - int(row[s.colors[v]])
}

// Move recolors v to c and updates the conflict table.
func (s *State) Move(v, c int) {
	old := s.colors[v]
	if old == c {
		return
	}
	s.conflicts += s.Delta(v, c)
	s.colors[v] = c
	for _, w := range s.g.Neighbors(v) {
		s.table[w*s.k+old]--
		s.table[w*s.k+c]++
		s.refresh(w)
	}
	s.refresh(v)
}

// InConflict reports whether v shares its color with at least one neighbor.
func (s *State) InConflict(v int) bool {
	return s.table[v*s.k+s.colors[v]] > 0
}

// ConflictingVertices returns the vertices that are in conflict. The slice
// is owned by the State and is invalidated by the next Move.
func (s *State) ConflictingVertices() []int { return s.conflicting }

// Snapshot returns a copy of the current coloring.
func (s *State) Snapshot() Coloring { return s.colors.Clone() }

// CopyTo copies the current coloring into dst, which must have length n.
func (s *State) CopyTo(dst Coloring) { copy(dst, s.colors) }

func (s *State) refresh(v int) {
	in := s.InConflict(v)
	switch {
	case in && s.pos[v] < 0:
		s.pos[v] = len(s.conflicting)
		s.conflicting = append(s.conflicting, v)
	case !in && s.pos[v] >= 0:
		i := s.pos[v]
		last := s.conflicting[len(s.conflicting)-1]
		s.conflicting[i] = last
		s.pos[last] = i
		s.conflicting = s.conflicting[:len(s.conflicting)-1]
		s.pos[v] = -1
	}
}
