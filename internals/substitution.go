package internals

// freeVariableCost is subtracted once per binding when a Substitution's
// Size is computed, mirroring the original's free_variable_cost constant:
// a FreeVariable binding is "cheaper" to introduce than the raw size of the
// value it stands for would suggest, since the binding itself replaces the
// value wherever it recurs. It is also the contribution a FreeVariable leaf
// makes to Arena.Size, one notch below an ordinary leaf's cost of 1.
const freeVariableCost = 0.5

// binding is one (FreeVariable id) -> (value in some arena) mapping entry.
// Order of insertion is preserved because clonecore's maps must iterate
// deterministically (spec.md §5).
type binding struct {
	freeVarID int
	arena     *Arena
	value     NodeID
}

// Substitution is an ordered map from FreeVariable id to a replacement
// subtree. It mirrors anti_unification.py's Substitution class.
type Substitution struct {
	order []int
	byVar map[int]*binding
}

// NewSubstitution returns an empty Substitution.
func NewSubstitution() *Substitution {
	return &Substitution{byVar: make(map[int]*binding)}
}

// Bind records that FreeVariable id should be replaced by value (a node in
// arena) wherever it appears. Binding the same id twice overwrites the
// previous value but keeps its original insertion position.
func (s *Substitution) Bind(id int, arena *Arena, value NodeID) {
	if b, ok := s.byVar[id]; ok {
		b.arena = arena
		b.value = value
		return
	}
	s.byVar[id] = &binding{freeVarID: id, arena: arena, value: value}
	s.order = append(s.order, id)
}

// Lookup returns the value bound to id, if any.
func (s *Substitution) Lookup(id int) (arena *Arena, value NodeID, ok bool) {
	b, found := s.byVar[id]
	if !found {
		return nil, NoNode, false
	}
	return b.arena, b.value, true
}

// Len reports the number of bindings.
func (s *Substitution) Len() int { return len(s.order) }

// FreeVariableIDs returns the bound FreeVariable ids in insertion order.
func (s *Substitution) FreeVariableIDs() []int {
	return append([]int(nil), s.order...)
}

// Apply rebuilds pattern (a tree possibly containing FreeVariable nodes)
// into dst, replacing every FreeVariable with its bound value. Unbound
// FreeVariables are copied through unchanged (this is the "round-trip"
// half of §8's substitution property: applying both unifier substitutions
// to the unifier recovers the two original trees).
func Apply(dst *Arena, src *Arena, pattern NodeID, sub *Substitution) NodeID {
	n := src.get(pattern)

	if n.kind == KindFreeVariable {
		if arena, value, ok := sub.Lookup(n.freeVarID); ok {
			return copyInto(dst, arena, value)
		}
		return dst.NewFreeVariable(n.freeVarID)
	}

	if len(n.children) == 0 {
		return dst.NewLeaf(n.name, n.statement, n.lines)
	}

	children := make([]NodeID, len(n.children))
	for i, c := range n.children {
		children[i] = Apply(dst, src, c, sub)
	}
	return dst.NewInner(n.name, n.statement, n.lines, children)
}

// copyInto deep-copies src's node id (and its subtree) into dst, preserving
// leaf sharing within the copied subtree.
func copyInto(dst *Arena, src *Arena, id NodeID) NodeID {
	n := src.get(id)
	if n.kind == KindFreeVariable {
		return dst.NewFreeVariable(n.freeVarID)
	}
	if len(n.children) == 0 {
		return dst.NewLeaf(n.name, n.statement, n.lines)
	}
	children := make([]NodeID, len(n.children))
	for i, c := range n.children {
		children[i] = copyInto(dst, src, c)
	}
	return dst.NewInner(n.name, n.statement, n.lines, children)
}

// Size is the cost contribution of this substitution to a Cluster's
// add-cost: the sum, over every binding, of the bound value's own Size
// (None-named leaves included) minus freeVariableCost. Matches
// Substitution.getSize in the original, which always calls getSize with
// ignore_none=False.
func (s *Substitution) Size() float64 {
	total := 0.0
	for _, id := range s.order {
		b := s.byVar[id]
		total += b.arena.Size(b.value, true) - freeVariableCost
	}
	return total
}
