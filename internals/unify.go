package internals

// Unify computes the anti-unifier of t1 (in a1) and t2 (in a2): the most
// specific tree that generalizes both, built into dst, plus the two
// substitutions that recover t1 and t2 from it, plus a distance measuring
// how much had to be generalized away.
//
// ignoreParametrization is accepted for API completeness (spec.md's Open
// Questions leave it in the signature) but every caller in clonecore passes
// false; it is threaded through recursive calls unused, reserved for a
// future parametrization-aware comparison mode.
func Unify(dst, a1 *Arena, t1 NodeID, a2 *Arena, t2 NodeID, ctx *Context, ignoreParametrization bool) (unifier NodeID, sub1, sub2 *Substitution, distance float64) {
	u, s1, s2 := unifyNode(dst, a1, t1, a2, t2, ctx, ignoreParametrization)
	return u, s1, s2, s1.Size() + s2.Size()
}

func unifyNode(dst, a1 *Arena, t1 NodeID, a2 *Arena, t2 NodeID, ctx *Context, ignoreParametrization bool) (NodeID, *Substitution, *Substitution) {
	if StructuralEqual(a1, t1, a2, t2) {
		return copyInto(dst, a1, t1), NewSubstitution(), NewSubstitution()
	}

	n1, n2 := a1.get(t1), a2.get(t2)
	compatible := n1.kind == KindKnown && n2.kind == KindKnown &&
		n1.name == n2.name && n1.statement == n2.statement &&
		len(n1.children) == len(n2.children) && len(n1.children) > 0

	if !compatible {
		id := ctx.NewFreeVariable()
		v := dst.NewFreeVariable(id)
		s1, s2 := NewSubstitution(), NewSubstitution()
		s1.Bind(id, a1, t1)
		s2.Bind(id, a2, t2)
		return v, s1, s2
	}

	children := make([]NodeID, len(n1.children))
	sub1, sub2 := NewSubstitution(), NewSubstitution()
	for i := range n1.children {
		cu, cs1, cs2 := unifyNode(dst, a1, n1.children[i], a2, n2.children[i], ctx, ignoreParametrization)
		cu = mergeSubs(dst, sub1, sub2, cs1, cs2, cu)
		children[i] = cu
	}
	return dst.NewInner(n1.name, n1.statement, n1.lines, children), sub1, sub2
}

// mergeSubs folds a child's freshly introduced bindings into the
// accumulating parent substitutions. When a child introduces a binding
// pair (v1, v2) that is structurally identical to one already recorded in
// accum (same value on both sides), the child's unifier subtree is
// rewritten to point at the existing FreeVariable node instead of keeping a
// redundant second one — this is what keeps repeated identical mismatches
// within one Unify call collapsed onto a single placeholder, mirroring
// Unifier._combineSubs in the original.
func mergeSubs(dst *Arena, accum1, accum2, child1, child2 *Substitution, childUnifier NodeID) NodeID {
	if child1.Len() == 0 {
		return childUnifier
	}

	relabel := make(map[int]int, child1.Len())
	for _, id := range child1.FreeVariableIDs() {
		arena1, val1, _ := child1.Lookup(id)
		arena2, val2, _ := child2.Lookup(id)

		reused := -1
		for _, existing := range accum1.FreeVariableIDs() {
			ea1, ev1, _ := accum1.Lookup(existing)
			ea2, ev2, _ := accum2.Lookup(existing)
			if StructuralEqual(ea1, ev1, arena1, val1) && StructuralEqual(ea2, ev2, arena2, val2) {
				reused = existing
				break
			}
		}

		if reused >= 0 {
			relabel[id] = reused
		} else {
			accum1.Bind(id, arena1, val1)
			accum2.Bind(id, arena2, val2)
		}
	}

	if len(relabel) > 0 {
		childUnifier = relabelFreeVariables(dst, childUnifier, relabel)
	}
	return childUnifier
}

// relabelFreeVariables replaces every relabeled FreeVariable node within a
// just-built (and thus exclusively owned) subtree of dst by the earliest
// FreeVariable node in dst carrying the new id, and returns the subtree's
// (possibly replaced) root.
func relabelFreeVariables(dst *Arena, id NodeID, relabel map[int]int) NodeID {
	nd := dst.get(id)
	if nd.kind == KindFreeVariable {
		if newID, ok := relabel[nd.freeVarID]; ok {
			for i := range dst.nodes {
				if n := &dst.nodes[i]; n.kind == KindFreeVariable && n.freeVarID == newID {
					return NodeID(i)
				}
			}
		}
		return id
	}
	for i, c := range nd.children {
		nd.children[i] = relabelFreeVariables(dst, c, relabel)
	}
	return id
}
