package internals

import "sort"

// frame is the explicit stack frame used by the iterative post-order
// traversals below. Expression trees from real parsers can be deep enough
// that plain recursion risks the goroutine stack; every per-root pass that
// walks a whole subtree uses this shape instead (Design Notes §9).
type frame struct {
	id       NodeID
	childIdx int
}

// Size returns id's subtree size: only leaves contribute, an ordinary leaf
// costs 1 and a FreeVariable leaf costs freeVariableCost (0.5); inner nodes
// contribute nothing of their own, they merely sum their children. Leaves
// are deduplicated by identity (NodeID equality) within this one
// computation, so a leaf shared by two branches (interned via NewLeaf)
// contributes once, not twice. When includeNone is false, leaves named
// "None" are excluded from the sum. Mirrors Node.getSize/storeSize in the
// original, where free_variable_cost = 0.5 and a separate none_count is
// subtracted when ignore_none is requested.
//
// The raw sum (every leaf counted, "None" leaves included) and the
// none-leaf count are cached together on first computation, since both are
// intrinsic properties of the node and do not depend on includeNone.
func (a *Arena) Size(id NodeID, includeNone bool) float64 {
	n := a.get(id)
	if !n.sizeValid {
		n.size, n.noneCount = a.computeSize(id)
		n.sizeValid = true
	}
	if includeNone {
		return n.size
	}
	return n.size - float64(n.noneCount)
}

func (a *Arena) computeSize(id NodeID) (total float64, noneCount int) {
	seen := make(map[NodeID]bool)
	stack := []NodeID{id}
	for len(stack) > 0 {
		top := len(stack) - 1
		cur := stack[top]
		stack = stack[:top]

		nd := a.get(cur)
		if len(nd.children) == 0 {
			if seen[cur] {
				continue
			}
			seen[cur] = true
			if nd.name == "None" {
				noneCount++
			}
			if nd.kind == KindFreeVariable {
				total += freeVariableCost
			} else {
				total++
			}
			continue
		}
		stack = append(stack, nd.children...)
	}
	return total, noneCount
}

// Height returns the length of the longest root-to-leaf path under id
// (a leaf has height 0). Cached per node, computed once per root via an
// iterative post-order walk.
func (a *Arena) Height(id NodeID) int {
	if n := a.get(id); n.heightDone {
		return n.height
	}

	stack := []frame{{id: id}}
	for len(stack) > 0 {
		top := len(stack) - 1
		cur := stack[top].id
		nd := a.get(cur)
		idx := stack[top].childIdx

		if nd.heightDone {
			stack = stack[:top]
			continue
		}
		if idx < len(nd.children) {
			stack[top].childIdx = idx + 1
			stack = append(stack, frame{id: nd.children[idx]})
			continue
		}

		h := 0
		for _, c := range nd.children {
			if ch := a.get(c).height + 1; ch > h {
				h = ch
			}
		}
		nd.height = h
		nd.heightDone = true
		stack = stack[:top]
	}
	return a.get(id).height
}

// CoveredLines returns the sorted, deduplicated set of source line numbers
// attached anywhere in id's subtree. Cached per node, computed once per
// root via an iterative post-order walk.
func (a *Arena) CoveredLines(id NodeID) []int {
	if n := a.get(id); n.coverDone {
		return n.coverLines
	}

	stack := []frame{{id: id}}
	for len(stack) > 0 {
		top := len(stack) - 1
		cur := stack[top].id
		nd := a.get(cur)
		idx := stack[top].childIdx

		if nd.coverDone {
			stack = stack[:top]
			continue
		}
		if idx < len(nd.children) {
			stack[top].childIdx = idx + 1
			stack = append(stack, frame{id: nd.children[idx]})
			continue
		}

		lines := append([]int(nil), nd.lines...)
		for _, c := range nd.children {
			lines = append(lines, a.get(c).coverLines...)
		}
		nd.coverLines = dedupSortInts(lines)
		nd.coverDone = true
		stack = stack[:top]
	}
	return a.get(id).coverLines
}

// CoveredLineCount is a convenience wrapper used by the suffix tree's
// f_elem weighting function (spec.md §4.E).
func (a *Arena) CoveredLineCount(id NodeID) int {
	return len(a.CoveredLines(id))
}

func dedupSortInts(xs []int) []int {
	if len(xs) == 0 {
		return xs
	}
	sort.Ints(xs)
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// DCupHash computes the depth-bounded structural hash of id, mirroring
// Node.getDCupHash: a leaf (no children, FreeVariable or otherwise)
// contributes nothing of its own and hashes to the fixed value obtained by
// folding an accumulator of 0 — leaves are interchangeable for bucketing
// purposes, only shape matters. An inner node's accumulator starts at
// (depth+1)*hash(name)*len(children); unless depth is exactly the cutoff
// (depth == 0), each child's hash at depth-1 is added in, weighted by its
// 1-based position (i+1) so that reordering children changes the result.
// depth<0 means unbounded (mirrors the original's getFullHash ==
// getDCupHash(-1)): it never reaches the depth==0 cutoff, so recursion
// continues to the leaves.
//
// Results are memoized per (node, depth), since the same node may be asked
// for different depths across a run (hashing_depth is fixed per
// configuration, but tests exercise several).
func (a *Arena) DCupHash(id NodeID, depth int, algo Algorithm) uint64 {
	n := a.get(id)
	if n.dcup == nil {
		n.dcup = make(map[int]uint64)
	}
	if v, ok := n.dcup[depth]; ok {
		return v
	}

	var acc uint64
	if len(n.children) > 0 {
		acc = uint64(depth+1) * mixString(algo, n.name) * uint64(len(n.children))
	}
	if depth != 0 {
		for i, c := range n.children {
			acc += uint64(i+1) * a.DCupHash(c, depth-1, algo)
		}
	}
	v := mixUint64(algo, acc, 0)
	n.dcup[depth] = v
	return v
}

// FullHash is DCupHash with an unbounded depth, matching the original's
// getFullHash().
func (a *Arena) FullHash(id NodeID, algo Algorithm) uint64 {
	return a.DCupHash(id, -1, algo)
}

// StructuralEqual reports whether two subtrees (possibly in different
// arenas) have identical shape and labels, ignoring FreeVariable payload
// (two FreeVariables are always structurally equal to each other). Used by
// the property tests in §8 ("structural equality implies hash equality at
// every depth bound").
func StructuralEqual(a1 *Arena, id1 NodeID, a2 *Arena, id2 NodeID) bool {
	n1, n2 := a1.get(id1), a2.get(id2)
	if n1.kind != n2.kind {
		return false
	}
	if n1.kind == KindFreeVariable {
		return true
	}
	if n1.name != n2.name || n1.statement != n2.statement {
		return false
	}
	if len(n1.children) != len(n2.children) {
		return false
	}
	for i := range n1.children {
		if !StructuralEqual(a1, n1.children[i], a2, n2.children[i]) {
			return false
		}
	}
	return true
}

// AncestorsThatAreStatements walks id's parent chain and returns every
// ancestor (closest first) for which IsStatement is true. Used by
// dominated-clone removal to find the enclosing statements of a clone.
func (a *Arena) AncestorsThatAreStatements(id NodeID) []NodeID {
	var out []NodeID
	for p := a.Parent(id); p != NoNode; p = a.Parent(p) {
		if a.IsStatement(p) {
			out = append(out, p)
		}
	}
	return out
}

// SourceLines returns id's own line numbers followed by nothing else — the
// "getSourceLines" analogue used by report rendering to show a clone's
// anchor line without walking its whole subtree.
func (a *Arena) SourceLines(id NodeID) []int {
	return append([]int(nil), a.get(id).lines...)
}
