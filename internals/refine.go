package internals

// Clone is one reported duplicate: two equal-length statement spans and
// the anti-unification distance between them.
type Clone struct {
	First, Second []StatementRef
	Distance      float64
}

// span is a worklist entry for RefineDuplicates: a candidate pair still
// waiting to be trimmed to a distance-acceptable sub-range.
type span struct {
	first, second []StatementRef
}

// RefineDuplicates trims each suffix-tree Candidate down to the largest
// contiguous sub-range whose anti-unification distance is within
// distanceThreshold and whose covered-line count meets sizeThreshold,
// re-queuing the prefix and suffix left over after a match so they get
// their own chance at being accepted. distanceThreshold == -1 is a
// pass-through mode (spec.md §8): candidates are returned unchanged,
// wrapped as zero-distance Clones, with no trimming performed at all.
// Mirrors refineDuplicates in the original.
func RefineDuplicates(ctx *Context, candidates []Candidate, seqOf func(seqIndex int) []StatementRef, sizeThreshold, distanceThreshold int) []Clone {
	if distanceThreshold == -1 {
		out := make([]Clone, 0, len(candidates))
		for _, c := range candidates {
			out = append(out, Clone{
				First:  seqOf(c.First.SeqIndex)[c.First.Start : c.First.Start+c.Length],
				Second: seqOf(c.Second.SeqIndex)[c.Second.Start : c.Second.Start+c.Length],
			})
		}
		return out
	}

	worklist := make([]span, 0, len(candidates))
	for _, c := range candidates {
		worklist = append(worklist, span{
			first:  seqOf(c.First.SeqIndex)[c.First.Start : c.First.Start+c.Length],
			second: seqOf(c.Second.SeqIndex)[c.Second.Start : c.Second.Start+c.Length],
		})
	}

	var out []Clone
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		n := len(cur.first)
		if len(cur.second) < n {
			n = len(cur.second)
		}
		if n == 0 {
			continue
		}

		accepted := false
		for length := n; length >= 1 && !accepted; length-- {
			for start := 0; start+length <= n; start++ {
				f := cur.first[start : start+length]
				s := cur.second[start : start+length]
				pair := PairSequences{First: f, Second: s}
				if pair.MaxCoveredLineNumbersCount() < sizeThreshold {
					continue
				}
				dist := pair.CalcDistance(ctx)
				if dist >= float64(distanceThreshold) {
					continue
				}

				out = append(out, Clone{First: f, Second: s, Distance: dist})
				if start > 0 {
					worklist = append(worklist, span{first: cur.first[:start], second: cur.second[:start]})
				}
				tailStart := start + length
				if tailStart < len(cur.first) && tailStart < len(cur.second) {
					worklist = append(worklist, span{first: cur.first[tailStart:], second: cur.second[tailStart:]})
				}
				accepted = true
				break
			}
		}
	}
	return out
}

// statementKey identifies a statement node for the dominance map below;
// NodeID is only unique within its own Arena, so the pointer is part of
// the key.
type statementKey struct {
	arena *Arena
	node  NodeID
}

// RemoveDominatedClones drops any clone every one of whose statements is
// also covered, on both sides, by an ancestor statement that itself
// participates in some other reported clone — such a clone adds no
// information beyond the coarser one that already contains it. The input
// order is preserved and never sorted, matching observed behavior of
// remove_dominated_clones in the original (whose candidate comparator is
// present in source but commented out).
func RemoveDominatedClones(clones []Clone) []Clone {
	belongsTo := make(map[statementKey][]int)
	register := func(refs []StatementRef, idx int) {
		for _, r := range refs {
			k := statementKey{r.Arena, r.Node}
			belongsTo[k] = append(belongsTo[k], idx)
		}
	}
	for i, c := range clones {
		register(c.First, i)
		register(c.Second, i)
	}

	dominated := make([]bool, len(clones))
	for i, c := range clones {
		dominated[i] = hasDominatingAncestor(c.First, belongsTo, i) && hasDominatingAncestor(c.Second, belongsTo, i)
	}

	out := make([]Clone, 0, len(clones))
	for i, c := range clones {
		if !dominated[i] {
			out = append(out, c)
		}
	}
	return out
}

func hasDominatingAncestor(refs []StatementRef, belongsTo map[statementKey][]int, selfIdx int) bool {
	for _, r := range refs {
		found := false
		for _, anc := range r.Arena.AncestorsThatAreStatements(r.Node) {
			for _, idx := range belongsTo[statementKey{r.Arena, anc}] {
				if idx != selfIdx {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
