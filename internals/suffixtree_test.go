package internals

import "testing"

func statementRefForMark(mark int) StatementRef {
	a := NewArena()
	n := a.NewInner("stmt", true, []int{1}, nil)
	a.SetMark(n, mark)
	return StatementRef{Arena: a, Node: n}
}

func TestSuffixTreeAddInsertsEverySuffix(t *testing.T) {
	tree := NewSuffixTree()
	idx := tree.Add([]int{1, 2, 3})
	if idx != 0 {
		t.Errorf(`expected first Add to return sequence index 0, got %d`, idx)
	}
	// root.Through records one entry per suffix start: 3 for a length-3 string
	if len(tree.root.Through) != 3 {
		t.Errorf(`expected root.Through to record 3 suffix starts, got %d`, len(tree.root.Through))
	}
}

func TestSuffixTreeFindsRepeatedSubstringAcrossSequences(t *testing.T) {
	tree := NewSuffixTree()
	tree.Add([]int{1, 2, 3})
	tree.Add([]int{1, 2, 4})

	elemAt := func(seqIndex, offset int) StatementRef {
		return statementRefForMark(offset)
	}
	fWeight := func(StatementRef) int { return 1 }
	fElem := func(StatementRef) int { return 0 }

	candidates := tree.GetBestMaxSubstrings(0, elemAt, fWeight, fElem)
	found := false
	for _, c := range candidates {
		if c.Length == 2 && c.First.SeqIndex != c.Second.SeqIndex {
			found = true
		}
	}
	if !found {
		t.Errorf(`expected a length-2 candidate spanning the shared "1 2" prefix across both sequences, got %v`, candidates)
	}
}

func TestSuffixTreeNonLeftDiverseSubsumedByLonger(t *testing.T) {
	// "1 2 1 2" repeated: the substring "2" occurring at offsets 1 and 3 is
	// always preceded by "1", so it is not left-diverse and must not surface
	// as its own candidate once threshold is 0 (every match scores >=1 here).
	tree := NewSuffixTree()
	tree.Add([]int{1, 2, 1, 2})

	elemAt := func(seqIndex, offset int) StatementRef { return statementRefForMark(offset) }
	fWeight := func(StatementRef) int { return 1 }
	fElem := func(StatementRef) int { return 0 }

	candidates := tree.GetBestMaxSubstrings(0, elemAt, fWeight, fElem)
	for _, c := range candidates {
		if c.Length == 1 {
			lbl1, _ := tree.precedingLabel(c.First)
			lbl2, _ := tree.precedingLabel(c.Second)
			if lbl1 == lbl2 && lbl1 == 1 {
				t.Errorf(`expected non-left-diverse single-label match to be excluded, got %v`, c)
			}
		}
	}
}

func TestSuffixTreeOverlappingOccurrencesExcluded(t *testing.T) {
	// "1 1 1": the substring "1" repeating at adjacent offsets within the
	// same sequence overlaps and must not be paired with itself.
	tree := NewSuffixTree()
	tree.Add([]int{1, 1, 1})

	elemAt := func(seqIndex, offset int) StatementRef { return statementRefForMark(offset) }
	fWeight := func(StatementRef) int { return 1 }
	fElem := func(StatementRef) int { return 0 }

	candidates := tree.GetBestMaxSubstrings(-1, elemAt, fWeight, fElem)
	for _, c := range candidates {
		if c.First.SeqIndex == c.Second.SeqIndex && overlaps(c.First.Start, c.Second.Start, c.Length) {
			t.Errorf(`expected overlapping same-sequence occurrences to be excluded, got %v`, c)
		}
	}
}

func TestSuffixTreeCandidatesSortedByScoreThenLength(t *testing.T) {
	tree := NewSuffixTree()
	tree.Add([]int{1, 2, 3, 4})
	tree.Add([]int{1, 2, 3, 4})

	elemAt := func(seqIndex, offset int) StatementRef { return statementRefForMark(offset) }
	fWeight := func(StatementRef) int { return 1 }
	fElem := func(StatementRef) int { return 0 }

	candidates := tree.GetBestMaxSubstrings(0, elemAt, fWeight, fElem)
	for i := 1; i < len(candidates); i++ {
		prev, cur := candidates[i-1], candidates[i]
		if prev.Score < cur.Score || (prev.Score == cur.Score && prev.Length < cur.Length) {
			t.Errorf(`expected candidates sorted by score desc then length desc, got %v then %v`, prev, cur)
		}
	}
}
