package internals

import "testing"

func statementSpan(n int, baseLine int) []StatementRef {
	a := NewArena()
	refs := make([]StatementRef, n)
	for i := 0; i < n; i++ {
		leaf := a.NewLeaf("x", false, []int{baseLine + i})
		refs[i] = StatementRef{Arena: a, Node: a.NewInner("assign", true, []int{baseLine + i}, []NodeID{leaf})}
	}
	return refs
}

func TestRefineDuplicatesPassThroughModeOnNegativeThreshold(t *testing.T) {
	first := statementSpan(2, 1)
	second := statementSpan(2, 10)
	seqs := [][]StatementRef{first, second}
	seqOf := func(i int) []StatementRef { return seqs[i] }

	candidates := []Candidate{{First: StringPosition{SeqIndex: 0, Start: 0}, Second: StringPosition{SeqIndex: 1, Start: 0}, Length: 2}}
	clones := RefineDuplicates(NewContext(), candidates, seqOf, 0, -1)

	if len(clones) != 1 {
		t.Fatalf(`expected pass-through mode to return 1 clone unchanged, got %d`, len(clones))
	}
	if clones[0].Distance != 0 {
		t.Errorf(`expected pass-through clone to carry zero distance, got %v`, clones[0].Distance)
	}
	if len(clones[0].First) != 2 || len(clones[0].Second) != 2 {
		t.Errorf(`expected the full candidate span to be returned unchanged`)
	}
}

func TestRefineDuplicatesRejectsBelowSizeThreshold(t *testing.T) {
	first := statementSpan(1, 1)
	second := statementSpan(1, 10)
	seqs := [][]StatementRef{first, second}
	seqOf := func(i int) []StatementRef { return seqs[i] }

	candidates := []Candidate{{First: StringPosition{SeqIndex: 0, Start: 0}, Second: StringPosition{SeqIndex: 1, Start: 0}, Length: 1}}
	// sizeThreshold higher than any single statement's covered-line count (1)
	clones := RefineDuplicates(NewContext(), candidates, seqOf, 100, 50)

	if len(clones) != 0 {
		t.Errorf(`expected no clones to survive a size threshold above any candidate's coverage, got %d`, len(clones))
	}
}

func TestRefineDuplicatesAcceptsWithinThresholds(t *testing.T) {
	// identical-shaped spans, distance 0, trivially within any positive thresholds
	a := NewArena()
	leaf := a.NewLeaf("x", false, []int{1})
	stmt := a.NewInner("assign", true, []int{1}, []NodeID{leaf})
	first := []StatementRef{{Arena: a, Node: stmt}}
	second := []StatementRef{{Arena: a, Node: stmt}}
	seqs := [][]StatementRef{first, second}
	seqOf := func(i int) []StatementRef { return seqs[i] }

	// distanceThreshold is strict (a pair at exactly the threshold is
	// rejected), so use 1 to accept a distance-0 pair.
	candidates := []Candidate{{First: StringPosition{SeqIndex: 0, Start: 0}, Second: StringPosition{SeqIndex: 1, Start: 0}, Length: 1}}
	clones := RefineDuplicates(NewContext(), candidates, seqOf, 1, 1)

	if len(clones) != 1 {
		t.Fatalf(`expected 1 accepted clone, got %d`, len(clones))
	}
	if clones[0].Distance != 0 {
		t.Errorf(`expected distance 0 for identical statements, got %v`, clones[0].Distance)
	}
}

func TestRefineDuplicatesRejectsDistanceExactlyAtThreshold(t *testing.T) {
	// Two statements differing only in one leaf's name: anti-unifying them
	// binds that leaf on both sides, for a distance of 2*(1-0.5) == 1.0.
	a := NewArena()
	leafA := a.NewLeaf("i", false, []int{1})
	stmtA := a.NewInner("assign", true, []int{1}, []NodeID{leafA})
	leafB := a.NewLeaf("j", false, []int{10})
	stmtB := a.NewInner("assign", true, []int{10}, []NodeID{leafB})
	first := []StatementRef{{Arena: a, Node: stmtA}}
	second := []StatementRef{{Arena: a, Node: stmtB}}
	seqs := [][]StatementRef{first, second}
	seqOf := func(i int) []StatementRef { return seqs[i] }
	candidates := []Candidate{{First: StringPosition{SeqIndex: 0, Start: 0}, Second: StringPosition{SeqIndex: 1, Start: 0}, Length: 1}}

	atThreshold := RefineDuplicates(NewContext(), candidates, seqOf, 1, 1)
	if len(atThreshold) != 0 {
		t.Errorf(`expected a distance-1.0 pair to be rejected by distanceThreshold 1 (strict <), got %d clones`, len(atThreshold))
	}

	aboveThreshold := RefineDuplicates(NewContext(), candidates, seqOf, 1, 2)
	if len(aboveThreshold) != 1 {
		t.Fatalf(`expected a distance-1.0 pair to be accepted by distanceThreshold 2, got %d clones`, len(aboveThreshold))
	}
	if aboveThreshold[0].Distance != 1 {
		t.Errorf(`expected distance 1.0, got %v`, aboveThreshold[0].Distance)
	}
}

func TestRemoveDominatedClonesDropsFullyNestedClone(t *testing.T) {
	a := NewArena()
	innerLeaf1 := a.NewLeaf("x", false, []int{1})
	inner1 := a.NewInner("assign", true, []int{1}, []NodeID{innerLeaf1})
	outer1 := a.NewInner("block", true, []int{1}, []NodeID{inner1})

	innerLeaf2 := a.NewLeaf("y", false, []int{2})
	inner2 := a.NewInner("assign", true, []int{2}, []NodeID{innerLeaf2})
	outer2 := a.NewInner("block", true, []int{2}, []NodeID{inner2})

	outerClone := Clone{First: []StatementRef{{Arena: a, Node: outer1}}, Second: []StatementRef{{Arena: a, Node: outer2}}}
	innerClone := Clone{First: []StatementRef{{Arena: a, Node: inner1}}, Second: []StatementRef{{Arena: a, Node: inner2}}}

	result := RemoveDominatedClones([]Clone{outerClone, innerClone})
	if len(result) != 1 {
		t.Fatalf(`expected the inner clone dominated by the outer clone to be dropped, got %d clones`, len(result))
	}
	if result[0].First[0].Node != outer1 {
		t.Errorf(`expected the surviving clone to be the outer (dominating) one`)
	}
}

func TestRemoveDominatedClonesKeepsUndominatedClone(t *testing.T) {
	a := NewArena()
	leaf := a.NewLeaf("x", false, []int{1})
	stmt1 := a.NewInner("assign", true, []int{1}, []NodeID{leaf})
	leaf2 := a.NewLeaf("y", false, []int{2})
	stmt2 := a.NewInner("assign", true, []int{2}, []NodeID{leaf2})

	clone := Clone{First: []StatementRef{{Arena: a, Node: stmt1}}, Second: []StatementRef{{Arena: a, Node: stmt2}}}
	result := RemoveDominatedClones([]Clone{clone})
	if len(result) != 1 {
		t.Errorf(`expected a standalone clone with no enclosing clone to survive, got %d`, len(result))
	}
}
