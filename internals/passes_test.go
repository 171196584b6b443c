package internals

import (
	"reflect"
	"testing"
)

func buildSampleTree(a *Arena) NodeID {
	shared := a.NewLeaf("shared", false, []int{1})
	left := a.NewInner("left", true, []int{2}, []NodeID{shared})
	right := a.NewInner("right", true, []int{3}, []NodeID{shared})
	return a.NewInner("root", false, nil, []NodeID{left, right})
}

func TestSizeCountsOnlyLeavesAndDeduplicatesSharedOnes(t *testing.T) {
	a := NewArena()
	root := buildSampleTree(a)

	// left/right/root are inner nodes and contribute nothing; only the
	// shared leaf contributes, and it is deduplicated to a single count
	// even though both "left" and "right" reference it.
	if got := a.Size(root, true); got != 1 {
		t.Errorf(`expected Size(root, true) == 1 (only the shared leaf contributes, once), got %v`, got)
	}
}

func TestSizeFreeVariableCostsHalf(t *testing.T) {
	a := NewArena()
	fv := a.NewFreeVariable(0)
	if got := a.Size(fv, true); got != 0.5 {
		t.Errorf(`expected a lone FreeVariable's Size == 0.5, got %v`, got)
	}

	ordinary := a.NewLeaf("x", false, nil)
	if got := a.Size(ordinary, true); got != 1 {
		t.Errorf(`expected an ordinary leaf's Size == 1, got %v`, got)
	}
}

func TestSizeExcludesNoneLeavesWhenRequested(t *testing.T) {
	a := NewArena()
	none := a.NewLeaf("None", false, nil)
	x := a.NewLeaf("x", false, nil)
	root := a.NewInner("root", false, nil, []NodeID{none, x})

	if got := a.Size(root, true); got != 2 {
		t.Errorf(`expected Size(root, true) == 2 (None leaf included), got %v`, got)
	}
	if got := a.Size(root, false); got != 1 {
		t.Errorf(`expected Size(root, false) == 1 (None leaf excluded), got %v`, got)
	}
}

func TestHeight(t *testing.T) {
	a := NewArena()
	root := buildSampleTree(a)
	if got := a.Height(root); got != 2 {
		t.Errorf(`expected Height(root) == 2, got %d`, got)
	}
	leaf := a.NewLeaf("lonely", false, nil)
	if got := a.Height(leaf); got != 0 {
		t.Errorf(`expected Height(leaf) == 0, got %d`, got)
	}
}

func TestCoveredLines(t *testing.T) {
	a := NewArena()
	root := buildSampleTree(a)
	got := a.CoveredLines(root)
	want := []int{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf(`expected CoveredLines(root) == %v, got %v`, want, got)
	}
	if got := a.CoveredLineCount(root); got != 3 {
		t.Errorf(`expected CoveredLineCount(root) == 3, got %d`, got)
	}
}

func TestDCupHashFreeVariablesAreInterchangeable(t *testing.T) {
	a := NewArena()
	algo := HashAlgos{}.Default().Instance()

	fv1 := a.NewFreeVariable(0)
	fv2 := a.NewFreeVariable(1)

	if a.FullHash(fv1, algo) != a.FullHash(fv2, algo) {
		t.Errorf(`expected all FreeVariables to hash identically regardless of id`)
	}
}

func TestDCupHashDepthBoundDiffers(t *testing.T) {
	a := NewArena()
	algo := HashAlgos{}.Default().Instance()

	inner := buildSampleTree(a)
	shallow := a.DCupHash(inner, 0, algo)
	full := a.FullHash(inner, algo)
	if shallow == full {
		t.Errorf(`expected depth-0 hash to differ from the unbounded hash for a non-trivial tree`)
	}
}

func TestStructuralEqual(t *testing.T) {
	a1 := NewArena()
	root1 := buildSampleTree(a1)
	a2 := NewArena()
	root2 := buildSampleTree(a2)

	if !StructuralEqual(a1, root1, a2, root2) {
		t.Errorf(`expected two independently built, identically shaped trees to be StructuralEqual`)
	}

	a3 := NewArena()
	different := a3.NewLeaf("different", false, nil)
	if StructuralEqual(a1, root1, a3, different) {
		t.Errorf(`expected differently shaped trees to not be StructuralEqual`)
	}
}

func TestStructuralEqualIgnoresFreeVariablePayload(t *testing.T) {
	a := NewArena()
	fv1 := a.NewFreeVariable(0)
	fv2 := a.NewFreeVariable(1)
	if !StructuralEqual(a, fv1, a, fv2) {
		t.Errorf(`expected two FreeVariables with different ids to be StructuralEqual`)
	}
}

func TestAncestorsThatAreStatements(t *testing.T) {
	a := NewArena()
	leaf := a.NewLeaf("x", false, []int{1})
	stmt := a.NewInner("assign", true, []int{1}, []NodeID{leaf})
	block := a.NewInner("block", false, nil, []NodeID{stmt})
	fn := a.NewInner("func", true, nil, []NodeID{block})

	ancestors := a.AncestorsThatAreStatements(leaf)
	want := []NodeID{stmt, fn}
	if !reflect.DeepEqual(ancestors, want) {
		t.Errorf(`expected leaf's statement ancestors (closest first) to be %v, got %v`, want, ancestors)
	}
}

func TestSourceLines(t *testing.T) {
	a := NewArena()
	leaf := a.NewLeaf("x", false, []int{4, 5})
	got := a.SourceLines(leaf)
	want := []int{4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf(`expected SourceLines == %v, got %v`, want, got)
	}
}
