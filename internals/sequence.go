package internals

// maxSequenceLength caps how many statements a single extracted sequence
// may contain before it is dropped from consideration (the suffix tree's
// cost grows with total sequence length, and sequences this long are
// almost always generated code or data tables rather than hand-written
// duplication worth reporting). Matches MAX_SEQUENCE_LENGTH in the
// original.
const maxSequenceLength = 1000

// longRunThreshold is the number of consecutive statements sharing one
// cluster mark above which filterOutLongEquallyLabeledSequences splits the
// run out: long runs of identically-clustered statements (e.g. a block of
// assignments generated from a schema) would otherwise dominate the
// suffix tree's candidate search without being an interesting clone.
const longRunThreshold = 10

// StatementSequence is a maximal run of sibling statements from a single
// source file, together with the synthetic root Arena builds to let the
// run be anti-unified as a unit. Mirrors abstract_syntax_tree.py's
// StatementSequence.
type StatementSequence struct {
	SourceFile string
	Statements []StatementRef

	arena *Arena
	root  NodeID // the synthetic __SEQUENCE__ node wrapping Statements
}

// AddStatement appends ref, asserting it belongs to the same source file as
// every other member (a StatementSequence never spans files).
func (s *StatementSequence) AddStatement(ref StatementRef) {
	if len(s.Statements) > 0 && ref.Arena != s.arena {
		panicInvariant("sequence.single-arena", "AddStatement called with a statement from a different arena/source file")
	}
	s.Statements = append(s.Statements, ref)
	if s.arena == nil {
		s.arena = ref.Arena
	}
}

// Len is the number of statements in the sequence.
func (s *StatementSequence) Len() int { return len(s.Statements) }

// Weight returns the maximum CoveredLineCount among the sequence's
// statements. The pipeline's suffix-tree f_weight is the per-cluster
// maximum (Cluster.MaxCoveredLines), not this value.
func (s *StatementSequence) Weight() int {
	max := 0
	for _, st := range s.Statements {
		if n := st.Arena.CoveredLineCount(st.Node); n > max {
			max = n
		}
	}
	return max
}

// ConstructTree builds (once) a synthetic __SEQUENCE__ root wrapping every
// statement in order via AddChild with saveParent=false, so each
// statement's parent chain in its real source tree is left intact for
// ancestor queries. Matches StatementSequence.constructTree's
// save_parent=True escape hatch.
func (s *StatementSequence) ConstructTree() (*Arena, NodeID) {
	if s.root != NoNode {
		return s.arena, s.root
	}
	s.root = s.arena.NewInner("__SEQUENCE__", false, nil, nil)
	for _, st := range s.Statements {
		s.arena.AddChild(s.root, st.Node, false)
	}
	return s.arena, s.root
}

// PairSequences couples two StatementSequence slices (sub-ranges of two
// StatementSequences, generally) that a candidate refinement step is
// considering as a clone pair.
type PairSequences struct {
	First, Second []StatementRef
}

// CalcDistance anti-unifies the two sub-sequences (wrapped as synthetic
// roots) and returns the resulting distance, used by refineDuplicates to
// decide whether a candidate pair is tight enough to report. Mirrors
// PairSequences.calcDistance.
func (p *PairSequences) CalcDistance(ctx *Context) float64 {
	a1, r1 := wrapSequence(p.First)
	a2, r2 := wrapSequence(p.Second)
	dst := NewArena()
	_, _, _, distance := Unify(dst, a1, r1, a2, r2, ctx, false)
	return distance
}

// MaxCoveredLineNumbersCount returns the larger of the two sub-sequences'
// total covered-line counts, used by refineDuplicates' size_threshold
// check.
func (p *PairSequences) MaxCoveredLineNumbersCount() int {
	c1 := coveredLineCount(p.First)
	c2 := coveredLineCount(p.Second)
	if c1 > c2 {
		return c1
	}
	return c2
}

func coveredLineCount(refs []StatementRef) int {
	seen := make(map[int]bool)
	for _, r := range refs {
		for _, l := range r.Arena.CoveredLines(r.Node) {
			seen[l] = true
		}
	}
	return len(seen)
}

func wrapSequence(refs []StatementRef) (*Arena, NodeID) {
	if len(refs) == 0 {
		panicInvariant("sequence.non-empty-wrap", "wrapSequence called with no statements")
	}
	arena := refs[0].Arena
	for _, r := range refs {
		if r.Arena != arena {
			panicInvariant("sequence.single-arena", "wrapSequence requires all statements from the same arena")
		}
	}
	root := arena.NewInner("__SEQUENCE__", false, nil, nil)
	for _, r := range refs {
		arena.AddChild(root, r.Node, false)
	}
	return arena, root
}

// AllStatementSequences walks every node in root's subtree and returns one
// StatementSequence per maximal run of sibling statements. Consecutive
// statement children form one sequence, and a non-statement child ends the
// run without terminating the walk; every child, statement or not, is
// walked in turn, so nested blocks yield their own sequences. Mirrors
// AbstractSyntaxTree.getAllStatementSequences.
func AllStatementSequences(arena *Arena, sourceFile string, root NodeID) []*StatementSequence {
	var out []*StatementSequence
	var walk func(NodeID)
	walk = func(id NodeID) {
		children := arena.Children(id)
		var current *StatementSequence
		flush := func() {
			if current != nil && current.Len() > 0 {
				out = append(out, current)
			}
			current = nil
		}
		for _, c := range children {
			if arena.IsStatement(c) {
				if current == nil {
					current = &StatementSequence{SourceFile: sourceFile}
				}
				current.AddStatement(StatementRef{Arena: arena, Node: c})
			} else {
				flush()
			}
			walk(c)
		}
		flush()
	}
	walk(root)
	return out
}

// FilterLongSequences drops sequences whose length exceeds
// maxSequenceLength, unless force is set (spec.md's "force" configuration
// flag bypasses this safety valve entirely).
func FilterLongSequences(seqs []*StatementSequence, force bool) []*StatementSequence {
	if force {
		return seqs
	}
	out := seqs[:0:0]
	for _, s := range seqs {
		if s.Len() <= maxSequenceLength {
			out = append(out, s)
		}
	}
	return out
}

// FilterOutLongEquallyLabeledSequences splits out runs of more than
// longRunThreshold consecutive statements sharing the same cluster mark:
// such a run is dropped entirely, and the statements before/after it (if
// any) become their own sub-sequences, so the run no longer dominates
// suffix tree candidate search. Marks must already be assigned (i.e. this
// runs after clustering). Bypassed entirely when force is set. Mirrors
// filterOutLongEquallyLabeledSequences.
func FilterOutLongEquallyLabeledSequences(seqs []*StatementSequence, force bool) []*StatementSequence {
	if force {
		return seqs
	}

	var out []*StatementSequence
	for _, s := range seqs {
		out = append(out, splitLongRuns(s)...)
	}
	return out
}

func splitLongRuns(s *StatementSequence) []*StatementSequence {
	n := s.Len()
	var segments []*StatementSequence
	segStart := 0
	split := false

	i := 0
	for i < n {
		runStart := i
		mark := markOf(s.Statements[i])
		j := i + 1
		for j < n && markOf(s.Statements[j]) == mark {
			j++
		}
		if j-runStart > longRunThreshold {
			split = true
			if runStart > segStart {
				segments = append(segments, sub(s, segStart, runStart))
			}
			segStart = j
		}
		i = j
	}
	if segStart < n {
		segments = append(segments, sub(s, segStart, n))
	}

	if !split {
		return []*StatementSequence{s}
	}
	return segments
}

func markOf(r StatementRef) int { return r.Arena.Mark(r.Node) }

func sub(s *StatementSequence, from, to int) *StatementSequence {
	ns := &StatementSequence{SourceFile: s.SourceFile}
	for _, st := range s.Statements[from:to] {
		ns.AddStatement(st)
	}
	return ns
}
