package internals

import "sort"

// StringPosition names a single suffix: the sequence it came from and the
// offset within that sequence's label string where the suffix starts.
// Identity between two StringPositions is this pair, not the label slice
// itself — the original's Python used list-value equality for "same
// string", which is structural and would, given structurally identical
// occurrences, wrongly treat two distinct clone sites as indistinguishable
// (see SPEC_FULL.md §3).
type StringPosition struct {
	SeqIndex int
	Start    int
}

// suffixTreeNode is one node of the generalized structure: the path from
// the root to this node spells out a common substring shared by every
// position recorded in Through.
type suffixTreeNode struct {
	childOrder []int
	children   map[int]*suffixTreeNode
	depth      int
	// Through holds every StringPosition whose suffix passes through (or
	// ends at) this node, in insertion order.
	Through []StringPosition
}

func newSuffixTreeNode(depth int) *suffixTreeNode {
	return &suffixTreeNode{children: make(map[int]*suffixTreeNode), depth: depth}
}

func (n *suffixTreeNode) child(label int) (*suffixTreeNode, bool) {
	c, ok := n.children[label]
	return c, ok
}

func (n *suffixTreeNode) addChild(label int, c *suffixTreeNode) {
	n.childOrder = append(n.childOrder, label)
	n.children[label] = c
}

// SuffixTree is a generalized suffix tree over sequences of integer labels
// (statement cluster marks). It is built as a suffix trie (every suffix of
// every added string is inserted explicitly) rather than a linear-time
// Ukkonen tree: clonecore runs once per batch rather than in a hot loop, so
// the simpler, obviously-correct construction is preferred over edge
// compression. Mirrors suffix_tree.py's SuffixTree.
type SuffixTree struct {
	root     *suffixTreeNode
	sequence [][]int // label string per added sequence, by SeqIndex
}

// NewSuffixTree returns an empty generalized suffix tree.
func NewSuffixTree() *SuffixTree {
	return &SuffixTree{root: newSuffixTreeNode(0)}
}

// Add inserts every suffix of labels as sequence index len(sequence).
// Mirrors SuffixTree.add.
func (t *SuffixTree) Add(labels []int) int {
	idx := len(t.sequence)
	t.sequence = append(t.sequence, labels)
	for start := 0; start < len(labels); start++ {
		t.insertSuffix(idx, start)
	}
	return idx
}

func (t *SuffixTree) insertSuffix(seqIdx, start int) {
	cur := t.root
	cur.Through = append(cur.Through, StringPosition{SeqIndex: seqIdx, Start: start})
	labels := t.sequence[seqIdx]
	for i := start; i < len(labels); i++ {
		label := labels[i]
		next, ok := cur.child(label)
		if !ok {
			next = newSuffixTreeNode(cur.depth + 1)
			cur.addChild(label, next)
		}
		next.Through = append(next.Through, StringPosition{SeqIndex: seqIdx, Start: start})
		cur = next
	}
}

// precedingLabel returns the label immediately before p's match at the
// given node depth, or (0, false) if the match starts at the very
// beginning of its sequence (trivially left-diverse).
func (t *SuffixTree) precedingLabel(p StringPosition) (int, bool) {
	if p.Start == 0 {
		return 0, false
	}
	return t.sequence[p.SeqIndex][p.Start-1], true
}

// leftDiverse reports whether the occurrences at a node are left-diverse:
// at least one pair of occurrences either starts at offset 0, or is
// preceded by a different label. A repeated substring that is not
// left-diverse is always subsumed by a longer repeat one character to the
// left, so it is never a maximal/interesting candidate.
func (t *SuffixTree) leftDiverse(positions []StringPosition) bool {
	if len(positions) < 2 {
		return false
	}
	first, firstHas := t.precedingLabel(positions[0])
	if !firstHas {
		return true
	}
	for _, p := range positions[1:] {
		lbl, has := t.precedingLabel(p)
		if !has || lbl != first {
			return true
		}
	}
	return false
}

// Candidate is one maximal-repeat pair discovered by GetBestMaxSubstrings:
// the substring of length Length occurring starting at First and at
// Second (both StringPositions, generally in different sequences, but a
// single sequence can repeat against itself too).
type Candidate struct {
	First, Second StringPosition
	Length        int
	Score         int
}

// GetBestMaxSubstrings walks every node of the tree and, for nodes whose
// occurrences are left-diverse, emits a Candidate for every pair of
// non-overlapping occurrences when the node's score (fWeight summed over
// the matched labels, plus fElem of the first matched element; see
// matchScore) exceeds threshold. elemAt maps (sequence, offset) back
// to the StatementRef that label denotes, so fWeight/fElem can inspect the
// actual statement. Candidates are returned sorted by score, then length,
// both descending. Named after SuffixTree.getBestMaxSubstrings, whose
// f_weight and f_elem callbacks fWeight and fElem stand in for.
func (t *SuffixTree) GetBestMaxSubstrings(
	threshold int,
	elemAt func(seqIndex, offset int) StatementRef,
	fWeight func(StatementRef) int,
	fElem func(StatementRef) int,
) []Candidate {
	var out []Candidate
	var walk func(n *suffixTreeNode)
	walk = func(n *suffixTreeNode) {
		if n.depth > 0 && t.leftDiverse(n.Through) {
			out = append(out, t.candidatesAt(n, threshold, elemAt, fWeight, fElem)...)
		}
		for _, label := range n.childOrder {
			walk(n.children[label])
		}
	}
	walk(t.root)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Length > out[j].Length
	})
	return out
}

func (t *SuffixTree) candidatesAt(
	n *suffixTreeNode,
	threshold int,
	elemAt func(seqIndex, offset int) StatementRef,
	fWeight func(StatementRef) int,
	fElem func(StatementRef) int,
) []Candidate {
	score := t.matchScore(n.Through[0], n.depth, elemAt, fWeight, fElem)
	if score <= threshold {
		return nil
	}

	var out []Candidate
	for i := 0; i < len(n.Through); i++ {
		for j := i + 1; j < len(n.Through); j++ {
			p1, p2 := n.Through[i], n.Through[j]
			if p1.SeqIndex == p2.SeqIndex && overlaps(p1.Start, p2.Start, n.depth) {
				continue
			}
			out = append(out, Candidate{First: p1, Second: p2, Length: n.depth, Score: score})
		}
	}
	return out
}

func overlaps(start1, start2, length int) bool {
	lo, hi := start1, start2
	if lo > hi {
		lo, hi = hi, lo
	}
	return hi < lo+length
}

// matchScore sums fWeight over the distinct statements spanned by the
// match at p (length labels starting at p.Start) plus fElem of the match's
// first element, giving one representative score per node (every
// occurrence at a node spells the same label string, so the score is the
// same regardless of which occurrence computes it).
func (t *SuffixTree) matchScore(
	p StringPosition,
	length int,
	elemAt func(seqIndex, offset int) StatementRef,
	fWeight func(StatementRef) int,
	fElem func(StatementRef) int,
) int {
	total := 0
	for k := 0; k < length; k++ {
		el := elemAt(p.SeqIndex, p.Start+k)
		total += fWeight(el)
	}
	total += fElem(elemAt(p.SeqIndex, p.Start))
	return total
}
