package internals

import (
	"log"
	"time"
)

// SourceTree is one parsed source file: its arena and the root node of its
// AST. The pipeline driver never parses source itself (component A's arena
// model is collaborator-agnostic); v1.DecodeTree is what produces these
// from the wire format.
type SourceTree struct {
	Path string
	Tree *Arena
	Root NodeID
}

// Result is everything a clonecore run produces: the accepted clones plus
// the coverage/timing statistics the report/CLI layers surface to a user.
type Result struct {
	Clones []Clone
	Stats  RunStatistics
}

// RunStatistics holds component G's stage timings and coverage accounting,
// the Go analogue of the teacher's Statistics type but scoped to a
// clone-detection run rather than a filesystem walk.
type RunStatistics struct {
	SourceFiles      int
	Statements       int
	Sequences        int
	Clusters         int
	Candidates       int
	Clones           int
	ClonesDominated  int
	CoveredLineCount int
	StageDurations   map[string]time.Duration
}

// Run drives the full clone-detection pipeline end to end: sequence
// extraction, clustering, suffix-tree candidate search, refinement and
// dominance removal. Mirrors the teacher's stage-timed command Run methods
// (cmd_generate.go) in shape — log a line per stage, accumulate statistics,
// return early on a hard configuration error, let invariant panics
// propagate unrecovered per spec.md §7.
func Run(cfg Config, sources []SourceTree) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stats := RunStatistics{SourceFiles: len(sources), StageDurations: make(map[string]time.Duration)}
	ctx := NewContext()

	stage := func(name string, fn func()) {
		start := time.Now()
		fn()
		elapsed := time.Since(start)
		stats.StageDurations[name] = elapsed
		log.Printf("clonecore: stage %-32s %s", name, elapsed)
	}

	var sequences []*StatementSequence
	stage("extract-sequences", func() {
		for _, src := range sources {
			sequences = append(sequences, AllStatementSequences(src.Tree, src.Path, src.Root)...)
		}
		sequences = FilterLongSequences(sequences, cfg.Force)
	})

	var statements []StatementRef
	for _, seq := range sequences {
		statements = append(statements, seq.Statements...)
	}
	stats.Statements = len(statements)
	stats.Sequences = len(sequences)

	hashAlgo, err := AlgorithmByName(cfg.HashAlgorithm)
	if err != nil {
		return nil, err
	}

	var clusters []*Cluster
	stage("cluster", func() {
		if cfg.ClusterizeUsingHash {
			// Bucket by exact full-tree hash and mark directly from the
			// bucket: no anti-unification, no pattern building.
			buckets := BuildHashBuckets(statements, hashAlgo, false, cfg.HashingDepth)
			clusters = ClusterizeByHash(ctx, buckets)
			return
		}
		buckets := BuildHashBuckets(statements, hashAlgo, true, cfg.HashingDepth)
		byBucket := BuildUnifiers(ctx, buckets, cfg.ClusteringThreshold)
		clusters = Clusterize(ctx, buckets, byBucket)
	})
	stats.Clusters = len(clusters)

	maxLinesByMark := make(map[int]int, len(clusters))
	for _, cl := range clusters {
		maxLinesByMark[cl.ID] = cl.MaxCoveredLines()
	}

	stage("filter-long-runs", func() {
		sequences = FilterOutLongEquallyLabeledSequences(sequences, cfg.Force)
	})

	tree := NewSuffixTree()
	seqLabels := make([][]int, len(sequences))
	stage("build-suffix-tree", func() {
		for i, seq := range sequences {
			labels := make([]int, seq.Len())
			for j, st := range seq.Statements {
				labels[j] = st.Arena.Mark(st.Node)
			}
			seqLabels[i] = labels
			tree.Add(labels)
		}
	})

	elemAt := func(seqIndex, offset int) StatementRef {
		return sequences[seqIndex].Statements[offset]
	}
	fWeight := func(r StatementRef) int { return maxLinesByMark[r.Arena.Mark(r.Node)] }
	fElem := func(r StatementRef) int { return r.Arena.CoveredLineCount(r.Node) }

	var candidates []Candidate
	stage("search-candidates", func() {
		candidates = tree.GetBestMaxSubstrings(cfg.SizeThreshold, elemAt, fWeight, fElem)
	})
	stats.Candidates = len(candidates)

	seqOf := func(seqIndex int) []StatementRef { return sequences[seqIndex].Statements }

	var clones []Clone
	stage("refine", func() {
		clones = RefineDuplicates(ctx, candidates, seqOf, cfg.SizeThreshold, cfg.DistanceThreshold)
	})

	beforeDominance := len(clones)
	stage("remove-dominated", func() {
		// distance_threshold == -1 disables trimming AND dominance removal
		// (spec invariant: the -1 path returns the suffix-tree candidates
		// unchanged).
		if cfg.DistanceThreshold == -1 {
			return
		}
		clones = RemoveDominatedClones(clones)
	})
	stats.ClonesDominated = beforeDominance - len(clones)
	stats.Clones = len(clones)

	seen := make(map[int]bool)
	for _, c := range clones {
		for _, r := range c.First {
			for _, l := range r.Arena.CoveredLines(r.Node) {
				seen[l] = true
			}
		}
		for _, r := range c.Second {
			for _, l := range r.Arena.CoveredLines(r.Node) {
				seen[l] = true
			}
		}
	}
	stats.CoveredLineCount = len(seen)

	return &Result{Clones: clones, Stats: stats}, nil
}
