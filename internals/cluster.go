package internals

// StatementRef names one statement node living in one source file's arena.
// It is the unit both the cluster engine and the statement-sequence
// extractor operate over.
type StatementRef struct {
	Arena *Arena
	Node  NodeID
}

// HashBuckets is an insertion-ordered multimap from a structural hash to
// the statements that hashed to it. clonecore keeps insertion order
// explicitly (rather than relying on Go's randomized map iteration) because
// spec.md §5 requires deterministic, order-dependent clustering behavior.
type HashBuckets struct {
	order []uint64
	data  map[uint64][]StatementRef
}

// NewHashBuckets returns an empty HashBuckets.
func NewHashBuckets() *HashBuckets {
	return &HashBuckets{data: make(map[uint64][]StatementRef)}
}

// Add appends ref to the bucket for key, creating the bucket (and
// recording its position) on first use.
func (b *HashBuckets) Add(key uint64, ref StatementRef) {
	if _, ok := b.data[key]; !ok {
		b.order = append(b.order, key)
	}
	b.data[key] = append(b.data[key], ref)
}

// Keys returns the bucket keys in the order they were first populated.
func (b *HashBuckets) Keys() []uint64 { return append([]uint64(nil), b.order...) }

// Bucket returns the statements filed under key.
func (b *HashBuckets) Bucket(key uint64) []StatementRef { return b.data[key] }

// BuildHashBuckets groups statements by structural hash. When useDCup is
// true, statements are bucketed by their depth-bounded D-cup hash
// (hashing_depth), a deliberately coarser grouping that lets
// anti-unification merge statements that differ below that depth; when
// false, statements are bucketed by exact full-tree hash, so only
// candidates identical below the root are even compared. Matches
// build_hash_to_statement(dcup_hash=...) in the original.
func BuildHashBuckets(statements []StatementRef, algo Algorithm, useDCup bool, hashingDepth int) *HashBuckets {
	buckets := NewHashBuckets()
	for _, s := range statements {
		var key uint64
		if useDCup {
			key = s.Arena.DCupHash(s.Node, hashingDepth, algo)
		} else {
			key = s.Arena.FullHash(s.Node, algo)
		}
		buckets.Add(key, s)
	}
	return buckets
}

// Cluster is a growing equivalence class of statements, represented by a
// single generalized unifier tree that every member can be recovered from
// via a per-member substitution. Mirrors anti_unification.py's Cluster.
type Cluster struct {
	ID      int
	arena   *Arena
	unifier NodeID

	count           int // number of statements folded into the unifier so far
	maxCoveredLines int
	members         []StatementRef
}

// NewCluster seeds a cluster with a single statement, consuming a fresh
// cluster id from ctx.
func NewCluster(ctx *Context, seed StatementRef) *Cluster {
	return &Cluster{
		ID:              ctx.NewClusterID(),
		arena:           seed.Arena,
		unifier:         seed.Node,
		count:           1,
		maxCoveredLines: seed.Arena.CoveredLineCount(seed.Node),
	}
}

// Unifier returns the cluster's current generalized pattern and the arena
// it lives in.
func (cl *Cluster) Unifier() (*Arena, NodeID) { return cl.arena, cl.unifier }

// AddCost trial-unifies candidate against the cluster's current unifier
// without committing, returning the cost of accepting candidate into this
// cluster. Matches Cluster.getAddCost: cost = count*size(sub_for_pattern) +
// size(sub_for_candidate), weighting the generalization of the
// already-accumulated pattern by how many members already depend on it.
func (cl *Cluster) AddCost(ctx *Context, candidate StatementRef) (cost float64, trial clusterTrial) {
	dst := NewArena()
	u, s0, s1, _ := Unify(dst, cl.arena, cl.unifier, candidate.Arena, candidate.Node, ctx, false)
	cost = float64(cl.count)*s0.Size() + s1.Size()
	return cost, clusterTrial{arena: dst, unifier: u}
}

// Distance trial-unifies candidate against the cluster's current unifier
// and returns the plain anti-unification distance (the sum of both
// substitutions' sizes, uninflated by membership count). Used by the
// clusterize marking pass, which — unlike BuildUnifiers' greedy folding —
// picks the cluster candidate is structurally closest to, not the one
// cheapest to fold it into. Matches the plain Unifier(...).getSize() call
// in clone_detection_algorithm.py's clusterize().
func (cl *Cluster) Distance(ctx *Context, candidate StatementRef) float64 {
	dst := NewArena()
	_, s0, s1, _ := Unify(dst, cl.arena, cl.unifier, candidate.Arena, candidate.Node, ctx, false)
	return s0.Size() + s1.Size()
}

// clusterTrial is the outcome of a trial AddCost call, to be committed via
// Cluster.Commit if this cluster turns out to be the cheapest match.
type clusterTrial struct {
	arena   *Arena
	unifier NodeID
}

// Commit accepts a previously computed trial as the cluster's new state.
func (cl *Cluster) Commit(t clusterTrial) {
	cl.arena = t.arena
	cl.unifier = t.unifier
	cl.count++
}

// AddWithoutUnification records ref as a member of this cluster during the
// clusterize re-scan, without touching the unifier tree, and marks ref's
// node with the cluster's id. Matches Cluster.addWithoutUnification.
func (cl *Cluster) AddWithoutUnification(ref StatementRef, mark int) {
	cl.members = append(cl.members, ref)
	if lines := ref.Arena.CoveredLineCount(ref.Node); lines > cl.maxCoveredLines {
		cl.maxCoveredLines = lines
	}
	ref.Arena.SetMark(ref.Node, mark)
}

// Members returns every statement folded into this cluster by
// AddWithoutUnification.
func (cl *Cluster) Members() []StatementRef { return append([]StatementRef(nil), cl.members...) }

// MaxCoveredLines is the largest CoveredLineCount across this cluster's
// members, used as the suffix tree's f_weight for statements carrying this
// mark.
func (cl *Cluster) MaxCoveredLines() int { return cl.maxCoveredLines }

// ClusterizeByHash implements the clusterize_using_hash mode: every bucket
// becomes exactly one cluster, seeded from its first member and filled in
// with AddWithoutUnification for the rest, so no anti-unification ever
// runs — a bucket key (an exact full-tree hash, by construction when this
// mode is selected) stands in directly for the cluster mark. Mirrors
// mark_using_hash in the original, the sibling of clusterize() that skips
// pattern-building entirely.
func ClusterizeByHash(ctx *Context, buckets *HashBuckets) []*Cluster {
	var all []*Cluster
	for _, key := range buckets.order {
		members := buckets.Bucket(key)
		if len(members) == 0 {
			continue
		}
		cl := NewCluster(ctx, members[0])
		for _, m := range members {
			cl.AddWithoutUnification(m, cl.ID)
		}
		all = append(all, cl)
	}
	return all
}

// BuildUnifiers performs the first, per-bucket clustering pass: within
// each hash bucket, statements are folded one at a time into the cheapest
// existing local cluster when that cluster's AddCost is within
// clusteringThreshold, or seed a new local cluster otherwise. Mirrors
// build_unifiers in the original, including the invariant that a chosen
// AddCost is never negative.
func BuildUnifiers(ctx *Context, buckets *HashBuckets, clusteringThreshold int) map[uint64][]*Cluster {
	result := make(map[uint64][]*Cluster, len(buckets.order))

	for _, key := range buckets.order {
		members := buckets.Bucket(key)
		var clusters []*Cluster

		for _, member := range members {
			if len(clusters) == 0 {
				clusters = append(clusters, NewCluster(ctx, member))
				continue
			}

			bestIdx := -1
			bestCost := 0.0
			var bestTrial clusterTrial
			for i, cl := range clusters {
				cost, trial := cl.AddCost(ctx, member)
				if cost < 0 {
					panicInvariant("cluster.non-negative-cost", "Cluster.AddCost returned a negative cost %v", cost)
				}
				if bestIdx == -1 || cost < bestCost {
					bestIdx, bestCost, bestTrial = i, cost, trial
				}
			}

			if bestCost <= float64(clusteringThreshold) {
				clusters[bestIdx].Commit(bestTrial)
			} else {
				clusters = append(clusters, NewCluster(ctx, member))
			}
		}

		result[key] = clusters
	}
	return result
}

// Clusterize performs the second pass: re-scans every bucket and assigns
// each statement to the nearest local cluster built by BuildUnifiers
// (measured by the plain anti-unification distance against that cluster's
// now-final unifier, not the count-weighted AddCost — the count weighting
// belongs to BuildUnifiers' greedy folding decision, not to this marking
// pass), recording membership and marking the statement's node with the
// cluster's id. Mirrors clusterize() in the original.
func Clusterize(ctx *Context, buckets *HashBuckets, clustersByBucket map[uint64][]*Cluster) []*Cluster {
	var all []*Cluster

	for _, key := range buckets.order {
		clusters := clustersByBucket[key]
		for _, cl := range clusters {
			all = append(all, cl)
		}

		for _, member := range buckets.Bucket(key) {
			bestIdx := -1
			bestCost := 0.0
			for i, cl := range clusters {
				cost := cl.Distance(ctx, member)
				if bestIdx == -1 || cost < bestCost {
					bestIdx, bestCost = i, cost
				}
			}
			if bestIdx == -1 {
				continue // empty bucket; unreachable given BuildUnifiers always seeds one cluster per non-empty bucket
			}
			clusters[bestIdx].AddWithoutUnification(member, clusters[bestIdx].ID)
		}
	}

	return all
}
