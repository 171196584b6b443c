package internals

import "testing"

func makeStatementRef(name string, lines []int) StatementRef {
	a := NewArena()
	leaf := a.NewLeaf("x", false, lines)
	return StatementRef{Arena: a, Node: a.NewInner(name, true, lines, []NodeID{leaf})}
}

func TestHashBucketsPreservesInsertionOrder(t *testing.T) {
	buckets := NewHashBuckets()
	r1 := makeStatementRef("a", []int{1})
	r2 := makeStatementRef("b", []int{2})

	buckets.Add(10, r1)
	buckets.Add(20, r2)
	buckets.Add(10, r2)

	keys := buckets.Keys()
	if len(keys) != 2 || keys[0] != 10 || keys[1] != 20 {
		t.Errorf(`expected bucket keys in first-seen order [10 20], got %v`, keys)
	}
	if len(buckets.Bucket(10)) != 2 {
		t.Errorf(`expected bucket 10 to hold 2 statements, got %d`, len(buckets.Bucket(10)))
	}
}

func TestBuildHashBucketsGroupsIdenticalStatements(t *testing.T) {
	algo := HashAlgos{}.Default().Instance()

	a := NewArena()
	leaf1 := a.NewLeaf("x", false, []int{1})
	s1 := a.NewInner("assign", true, []int{1}, []NodeID{leaf1})
	leaf2 := a.NewLeaf("x", false, []int{2})
	s2 := a.NewInner("assign", true, []int{2}, []NodeID{leaf2})

	statements := []StatementRef{{Arena: a, Node: s1}, {Arena: a, Node: s2}}
	buckets := BuildHashBuckets(statements, algo, false, 0)

	if len(buckets.Keys()) != 1 {
		t.Errorf(`expected structurally identical statements to hash into 1 bucket, got %d`, len(buckets.Keys()))
	}
}

func TestBuildUnifiersSeedsOneClusterPerBucket(t *testing.T) {
	ctx := NewContext()
	member := makeStatementRef("assign", []int{1})
	buckets := NewHashBuckets()
	buckets.Add(42, member)

	result := BuildUnifiers(ctx, buckets, 0)
	clusters := result[42]
	if len(clusters) != 1 {
		t.Fatalf(`expected 1 cluster for a single-member bucket, got %d`, len(clusters))
	}
	if clusters[0].count != 1 {
		t.Errorf(`expected freshly seeded cluster count 1, got %d`, clusters[0].count)
	}
}

func TestBuildUnifiersMergesWithinThreshold(t *testing.T) {
	ctx := NewContext()

	// two statements differing only in a leaf's name: AddCost should be
	// small and within a generous threshold, so they merge into one cluster.
	a := NewArena()
	s1 := a.NewInner("assign", true, []int{1}, []NodeID{a.NewLeaf("one", false, []int{1})})
	s2 := a.NewInner("assign", true, []int{2}, []NodeID{a.NewLeaf("two", false, []int{2})})

	buckets := NewHashBuckets()
	buckets.Add(1, StatementRef{Arena: a, Node: s1})
	buckets.Add(1, StatementRef{Arena: a, Node: s2})

	result := BuildUnifiers(ctx, buckets, 100)
	clusters := result[1]
	if len(clusters) != 1 {
		t.Fatalf(`expected both statements to merge into 1 cluster under a generous threshold, got %d`, len(clusters))
	}
	if clusters[0].count != 2 {
		t.Errorf(`expected merged cluster count 2, got %d`, clusters[0].count)
	}
}

func TestBuildUnifiersSplitsBeyondThreshold(t *testing.T) {
	ctx := NewContext()

	a := NewArena()
	s1 := a.NewInner("assign", true, []int{1}, []NodeID{a.NewLeaf("one", false, []int{1})})
	s2 := a.NewInner("assign", true, []int{2}, []NodeID{a.NewLeaf("two", false, []int{2})})

	buckets := NewHashBuckets()
	buckets.Add(1, StatementRef{Arena: a, Node: s1})
	buckets.Add(1, StatementRef{Arena: a, Node: s2})

	result := BuildUnifiers(ctx, buckets, -1)
	clusters := result[1]
	if len(clusters) != 2 {
		t.Fatalf(`expected a threshold below any possible cost to keep statements in separate clusters, got %d`, len(clusters))
	}
}

func TestClusterDistanceIsNotCountWeighted(t *testing.T) {
	ctx := NewContext()

	a := NewArena()
	seed := a.NewInner("assign", true, []int{1}, []NodeID{a.NewLeaf("one", false, []int{1})})
	candidate := StatementRef{Arena: a, Node: a.NewInner("assign", true, []int{2}, []NodeID{a.NewLeaf("two", false, []int{2})})}

	cl := NewCluster(ctx, StatementRef{Arena: a, Node: seed})
	cl.count = 5 // pretend several members already folded in

	addCost, _ := cl.AddCost(ctx, candidate)
	distance := cl.Distance(ctx, candidate)

	if distance == addCost {
		t.Fatalf(`expected Distance to differ from the count-weighted AddCost when count > 1`)
	}
	if distance != 2*(1-freeVariableCost) {
		t.Errorf(`expected plain distance %v, got %v`, 2*(1-freeVariableCost), distance)
	}
}

func TestClusterizeByHashMarksEveryBucketMemberWithOneCluster(t *testing.T) {
	ctx := NewContext()

	a := NewArena()
	s1 := a.NewInner("assign", true, []int{1}, []NodeID{a.NewLeaf("x", false, []int{1})})
	s2 := a.NewInner("assign", true, []int{2}, []NodeID{a.NewLeaf("x", false, []int{2})})

	buckets := NewHashBuckets()
	buckets.Add(7, StatementRef{Arena: a, Node: s1})
	buckets.Add(7, StatementRef{Arena: a, Node: s2})

	clusters := ClusterizeByHash(ctx, buckets)
	if len(clusters) != 1 {
		t.Fatalf(`expected one cluster per bucket, got %d`, len(clusters))
	}
	if a.Mark(s1) != clusters[0].ID || a.Mark(s2) != clusters[0].ID {
		t.Errorf(`expected both bucket members marked with the single cluster's id`)
	}
	if len(clusters[0].Members()) != 2 {
		t.Errorf(`expected 2 members recorded, got %d`, len(clusters[0].Members()))
	}
}

func TestClusterizeMarksMembersWithClusterID(t *testing.T) {
	ctx := NewContext()

	a := NewArena()
	s1 := a.NewInner("assign", true, []int{1}, []NodeID{a.NewLeaf("x", false, []int{1})})

	buckets := NewHashBuckets()
	ref := StatementRef{Arena: a, Node: s1}
	buckets.Add(1, ref)

	clustersByBucket := BuildUnifiers(ctx, buckets, 0)
	all := Clusterize(ctx, buckets, clustersByBucket)

	if len(all) != 1 {
		t.Fatalf(`expected 1 cluster overall, got %d`, len(all))
	}
	if !a.Marked(s1) {
		t.Errorf(`expected Clusterize to mark the statement's node`)
	}
	if a.Mark(s1) != all[0].ID {
		t.Errorf(`expected mark %d, got %d`, all[0].ID, a.Mark(s1))
	}
	if len(all[0].Members()) != 1 {
		t.Errorf(`expected cluster to record 1 member, got %d`, len(all[0].Members()))
	}
}
