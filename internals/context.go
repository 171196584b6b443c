package internals

// Context carries the monotonic counters a single pipeline run needs:
// FreeVariable ids and Cluster ids. The Python original keeps these as
// process-wide globals (FreeVariable.free_variables_count, Cluster.count);
// Design Notes §9 calls that out as something an explicit per-run object
// should replace, so every Unify/Cluster constructor in clonecore takes a
// *Context instead of touching package state.
type Context struct {
	nextFreeVar int
	nextCluster int
}

// NewContext returns a Context with both counters at zero, ready for one
// pipeline run.
func NewContext() *Context {
	return &Context{}
}

// NewFreeVariable allocates a fresh FreeVariable id, unique for the
// lifetime of this Context.
func (c *Context) NewFreeVariable() int {
	id := c.nextFreeVar
	c.nextFreeVar++
	return id
}

// NewClusterID allocates a fresh Cluster id, unique for the lifetime of
// this Context.
func (c *Context) NewClusterID() int {
	id := c.nextCluster
	c.nextCluster++
	return id
}
