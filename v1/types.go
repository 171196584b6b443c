package v1

import "github.com/meisterluk/clonecore/internals"

// ReportHead and ReportTail are the v1 wire aliases for the engine's report
// line types, kept as distinct names at this layer the way the teacher kept
// its own collaborator-facing report aliases separate from internals'.
type ReportHead = internals.ReportHeadLine
type ReportTail = internals.ReportTailLine

// ReportParameters configures a single GenerateReport run: which source
// trees to load, how the engine should be configured, and where the
// resulting report should be written.
type ReportParameters struct {
	Sources    []string // paths to NodeWire-encoded JSON fixture files
	Config     internals.Config
	OutputPath string // "-" for stdout
}

// HashParameters configures a single HashOfNode call: which source tree to
// load, which node within it to digest (the node whose own line numbers
// equal Lines exactly, or the whole tree's root when Lines is empty), and which digest algorithm to
// use.
type HashParameters struct {
	Source    string
	Lines     []int
	Algorithm string
}

// TreeDocument is the wire format one source file's AST is exchanged in:
// the engine's external parser collaborator contract (SPEC_FULL.md §6).
type TreeDocument struct {
	Path  string  `json:"path"`
	Lines int     `json:"lines"`
	Root  NodeWire `json:"root"`
}

// NodeWire is the wire format of a single AST node, recursively nested.
// FreeVariable nodes are never part of a TreeDocument — they only ever
// appear inside a cluster's generalized unifier tree, which is an engine-
// internal value, not a parser-facing one.
type NodeWire struct {
	Name      string     `json:"name"`
	Statement bool       `json:"statement"`
	Lines     []int      `json:"lines"`
	Children  []NodeWire `json:"children"`
}
