package internals

// NodeID is a handle into an Arena. The zero value is never a valid node;
// arenas reserve index 0 as a sentinel so a zero NodeID reliably means "no node".
type NodeID int32

// NoNode is the sentinel invalid handle.
const NoNode NodeID = 0

// NodeKind distinguishes ordinary parsed nodes from synthesized FreeVariable
// placeholders introduced by anti-unification. It replaces the Python
// original's FreeVariable subclass with a tag on the common node record.
type NodeKind uint8

const (
	// KindKnown is a node that came from a parsed source file.
	KindKnown NodeKind = iota
	// KindFreeVariable is a placeholder introduced by Unify.
	KindFreeVariable
)

// node is the arena record backing every NodeID. Nodes are immutable once
// built except for the lazily-populated cache fields, which are write-once.
type node struct {
	kind NodeKind

	name      string
	statement bool
	lines     []int // source line numbers directly attached to this node
	children  []NodeID
	parent    NodeID // NoNode for roots

	// free variable payload; meaningless when kind == KindKnown
	freeVarID int

	// mark is the cluster label assigned during clustering (component C);
	// statement sequences read it off to build the label alphabet the
	// suffix tree indexes.
	mark    int
	markSet bool

	// lazily computed, cached passes
	sizeValid  bool
	size       float64 // leaf-only size, include_none=true (see Arena.Size)
	noneCount  int     // number of 'None'-named leaves under this node
	heightDone bool
	height     int
	coverDone  bool
	coverLines []int
	dcup       map[int]uint64 // memoized per depth bound
}

// Arena owns a set of nodes and is the unit of allocation for one parsed
// tree or one synthesized unifier tree. NodeIDs are only comparable within
// the Arena that produced them.
type Arena struct {
	nodes []node
	// leaves interns leaf nodes by (statement flag, name) within this arena so that
	// a builder can reproduce "shared leaf" semantics the way a real
	// parser's symbol table would.
	leaves map[string]NodeID
}

// NewArena returns an empty Arena with the sentinel node pre-allocated.
func NewArena() *Arena {
	a := &Arena{
		nodes:  make([]node, 1), // index 0 reserved for NoNode
		leaves: make(map[string]NodeID),
	}
	return a
}

func (a *Arena) get(id NodeID) *node {
	return &a.nodes[id]
}

// NewLeaf returns a leaf node named name, interning it so repeated calls
// with the same name within this arena return the same NodeID. statement
// marks leaf-shaped statements (e.g. a bare "pass"/"break"); it is folded
// into the intern key alongside name since a statement leaf and an
// expression leaf must never be treated as the same shared node even if
// their names happened to coincide.
func (a *Arena) NewLeaf(name string, statement bool, lines []int) NodeID {
	key := name
	if statement {
		key = "s:" + name
	}
	if id, ok := a.leaves[key]; ok {
		return id
	}
	id := a.alloc(node{kind: KindKnown, name: name, statement: statement, lines: lines})
	a.leaves[key] = id
	return id
}

// NewInner allocates a non-leaf node with the given children.
func (a *Arena) NewInner(name string, statement bool, lines []int, children []NodeID) NodeID {
	id := a.alloc(node{
		kind:      KindKnown,
		name:      name,
		statement: statement,
		lines:     lines,
		children:  append([]NodeID(nil), children...),
	})
	for _, c := range children {
		a.get(c).parent = id
	}
	return id
}

// NewFreeVariable allocates a FreeVariable placeholder with the given
// numeric id (assigned by a *Context, see context.go).
func (a *Arena) NewFreeVariable(id int) NodeID {
	return a.alloc(node{kind: KindFreeVariable, freeVarID: id, name: freeVariableName(id)})
}

func (a *Arena) alloc(n node) NodeID {
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

// AddChild appends child to parent's child list. When saveParent is false,
// child's parent pointer is left untouched — this is the escape hatch the
// original uses when wrapping already-parented statements into a synthetic
// sequence root, so ancestor-chain queries (used by dominated-clone removal)
// keep pointing at the statement's real position in its source file.
func (a *Arena) AddChild(parent, child NodeID, saveParent bool) {
	p := a.get(parent)
	p.children = append(p.children, child)
	if saveParent {
		a.get(child).parent = parent
	}
}

// Kind reports whether id is a parsed node or a FreeVariable placeholder.
func (a *Arena) Kind(id NodeID) NodeKind { return a.get(id).kind }

// Name returns the node's label (identifier/opcode name, or VAR(k) for a
// FreeVariable).
func (a *Arena) Name(id NodeID) string { return a.get(id).name }

// IsStatement reports whether this node represents a statement boundary.
func (a *Arena) IsStatement(id NodeID) bool { return a.get(id).statement }

// IsLeaf reports whether id has no children.
func (a *Arena) IsLeaf(id NodeID) bool { return len(a.get(id).children) == 0 }

// Children returns id's direct children, in source order.
func (a *Arena) Children(id NodeID) []NodeID { return a.get(id).children }

// Parent returns id's parent, or NoNode if id is a root.
func (a *Arena) Parent(id NodeID) NodeID { return a.get(id).parent }

// FreeVariableID returns the numeric id of a FreeVariable node. Calling this
// on a KindKnown node panics; callers must check Kind first.
func (a *Arena) FreeVariableID(id NodeID) int {
	n := a.get(id)
	if n.kind != KindFreeVariable {
		panicInvariant("node.free-variable-kind", "FreeVariableID called on a non-FreeVariable node (id=%d)", id)
	}
	return n.freeVarID
}

// OwnLines returns the line numbers directly attached to id (not its
// descendants).
func (a *Arena) OwnLines(id NodeID) []int { return a.get(id).lines }

// Mark returns the cluster label assigned to id, or 0 (no cluster assigned
// yet; 0 is otherwise a legitimate cluster id, so callers must not confuse
// "unmarked" with cluster 0 — use Marked to distinguish).
func (a *Arena) Mark(id NodeID) int { return a.get(id).mark }

// SetMark records id's cluster label.
func (a *Arena) SetMark(id NodeID, mark int) {
	n := a.get(id)
	n.mark = mark
	n.markSet = true
}

// Marked reports whether SetMark has been called for id.
func (a *Arena) Marked(id NodeID) bool { return a.get(id).markSet }

func freeVariableName(id int) string {
	// mirrors the original's "VAR(k)" naming, kept purely for readability
	// in debug output and canonical serialization.
	return "VAR(" + itoa(id) + ")"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
