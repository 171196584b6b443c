package v1

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/meisterluk/clonecore/internals"
)

// DecodeTree parses a TreeDocument from raw JSON and builds the
// corresponding arena-backed tree, interning leaves by name within this one
// document so that repeated identifier names inside one source file share a
// single leaf node — simulating a real parser's symbol table and giving
// anti-unification the "shared leaves compare better" property SPEC_FULL.md
// §6 requires.
func DecodeTree(data []byte) (internals.SourceTree, error) {
	var doc TreeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return internals.SourceTree{}, fmt.Errorf("v1: decoding tree document: %w", err)
	}

	arena := internals.NewArena()
	root := buildNode(arena, doc.Root)
	return internals.SourceTree{Path: doc.Path, Tree: arena, Root: root}, nil
}

// DecodeTreeFile reads and decodes a TreeDocument from a file on disk, the
// shape ReportParameters.Sources names.
func DecodeTreeFile(path string) (internals.SourceTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return internals.SourceTree{}, err
	}
	return DecodeTree(data)
}

func buildNode(arena *internals.Arena, w NodeWire) internals.NodeID {
	if len(w.Children) == 0 {
		return arena.NewLeaf(w.Name, w.Statement, w.Lines)
	}
	children := make([]internals.NodeID, len(w.Children))
	for i, c := range w.Children {
		children[i] = buildNode(arena, c)
	}
	return arena.NewInner(w.Name, w.Statement, w.Lines, children)
}
