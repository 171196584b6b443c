package internals

// CanonicalBytes serializes id's subtree into a deterministic prefix
// encoding suitable for feeding into an Algorithm: name, a statement flag,
// child count, then each child in order, every field length-prefixed
// so no delimiter collision is possible. This is what v1.HashOfNode and the
// CLI's hash command feed through the configured digest algorithm to
// get a canonical content identity for a subtree, independent of
// clustering (SPEC_FULL.md §4.J).
func (a *Arena) CanonicalBytes(id NodeID) []byte {
	var buf []byte
	a.appendCanonical(&buf, id)
	return buf
}

func (a *Arena) appendCanonical(buf *[]byte, id NodeID) {
	n := a.get(id)

	if n.kind == KindFreeVariable {
		appendLengthPrefixed(buf, []byte("FREEVAR"))
		var idBuf [8]byte
		putUint64(idBuf[:], uint64(n.freeVarID))
		*buf = append(*buf, idBuf[:]...)
		return
	}

	appendLengthPrefixed(buf, []byte(n.name))
	if n.statement {
		*buf = append(*buf, 1)
	} else {
		*buf = append(*buf, 0)
	}
	var countBuf [8]byte
	putUint64(countBuf[:], uint64(len(n.children)))
	*buf = append(*buf, countBuf[:]...)
	for _, c := range n.children {
		a.appendCanonical(buf, c)
	}
}

func appendLengthPrefixed(buf *[]byte, data []byte) {
	var lenBuf [8]byte
	putUint64(lenBuf[:], uint64(len(data)))
	*buf = append(*buf, lenBuf[:]...)
	*buf = append(*buf, data...)
}
