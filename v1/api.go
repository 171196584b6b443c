package v1

import (
	"fmt"
	"io"

	"github.com/meisterluk/clonecore/internals"
)

// VERSION is the wire contract's Semantic Versioning number.
var VERSION = [3]int{1, 0, 0}

// ReleaseDate, License, and Author are metadata the version CLI command
// surfaces alongside VERSION.
const (
	ReleaseDate = "2026-07-30"
	License     = "MIT"
	Author      = "clonecore contributors"
)

// GenerateReport loads every source named in params.Sources, runs the
// clone-detection engine over them with params.Config, and writes the
// resulting clones to params.OutputPath ("-" for stdout).
func GenerateReport(params ReportParameters) error {
	if err := params.Config.Validate(); err != nil {
		return err
	}

	sources := make([]internals.SourceTree, 0, len(params.Sources))
	pathByArena := make(map[*internals.Arena]string, len(params.Sources))
	for _, path := range params.Sources {
		tree, err := DecodeTreeFile(path)
		if err != nil {
			return fmt.Errorf("v1: loading %s: %w", path, err)
		}
		sources = append(sources, tree)
		pathByArena[tree.Tree] = tree.Path
	}
	pathOf := func(a *internals.Arena) string { return pathByArena[a] }

	result, err := internals.Run(params.Config, sources)
	if err != nil {
		return err
	}

	digestAlgo, err := internals.AlgorithmByName(params.Config.DigestAlgorithm)
	if err != nil {
		return err
	}

	report, err := internals.NewReportWriter(params.OutputPath)
	if err != nil {
		return err
	}
	defer report.Close()

	if err := report.HeadLine(params.Config.DigestAlgorithm, len(sources), params.OutputPath); err != nil {
		return err
	}

	for _, clone := range result.Clones {
		tail, err := tailLineFor(digestAlgo, pathOf, clone)
		if err != nil {
			return err
		}
		if err := report.TailLine(tail); err != nil {
			return err
		}
	}

	return nil
}

func tailLineFor(digestAlgo internals.Algorithm, pathOf func(*internals.Arena) string, clone internals.Clone) (ReportTail, error) {
	first := clone.First[0]
	second := clone.Second[0]

	return ReportTail{
		FirstDigest:  digestOf(digestAlgo, first),
		FirstPath:    pathOf(first.Arena),
		FirstLines:   coveredLines(clone.First),
		SecondDigest: digestOf(digestAlgo, second),
		SecondPath:   pathOf(second.Arena),
		SecondLines:  coveredLines(clone.Second),
		Distance:     clone.Distance,
	}, nil
}

func digestOf(algo internals.Algorithm, ref internals.StatementRef) []byte {
	algo.Reset()
	algo.ReadBytes(ref.Arena.CanonicalBytes(ref.Node))
	return append([]byte(nil), algo.Digest()...)
}

func coveredLines(refs []internals.StatementRef) []int {
	if len(refs) == 0 {
		return nil
	}
	lo, hi := -1, -1
	for _, r := range refs {
		for _, l := range r.Arena.CoveredLines(r.Node) {
			if lo == -1 || l < lo {
				lo = l
			}
			if hi == -1 || l > hi {
				hi = l
			}
		}
	}
	if lo == -1 {
		return nil
	}
	return []int{lo, hi}
}

// ReadReport reads every line of the report at path, returning its head and
// every tail line (clone) it carries.
func ReadReport(path string) (ReportHead, []ReportTail, error) {
	report, err := internals.NewReportReader(path)
	if err != nil {
		return ReportHead{}, nil, err
	}
	defer report.Close()

	var tails []ReportTail
	for {
		tail, err := report.Iterate()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ReportHead{}, nil, err
		}
		tails = append(tails, tail)
	}
	return report.Head, tails, nil
}

// WriteReport writes head followed by every tail line in tails to path.
func WriteReport(path string, head ReportHead, tails []ReportTail) error {
	report, err := internals.NewReportWriter(path)
	if err != nil {
		return err
	}
	defer report.Close()

	if err := report.HeadLine(head.HashAlgorithm, head.SourceCount, head.BasePath); err != nil {
		return err
	}
	for _, tail := range tails {
		if err := report.TailLine(tail); err != nil {
			return err
		}
	}
	return nil
}

// SupportedHashAlgorithms returns the canonical names of every hash
// algorithm registered in the component-J registry.
func SupportedHashAlgorithms() []string {
	return internals.SupportedHashAlgorithms()
}

// HashOfNode digests the node at params.Source (the whole tree's root when
// params.Lines is empty, otherwise the first node in pre-order, i.e. the
// outermost one, whose own lines match params.Lines exactly) using
// params.Algorithm, returning the raw digest bytes.
func HashOfNode(params HashParameters) ([]byte, error) {
	tree, err := DecodeTreeFile(params.Source)
	if err != nil {
		return nil, err
	}

	algo, err := internals.AlgorithmByName(params.Algorithm)
	if err != nil {
		return nil, err
	}

	target := tree.Root
	if len(params.Lines) > 0 {
		found, ok := findNodeByLines(tree.Tree, tree.Root, params.Lines)
		if !ok {
			return nil, fmt.Errorf("v1: no node with lines %v found in %s", params.Lines, params.Source)
		}
		target = found
	}

	algo.Reset()
	if err := algo.ReadBytes(tree.Tree.CanonicalBytes(target)); err != nil {
		return nil, err
	}
	return algo.Digest(), nil
}

func findNodeByLines(arena *internals.Arena, id internals.NodeID, lines []int) (internals.NodeID, bool) {
	if sameLines(arena.OwnLines(id), lines) {
		return id, true
	}
	for _, c := range arena.Children(id) {
		if found, ok := findNodeByLines(arena, c, lines); ok {
			return found, true
		}
	}
	return internals.NoNode, false
}

func sameLines(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
