package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	v1 "github.com/meisterluk/clonecore/v1"
)

func TestScanCommandWritesReport(t *testing.T) {
	dir := t.TempDir()
	pathA := writeRepeatedBlockFixture(t, dir, "a.json", 1)
	pathB := writeRepeatedBlockFixture(t, dir, "b.json", 100)
	outPath := filepath.Join(dir, "clones.report")

	var out bytes.Buffer
	w := &PlainOutput{Device: &out}
	cmd := &ScanCommand{
		Sources:             []string{pathA, pathB},
		Output:              outPath,
		SizeThreshold:       1,
		DistanceThreshold:   1,
		ClusteringThreshold: 1000,
		HashAlgorithm:       "xxhash",
		DigestAlgorithm:     "xxhash",
	}

	code, err := cmd.Run(w, w)
	if err != nil || code != 0 {
		t.Fatalf(`unexpected (code=%d, err=%s)`, code, err)
	}

	head, tails, err := v1.ReadReport(outPath)
	if err != nil {
		t.Fatalf(`ReadReport failed: %s`, err)
	}
	if head.SourceCount != 2 {
		t.Errorf(`expected SourceCount 2, got %d`, head.SourceCount)
	}
	if len(tails) == 0 {
		t.Errorf(`expected at least one clone reported`)
	}
}

func TestScanCommandRefusesToOverwriteExistingOutputByDefault(t *testing.T) {
	dir := t.TempDir()
	pathA := writeRepeatedBlockFixture(t, dir, "a.json", 1)
	outPath := filepath.Join(dir, "clones.report")
	if err := os.WriteFile(outPath, []byte("existing"), 0o644); err != nil {
		t.Fatalf(`setup failed: %s`, err)
	}

	var out bytes.Buffer
	w := &PlainOutput{Device: &out}
	cmd := &ScanCommand{Sources: []string{pathA}, Output: outPath}

	code, err := cmd.Run(w, w)
	if err == nil {
		t.Fatalf(`expected an error refusing to overwrite an existing report, got exit code %d`, code)
	}
}

func TestScanCommandOverwriteFlagAllowsReplacing(t *testing.T) {
	dir := t.TempDir()
	pathA := writeRepeatedBlockFixture(t, dir, "a.json", 1)
	pathB := writeRepeatedBlockFixture(t, dir, "b.json", 100)
	outPath := filepath.Join(dir, "clones.report")
	if err := os.WriteFile(outPath, []byte("existing"), 0o644); err != nil {
		t.Fatalf(`setup failed: %s`, err)
	}

	var out bytes.Buffer
	w := &PlainOutput{Device: &out}
	cmd := &ScanCommand{
		Sources:             []string{pathA, pathB},
		Output:              outPath,
		Overwrite:           true,
		SizeThreshold:       1,
		DistanceThreshold:   1,
		ClusteringThreshold: 1000,
		HashAlgorithm:       "xxhash",
		DigestAlgorithm:     "xxhash",
	}

	code, err := cmd.Run(w, w)
	if err != nil || code != 0 {
		t.Fatalf(`unexpected (code=%d, err=%s)`, code, err)
	}
}

func TestScanCommandConfigOutput(t *testing.T) {
	var out bytes.Buffer
	w := &PlainOutput{Device: &out}
	cmd := &ScanCommand{Sources: []string{"ignored.json"}, Output: "ignored.report", ConfigOutput: true}

	code, err := cmd.Run(w, w)
	if err != nil || code != 0 {
		t.Fatalf(`unexpected (code=%d, err=%s)`, code, err)
	}
	if out.Len() == 0 {
		t.Errorf(`expected --config to print something`)
	}
}
