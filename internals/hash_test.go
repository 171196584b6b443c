package internals

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestAllHashAlgosDefined checks that every registered slot produces a
// distinct algorithm name.
func TestAllHashAlgosDefined(t *testing.T) {
	names := make([]string, 0, CountHashAlgos)
	for i := 0; i < CountHashAlgos; i++ {
		name := HashAlgo(i).Instance().Name()
		if !contains(names, name) {
			names = append(names, name)
		}
	}
	if len(names) != CountHashAlgos {
		t.Errorf("expected %d distinct names, got %v", CountHashAlgos, names)
	}
}

// TestRequiredHashAlgos checks that the hash algorithms clonecore's
// configuration surface depends on by name are all registered.
func TestRequiredHashAlgos(t *testing.T) {
	required := []string{"xxhash", "fnv-1a-64", "fnv-1a-128", "sha-256", "sha-512", "sha-3-512"}

	supported := make([]string, 0, CountHashAlgos)
	for i := 0; i < CountHashAlgos; i++ {
		supported = append(supported, HashAlgo(i).Instance().Name())
	}

	for _, req := range required {
		if !contains(supported, req) {
			t.Errorf("hash algorithm %q unsupported, but support is required", req)
		}
	}
}

// TestAlgorithmByName checks round-tripping every registered name back to
// an Algorithm instance of the same name.
func TestAlgorithmByName(t *testing.T) {
	for _, name := range SupportedHashAlgorithms() {
		algo, err := AlgorithmByName(name)
		if err != nil {
			t.Fatalf("AlgorithmByName(%q): %s", name, err)
		}
		if algo.Name() != name {
			t.Errorf("AlgorithmByName(%q).Name() = %q", name, algo.Name())
		}
	}

	if _, err := AlgorithmByName("does-not-exist"); err == nil {
		t.Error("expected an error for an unknown algorithm name")
	}
}

// TestResetIsIdempotent checks that reading the same bytes after a Reset
// reproduces the same digest, for every registered algorithm.
func TestResetIsIdempotent(t *testing.T) {
	payload := []byte("clonecore structural hash fixture")
	for _, name := range SupportedHashAlgorithms() {
		algo, err := AlgorithmByName(name)
		if err != nil {
			t.Fatal(err)
		}

		if err := algo.ReadBytes(payload); err != nil {
			t.Fatalf("%s: ReadBytes: %s", name, err)
		}
		first := algo.HexDigest()

		algo.Reset()
		if err := algo.ReadBytes(payload); err != nil {
			t.Fatalf("%s: ReadBytes after Reset: %s", name, err)
		}
		second := algo.HexDigest()

		if first != second {
			t.Errorf("%s: digest changed across Reset: %s != %s", name, first, second)
		}
	}
}

// TestMD5sumCompatibility cross-validates clonecore's MD5 implementation
// against the system md5sum binary, the way the teacher repo's own hash
// tests do.
func TestMD5sumCompatibility(t *testing.T) {
	fd, err := os.CreateTemp("", "clonecore-md5-compat")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fd.Name())

	payload := []byte("clonedigger-derived fixture\n")
	if _, err := fd.Write(payload); err != nil {
		t.Fatal(err)
	}
	fd.Close()

	executable := os.Getenv("MD5SUM_EXEC")
	if executable == "" {
		executable = "md5sum"
	}
	cmd := exec.Command(executable, fd.Name())
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Skipf("md5sum unavailable (set MD5SUM_EXEC to override): %s", err)
	}
	sumDigest := strings.TrimSpace(out.String())
	if i := strings.Index(sumDigest, " "); i >= 0 {
		sumDigest = sumDigest[:i]
	}

	h := NewMD5()
	if err := h.ReadFile(fd.Name()); err != nil {
		t.Fatal(err)
	}

	if h.HexDigest() != sumDigest {
		t.Errorf("digests of md5sum (%s) and clonecore (%s) differ", sumDigest, h.HexDigest())
	}
}
