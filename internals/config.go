package internals

import "fmt"

// Config is the clone-detection engine's configuration surface: every
// threshold and mode flag a caller can tune. Field names and defaults
// match the table in spec.md §6; HashAlgorithm/DigestAlgorithm are
// SPEC_FULL.md §4.J/§6 additions. The struct-of-JSON-tagged-fields shape
// mirrors the teacher's command parameter structs (e.g.
// GenerateCommand in the former cli/cmd_generate.go).
type Config struct {
	// SizeThreshold is the minimum covered-line count a candidate clone
	// must reach to be reported.
	SizeThreshold int `json:"size_threshold"`
	// DistanceThreshold is the maximum anti-unification distance a
	// candidate's accepted sub-range may have. -1 disables trimming
	// entirely (RefineDuplicates pass-through mode).
	DistanceThreshold int `json:"distance_threshold"`
	// ClusteringThreshold is the maximum AddCost at which a statement is
	// folded into an existing local cluster rather than seeding a new one.
	ClusteringThreshold int `json:"clustering_threshold"`
	// HashingDepth bounds the D-cup hash used to pre-bucket statements
	// when ClusterizeUsingDCup is set.
	HashingDepth int `json:"hashing_depth"`

	// ClusterizeUsingHash buckets statements by exact full-tree hash
	// before clustering (mutually exclusive with ClusterizeUsingDCup).
	ClusterizeUsingHash bool `json:"clusterize_using_hash"`
	// ClusterizeUsingDCup buckets statements by depth-bounded D-cup hash
	// before clustering (mutually exclusive with ClusterizeUsingHash).
	ClusterizeUsingDCup bool `json:"clusterize_using_dcup"`

	// Force disables the long-sequence and long-equally-labeled-run
	// safety filters (component D).
	Force bool `json:"force"`
	// ReportUnifiers includes each reported clone's generalized unifier
	// tree in the output, not just the two occurrences.
	ReportUnifiers bool `json:"report_unifiers"`

	// HashAlgorithm names the component-J algorithm used for structural
	// (D-cup/full) hashing during clustering.
	HashAlgorithm string `json:"hash_algorithm"`
	// DigestAlgorithm names the component-J algorithm used for canonical
	// node digesting (v1.HashOfNode, report/export identity).
	DigestAlgorithm string `json:"digest_algorithm"`
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		SizeThreshold:       5,
		DistanceThreshold:   5,
		ClusteringThreshold: 10,
		HashingDepth:        1,
		ClusterizeUsingDCup: true,
		HashAlgorithm:       "xxhash",
		DigestAlgorithm:     "sha-256",
	}
}

// Validate checks internal consistency and resolves the chosen hash/digest
// algorithms, returning a descriptive error rather than panicking deep in
// the pipeline on a bad configuration.
func (c Config) Validate() error {
	if c.ClusterizeUsingHash == c.ClusterizeUsingDCup {
		return fmt.Errorf("internals: exactly one of clusterize_using_hash/clusterize_using_dcup must be set")
	}
	if c.SizeThreshold < 0 {
		return fmt.Errorf("internals: size_threshold must be non-negative, got %d", c.SizeThreshold)
	}
	if c.DistanceThreshold < -1 {
		return fmt.Errorf("internals: distance_threshold must be >= -1, got %d", c.DistanceThreshold)
	}
	if c.ClusteringThreshold < 0 {
		return fmt.Errorf("internals: clustering_threshold must be non-negative, got %d", c.ClusteringThreshold)
	}
	if _, err := AlgorithmByName(c.HashAlgorithm); err != nil {
		return fmt.Errorf("internals: hash_algorithm: %w", err)
	}
	if _, err := AlgorithmByName(c.DigestAlgorithm); err != nil {
		return fmt.Errorf("internals: digest_algorithm: %w", err)
	}
	return nil
}
