package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/meisterluk/clonecore/internals"
	v1 "github.com/meisterluk/clonecore/v1"
	"github.com/spf13/cobra"
)

// HashCommand defines the CLI command parameters
type HashCommand struct {
	Source       string `json:"source"`
	Lines        []int  `json:"lines"`
	Algorithm    string `json:"algorithm"`
	ConfigOutput bool   `json:"config"`
	JSONOutput   bool   `json:"json"`
}

// HashJSONResult is a struct used to serialize JSON output
type HashJSONResult struct {
	Digest    string `json:"digest"`
	Algorithm string `json:"algorithm"`
}

var hashCommand *HashCommand
var argHashSource string
var argHashLines string
var argHashAlgorithm string

var hashCmd = &cobra.Command{
	Use:   "hash [source.json]",
	Short: "Digest a single AST node from a parsed-tree fixture",
	Long: `Loads a tree document (the JSON wire format v1.TreeDocument describes)
and computes the canonical digest of the node whose own line numbers match
--lines exactly, or the whole tree's root when --lines is omitted.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("expected at most one positional argument, got %d", len(args))
		}
		if len(args) == 1 {
			argHashSource = args[0]
		}
		if argHashSource == "" {
			return fmt.Errorf("source tree document required")
		}

		hashCommand = new(HashCommand)
		hashCommand.Source = argHashSource
		hashCommand.Algorithm = argHashAlgorithm
		hashCommand.ConfigOutput = argConfigOutput
		hashCommand.JSONOutput = argJSONOutput

		if argHashLines != "" {
			lines, err := parseLineList(argHashLines)
			if err != nil {
				return err
			}
			hashCommand.Lines = lines
		}

		envJSON, errJSON := envToBool("CLONECORE_JSON")
		if errJSON == nil {
			hashCommand.JSONOutput = envJSON
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		exitCode, cmdError = hashCommand.Run(w, log)
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.Flags().StringVar(&argHashSource, "source", "", "tree document to load")
	hashCmd.Flags().StringVar(&argHashLines, "lines", "", "comma-separated line numbers the target node's own lines must match exactly")
	defaultHashAlgo := internals.DefaultConfig().DigestAlgorithm
	hashCmd.Flags().StringVarP(&argHashAlgorithm, "algorithm", "a", envOr("CLONECORE_DIGEST_ALGORITHM", defaultHashAlgo), "digest algorithm to use")
}

func parseLineList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	lines := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid line number %q: %w", p, err)
		}
		lines = append(lines, n)
	}
	return lines, nil
}

// Run executes the CLI command hash on the given parameter set, writes the
// result to Output w and errors/information messages to log. It returns a
// pair (exit code, error)
func (c *HashCommand) Run(w, log Output) (int, error) {
	if c.ConfigOutput {
		b, err := json.Marshal(c)
		if err != nil {
			return 6, fmt.Errorf(configJSONErrMsg, err)
		}
		w.Println(string(b))
		return 0, nil
	}

	digest, err := v1.HashOfNode(v1.HashParameters{
		Source:    c.Source,
		Lines:     c.Lines,
		Algorithm: c.Algorithm,
	})
	if err != nil {
		return 1, err
	}

	hexDigest := hex.EncodeToString(digest)
	if c.JSONOutput {
		data := HashJSONResult{Digest: hexDigest, Algorithm: c.Algorithm}
		jsonRepr, err := json.Marshal(&data)
		if err != nil {
			return 6, fmt.Errorf(resultJSONErrMsg, err)
		}
		w.Println(string(jsonRepr))
	} else {
		w.Println(hexDigest)
	}

	return 0, nil
}
