package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/meisterluk/clonecore/internals"
	v1 "github.com/meisterluk/clonecore/v1"
	"github.com/spf13/cobra"
)

// ScanCommand defines the CLI command parameters
type ScanCommand struct {
	Sources             []string `json:"sources"`
	Output              string   `json:"output"`
	Overwrite           bool     `json:"overwrite"`
	SizeThreshold       int      `json:"size-threshold"`
	DistanceThreshold   int      `json:"distance-threshold"`
	ClusteringThreshold int      `json:"clustering-threshold"`
	HashAlgorithm       string   `json:"hash-algorithm"`
	DigestAlgorithm     string   `json:"digest-algorithm"`
	Force               bool     `json:"force"`
	ConfigOutput        bool     `json:"config"`
	JSONOutput          bool     `json:"json"`
}

// ScanJSONResult is a struct used to serialize JSON output
type ScanJSONResult struct {
	Message string `json:"message"`
}

var scanCommand *ScanCommand
var argScanSources []string
var argScanOutput string
var argScanOverwrite bool
var argScanSizeThreshold int
var argScanDistanceThreshold int
var argScanClusteringThreshold int
var argScanHashAlgorithm string
var argScanDigestAlgorithm string
var argScanForce bool

var scanCmd = &cobra.Command{
	Use:   "scan [source.json]...",
	Short: "Run the clone-detection pipeline and write a clone report",
	Long: `This command runs the clone-detection engine over the given tree
documents and writes the discovered clones to a report file. For example:

	clonecore scan a.json b.json c.json --output clones.report
`,
	Args: func(cmd *cobra.Command, args []string) error {
		sources := argScanSources
		sources = append(sources, args...)
		if len(sources) == 0 {
			return fmt.Errorf(`at least one source tree document required`)
		}

		scanCommand = new(ScanCommand)
		scanCommand.Sources = sources
		scanCommand.Output = argScanOutput
		scanCommand.Overwrite = argScanOverwrite
		scanCommand.SizeThreshold = argScanSizeThreshold
		scanCommand.DistanceThreshold = argScanDistanceThreshold
		scanCommand.ClusteringThreshold = argScanClusteringThreshold
		scanCommand.HashAlgorithm = argScanHashAlgorithm
		scanCommand.DigestAlgorithm = argScanDigestAlgorithm
		scanCommand.Force = argScanForce
		scanCommand.ConfigOutput = argConfigOutput
		scanCommand.JSONOutput = argJSONOutput

		envJSON, errJSON := envToBool("CLONECORE_JSON")
		if errJSON == nil {
			scanCommand.JSONOutput = envJSON
		}
		envOverwrite, errOverwrite := envToBool("CLONECORE_OVERWRITE")
		if errOverwrite == nil {
			scanCommand.Overwrite = envOverwrite
		}

		if scanCommand.Output == "" {
			return fmt.Errorf(`--output must not be empty`)
		}

		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		exitCode, cmdError = scanCommand.Run(w, log)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	def := internals.DefaultConfig()
	scanCmd.Flags().StringSliceVar(&argScanSources, "source", nil, "tree document to load (repeatable)")
	scanCmd.Flags().StringVarP(&argScanOutput, "output", "o", envOr("CLONECORE_OUTPUT", ""), "target location for the clone report")
	scanCmd.MarkFlagRequired("output")
	scanCmd.Flags().BoolVar(&argScanOverwrite, "overwrite", false, "if the output already exists, overwrite it without asking")
	scanCmd.Flags().IntVar(&argScanSizeThreshold, "size-threshold", def.SizeThreshold, "minimum covered-line count a candidate clone must reach")
	scanCmd.Flags().IntVar(&argScanDistanceThreshold, "distance-threshold", def.DistanceThreshold, "maximum anti-unification distance accepted; -1 disables trimming")
	scanCmd.Flags().IntVar(&argScanClusteringThreshold, "clustering-threshold", def.ClusteringThreshold, "maximum add-cost to fold a statement into an existing cluster")
	scanCmd.Flags().StringVarP(&argScanHashAlgorithm, "hash-algorithm", "a", def.HashAlgorithm, "hash algorithm used for clustering")
	scanCmd.Flags().StringVar(&argScanDigestAlgorithm, "digest-algorithm", def.DigestAlgorithm, "digest algorithm used for node identity in the report")
	scanCmd.Flags().BoolVar(&argScanForce, "force", false, "disable the long-sequence and long-equally-labeled-run safety filters")
}

// Run executes the CLI command scan on the given parameter set, writes the
// result to Output w and errors/information messages to log. It returns a
// pair (exit code, error)
func (c *ScanCommand) Run(w, log Output) (int, error) {
	cfg := internals.DefaultConfig()
	cfg.SizeThreshold = c.SizeThreshold
	cfg.DistanceThreshold = c.DistanceThreshold
	cfg.ClusteringThreshold = c.ClusteringThreshold
	cfg.HashAlgorithm = c.HashAlgorithm
	cfg.DigestAlgorithm = c.DigestAlgorithm
	cfg.Force = c.Force

	if c.ConfigOutput {
		b, err := json.Marshal(struct {
			Command *ScanCommand     `json:"command"`
			Config  internals.Config `json:"config"`
		}{c, cfg})
		if err != nil {
			return 6, fmt.Errorf(configJSONErrMsg, err)
		}
		w.Println(string(b))
		return 0, nil
	}

	if _, err := os.Stat(c.Output); err == nil && !c.Overwrite {
		return 3, fmt.Errorf(existsErrMsg, c.Output)
	}

	err := v1.GenerateReport(v1.ReportParameters{
		Sources:    c.Sources,
		Config:     cfg,
		OutputPath: c.Output,
	})
	if err != nil {
		return 2, err
	}

	msg := fmt.Sprintf(`Done. File "%s" written`, c.Output)
	if c.JSONOutput {
		data := ScanJSONResult{Message: msg}
		jsonRepr, err := json.Marshal(&data)
		if err != nil {
			return 6, fmt.Errorf(resultJSONErrMsg, err)
		}
		w.Println(string(jsonRepr))
	} else {
		w.Println(msg)
	}

	return 0, nil
}
