package main

import (
	"encoding/json"
	"fmt"

	"github.com/meisterluk/clonecore/internals"
	v1 "github.com/meisterluk/clonecore/v1"
	"github.com/spf13/cobra"
)

// StatsCommand defines the CLI command parameters
type StatsCommand struct {
	Sources             []string `json:"sources"`
	SizeThreshold       int      `json:"size-threshold"`
	DistanceThreshold   int      `json:"distance-threshold"`
	ClusteringThreshold int      `json:"clustering-threshold"`
	HashAlgorithm       string   `json:"hash-algorithm"`
	Force               bool     `json:"force"`
	ConfigOutput        bool     `json:"config"`
	JSONOutput          bool     `json:"json"`
}

// StatsJSONResult is a struct used to serialize JSON output
type StatsJSONResult struct {
	SourceFiles      int            `json:"source-files"`
	Statements       int            `json:"statements"`
	Sequences        int            `json:"sequences"`
	Clusters         int            `json:"clusters"`
	Candidates       int            `json:"candidates"`
	Clones           int            `json:"clones"`
	ClonesDominated  int            `json:"clones-dominated"`
	CoveredLineCount int            `json:"covered-line-count"`
	StageDurations   map[string]string `json:"stage-durations"`
}

var statsCommand *StatsCommand
var argStatsSources []string
var argStatsSizeThreshold int
var argStatsDistanceThreshold int
var argStatsClusteringThreshold int
var argStatsHashAlgorithm string
var argStatsForce bool

var statsCmd = &cobra.Command{
	Use:   "stats [source.json]...",
	Short: "Run the clone-detection pipeline and report its statistics",
	Long: `Loads every given tree document, runs the full clone-detection pipeline
over them, and prints the resulting RunStatistics instead of a clone report.
For example:

	clonecore stats a.json b.json c.json
`,
	Args: func(cmd *cobra.Command, args []string) error {
		sources := argStatsSources
		sources = append(sources, args...)
		if len(sources) == 0 {
			return fmt.Errorf(`at least one source tree document required`)
		}

		statsCommand = new(StatsCommand)
		statsCommand.Sources = sources
		statsCommand.SizeThreshold = argStatsSizeThreshold
		statsCommand.DistanceThreshold = argStatsDistanceThreshold
		statsCommand.ClusteringThreshold = argStatsClusteringThreshold
		statsCommand.HashAlgorithm = argStatsHashAlgorithm
		statsCommand.Force = argStatsForce
		statsCommand.ConfigOutput = argConfigOutput
		statsCommand.JSONOutput = argJSONOutput

		envJSON, errJSON := envToBool("CLONECORE_JSON")
		if errJSON == nil {
			statsCommand.JSONOutput = envJSON
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		exitCode, cmdError = statsCommand.Run(w, log)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	def := internals.DefaultConfig()
	statsCmd.Flags().StringSliceVar(&argStatsSources, "source", nil, "tree document to load (repeatable)")
	statsCmd.Flags().IntVar(&argStatsSizeThreshold, "size-threshold", def.SizeThreshold, "minimum covered-line count a candidate clone must reach")
	statsCmd.Flags().IntVar(&argStatsDistanceThreshold, "distance-threshold", def.DistanceThreshold, "maximum anti-unification distance accepted; -1 disables trimming")
	statsCmd.Flags().IntVar(&argStatsClusteringThreshold, "clustering-threshold", def.ClusteringThreshold, "maximum add-cost to fold a statement into an existing cluster")
	statsCmd.Flags().StringVarP(&argStatsHashAlgorithm, "hash-algorithm", "a", def.HashAlgorithm, "hash algorithm used for clustering")
	statsCmd.Flags().BoolVar(&argStatsForce, "force", false, "disable the long-sequence and long-equally-labeled-run safety filters")
}

// Run executes the CLI command stats on the given parameter set, writes the
// result to Output w and errors/information messages to log. It returns a
// pair (exit code, error)
func (c *StatsCommand) Run(w, log Output) (int, error) {
	cfg := internals.DefaultConfig()
	cfg.SizeThreshold = c.SizeThreshold
	cfg.DistanceThreshold = c.DistanceThreshold
	cfg.ClusteringThreshold = c.ClusteringThreshold
	cfg.HashAlgorithm = c.HashAlgorithm
	cfg.Force = c.Force

	if c.ConfigOutput {
		b, err := json.Marshal(struct {
			Command *StatsCommand   `json:"command"`
			Config  internals.Config `json:"config"`
		}{c, cfg})
		if err != nil {
			return 6, fmt.Errorf(configJSONErrMsg, err)
		}
		w.Println(string(b))
		return 0, nil
	}

	sources := make([]internals.SourceTree, 0, len(c.Sources))
	for _, path := range c.Sources {
		tree, err := v1.DecodeTreeFile(path)
		if err != nil {
			return 1, err
		}
		sources = append(sources, tree)
	}

	result, err := internals.Run(cfg, sources)
	if err != nil {
		return 2, err
	}

	out := StatsJSONResult{
		SourceFiles:      result.Stats.SourceFiles,
		Statements:       result.Stats.Statements,
		Sequences:        result.Stats.Sequences,
		Clusters:         result.Stats.Clusters,
		Candidates:       result.Stats.Candidates,
		Clones:           result.Stats.Clones,
		ClonesDominated:  result.Stats.ClonesDominated,
		CoveredLineCount: result.Stats.CoveredLineCount,
		StageDurations:   make(map[string]string, len(result.Stats.StageDurations)),
	}
	for stage, d := range result.Stats.StageDurations {
		out.StageDurations[stage] = d.String()
	}

	if c.JSONOutput {
		jsonRepr, err := json.MarshalIndent(&out, "", "  ")
		if err != nil {
			return 6, fmt.Errorf(resultJSONErrMsg, err)
		}
		w.Println(string(jsonRepr))
	} else {
		w.Printfln("source files:        %d", out.SourceFiles)
		w.Printfln("statements:          %d", out.Statements)
		w.Printfln("sequences:           %d", out.Sequences)
		w.Printfln("clusters:            %d", out.Clusters)
		w.Printfln("candidates:          %d", out.Candidates)
		w.Printfln("clones:              %d", out.Clones)
		w.Printfln("clones dominated:    %d", out.ClonesDominated)
		w.Printfln("covered lines:       %d", out.CoveredLineCount)
		for stage, d := range out.StageDurations {
			w.Printfln("  stage %-24s %s", stage, d)
		}
	}

	return 0, nil
}
