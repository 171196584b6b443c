package main

import (
	"encoding/json"
	"fmt"

	"github.com/meisterluk/clonecore/internals"
	"github.com/spf13/cobra"
)

// HashAlgosJSONResult is a struct used to serialize JSON output
type HashAlgosJSONResult struct {
	CheckSucceeded bool     `json:"check-result"`
	SupHashAlgos   []string `json:"supported-hash-algorithms"`
	Default        string   `json:"default"`
}

// HashAlgosCommand defines the CLI command parameters
type HashAlgosCommand struct {
	CheckSupport string `json:"check-support"`
	ConfigOutput bool   `json:"config"`
	JSONOutput   bool   `json:"json"`
}

var hashAlgosCommand *HashAlgosCommand
var argHashAlgosCheckSupport string

var hashAlgosCmd = &cobra.Command{
	Use:   "hashalgos",
	Short: "List supported hash algorithms",
	Args: func(cmd *cobra.Command, args []string) error {
		hashAlgosCommand = new(HashAlgosCommand)
		hashAlgosCommand.CheckSupport = argHashAlgosCheckSupport
		hashAlgosCommand.ConfigOutput = argConfigOutput
		hashAlgosCommand.JSONOutput = argJSONOutput

		envJSON, errJSON := envToBool("CLONECORE_JSON")
		if errJSON == nil {
			hashAlgosCommand.JSONOutput = envJSON
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		exitCode, cmdError = hashAlgosCommand.Run(w, log)
	},
}

func init() {
	rootCmd.AddCommand(hashAlgosCmd)
	hashAlgosCmd.Flags().StringVar(&argHashAlgosCheckSupport, "check-support", "", "exit code 100 indicates that the given hash algorithm is unsupported")
}

// Run executes the CLI command hashalgos on the given parameter set,
// writes the result to Output w and errors/information messages to log.
// It returns a pair (exit code, error)
func (c *HashAlgosCommand) Run(w Output, log Output) (int, error) {
	if c.ConfigOutput {
		b, err := json.Marshal(c)
		if err != nil {
			return 6, fmt.Errorf(configJSONErrMsg, err)
		}
		w.Println(string(b))
		return 0, nil
	}

	data := HashAlgosJSONResult{
		CheckSucceeded: false,
		SupHashAlgos:   internals.SupportedHashAlgorithms(),
		Default:        internals.HashAlgos{}.Default().Instance().Name(),
	}

	if c.CheckSupport != "" {
		for _, h := range data.SupHashAlgos {
			if h == c.CheckSupport {
				data.CheckSucceeded = true
			}
		}
	}

	if c.JSONOutput {
		b, err := json.Marshal(&data)
		if err != nil {
			return 6, fmt.Errorf(resultJSONErrMsg, err)
		}
		w.Println(string(b))
	} else {
		for _, h := range data.SupHashAlgos {
			marker := ""
			if h == data.Default {
				marker = " *"
			}
			w.Printfln("%s%s", h, marker)
		}
	}

	if c.CheckSupport != "" && !data.CheckSucceeded {
		return 100, nil
	}

	return 0, nil
}
