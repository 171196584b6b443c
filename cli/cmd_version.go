package main

import (
	"encoding/json"
	"fmt"

	"github.com/meisterluk/clonecore/internals"
	v1 "github.com/meisterluk/clonecore/v1"
	"github.com/spf13/cobra"
)

// VersionCommand defines the CLI command parameters
type VersionCommand struct {
	CheckSupport string `json:"check-hashalgo-support"`
	ConfigOutput bool   `json:"config"`
	JSONOutput   bool   `json:"json"`
}

// VersionJSONResult is a struct used to serialize JSON output
type VersionJSONResult struct {
	Version     string              `json:"version"`
	ReleaseDate string              `json:"release-date"`
	License     string              `json:"license"`
	Author      string              `json:"author"`
	HashAlgos   []HashAlgorithmData `json:"hash-algorithms"`
	Bugs        string              `json:"bugs"`
}

// HashAlgorithmData contains the metadata of a hash algorithm
type HashAlgorithmData struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Default bool   `json:"default"`
}

var versionCommand *VersionCommand
var argCheckSupport string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version, license, and supported hash algorithms",
	Args: func(cmd *cobra.Command, args []string) error {
		versionCommand = new(VersionCommand)
		versionCommand.CheckSupport = argCheckSupport
		versionCommand.ConfigOutput = argConfigOutput
		versionCommand.JSONOutput = argJSONOutput

		envJSON, errJSON := envToBool("CLONECORE_JSON")
		if errJSON == nil {
			versionCommand.JSONOutput = envJSON
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		exitCode, cmdError = versionCommand.Run(w, log)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().StringVar(&argCheckSupport, "check-support", "", "exit code 100 indicates that the given hash algorithm is unsupported")
}

const humanReadableRepresentation = `version:           %s
release date:      %s
license:           %s
author:            %s
report bugs to:    %s

hash algorithms:
(* denotes default algorithm)
`

// requiredHashAlgos must always be present in the registry; the version
// command marks them distinctly since callers may depend on their
// availability for report interoperability.
var requiredHashAlgos = map[string]bool{
	"crc64": true, "fnv-1a-32": true, "fnv-1a-128": true,
	"sha-256": true, "sha-512": true, "sha-3-512": true,
}

// Run executes the CLI command version on the given parameter set,
// writes the result to Output w and errors/information messages to log.
// It returns a pair (exit code, error)
func (c *VersionCommand) Run(w, log Output) (int, error) {
	if c.ConfigOutput {
		b, err := json.Marshal(c)
		if err != nil {
			return 6, fmt.Errorf(configJSONErrMsg, err)
		}
		w.Println(string(b))
		return 0, nil
	}

	data := VersionJSONResult{}
	data.Version = fmt.Sprintf("%d.%d.%d", v1.VERSION[0], v1.VERSION[1], v1.VERSION[2])
	data.ReleaseDate = v1.ReleaseDate
	data.License = v1.License
	data.Author = v1.Author
	data.Bugs = `https://github.com/meisterluk/clonecore/issues/`

	names := internals.SupportedHashAlgorithms()
	defaultName := internals.HashAlgos{}.Default().Instance().Name()
	data.HashAlgos = make([]HashAlgorithmData, 0, len(names))
	for _, name := range names {
		status := "supported"
		if requiredHashAlgos[name] {
			status = "required"
		}
		data.HashAlgos = append(data.HashAlgos, HashAlgorithmData{
			Name:    name,
			Status:  status,
			Default: name == defaultName,
		})
	}

	checkSupportFailed := false
	if c.CheckSupport != "" {
		found := false
		for _, h := range names {
			if h == c.CheckSupport {
				found = true
			}
		}
		checkSupportFailed = !found
	}

	if c.JSONOutput {
		jsonRepr, err := json.MarshalIndent(&data, "", "  ")
		if err != nil {
			return 6, fmt.Errorf(resultJSONErrMsg, err)
		}
		w.Println(string(jsonRepr))
	} else {
		w.Printf(humanReadableRepresentation, data.Version, data.ReleaseDate, data.License, data.Author, data.Bugs)
		for _, ha := range data.HashAlgos {
			isDefault := ""
			if ha.Default {
				isDefault = " *"
			}
			w.Printfln("\t%s%s  %s", ha.Name, isDefault, ha.Status)
		}
	}

	if c.CheckSupport != "" && checkSupportFailed {
		return 100, nil
	}

	return 0, nil
}
