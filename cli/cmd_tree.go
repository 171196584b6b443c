package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/meisterluk/clonecore/internals"
	v1 "github.com/meisterluk/clonecore/v1"
	"github.com/spf13/cobra"
)

// TreeCommand defines the CLI command parameters
type TreeCommand struct {
	Source       string `json:"source"`
	Indent       string `json:"indent"`
	ConfigOutput bool   `json:"config"`
	JSONOutput   bool   `json:"json"`
}

var treeCommand *TreeCommand
var argTreeSource string
var argTreeIndent string

var treeCmd = &cobra.Command{
	Use:   "tree [source.json]",
	Short: "Print the AST of a parsed-tree fixture",
	Long: `Loads a tree document (the JSON wire format v1.TreeDocument describes)
and prints its node structure, one line per node, box-drawn by default.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf(`expected only one positional argument, got %d`, len(args))
		}
		if len(args) == 1 {
			argTreeSource = args[0]
		}
		if argTreeSource == "" {
			return fmt.Errorf(`source tree document required`)
		}

		treeCommand = new(TreeCommand)
		treeCommand.Source = argTreeSource
		treeCommand.Indent = argTreeIndent
		treeCommand.ConfigOutput = argConfigOutput
		treeCommand.JSONOutput = argJSONOutput

		envJSON, errJSON := envToBool("CLONECORE_JSON")
		if errJSON == nil {
			treeCommand.JSONOutput = envJSON
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		exitCode, cmdError = treeCommand.Run(w, log)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringVar(&argTreeSource, "source", "", "tree document to load")
	treeCmd.Flags().StringVar(&argTreeIndent, "indent", "", "if non-empty, show one node per line indented by repeating this string instead of box-drawing")
}

// printTreeNode prints the subtree rooted at id recursively to w using box
// drawing characters, following the ancestor last-child chain in isLast.
func printTreeNode(w Output, arena *internals.Arena, id internals.NodeID, isLast []bool) {
	prefix := ``
	for i, last := range isLast {
		if i == len(isLast)-1 && last {
			prefix += " └"
		} else if i == len(isLast)-1 && !last {
			prefix += " ├"
		} else if last {
			prefix += "  "
		} else {
			prefix += " │"
		}
	}
	children := arena.Children(id)
	if len(children) > 0 {
		prefix += "─┬"
	} else {
		prefix += "──"
	}

	w.Printfln("%s %s %v", prefix, nodeLabel(arena, id), arena.OwnLines(id))

	isLast = append(isLast, false)
	for i, c := range children {
		isLast[len(isLast)-1] = i == len(children)-1
		printTreeNode(w, arena, c, isLast)
	}
}

// printTreeNodeWithIndent prints the subtree rooted at id using repeated
// indent prefixes instead of box-drawing.
func printTreeNodeWithIndent(w Output, arena *internals.Arena, id internals.NodeID, depth int, indent string) {
	prefix := ""
	for i := 0; i < depth; i++ {
		prefix += indent
	}
	w.Printfln("%s%s %v", prefix, nodeLabel(arena, id), arena.OwnLines(id))
	for _, c := range arena.Children(id) {
		printTreeNodeWithIndent(w, arena, c, depth+1, indent)
	}
}

func nodeLabel(arena *internals.Arena, id internals.NodeID) string {
	if arena.IsStatement(id) {
		return arena.Name(id) + "*"
	}
	return arena.Name(id)
}

// Run executes the CLI command tree on the given parameter set, writes the
// result to Output w and errors/information messages to log. It returns a
// pair (exit code, error)
func (c *TreeCommand) Run(w, log Output) (int, error) {
	if c.ConfigOutput {
		b, err := json.Marshal(c)
		if err != nil {
			return 6, fmt.Errorf(configJSONErrMsg, err)
		}
		w.Println(string(b))
		return 0, nil
	}

	source, err := v1.DecodeTreeFile(c.Source)
	if err != nil {
		return 1, err
	}

	if c.JSONOutput {
		raw, err := os.ReadFile(c.Source)
		if err != nil {
			return 1, err
		}
		var pretty interface{}
		if err := json.Unmarshal(raw, &pretty); err != nil {
			return 1, err
		}
		jsonRepr, err := json.MarshalIndent(pretty, "", "  ")
		if err != nil {
			return 6, fmt.Errorf(resultJSONErrMsg, err)
		}
		w.Println(string(jsonRepr))
		return 0, nil
	}

	if c.Indent == "" {
		printTreeNode(w, source.Tree, source.Root, make([]bool, 0, 16))
	} else {
		printTreeNodeWithIndent(w, source.Tree, source.Root, 0, c.Indent)
	}

	return 0, nil
}
