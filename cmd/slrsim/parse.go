package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/slrsim/lr"
	"github.com/npillmayer/slrsim/lr/slr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	quiet *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <grammar file path> <input>...",
		Short: "Trace the moves of the SLR(1) parser for an input",
		Long: `Input is split into terminals of the grammar, using longest match.
White space between terminals is optional.`,
		Example: `  slrsim parse expr.bnf 'id * ( id + id )'`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runParse,
	}
	parseFlags.quiet = cmd.Flags().BoolP("quiet", "q", false, "do not print the trace, only the result")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	comp, err := compileGrammar(args[0])
	if err != nil {
		return err
	}
	input := strings.Join(args[1:], " ")
	result := parse(comp, input)
	if !*parseFlags.quiet {
		if err := renderTrace(result.Steps); err != nil {
			return err
		}
	}
	if !result.Accepted {
		last := result.Last()
		return fmt.Errorf("%s: %s", last.Kind, last.Explanation)
	}
	pterm.Success.Println("input accepted")
	return renderForest(result.Forest)
}

func parse(comp *lr.Compilation, input string) *slr.Result {
	if comp.Table.HasConflicts() {
		pterm.Warning.Printf("grammar has %d conflicts, using first table entries\n", len(comp.Table.Conflicts()))
	}
	p := slr.NewParser(comp.Grammar(), comp.Table)
	return p.Parse(input)
}
