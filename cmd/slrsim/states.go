package main

import (
	"os"

	"github.com/spf13/cobra"
)

var statesFlags = struct {
	dot *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "states <grammar file path>",
		Short: "Print the states of the LR(0) CFSM of a grammar",
		Example: `  slrsim states expr.bnf
  slrsim states --dot expr.bnf | dot -Tsvg > cfsm.svg`,
		Args: cobra.ExactArgs(1),
		RunE: runStates,
	}
	statesFlags.dot = cmd.Flags().Bool("dot", false, "output the CFSM in GraphViz DOT format")
	rootCmd.AddCommand(cmd)
}

func runStates(cmd *cobra.Command, args []string) error {
	comp, err := compileGrammar(args[0])
	if err != nil {
		return err
	}
	if *statesFlags.dot {
		return comp.CFSM.ToGraphViz(os.Stdout)
	}
	return renderStates(comp.CFSM)
}
