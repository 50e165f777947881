package main

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "first <grammar file path>",
		Short:   "Print the rules of a grammar and its FIRST and FOLLOW sets",
		Example: `  slrsim first expr.bnf`,
		Args:    cobra.ExactArgs(1),
		RunE:    runFirst,
	}
	rootCmd.AddCommand(cmd)
}

func runFirst(cmd *cobra.Command, args []string) error {
	comp, err := compileGrammar(args[0])
	if err != nil {
		return err
	}
	if err := renderGrammar(comp.Grammar()); err != nil {
		return err
	}
	return renderFirstFollow(comp.Analysis)
}
