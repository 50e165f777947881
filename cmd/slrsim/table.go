package main

import (
	"os"

	"github.com/npillmayer/slrsim/lr"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	html *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "table <grammar file path>",
		Short: "Print the SLR(1) ACTION and GOTO tables of a grammar",
		Example: `  slrsim table expr.bnf
  slrsim table --html expr.bnf > tables.html`,
		Args: cobra.ExactArgs(1),
		RunE: runTable,
	}
	tableFlags.html = cmd.Flags().Bool("html", false, "output the tables in HTML format")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	comp, err := compileGrammar(args[0])
	if err != nil {
		return err
	}
	if *tableFlags.html {
		lrgen := lr.NewTableGenerator(comp.Analysis)
		lrgen.CreateTables()
		lr.ActionTableAsHTML(lrgen, os.Stdout)
		lr.GotoTableAsHTML(lrgen, os.Stdout)
		return nil
	}
	if err := renderTable(comp.Table); err != nil {
		return err
	}
	renderConflicts(comp.Table)
	return nil
}
