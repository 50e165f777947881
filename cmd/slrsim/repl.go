package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/slrsim/lr"
	"github.com/npillmayer/slrsim/lr/slr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl [grammar file path]",
		Short: "Step interactively through SLR(1) parses",
		Long: `repl starts an interactive session. Enter "help" for a list of commands.
Quit with <ctrl>D.`,
		Example: `  slrsim repl expr.bnf`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	repl, err := readline.New("slrsim> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{repl: repl}
	if len(args) > 0 {
		if err := intp.load(args[0]); err != nil {
			return err
		}
	}
	pterm.Info.Println("Welcome to slrsim, quit with <ctrl>D")
	intp.REPL()
	return nil
}

// Intp is our interpreter object. It holds the current grammar and the steps
// of the most recent parse, with a cursor to the step on display.
type Intp struct {
	repl   *readline.Instance
	comp   *lr.Compilation
	result *slr.Result
	cursor int
}

var errNoGrammar = errors.New("no grammar loaded, use 'load <file>'")
var errNoParse = errors.New("no parse in progress, use 'parse <input>'")

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a single command line.
func (intp *Intp) Eval(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))
	tracer().Debugf("command %q, args %v", cmd, args)
	switch cmd {
	case "quit", "q":
		return true, nil
	case "help", "?":
		intp.help()
		return false, nil
	case "load":
		if len(args) != 1 {
			return false, errors.New("usage: load <file>")
		}
		return false, intp.load(args[0])
	case "parse":
		return false, intp.parse(rest)
	case "resume":
		return false, intp.resume(rest)
	}
	if intp.comp == nil {
		return false, errNoGrammar
	}
	switch cmd {
	case "grammar":
		return false, renderGrammar(intp.comp.Grammar())
	case "first":
		return false, renderFirstFollow(intp.comp.Analysis)
	case "states":
		return false, renderStates(intp.comp.CFSM)
	case "table":
		if err := renderTable(intp.comp.Table); err != nil {
			return false, err
		}
		renderConflicts(intp.comp.Table)
		return false, nil
	}
	if intp.result == nil {
		return false, errNoParse
	}
	switch cmd {
	case "next", "n":
		return false, intp.move(intp.cursor + 1)
	case "prev", "p":
		return false, intp.move(intp.cursor - 1)
	case "first-step":
		return false, intp.move(0)
	case "last":
		return false, intp.move(len(intp.result.Steps) - 1)
	case "step":
		if len(args) != 1 {
			return false, errors.New("usage: step <number>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("not a step number: %q", args[0])
		}
		return false, intp.move(n - 1)
	case "trace":
		return false, renderTrace(intp.result.Steps)
	case "tree":
		return false, renderForest(intp.current().Forest)
	}
	return false, fmt.Errorf("unknown command %q, try 'help'", cmd)
}

func (intp *Intp) help() {
	pterm.Println(`load <file>       load a grammar
grammar           print the rules of the grammar
first             print FIRST and FOLLOW sets
states            print the states of the CFSM
table             print the SLR(1) tables
parse <input>     parse input and display the first step
next, prev        move to the next or previous step
first-step, last  move to the first or last step
step <number>     move to a step
trace             print all steps of the parse
tree              print the parse forest of the current step
resume <input>    continue parsing from the current step with new input
quit              leave`)
}

func (intp *Intp) load(path string) error {
	comp, err := compileGrammar(path)
	if err != nil {
		return err
	}
	intp.comp = comp
	intp.result = nil
	intp.cursor = 0
	pterm.Info.Printf("loaded grammar %q, %d states\n", comp.Grammar().Name, comp.CFSM.Size())
	if comp.Table.HasConflicts() {
		renderConflicts(comp.Table)
	}
	return nil
}

func (intp *Intp) parse(input string) error {
	if intp.comp == nil {
		return errNoGrammar
	}
	intp.result = parse(intp.comp, input)
	return intp.move(0)
}

// resume replaces the input after the current step and re-parses from the
// configuration of the current step. Steps up to the current one are kept.
func (intp *Intp) resume(input string) error {
	if intp.comp == nil {
		return errNoGrammar
	}
	if intp.result == nil {
		return errNoParse
	}
	step := intp.current()
	// after a reduce step the LHS is not yet on the stack
	if step.Kind != slr.ShiftStep && step.Kind != slr.GotoStep {
		return fmt.Errorf("cannot resume after step %d: %s", step.Index+1, step.Kind)
	}
	p := slr.NewParser(intp.comp.Grammar(), intp.comp.Table)
	cont := p.ParseFrom(input, step.Configuration())
	steps := append(intp.result.Steps[:intp.cursor+1:intp.cursor+1], cont.Steps...)
	intp.result = &slr.Result{Steps: steps, Accepted: cont.Accepted, Forest: cont.Forest}
	return intp.move(intp.cursor + 1)
}

func (intp *Intp) current() slr.Step {
	return intp.result.Steps[intp.cursor]
}

func (intp *Intp) move(to int) error {
	if to < 0 || to >= len(intp.result.Steps) {
		return fmt.Errorf("no step %d, parse has %d steps", to+1, len(intp.result.Steps))
	}
	intp.cursor = to
	renderStep(intp.current())
	if to == len(intp.result.Steps)-1 && intp.result.Accepted {
		pterm.Success.Println("input accepted")
	}
	return nil
}
