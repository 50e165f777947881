package slr

import (
	"strings"

	"github.com/npillmayer/slrsim"
	"github.com/npillmayer/slrsim/lr"
	"github.com/npillmayer/slrsim/lr/ptree"
)

// StepKind denotes the kind of move the parser made.
type StepKind int8

// Kinds of steps. SyntaxError, GotoError and InternalError steps terminate a
// parse, as does Accept.
const (
	ShiftStep StepKind = iota
	ReduceStep
	GotoStep
	AcceptStep
	SyntaxError
	GotoError
	InternalError
)

func (k StepKind) String() string {
	switch k {
	case ShiftStep:
		return "shift"
	case ReduceStep:
		return "reduce"
	case GotoStep:
		return "goto"
	case AcceptStep:
		return "accept"
	case SyntaxError:
		return "syntax error"
	case GotoError:
		return "goto error"
	case InternalError:
		return "internal error"
	}
	return "<unknown step>"
}

// IsError is true for steps reporting a failed parse.
func (k StepKind) IsError() bool {
	return k >= SyntaxError
}

// Step is a single observable move of the parser. All slices are snapshots
// owned by the step.
type Step struct {
	Index       int          // position in the step sequence
	Kind        StepKind     // kind of move
	Action      lr.Action    // table action executed, if any
	States      []int        // state stack after the move, bottom first
	Symbols     []string     // symbol stack after the move, bottom first
	Input       []string     // remaining input, including the end marker
	Label       string       // short description, e.g. "shift 5"
	Explanation string       // human readable explanation
	Forest      ptree.Forest // subtree roots on the stack after the move
	Token       slrsim.Token // lookahead token at the time of the move
}

// Configuration returns the stack configuration after this step. It may be
// used to resume a parse with the remaining input, see Parser.ParseFrom.
func (s Step) Configuration() *Configuration {
	return &Configuration{
		States:  append([]int(nil), s.States...),
		Symbols: append([]string(nil), s.Symbols...),
		Step:    s.Index + 1,
	}
}

// RemainingInput returns the input not yet consumed after this step, as a
// string which may be fed into Parser.ParseFrom.
func (s Step) RemainingInput() string {
	in := s.Input
	if len(in) > 0 && in[len(in)-1] == lr.EOF {
		in = in[:len(in)-1]
	}
	return strings.Join(in, " ")
}

func (s Step) String() string {
	return s.Label
}

// Configuration is a snapshot of the parse stacks. Step is the index the next
// step of a resumed parse will get.
type Configuration struct {
	States  []int
	Symbols []string
	Step    int
}

// Result is the outcome of a parse.
type Result struct {
	Steps    []Step
	Accepted bool
	Forest   ptree.Forest // forest after the last step
}

// Last returns the final step of a parse.
func (r *Result) Last() Step {
	if len(r.Steps) == 0 {
		return Step{Kind: InternalError, Label: "no steps"}
	}
	return r.Steps[len(r.Steps)-1]
}

// Root returns the single root of the parse tree for an accepted input, or nil.
func (r *Result) Root() *ptree.Node {
	if !r.Accepted || len(r.Forest) != 1 {
		return nil
	}
	return r.Forest[0]
}
