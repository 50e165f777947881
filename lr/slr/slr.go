package slr

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/slrsim"
	"github.com/npillmayer/slrsim/lr"
	"github.com/npillmayer/slrsim/lr/ptree"
	"github.com/npillmayer/slrsim/lr/scanner"
)

// DefaultMaxIterations is the iteration ceiling of the parser loop, if neither
// an option nor the configuration key "slr-max-iterations" sets one.
const DefaultMaxIterations = 10000

// Parser is an SLR(1)-parser type. Create and initialize one with slr.NewParser(...)
// A parser may be used for any number of parses, but not concurrently.
type Parser struct {
	G            *lr.Grammar // augmented grammar
	table        *lr.Table
	lexer        *scanner.TerminalLexer
	lexerErr     error
	maxIter      int
	observer     func(Step)
	panicOnError bool // re-panic on internal errors, for debugging
}

// Option configures a parser.
type Option func(p *Parser)

// MaxIterations sets the iteration ceiling of the parser loop. Values < 1 are ignored.
func MaxIterations(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxIter = n
		}
	}
}

// WithObserver sets a function which receives every step as soon as it is
// emitted.
func WithObserver(f func(Step)) Option {
	return func(p *Parser) {
		p.observer = f
	}
}

// NewParser creates an SLR(1) parser. g should be the augmented grammar the
// table has been built from; if it is not augmented, it will be augmented here.
func NewParser(g *lr.Grammar, table *lr.Table, opts ...Option) *Parser {
	if g != nil && !g.IsAugmented() {
		if ag, err := lr.Augment(g); err == nil {
			g = ag
		}
	}
	p := &Parser{
		G:            g,
		table:        table,
		maxIter:      DefaultMaxIterations,
		panicOnError: gconf.GetBool("panic-on-internal-error"),
	}
	if gconf.IsSet("slr-max-iterations") && gconf.GetInt("slr-max-iterations") > 0 {
		p.maxIter = gconf.GetInt("slr-max-iterations")
	}
	for _, opt := range opts {
		opt(p)
	}
	if g != nil {
		p.lexer, p.lexerErr = scanner.NewTerminalLexer(g.Terminals())
	}
	return p
}

// Parse starts a new parse of input, beginning in state 0.
func (p *Parser) Parse(input string) *Result {
	return p.ParseFrom(input, nil)
}

// ParseFrom parses input, starting from a stack configuration. If resume is
// nil, parsing starts in state 0.
//
// If the state stack and the symbol stack of resume differ in length, the
// shorter one is padded on the left: states with 0, symbols with $.
// Symbols of a resumed configuration are represented by placeholder leaves
// in the parse forest, except for $.
func (p *Parser) ParseFrom(input string, resume *Configuration) *Result {
	if p.lexer == nil {
		if p.lexerErr != nil {
			return p.failed(resume, "scanner error", p.lexerErr)
		}
		return p.ParseTokens(nil, resume)
	}
	tokens, err := p.lexer.Tokenize(input)
	if err != nil {
		return p.failed(resume, "scanner error", err)
	}
	return p.ParseTokens(tokens, resume)
}

// failed reports an error which prevented parsing as a single internal error step.
func (p *Parser) failed(resume *Configuration, label string, err error) *Result {
	tracer().Errorf("%s: %v", label, err)
	r := p.newRun(nil, resume)
	r.emit(InternalError, lr.Action{}, label, err.Error())
	r.result.Forest = r.forest()
	return r.result
}

// ParseTokens parses a token sequence. If it does not end with an EOF
// token, one will be appended.
func (p *Parser) ParseTokens(tokens []slrsim.Token, resume *Configuration) (result *Result) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	r := p.newRun(tokens, resume)
	defer func() {
		if e := recover(); e != nil {
			if p.panicOnError {
				panic(e)
			}
			tracer().Errorf("internal error: %v", e)
			r.emit(InternalError, lr.Action{}, "internal error", fmt.Sprintf("%v", e))
		}
		r.result.Forest = r.forest()
		result = r.result
	}()
	if p.G == nil || p.table == nil {
		r.emit(InternalError, lr.Action{}, "internal error", "SLR(1)-parser not initialized")
		return
	}
	r.loop()
	return
}

// --- Parser run ------------------------------------------------------------

// run holds the state of a single parse. States, symbols and nodes form the
// parse stack; nodes is parallel to symbols and holds nil for the bottom
// marker.
type run struct {
	p       *Parser
	states  []int
	symbols []string
	nodes   []*ptree.Node
	tokens  []slrsim.Token
	pos     int // index of lookahead token
	builder *ptree.Builder
	index   int // index of next step
	result  *Result
}

func (p *Parser) newRun(tokens []slrsim.Token, resume *Configuration) *run {
	r := &run{
		p:       p,
		tokens:  tokens,
		builder: ptree.NewBuilder(lr.Epsilon),
		result:  &Result{},
	}
	if len(r.tokens) == 0 || r.tokens[len(r.tokens)-1].Symbol() != lr.EOF {
		var at uint64
		if len(r.tokens) > 0 {
			at = r.tokens[len(r.tokens)-1].Span().To()
		}
		r.tokens = append(r.tokens, scanner.MakeDefaultToken(lr.EOF, "", slrsim.Span{at, at}))
	}
	if resume == nil || (len(resume.States) == 0 && len(resume.Symbols) == 0) {
		r.states = []int{0}
		r.symbols = []string{lr.EOF}
		r.nodes = []*ptree.Node{nil}
		if resume != nil {
			r.index = resume.Step
		}
		return r
	}
	r.index = resume.Step
	r.states = append([]int(nil), resume.States...)
	r.symbols = append([]string(nil), resume.Symbols...)
	for len(r.symbols) < len(r.states) {
		r.symbols = append([]string{lr.EOF}, r.symbols...)
	}
	for len(r.states) < len(r.symbols) {
		r.states = append([]int{0}, r.states...)
	}
	r.nodes = make([]*ptree.Node, len(r.symbols))
	bottom := true // inside the run of $ at the bottom of the stack
	for k, sym := range r.symbols {
		if bottom && sym == lr.EOF {
			continue
		}
		bottom = false
		r.nodes[k] = r.builder.Leaf(sym, "", slrsim.Span{})
	}
	tracer().Debugf("resuming parse with states %v, symbols %v", r.states, r.symbols)
	return r
}

func (r *run) loop() {
	G, table := r.p.G, r.p.table
	for iter := 0; ; iter++ {
		if iter >= r.p.maxIter {
			r.emit(InternalError, lr.Action{}, "iteration limit",
				fmt.Sprintf("parser exceeded the limit of %d iterations", r.p.maxIter))
			return
		}
		state := r.states[len(r.states)-1] // TOS
		token := r.lookahead()
		action, ok := table.Action(state, token.Symbol())
		if !ok {
			tracer().Infof("syntax error in state %d at %q", state, token.Symbol())
			r.emit(SyntaxError, lr.Action{}, "syntax error", unexpected(state, token))
			return
		}
		tracer().Debugf("action(%d,%s) = %s", state, token.Symbol(), action)
		switch action.Kind {
		case lr.AcceptAction:
			r.result.Accepted = true
			r.emit(AcceptStep, action, "accept", "input accepted")
			return
		case lr.ShiftAction:
			var leaf *ptree.Node
			if token.Symbol() == lr.EOF {
				leaf = r.builder.Leaf(token.Symbol(), "", token.Span())
			} else {
				leaf = r.builder.Leaf(token.Symbol(), token.Lexeme(), token.Span())
			}
			r.push(action.Target, token.Symbol(), leaf)
			r.pos++
			r.emit(ShiftStep, action, fmt.Sprintf("shift %d", action.Target),
				fmt.Sprintf("shift %q and go to state %d", token.Symbol(), action.Target))
		case lr.ReduceAction:
			rule := G.Rule(action.Target)
			if rule == nil {
				panic(fmt.Sprintf("table refers to unknown production %d", action.Target))
			}
			if !r.reduce(action, rule, token) {
				return
			}
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are on the stack as
//
//    [TOS]  Sn(Xn) ... S1(X1)  ...
//
// They are replaced by the LHS and the goto state. For ε-rules nothing is
// popped and the new node gets a single ε-leaf as its child.
func (r *run) reduce(action lr.Action, rule *lr.Production, lookahead slrsim.Token) bool {
	tracer().Debugf("reduce %v", rule)
	n := rule.Len()
	if n > len(r.states)-1 {
		panic(fmt.Sprintf("stack underflow reducing %v", rule))
	}
	var children []*ptree.Node
	if n == 0 {
		children = []*ptree.Node{r.builder.EpsilonLeaf(lookahead.Span().From())}
	} else {
		children = append(children, r.nodes[len(r.nodes)-n:]...)
		for k, sym := range rule.RHS() {
			if got := r.symbols[len(r.symbols)-n+k]; got != sym {
				tracer().Errorf("expected %s on stack, got %s", sym, got)
			}
		}
	}
	r.pop(n)
	node := r.builder.Interior(rule.LHS, rule.ID, children)
	r.emitWith(node, ReduceStep, action, fmt.Sprintf("reduce %s", rule),
		fmt.Sprintf("reduce by production %d: %s", rule.ID, rule))
	state := r.states[len(r.states)-1]
	target, ok := r.p.table.Goto(state, rule.LHS)
	if !ok {
		r.emitWith(node, GotoError, action, "goto error",
			fmt.Sprintf("no goto entry for state %d and %s", state, rule.LHS))
		return false
	}
	r.push(target, rule.LHS, node)
	r.emit(GotoStep, action, fmt.Sprintf("goto %d", target),
		fmt.Sprintf("go from state %d to state %d on %s", state, target, rule.LHS))
	return true
}

func unexpected(state int, token slrsim.Token) string {
	if token.Symbol() == scanner.ErrorSymbol {
		return fmt.Sprintf("no action for state %d and unrecognized input %q", state, token.Lexeme())
	}
	return fmt.Sprintf("no action for state %d and token %q", state, token.Symbol())
}

func (r *run) push(state int, sym string, node *ptree.Node) {
	r.states = append(r.states, state)
	r.symbols = append(r.symbols, sym)
	r.nodes = append(r.nodes, node)
}

func (r *run) pop(n int) {
	r.states = r.states[:len(r.states)-n]
	r.symbols = r.symbols[:len(r.symbols)-n]
	r.nodes = r.nodes[:len(r.nodes)-n]
}

func (r *run) lookahead() slrsim.Token {
	if r.pos >= len(r.tokens) {
		return r.tokens[len(r.tokens)-1]
	}
	return r.tokens[r.pos]
}

func (r *run) remainingInput() []string {
	var input []string
	for _, tok := range r.tokens[min(r.pos, len(r.tokens)):] {
		if tok.Symbol() == lr.EOF {
			input = append(input, lr.EOF)
		} else {
			input = append(input, tok.Lexeme())
		}
	}
	return input
}

func (r *run) forest() ptree.Forest {
	roots := make([]*ptree.Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		if n != nil {
			roots = append(roots, n)
		}
	}
	return ptree.Snapshot(roots)
}

func (r *run) emit(kind StepKind, action lr.Action, label, explanation string) {
	r.emitWith(nil, kind, action, label, explanation)
}

// emitWith emits a step. If pending is non-nil, it is a node not yet pushed
// onto the stack, which is included in the forest snapshot.
func (r *run) emitWith(pending *ptree.Node, kind StepKind, action lr.Action, label, explanation string) {
	forest := r.forest()
	if pending != nil {
		forest = append(forest, pending)
	}
	step := Step{
		Index:       r.index,
		Kind:        kind,
		Action:      action,
		States:      append([]int(nil), r.states...),
		Symbols:     append([]string(nil), r.symbols...),
		Input:       r.remainingInput(),
		Label:       label,
		Explanation: explanation,
		Forest:      forest,
		Token:       r.lookahead(),
	}
	r.index++
	r.result.Steps = append(r.result.Steps, step)
	tracer().Debugf("step %3d: %-20s %v %v", step.Index, step.Label, step.States, step.Symbols)
	if r.p.observer != nil {
		r.p.observer(step)
	}
}
