/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

A default implementation matches the input against the terminal alphabet of a
grammar, using a lexmachine DFA: at every input position the longest terminal
wins, whitespace separates tokens and is otherwise ignored. Input which does
not match any terminal is passed on as a single-rune token with symbol
ErrorSymbol, so a parser will report a syntax error for it instead of the
scanner giving up.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/slrsim"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'slrsim.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("slrsim.scanner")
}

// EOF is the symbol of the end-of-input token.
const EOF = "$"

// ErrorSymbol is the symbol of tokens for input not matching any terminal.
// Grammars may not use it, thus it never has an entry in a parse table.
const ErrorSymbol = "#error"

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() slrsim.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// --- Terminal lexer --------------------------------------------------------

// whitespace is skipped between tokens.
const whitespace = "[ \t\n\r\f\v]+"

// TerminalLexer holds a DFA recognizing the terminals of a grammar. It may be
// used for any number of scanners.
type TerminalLexer struct {
	Lexer     *lexmachine.Lexer
	terminals []string // token type is index into terminals
}

// NewTerminalLexer creates a lexer for a terminal alphabet. Empty strings in
// terminals are ignored.
//
// NewTerminalLexer will return an error if compiling the DFA failed.
func NewTerminalLexer(terminals []string) (*TerminalLexer, error) {
	tl := &TerminalLexer{Lexer: lexmachine.NewLexer()}
	tl.Lexer.Add([]byte(whitespace), Skip)
	for _, a := range terminals {
		if a == "" {
			continue
		}
		tl.Lexer.Add([]byte(quoteLiteral(a)), MakeToken(a, len(tl.terminals)))
		tl.terminals = append(tl.terminals, a)
	}
	if err := tl.Lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	tracer().Debugf("compiled DFA for %d terminals", len(tl.terminals))
	return tl, nil
}

// quoteLiteral escapes a terminal to match it literally.
func quoteLiteral(lit string) string {
	var b strings.Builder
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c < utf8.RuneSelf && !isAlnum(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (tl *TerminalLexer) Scanner(input string) (*TerminalTokenizer, error) {
	s, err := tl.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &TerminalTokenizer{scanner: s, lexer: tl, input: input, Error: logError}, nil
}

// Tokenize splits input into tokens. The last token is always an EOF token.
func (tl *TerminalLexer) Tokenize(input string) ([]slrsim.Token, error) {
	t, err := tl.Scanner(input)
	if err != nil {
		return nil, err
	}
	t.SetErrorHandler(func(e error) {
		tracer().Infof("%v", e)
	})
	var tokens []slrsim.Token
	for {
		token := t.NextToken()
		tokens = append(tokens, token)
		if t.Done() {
			return tokens, nil
		}
	}
}

// Tokenize splits input into tokens, given a terminal alphabet. The last
// token is always an EOF token.
func Tokenize(input string, terminals []string) ([]slrsim.Token, error) {
	tl, err := NewTerminalLexer(terminals)
	if err != nil {
		return nil, err
	}
	return tl.Tokenize(input)
}

// --- Terminal tokenizer ----------------------------------------------------

// TerminalTokenizer splits an input string into tokens. Create one with
// (*TerminalLexer).Scanner.
type TerminalTokenizer struct {
	scanner *lexmachine.Scanner
	lexer   *TerminalLexer
	input   string
	done    bool // EOF token has been delivered
	Error   func(error)
}

var _ Tokenizer = (*TerminalTokenizer)(nil)

// SetErrorHandler sets an error handler for the scanner. The handler is called
// for input which does not match any terminal.
func (t *TerminalTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// Done is true after the EOF token has been delivered.
func (t *TerminalTokenizer) Done() bool {
	return t.done
}

// NextToken is part of the Tokenizer interface. After the input is exhausted,
// it returns EOF tokens.
//
// If no terminal matches, the next rune of the input is returned as a token
// with symbol ErrorSymbol, and scanning continues after it.
func (t *TerminalTokenizer) NextToken() slrsim.Token {
	if t.done {
		return t.eofToken()
	}
	tok, err, eof := t.scanner.Next()
	if err != nil {
		t.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is && ui.StartTC < len(t.input) {
			_, size := utf8.DecodeRuneInString(t.input[ui.StartTC:])
			t.scanner.TC = ui.StartTC + size
			lexeme := t.input[ui.StartTC : ui.StartTC+size]
			return MakeDefaultToken(ErrorSymbol, lexeme,
				slrsim.Span{uint64(ui.StartTC), uint64(ui.StartTC + size)})
		}
		eof = true
	}
	if eof || tok == nil {
		tracer().Debugf("TerminalTokenizer reached end of input")
		t.done = true
		return t.eofToken()
	}
	token := tok.(*lexmachine.Token)
	from := uint64(token.TC)
	return MakeDefaultToken(t.lexer.terminals[token.Type], string(token.Lexeme),
		slrsim.Span{from, from + uint64(len(token.Lexeme))})
}

func (t *TerminalTokenizer) eofToken() slrsim.Token {
	at := uint64(len(t.input))
	return MakeDefaultToken(EOF, "", slrsim.Span{at, at})
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, name, m), nil
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// terminal tokenizer.
type DefaultToken struct {
	symbol string
	lexeme string
	span   slrsim.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(symbol, lexeme string, span slrsim.Span) DefaultToken {
	return DefaultToken{
		symbol: symbol,
		lexeme: lexeme,
		span:   span,
	}
}

// Symbol is part of the slrsim.Token interface.
func (t DefaultToken) Symbol() string {
	return t.symbol
}

// Lexeme is part of the slrsim.Token interface.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of the slrsim.Token interface.
func (t DefaultToken) Span() slrsim.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.symbol == EOF {
		return EOF
	}
	return t.lexeme
}

// Symbols extracts the symbols of a token sequence.
func Symbols(tokens []slrsim.Token) []string {
	syms := make([]string, len(tokens))
	for k, tok := range tokens {
		syms[k] = tok.Symbol()
	}
	return syms
}
