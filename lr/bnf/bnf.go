/*
Package bnf reads grammars written in a minimal, line oriented BNF notation:

    # expressions
    E -> E + T | T
    T -> T * F
       | F
    F -> ( E ) | id

Every line defines alternatives for a non-terminal, with "->", "→" or "::="
separating the head from the alternatives. A line starting with "|" adds
alternatives to the previous head. Symbols are separated by whitespace. "ε",
"eps" or '' denote an empty alternative; an empty alternative may also be
written by leaving it blank. Text after "#" is ignored.

Heads are the non-terminals of the grammar, every other symbol is a terminal.
The first head is the start symbol.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bnf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/slrsim/lr"
)

// SyntaxError is returned for malformed grammar input.
type SyntaxError struct {
	Line    int
	message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in line %d: %s", e.Line, e.message)
}

var separators = []string{"->", "→", "::="}

type rule struct {
	lhs string
	rhs []string
}

// Parse reads a grammar.
func Parse(name string, r io.Reader) (*lr.Grammar, error) {
	var rules []rule
	var heads []string
	isHead := make(map[string]bool)
	current := ""
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var body string
		if strings.HasPrefix(line, "|") {
			if current == "" {
				return nil, &SyntaxError{Line: lineno, message: "alternative without a head"}
			}
			body = line[1:]
		} else {
			head, rest, ok := splitHead(line)
			if !ok {
				return nil, &SyntaxError{Line: lineno, message: "missing '->' after head"}
			}
			if head == "" || len(strings.Fields(head)) != 1 {
				return nil, &SyntaxError{Line: lineno, message: fmt.Sprintf("invalid head %q", head)}
			}
			if isEpsilon(head) || head == lr.EOF {
				return nil, &SyntaxError{Line: lineno, message: fmt.Sprintf("reserved symbol %q as head", head)}
			}
			current = head
			if !isHead[head] {
				isHead[head] = true
				heads = append(heads, head)
			}
			body = rest
		}
		for _, alt := range strings.Split(body, "|") {
			var rhs []string
			for _, sym := range strings.Fields(alt) {
				if sym == lr.EOF {
					return nil, &SyntaxError{Line: lineno, message: "end marker $ used as a symbol"}
				}
				if !isEpsilon(sym) {
					rhs = append(rhs, sym)
				}
			}
			rules = append(rules, rule{lhs: current, rhs: rhs})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, lr.ErrEmptyGrammar
	}
	var terminals []string
	seen := make(map[string]bool)
	productions := make([]*lr.Production, len(rules))
	for k, r := range rules {
		for _, sym := range r.rhs {
			if !isHead[sym] && !seen[sym] {
				seen[sym] = true
				terminals = append(terminals, sym)
			}
		}
		productions[k] = lr.NewProduction(k, r.lhs, r.rhs...)
	}
	return lr.NewGrammar(name, heads[0], terminals, heads, productions)
}

func splitHead(line string) (string, string, bool) {
	at, seplen := -1, 0
	for _, sep := range separators {
		if i := strings.Index(line, sep); i >= 0 && (at < 0 || i < at) {
			at, seplen = i, len(sep)
		}
	}
	if at < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:at]), line[at+seplen:], true
}

func isEpsilon(sym string) bool {
	return sym == lr.Epsilon || sym == "eps" || sym == "''"
}

// ParseString reads a grammar from a string.
func ParseString(name, text string) (*lr.Grammar, error) {
	return Parse(name, strings.NewReader(text))
}
