package slrsim

import "fmt"

// --- Tokens ----------------------------------------------------------------

// Token represents an input token, produced by a tokenizer from the raw input
// string of a parse simulation.
//
// An example would be a token for an identifier terminal:
//
//    Symbol  = "id"        // the terminal this token has been matched against
//    Lexeme  = "id"        // text as it appeared in the input string
//    Span    = 4…6         // occured from byte position 4 in the input string
//
// For terminals of a grammar symbol and lexeme are identical. Tokens for input
// which did not match any terminal carry the unmatched character as a lexeme
// and the reserved symbol "#error", which grammars may not use and which is
// therefore unknown to the parse tables. The end-of-input token has symbol "$"
// and an empty lexeme.
type Token interface {
	Symbol() string
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input. For every
// token, a tokenizer will track which input positions it covers.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span (0…0).
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
