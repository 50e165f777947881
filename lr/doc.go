/*
Package lr implements the construction of SLR(1) parsers: a grammar model,
static grammar analysis, the LR(0) automaton and the SLR(1) parse tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Symbols are plain
strings. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()  // A  ->  B D
    b.LHS("B").T("b").End()         // B  ->  b
    b.LHS("B").Epsilon()            // B  ->  ε
    b.LHS("D").T("d").End()         // D  ->  d
    b.LHS("D").Epsilon()            // D  ->  ε
    g, err := b.Grammar()

Grammars read by other means (see package bnf) enter through NewGrammar.
Empty right hand sides are always stored as the single symbol ε.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. Analysis augments the
grammar with a fresh start rule S' ➞ S and computes FIRST and FOLLOW sets by
fixed-point iteration.

    ga, err := lr.Analysis(g)
    ga.First("A")    // [b d ε]
    ga.Follow("B")   // [a d]

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar, i.e., the canonical collection of LR(0) item sets. The CFSM will then
be transformed into a GOTO table and an SLR(1) ACTION table. The CFSM will not
be thrown away, but is made available to the client.

    lrgen := lr.NewTableGenerator(ga)
    lrgen.CreateTables()
    if lrgen.HasConflicts {
        for _, c := range lrgen.Table().Conflicts() { … }
    }

Conflicts never abort table construction. For every table cell the first
action written wins, with the single exception of accept actions, which
replace whatever has been written for the end marker before. Later candidate
actions are reported as conflicts.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrsim.lr'.
func tracer() tracing.Trace {
	return tracing.Select("slrsim.lr")
}
