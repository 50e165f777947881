/*
Package slr provides an SLR(1) parse simulator. Clients have to use the tools
of package lr to prepare the necessary parse tables. The simulator utilizes these
tables to create a right derivation for a given input, recording every move of
the underlying stack machine as a step.

The main focus of this implementation is observability, not speed. Every shift,
reduce and goto move is reported as a Step, carrying snapshots of the state
stack, the symbol stack, the remaining input and the parse forest. Clients may
render these steps, replay them or resume a parse from any recorded
configuration.

Package slr handles tables with conflicts as well: in this case the action
stored in the table (the first one written during construction) is used.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a").End()  // Var  --> Sign a
	b.LHS("Sign").T("+").End()           // Sign --> +
	b.LHS("Sign").T("-").End()           // Sign --> -
	b.LHS("Sign").Epsilon()              // Sign --> ε
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	comp, err := lr.Compile(g)
	if comp.Table.HasConflicts() { ... }  // parser may not do what you expect

Finally parse some input:

	p := slr.NewParser(comp.Grammar(), comp.Table)
	result := p.Parse("+ a")
	if result.Accepted { … }
	for _, step := range result.Steps { … }

Errors in the input never make the simulator fail. Instead, the last step of a
result describes the error.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrsim.slr'.
func tracer() tracing.Trace {
	return tracing.Select("slrsim.slr")
}
