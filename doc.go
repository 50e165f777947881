/*
Package slrsim is a toolbox for studying SLR(1) parsing.

It computes the canonical LR(0) automaton of a context-free grammar, derives
FIRST and FOLLOW sets, synthesizes an SLR(1) action/goto table (reporting
conflicts instead of failing) and executes a deterministic shift-reduce
simulation, producing a step-by-step trace together with a parse tree.
Package structure is as follows:

■ lr: Package lr implements the grammar model, grammar analysis, the LR(0)
automaton and SLR(1) table construction.

■ lr/slr: Package slr implements the parse simulator driving the tables.

■ lr/scanner, lr/ptree: tokenizing input against a terminal alphabet, and the
parse tree built during a simulation.

■ lr/bnf: a small reader for grammars written as text.

■ cmd/slrsim: a command line tool to inspect tables and to replay parses.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slrsim
