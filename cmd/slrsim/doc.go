/*
Command slrsim is a workbench for SLR(1) grammars. It reads a grammar in a
minimal BNF notation (see package lr/bnf) and prints the results of the
construction steps: FIRST and FOLLOW sets, the states of the CFSM and the
SLR(1) parse tables, including conflicts. Command parse prints a trace of
the moves of the SLR(1) parser for an input and the resulting parse tree;
command repl lets users step back and forth through a parse.

Configuration is read from a NestedText file "slrsim.nt", searched for at the
usual places for application configuration. Keys are

    tracing.adapter:           go
    tracelevel:
      root:                    Error
      slrsim.slr:              Debug
    slr-max-iterations:        10000
    panic-on-internal-error:   false

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrsim.cli'
func tracer() tracing.Trace {
	return tracing.Select("slrsim.cli")
}
