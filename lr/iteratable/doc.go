/*
Package iteratable implements an iteratable set type.

Set is a special purpose set type, suitable mainly for implementing algorithms
around LR automata. These kinds of algorithms are often more straightforward
to describe as set constructions and operations, for example the closure of
a set of LR(0) items, which keeps growing while it is being iterated.

Elements are compared by value. Unusually, most set operations are destructive!

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
