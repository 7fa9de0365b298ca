// Package color implements 4.H: the coloring pass used once the big SCC
// has been removed, to peel off the next tier of medium-sized SCCs
// before the residual gets small enough for the replicated serial
// solver. A pass is forward minimum-label propagation to a fixpoint,
// followed by a backward sweep restricted to same-label vertices.
package color
