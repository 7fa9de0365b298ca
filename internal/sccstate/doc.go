// Package sccstate holds the one piece of state every pass in the
// pipeline mutates: the local scc_id array plus a cache of remote
// vertices' representatives learned through all-gather synchronization.
// It is the shared substrate trim, pivot, reachability, coloring and the
// residual commit step all read and write through, so that "decided" has
// one definition everywhere: scc_id left the UNDECIDED sentinel.
package sccstate
