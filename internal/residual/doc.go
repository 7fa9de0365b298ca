// Package residual implements 4.J: the classical serial Tarjan pass run
// identically on every rank over the replicated sub-graph from
// allgather.Build, via a thin adapter onto gonum's graph.Directed so the
// actual algorithm is gonum's topo.TarjanSCC rather than a bespoke one.
package residual
