// Package allgather implements 4.I: replicating the induced sub-graph
// over the current undecided vertex set onto every rank, as a
// self-contained CSR ready for the serial residual solver.
package allgather
