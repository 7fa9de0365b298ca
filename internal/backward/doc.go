// Package backward materializes the transpose CSR from a forward CSR: the
// "backward complement" of 4.C. Two algorithms are provided. BuildLocal
// is the single-rank, three-linear-pass algorithm with zero auxiliary
// memory. BuildDistributed additionally routes cross-rank edges through
// one fabric all-to-all so that every rank ends up with exactly its local
// backward edges (edges whose destination it owns), then builds its local
// CSR from the received edge list with a counting sort.
package backward
