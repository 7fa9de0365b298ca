// Package fabric is the engine's only cross-rank transport. It is the Go
// translation of the MPI-like runtime the design assumes: a fixed World of
// ranks, each running as its own goroutine, that can only communicate by
// entering the same collective operation together — all-reduce,
// all-gather, all-to-all and a plain barrier. There is no other channel
// between ranks; in particular no rank ever reads another rank's Go
// values directly, even though they happen to share a process, because
// the whole point of this package is to keep every cross-rank hop of the
// engine behind the collectives of one type, Fabric. Fabric is a concrete
// type whose only backing is the in-process World built by NewWorld; this
// module has no network transport.
//
// # Concurrency model
//
// Every collective is a single shared rendezvous point: the last rank to
// arrive computes the combined result once and wakes every other rank
// with the same answer. Ranks must call collectives in identical program
// order — that is the bulk-synchronous contract the design states
// explicitly ("there is only ever one [collective] in flight per rank");
// calling a different collective, or skipping one, deadlocks the other
// ranks exactly as a real MPI program would, and this package does not
// paper over that with a timeout, because the design says cancellation is
// not supported.
//
// # Frontier exchange
//
// Frontier, built on top of World, implements the bulk-synchronous
// many-to-many exchange described in 4.D: push/relaxed_push to enqueue
// payloads bound for whichever rank owns their key, has_next/next to drain
// what arrived, and exchange to perform one round — including the
// in-place destination-rank bucket sort that avoids an auxiliary buffer.
package fabric
