package fabric

import "sync"

// barrier is a reusable, payload-combining rendezvous point shared by all
// ranks in a World. Every rank calls Enter with its own contribution; the
// last rank to arrive runs combine exactly once over every contribution
// (ordered by rank) and the combined result is handed back to every
// caller, including the one that computed it. The barrier is then reset
// for the next round.
//
// This generalizes the step/complete pattern of a superstep worker pool
// (wait for every worker, then release all of them together) into a
// single primitive the rest of this package reuses for every collective
// shape (sum, lexicographic max, variable-length all-to-all, ...).
type barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	world      int
	generation int
	arrived    int
	payload    []any
	result     any
}

func newBarrier(world int) *barrier {
	b := &barrier{world: world}
	b.cond = sync.NewCond(&b.mu)
	b.payload = make([]any, world)
	return b
}

// Enter blocks the calling goroutine until all `world` ranks have called
// Enter for the current round, then returns the value combine computed
// from every rank's contribution (indexed by rank). combine is invoked
// exactly once per round, by whichever goroutine happens to arrive last.
func (b *barrier) Enter(rank int, contribution any, combine func(contributions []any) any) any {
	b.mu.Lock()
	gen := b.generation
	b.payload[rank] = contribution
	b.arrived++

	if b.arrived == b.world {
		result := combine(b.payload)
		b.result = result
		b.arrived = 0
		b.payload = make([]any, b.world)
		b.generation++
		b.cond.Broadcast()
		b.mu.Unlock()
		return result
	}

	for b.generation == gen {
		b.cond.Wait()
	}
	result := b.result
	b.mu.Unlock()
	return result
}

// waiting reports how many ranks are currently blocked in Enter for the
// round in progress, for the watchdog's stall diagnostics.
func (b *barrier) waiting() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.arrived == 0 {
		return 0
	}
	return b.arrived
}
