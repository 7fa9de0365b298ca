package fabric

import "time"

// hub is the state shared by every Fabric handle in one World: the world
// size and the single reusable barrier every collective rendezvouses on.
type hub struct {
	world int
	bar   *barrier
}

// Fabric is one rank's handle onto a World. It is not safe to share a
// single Fabric value across goroutines — each rank gets its own handle
// from NewWorld and uses it only from its own goroutine, matching the
// design's "each rank is single-threaded" scheduling model.
type Fabric struct {
	h    *hub
	rank int
}

// NewWorld builds a World of the given size entirely in-process: one
// Fabric handle per rank, all sharing the same collective rendezvous
// points. Callers run each Fabric from its own goroutine.
func NewWorld(world int) []*Fabric {
	if world < 1 {
		world = 1
	}
	h := &hub{world: world, bar: newBarrier(world)}
	fabs := make([]*Fabric, world)
	for r := 0; r < world; r++ {
		fabs[r] = &Fabric{h: h, rank: r}
	}
	return fabs
}

// Watchdog is a handle on a running stall detector; call Stop when the
// run is over.
type Watchdog struct{ w *watchdog }

// Stop shuts the watchdog down.
func (w *Watchdog) Stop() { w.w.Stop() }

// EnableWatchdog starts a background goroutine that, every interval, logs
// a diagnostic if some ranks are waiting at a collective that others have
// not yet reached; the elapsed time it reports is measured from the call
// to EnableWatchdog, not from the start of that collective. It is purely
// observational: per the design's "cancellation and timeouts: none", it
// never aborts or times out a collective, it only gives an operator
// visibility into a stuck run.
func (f *Fabric) EnableWatchdog(interval time.Duration) *Watchdog {
	wd := newWatchdog(interval)
	wd.noteRoundStart()
	go wd.Start(f.h.world, func() int { return f.h.bar.waiting() })
	return &Watchdog{w: wd}
}

// Rank reports this handle's rank id in [0, World()).
func (f *Fabric) Rank() int { return f.rank }

// World reports the number of ranks.
func (f *Fabric) World() int { return f.h.world }

// Barrier blocks until every rank has called Barrier for this round.
func (f *Fabric) Barrier() {
	f.h.bar.Enter(f.rank, nil, func([]any) any { return nil })
}

// AllReduceSum returns the sum of v across every rank.
func (f *Fabric) AllReduceSum(v int) int {
	res := f.h.bar.Enter(f.rank, v, func(vals []any) any {
		total := 0
		for _, x := range vals {
			total += x.(int)
		}
		return total
	})
	return res.(int)
}

// AllReduceMax returns the maximum of v across every rank.
func (f *Fabric) AllReduceMax(v int) int {
	res := f.h.bar.Enter(f.rank, v, func(vals []any) any {
		best := vals[0].(int)
		for _, x := range vals[1:] {
			if c := x.(int); c > best {
				best = c
			}
		}
		return best
	})
	return res.(int)
}

// PivotCandidate is one rank's nominee in the lexicographic pivot
// all-reduce: the live in-degree*out-degree product and the vertex id
// that achieved it.
type PivotCandidate struct {
	Product int64
	Vertex  int64
	Valid   bool // false if this rank has no undecided vertex to nominate
}

// AllReducePivot picks the global winner among every rank's nominee:
// largest Product first, ties broken by smallest Vertex id, exactly the
// "any consistent rule" the design allows (4.F).
func (f *Fabric) AllReducePivot(c PivotCandidate) PivotCandidate {
	res := f.h.bar.Enter(f.rank, c, func(vals []any) any {
		var best PivotCandidate
		for _, x := range vals {
			cand := x.(PivotCandidate)
			if !cand.Valid {
				continue
			}
			if !best.Valid || cand.Product > best.Product ||
				(cand.Product == best.Product && cand.Vertex < best.Vertex) {
				best = cand
			}
		}
		return best
	})
	return res.(PivotCandidate)
}

// AllReduceBitmap computes the elementwise bitwise OR of every rank's
// local bitmap, used by the bitmap-exchange reachability mode to merge
// visited sets without shipping individual vertex messages.
func (f *Fabric) AllReduceBitmap(local []uint64) []uint64 {
	res := f.h.bar.Enter(f.rank, local, func(vals []any) any {
		width := len(vals[0].([]uint64))
		merged := make([]uint64, width)
		for _, v := range vals {
			row := v.([]uint64)
			for i, w := range row {
				merged[i] |= w
			}
		}
		return merged
	})
	return res.([]uint64)
}

// AllToAllCounts exchanges a length-World() vector of per-destination
// counts: the returned slice's entry r is how many items rank r is
// sending to this rank.
func (f *Fabric) AllToAllCounts(send []int) []int {
	res := f.h.bar.Enter(f.rank, send, func(vals []any) any {
		world := len(vals)
		recv := make([][]int, world)
		for dst := 0; dst < world; dst++ {
			recv[dst] = make([]int, world)
		}
		for src := 0; src < world; src++ {
			row := vals[src].([]int)
			for dst := 0; dst < world; dst++ {
				recv[dst][src] = row[dst]
			}
		}
		return recv
	})
	return res.([][]int)[f.rank]
}

// AllGather concatenates every rank's local slice, in ascending rank
// order, into one slice handed back identically to every rank. This is
// the collective the design uses to replicate trimmed scc_id updates and
// to build the all-gathered sub-graph vertex list.
func AllGather[T any](f *Fabric, local []T) []T {
	res := f.h.bar.Enter(f.rank, local, func(vals []any) any {
		total := 0
		for _, v := range vals {
			total += len(v.([]T))
		}
		all := make([]T, 0, total)
		for _, v := range vals {
			all = append(all, v.([]T)...)
		}
		return all
	})
	return res.([]T)
}

// AllToAllV performs one variable-length all-to-all exchange. sendBuf
// must already be bucketed by destination rank in ascending order (see
// Frontier.Exchange, which uses partitionByRank to arrange this);
// sendCounts[r] is how many elements in sendBuf are destined for rank r.
// The returned slice is everything this rank received, in source-rank
// ascending order.
func AllToAllV[P any](f *Fabric, sendBuf []P, sendCounts []int) []P {
	type contribution struct {
		buf    []P
		counts []int
	}
	res := f.h.bar.Enter(f.rank, contribution{sendBuf, sendCounts}, func(vals []any) any {
		world := len(vals)
		contribs := make([]contribution, world)
		for i, v := range vals {
			contribs[i] = v.(contribution)
		}
		sendDispl := make([][]int, world)
		for src := 0; src < world; src++ {
			d := make([]int, world+1)
			for r := 0; r < world; r++ {
				d[r+1] = d[r] + contribs[src].counts[r]
			}
			sendDispl[src] = d
		}
		recvBufs := make([][]P, world)
		for dst := 0; dst < world; dst++ {
			total := 0
			for src := 0; src < world; src++ {
				total += contribs[src].counts[dst]
			}
			buf := make([]P, 0, total)
			for src := 0; src < world; src++ {
				s, e := sendDispl[src][dst], sendDispl[src][dst+1]
				buf = append(buf, contribs[src].buf[s:e]...)
			}
			recvBufs[dst] = buf
		}
		return recvBufs
	})
	return res.([][]P)[f.rank]
}
