package fabric

// Frontier is the bulk-synchronous many-to-many exchange primitive of
// 4.D, generic over the payload shape (vertex, edge, labeled-edge — any
// of the three is just a Go type parameter here, matching the "generic
// typed channel" option the design allows for polymorphism over payload).
type Frontier[P any] struct {
	fab       *Fabric
	destRank  func(P) int
	send      []P
	sendCount []int
	recv      []P
	recvPos   int
}

// NewFrontier builds a Frontier bound to fab. destRank must return the
// owning rank of a payload's key (the source vertex for edge payloads,
// the vertex itself for vertex payloads) — callers supply it so this
// package stays independent of the partition package's concrete Scheme
// type.
func NewFrontier[P any](fab *Fabric, destRank func(P) int) *Frontier[P] {
	return &Frontier[P]{
		fab:       fab,
		destRank:  destRank,
		sendCount: make([]int, fab.World()),
	}
}

// Push enqueues payload for delivery to whichever rank owns its key, via
// the next Exchange.
func (fr *Frontier[P]) Push(payload P) {
	fr.send = append(fr.send, payload)
	fr.sendCount[fr.destRank(payload)]++
}

// RelaxedPush behaves like Push, except a payload destined for this rank
// is appended directly to the local receive buffer, skipping the
// exchange round entirely.
func (fr *Frontier[P]) RelaxedPush(payload P) {
	if fr.destRank(payload) == fr.fab.Rank() {
		fr.recv = append(fr.recv, payload)
		return
	}
	fr.Push(payload)
}

// HasNext reports whether there is an unconsumed payload in the local
// receive buffer.
func (fr *Frontier[P]) HasNext() bool {
	return fr.recvPos < len(fr.recv)
}

// Next consumes and returns the next payload from the local receive
// buffer. Panics if HasNext is false.
func (fr *Frontier[P]) Next() P {
	p := fr.recv[fr.recvPos]
	fr.recvPos++
	return p
}

// Reset drops any consumed prefix of the receive buffer; call it between
// logical rounds once every payload has been drained via Next, to bound
// memory growth across many exchanges.
func (fr *Frontier[P]) Reset() {
	if fr.recvPos > 0 {
		fr.recv = append(fr.recv[:0], fr.recv[fr.recvPos:]...)
		fr.recvPos = 0
	}
}

// Exchange performs one collective round: it is a no-op and returns false
// if every rank's send buffer is empty (the global termination signal);
// otherwise it partitions the send buffer in place by destination rank,
// issues one variable-length all-to-all, appends the results to the
// local receive buffer, and clears the send side for the next round.
func (fr *Frontier[P]) Exchange() bool {
	total := fr.fab.AllReduceSum(len(fr.send))
	if total == 0 {
		return false
	}

	partitionByRank(fr.send, fr.destRank, fr.sendCount)
	incoming := AllToAllV(fr.fab, fr.send, fr.sendCount)
	fr.recv = append(fr.recv, incoming...)

	fr.send = fr.send[:0]
	for i := range fr.sendCount {
		fr.sendCount[i] = 0
	}
	return true
}

// partitionByRank rearranges buf in place so that every element destined
// for rank r occupies a contiguous block, blocks in ascending rank order,
// reproducing 4.D step 4 / the design-notes elaboration exactly: walk
// each rank's target segment in turn; an element already destined for
// that rank is skipped over, anything else is swapped into the growing
// bucket of whichever higher rank it belongs to. Every swap places at
// least one element in its final position, so this is O(N+W) with zero
// auxiliary buffer beyond the two O(W) offset/cursor vectors.
func partitionByRank[P any](buf []P, destRank func(P) int, counts []int) {
	world := len(counts)
	offset := make([]int, world+1)
	for r := 0; r < world; r++ {
		offset[r+1] = offset[r] + counts[r]
	}
	cursor := make([]int, world)
	copy(cursor, offset[:world])

	for r := 0; r < world; r++ {
		end := offset[r+1]
		for cursor[r] < end {
			d := destRank(buf[cursor[r]])
			if d == r {
				cursor[r]++
				continue
			}
			buf[cursor[r]], buf[cursor[d]] = buf[cursor[d]], buf[cursor[r]]
			cursor[d]++
		}
	}
}
