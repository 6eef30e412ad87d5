package lectern

// frameSlot names a deferred-to-next-frame callback. Each slot holds at most
// one pending callback: scheduling again before the frame boundary replaces
// the previous one, so bursts of events coalesce into a single deferred step.
type frameSlot uint8

const (
	frameRecompute   frameSlot = iota // layout recomputation pass
	framePointerSync                  // pointer dot position update
	frameSlotCount
)

// frameQueue defers work to the next render opportunity. Running the queue at
// the top of the next Update gives layout a full frame to settle before any
// measurement-dependent work executes.
type frameQueue struct {
	pending [frameSlotCount]bool
	fns     [frameSlotCount]func()
}

// schedule registers fn to run on the next frame. If the slot already has a
// pending callback it is replaced; the latest one wins.
func (q *frameQueue) schedule(slot frameSlot, fn func()) {
	q.pending[slot] = true
	q.fns[slot] = fn
}

// scheduled reports whether the slot has a pending callback.
func (q *frameQueue) scheduled(slot frameSlot) bool {
	return q.pending[slot]
}

// run executes and clears all pending callbacks. A callback may re-schedule
// its own or another slot; that lands in the following frame, not this one.
func (q *frameQueue) run() {
	var fns [frameSlotCount]func()
	for i := range q.pending {
		if q.pending[i] {
			fns[i] = q.fns[i]
		}
		q.pending[i] = false
		q.fns[i] = nil
	}
	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
}
