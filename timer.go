package lectern

// timerPurpose names a singular debounce/delay slot. Issuing a new timer of
// the same purpose always cancels any previous pending one, so a purpose can
// never fire twice for one logical event.
type timerPurpose uint8

const (
	timerResizeDebounce timerPurpose = iota
	timerHoverShow
	timerHoverHide
	timerNavHide
	timerBackgroundRefresh
	timerFullscreenSettle
	timerPurposeCount
)

type timerSlot struct {
	active    bool
	remaining float64 // seconds
	fn        func()
}

// timerSet holds one cancellable timer per purpose. It is advanced from the
// game loop via update(dt); callbacks run synchronously on expiry.
type timerSet struct {
	slots [timerPurposeCount]timerSlot
}

// start schedules fn to run after delay seconds, cancelling any pending timer
// of the same purpose first. A delay <= 0 still waits for the next update tick
// rather than firing inline.
func (t *timerSet) start(p timerPurpose, delay float64, fn func()) {
	t.slots[p] = timerSlot{active: true, remaining: delay, fn: fn}
}

// cancel discards any pending timer of the given purpose.
func (t *timerSet) cancel(p timerPurpose) {
	t.slots[p] = timerSlot{}
}

// cancelAll discards every pending timer. Used on teardown so no callback can
// fire into a dismantled controller.
func (t *timerSet) cancelAll() {
	for p := range t.slots {
		t.slots[p] = timerSlot{}
	}
}

// pending reports whether a timer of the given purpose is waiting to fire.
func (t *timerSet) pending(p timerPurpose) bool {
	return t.slots[p].active
}

// update advances all pending timers by dt seconds and fires the expired
// ones. A slot is cleared before its callback runs, so a callback may start a
// fresh timer of its own purpose without it being wiped.
func (t *timerSet) update(dt float64) {
	for p := range t.slots {
		s := &t.slots[p]
		if !s.active {
			continue
		}
		s.remaining -= dt
		if s.remaining > 0 {
			continue
		}
		fn := s.fn
		*s = timerSlot{}
		if fn != nil {
			fn()
		}
	}
}
