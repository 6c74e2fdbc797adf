package typecheck

// futureTracker implements spec §4.2's "Future discipline": each async
// transition maintains a per-scope ordered set of outstanding future names
// introduced by external-transition calls, consumed in order by exactly
// one local async-function call.
type futureTracker struct {
	outstanding []string
	asyncCalls  int
	sawAsyncInConditional bool
}

func newFutureTracker() *futureTracker {
	return &futureTracker{}
}

// produce records a future introduced by an external-transition call,
// bound to the local name it was assigned to (or "" if discarded).
func (f *futureTracker) produce(name string) {
	f.outstanding = append(f.outstanding, name)
}

// consume checks that names matches the outstanding set in order and
// clears it when they match. It reports the mismatching index, or -1 if
// names matched exactly; on a mismatch the outstanding set is unchanged.
func (f *futureTracker) consume(names []string) int {
	if len(names) != len(f.outstanding) {
		if len(names) < len(f.outstanding) {
			return len(names)
		}
		return len(f.outstanding)
	}
	for i, n := range names {
		if n != f.outstanding[i] {
			return i
		}
	}
	f.outstanding = nil
	return -1
}

func (f *futureTracker) empty() bool { return len(f.outstanding) == 0 }
