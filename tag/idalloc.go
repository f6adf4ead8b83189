package tag

import (
	"math"
	"strconv"
	"sync/atomic"
)

// DataWffID is the attribute carrying the identifier of a tag.
const DataWffID = "data-wff-id"

// idAllocator hands out identifiers "S<n>". It is safe for concurrent use
// without any external lock.
//
// The counter starts at -1 and is incremented for every identifier. Once it
// overflows, the allocator enters its second cycle: negative counter values
// are mapped into 0…MaxInt32 and identifiers still in use are skipped by
// probing upwards.
type idAllocator struct {
	counter     atomic.Int32
	secondCycle atomic.Bool
	limit       int // maximum number of live identifiers
}

func newIDAllocator() *idAllocator {
	a := &idAllocator{limit: math.MaxInt32}
	a.counter.Store(-1)
	return a
}

func serverID(n int32) string {
	return "S" + strconv.FormatInt(int64(n), 10)
}

// next allocates an identifier. live reports identifiers currently in use,
// size the number of them.
func (a *idAllocator) next(live func(string) bool, size func() int) (string, error) {
	for size() < a.limit {
		inc := a.counter.Add(1)
		if inc >= 0 && !a.secondCycle.Load() {
			return serverID(inc), nil
		}
		a.secondCycle.Store(true)
		n := inc
		if n < 0 {
			n = n - math.MaxInt32 - 1
		}
		for live(serverID(n)) {
			n++
			if n < 0 {
				n = n - math.MaxInt32 - 1
			}
		}
		if a.counter.CompareAndSwap(inc, n) {
			return serverID(n), nil
		}
	}
	return "", &IDSpaceExhaustedError{Live: size()}
}
