// Package locktable is a process-wide table of spinlock stripes guarding
// 128-bit cells on CPUs without a 16-byte compare-and-swap.
//
// A cell's stripe is picked by hashing its address. Unrelated cells may
// share a stripe; they are serialized against each other, which costs
// throughput but never correctness. Stripes don't nest and there's no
// ordering across stripes.
package locktable

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Len is the number of stripes. A prime spreads 16-byte strided
// addresses evenly.
const Len = 67

// spinsBeforeYield bounds busy-waiting before handing the P back to the
// scheduler; the holder may have been preempted.
const spinsBeforeYield = 64

// Stripe is a spinlock on a narrow atomic, padded to a cache line.
type Stripe struct {
	state atomic.Uint32
	_     cpu.CacheLinePad
}

var table [Len]Stripe

// Index returns the stripe index for addr.
func Index(addr uintptr) int {
	return int((addr >> 4) % Len)
}

// Lock locks and returns the stripe guarding addr.
func Lock(addr uintptr) *Stripe {
	s := &table[Index(addr)]
	s.lock()
	return s
}

func (s *Stripe) lock() {
	if s.state.CompareAndSwap(0, 1) {
		return
	}
	spins := 0
	for {
		// Read before CAS, keeps the line shared while waiting.
		if s.state.Load() == 0 && s.state.CompareAndSwap(0, 1) {
			return
		}
		spins++
		if spins >= spinsBeforeYield {
			spins = 0
			runtime.Gosched()
		}
	}
}

// Unlock releases the stripe. It must be held.
func (s *Stripe) Unlock() {
	if s.state.Swap(0) != 1 {
		panic("atomic128: unlock of unlocked stripe")
	}
}
