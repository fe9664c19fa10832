// Package atomic128 provides 128-bit atomic integers.
//
// On amd64 CPUs with CMPXCHG16B every operation is a single lock-free
// instruction sequence; loads and stores use VMOVDQA where the CPU vendor
// guarantees it's atomic. Elsewhere operations run under a process-wide
// table of address-striped spinlocks. The choice is made once, at first
// use, and cached.
//
// Set ATOMIC128_DISABLE=cmpxchg16b (or vmovdqa) to mask features before
// the first operation. Builds with GOAMD64=v2 or above always use
// CMPXCHG16B and ignore ATOMIC128_DISABLE=cmpxchg16b. The noasm build
// tag always uses the lock table.
package atomic128

import (
	"sync/atomic"

	"github.com/templexxx/atomic128/internal/fallback"
	"github.com/templexxx/atomic128/internal/order"
	"github.com/templexxx/atomic128/internal/xbytes"
)

// Ordering is the memory ordering of an operation.
//
// CMPXCHG16B and the lock table are both sequentially consistent, so
// orderings never make an operation weaker than SeqCst. They decide
// which store sequence runs and they are checked: an ordering that
// makes no sense for the operation (a Release load, an Acquire store,
// a Release failure ordering) panics.
type Ordering = order.Ordering

const (
	Relaxed = order.Relaxed
	Acquire = order.Acquire
	Release = order.Release
	AcqRel  = order.AcqRel
	SeqCst  = order.SeqCst
)

// noCopy may be embedded into structs which must not be copied
// after the first use. See go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// cell is 128 bits of 16-byte aligned memory inside a 24-byte buffer.
// The buffer itself must be 8-byte aligned for one of its two windows
// to start on 16 bytes, so cell carries atomic.Uint64's alignment:
// 32-bit platforms only align uint64 arrays to 4 bytes.
type cell struct {
	_   noCopy
	_   [0]atomic.Uint64
	buf [3]uint64
}

func (c *cell) addr() *pair {
	p := xbytes.Window(&c.buf)
	if !xbytes.IsAligned(p) {
		panic("atomic128: unaligned 128-bit cell")
	}
	return (*pair)(p)
}

// load may run as a compare-exchange of the value with itself, which
// must hold for o and its strongest failure ordering as well.
func (c *cell) load(o Ordering) pair {
	order.AssertLoad(o)
	order.AssertCompareExchange(o, order.StrongestFailure(o))
	return loadSlot.get()(c.addr())
}

func (c *cell) store(v pair, o Ordering) {
	order.AssertStore(o)
	if o == SeqCst {
		storeSeqCstSlot.get()(c.addr(), v)
		return
	}
	// x86 stores are release stores already: Relaxed and Release
	// share one sequence.
	storeSlot.get()(c.addr(), v)
}

// Read-modify-writes are compare-exchange loops retrying with the
// strongest failure ordering o allows.
func (c *cell) rmw(s *ifunc[rmwFunc], v pair, o Ordering) pair {
	order.AssertRMW(o)
	order.AssertCompareExchange(o, order.StrongestFailure(o))
	return s.get()(c.addr(), v)
}

func (c *cell) unary(s *ifunc[unaryFunc], o Ordering) pair {
	order.AssertRMW(o)
	order.AssertCompareExchange(o, order.StrongestFailure(o))
	return s.get()(c.addr())
}

// compareExchange runs one instruction for both outcomes, so success
// is upgraded to at least failure.
func (c *cell) compareExchange(old, new pair, success, failure Ordering) (pair, bool) {
	order.AssertCompareExchange(success, failure)
	order.AssertCompareExchange(order.UpgradeSuccess(success, failure), failure)
	return casSlot.get()(c.addr(), old, new)
}

// fetchUpdate runs f in a compare-and-swap loop until it stores or f
// declines. Failed attempts only need the fetch ordering, a successful
// one needs set upgraded to at least fetch.
func (c *cell) fetchUpdate(set, fetch Ordering, f func(pair) (pair, bool)) (pair, bool) {
	order.AssertCompareExchange(order.UpgradeSuccess(set, fetch), fetch)
	return fallback.TryUpdate(casSlot.get(), c.addr(), f)
}
