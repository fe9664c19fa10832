package atomic128

import (
	"sync/atomic"

	"github.com/templexxx/atomic128/internal/cpufeat"
	"github.com/templexxx/atomic128/internal/fallback"
	"github.com/templexxx/atomic128/internal/xatomic"
)

type pair = xatomic.Pair

type (
	loadFunc  func(*pair) pair
	storeFunc func(*pair, pair)
	rmwFunc   func(*pair, pair) pair
	unaryFunc func(*pair) pair
	casFunc   = fallback.CASFunc
)

// backend is one complete implementation of the operation set.
// The set is closed: the native backends in backend_amd64.go and
// fallbackBackend below.
type backend struct {
	name     string
	lockFree bool

	load        loadFunc
	store       storeFunc // Relaxed and Release
	storeSeqCst storeFunc
	swap        rmwFunc
	cas         casFunc

	add, sub, and, nand, or, xor rmwFunc
	max, min, umax, umin         rmwFunc
	not, neg                     unaryFunc
}

var fallbackBackend = backend{
	name:        "fallback",
	load:        fallback.Load,
	store:       fallback.Store,
	storeSeqCst: fallback.Store,
	swap:        fallback.Swap,
	cas:         fallback.CompareAndSwap,
	add:         fallback.Add,
	sub:         fallback.Sub,
	and:         fallback.And,
	nand:        fallback.Nand,
	or:          fallback.Or,
	xor:         fallback.Xor,
	max:         fallback.Max,
	min:         fallback.Min,
	umax:        fallback.UMax,
	umin:        fallback.UMin,
	not:         fallback.Not,
	neg:         fallback.Neg,
}

// selectBackend picks, in order: the native backend when the build
// guarantees CMPXCHG16B, the native backend when the CPU reports it,
// otherwise the fallback.
//
// The CPU is probed even when the build guarantees CMPXCHG16B, the
// VMOVDQA path still depends on it.
func selectBackend() *backend {
	if b := nativeBackendFor(cpufeat.Detect()); b != nil {
		return b
	}
	return &fallbackBackend
}

// ifunc is a dispatch slot for one operation. It resolves on first use
// and serves the cached function afterwards.
//
// Concurrent first calls may resolve redundantly. The choice depends only
// on the immutable capability record, so every resolution agrees and a
// single pointer store is enough.
type ifunc[F any] struct {
	fn      atomic.Pointer[F]
	resolve func(*backend) F
}

func (s *ifunc[F]) get() F {
	if p := s.fn.Load(); p != nil {
		return *p
	}
	f := s.resolve(selectBackend())
	s.fn.Store(&f)
	return f
}

func (s *ifunc[F]) reset() {
	s.fn.Store(nil)
}

var (
	loadSlot        = ifunc[loadFunc]{resolve: func(b *backend) loadFunc { return b.load }}
	storeSlot       = ifunc[storeFunc]{resolve: func(b *backend) storeFunc { return b.store }}
	storeSeqCstSlot = ifunc[storeFunc]{resolve: func(b *backend) storeFunc { return b.storeSeqCst }}
	swapSlot        = ifunc[rmwFunc]{resolve: func(b *backend) rmwFunc { return b.swap }}
	casSlot         = ifunc[casFunc]{resolve: func(b *backend) casFunc { return b.cas }}
	addSlot         = ifunc[rmwFunc]{resolve: func(b *backend) rmwFunc { return b.add }}
	subSlot         = ifunc[rmwFunc]{resolve: func(b *backend) rmwFunc { return b.sub }}
	andSlot         = ifunc[rmwFunc]{resolve: func(b *backend) rmwFunc { return b.and }}
	nandSlot        = ifunc[rmwFunc]{resolve: func(b *backend) rmwFunc { return b.nand }}
	orSlot          = ifunc[rmwFunc]{resolve: func(b *backend) rmwFunc { return b.or }}
	xorSlot         = ifunc[rmwFunc]{resolve: func(b *backend) rmwFunc { return b.xor }}
	maxSlot         = ifunc[rmwFunc]{resolve: func(b *backend) rmwFunc { return b.max }}
	minSlot         = ifunc[rmwFunc]{resolve: func(b *backend) rmwFunc { return b.min }}
	umaxSlot        = ifunc[rmwFunc]{resolve: func(b *backend) rmwFunc { return b.umax }}
	uminSlot        = ifunc[rmwFunc]{resolve: func(b *backend) rmwFunc { return b.umin }}
	notSlot         = ifunc[unaryFunc]{resolve: func(b *backend) unaryFunc { return b.not }}
	negSlot         = ifunc[unaryFunc]{resolve: func(b *backend) unaryFunc { return b.neg }}
	lockFreeSlot    = ifunc[bool]{resolve: func(b *backend) bool { return b.lockFree }}
	nameSlot        = ifunc[string]{resolve: func(b *backend) string { return b.name }}
)

// resetDispatch drops every resolved slot and the cached capability
// record. Tests only: in production the record never changes, so slots
// never disagree.
func resetDispatch() {
	cpufeat.Reset()
	for _, s := range []interface{ reset() }{
		&loadSlot, &storeSlot, &storeSeqCstSlot, &swapSlot, &casSlot,
		&addSlot, &subSlot, &andSlot, &nandSlot, &orSlot, &xorSlot,
		&maxSlot, &minSlot, &umaxSlot, &uminSlot, &notSlot, &negSlot,
		&lockFreeSlot, &nameSlot,
	} {
		s.reset()
	}
}

// IsLockFree reports whether 128-bit operations use the native
// lock-free backend on this machine.
func IsLockFree() bool {
	return lockFreeSlot.get()
}

// IsAlwaysLockFree reports whether the build itself guarantees the
// native backend, without looking at the CPU.
const IsAlwaysLockFree = isAlwaysLockFree

// Backend names the backend serving 128-bit operations,
// e.g. "cmpxchg16b+vmovdqa", "cmpxchg16b" or "fallback".
func Backend() string {
	return nameSlot.get()
}
