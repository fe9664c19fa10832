//go:build amd64 && !noasm

package atomic128

import (
	"github.com/templexxx/atomic128/internal/cpufeat"
	"github.com/templexxx/atomic128/internal/xatomic"
)

const isAlwaysLockFree = xatomic.StaticCX16

var nativeBackend = backend{
	name:        "cmpxchg16b",
	lockFree:    true,
	load:        xatomic.LoadCAS,
	store:       storeCAS,
	storeSeqCst: storeCAS,
	swap:        xatomic.Swap,
	cas:         xatomic.CompareAndSwap,
	add:         xatomic.Add,
	sub:         xatomic.Sub,
	and:         xatomic.And,
	nand:        xatomic.Nand,
	or:          xatomic.Or,
	xor:         xatomic.Xor,
	max:         xatomic.Max,
	min:         xatomic.Min,
	umax:        xatomic.UMax,
	umin:        xatomic.UMin,
	not:         xatomic.Not,
	neg:         xatomic.Neg,
}

// nativeVecBackend replaces loads and stores with VMOVDQA, everything
// else still goes through CMPXCHG16B.
var nativeVecBackend = func() backend {
	b := nativeBackend
	b.name = "cmpxchg16b+vmovdqa"
	b.load = xatomic.LoadVec
	b.store = xatomic.StoreVec
	b.storeSeqCst = xatomic.StoreVecSeqCst
	return b
}()

// storeCAS stores through a swap, CMPXCHG16B has no store-only form.
func storeCAS(addr *pair, v pair) {
	xatomic.Swap(addr, v)
}

func nativeBackendFor(r cpufeat.Record) *backend {
	if !xatomic.StaticCX16 && !r.CMPXCHG16B {
		return nil
	}
	// Record only reports VMOVDQA together with CMPXCHG16B, so vector
	// and CAS accesses never meet fallback writes on the same cell.
	if r.VMOVDQAAtomic {
		return &nativeVecBackend
	}
	return &nativeBackend
}
