//go:build amd64 && !noasm

package atomic128

import (
	"github.com/templexxx/atomic128/internal/cpufeat"
	"github.com/templexxx/atomic128/internal/fallback"
	"github.com/templexxx/atomic128/internal/xatomic"
)

// nativeTestBackends returns the native backends this CPU can run,
// plus one whose read-modify-writes are built by the generic update
// loop on top of CMPXCHG16B, to check the loop against the hand-written
// sequences.
func nativeTestBackends() []*backend {
	r := cpufeat.Detect()
	if !r.CMPXCHG16B {
		return nil
	}
	bs := []*backend{&nativeBackend}
	if r.VMOVDQAAtomic {
		bs = append(bs, &nativeVecBackend)
	}

	cas := fallback.CASFunc(xatomic.CompareAndSwap)
	update := func(f func(pair, pair) pair) rmwFunc {
		return func(addr *pair, v pair) pair {
			return fallback.Update(cas, addr, func(p pair) pair { return f(p, v) })
		}
	}
	unary := func(f func(pair) pair) unaryFunc {
		return func(addr *pair) pair { return fallback.Update(cas, addr, f) }
	}
	loop := nativeBackend
	loop.name = "cmpxchg16b-update"
	loop.swap = update(func(_, v pair) pair { return v })
	loop.add = update(pair.Add)
	loop.sub = update(pair.Sub)
	loop.and = update(pair.And)
	loop.nand = update(pair.Nand)
	loop.or = update(pair.Or)
	loop.xor = update(pair.Xor)
	loop.max = update(pair.Max)
	loop.min = update(pair.Min)
	loop.umax = update(pair.UMax)
	loop.umin = update(pair.UMin)
	loop.not = unary(pair.Not)
	loop.neg = unary(pair.Neg)
	return append(bs, &loop)
}
