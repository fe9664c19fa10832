// Package fallback implements 128-bit atomics without a 16-byte
// compare-and-swap instruction.
//
// Writers take the cell's lock table stripe and write both halves with
// 64-bit atomic stores. Readers may take an unlocked snapshot of the two
// halves, which can tear, and validate it with a compare-and-swap that
// goes through the same stripe: a mismatch hands back the real value.
// This is only sound while every writer of the cell goes through this
// package; a cell must never mix fallback writes with native ones.
package fallback

import (
	"sync/atomic"
	"unsafe"

	"github.com/templexxx/atomic128/internal/locktable"
	"github.com/templexxx/atomic128/internal/xatomic"
)

type Pair = xatomic.Pair

// CASFunc is a strong 16-byte compare-and-swap.
type CASFunc func(addr *Pair, old, new Pair) (prev Pair, ok bool)

// Snapshot reads the two halves of *addr one after the other.
// The result may mix two different writes and must be validated.
func Snapshot(addr *Pair) Pair {
	return Pair{
		Lo: atomic.LoadUint64(&addr.Lo),
		Hi: atomic.LoadUint64(&addr.Hi),
	}
}

func write(addr *Pair, v Pair) {
	atomic.StoreUint64(&addr.Lo, v.Lo)
	atomic.StoreUint64(&addr.Hi, v.Hi)
}

func lock(addr *Pair) *locktable.Stripe {
	return locktable.Lock(uintptr(unsafe.Pointer(addr)))
}

// CompareAndSwap is a strong compare-and-swap under the cell's stripe.
// It never fails spuriously, so it also serves as the weak variant.
func CompareAndSwap(addr *Pair, old, new Pair) (prev Pair, ok bool) {
	s := lock(addr)
	prev = Snapshot(addr)
	if prev == old {
		write(addr, new)
		ok = true
	}
	s.Unlock()
	return prev, ok
}

// Load takes a snapshot and validates it by swapping it with itself.
func Load(addr *Pair) Pair {
	v := Snapshot(addr)
	prev, _ := CompareAndSwap(addr, v, v)
	return prev
}

func Store(addr *Pair, v Pair) {
	s := lock(addr)
	write(addr, v)
	s.Unlock()
}

func Swap(addr *Pair, v Pair) Pair {
	s := lock(addr)
	prev := Snapshot(addr)
	write(addr, v)
	s.Unlock()
	return prev
}

// Update replaces *addr with f(*addr) using cas and returns the previous
// value. The loop is seeded by a Snapshot; a torn seed only costs one
// failed cas, which returns the consistent value to retry with.
//
// f may run several times and must only depend on its argument.
func Update(cas CASFunc, addr *Pair, f func(Pair) Pair) Pair {
	old := Snapshot(addr)
	for {
		prev, ok := cas(addr, old, f(old))
		if ok {
			return prev
		}
		old = prev
	}
}

// TryUpdate is Update where f may give up by returning false.
// It returns the last observed value and whether a new value was stored.
func TryUpdate(cas CASFunc, addr *Pair, f func(Pair) (Pair, bool)) (Pair, bool) {
	old := Snapshot(addr)
	for {
		next, ok := f(old)
		if !ok {
			// The snapshot may be torn; report a validated value.
			prev, swapped := cas(addr, old, old)
			if swapped {
				return prev, false
			}
			old = prev
			continue
		}
		prev, swapped := cas(addr, old, next)
		if swapped {
			return prev, true
		}
		old = prev
	}
}

func Add(addr *Pair, v Pair) Pair {
	return Update(CompareAndSwap, addr, func(p Pair) Pair { return p.Add(v) })
}

func Sub(addr *Pair, v Pair) Pair {
	return Update(CompareAndSwap, addr, func(p Pair) Pair { return p.Sub(v) })
}

func And(addr *Pair, v Pair) Pair {
	return Update(CompareAndSwap, addr, func(p Pair) Pair { return p.And(v) })
}

func Nand(addr *Pair, v Pair) Pair {
	return Update(CompareAndSwap, addr, func(p Pair) Pair { return p.Nand(v) })
}

func Or(addr *Pair, v Pair) Pair {
	return Update(CompareAndSwap, addr, func(p Pair) Pair { return p.Or(v) })
}

func Xor(addr *Pair, v Pair) Pair {
	return Update(CompareAndSwap, addr, func(p Pair) Pair { return p.Xor(v) })
}

func Not(addr *Pair) Pair {
	return Update(CompareAndSwap, addr, Pair.Not)
}

func Neg(addr *Pair) Pair {
	return Update(CompareAndSwap, addr, Pair.Neg)
}

func Max(addr *Pair, v Pair) Pair {
	return Update(CompareAndSwap, addr, func(p Pair) Pair { return p.Max(v) })
}

func Min(addr *Pair, v Pair) Pair {
	return Update(CompareAndSwap, addr, func(p Pair) Pair { return p.Min(v) })
}

func UMax(addr *Pair, v Pair) Pair {
	return Update(CompareAndSwap, addr, func(p Pair) Pair { return p.UMax(v) })
}

func UMin(addr *Pair, v Pair) Pair {
	return Update(CompareAndSwap, addr, func(p Pair) Pair { return p.UMin(v) })
}
