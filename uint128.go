package atomic128

// Uint128 is an atomic unsigned 128-bit integer.
// The zero value is zero. A Uint128 must not be copied after first use.
//
// Once a Uint128 is shared between goroutines, all access must go
// through its methods.
type Uint128 struct {
	c cell
}

// NewUint128 returns a Uint128 holding v.
func NewUint128(v U128) *Uint128 {
	x := new(Uint128)
	x.Store(v, Relaxed)
	return x
}

// Load atomically loads x. o must be Relaxed, Acquire or SeqCst.
func (x *Uint128) Load(o Ordering) U128 { return u128(x.c.load(o)) }

// Store atomically stores v into x. o must be Relaxed, Release or SeqCst.
func (x *Uint128) Store(v U128, o Ordering) { x.c.store(v.pair(), o) }

// Swap atomically stores v into x and returns the previous value.
func (x *Uint128) Swap(v U128, o Ordering) U128 {
	return u128(x.c.rmw(&swapSlot, v.pair(), o))
}

// CompareExchange stores new into x if x holds old.
// It returns the value x held before the call, and whether new was stored.
// failure must be Relaxed, Acquire or SeqCst.
func (x *Uint128) CompareExchange(old, new U128, success, failure Ordering) (U128, bool) {
	prev, ok := x.c.compareExchange(old.pair(), new.pair(), success, failure)
	return u128(prev), ok
}

// CompareExchangeWeak is CompareExchange. It never fails spuriously.
func (x *Uint128) CompareExchangeWeak(old, new U128, success, failure Ordering) (U128, bool) {
	return x.CompareExchange(old, new, success, failure)
}

// CompareAndSwap is CompareExchange with SeqCst orderings, reporting
// only whether new was stored.
func (x *Uint128) CompareAndSwap(old, new U128) bool {
	_, ok := x.CompareExchange(old, new, SeqCst, SeqCst)
	return ok
}

// FetchAdd adds v to x, wrapping on overflow, and returns the previous value.
func (x *Uint128) FetchAdd(v U128, o Ordering) U128 {
	return u128(x.c.rmw(&addSlot, v.pair(), o))
}

// FetchSub subtracts v from x, wrapping on overflow, and returns the previous value.
func (x *Uint128) FetchSub(v U128, o Ordering) U128 {
	return u128(x.c.rmw(&subSlot, v.pair(), o))
}

func (x *Uint128) FetchAnd(v U128, o Ordering) U128 {
	return u128(x.c.rmw(&andSlot, v.pair(), o))
}

func (x *Uint128) FetchNand(v U128, o Ordering) U128 {
	return u128(x.c.rmw(&nandSlot, v.pair(), o))
}

func (x *Uint128) FetchOr(v U128, o Ordering) U128 {
	return u128(x.c.rmw(&orSlot, v.pair(), o))
}

func (x *Uint128) FetchXor(v U128, o Ordering) U128 {
	return u128(x.c.rmw(&xorSlot, v.pair(), o))
}

// FetchMax stores the unsigned maximum of x and v, returning the previous value.
func (x *Uint128) FetchMax(v U128, o Ordering) U128 {
	return u128(x.c.rmw(&umaxSlot, v.pair(), o))
}

// FetchMin stores the unsigned minimum of x and v, returning the previous value.
func (x *Uint128) FetchMin(v U128, o Ordering) U128 {
	return u128(x.c.rmw(&uminSlot, v.pair(), o))
}

// FetchNot inverts every bit of x and returns the previous value.
func (x *Uint128) FetchNot(o Ordering) U128 {
	return u128(x.c.unary(&notSlot, o))
}

// FetchNeg replaces x with its two's complement and returns the previous value.
func (x *Uint128) FetchNeg(o Ordering) U128 {
	return u128(x.c.unary(&negSlot, o))
}

// Add atomically adds v to x and returns the new value.
func (x *Uint128) Add(v U128) U128 {
	return u128(x.FetchAdd(v, SeqCst).pair().Add(v.pair()))
}

// FetchUpdate applies f to the current value until the result is stored,
// or f returns false. f may be called several times and must not have
// side effects. It returns the previous value and whether f's result was
// stored; when f declines, the previous value is the one f saw last.
func (x *Uint128) FetchUpdate(set, fetch Ordering, f func(U128) (U128, bool)) (U128, bool) {
	prev, ok := x.c.fetchUpdate(set, fetch, func(p pair) (pair, bool) {
		v, ok := f(u128(p))
		return v.pair(), ok
	})
	return u128(prev), ok
}

// IsLockFree reports whether operations on x are lock-free on this machine.
func (x *Uint128) IsLockFree() bool { return IsLockFree() }
