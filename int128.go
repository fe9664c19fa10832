package atomic128

// Int128 is an atomic signed 128-bit integer.
// The zero value is zero. An Int128 must not be copied after first use.
//
// Once an Int128 is shared between goroutines, all access must go
// through its methods.
type Int128 struct {
	c cell
}

// NewInt128 returns an Int128 holding v.
func NewInt128(v I128) *Int128 {
	x := new(Int128)
	x.Store(v, Relaxed)
	return x
}

// Load atomically loads x. o must be Relaxed, Acquire or SeqCst.
func (x *Int128) Load(o Ordering) I128 { return i128(x.c.load(o)) }

// Store atomically stores v into x. o must be Relaxed, Release or SeqCst.
func (x *Int128) Store(v I128, o Ordering) { x.c.store(v.pair(), o) }

// Swap atomically stores v into x and returns the previous value.
func (x *Int128) Swap(v I128, o Ordering) I128 {
	return i128(x.c.rmw(&swapSlot, v.pair(), o))
}

// CompareExchange stores new into x if x holds old.
// It returns the value x held before the call, and whether new was stored.
// failure must be Relaxed, Acquire or SeqCst.
func (x *Int128) CompareExchange(old, new I128, success, failure Ordering) (I128, bool) {
	prev, ok := x.c.compareExchange(old.pair(), new.pair(), success, failure)
	return i128(prev), ok
}

// CompareExchangeWeak is CompareExchange. It never fails spuriously.
func (x *Int128) CompareExchangeWeak(old, new I128, success, failure Ordering) (I128, bool) {
	return x.CompareExchange(old, new, success, failure)
}

// CompareAndSwap is CompareExchange with SeqCst orderings, reporting
// only whether new was stored.
func (x *Int128) CompareAndSwap(old, new I128) bool {
	_, ok := x.CompareExchange(old, new, SeqCst, SeqCst)
	return ok
}

// FetchAdd adds v to x, wrapping on overflow, and returns the previous value.
func (x *Int128) FetchAdd(v I128, o Ordering) I128 {
	return i128(x.c.rmw(&addSlot, v.pair(), o))
}

// FetchSub subtracts v from x, wrapping on overflow, and returns the previous value.
func (x *Int128) FetchSub(v I128, o Ordering) I128 {
	return i128(x.c.rmw(&subSlot, v.pair(), o))
}

func (x *Int128) FetchAnd(v I128, o Ordering) I128 {
	return i128(x.c.rmw(&andSlot, v.pair(), o))
}

func (x *Int128) FetchNand(v I128, o Ordering) I128 {
	return i128(x.c.rmw(&nandSlot, v.pair(), o))
}

func (x *Int128) FetchOr(v I128, o Ordering) I128 {
	return i128(x.c.rmw(&orSlot, v.pair(), o))
}

func (x *Int128) FetchXor(v I128, o Ordering) I128 {
	return i128(x.c.rmw(&xorSlot, v.pair(), o))
}

// FetchMax stores the signed maximum of x and v, returning the previous value.
func (x *Int128) FetchMax(v I128, o Ordering) I128 {
	return i128(x.c.rmw(&maxSlot, v.pair(), o))
}

// FetchMin stores the signed minimum of x and v, returning the previous value.
func (x *Int128) FetchMin(v I128, o Ordering) I128 {
	return i128(x.c.rmw(&minSlot, v.pair(), o))
}

// FetchNot inverts every bit of x and returns the previous value.
func (x *Int128) FetchNot(o Ordering) I128 {
	return i128(x.c.unary(&notSlot, o))
}

// FetchNeg replaces x with its two's complement and returns the previous value.
func (x *Int128) FetchNeg(o Ordering) I128 {
	return i128(x.c.unary(&negSlot, o))
}

// Add atomically adds v to x and returns the new value.
func (x *Int128) Add(v I128) I128 {
	return i128(x.FetchAdd(v, SeqCst).pair().Add(v.pair()))
}

// FetchUpdate applies f to the current value until the result is stored,
// or f returns false. f may be called several times and must not have
// side effects. It returns the previous value and whether f's result was
// stored; when f declines, the previous value is the one f saw last.
func (x *Int128) FetchUpdate(set, fetch Ordering, f func(I128) (I128, bool)) (I128, bool) {
	prev, ok := x.c.fetchUpdate(set, fetch, func(p pair) (pair, bool) {
		v, ok := f(i128(p))
		return v.pair(), ok
	})
	return i128(prev), ok
}

// IsLockFree reports whether operations on x are lock-free on this machine.
func (x *Int128) IsLockFree() bool { return IsLockFree() }
