// Package xatomic provides 16-byte atomic instruction sequences and
// the 128-bit arithmetic they compute.
//
// Every address passed to this package must be 16-byte aligned,
// callers check it before reaching here.
package xatomic

import "math/bits"

// Pair is a 128-bit value as two machine words, Lo at the lower address.
type Pair struct {
	Lo, Hi uint64
}

// Add returns p + q, wrapping on overflow.
func (p Pair) Add(q Pair) Pair {
	lo, c := bits.Add64(p.Lo, q.Lo, 0)
	hi, _ := bits.Add64(p.Hi, q.Hi, c)
	return Pair{Lo: lo, Hi: hi}
}

// Sub returns p - q, wrapping on overflow.
func (p Pair) Sub(q Pair) Pair {
	lo, b := bits.Sub64(p.Lo, q.Lo, 0)
	hi, _ := bits.Sub64(p.Hi, q.Hi, b)
	return Pair{Lo: lo, Hi: hi}
}

func (p Pair) And(q Pair) Pair { return Pair{Lo: p.Lo & q.Lo, Hi: p.Hi & q.Hi} }

func (p Pair) Or(q Pair) Pair { return Pair{Lo: p.Lo | q.Lo, Hi: p.Hi | q.Hi} }

func (p Pair) Xor(q Pair) Pair { return Pair{Lo: p.Lo ^ q.Lo, Hi: p.Hi ^ q.Hi} }

func (p Pair) Nand(q Pair) Pair { return Pair{Lo: ^(p.Lo & q.Lo), Hi: ^(p.Hi & q.Hi)} }

func (p Pair) Not() Pair { return Pair{Lo: ^p.Lo, Hi: ^p.Hi} }

// Neg returns the two's complement of p.
func (p Pair) Neg() Pair {
	return Pair{}.Sub(p)
}

// Less reports p < q, both read as two's complement signed.
func (p Pair) Less(q Pair) bool {
	if p.Hi != q.Hi {
		return int64(p.Hi) < int64(q.Hi)
	}
	return p.Lo < q.Lo
}

// ULess reports p < q, both read as unsigned.
func (p Pair) ULess(q Pair) bool {
	if p.Hi != q.Hi {
		return p.Hi < q.Hi
	}
	return p.Lo < q.Lo
}

func (p Pair) Max(q Pair) Pair {
	if p.Less(q) {
		return q
	}
	return p
}

func (p Pair) Min(q Pair) Pair {
	if p.Less(q) {
		return p
	}
	return q
}

func (p Pair) UMax(q Pair) Pair {
	if p.ULess(q) {
		return q
	}
	return p
}

func (p Pair) UMin(q Pair) Pair {
	if p.ULess(q) {
		return p
	}
	return q
}
