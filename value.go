package atomic128

import "math/big"

// U128 is an unsigned 128-bit integer.
type U128 struct {
	Lo, Hi uint64
}

// I128 is a two's complement signed 128-bit integer.
// Hi carries the sign.
type I128 struct {
	Lo uint64
	Hi int64
}

// U128From64 returns v as a U128.
func U128From64(v uint64) U128 {
	return U128{Lo: v}
}

// I128From64 returns v sign-extended to an I128.
func I128From64(v int64) I128 {
	return I128{Lo: uint64(v), Hi: v >> 63}
}

func (u U128) pair() pair { return pair{Lo: u.Lo, Hi: u.Hi} }

func (i I128) pair() pair { return pair{Lo: i.Lo, Hi: uint64(i.Hi)} }

func u128(p pair) U128 { return U128{Lo: p.Lo, Hi: p.Hi} }

func i128(p pair) I128 { return I128{Lo: p.Lo, Hi: int64(p.Hi)} }

// Cmp returns -1, 0 or +1 comparing u with v.
func (u U128) Cmp(v U128) int {
	switch {
	case u == v:
		return 0
	case u.pair().ULess(v.pair()):
		return -1
	}
	return 1
}

// Cmp returns -1, 0 or +1 comparing i with j.
func (i I128) Cmp(j I128) int {
	switch {
	case i == j:
		return 0
	case i.pair().Less(j.pair()):
		return -1
	}
	return 1
}

// Big returns u as a big.Int.
func (u U128) Big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

// Big returns i as a big.Int.
func (i I128) Big() *big.Int {
	b := U128{Lo: i.Lo, Hi: uint64(i.Hi)}.Big()
	if i.Hi < 0 {
		b.Sub(b, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return b
}

func (u U128) String() string { return u.Big().String() }

func (i I128) String() string { return i.Big().String() }
