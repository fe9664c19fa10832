package xatomic

import (
	"math/big"
	"testing"
	"testing/quick"
)

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

func (p Pair) big() *big.Int {
	b := new(big.Int).SetUint64(p.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(p.Lo))
}

func (p Pair) bigSigned() *big.Int {
	b := p.big()
	if int64(p.Hi) < 0 {
		b.Sub(b, two128)
	}
	return b
}

func fromBig(b *big.Int) Pair {
	m := new(big.Int).Mod(b, two128)
	lo := new(big.Int).And(m, new(big.Int).SetUint64(^uint64(0)))
	return Pair{Lo: lo.Uint64(), Hi: new(big.Int).Rsh(m, 64).Uint64()}
}

func TestPairArith(t *testing.T) {
	add := func(x, y Pair) bool {
		return x.Add(y) == fromBig(new(big.Int).Add(x.big(), y.big()))
	}
	sub := func(x, y Pair) bool {
		return x.Sub(y) == fromBig(new(big.Int).Sub(x.big(), y.big()))
	}
	neg := func(x Pair) bool {
		return x.Neg() == fromBig(new(big.Int).Neg(x.big()))
	}
	for name, f := range map[string]any{"add": add, "sub": sub, "neg": neg} {
		if err := quick.Check(f, nil); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}

	ones := Pair{Lo: ^uint64(0), Hi: ^uint64(0)}
	if got := ones.Add(Pair{Lo: 1}); got != (Pair{}) {
		t.Fatalf("add must wrap, got %v", got)
	}
	if got := (Pair{}).Sub(Pair{Lo: 1}); got != ones {
		t.Fatalf("sub must wrap, got %v", got)
	}
	if got := (Pair{Lo: 1}).Neg(); got != ones {
		t.Fatalf("neg(1) = %v", got)
	}
}

func TestPairCompare(t *testing.T) {
	less := func(x, y Pair) bool {
		return x.Less(y) == (x.bigSigned().Cmp(y.bigSigned()) < 0)
	}
	uless := func(x, y Pair) bool {
		return x.ULess(y) == (x.big().Cmp(y.big()) < 0)
	}
	minmax := func(x, y Pair) bool {
		return x.Max(y).bigSigned().Cmp(x.Min(y).bigSigned()) >= 0 &&
			x.UMax(y).big().Cmp(x.UMin(y).big()) >= 0
	}
	for name, f := range map[string]any{"less": less, "uless": uless, "minmax": minmax} {
		if err := quick.Check(f, nil); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}

	minusOne := Pair{Lo: ^uint64(0), Hi: ^uint64(0)}
	one := Pair{Lo: 1}
	if !minusOne.Less(one) {
		t.Fatal("-1 < 1 signed")
	}
	if minusOne.ULess(one) {
		t.Fatal("2^128-1 > 1 unsigned")
	}
	if minusOne.Max(one) != one || minusOne.UMax(one) != minusOne {
		t.Fatal("wrong max")
	}
	if minusOne.Min(one) != minusOne || minusOne.UMin(one) != one {
		t.Fatal("wrong min")
	}
}

func TestPairBitwise(t *testing.T) {
	f := func(x, y Pair) bool {
		return x.And(y).Not() == x.Nand(y) &&
			x.Or(y) == x.Xor(y).Or(x.And(y)) &&
			x.Not().Not() == x &&
			x.Xor(x) == Pair{}
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
