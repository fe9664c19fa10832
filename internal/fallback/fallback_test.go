package fallback

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"testing/quick"
	"unsafe"

	"github.com/templexxx/atomic128/internal/xbytes"
)

func newCell() *Pair {
	b := xbytes.MakeAlignedBlock(16, 64)
	return (*Pair)(unsafe.Pointer(&b[0]))
}

func hammerN() int {
	if testing.Short() {
		return 1000
	}
	return 100000
}

func TestCompareAndSwap(t *testing.T) {
	p := newCell()
	f := func(x, y, z Pair) bool {
		Store(p, x)
		prev, ok := CompareAndSwap(p, y, z)
		if x == y {
			return ok && prev == x && Load(p) == z
		}
		return !ok && prev == x && Load(p) == x
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
	if err := quick.Check(func(x, z Pair) bool { return f(x, x, z) }, nil); err != nil {
		t.Fatal(err)
	}
}

func TestLoadStoreSwap(t *testing.T) {
	p := newCell()
	f := func(x, y Pair) bool {
		Store(p, x)
		if Load(p) != x {
			return false
		}
		return Swap(p, y) == x && Load(p) == y
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestRMW(t *testing.T) {
	type op struct {
		name string
		rmw  func(*Pair, Pair) Pair
		ref  func(Pair, Pair) Pair
	}
	ops := []op{
		{"add", Add, Pair.Add},
		{"sub", Sub, Pair.Sub},
		{"and", And, Pair.And},
		{"nand", Nand, Pair.Nand},
		{"or", Or, Pair.Or},
		{"xor", Xor, Pair.Xor},
		{"max", Max, Pair.Max},
		{"min", Min, Pair.Min},
		{"umax", UMax, Pair.UMax},
		{"umin", UMin, Pair.UMin},
		{"not", func(p *Pair, _ Pair) Pair { return Not(p) }, func(x, _ Pair) Pair { return x.Not() }},
		{"neg", func(p *Pair, _ Pair) Pair { return Neg(p) }, func(x, _ Pair) Pair { return x.Neg() }},
	}
	p := newCell()
	for _, o := range ops {
		f := func(x, v Pair) bool {
			Store(p, x)
			return o.rmw(p, v) == x && Load(p) == o.ref(x, v)
		}
		if err := quick.Check(f, nil); err != nil {
			t.Fatalf("%s: %v", o.name, err)
		}
	}
}

func TestTryUpdate(t *testing.T) {
	p := newCell()
	Store(p, Pair{Lo: 7})

	prev, ok := TryUpdate(CompareAndSwap, p, func(v Pair) (Pair, bool) {
		return Pair{}, false
	})
	if ok || prev != (Pair{Lo: 7}) {
		t.Fatalf("declined update: ok=%t prev=%v", ok, prev)
	}
	prev, ok = TryUpdate(CompareAndSwap, p, func(v Pair) (Pair, bool) {
		return v.Add(Pair{Lo: 1}), true
	})
	if !ok || prev != (Pair{Lo: 7}) || Load(p) != (Pair{Lo: 8}) {
		t.Fatalf("accepted update: ok=%t prev=%v now=%v", ok, prev, Load(p))
	}
}

func TestHammerAdd(t *testing.T) {
	const procs = 8
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(procs))

	n := hammerN()
	p := newCell()
	var wg sync.WaitGroup
	for i := 0; i < procs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < n; j++ {
				Add(p, Pair{Lo: 1 << 63})
			}
		}()
	}
	wg.Wait()

	// Every second add carries into Hi.
	exp := Pair{Lo: 0, Hi: uint64(n * procs / 2)}
	if got := Load(p); got != exp {
		t.Fatalf("lost updates: exp %v, got %v", exp, got)
	}
}

// Writers only ever store values with equal halves; a reader seeing
// unequal halves has returned a torn value.
func TestNoTornLoad(t *testing.T) {
	const writers, readers = 4, 4
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(writers + readers))

	n := hammerN()
	p := newCell()
	var stop atomic.Bool
	var torn atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !stop.Load() {
				if v := Load(p); v.Lo != v.Hi {
					torn.Add(1)
				}
				// Snapshot alone may tear, but an RMW seeded by it must not.
				if v := Or(p, Pair{}); v.Lo != v.Hi {
					torn.Add(1)
				}
			}
		}()
	}

	var ww sync.WaitGroup
	for i := 0; i < writers; i++ {
		ww.Add(1)
		go func(i int) {
			defer ww.Done()
			for j := 0; j < n; j++ {
				v := uint64(i)<<32 | uint64(j)
				if j&1 == 0 {
					Store(p, Pair{Lo: v, Hi: v})
				} else if old := Swap(p, Pair{Lo: ^v, Hi: ^v}); old.Lo != old.Hi {
					torn.Add(1)
				}
			}
		}(i)
	}
	ww.Wait()
	stop.Store(true)
	wg.Wait()

	if c := torn.Load(); c != 0 {
		t.Fatalf("observed %d torn values", c)
	}
}

func BenchmarkLoad(b *testing.B) {
	p := newCell()
	for i := 0; i < b.N; i++ {
		_ = Load(p)
	}
}

func BenchmarkAdd(b *testing.B) {
	p := newCell()
	for i := 0; i < b.N; i++ {
		Add(p, Pair{Lo: 1})
	}
}
