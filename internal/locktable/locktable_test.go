package locktable

import (
	"runtime"
	"sync"
	"testing"
	"unsafe"
)

func TestIndex(t *testing.T) {
	seen := make(map[int]bool)
	for addr := uintptr(0x1000); addr < 0x1000+16*Len; addr += 16 {
		i := Index(addr)
		if i < 0 || i >= Len {
			t.Fatalf("index out of range: %d", i)
		}
		seen[i] = true
	}
	if len(seen) != Len {
		t.Fatalf("consecutive cells should cover every stripe, got %d of %d", len(seen), Len)
	}
	if Index(0x1000) != Index(0x1000+16*Len) {
		t.Fatal("addresses Len cells apart must share a stripe")
	}
}

func TestStripePadding(t *testing.T) {
	if unsafe.Sizeof(Stripe{}) < 64 {
		t.Fatalf("stripe is smaller than a cache line: %d", unsafe.Sizeof(Stripe{}))
	}
}

func TestUnlockUnlocked(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("unlock of unlocked stripe should panic")
		}
	}()
	s := new(Stripe)
	s.Unlock()
}

// Two cells on the same stripe are guarded by one lock: plain
// increments under it must not be lost.
func TestSharedStripeExclusion(t *testing.T) {
	const procs = 8
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(procs))

	n := 100000
	if testing.Short() {
		n = 1000
	}

	a := uintptr(0x40)
	b := a + 16*Len
	var counter int

	var wg sync.WaitGroup
	for p := 0; p < procs; p++ {
		wg.Add(1)
		addr := a
		if p%2 == 1 {
			addr = b
		}
		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				s := Lock(addr)
				counter++
				s.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != n*procs {
		t.Fatalf("lost updates: exp %d, got %d", n*procs, counter)
	}
}

func BenchmarkLockUnlock(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Lock(0x40).Unlock()
	}
}
