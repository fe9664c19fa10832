// contention is a tool to compare 128-bit FetchAdd throughput of the
// selected backend, the lock table fallback and a plain mutex as more
// goroutines hit the same cell.

package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/klauspost/cpuid/v2"
	"github.com/templexxx/cpu"

	"github.com/templexxx/atomic128"
	"github.com/templexxx/atomic128/internal/fallback"
	"github.com/templexxx/atomic128/internal/xbytes"
)

var (
	ops        = flag.Int("ops", 1<<20, "FetchAdd calls per goroutine")
	maxThreads = flag.Int("threads", runtime.NumCPU(), "max goroutines, doubled from 1")
	cells      = flag.Int("cells", 1, "distinct cells, goroutines are spread over them")
	output     = flag.String("output", "", "save a PNG chart here")
)

// adder is one way of adding to a 128-bit counter.
type adder interface {
	name() string
	add(i int)
	total() uint64
}

type publicAdder struct {
	xs []atomic128.Uint128
}

func (a *publicAdder) name() string { return "atomic128 (" + atomic128.Backend() + ")" }

func (a *publicAdder) add(i int) {
	a.xs[i%len(a.xs)].FetchAdd(atomic128.U128From64(1), atomic128.SeqCst)
}

func (a *publicAdder) total() uint64 {
	var n uint64
	for i := range a.xs {
		n += a.xs[i].Load(atomic128.SeqCst).Lo
	}
	return n
}

type fallbackAdder struct {
	bufs []*[3]uint64
}

func (a *fallbackAdder) name() string { return "locktable" }

func (a *fallbackAdder) addr(i int) *fallback.Pair {
	return (*fallback.Pair)(xbytes.Window(a.bufs[i%len(a.bufs)]))
}

func (a *fallbackAdder) add(i int) {
	fallback.Add(a.addr(i), fallback.Pair{Lo: 1})
}

func (a *fallbackAdder) total() uint64 {
	var n uint64
	for i := range a.bufs {
		n += fallback.Load(a.addr(i)).Lo
	}
	return n
}

type mutexCell struct {
	mu sync.Mutex
	v  atomic128.U128
}

type mutexAdder struct {
	cs []mutexCell
}

func (a *mutexAdder) name() string { return "mutex" }

func (a *mutexAdder) add(i int) {
	c := &a.cs[i%len(a.cs)]
	c.mu.Lock()
	c.v.Lo++
	if c.v.Lo == 0 {
		c.v.Hi++
	}
	c.mu.Unlock()
}

func (a *mutexAdder) total() uint64 {
	var n uint64
	for i := range a.cs {
		n += a.cs[i].v.Lo
	}
	return n
}

func newAdders(cells int) []func() adder {
	return []func() adder{
		func() adder { return &publicAdder{xs: make([]atomic128.Uint128, cells)} },
		func() adder {
			a := &fallbackAdder{bufs: make([]*[3]uint64, cells)}
			for i := range a.bufs {
				a.bufs[i] = new([3]uint64)
			}
			return a
		},
		func() adder { return &mutexAdder{cs: make([]mutexCell, cells)} },
	}
}

func main() {
	flag.Parse()

	cpuFlag := fmt.Sprintf("%s_%d", cpu.X86.Signature, cpu.X86.SteppingID)
	fmt.Printf("cpu: %s (%s), backend: %s, lock_free: %t, always_lock_free: %t\n",
		cpuFlag, cpuid.CPU.BrandName, atomic128.Backend(), atomic128.IsLockFree(), atomic128.IsAlwaysLockFree)

	if *cells < 1 || *maxThreads < 1 || *ops < 1 {
		fmt.Println("ops, threads and cells must be positive")
		return
	}

	var threads []int
	for n := 1; n <= *maxThreads; n *= 2 {
		threads = append(threads, n)
	}

	results := make(map[string]plotter.XYs)
	var names []string
	for _, mk := range newAdders(*cells) {
		var name string
		for _, n := range threads {
			a := mk()
			name = a.name()
			cost, err := run(context.Background(), a, n, *ops)
			if err != nil {
				fmt.Printf("%s, threads: %d, failed: %s\n", name, n, err)
				return
			}
			mops := float64(n**ops) / float64(cost.Microseconds()+1)
			fmt.Printf("%s, threads: %d, cost: %s, throughput: %.2f ops/us\n", name, n, cost, mops)
			results[name] = append(results[name], plotter.XY{X: float64(n), Y: mops})
		}
		names = append(names, name)
	}

	if *output != "" {
		if err := save(*output, names, results); err != nil {
			fmt.Printf("failed to save chart: %s\n", err)
		}
	}
}

// run starts n goroutines adding ops times each and checks nothing got lost.
func run(ctx context.Context, a adder, n, ops int) (time.Duration, error) {
	g, ctx := errgroup.WithContext(ctx)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			<-start
			for j := 0; j < ops; j++ {
				if j&1023 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				a.add(i)
			}
			return nil
		})
	}
	begin := time.Now()
	close(start)
	if err := g.Wait(); err != nil {
		return 0, err
	}
	cost := time.Since(begin)

	if got, exp := a.total(), uint64(n)*uint64(ops); got != exp {
		return cost, fmt.Errorf("lost updates: exp %d, got %d", exp, got)
	}
	return cost, nil
}

func save(fn string, names []string, results map[string]plotter.XYs) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("128-bit FetchAdd, %d cell(s)", *cells)
	p.X.Label.Text = "Goroutines"
	p.Y.Label.Text = "Throughput(ops/us)"

	var lines []interface{}
	for _, name := range names {
		lines = append(lines, name, results[name])
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, fn)
}
