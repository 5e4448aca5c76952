package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/ext-sakamoro/ALICE-Search"
)

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{})}
	go func() {
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func measureBuild(text []byte, step int) (time.Duration, uint64, uint64, *alice.Index) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	ix, err := alice.Build(text, step)
	if err != nil {
		panic(err)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	return dur, peak, getCurrentAlloc(), ix
}

func measureQuery(ix *alice.Index, patterns [][]byte) (time.Duration, uint64, uint64) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	for _, p := range patterns {
		_ = ix.Count(p)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	return dur, peak, getCurrentAlloc()
}

func runBenchmark(n, patternLen, numQueries, step, runs int) {
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))

		text := make([]byte, n)
		for i := range text {
			text[i] = byte(r.Intn(26) + 'a')
		}

		bt, bp, ba, ix := measureBuild(text, step)

		patterns := make([][]byte, numQueries)
		for i := range patterns {
			start := r.Intn(n - patternLen + 1)
			patterns[i] = text[start : start+patternLen]
		}

		qt, qp, qa := measureQuery(ix, patterns)
		fmt.Printf("%d,%d,%d,%d,%.0f,%d,%d,%.0f,%d,%d\n",
			n, patternLen, numQueries, step,
			float64(bt.Nanoseconds()), bp, ba,
			float64(qt.Nanoseconds()), qp, qa)
	}
}

func main() {
	n := flag.Int("n", 0, "Text length N")
	p := flag.Int("p", 0, "Pattern length P")
	q := flag.Int("q", 0, "Number of queries Q")
	step := flag.Int("step", 16, "SA sample step")
	runs := flag.Int("runs", 3, "Number of runs for averaging")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *n <= 0 || *p <= 0 || *q <= 0 || *p > *n {
		fmt.Println("Usage: alice-bench -n=<N> -p=<P> -q=<Q> [-step=<step>] [-runs=<runs>]")
		os.Exit(1)
	}

	runBenchmark(*n, *p, *q, *step, *runs)
}
