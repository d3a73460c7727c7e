// Package parallel partitions index spaces across worker goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// ForGroups splits [0, n) into consecutive groups of groupSize indices (the
// last group may be shorter) and calls f(start, end) once per group.
//
// Groups are handed to at most cfg.NumWorkers goroutines; the call returns
// once every group has completed. When parallelism is disabled groups run in
// order on the calling goroutine.
func ForGroups(n, groupSize int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	if groupSize < 1 {
		groupSize = n
	}
	groups := (n + groupSize - 1) / groupSize

	run := func(g int) {
		start := g * groupSize
		f(start, min(start+groupSize, n))
	}

	if !cfg.Enabled || groups == 1 || cfg.NumWorkers < 2 {
		for g := 0; g < groups; g++ {
			run(g)
		}
		return
	}

	workers := min(cfg.NumWorkers, groups)
	next := make(chan int, groups)
	for g := 0; g < groups; g++ {
		next <- g
	}
	close(next)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for g := range next {
				run(g)
			}
		}()
	}
	wg.Wait()
}
