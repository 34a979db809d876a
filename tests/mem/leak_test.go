//go:build test

package mem

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/glidetype/glidetype/pkg/engine"
	"github.com/glidetype/glidetype/pkg/resource"
	"github.com/glidetype/glidetype/pkg/swipe"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var typingPatterns = [][]string{
	{"t", "th", "the", "ther", "there"},
	{"h", "he", "hel", "hell", "hello"},
	{"w", "wo", "wor", "worl", "world"},
	{"p", "pr", "pro", "prog", "progr", "progra", "program"},
	{"c", "co", "com", "comp", "compu", "comput", "computer"},
	{"i", "in", "int", "inte", "inter", "intern", "internal"},
}

func memTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	words := []resource.WordEntry{
		{Text: "there", Frequency: 900},
		{Text: "hello", Frequency: 850},
		{Text: "world", Frequency: 800},
		{Text: "program", Frequency: 700},
		{Text: "computer", Frequency: 650},
		{Text: "internal", Frequency: 600},
		{Text: "the", Frequency: 2000},
		{Text: "progress", Frequency: 400},
		{Text: "interval", Frequency: 300},
	}
	e := engine.New(nil)
	if err := e.SetLanguage("en", &resource.Bundle{Words: words}); err != nil {
		t.Fatalf("loading language: %v", err)
	}
	return e
}

func swipePath(word string) swipe.Path {
	layout := resource.NewQwertyLayout()
	var path swipe.Path
	for _, ch := range word {
		if key, ok := layout.Get(ch); ok {
			path = append(path, swipe.Point{X: key.X, Y: key.Y})
		}
	}
	return path
}

func TestMemoryLeakBasic(t *testing.T) {
	iterations := []int{100, 500, 1000, 2500}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runBasicMemoryTest(t, iterCount)
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 1000},
		{workers: 2, iterationsPerWorker: 500},
		{workers: 4, iterationsPerWorker: 250},
		{workers: 8, iterationsPerWorker: 125},
	}

	for _, cfg := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", cfg.workers, cfg.iterationsPerWorker), func(t *testing.T) {
			runConcurrentMemoryTest(t, cfg.workers, cfg.iterationsPerWorker)
		})
	}
}

func TestMemoryStabilityLanguageSwaps(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long-running memory stability test in short mode")
	}
	runLanguageSwapTest(t, 50, 200)
}

func runBasicMemoryTest(t *testing.T, iterations int) {
	e := memTestEngine(t)
	paths := []swipe.Path{swipePath("hello"), swipePath("world"), swipePath("there")}

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	totalOps := 0
	for i := 0; i < iterations; i++ {
		for _, pattern := range typingPatterns {
			for _, prefix := range pattern {
				if _, err := e.SuggestTyping("en", prefix, nil, 10); err != nil {
					t.Fatalf("suggest: %v", err)
				}
				totalOps++
			}
		}
		for _, path := range paths {
			if _, err := e.SuggestSwipe("en", path, nil, 8); err != nil {
				t.Fatalf("swipe: %v", err)
			}
			totalOps++
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func runConcurrentMemoryTest(t *testing.T, workers, iterationsPerWorker int) {
	memFile, err := os.Create("concurrent_memory.prof")
	if err != nil {
		t.Fatalf("profile file creation failed: %v", err)
	}
	defer func() {
		memFile.Close()
		os.Remove("concurrent_memory.prof")
	}()

	e := memTestEngine(t)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for iter := 0; iter < iterationsPerWorker; iter++ {
				for _, pattern := range typingPatterns {
					for _, prefix := range pattern {
						if _, err := e.SuggestTyping("en", prefix, nil, 10); err != nil {
							t.Errorf("suggest: %v", err)
							return
						}
					}
				}
			}
		}()
	}
	wg.Wait()

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	opsPerPass := 0
	for _, pattern := range typingPatterns {
		opsPerPass += len(pattern)
	}
	totalOps := workers * iterationsPerWorker * opsPerPass
	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("workers=%d iter_per_worker=%d total_ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		workers, iterationsPerWorker, totalOps, memDelta, memPerOp, goroutineDelta)

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		t.Errorf("heap profile write failed: %v", err)
	}
	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 3 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

// runLanguageSwapTest replaces the language snapshot repeatedly while querying
// it, the pattern a host hits when dictionaries update in the background. Old
// snapshots must become collectable once readers drop them.
func runLanguageSwapTest(t *testing.T, cycles, opsPerCycle int) {
	e := memTestEngine(t)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)

	for cycle := 0; cycle < cycles; cycle++ {
		words := make([]resource.WordEntry, 0, 200)
		for i := 0; i < 200; i++ {
			words = append(words, resource.WordEntry{
				Text:      fmt.Sprintf("word%d%d", cycle, i),
				Frequency: uint32(1000 - i),
			})
		}
		if err := e.SetLanguage("en", &resource.Bundle{Words: words}); err != nil {
			t.Fatalf("swap %d: %v", cycle, err)
		}
		for op := 0; op < opsPerCycle; op++ {
			pattern := typingPatterns[op%len(typingPatterns)]
			if _, err := e.SuggestTyping("en", pattern[op%len(pattern)], nil, 10); err != nil {
				t.Fatalf("suggest: %v", err)
			}
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	perCycle := float64(memDelta) / float64(cycles)
	t.Logf("cycles=%d mem_delta=%d bytes per_cycle=%.2f", cycles, memDelta, perCycle)

	// One 200-word snapshot is well under 100KB; holding every replaced
	// snapshot alive would blow past this.
	if memDelta > 5<<20 {
		t.Errorf("memory grew %d bytes across %d snapshot swaps", memDelta, cycles)
	}
}
