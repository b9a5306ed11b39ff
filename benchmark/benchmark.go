// benchmark.go
// A reusable benchmarking module for Boltz Buddy
// Measures execution time and memory usage for any wrapped tool invocation

package benchmark

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

// Stats captures the resource usage of one wrapped invocation.
type Stats struct {
	Elapsed        time.Duration
	AllocMB        float64
	TotalAllocMB   float64
	PeakHeapMB     float64
	GCCycles       uint32
	CPUCores       int
	GoroutineDelta int
}

// Run wraps any function to measure its runtime and memory usage.
func Run(label string, f func()) Stats {
	fmt.Printf("[Benchmark] Running: %s\n", label)

	// Snapshot environment info
	fmt.Println("[Benchmark] Timestamp:", time.Now().Format(time.RFC1123))
	if host, err := os.Hostname(); err == nil {
		fmt.Println("[Benchmark] Hostname:", host)
	}
	fmt.Println("[Benchmark] Go Version:", runtime.Version())
	fmt.Printf("[Benchmark] OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	// Prepare for benchmark
	runtime.GC()
	var memStart, memEnd runtime.MemStats
	runtime.ReadMemStats(&memStart)
	start := time.Now()
	startGoroutines := runtime.NumGoroutine()

	// Run benchmarked function
	f()

	runtime.ReadMemStats(&memEnd)
	stats := Stats{
		Elapsed:        time.Since(start),
		AllocMB:        float64(memEnd.Alloc-memStart.Alloc) / 1024.0 / 1024.0,
		TotalAllocMB:   float64(memEnd.TotalAlloc-memStart.TotalAlloc) / 1024.0 / 1024.0,
		PeakHeapMB:     float64(memEnd.HeapAlloc) / 1024.0 / 1024.0,
		GCCycles:       memEnd.NumGC - memStart.NumGC,
		CPUCores:       runtime.NumCPU(),
		GoroutineDelta: runtime.NumGoroutine() - startGoroutines,
	}

	// Report resource usage
	fmt.Printf("[Benchmark] Time Elapsed: %v\n", stats.Elapsed)
	fmt.Printf("[Benchmark] Memory Used: %.2f MB\n", stats.AllocMB)
	fmt.Printf("[Benchmark] Total Allocated: %.2f MB\n", stats.TotalAllocMB)
	fmt.Printf("[Benchmark] Peak Heap: %.2f MB\n", stats.PeakHeapMB)
	fmt.Printf("[Benchmark] GC Cycles: %d\n", stats.GCCycles)
	fmt.Printf("[Benchmark] CPU Cores: %d\n", stats.CPUCores)
	fmt.Printf("[Benchmark] Goroutine Delta: %d\n", stats.GoroutineDelta)
	fmt.Println("[Benchmark] ----------------------------------------")

	return stats
}
