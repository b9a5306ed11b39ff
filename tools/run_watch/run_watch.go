package run_watch

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

func Run(args []string) {
	fs := flag.NewFlagSet("run_watch", flag.ExitOnError)

	runRoot := fs.String("run_root", "", "Run root written by boltz_runs")
	interval := fs.Duration("interval", 30*time.Second, "Summary interval")

	err := fs.Parse(args)
	if err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	if *runRoot == "" {
		fmt.Println("Error: run_root is required")
		fs.Usage()
		os.Exit(1)
	}
	if _, err := os.Stat(*runRoot); err != nil {
		fmt.Println("Error: run root not found:", *runRoot)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printSummary := func() {
		p, err := Summarize(*runRoot)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Summary failed:", err)
			return
		}
		fmt.Printf("[PROGRESS] %d/%d units complete\n", p.Done, p.Total)
	}

	fmt.Printf("Watching %s (summary every %v, Ctrl-C to stop)\n", *runRoot, *interval)
	printSummary()

	go func() {
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				printSummary()
			}
		}
	}()

	err = WatchRoot(ctx, *runRoot, func(kind Kind, path string) {
		rel, relErr := filepath.Rel(*runRoot, path)
		if relErr != nil {
			rel = path
		}
		switch kind {
		case KindDone:
			fmt.Printf("[DONE] %s\n", filepath.Dir(rel))
		case KindFail:
			fmt.Printf("[FAIL] failure log grew: %s\n", rel)
		case KindEmbedding:
			fmt.Printf("[EMB] %s\n", rel)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Watcher stopped:", err)
		os.Exit(1)
	}

	fmt.Println("\nStopped.")
	printSummary()
}
