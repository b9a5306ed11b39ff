package run_watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boltz_buddy/tools/boltz_runs"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, KindDone, Classify("/out/train/chunk_000/.DONE"))
	assert.Equal(t, KindFail, Classify("/out/train/chunk_000/failed_yamls.txt"))
	assert.Equal(t, KindEmbedding, Classify("/out/predictions/pair_000/embeddings_pair_000.npz"))
	assert.Equal(t, KindIgnore, Classify("/out/train/chunk_000/stdout_20250101_000000.log"))
	assert.Equal(t, KindIgnore, Classify("/out/predictions/pair_000/pair_000_model_0.cif"))
}

func TestSummarize(t *testing.T) {
	root := t.TempDir()
	for _, unit := range []string{"train/chunk_000", "train/chunk_001", "val/val_full"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, unit), 0o755))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "logs"), 0o755))
	require.NoError(t, boltz_runs.MarkDone(filepath.Join(root, "train", "chunk_001")))

	p, err := Summarize(root)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 1, p.Done)
}

func TestWatchRootSeesMarkersAndArtifacts(t *testing.T) {
	root := t.TempDir()
	chunkOut := filepath.Join(root, "train", "chunk_000")
	require.NoError(t, os.MkdirAll(chunkOut, 0o755))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var mu sync.Mutex
	seen := make(map[Kind]int)
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = WatchRoot(ctx, root, func(kind Kind, path string) {
			mu.Lock()
			seen[kind]++
			mu.Unlock()
		})
	}()

	// Give the watcher a moment to register the tree.
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, boltz_runs.MarkDone(chunkOut))
	require.NoError(t, boltz_runs.AppendFail(chunkOut, "/in/pair_000.yaml", 1, ""))

	// A prediction dir created mid-run must be picked up too.
	predDir := filepath.Join(chunkOut, "predictions", "pair_000")
	require.NoError(t, os.MkdirAll(predDir, 0o755))
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(predDir, "embeddings_pair_000.npz"), nil, 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen[KindDone] >= 1 && seen[KindFail] >= 1 && seen[KindEmbedding] >= 1
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	<-done
}
