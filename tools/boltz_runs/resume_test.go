package boltz_runs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestPairDirName(t *testing.T) {
	assert.Equal(t, "pair_000", PairDirName("/data/train/_chunks/chunk_000/pair_000.yaml"))
	assert.Equal(t, "pair_017", PairDirName("pair_017.yml"))
}

func TestListChunkDirsSortedAndFiltered(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"chunk_002", "chunk_000", "chunk_001", "notes"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, name), 0o755))
	}
	touch(t, filepath.Join(root, "chunk_999")) // a file, not a dir

	dirs, err := ListChunkDirs(root)
	require.NoError(t, err)
	require.Len(t, dirs, 3)
	assert.Equal(t, "chunk_000", filepath.Base(dirs[0]))
	assert.Equal(t, "chunk_002", filepath.Base(dirs[2]))
}

func TestListChunkDirsEmpty(t *testing.T) {
	_, err := ListChunkDirs(t.TempDir())
	assert.Error(t, err)

	_, err = ListChunkDirs(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestListYAMLs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "pair_001.yaml"))
	touch(t, filepath.Join(dir, "pair_000.yml"))
	touch(t, filepath.Join(dir, "README.txt"))

	yamls, err := ListYAMLs(dir)
	require.NoError(t, err)
	require.Len(t, yamls, 2)
	assert.Equal(t, "pair_000.yml", filepath.Base(yamls[0]))
	assert.Equal(t, "pair_001.yaml", filepath.Base(yamls[1]))
}

func TestEmbeddingsExist(t *testing.T) {
	outdir := t.TempDir()
	yaml := "/inputs/pair_003.yaml"

	assert.False(t, EmbeddingsExist(yaml, outdir))

	touch(t, filepath.Join(outdir, "predictions", "pair_003", "embeddings_pair_003_model_0.npz"))
	assert.True(t, EmbeddingsExist(yaml, outdir))
}

func TestAllEmbeddingsExist(t *testing.T) {
	inputDir := t.TempDir()
	outdir := t.TempDir()

	// No YAMLs at all is never complete.
	assert.False(t, AllEmbeddingsExist(inputDir, outdir))

	touch(t, filepath.Join(inputDir, "pair_000.yaml"))
	touch(t, filepath.Join(inputDir, "pair_001.yaml"))
	touch(t, filepath.Join(outdir, "predictions", "pair_000", "embeddings_pair_000.npz"))
	assert.False(t, AllEmbeddingsExist(inputDir, outdir))

	touch(t, filepath.Join(outdir, "predictions", "pair_001", "embeddings_pair_001.npz"))
	assert.True(t, AllEmbeddingsExist(inputDir, outdir))
}

func TestMarkDoneAndIsDone(t *testing.T) {
	outdir := t.TempDir()
	assert.False(t, IsDone(outdir))

	require.NoError(t, MarkDone(outdir))
	assert.True(t, IsDone(outdir))

	data, err := os.ReadFile(filepath.Join(outdir, DoneMarker))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "done_at="))
}

func TestAppendFailIsAppendOnly(t *testing.T) {
	outdir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, AppendFail(outdir, "/in/pair_000.yaml", 1, ""))
	require.NoError(t, AppendFail(outdir, "/in/pair_001.yaml", RCMissingEmbeddings, "rc=0 but embeddings missing"))

	data, err := os.ReadFile(filepath.Join(outdir, FailLog))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "rc=1\t/in/pair_000.yaml")
	assert.Contains(t, lines[1], "rc=999\t/in/pair_001.yaml\trc=0 but embeddings missing")
}
