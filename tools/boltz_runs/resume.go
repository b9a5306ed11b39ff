package boltz_runs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	DoneMarker = ".DONE"
	FailLog    = "failed_yamls.txt" // append-only, per outdir
)

// Synthetic exit codes recorded in the failure log.
const (
	RCNoYAMLs           = 998 // input directory held no YAML descriptors
	RCMissingEmbeddings = 999 // rc=0 but the embeddings never appeared
)

// ListChunkDirs returns the sorted chunk_* directories under chunksRoot.
func ListChunkDirs(chunksRoot string) ([]string, error) {
	entries, err := os.ReadDir(chunksRoot)
	if err != nil {
		return nil, fmt.Errorf("chunks root not found: %w", err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "chunk_") {
			dirs = append(dirs, filepath.Join(chunksRoot, e.Name()))
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no chunk directories found in: %s", chunksRoot)
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ListYAMLs returns the sorted *.yml and *.yaml files in dir.
func ListYAMLs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input dir: %w", err)
	}
	var yamls []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yml" || ext == ".yaml" {
			yamls = append(yamls, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(yamls)
	return yamls, nil
}

// PairDirName maps a YAML descriptor to its prediction directory name:
// pair_000.yaml -> pair_000
func PairDirName(yamlPath string) string {
	base := filepath.Base(yamlPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// EmbeddingsExist reports whether the embeddings artifact for one YAML is
// already on disk under outdir.
func EmbeddingsExist(yamlPath, outdir string) bool {
	pattern := filepath.Join(outdir, "predictions", PairDirName(yamlPath), "embeddings_pair_*.npz")
	matches, err := filepath.Glob(pattern)
	return err == nil && len(matches) > 0
}

// AllEmbeddingsExist reports whether every YAML in inputDir has embeddings.
// An input dir without YAMLs is never complete.
func AllEmbeddingsExist(inputDir, outdir string) bool {
	yamls, err := ListYAMLs(inputDir)
	if err != nil || len(yamls) == 0 {
		return false
	}
	for _, y := range yamls {
		if !EmbeddingsExist(y, outdir) {
			return false
		}
	}
	return true
}

// IsDone reports whether the outdir carries the completion marker.
func IsDone(outdir string) bool {
	_, err := os.Stat(filepath.Join(outdir, DoneMarker))
	return err == nil
}

// MarkDone drops the completion marker into outdir.
func MarkDone(outdir string) error {
	content := fmt.Sprintf("done_at=%s\n", time.Now().Format("2006-01-02 15:04:05"))
	return os.WriteFile(filepath.Join(outdir, DoneMarker), []byte(content), 0o644)
}

// AppendFail records one failed input in the per-outdir failure log.
func AppendFail(outdir, inputPath string, rc int, note string) error {
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(outdir, FailLog), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open failure log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s\trc=%d\t%s\t%s\n",
		time.Now().Format("2006-01-02 15:04:05"), rc, inputPath, note)
	_, err = f.WriteString(line)
	return err
}
