package boltz_runs

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// RunDirWithResume runs one input directory (chunk or val folder) with safe
// resume:
//   - skip if the DONE marker exists
//   - skip if embeddings already exist for all YAMLs
//   - try a fast directory run
//   - if that fails or is incomplete, run per-YAML with per-YAML skip
//   - continue past failures, record them, never overwrite unless override
//     is enabled
func (r *Runner) RunDirWithResume(ctx context.Context, inputDir, outdir, label string) error {
	if IsDone(outdir) {
		fmt.Printf("[SKIP] %s: %s exists -> %s\n", label, DoneMarker, outdir)
		r.Log.Info("skip dir, marker present", zap.String("label", label))
		return nil
	}

	if AllEmbeddingsExist(inputDir, outdir) {
		fmt.Printf("[SKIP] %s: embeddings already complete -> %s\n", label, outdir)
		r.Log.Info("skip dir, embeddings complete", zap.String("label", label))
		return MarkDone(outdir)
	}

	// 1) Try the fast path: run boltz on the directory
	fmt.Printf("\n=== %s (dir run) ===\n", label)
	rc, err := r.RunCLI(ctx, inputDir, outdir)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if rc == 0 && AllEmbeddingsExist(inputDir, outdir) {
		return MarkDone(outdir)
	}

	// 2) Fallback: per-YAML safe resume
	fmt.Printf("[FALLBACK] %s: switching to per-YAML runs (safe resume).\n", label)
	r.Log.Warn("dir run incomplete, falling back to per-YAML",
		zap.String("label", label), zap.Int("rc", rc))

	yamls, err := ListYAMLs(inputDir)
	if err != nil {
		return err
	}
	if len(yamls) == 0 {
		fmt.Printf("[WARN] %s: no YAMLs found in %s\n", label, inputDir)
		return AppendFail(outdir, inputDir, RCNoYAMLs, "No YAML files found in directory")
	}

	for _, y := range yamls {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if EmbeddingsExist(y, outdir) {
			fmt.Printf("[SKIP-YAML] embeddings exist: %s\n", filepath.Base(y))
			continue
		}

		rcY, err := r.RunCLI(ctx, y, outdir)
		if err != nil {
			return err
		}
		if rcY != 0 {
			fmt.Printf("[FAIL-YAML] %s (rc=%d) - logged, continuing.\n", filepath.Base(y), rcY)
			r.Log.Warn("per-YAML run failed", zap.String("yaml", y), zap.Int("rc", rcY))
			if err := AppendFail(outdir, y, rcY, ""); err != nil {
				return err
			}
			continue
		}

		if !EmbeddingsExist(y, outdir) {
			fmt.Printf("[WARN] %s returned 0 but embeddings not found - logged.\n", filepath.Base(y))
			r.Log.Warn("embeddings missing after clean exit", zap.String("yaml", y))
			if err := AppendFail(outdir, y, RCMissingEmbeddings, "rc=0 but embeddings missing"); err != nil {
				return err
			}
		}
	}

	if AllEmbeddingsExist(inputDir, outdir) {
		return MarkDone(outdir)
	}
	fmt.Printf("[INFO] %s not fully complete; see %s and rerun later.\n",
		label, filepath.Join(outdir, FailLog))
	return nil
}

// RunChunkedDataset walks the chunk_* directories of one split.
func (r *Runner) RunChunkedDataset(ctx context.Context, chunksRoot, outRoot, label string) error {
	chunkDirs, err := ListChunkDirs(chunksRoot)
	if err != nil {
		return err
	}
	for _, chunkDir := range chunkDirs {
		outdir := filepath.Join(outRoot, filepath.Base(chunkDir))
		chunkLabel := fmt.Sprintf("%s %s", label, filepath.Base(chunkDir))
		if err := r.RunDirWithResume(ctx, chunkDir, outdir, chunkLabel); err != nil {
			return err
		}
	}
	return nil
}

// RunValFolder runs the unchunked validation folder as a single unit.
func (r *Runner) RunValFolder(ctx context.Context, valDir, outRoot string) error {
	outdir := filepath.Join(outRoot, "val_full")
	return r.RunDirWithResume(ctx, valDir, outdir, "VAL val_full")
}
