package boltz_runs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"boltz_buddy/runlog"
)

// Options is used to specify the location of the boltz executable in
// addition to the prediction parameters passed through to it.
type Options struct {
	// Binary points to the 'boltz' executable. If 'boltz' is in your PATH,
	// it is sufficient to leave this as 'boltz'.
	Binary string

	Devices            int
	Accelerator        string
	Model              string
	RecyclingSteps     int
	SamplingSteps      int
	DiffusionSamples   int
	MaxParallelSamples int
	MaxMSASeqs         int
	NumSubsampledMSA   int
	WriteEmbeddings    bool
	Override           bool
	NoKernels          bool
}

// DefaultOptions provides the defaults tuned for restored-quality runs.
var DefaultOptions = Options{
	Binary:             "boltz",
	Devices:            1,
	Accelerator:        "gpu",
	Model:              "boltz2",
	RecyclingSteps:     1,
	SamplingSteps:      10,
	DiffusionSamples:   1,
	MaxParallelSamples: 1,
	MaxMSASeqs:         64,
	NumSubsampledMSA:   34,
	WriteEmbeddings:    true,
}

// BuildArgs assembles the argument list for one boltz predict invocation,
// excluding the binary itself.
func (o Options) BuildArgs(inputPath, outdir string) []string {
	args := []string{"predict", inputPath, "--out_dir", outdir}

	args = append(args, "--accelerator", o.Accelerator)
	args = append(args, "--devices", strconv.Itoa(o.Devices))
	args = append(args, "--model", o.Model)
	args = append(args, "--recycling_steps", strconv.Itoa(o.RecyclingSteps))
	args = append(args, "--sampling_steps", strconv.Itoa(o.SamplingSteps))
	args = append(args, "--diffusion_samples", strconv.Itoa(o.DiffusionSamples))
	args = append(args, "--max_parallel_samples", strconv.Itoa(o.MaxParallelSamples))
	args = append(args, "--max_msa_seqs", strconv.Itoa(o.MaxMSASeqs))
	args = append(args, "--num_subsampled_msa", strconv.Itoa(o.NumSubsampledMSA))

	if o.WriteEmbeddings {
		args = append(args, "--write_embeddings")
	}
	if o.Override {
		args = append(args, "--override")
	}
	if o.NoKernels {
		args = append(args, "--no_kernels")
	}

	return args
}

// Runner drives boltz over input directories with safe resume.
type Runner struct {
	Opts    Options
	BaseDir string
	Log     *zap.Logger
}

// NewRunner wires a runner with a no-op logger unless one is attached later.
func NewRunner(opts Options, baseDir string) *Runner {
	return &Runner{Opts: opts, BaseDir: baseDir, Log: zap.NewNop()}
}

// RunCLI executes one boltz predict call with stdout/stderr captured to
// timestamped log files inside outdir. The returned code is the process exit
// code; a non-nil error means the process could not be started at all.
func (r *Runner) RunCLI(ctx context.Context, inputPath, outdir string) (int, error) {
	inputPath, err := filepath.Abs(inputPath)
	if err != nil {
		return -1, err
	}
	outdir, err = filepath.Abs(outdir)
	if err != nil {
		return -1, err
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return -1, fmt.Errorf("failed to create outdir: %w", err)
	}

	args := r.Opts.BuildArgs(inputPath, outdir)

	stamp := runlog.Stamp()
	soPath := filepath.Join(outdir, fmt.Sprintf("stdout_%s.log", stamp))
	sePath := filepath.Join(outdir, fmt.Sprintf("stderr_%s.log", stamp))

	fmt.Println("\nCMD:", r.Opts.Binary, strings.Join(args, " "))
	fmt.Println("STDOUT:", soPath)
	fmt.Println("STDERR:", sePath)

	so, err := os.Create(soPath)
	if err != nil {
		return -1, fmt.Errorf("failed to create stdout log: %w", err)
	}
	defer so.Close()
	se, err := os.Create(sePath)
	if err != nil {
		return -1, fmt.Errorf("failed to create stderr log: %w", err)
	}
	defer se.Close()

	cmd := exec.CommandContext(ctx, r.Opts.Binary, args...)
	cmd.Stdout = so
	cmd.Stderr = se
	cmd.Dir = r.BaseDir
	cmd.Env = os.Environ() // inherits activated env + LD_* CUDA fix

	r.Log.Info("boltz invocation",
		zap.String("input", inputPath),
		zap.String("outdir", outdir))

	runErr := cmd.Run()
	rc := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			rc = exitErr.ExitCode()
		} else {
			r.Log.Error("boltz could not be started", zap.Error(runErr))
			return -1, fmt.Errorf("failed to run %s: %w", r.Opts.Binary, runErr)
		}
	}

	fmt.Println("Return code:", rc)
	r.Log.Info("boltz finished", zap.String("input", inputPath), zap.Int("rc", rc))
	return rc, nil
}
