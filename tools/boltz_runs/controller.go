package boltz_runs

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	version_control "boltz_buddy/config"
	"boltz_buddy/runlog"
)

// configPath pre-scans the raw arguments for -config so the file values can
// become the flag defaults before parsing.
func configPath(args []string) string {
	for i, arg := range args {
		if arg == "-config" || arg == "--config" {
			if i+1 < len(args) {
				return args[i+1]
			}
		}
		if v, ok := cutPrefix(arg, "-config="); ok {
			return v
		}
		if v, ok := cutPrefix(arg, "--config="); ok {
			return v
		}
	}
	return ""
}

func cutPrefix(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):], true
	}
	return "", false
}

func Run(args []string) {
	defaults := DefaultOptions
	baseDirDefault := "."
	runRootDefault := ""
	expectedEnvDefault := "boltz-env-torchfix"
	requireLDDefault := true
	skipTrainDefault, skipValDefault, skipTestDefault := false, false, false

	if path := configPath(args); path != "" {
		cfg, err := version_control.LoadRunnerConfig(path)
		if err != nil {
			fmt.Println("Failed to load config:", err)
			os.Exit(1)
		}
		if cfg.BaseDir != "" {
			baseDirDefault = cfg.BaseDir
		}
		if cfg.RunRoot != "" {
			runRootDefault = cfg.RunRoot
		}
		if cfg.ExpectedEnv != "" {
			expectedEnvDefault = cfg.ExpectedEnv
		}
		if cfg.RequireLDPreload != nil {
			requireLDDefault = *cfg.RequireLDPreload
		}
		skipTrainDefault = cfg.SkipTrain
		skipValDefault = cfg.SkipVal
		skipTestDefault = cfg.SkipTest
		applyBoltzConfig(&defaults, cfg.Boltz)
	}

	fs := flag.NewFlagSet("boltz_runs", flag.ExitOnError)

	fs.String("config", "", "Runner config YAML; flag values win over file values")
	baseDir := fs.String("base_dir", baseDirDefault, "Base dir holding data/train, data/val, data/test")
	runRoot := fs.String("run_root", runRootDefault, "Root output dir (default <base_dir>/outputs; can be a symlink)")

	// Env safety
	expectedEnv := fs.String("expected_env", expectedEnvDefault, "Substring expected in the boltz path. Set empty to disable.")
	noRequireLD := fs.Bool("no_require_ld_preload", !requireLDDefault, "Disable LD_PRELOAD check (NOT recommended)")

	// Boltz options
	binary := fs.String("bin", defaults.Binary, "boltz executable")
	devices := fs.Int("devices", defaults.Devices, "Accelerator devices")
	accelerator := fs.String("accelerator", defaults.Accelerator, "gpu, cpu or tpu")
	model := fs.String("model", defaults.Model, "boltz1 or boltz2")
	recyclingSteps := fs.Int("recycling_steps", defaults.RecyclingSteps, "Recycling steps")
	samplingSteps := fs.Int("sampling_steps", defaults.SamplingSteps, "Sampling steps")
	diffusionSamples := fs.Int("diffusion_samples", defaults.DiffusionSamples, "Diffusion samples")
	maxParallelSamples := fs.Int("max_parallel_samples", defaults.MaxParallelSamples, "Max parallel samples")
	maxMSASeqs := fs.Int("max_msa_seqs", defaults.MaxMSASeqs, "Max MSA sequences")
	numSubsampledMSA := fs.Int("num_subsampled_msa", defaults.NumSubsampledMSA, "Subsampled MSA count")
	writeEmbeddings := fs.Bool("write_embeddings", defaults.WriteEmbeddings, "Write embedding artifacts")
	override := fs.Bool("override", defaults.Override, "Allow boltz to overwrite existing predictions")
	noKernels := fs.Bool("no_kernels", defaults.NoKernels, "Force disable kernels. Leave OFF for restored-quality runs.")

	// Which splits to run
	skipTrain := fs.Bool("skip_train", skipTrainDefault, "Skip the TRAIN chunks")
	skipVal := fs.Bool("skip_val", skipValDefault, "Skip the VAL folder")
	skipTest := fs.Bool("skip_test", skipTestDefault, "Skip the TEST chunks")

	debug := fs.Bool("debug", false, "Debug-level session log")

	err := fs.Parse(args)
	if err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	if len(fs.Args()) > 0 {
		fmt.Printf("Unrecognized arguments: %v\n", fs.Args())
		fmt.Println("Use -h to view valid flags.")
		os.Exit(1)
	}

	switch *accelerator {
	case "gpu", "cpu", "tpu":
	default:
		fmt.Println("Error: accelerator must be gpu, cpu or tpu")
		os.Exit(1)
	}
	switch *model {
	case "boltz1", "boltz2":
	default:
		fmt.Println("Error: model must be boltz1 or boltz2")
		os.Exit(1)
	}

	// Safety: ensure correct env is active (single activation mode)
	if err := AssertRuntime(*binary, *expectedEnv, !*noRequireLD); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	absBase, err := filepath.Abs(*baseDir)
	if err != nil {
		fmt.Println("Failed to resolve base dir:", err)
		os.Exit(1)
	}
	root := *runRoot
	if root == "" {
		root = filepath.Join(absBase, "outputs")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		fmt.Println("Failed to resolve run root:", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(absRoot, 0o755); err != nil {
		fmt.Println("Failed to create run root:", err)
		os.Exit(1)
	}

	outTrain := filepath.Join(absRoot, "train")
	outVal := filepath.Join(absRoot, "val")
	outTest := filepath.Join(absRoot, "test")
	for _, p := range []string{outTrain, outVal, outTest} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			fmt.Println("Failed to create output dir:", err)
			os.Exit(1)
		}
	}

	trainChunksRoot := filepath.Join(absBase, "data", "train", "_chunks")
	valYAMLDir := filepath.Join(absBase, "data", "val")
	testChunksRoot := filepath.Join(absBase, "data", "test", "_chunks")

	opts := Options{
		Binary:             *binary,
		Devices:            *devices,
		Accelerator:        *accelerator,
		Model:              *model,
		RecyclingSteps:     *recyclingSteps,
		SamplingSteps:      *samplingSteps,
		DiffusionSamples:   *diffusionSamples,
		MaxParallelSamples: *maxParallelSamples,
		MaxMSASeqs:         *maxMSASeqs,
		NumSubsampledMSA:   *numSubsampledMSA,
		WriteEmbeddings:    *writeEmbeddings,
		Override:           *override,
		NoKernels:          *noKernels,
	}

	logger, session, cleanup, err := runlog.New(filepath.Join(absRoot, "logs"), *debug)
	if err != nil {
		fmt.Println("Failed to open session log:", err)
		os.Exit(1)
	}
	defer cleanup()

	boltzPath, _ := exec.LookPath(opts.Binary)
	fmt.Println("\n==============================")
	fmt.Println("Boltz runner starting")
	fmt.Println("SESSION:", session)
	fmt.Println("BASE_DIR:", absBase)
	fmt.Println("RUN_ROOT:", absRoot)
	fmt.Println("boltz:", boltzPath)
	fmt.Println("LD_PRELOAD:", os.Getenv("LD_PRELOAD"))
	fmt.Printf("BOLTZ CONFIG: %+v\n", opts)
	fmt.Println("==============================")

	logger.Info("runner starting",
		zap.String("base_dir", absBase),
		zap.String("run_root", absRoot),
		zap.String("boltz", boltzPath),
		zap.Any("options", opts))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &Runner{Opts: opts, BaseDir: absBase, Log: logger}

	fail := func(err error) {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\n[ABORT] Interrupted; resume later with the same command.")
			logger.Warn("interrupted")
		} else {
			fmt.Fprintln(os.Stderr, "\n[FATAL] Unhandled error:", err)
			logger.Error("fatal", zap.Error(err))
		}
		cleanup()
		os.Exit(1)
	}

	if !*skipTrain {
		if err := runner.RunChunkedDataset(ctx, trainChunksRoot, outTrain, "TRAIN"); err != nil {
			fail(err)
		}
	} else {
		fmt.Println("[SKIP] TRAIN")
	}

	if !*skipVal {
		if err := runner.RunValFolder(ctx, valYAMLDir, outVal); err != nil {
			fail(err)
		}
	} else {
		fmt.Println("[SKIP] VAL")
	}

	if !*skipTest {
		if err := runner.RunChunkedDataset(ctx, testChunksRoot, outTest, "TEST"); err != nil {
			fail(err)
		}
	} else {
		fmt.Println("[SKIP] TEST")
	}

	fmt.Println("\nAll requested runs completed (or safely resumed where possible).")
	logger.Info("runner finished")
}

func applyBoltzConfig(opts *Options, cfg version_control.BoltzConfig) {
	if cfg.Binary != "" {
		opts.Binary = cfg.Binary
	}
	if cfg.Devices != 0 {
		opts.Devices = cfg.Devices
	}
	if cfg.Accelerator != "" {
		opts.Accelerator = cfg.Accelerator
	}
	if cfg.Model != "" {
		opts.Model = cfg.Model
	}
	if cfg.RecyclingSteps != 0 {
		opts.RecyclingSteps = cfg.RecyclingSteps
	}
	if cfg.SamplingSteps != 0 {
		opts.SamplingSteps = cfg.SamplingSteps
	}
	if cfg.DiffusionSamples != 0 {
		opts.DiffusionSamples = cfg.DiffusionSamples
	}
	if cfg.MaxParallelSamples != 0 {
		opts.MaxParallelSamples = cfg.MaxParallelSamples
	}
	if cfg.MaxMSASeqs != 0 {
		opts.MaxMSASeqs = cfg.MaxMSASeqs
	}
	if cfg.NumSubsampledMSA != 0 {
		opts.NumSubsampledMSA = cfg.NumSubsampledMSA
	}
	if cfg.WriteEmbeddings != nil {
		opts.WriteEmbeddings = *cfg.WriteEmbeddings
	}
	if cfg.Override {
		opts.Override = true
	}
	if cfg.NoKernels {
		opts.NoKernels = true
	}
}
