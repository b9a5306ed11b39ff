package version_control

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunnerConfig holds the boltz_runs settings that can be loaded from a YAML
// file instead of being passed as flags. Flag values win over file values.
type RunnerConfig struct {
	BaseDir string `yaml:"base_dir"`
	RunRoot string `yaml:"run_root"`

	// Environment safety
	ExpectedEnv      string `yaml:"expected_env"`
	RequireLDPreload *bool  `yaml:"require_ld_preload"`

	// Boltz options
	Boltz BoltzConfig `yaml:"boltz"`

	// Split selection
	SkipTrain bool `yaml:"skip_train"`
	SkipVal   bool `yaml:"skip_val"`
	SkipTest  bool `yaml:"skip_test"`
}

// BoltzConfig mirrors the boltz predict command line options.
type BoltzConfig struct {
	Binary             string `yaml:"binary"`
	Devices            int    `yaml:"devices"`
	Accelerator        string `yaml:"accelerator"`
	Model              string `yaml:"model"`
	RecyclingSteps     int    `yaml:"recycling_steps"`
	SamplingSteps      int    `yaml:"sampling_steps"`
	DiffusionSamples   int    `yaml:"diffusion_samples"`
	MaxParallelSamples int    `yaml:"max_parallel_samples"`
	MaxMSASeqs         int    `yaml:"max_msa_seqs"`
	NumSubsampledMSA   int    `yaml:"num_subsampled_msa"`
	WriteEmbeddings    *bool  `yaml:"write_embeddings"`
	Override           bool   `yaml:"override"`
	NoKernels          bool   `yaml:"no_kernels"`
}

// LoadRunnerConfig reads a runner config YAML from disk.
func LoadRunnerConfig(path string) (*RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var cfg RunnerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}
