// Package config loads OMTSF's engine configuration the way the
// teacher repo loads vc.Cfg (pkg/configuration): an environment
// variable names a YAML file, creasty/defaults seeds the zero value,
// the file is unmarshaled over it, and go-playground/validator checks
// the result (spec.md §6).
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"omtsf/pkg/codec"
	"omtsf/pkg/logger"
	"omtsf/pkg/merge"
	"omtsf/pkg/model"
	"omtsf/pkg/validate"
)

// envVars holds the one environment variable config loading reads
// directly: the path to the YAML config file itself.
type envVars struct {
	ConfigYAML string `envconfig:"OMTSF_CONFIG_YAML" required:"true"`
}

// Validate is the validation engine's configuration surface.
type Validate struct {
	RunL1 bool `yaml:"run_l1" default:"true"`
	RunL2 bool `yaml:"run_l2" default:"true"`
	RunL3 bool `yaml:"run_l3" default:"false"`
}

func (v Validate) toEngineConfig() validate.Config {
	return validate.Config{RunL1: v.RunL1, RunL2: v.RunL2, RunL3: v.RunL3}
}

// Merge is the merge engine's configuration surface.
type Merge struct {
	SameAsThreshold string `yaml:"same_as_threshold" default:"possible" validate:"oneof=possible probable definite"`
	GroupSizeLimit  int    `yaml:"group_size_limit" default:"50" validate:"min=1"`
}

func (m Merge) toEngineConfig() merge.Config {
	return merge.Config{
		SameAsThreshold: model.Confidence(m.SameAsThreshold),
		GroupSizeLimit:  m.GroupSizeLimit,
	}
}

// Redact is the redaction engine's configuration surface: the scope an
// unattended redaction run targets, and a fixed retain list of node ids
// kept identifiable; a person node on the list is still omitted at
// public scope (spec.md §4.6).
type Redact struct {
	DefaultScope string   `yaml:"default_scope" default:"partner" validate:"oneof=internal partner public"`
	RetainNodes  []string `yaml:"retain_nodes"`
}

// Decode bounds the cost the codec engine is willing to pay decoding
// untrusted input (spec.md §5).
type Decode struct {
	MaxInputBytes      int64 `yaml:"max_input_bytes" default:"268435456" validate:"min=1"`
	MaxDecompressRatio int64 `yaml:"max_decompress_ratio" default:"4" validate:"min=1"`
}

func (d Decode) toDecodeOptions() codec.DecodeOptions {
	return codec.DecodeOptions{MaxInputBytes: d.MaxInputBytes, MaxDecompressRatio: d.MaxDecompressRatio}
}

// Config is the root engine configuration (spec.md §6): every engine's
// tunable surface in one YAML-loadable document.
type Config struct {
	Validate Validate `yaml:"validate"`
	Merge    Merge    `yaml:"merge"`
	Redact   Redact   `yaml:"redact"`
	Decode   Decode   `yaml:"decode"`
}

// ValidateConfig returns the engine-facing validate.Config.
func (c Config) ValidateConfig() validate.Config { return c.Validate.toEngineConfig() }

// MergeConfig returns the engine-facing merge.Config.
func (c Config) MergeConfig() merge.Config { return c.Merge.toEngineConfig() }

// DecodeOptions returns the engine-facing codec.DecodeOptions.
func (c Config) DecodeOptions() codec.DecodeOptions { return c.Decode.toDecodeOptions() }

// DefaultDisclosureScope returns the configured redaction target scope.
func (c Config) DefaultDisclosureScope() model.DisclosureScope {
	return model.DisclosureScope(c.Redact.DefaultScope)
}

// Load reads the path named by OMTSF_CONFIG_YAML, applies defaults,
// unmarshals the file over them, and validates the result — the same
// three-step shape as the teacher's pkg/configuration.New.
func Load() (*Config, error) {
	log := logger.NewSimple("config")
	log.Info("reading environment variable")

	env := envVars{}
	if err := envconfig.Process("", &env); err != nil {
		return nil, err
	}
	return LoadFile(env.ConfigYAML)
}

// LoadFile is Load's file-path-taking core, split out so callers (and
// tests) that already know the path do not need to go through the
// environment variable.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}

	cleanPath := filepath.Clean(path)
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New("config path is a directory")
	}

	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
