// Package config loads the run configuration of the convengine CLI from
// YAML. Values absent from the file keep their defaults, and command-line
// flags override both.
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/convengine/internal/tensor"
)

// Version is the convengine release. A config file may pin a range of
// releases it was written for with the "requires" key.
const Version = "0.1.0"

// Backend names accepted by the "backend" key.
const (
	BackendAuto   = "auto"
	BackendCPU    = "cpu"
	BackendHost   = "host"
	BackendWebGPU = "webgpu"
)

// Config errors.
var (
	ErrUnsupportedVersion = errors.New("config requires a different convengine version")
	ErrInvalidConfig      = errors.New("invalid config")
)

// Workload describes the tensors the bench and verify commands generate.
type Workload struct {
	InputWidth   int `yaml:"input_width"`
	InputHeight  int `yaml:"input_height"`
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`
	StrideX      int `yaml:"stride_x"`
	StrideY      int `yaml:"stride_y"`
	PaddingX     int `yaml:"padding_x"`
	PaddingY     int `yaml:"padding_y"`
	ReduceLength int `yaml:"reduce_length"`
}

// Params returns the stride and padding of the workload.
func (w Workload) Params() tensor.Params {
	return tensor.Params{StrideX: w.StrideX, StrideY: w.StrideY, PaddingX: w.PaddingX, PaddingY: w.PaddingY}
}

// Host mirrors host.Config.
type Host struct {
	MaxGroupSize int `yaml:"max_group_size"`
	Workers      int `yaml:"workers"`
}

// Engine mirrors the tunables of engine.Config.
type Engine struct {
	GroupWidth    int `yaml:"group_width"`
	BaseCaseWidth int `yaml:"base_case_width"`
}

// Tolerance mirrors tensor.Tolerance.
type Tolerance struct {
	Abs float64 `yaml:"abs"`
	Rel float64 `yaml:"rel"`
}

// Config is a complete CLI run configuration.
type Config struct {
	Requires   string    `yaml:"requires"`
	Backend    string    `yaml:"backend"`
	LogLevel   string    `yaml:"log_level"`
	Seed       int64     `yaml:"seed"`
	Iterations int       `yaml:"iterations"`
	Workload   Workload  `yaml:"workload"`
	Host       Host      `yaml:"host"`
	Engine     Engine    `yaml:"engine"`
	Tolerance  Tolerance `yaml:"tolerance"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Backend:    BackendAuto,
		LogLevel:   "info",
		Seed:       1,
		Iterations: 10,
		Workload: Workload{
			InputWidth:   1024,
			InputHeight:  1024,
			WindowWidth:  3,
			WindowHeight: 3,
			StrideX:      1,
			StrideY:      1,
			ReduceLength: 1 << 24,
		},
		Host:      Host{MaxGroupSize: 1024},
		Engine:    Engine{GroupWidth: 8192, BaseCaseWidth: 32},
		Tolerance: Tolerance{Abs: tensor.DefaultTolerance.Abs, Rel: tensor.DefaultTolerance.Rel},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return Config{}, errors.WithMessagef(err, "config %s", path)
	}
	return cfg, nil
}

// Read decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Read(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the version constraint and every field range.
func (c *Config) Validate() error {
	if c.Requires != "" {
		constraint, err := semver.NewConstraint(c.Requires)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "requires %q: %v", c.Requires, err)
		}
		if !constraint.Check(semver.MustParse(Version)) {
			return errors.Wrapf(ErrUnsupportedVersion, "requires %s, running %s", c.Requires, Version)
		}
	}

	switch c.Backend {
	case BackendAuto, BackendCPU, BackendHost, BackendWebGPU:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown backend %q", c.Backend)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Iterations < 1 {
		return errors.Wrapf(ErrInvalidConfig, "iterations %d", c.Iterations)
	}

	w := c.Workload
	if w.ReduceLength < 1 {
		return errors.Wrapf(ErrInvalidConfig, "reduce_length %d", w.ReduceLength)
	}
	if _, _, err := tensor.OutputSize(w.InputWidth, w.InputHeight, w.WindowWidth, w.WindowHeight, w.Params()); err != nil {
		return errors.WithMessage(err, "workload")
	}

	if c.Host.MaxGroupSize < 1 {
		return errors.Wrapf(ErrInvalidConfig, "host.max_group_size %d", c.Host.MaxGroupSize)
	}
	if c.Engine.GroupWidth == 1 {
		return errors.WithMessage(tensor.ErrInvalidGroupWidth, "engine.group_width")
	}
	if c.Tolerance.Abs < 0 || c.Tolerance.Rel < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative tolerance (%g, %g)", c.Tolerance.Abs, c.Tolerance.Rel)
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Wrapf(ErrInvalidConfig, "log_level %q", c.LogLevel)
	}
	return level, nil
}

// TensorTolerance converts the tolerance section.
func (c *Config) TensorTolerance() tensor.Tolerance {
	return tensor.Tolerance{Abs: c.Tolerance.Abs, Rel: c.Tolerance.Rel}
}
