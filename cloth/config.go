package cloth

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	IntegratorSymplectic = "symplectic"
	IntegratorExplicit   = "explicit"
)

var ErrInvalidConfig = errors.New("cloth: invalid configuration")

// Params are the live-tunable scalars. They may change between steps.
type Params struct {
	Gravity       float64 `yaml:"gravity"`
	Rigidity      float64 `yaml:"rigidity"`
	Viscosity     float64 `yaml:"viscosity"`
	WindAmplitude Vector3 `yaml:"wind_amplitude"`
	WindFrequency Vector3 `yaml:"wind_frequency"`
	OffsetBias    Vector3 `yaml:"offset_bias"`
	ForceBias     Vector3 `yaml:"force_bias"`
	Gust          float64 `yaml:"gust"`
	GustSeed      int64   `yaml:"gust_seed"`
	Integrator    string  `yaml:"integrator"`
}

type Config struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Step   float64 `yaml:"step"`
	Mass   float64 `yaml:"mass"`
	Params Params  `yaml:"params"`
}

func DefaultParams() Params {
	return Params{
		Gravity:       0.02,
		Rigidity:      0.2,
		Viscosity:     0.05,
		WindAmplitude: Vector3{0.002, 0.0, 0.01},
		WindFrequency: Vector3{0.7, 0.0, 1.3},
		Integrator:    IntegratorSymplectic,
	}
}

func DefaultConfig() Config {
	return Config{
		Width:  30,
		Height: 20,
		Step:   0.5,
		Mass:   1.0,
		Params: DefaultParams(),
	}
}

func (c Config) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, c.Width, c.Height)
	}
	if !(c.Mass > 0) || math.IsInf(c.Mass, 0) {
		return fmt.Errorf("%w: got %v", ErrNonPositiveMass, c.Mass)
	}
	if !(c.Step > 0) || math.IsInf(c.Step, 0) {
		return fmt.Errorf("%w: step must be positive, got %v", ErrInvalidConfig, c.Step)
	}
	return c.Params.Validate()
}

func (p Params) Validate() error {
	switch p.Integrator {
	case "", IntegratorSymplectic, IntegratorExplicit:
	default:
		return fmt.Errorf("%w: unknown integrator %q", ErrInvalidConfig, p.Integrator)
	}

	scalars := map[string]float64{
		"gravity":   p.Gravity,
		"rigidity":  p.Rigidity,
		"viscosity": p.Viscosity,
		"gust":      p.Gust,
	}
	for name, v := range scalars {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, name)
		}
	}

	vectors := map[string]Vector3{
		"wind_amplitude": p.WindAmplitude,
		"wind_frequency": p.WindFrequency,
		"offset_bias":    p.OffsetBias,
		"force_bias":     p.ForceBias,
	}
	for name, v := range vectors {
		if !v.IsFinite() {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, name)
		}
	}
	return nil
}

// LoadConfig reads a YAML preset. A missing file yields the defaults; keys
// absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Save(path string) error {
	yml, err := yaml.Marshal(&c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(yml); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
