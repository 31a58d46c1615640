package cloth

import (
	perlin "github.com/aquilax/go-perlin"
)

// Perlin settings for the wind gust; alpha/beta as in the usual 1/f noise.
const (
	gustAlpha  = 2.0
	gustBeta   = 2.0
	gustOctave = 3
)

// Environment is the set of forces recomputed at the start of every step.
// All of it is scaled by the inverse timestep fe so that tuning constants
// feel the same at any frame rate.
type Environment struct {
	Fe      float64
	Gravity Vector3 // acceleration-like, multiplied by particle mass
	Wind    Vector3
	Links   StepContext
}

type environ struct {
	noise *perlin.Perlin
	seed  int64
}

func newEnviron(seed int64) *environ {
	return &environ{
		noise: perlin.NewPerlin(gustAlpha, gustBeta, gustOctave, seed),
		seed:  seed,
	}
}

// gust returns a noise sample in roughly [-1, 1] for time t.
func (e *environ) gust(t float64) float64 {
	return e.noise.Noise1D(t)
}

func (e *environ) compute(p *Params, h, now float64) Environment {
	fe := 1 / h

	wind := p.WindAmplitude.Hadamard(p.WindFrequency.Mul(now).Cos()).Mul(fe)
	if p.Gust != 0 {
		wind = wind.Add(p.WindAmplitude.Mul(p.Gust * e.gust(now) * fe))
	}

	return Environment{
		Fe:      fe,
		Gravity: Vector3{0, -p.Gravity * fe, 0},
		Wind:    wind,
		Links: StepContext{
			K: p.Rigidity * fe * fe,
			Z: p.Viscosity * fe,
			L: p.OffsetBias,
			F: p.ForceBias,
		},
	}
}
