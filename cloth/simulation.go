package cloth

import (
	"fmt"
	"math"
)

// Cloth owns a particle grid and advances it once per rendered frame.
type Cloth struct {
	*Topology
	Params Params

	env     *environ
	last    Environment
	elapsed float64
}

// New validates cfg and builds a flat cloth from it.
func New(cfg Config) (*Cloth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithPositions(cfg.Width, cfg.Height, FlatGrid(cfg.Width, cfg.Height, cfg.Step), cfg.Mass, cfg.Params, BuildOptions{})
}

// NewWithPositions builds a cloth over caller supplied initial positions,
// for example those of an existing mesh.
func NewWithPositions(w, h int, positions []Vector3, mass float64, params Params, opts BuildOptions) (*Cloth, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	t, err := Build(w, h, positions, mass, opts)
	if err != nil {
		return nil, err
	}
	return &Cloth{
		Topology: t,
		Params:   params,
		env:      newEnviron(params.GustSeed),
	}, nil
}

// NewBuffer returns a render buffer holding the current positions and
// normals, sized for this cloth.
func (c *Cloth) NewBuffer() []Vertex {
	positions := make([]Vector3, len(c.Particles))
	for k := range c.Particles {
		positions[k] = c.Particles[k].Position
	}
	data, _ := NewVertices(c.Width, c.Height, positions)
	RecomputeNormals(c.Width, c.Height, data)
	return data
}

// CheckBuffer reports whether out can receive a frame of this cloth.
func (c *Cloth) CheckBuffer(out []Vertex) error {
	if len(out) != len(c.Particles) {
		return fmt.Errorf("%w: want %d, got %d", ErrBufferSize, len(c.Particles), len(out))
	}
	return nil
}

// Environment returns the forces computed by the most recent step.
func (c *Cloth) Environment() Environment {
	return c.last
}

// Elapsed is the sum of every h passed to Step.
func (c *Cloth) Elapsed() float64 {
	return c.elapsed
}

// Step advances the cloth by the frame's elapsed time h. now is the wall
// clock used for the wind phase. Positions and normals are written to out,
// which must hold one vertex per particle. A non-positive or non-finite h
// leaves everything untouched.
func (c *Cloth) Step(h, now float64, out []Vertex) {
	if !(h > 0) || math.IsInf(h, 0) {
		return
	}
	if len(out) < len(c.Particles) {
		panic(fmt.Sprintf("cloth: vertex buffer holds %d, need %d", len(out), len(c.Particles)))
	}

	if c.env.seed != c.Params.GustSeed {
		c.env = newEnviron(c.Params.GustSeed)
	}
	env := c.env.compute(&c.Params, h, now)
	c.last = env
	c.elapsed += h

	for k := range c.Links {
		c.Links[k].Exert(c.Particles, env.Links)
	}

	explicit := c.Params.Integrator == IntegratorExplicit
	for k := range c.Particles {
		p := &c.Particles[k]
		p.ApplyForce(env.Gravity.Mul(p.Mass).Add(env.Wind))
		if explicit {
			p.IntegrateExplicit(h)
		} else {
			p.Integrate(h)
		}
		p.ClearForce()
		out[k].Position = p.Position
	}

	RecomputeNormals(c.Width, c.Height, out)
}
