package cloth

import (
	"errors"
	"fmt"
	"math"
)

var ErrNonPositiveMass = errors.New("cloth: free particle mass must be positive")

type Kind uint8

const (
	Free Kind = iota
	Fixed
)

func (k Kind) String() string {
	switch k {
	case Free:
		return "free"
	case Fixed:
		return "fixed"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Particle is a point mass. Fixed particles are anchors: they ignore forces
// and never move.
type Particle struct {
	Kind     Kind
	Position Vector3
	Velocity Vector3
	Force    Vector3
	Mass     float64
}

func NewFreeParticle(pos Vector3, mass float64) (Particle, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return Particle{}, fmt.Errorf("%w: got %v", ErrNonPositiveMass, mass)
	}
	return Particle{Kind: Free, Position: pos, Mass: mass}, nil
}

func NewFixedParticle(pos Vector3) Particle {
	return Particle{Kind: Fixed, Position: pos}
}

func (p *Particle) ApplyForce(f Vector3) {
	switch p.Kind {
	case Free:
		p.Force = p.Force.Add(f)
	case Fixed:
	}
}

// Integrate advances a free particle with semi-implicit Euler: velocity is
// updated first, and the new velocity moves the position.
func (p *Particle) Integrate(h float64) {
	switch p.Kind {
	case Free:
		p.Velocity = p.Velocity.Add(p.Force.Mul(h / p.Mass))
		p.Position = p.Position.Add(p.Velocity.Mul(h))
	case Fixed:
	}
}

// IntegrateExplicit is forward Euler: position moves with the old velocity.
func (p *Particle) IntegrateExplicit(h float64) {
	switch p.Kind {
	case Free:
		p.Position = p.Position.Add(p.Velocity.Mul(h))
		p.Velocity = p.Velocity.Add(p.Force.Mul(h / p.Mass))
	case Fixed:
	}
}

func (p *Particle) ClearForce() {
	p.Force = v3zero()
}
