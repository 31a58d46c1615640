package cloth

import "fmt"

// Law selects the force law a link evaluates.
type Law uint8

const (
	SpringBrake Law = iota
	Spring
	Brake
)

func (l Law) String() string {
	switch l {
	case SpringBrake:
		return "spring-brake"
	case Spring:
		return "spring"
	case Brake:
		return "brake"
	}
	return fmt.Sprintf("Law(%d)", uint8(l))
}

type Category uint8

const (
	Structural Category = iota
	Shear
	Bend
)

func (c Category) String() string {
	switch c {
	case Structural:
		return "structural"
	case Shear:
		return "shear"
	case Bend:
		return "bend"
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// StepContext carries the parameters every link shares for one step.
type StepContext struct {
	K float64 // global stiffness
	Z float64 // global damping
	L Vector3 // global offset bias
	F Vector3 // global force bias, added to both endpoints
}

// Link joins two particles of an arena by handle. L is the rest offset
// p2-p1 captured when the link was made and never changes afterwards.
type Link struct {
	P1, P2   int
	K        float64
	Z        float64
	L        Vector3
	Law      Law
	Category Category
}

func NewLink(particles []Particle, p1, p2 int, category Category) Link {
	return Link{
		P1:       p1,
		P2:       p2,
		L:        particles[p2].Position.Sub(particles[p1].Position),
		Law:      SpringBrake,
		Category: category,
	}
}

// Force returns the force the link puts on P1; P2 receives its negation.
// The global force bias is not included.
func (l *Link) Force(particles []Particle, ctx StepContext) Vector3 {
	a, b := &particles[l.P1], &particles[l.P2]

	var f Vector3
	if l.Law != Brake {
		d := b.Position.Sub(a.Position)
		f = d.Sub(l.L).Sub(ctx.L).Mul(l.K + ctx.K)
	}
	if l.Law != Spring {
		s := b.Velocity.Sub(a.Velocity)
		f = f.Add(s.Mul(l.Z + ctx.Z))
	}
	return f
}

func (l *Link) Exert(particles []Particle, ctx StepContext) {
	f := l.Force(particles, ctx)
	particles[l.P1].ApplyForce(f.Add(ctx.F))
	particles[l.P2].ApplyForce(f.Neg().Add(ctx.F))
}
