package cloth

// Area forces for poking the cloth. They deposit into the force accumulators
// and take effect on the next Step. Anchored particles ignore them.

func (t *Topology) ApplyDirectedForce(force Vector3, origin Vector3, radius float64) {
	for k := range t.Particles {
		p := &t.Particles[k]
		if origin.Sub(p.Position).LengthSquared() < radius*radius {
			p.ApplyForce(
				force.Mul(10).Div(origin.Sub(p.Position).Len() + 10),
			)
		}
	}
}

// ApplyExplosiveForce pushes particles away from origin, falling off with
// the squared distance.
func (t *Topology) ApplyExplosiveForce(force float64, origin Vector3, radius float64) {
	for k := range t.Particles {
		p := &t.Particles[k]
		dist2 := origin.Sub(p.Position).LengthSquared()
		if dist2 < radius*radius {
			p.ApplyForce(p.Position.Sub(origin).Mul(100 * force).Div(10000 + dist2))
		}
	}
}

func (t *Topology) ApplyImplosiveForce(force float64, origin Vector3, radius float64) {
	for k := range t.Particles {
		p := &t.Particles[k]
		dist2 := origin.Sub(p.Position).LengthSquared()
		if dist2 < radius*radius {
			p.ApplyForce(origin.Sub(p.Position).Mul(10 * force).Div(100 + dist2))
		}
	}
}
