package cloth

import (
	"errors"
	"fmt"
)

var (
	ErrGridTooSmall  = errors.New("cloth: grid must be at least 2x2")
	ErrPositionCount = errors.New("cloth: position count does not match grid")
)

// trailingMassFactor lightens the last column to soften edge oscillation.
const trailingMassFactor = 0.9

type Topology struct {
	Width     int
	Height    int
	Particles []Particle
	Links     []Link
}

type BuildOptions struct {
	// Laws overrides the force law per link category. Missing categories
	// use SpringBrake.
	Laws map[Category]Law
}

// Index maps grid cell (i, j) to its particle handle.
func (t *Topology) Index(i, j int) int {
	return i*t.Height + j
}

// Build lays one particle on each cell of a w-column, h-row grid and joins
// them with structural, shear and bend links. positions is row-major by
// column: positions[i*h+j] is cell (i, j). Column 0 is anchored.
func Build(w, h int, positions []Vector3, mass float64, opts BuildOptions) (*Topology, error) {
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, w, h)
	}
	if len(positions) != w*h {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrPositionCount, w*h, len(positions))
	}

	t := &Topology{
		Width:     w,
		Height:    h,
		Particles: make([]Particle, 0, w*h),
		Links:     make([]Link, 0, LinkCount(w, h)),
	}

	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			pos := positions[t.Index(i, j)]
			if i == 0 {
				t.Particles = append(t.Particles, NewFixedParticle(pos))
				continue
			}
			m := mass
			if i == w-1 {
				m = mass * trailingMassFactor
			}
			p, err := NewFreeParticle(pos, m)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
			t.Particles = append(t.Particles, p)
		}
	}

	link := func(i1, j1, i2, j2 int, c Category) {
		l := NewLink(t.Particles, t.Index(i1, j1), t.Index(i2, j2), c)
		if law, ok := opts.Laws[c]; ok {
			l.Law = law
		}
		t.Links = append(t.Links, l)
	}

	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			// structural
			if i+1 < w {
				link(i, j, i+1, j, Structural)
			}
			if j+1 < h {
				link(i, j, i, j+1, Structural)
			}

			// shear: both diagonals of every cell, the first and last
			// columns only get the one that stays in bounds
			if i+1 < w && j+1 < h {
				link(i, j, i+1, j+1, Shear)
			}
			if i >= 1 && j+1 < h {
				link(i-1, j+1, i, j, Shear)
			}

			// bend, skipped on the anchored column
			if i >= 1 && i+2 < w {
				link(i, j, i+2, j, Bend)
			}
			if i >= 1 && j+2 < h {
				link(i, j, i, j+2, Bend)
			}
		}
	}

	return t, nil
}

// LinkCount is the number of links Build creates for a w x h grid.
func LinkCount(w, h int) int {
	if w < 2 || h < 2 {
		return 0
	}
	structural := (w-1)*h + w*(h-1)
	shear := 2 * (w - 1) * (h - 1)
	bend := 0
	if w > 3 {
		bend += (w - 3) * h
	}
	if h > 2 {
		bend += (w - 1) * (h - 2)
	}
	return structural + shear + bend
}
