package cloth

import (
	"errors"
	"fmt"

	"github.com/faiface/pixel"
)

var ErrBufferSize = errors.New("cloth: vertex buffer size does not match grid")

// Vertex is one entry of the render buffer, laid out like the grid:
// vertex i*h+j is cell (i, j).
type Vertex struct {
	Position Vector3
	Normal   Vector3
	U, V     float64
}

// FlatGrid places a w x h grid in the z=0 plane, centred on the origin,
// with step units between neighbours.
func FlatGrid(w, h int, step float64) []Vector3 {
	positions := make([]Vector3, 0, w*h)
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			positions = append(positions, Vector3{
				(float64(i) - float64(w)/2) * step,
				(float64(j) - float64(h)/2) * step,
				0,
			})
		}
	}
	return positions
}

// GridIn spreads a w x h grid evenly over bounds, corner to corner.
func GridIn(bounds pixel.Rect, w, h int) []Vector3 {
	spacing := pixel.V(
		bounds.W()/float64(w-1),
		bounds.H()/float64(h-1),
	)
	positions := make([]Vector3, 0, w*h)
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			p := bounds.Min.Add(pixel.V(float64(i)*spacing.X, float64(j)*spacing.Y))
			positions = append(positions, Vector3{p.X, p.Y, 0})
		}
	}
	return positions
}

// NewVertices builds a render buffer for the given positions with texture
// coordinates and a +z normal.
func NewVertices(w, h int, positions []Vector3) ([]Vertex, error) {
	if len(positions) != w*h {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrBufferSize, w*h, len(positions))
	}
	data := make([]Vertex, 0, w*h)
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			data = append(data, Vertex{
				Position: positions[i*h+j],
				Normal:   Vector3{0, 0, 1},
				U:        float64(i) / float64(w),
				V:        float64(j) / float64(h),
			})
		}
	}
	return data, nil
}

// Indices returns the triangle list for a w x h grid, two triangles per
// quad with the same winding the normals use.
func Indices(w, h int) []uint32 {
	if w < 2 || h < 2 {
		return nil
	}
	indexes := make([]uint32, 0, 6*(w-1)*(h-1))
	for i := 0; i < w-1; i++ {
		for j := 0; j < h-1; j++ {
			a := uint32(i*h + j)
			b := uint32((i+1)*h + j)
			c := uint32((i+1)*h + j + 1)
			d := uint32(i*h + j + 1)
			indexes = append(indexes, a, b, c, a, c, d)
		}
	}
	return indexes
}

// FrameBuffer is a two-slot hand-off between the simulation and the
// renderer. Step writes Back, Swap publishes it, the renderer reads Front.
// It is meant to be used from a single goroutine.
type FrameBuffer struct {
	slots [2][]Vertex
	front int
}

func NewFrameBuffer(initial []Vertex) *FrameBuffer {
	fb := &FrameBuffer{}
	for i := range fb.slots {
		fb.slots[i] = make([]Vertex, len(initial))
		copy(fb.slots[i], initial)
	}
	return fb
}

func (fb *FrameBuffer) Front() []Vertex {
	return fb.slots[fb.front]
}

func (fb *FrameBuffer) Back() []Vertex {
	return fb.slots[1-fb.front]
}

// Swap publishes the back slot and seeds the new back slot with it, so
// normals that could not be recomputed carry over.
func (fb *FrameBuffer) Swap() {
	fb.front = 1 - fb.front
	copy(fb.slots[1-fb.front], fb.slots[fb.front])
}

func (fb *FrameBuffer) Len() int {
	return len(fb.slots[0])
}
