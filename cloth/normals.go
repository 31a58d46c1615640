package cloth

// Triangle names one half of grid quad (I, J). Half 0 is
// (i,j),(i+1,j),(i+1,j+1); half 1 is (i,j),(i+1,j+1),(i,j+1).
type Triangle struct {
	I, J int
	Half int
}

func (t Triangle) corners(h int) [3]int {
	a := t.I*h + t.J
	c := (t.I+1)*h + t.J + 1
	if t.Half == 0 {
		return [3]int{a, (t.I+1)*h + t.J, c}
	}
	return [3]int{a, c, t.I*h + t.J + 1}
}

// IncidentTriangles lists the triangles touching cell (i, j): six inside
// the grid, fewer along the border.
func IncidentTriangles(w, h, i, j int) []Triangle {
	tris := make([]Triangle, 0, 6)
	right, up := i+1 < w, j+1 < h
	left, down := i >= 1, j >= 1

	if right && up {
		tris = append(tris, Triangle{i, j, 0}, Triangle{i, j, 1})
	}
	if left && down {
		tris = append(tris, Triangle{i - 1, j - 1, 0}, Triangle{i - 1, j - 1, 1})
	}
	if left && up {
		tris = append(tris, Triangle{i - 1, j, 0})
	}
	if right && down {
		tris = append(tris, Triangle{i, j - 1, 1})
	}
	return tris
}

// faceVector is the unnormalized, area-weighted normal of a triangle.
func faceVector(data []Vertex, corners [3]int) Vector3 {
	a := data[corners[0]].Position
	b := data[corners[1]].Position
	c := data[corners[2]].Position
	return b.Sub(a).Cross(c.Sub(a))
}

// RecomputeNormals rewrites every vertex normal of a w x h buffer from the
// positions already stored in it. A vertex whose surrounding triangles
// have no area keeps its previous normal.
func RecomputeNormals(w, h int, data []Vertex) {
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			incident := IncidentTriangles(w, h, i, j)
			if len(incident) == 0 {
				continue
			}

			var sum Vector3
			for _, t := range incident {
				sum = sum.Add(faceVector(data, t.corners(h)))
			}

			n, ok := sum.Div(float64(len(incident))).Unit()
			if !ok {
				continue
			}
			data[i*h+j].Normal = n
		}
	}
}
