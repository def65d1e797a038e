// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Tess holds a 2-D Voronoi tessellation loaded from the two sidecar
// files <name>.nod (vertices, z = 0) and <name>.cll (cells as 1-based
// index lists into the vertex array)
type Tess struct {
	V     [][]float64 // vertices
	Cells [][]int     // cell vertex indices, 0-based after load
}

// ReadTess reads the tessellation sidecar files <name>.nod and
// <name>.cll from dir
func ReadTess(dir, name string) (o *Tess) {
	o = new(Tess)

	// vertices
	nod := path.Join(dir, name+".nod")
	s := newScanner(nod)
	for s.more() {
		o.V = append(o.V, s.floats(3))
	}

	// cells
	cll := path.Join(dir, name+".cll")
	s = newScanner(cll)
	for s.more() {
		f, lnum := s.next()
		nv := io.Atoi(f[0])
		if len(f) != nv+1 {
			chk.Panic("%s:%d: cell needs %d vertex indices, got %d", cll, lnum, nv, len(f)-1)
		}
		cell := make([]int, nv)
		for i := 0; i < nv; i++ {
			iv := io.Atoi(f[i+1]) - 1 // 1-based in file
			if iv < 0 || iv >= len(o.V) {
				chk.Panic("%s:%d: vertex index out of range: %d", cll, lnum, iv+1)
			}
			cell[i] = iv
		}
		o.Cells = append(o.Cells, cell)
	}
	return
}

// CellPoly returns the polygon of cell i as a list of vertex
// coordinates. Out-of-range cells return nil.
func (o *Tess) CellPoly(i int) (poly [][]float64) {
	if i < 0 || i >= len(o.Cells) {
		return nil
	}
	for _, iv := range o.Cells[i] {
		poly = append(poly, o.V[iv])
	}
	return
}
