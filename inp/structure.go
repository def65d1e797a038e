// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// DisloData holds one dislocation row of a defect-structure file
type DisloData struct {
	X      []float64 // position, slip-plane frame
	B      []float64 // Burgers vector, slip-plane frame
	L      []float64 // line vector, slip-plane frame
	Bmag   float64   // physical Burgers magnitude [m]
	Mobile bool      // free to glide
}

// SourceData holds one Frank-Read source row of a defect-structure file
type SourceData struct {
	X    []float64 // position, slip-plane frame
	B    []float64 // Burgers vector, slip-plane frame
	L    []float64 // line vector, slip-plane frame
	Bmag float64   // physical Burgers magnitude [m]
}

// PlaneData holds one slip-plane block of a defect-structure file
type PlaneData struct {
	Time   float64       // current time
	Ext1   []float64     // first extremity, slip-system frame
	Ext2   []float64     // second extremity, slip-system frame
	N      []float64     // plane normal
	X0     []float64     // origin
	Dislos []*DisloData  // dislocation rows
	Srcs   []*SourceData // source rows
}

// SystemData holds one slip-system block: the shared normal and slip
// direction, the position in the grain frame and the plane blocks
type SystemData struct {
	X0     []float64 // position, grain frame
	N      []float64 // normal, grain frame
	Dir    []float64 // slip direction, grain frame
	Planes []*PlaneData
}

// GrainData holds one grain block: the Bunge Euler orientation and the
// system blocks
type GrainData struct {
	Euler   []float64 // (φ1, Φ, φ2)
	Systems []*SystemData
}

// CrystalData holds a whole polycrystal structure file: the base name
// of the tessellation sidecar files and the grain blocks
type CrystalData struct {
	TessName string
	Grains   []*GrainData
}

// ReadPlaneData reads a slip-plane defect-structure file
func ReadPlaneData(fn string) (o *PlaneData) {
	s := newScanner(fn)
	return readPlaneBlock(s)
}

// ReadSystemData reads a slip-system defect-structure file: a header
// with the plane count, the normal, the slip direction and the position
// followed by that many plane blocks
func ReadSystemData(fn string) (o *SystemData) {
	s := newScanner(fn)
	return readSystemBlock(s)
}

// ReadGrainData reads a grain defect-structure file: a header with the
// system count and the Euler triple followed by that many system blocks
func ReadGrainData(fn string) (o *GrainData) {
	s := newScanner(fn)
	return readGrainBlock(s)
}

// ReadCrystalData reads a polycrystal defect-structure file: the grain
// count, the tessellation base name and that many grain blocks
func ReadCrystalData(fn string) (o *CrystalData) {
	s := newScanner(fn)
	o = &CrystalData{TessName: ""}
	ngrains := s.int1()
	o.TessName = s.str1()
	for i := 0; i < ngrains; i++ {
		o.Grains = append(o.Grains, readGrainBlock(s))
	}
	return
}

// block readers //////////////////////////////////////////////////////////////

func readPlaneBlock(s *scanner) (o *PlaneData) {
	o = new(PlaneData)
	o.Time = s.float1()
	o.Ext1 = s.floats(3)
	o.Ext2 = s.floats(3)
	o.N = s.floats(3)
	o.X0 = s.floats(3)
	ndislo := s.int1()
	for i := 0; i < ndislo; i++ {
		v := s.floats(11)
		o.Dislos = append(o.Dislos, &DisloData{
			X:      v[0:3],
			B:      v[3:6],
			L:      v[6:9],
			Bmag:   v[9],
			Mobile: v[10] > 0,
		})
	}
	nsrc := s.int1()
	for i := 0; i < nsrc; i++ {
		v := s.floats(10)
		o.Srcs = append(o.Srcs, &SourceData{
			X:    v[0:3],
			B:    v[3:6],
			L:    v[6:9],
			Bmag: v[9],
		})
	}
	return
}

func readSystemBlock(s *scanner) (o *SystemData) {
	o = new(SystemData)
	nplanes := s.int1()
	o.N = s.floats(3)
	o.Dir = s.floats(3)
	o.X0 = s.floats(3)
	for i := 0; i < nplanes; i++ {
		o.Planes = append(o.Planes, readPlaneBlock(s))
	}
	return
}

func readGrainBlock(s *scanner) (o *GrainData) {
	o = new(GrainData)
	nsys := s.int1()
	o.Euler = s.floats(3)
	for i := 0; i < nsys; i++ {
		o.Systems = append(o.Systems, readSystemBlock(s))
	}
	return
}

// scanner ////////////////////////////////////////////////////////////////////

// scanner walks the meaningful lines of a line-oriented input file,
// skipping blanks and '#' comments. Every failure is fatal and names
// the file and the offending line.
type scanner struct {
	fn    string
	lines []string
	idx   int
}

func newScanner(fn string) *scanner {
	b, err := io.ReadFile(fn)
	if err != nil {
		chk.Panic("cannot read defect-structure file:\n%v", err)
	}
	return &scanner{fn: fn, lines: strings.Split(string(b), "\n")}
}

// more tells whether another meaningful line remains
func (o *scanner) more() bool {
	for i := o.idx; i < len(o.lines); i++ {
		f := strings.Fields(o.lines[i])
		if len(f) >= 1 && !strings.HasPrefix(f[0], "#") {
			return true
		}
	}
	return false
}

// next returns the fields of the next meaningful line
func (o *scanner) next() (fields []string, lnum int) {
	for o.idx < len(o.lines) {
		line := o.lines[o.idx]
		o.idx++
		f := strings.Fields(line)
		if len(f) < 1 || strings.HasPrefix(f[0], "#") {
			continue
		}
		return f, o.idx
	}
	chk.Panic("%s: premature end of file", o.fn)
	return
}

// floats returns the next line as exactly n real numbers
func (o *scanner) floats(n int) (res []float64) {
	f, lnum := o.next()
	if len(f) != n {
		chk.Panic("%s:%d: need %d values, got %d", o.fn, lnum, n, len(f))
	}
	res = make([]float64, n)
	for i, v := range f {
		res[i] = io.Atof(v)
	}
	return
}

// float1 returns the next line as a single real number
func (o *scanner) float1() float64 {
	return o.floats(1)[0]
}

// int1 returns the next line as a single non-negative integer
func (o *scanner) int1() int {
	f, lnum := o.next()
	if len(f) != 1 {
		chk.Panic("%s:%d: need one integer, got %d values", o.fn, lnum, len(f))
	}
	n := io.Atoi(f[0])
	if n < 0 {
		chk.Panic("%s:%d: count cannot be negative: %d", o.fn, lnum, n)
	}
	return n
}

// str1 returns the next line as a single word
func (o *scanner) str1() string {
	f, lnum := o.next()
	if len(f) != 1 {
		chk.Panic("%s:%d: need one word, got %d values", o.fn, lnum, len(f))
	}
	return f[0]
}
