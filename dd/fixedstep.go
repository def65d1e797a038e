// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dd

import (
	"github.com/cpmech/gosl/fun"

	"github.com/adhishm/dd2d-Matryoshka-sub000/inp"
	"github.com/adhishm/dd2d-Matryoshka-sub000/poly"
)

// FixedStep implements the fixed time-stepping discipline: every
// iteration advances by the same increment regardless of the defect
// velocities. Collisions within the step are prevented by the approach
// clamping of the slip planes, not by the stepper.
type FixedStep struct {
	dtfcn fun.Func // increment as a function of time
}

// add stepper to factory of allocators
func init() {
	allocators["fixed"] = func(par *inp.Params) Stepper {
		return &FixedStep{dtfcn: par.DtFunc}
	}
}

// Select returns the fixed increment
func (o *FixedStep) Select(cry *poly.Crystal, t float64) float64 {
	dt := o.dtfcn.F(t, nil)
	cry.Dt = dt
	return dt
}
