// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dd

import (
	"math"

	"github.com/cpmech/gosl/fun"

	"github.com/adhishm/dd2d-Matryoshka-sub000/inp"
	"github.com/adhishm/dd2d-Matryoshka-sub000/poly"
)

// AdaptiveStep implements the adaptive time-stepping discipline: the
// increment is the smallest over all planes of the time for a defect
// pair to reach the minimum approach distance, never below the
// configured floor. When nothing moves the candidates are all infinite
// and the fallback increment is used instead.
type AdaptiveStep struct {
	minDist  float64  // minimum approach distance
	minStep  float64  // floor on the increment
	fallback fun.Func // increment when every defect is resting
}

// add stepper to factory of allocators
func init() {
	allocators["adaptive"] = func(par *inp.Params) Stepper {
		return &AdaptiveStep{
			minDist:  par.LimDist,
			minStep:  par.LimTStep,
			fallback: par.DtFunc,
		}
	}
}

// Select returns the smallest pair-limited increment
func (o *AdaptiveStep) Select(cry *poly.Crystal, t float64) float64 {
	dt := cry.TimeStepCandidate(o.minDist, o.minStep)
	if math.IsInf(dt, 1) {
		dt = o.fallback.F(t, nil)
		cry.Dt = dt
	}
	return dt
}
