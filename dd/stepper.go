// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dd

import (
	"github.com/adhishm/dd2d-Matryoshka-sub000/inp"
	"github.com/adhishm/dd2d-Matryoshka-sub000/poly"
)

// Stepper selects the global time increment of one iteration, after
// forces and velocities have been resolved
type Stepper interface {
	Select(cry *poly.Crystal, t float64) (dt float64)
}

// allocators holds all available time steppers
var allocators = make(map[string]func(par *inp.Params) Stepper)
