// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package defect

import (
	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

// GrainBdry terminates a slip plane at a grain boundary. Dislocations
// reaching it are pinned: they stay but stop moving.
type GrainBdry struct {
	Base
}

// NewGrainBdry returns a new grain-boundary defect at x (plane frame)
func NewGrainBdry(reg *uid.Registry, x []float64) *GrainBdry {
	o := &GrainBdry{Base: NewBase(reg, GrainBoundary, nil)}
	o.SetPos(x)
	return o
}

// FreeSurf terminates a slip plane at a free surface. Dislocations
// reaching it are absorbed and removed from the simulation.
type FreeSurf struct {
	Base
}

// NewFreeSurf returns a new free-surface defect at x (plane frame)
func NewFreeSurf(reg *uid.Registry, x []float64) *FreeSurf {
	o := &FreeSurf{Base: NewBase(reg, FreeSurface, nil)}
	o.SetPos(x)
	return o
}
