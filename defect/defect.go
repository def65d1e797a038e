// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package defect implements crystalline defects: dislocations, Frank-Read
// sources, grain boundaries and free surfaces. Every defect owns a
// coordinate frame, a unique id and an append-only stress history.
package defect

import (
	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

// Kind distinguishes the defect types
type Kind int

const (
	Vacancy Kind = iota
	Interstitial
	Dislocation
	FrankReadSource
	GrainBoundary
	FreeSurface
)

// String returns the name of a defect kind
func (k Kind) String() string {
	switch k {
	case Vacancy:
		return "vacancy"
	case Interstitial:
		return "interstitial"
	case Dislocation:
		return "dislocation"
	case FrankReadSource:
		return "frankReadSource"
	case GrainBoundary:
		return "grainBoundary"
	case FreeSurface:
		return "freeSurface"
	}
	return "unknown"
}

// Defect is a located, identifiable entity owning a coordinate frame.
// Positions are origins of the defect frame expressed in the parent
// (slip-plane) frame; stresses are expressed in the defect's own frame.
type Defect interface {
	Kind() Kind
	Id() int
	Frame() *lin.Frame
	Pos() []float64
	SetPos(x []float64)
	SetParent(par *lin.Frame)
	Stress() *lin.Stress
	RecordStress(σ *lin.Stress)
	StressAt(it int) *lin.Stress
}

// Base implements the part common to every defect kind
type Base struct {
	kind Kind
	id   int
	frm  *lin.Frame
	σtot *lin.Stress
	hist []*lin.Stress
}

// NewBase returns a defect base of the given kind, minting a fresh id
// from the registry. prms is the birth record stored with the id.
func NewBase(reg *uid.Registry, kind Kind, prms []float64) Base {
	return Base{
		kind: kind,
		id:   reg.Next(kind.String(), prms),
		frm:  lin.NewFrame(nil),
		σtot: lin.NewTensor(),
	}
}

// Kind returns the defect kind
func (o *Base) Kind() Kind { return o.kind }

// Id returns the unique identifier assigned at birth
func (o *Base) Id() int { return o.id }

// Frame returns the defect's own coordinate frame
func (o *Base) Frame() *lin.Frame { return o.frm }

// Pos returns the origin of the defect frame, in the parent frame
func (o *Base) Pos() []float64 { return o.frm.X0 }

// SetPos relocates the defect within its parent frame
func (o *Base) SetPos(x []float64) { o.frm.SetOrigin(x) }

// SetParent refreshes the parent-frame pointer. Containers call this
// whenever they relocate the defect.
func (o *Base) SetParent(par *lin.Frame) { o.frm.Par = par }

// Stress returns the current total stress, in the defect frame
func (o *Base) Stress() *lin.Stress { return o.σtot }

// RecordStress sets the current total stress and appends a copy to the
// history
func (o *Base) RecordStress(σ *lin.Stress) {
	o.σtot.CopyFrom(σ)
	o.hist = append(o.hist, σ.Clone())
}

// StressAt returns the stress recorded at iteration it. Out-of-range
// indices return the zero tensor; the query is best-effort and meant for
// the statistics boundary.
func (o *Base) StressAt(it int) *lin.Stress {
	if it < 0 || it >= len(o.hist) {
		return lin.NewTensor()
	}
	return o.hist[it]
}

// NumRecords returns the number of stress records collected so far
func (o *Base) NumRecords() int { return len(o.hist) }
