// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package defect

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/adhishm/dd2d-Matryoshka-sub000/lin"
	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

func Test_source01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("source01. countdown state machine")

	reg := uid.New()
	τc, ttrig, dt := 5e7, 1e-8, 1e-9
	src, err := NewSource(reg, lin.NewVec(0, 0, 0), lin.NewVec(1, 0, 0), lin.NewVec(0, 0, 1), 2.5e-10, τc, ttrig)
	if err != nil {
		tst.Errorf("NewSource failed:\n%v", err)
		return
	}
	if src.Counting() {
		tst.Errorf("a fresh source must be dormant\n")
		return
	}

	// under-critical stress never starts the countdown
	if src.CountDown(0.5*τc, dt) {
		tst.Errorf("under-critical stress must not emit\n")
		return
	}
	if src.Counting() {
		tst.Errorf("under-critical stress must not start the countdown\n")
		return
	}

	// a sustained shear of 2τc emits on the 10th tick
	for i := 0; i < 9; i++ {
		if src.CountDown(2.0*τc, dt) {
			tst.Errorf("premature emission at tick %d\n", i)
			return
		}
		if !src.Counting() {
			tst.Errorf("source must be counting at tick %d\n", i)
			return
		}
	}
	if !src.CountDown(2.0*τc, dt) {
		tst.Errorf("source must emit on the 10th tick\n")
		return
	}

	// the empty timer keeps offering the emission until it is recorded
	if !src.CountDown(2.0*τc, dt) {
		tst.Errorf("an unrecorded emission must be offered again\n")
		return
	}
	src.RecordEmission(&Dipole{Len: 1e-7, BPos: lin.NewVec(1, 0, 0)})
	if src.Counting() {
		tst.Errorf("recording the emission must rearm the countdown\n")
		return
	}

	// an interruption resets the countdown
	src.CountDown(2.0*τc, dt)
	src.CountDown(2.0*τc, dt)
	src.CountDown(0, dt)
	if src.Counting() {
		tst.Errorf("a failing condition must reset the countdown\n")
		return
	}

	// shear exactly at the critical value still drives the source
	if src.CountDown(-τc, dt) {
		tst.Errorf("first tick at |τ| = τc must not emit\n")
		return
	}
	if !src.Counting() {
		tst.Errorf("|τ| = τc must start the countdown\n")
		return
	}
}

func Test_source02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("source02. dipole length and emission record")

	μ, ν, bmag := 80e9, 0.3, 2.5e-10
	τc := 5e7
	reg := uid.New()
	src, err := NewSource(reg, lin.NewVec(0, 0, 0), lin.NewVec(1, 0, 0), lin.NewVec(0, 0, 1), bmag, τc, 1e-8)
	if err != nil {
		tst.Errorf("NewSource failed:\n%v", err)
		return
	}

	L := src.DipoleLen(μ, ν)
	io.Pforan("dipole length = %g m\n", L)
	chk.Scalar(tst, "L", 1e-22, L, μ*bmag/(2.0*math.Pi*(1.0-ν)*τc))

	// recording an emission with reversed Burgers realigns the frame
	src.RecordEmission(&Dipole{Len: L, BPos: lin.NewVec(-1, 0, 0)})
	chk.Vector(tst, "flipped Burgers", 1e-15, src.BPlane, []float64{-1, 0, 0})
	chk.Vector(tst, "flipped x-axis", 1e-15, src.Frame().E[0], []float64{-1, 0, 0})
	if src.LastDip == nil {
		tst.Errorf("emission record missing\n")
		return
	}

	// non-positive critical stress is rejected
	_, err = NewSource(reg, lin.NewVec(0, 0, 0), lin.NewVec(1, 0, 0), lin.NewVec(0, 0, 1), bmag, 0, 1e-8)
	if err == nil {
		tst.Errorf("zero critical stress must be rejected\n")
		return
	}
	io.Pfyel("expected failure: %v\n", err)
}
