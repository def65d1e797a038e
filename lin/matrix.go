// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Identity returns a new 3x3 identity matrix
func Identity() (I [][]float64) {
	I = la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		I[i][i] = 1
	}
	return
}

// Transpose computes At := transpose(A) for 3x3 matrices
//  Note: At must be pre-allocated and different to A
func Transpose(At, A [][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			At[i][j] = A[j][i]
		}
	}
}

// Dyad computes the dyadic product M := u ⊗ v of two 3D vectors
func Dyad(M [][]float64, u, v []float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			M[i][j] = u[i] * v[j]
		}
	}
}

// Det returns the determinant of a 3x3 matrix
func Det(A [][]float64) float64 {
	return A[0][0]*(A[1][1]*A[2][2]-A[1][2]*A[2][1]) -
		A[0][1]*(A[1][0]*A[2][2]-A[1][2]*A[2][0]) +
		A[0][2]*(A[1][0]*A[2][1]-A[1][1]*A[2][0])
}

// Adj computes the adjugate adj := transpose(cofactor(A)) of a 3x3 matrix
//  Note: adj must be pre-allocated and different to A
func Adj(adj, A [][]float64) {
	adj[0][0] = A[1][1]*A[2][2] - A[1][2]*A[2][1]
	adj[0][1] = A[0][2]*A[2][1] - A[0][1]*A[2][2]
	adj[0][2] = A[0][1]*A[1][2] - A[0][2]*A[1][1]
	adj[1][0] = A[1][2]*A[2][0] - A[1][0]*A[2][2]
	adj[1][1] = A[0][0]*A[2][2] - A[0][2]*A[2][0]
	adj[1][2] = A[0][2]*A[1][0] - A[0][0]*A[1][2]
	adj[2][0] = A[1][0]*A[2][1] - A[1][1]*A[2][0]
	adj[2][1] = A[0][1]*A[2][0] - A[0][0]*A[2][1]
	adj[2][2] = A[0][0]*A[1][1] - A[0][1]*A[1][0]
}

// Inv computes Ai := inverse(A) of a 3x3 matrix. Singular matrices result
// in a zeroed Ai and ok == false.
func Inv(Ai, A [][]float64) (det float64, ok bool) {
	det, err := la.MatInv(Ai, A, TolZero)
	if err != nil {
		la.MatFill(Ai, 0)
		return 0, false
	}
	return det, true
}

// IsOrthonormal tells whether R is a proper rotation matrix; i.e. whether
// R times its transpose gives the identity matrix and det(R) = 1, both
// within TolOrth
func IsOrthonormal(R [][]float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dot := 0.0
			for k := 0; k < 3; k++ {
				dot += R[i][k] * R[j][k]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(dot-want) > TolOrth {
				return false
			}
		}
	}
	return math.Abs(Det(R)-1.0) <= TolOrth
}
