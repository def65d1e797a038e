// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tests

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/adhishm/dd2d-Matryoshka-sub000/uid"
)

func init() {
	io.Verbose = false
}

func Verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// GetIdsKinds lists the ids ever minted by a registry with their kinds
func GetIdsKinds(reg *uid.Registry) (ids []int, kinds []string) {
	for id := 0; id < reg.Count(); id++ {
		ids = append(ids, id)
		kinds = append(kinds, reg.Kind(id))
	}
	return
}
