// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package uid implements the registry of unique identifiers assigned to
// every defect ever created during a simulation
package uid

import (
	"bytes"
	"os"
	"path"
	"sync"

	"github.com/cpmech/gosl/io"
)

// Entry holds the immutable birth record of one identifier
type Entry struct {
	Kind string    // defect kind at creation
	Prms []float64 // parameter blob describing the defect at creation
}

// Registry issues monotonically increasing identifiers and keeps the
// birth record of every id ever assigned, including defects destroyed
// later by reactions. Ids are never reused nor reset during a run.
// The registry is handed explicitly to every constructor that mints a
// defect; issuance is guarded so that only this object needs a lock in
// a parallel setting.
type Registry struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns a new registry with no issued ids
func New() *Registry {
	return &Registry{}
}

// Next issues a new id for a defect of the given kind. prms is copied.
func (o *Registry) Next(kind string, prms []float64) (id int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id = len(o.entries)
	blob := make([]float64, len(prms))
	copy(blob, prms)
	o.entries = append(o.entries, Entry{Kind: kind, Prms: blob})
	return
}

// Count returns the number of ids issued so far
func (o *Registry) Count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries)
}

// Kind returns the kind recorded for id. Out-of-range ids return "".
func (o *Registry) Kind(id int) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if id < 0 || id >= len(o.entries) {
		return ""
	}
	return o.entries[id].Kind
}

// Prms returns a copy of the parameter blob recorded for id.
// Out-of-range ids return nil.
func (o *Registry) Prms(id int) []float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	if id < 0 || id >= len(o.entries) {
		return nil
	}
	blob := make([]float64, len(o.entries[id].Prms))
	copy(blob, o.entries[id].Prms)
	return blob
}

// Save writes the uniques file under dirout: one row per id ever
// assigned, listing the kind and the parameter blob
func (o *Registry) Save(dirout, fnkey string) (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var buf bytes.Buffer
	for id, e := range o.entries {
		io.Ff(&buf, "%d %s", id, e.Kind)
		for _, p := range e.Prms {
			io.Ff(&buf, " %g", p)
		}
		io.Ff(&buf, "\n")
	}
	return save_file(uniques_path(dirout, fnkey), &buf)
}

// auxiliary //////////////////////////////////////////////////////////////////

func uniques_path(dirout, fnkey string) string {
	return path.Join(dirout, io.Sf("%s_uniques.res", fnkey))
}

func save_file(filename string, buf *bytes.Buffer) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() { err = fil.Close() }()
	_, err = fil.Write(buf.Bytes())
	return
}
