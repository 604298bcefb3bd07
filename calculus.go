// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calculus wires heap, rewrite, rules and normal together behind
// the one public entry point spec.md §6.2 describes: normalise the term
// rooted at a location and report how many rewrites fired. Everything a
// caller needs to drive a heap directly — allocation, its own reduction
// loop, image persistence — lives in the subpackages; this package exists
// only to spare a caller from wiring a *rewrite.Reducer by hand for the
// common case, the same role lldb/lab's thin wrapper functions play over
// lldb.Allocator.
package calculus

import (
	"github.com/cznic/exp/calculus/heap"
	"github.com/cznic/exp/calculus/normal"
	"github.com/cznic/exp/calculus/rewrite"
	"github.com/cznic/exp/calculus/rules"
)

// Normalise reduces the term rooted at host in h to full normal form,
// dispatching any CAL nodes through d (nil if the term contains none), and
// returns the number of rewrites performed. The heap is mutated in place;
// the returned Link is the (possibly relocated) root after normalisation.
func Normalise(h *heap.Heap, host heap.Loc, d rules.Dispatcher) (heap.Link, int64, error) {
	r := rewrite.NewReducer(h, d)
	term, err := normal.Normalise(h, host, r)
	if err != nil {
		return term, r.RewriteCnt, err
	}
	return term, r.RewriteCnt, nil
}
