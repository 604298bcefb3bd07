// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rewrite implements the weak-head normaliser and the four classes
// of local interaction rule spec.md §4.6 describes: β reduction,
// application distributed over a fan, duplicator-over-λ, duplicator-over
// -fan (annihilation and commutation), duplicator-over-constructor, and
// dispatch to compiled user-function rule tables.
package rewrite

import (
	"github.com/cznic/exp/calculus/heap"
	"github.com/cznic/exp/calculus/rules"
)

// A Reducer drives reduction over one Heap against one rules.Dispatcher,
// accumulating its own rewrite counter ("gas"). Per spec.md §9's design
// note, the counter is evaluator-local state, never a package-global: two
// Reducers over disjoint heaps never interfere (§5).
type Reducer struct {
	H          *heap.Heap
	Dispatch   rules.Dispatcher
	RewriteCnt int64
}

// NewReducer returns a Reducer over h, dispatching CAL nodes through d. d
// may be nil if the program under evaluation never contains a CAL.
func NewReducer(h *heap.Heap, d rules.Dispatcher) *Reducer {
	return &Reducer{H: h, Dispatch: d}
}

func (r *Reducer) gas() { r.RewriteCnt++ }
