// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import "github.com/cznic/exp/calculus/heap"

// Reducer is the subset of rewrite.Reducer a Case.Build body may call to
// drive an argument to weak-head normal form. It is satisfied by
// *rewrite.Reducer; kept as an interface here to avoid an import cycle
// between rules and rewrite (rewrite depends on rules, not vice versa).
type Reducer interface {
	Reduce(host heap.Loc) (heap.Link, error)
}

// A Tx is the surface a compiled rule Case.Build body uses to assemble its
// right-hand side, per spec.md §4.6/§6.3: allocate, link, subst, clear and
// deref, plus reducing an argument position on demand, in the spirit of
// lldb.Allocator exposing only Alloc/Free/Get/Put to its callers. The
// restriction is not enforced by the type: the heap and reducer are also
// reachable through the exported H and R fields.
type Tx struct {
	H   *heap.Heap
	R   Reducer
	Err error

	// Host is the location of the CAL cell being rewritten, and Term is
	// its dereferenced value at match time. Build bodies use these to
	// locate argument fields (Term.Field(i)) and to write the
	// right-hand side back (tx.Link(tx.Host, ...)).
	Host heap.Loc
	Term heap.Link
}

// Alloc allocates a size-cell block. Any error is latched in tx.Err and
// surfaced by the caller after Build returns.
func (tx *Tx) Alloc(size int) heap.Loc {
	if tx.Err != nil {
		return heap.NoLoc
	}
	loc, err := tx.H.Alloc(size)
	if err != nil {
		tx.Err = err
		return heap.NoLoc
	}
	return loc
}

// Link writes value at loc, repairing back-edges per heap.Heap.Link.
func (tx *Tx) Link(loc heap.Loc, value heap.Link) {
	if tx.Err != nil {
		return
	}
	tx.H.Link(loc, value)
}

// Subst resolves a binder's use-site per heap.Heap.Subst.
func (tx *Tx) Subst(binder heap.Link, value heap.Link) {
	if tx.Err != nil {
		return
	}
	tx.H.Subst(binder, value)
}

// Clear recycles a size-cell block per heap.Heap.Clear.
func (tx *Tx) Clear(loc heap.Loc, size int) {
	if tx.Err != nil {
		return
	}
	tx.H.Clear(loc, size)
}

// Deref reads the Link stored at loc.
func (tx *Tx) Deref(loc heap.Loc) heap.Link {
	return tx.H.Deref(loc)
}

// ReduceArg drives the argument at host to weak-head normal form, for
// cases whose pattern needs a field beyond the one the dispatcher already
// matched on.
func (tx *Tx) ReduceArg(host heap.Loc) heap.Link {
	if tx.Err != nil {
		return 0
	}
	v, err := tx.R.Reduce(host)
	if err != nil {
		tx.Err = err
	}
	return v
}
