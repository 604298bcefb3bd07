// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rules holds the compiled per-function rewrite-rule tables the
// external rule compiler is expected to populate (spec.md §6.3). The core
// runtime has no parser; a Table is a pure data structure consumable from
// a heap image.
package rules

// A Pattern is either AnyPattern (Any set: the argument position is not
// inspected) or a constructor constraint built by CtrPattern (the argument
// must reduce to a constructor with the given id and arity).
type Pattern struct {
	Any   bool
	ID    byte
	Arity byte
}

// AnyPattern matches any argument without inspecting it.
var AnyPattern = Pattern{Any: true}

// CtrPattern matches a constructor with the given id and arity.
func CtrPattern(id, arity byte) Pattern {
	return Pattern{ID: id, Arity: arity}
}

// A Case is one ordered alternative of a function's rule table: a pattern
// per inspected argument position, and a Build callback that assembles the
// right-hand side at the Tx's host once the pattern has matched.
type Case struct {
	// Patterns[i] constrains argument position i. A position absent from
	// Patterns is treated as AnyPattern (not inspected).
	Patterns []Pattern
	Build    func(tx *Tx)
}

// A Table is a Dispatcher mapping a user function id to its ordered list
// of Cases.
type Table map[byte][]Case

// Dispatch implements Dispatcher.
func (t Table) Dispatch(funcID byte) ([]Case, bool) {
	cases, ok := t[funcID]
	return cases, ok
}

// FunctionIDs returns the table's registered function ids in ascending
// order, for deterministic diagnostics.
func (t Table) FunctionIDs() []byte {
	ids := make([]byte, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	// Small, fixed-width keys: an insertion sort over a byte slice needs
	// no external help.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// A Dispatcher resolves a CAL's function id to its ordered case list.
type Dispatcher interface {
	Dispatch(funcID byte) ([]Case, bool)
}
