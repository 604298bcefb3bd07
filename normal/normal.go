// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package normal implements the full normaliser (spec.md §4.7): it
// descends the graph, reducing each position to weak-head normal form and
// recursing into children, guarded by a "seen" bitset so a shared
// subgraph is normalised exactly once.
package normal

import (
	"github.com/cznic/exp/calculus/heap"
	"github.com/cznic/exp/calculus/rewrite"
	"github.com/cznic/mathutil"
)

const bitsPerWord = 64

func setBit(bits []uint64, bit int64) {
	bits[bit>>6] |= 1 << uint(bit&0x3f)
}

func getBit(bits []uint64, bit int64) bool {
	word := bit >> 6
	if word < 0 || int(word) >= len(bits) {
		return false
	}
	return bits[word]&(1<<uint(bit&0x3f)) != 0
}

// Normalise drives the cell at host to full normal form using r, and
// returns the normalised term. The seen bitset is sized from the heap's
// current watermark (mathutil.Max against a minimum of one word), not a
// fixed-size static array as in the original FFI entry point, since this
// heap grows on demand rather than living in a caller-supplied buffer.
func Normalise(h *heap.Heap, host heap.Loc, r *rewrite.Reducer) (heap.Link, error) {
	words := mathutil.Max(int((h.Watermark()+bitsPerWord-1)/bitsPerWord)+1, 1)
	seen := make([]uint64, words)
	return normalGo(h, host, r, seen)
}

func normalGo(h *heap.Heap, host heap.Loc, r *rewrite.Reducer, seen []uint64) (heap.Link, error) {
	term := h.Deref(host)
	if getBit(seen, int64(term.Pos())) {
		return term, nil
	}

	term, err := r.Reduce(host)
	if err != nil {
		return 0, err
	}
	markLoc(h, &seen, term.Pos())

	switch term.Tag() {
	case heap.LAM:
		child, err := normalGo(h, term.Field(1), r, seen)
		if err != nil {
			return 0, err
		}
		h.Link(term.Field(1), child)
		return term, nil
	case heap.APP, heap.PAR:
		c0, err := normalGo(h, term.Field(0), r, seen)
		if err != nil {
			return 0, err
		}
		h.Link(term.Field(0), c0)
		c1, err := normalGo(h, term.Field(1), r, seen)
		if err != nil {
			return 0, err
		}
		h.Link(term.Field(1), c1)
		return term, nil
	case heap.DP0, heap.DP1:
		child, err := normalGo(h, term.Field(2), r, seen)
		if err != nil {
			return 0, err
		}
		h.Link(term.Field(2), child)
		return term, nil
	case heap.CTR, heap.CAL:
		arity := int(term.Ex1())
		for i := 0; i < arity; i++ {
			child, err := normalGo(h, term.Field(i), r, seen)
			if err != nil {
				return 0, err
			}
			h.Link(term.Field(i), child)
		}
		return term, nil
	default:
		return term, nil
	}
}

// markLoc grows seen if a freshly allocated location (from this rewrite)
// exceeds its current capacity before setting the bit for pos.
func markLoc(h *heap.Heap, seen *[]uint64, pos heap.Loc) {
	need := int(pos)>>6 + 1
	if need > len(*seen) {
		grown := make([]uint64, need)
		copy(grown, *seen)
		*seen = grown
	}
	setBit(*seen, int64(pos))
}
