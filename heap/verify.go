// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "github.com/cznic/sortutil"

// Stats reports the shape of a Heap, the in-memory analogue of
// lldb.AllocStats.
type Stats struct {
	TotalCells int64
	FreeCells  int64
	AllocCells int64
	PerSize    []int64 // PerSize[k] is the number of free blocks of size k
}

// Verify checks free-list partitioning (Testable property 2: no location
// appears in two free-lists) and returns Stats describing the heap. It
// does not walk reachability from any root; callers needing the back-edge
// invariant (Testable property 1) should additionally call VerifyBackEdges
// with a root.
func (h *Heap) Verify() (*Stats, error) {
	seen := make(map[Loc]int)
	perSize := make([]int64, len(h.free))
	var free int64
	for size, locs := range h.free {
		sorted := make(sortutil.Int64Slice, len(locs))
		for i, l := range locs {
			sorted[i] = int64(l)
		}
		sorted.Sort()
		for _, l64 := range sorted {
			l := Loc(l64)
			if prevSize, ok := seen[l]; ok {
				return nil, &ErrILSEQ{Type: ErrFreeList, Loc: l, Arg: int64(prevSize), Arg2: int64(size)}
			}
			seen[l] = size
			free += int64(size)
		}
		perSize[size] = int64(len(locs))
	}
	total := h.Watermark()
	return &Stats{
		TotalCells: total,
		FreeCells:  free,
		AllocCells: total - free,
		PerSize:    perSize,
	}, nil
}

// VerifyBackEdges walks the graph reachable from root and checks Testable
// property 1: every cell holding VAR/DP0/DP1 with target p has the
// designated binder cell at p holding a matching ARG(l) back-edge.
func (h *Heap) VerifyBackEdges(root Loc) error {
	visited := make(map[Loc]bool)
	return h.verifyGo(root, visited)
}

func (h *Heap) verifyGo(loc Loc, visited map[Loc]bool) error {
	if visited[loc] {
		return nil
	}
	visited[loc] = true
	term := h.Deref(loc)
	switch term.Tag() {
	case VAR, DP0:
		binder := h.Deref(term.Field(0))
		if binder.Tag() != ARG || binder.Field(0) != loc {
			return &ErrILSEQ{Type: ErrBackEdge, Loc: loc, Arg: int64(term.Field(0))}
		}
	case DP1:
		binder := h.Deref(term.Field(1))
		if binder.Tag() != ARG || binder.Field(0) != loc {
			return &ErrILSEQ{Type: ErrBackEdge, Loc: loc, Arg: int64(term.Field(1))}
		}
	}
	switch term.Tag() {
	case LAM:
		if h.Deref(term.Field(0)).Tag() != NIL {
			if err := h.verifyGo(term.Field(0), visited); err != nil {
				return err
			}
		}
		return h.verifyGo(term.Field(1), visited)
	case APP, PAR:
		if err := h.verifyGo(term.Field(0), visited); err != nil {
			return err
		}
		return h.verifyGo(term.Field(1), visited)
	case DP0, DP1:
		// The binder slot (field 0 for DP0, field 1 for DP1) was already
		// checked above; field 2 (nodeSize(term)-1) is the shared scrutinee.
		return h.verifyGo(term.Field(nodeSize(term)-1), visited)
	case CTR, CAL:
		for i := 0; i < nodeSize(term); i++ {
			if err := h.verifyGo(term.Field(i), visited); err != nil {
				return err
			}
		}
	}
	return nil
}
