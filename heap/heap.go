// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "github.com/cznic/mathutil"

// Options configures a new Heap, generalizing lldb.NewAllocator's choice of
// backing Filer and FLT kind.
type Options struct {
	// MaxArity bounds the largest free-list size class. Zero selects the
	// default of heap.MaxArity.
	MaxArity int

	// InitialCapacity pre-sizes the backing cell array, the in-memory
	// analogue of pre-truncating a Filer to avoid repeated growth.
	InitialCapacity int

	// MaxCells bounds how far the backing cell array may grow. Zero means
	// unbounded. Reached only by Alloc extending the heap, never by
	// reusing a free-list entry.
	MaxCells int64
}

// A Heap is the append-only cell array plus per-size free-lists described
// in spec.md §3.3. It is not safe for concurrent use; per §5, concurrent
// evaluations require disjoint Heaps.
type Heap struct {
	cells    []Link
	free     [][]Loc // free[size] is a LIFO stack of locations of that size
	maxArity int
	maxCells int64
}

// NewHeap returns an empty Heap configured by opts.
func NewHeap(opts Options) *Heap {
	maxArity := opts.MaxArity
	if maxArity <= 0 {
		maxArity = MaxArity
	}
	h := &Heap{
		cells:    make([]Link, 0, opts.InitialCapacity),
		free:     make([][]Loc, maxArity+1),
		maxArity: maxArity,
		maxCells: opts.MaxCells,
	}
	return h
}

// MaxArity returns the largest block size this Heap's free-lists track.
func (h *Heap) MaxArity() int { return h.maxArity }

// Watermark returns the current high-water cell count, the upper bound any
// live node's location can reach.
func (h *Heap) Watermark() int64 { return int64(len(h.cells)) }

// Alloc allocates a size-cell block, reusing one from the matching
// free-list (LIFO, for cache locality per spec.md §4.1) or extending the
// heap. size == 0 never allocates; it returns location 0 (the NIL
// sentinel, per spec.md §4.1). If Options.MaxCells is set and extending
// the heap would cross it, Alloc returns ErrILSEQ{Type: ErrOOM} and the
// heap is left unmodified (spec.md §7); free-list reuse never consults
// the ceiling, since it cannot grow the backing array.
func (h *Heap) Alloc(size int) (Loc, error) {
	if size == 0 {
		return 0, nil
	}
	if size < 0 || size > h.maxArity {
		return NoLoc, &ErrINVAL{"heap.Alloc: size out of limits", int64(size)}
	}
	if n := len(h.free[size]); n > 0 {
		loc := h.free[size][n-1]
		h.free[size] = h.free[size][:n-1]
		return loc, nil
	}
	loc := Loc(len(h.cells))
	if h.maxCells > 0 && int64(len(h.cells))+int64(size) > h.maxCells {
		return NoLoc, &ErrILSEQ{Type: ErrOOM, Loc: loc, Arg: int64(size), Arg2: h.maxCells}
	}
	for i := 0; i < size; i++ {
		h.cells = append(h.cells, 0)
	}
	return loc, nil
}

// Clear pushes loc onto the free-list for size, recycling it for a future
// Alloc. It is a no-op for size <= 0; a size above MaxArity is filed under
// the MaxArity free-list. Clear does not recursively free cell
// contents; the caller's rewrite rule has already accounted for them
// (spec.md §4.1).
func (h *Heap) Clear(loc Loc, size int) {
	if size <= 0 {
		return
	}
	size = mathutil.Min(size, h.maxArity)
	h.free[size] = append(h.free[size], loc)
}

// Deref reads the Link stored at loc.
func (h *Heap) Deref(loc Loc) Link {
	return h.cells[loc]
}

// raw writes value at loc without repairing back-edges; only Link may call
// this.
func (h *Heap) raw(loc Loc, value Link) {
	h.cells[loc] = value
}

// Cells returns the heap's backing cell array, for serialization by
// package image. Callers must not retain it past the next mutating call.
func (h *Heap) Cells() []Link { return h.cells }

// FreeList returns the free-list for the given size class, for
// serialization by package image.
func (h *Heap) FreeList(size int) []Loc { return h.free[size] }

// FromParts rebuilds a Heap from a previously serialized cell array and
// set of free-lists (one per size class 0..maxArity), the inverse of
// Cells/FreeList. Used by image.Load.
func FromParts(cells []Link, free [][]Loc, maxArity int) *Heap {
	if maxArity <= 0 {
		maxArity = MaxArity
	}
	fl := make([][]Loc, maxArity+1)
	for i := range fl {
		if i < len(free) {
			fl[i] = free[i]
		}
	}
	return &Heap{cells: cells, free: fl, maxArity: maxArity}
}
