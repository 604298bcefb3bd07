// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package image

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/golang/snappy"

	"github.com/cznic/exp/calculus/heap"
)

// Format tags, prefixed to a saved image as a single byte, mirroring how
// lldb.Allocator tags a used block's tail with its compression flag
// (Allocator.Compress / makeUsedBlock).
const (
	formatRaw    byte = 0
	formatSnappy byte = 1
)

// Save serializes h's cells, free-lists and root to f. When compress is
// true the payload is Snappy-compressed first, the whole-image analogue of
// lldb.Allocator's optional per-block compression — an image has no
// independently addressable blocks, so compression applies to it as a
// unit rather than piecewise.
func Save(f Filer, h *heap.Heap, root heap.Loc, compress bool) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, int64(h.MaxArity())); err != nil {
		return err
	}
	if err := binary.Write(&buf, binary.LittleEndian, int64(root)); err != nil {
		return err
	}

	cells := h.Cells()
	if err := binary.Write(&buf, binary.LittleEndian, int64(len(cells))); err != nil {
		return err
	}
	for _, c := range cells {
		if err := binary.Write(&buf, binary.LittleEndian, uint64(c)); err != nil {
			return err
		}
	}

	for size := 0; size <= h.MaxArity(); size++ {
		locs := h.FreeList(size)
		if err := binary.Write(&buf, binary.LittleEndian, int64(len(locs))); err != nil {
			return err
		}
		for _, l := range locs {
			if err := binary.Write(&buf, binary.LittleEndian, int64(l)); err != nil {
				return err
			}
		}
	}

	payload := buf.Bytes()
	tag := formatRaw
	if compress {
		payload = snappy.Encode(nil, payload)
		tag = formatSnappy
	}

	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.WriteAt([]byte{tag}, 0); err != nil {
		return err
	}
	_, err := f.WriteAt(payload, 1)
	return err
}

// Load is the inverse of Save: it reads the tag byte, decompresses if
// needed, and rebuilds a *heap.Heap plus the root location it was saved
// with.
func Load(f Filer) (*heap.Heap, heap.Loc, error) {
	size := f.Size()
	if size < 1 {
		return nil, 0, &ErrFormat{"image: empty file"}
	}
	raw := make([]byte, size)
	if _, err := f.ReadAt(raw, 0); err != nil && err != io.EOF {
		return nil, 0, err
	}

	tag, payload := raw[0], raw[1:]
	switch tag {
	case formatRaw:
	case formatSnappy:
		decoded, err := snappy.Decode(nil, payload)
		if err != nil {
			return nil, 0, err
		}
		payload = decoded
	default:
		return nil, 0, &ErrFormat{"image: unrecognized format tag"}
	}

	r := bytes.NewReader(payload)
	var maxArity, root, n int64
	if err := binary.Read(r, binary.LittleEndian, &maxArity); err != nil {
		return nil, 0, err
	}
	if err := binary.Read(r, binary.LittleEndian, &root); err != nil {
		return nil, 0, err
	}
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, 0, err
	}
	cells := make([]heap.Link, n)
	for i := range cells {
		var v uint64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, 0, err
		}
		cells[i] = heap.Link(v)
	}

	free := make([][]heap.Loc, maxArity+1)
	for size := 0; size <= int(maxArity); size++ {
		var fn int64
		if err := binary.Read(r, binary.LittleEndian, &fn); err != nil {
			return nil, 0, err
		}
		locs := make([]heap.Loc, fn)
		for i := range locs {
			var v int64
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, 0, err
			}
			locs[i] = heap.Loc(v)
		}
		free[size] = locs
	}

	h := heap.FromParts(cells, free, int(maxArity))
	return h, heap.Loc(root), nil
}
