// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package image

import "io"

var _ Filer = (*MemFiler)(nil)

// A MemFiler is a memory-backed Filer, adapted from lldb.MemFiler but
// trimmed of its paged backing store: a heap image is written and read
// whole, never sparsely, so a single growable []byte buffer suffices
// where lldb's MemFiler needs a page table to serve a B-tree-like access
// pattern efficiently.
type MemFiler struct {
	buf  []byte
	nest int
}

// NewMemFiler returns a new, empty MemFiler.
func NewMemFiler() *MemFiler { return &MemFiler{} }

// BeginUpdate increments the nesting counter that Close checks: Close
// fails while it is non-zero.
func (f *MemFiler) BeginUpdate() { f.nest++ }

// EndUpdate balances BeginUpdate.
func (f *MemFiler) EndUpdate() error {
	if f.nest == 0 {
		return &ErrPERM{"MemFiler.EndUpdate"}
	}
	f.nest--
	return nil
}

// Close implements Filer.
func (f *MemFiler) Close() error {
	if f.nest != 0 {
		return &ErrPERM{"MemFiler.Close"}
	}
	return nil
}

// Name implements Filer.
func (f *MemFiler) Name() string { return "memfiler" }

// Size implements Filer.
func (f *MemFiler) Size() int64 { return int64(len(f.buf)) }

// Truncate implements Filer.
func (f *MemFiler) Truncate(size int64) error {
	if size < 0 {
		return &ErrINVAL{"MemFiler.Truncate size", size}
	}
	switch {
	case size < int64(len(f.buf)):
		f.buf = f.buf[:size]
	case size > int64(len(f.buf)):
		grown := make([]byte, size)
		copy(grown, f.buf)
		f.buf = grown
	}
	return nil
}

// ReadAt implements Filer.
func (f *MemFiler) ReadAt(b []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, &ErrINVAL{"MemFiler.ReadAt off", off}
	}
	if off >= int64(len(f.buf)) {
		return 0, io.EOF
	}
	n = copy(b, f.buf[off:])
	if n < len(b) {
		err = io.EOF
	}
	return n, err
}

// WriteAt implements Filer.
func (f *MemFiler) WriteAt(b []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, &ErrINVAL{"MemFiler.WriteAt off", off}
	}
	end := off + int64(len(b))
	if end > int64(len(f.buf)) {
		if err := f.Truncate(end); err != nil {
			return 0, err
		}
	}
	return copy(f.buf[off:end], b), nil
}

// PunchHole implements the deallocate-a-range contract lldb.Filer
// documents, zeroing the range without changing Size.
func (f *MemFiler) PunchHole(off, size int64) error {
	if off < 0 || size < 0 || off+size > int64(len(f.buf)) {
		return &ErrINVAL{"MemFiler.PunchHole", off}
	}
	for i := off; i < off+size; i++ {
		f.buf[i] = 0
	}
	return nil
}

// Bytes returns the current content, for tests.
func (f *MemFiler) Bytes() []byte { return f.buf }
