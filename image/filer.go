// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package image encodes and persists heap images (spec.md §6.1/§6.4): the
// flat array of Links, the per-size free-lists, and the root location, in
// the exact bit layout §3.1 specifies so an image produced by an external
// rule compiler is directly loadable.
package image

// A Filer is a []byte-like model of a storage entity, trimmed from
// lldb.Filer down to the subset image needs: it has no transactional
// (BeginUpdate/EndUpdate/Rollback) obligations of its own, since
// Checkpoint (checkpoint.go) layers that discipline on top instead of
// requiring every Filer implementation to provide it.
type Filer interface {
	// ReadAt behaves as io.ReaderAt.
	ReadAt(b []byte, off int64) (n int, err error)

	// WriteAt behaves as io.WriterAt.
	WriteAt(b []byte, off int64) (n int, err error)

	// Size reports the current size in bytes.
	Size() int64

	// Truncate changes the size to size bytes.
	Truncate(size int64) error

	// Close releases any resources held by the Filer.
	Close() error

	// Name identifies the Filer for diagnostics.
	Name() string
}
