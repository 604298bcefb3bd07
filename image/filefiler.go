// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// An os.File backed Filer, adapted from lldb.SimpleFileFiler.

package image

import (
	"os"

	"github.com/cznic/fileutil"
	"github.com/cznic/mathutil"
)

var _ Filer = (*FileFiler)(nil)

// FileFiler is an os.File backed Filer intended for persisting a heap
// image across process boundaries. Like lldb.SimpleFileFiler, it does not
// itself provide structural integrity across a crash; Checkpoint layers
// that on top.
type FileFiler struct {
	file *os.File
	nest int
	size int64
}

// NewFileFiler returns a new FileFiler wrapping f, an already-opened file.
func NewFileFiler(f *os.File) (*FileFiler, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &FileFiler{file: f, size: fi.Size()}, nil
}

// BeginUpdate increments the nesting counter that Close checks: Close
// fails while it is non-zero.
func (f *FileFiler) BeginUpdate() { f.nest++ }

// EndUpdate balances BeginUpdate.
func (f *FileFiler) EndUpdate() error {
	if f.nest == 0 {
		return &ErrPERM{"FileFiler.EndUpdate"}
	}
	f.nest--
	return nil
}

// Close implements Filer.
func (f *FileFiler) Close() error {
	if f.nest != 0 {
		return &ErrPERM{"FileFiler.Close"}
	}
	return f.file.Close()
}

// Name implements Filer.
func (f *FileFiler) Name() string { return f.file.Name() }

// PunchHole deallocates storage in the range [off, off+size), handing off
// to fileutil.PunchHole exactly as lldb.SimpleFileFiler does.
func (f *FileFiler) PunchHole(off, size int64) error {
	return fileutil.PunchHole(f.file, off, size)
}

// ReadAt implements Filer.
func (f *FileFiler) ReadAt(b []byte, off int64) (int, error) {
	return f.file.ReadAt(b, off)
}

// Size implements Filer.
func (f *FileFiler) Size() int64 { return f.size }

// Truncate implements Filer.
func (f *FileFiler) Truncate(size int64) error {
	if size < 0 {
		return &ErrINVAL{"FileFiler.Truncate size", size}
	}
	f.size = size
	return f.file.Truncate(size)
}

// WriteAt implements Filer.
func (f *FileFiler) WriteAt(b []byte, off int64) (int, error) {
	f.size = mathutil.MaxInt64(f.size, int64(len(b))+off)
	return f.file.WriteAt(b, off)
}
