// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package image

import "io"

// Checkpoint layers structural update/rollback over a Filer, the
// whole-image analogue of lldb.RollbackFiler: where RollbackFiler tracks
// dirty pages in a bitFiler and replays only those on EndUpdate, a heap
// image has no independently addressable pages, so Checkpoint instead
// snapshots the whole image once, at the outermost BeginUpdate, and
// restores it whole on Rollback. The nesting counter and the
// open-a-transaction/close-exactly-once discipline are unchanged.
type Checkpoint struct {
	f        Filer
	snapshot []byte
	tlevel   int
}

// NewCheckpoint returns a Checkpoint wrapping f.
func NewCheckpoint(f Filer) *Checkpoint {
	return &Checkpoint{f: f}
}

// BeginUpdate opens a nested update. The outermost call snapshots f's
// current bytes so a later Rollback, at any nesting depth, can restore
// them.
func (c *Checkpoint) BeginUpdate() error {
	if c.tlevel == 0 {
		size := c.f.Size()
		buf := make([]byte, size)
		if _, err := c.f.ReadAt(buf, 0); err != nil && err != io.EOF {
			return err
		}
		c.snapshot = buf
	}
	c.tlevel++
	return nil
}

// EndUpdate closes one nesting level. At level 0 the snapshot is
// discarded; f's current content is the committed state.
func (c *Checkpoint) EndUpdate() error {
	if c.tlevel == 0 {
		return &ErrPERM{"Checkpoint.EndUpdate outside of an update"}
	}
	c.tlevel--
	if c.tlevel == 0 {
		c.snapshot = nil
	}
	return nil
}

// Rollback discards every change made since the outermost BeginUpdate,
// restoring f to its pre-transaction bytes, and closes all nesting
// levels at once — mirroring lldb.RollbackFiler's Rollback, which also
// unwinds the full transaction rather than one level at a time.
func (c *Checkpoint) Rollback() error {
	if c.tlevel == 0 {
		return &ErrPERM{"Checkpoint.Rollback outside of an update"}
	}
	if err := c.f.Truncate(0); err != nil {
		return err
	}
	if len(c.snapshot) > 0 {
		if _, err := c.f.WriteAt(c.snapshot, 0); err != nil {
			return err
		}
	}
	c.snapshot = nil
	c.tlevel = 0
	return nil
}
