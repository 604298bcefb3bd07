// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package image

import "fmt"

// ErrINVAL reports an invalid argument to a Filer method, mirroring
// heap.ErrINVAL / lldb.ErrINVAL.
type ErrINVAL struct {
	Msg string
	Arg int64
}

func (e *ErrINVAL) Error() string {
	return fmt.Sprintf("%s (%d)", e.Msg, e.Arg)
}

// ErrPERM reports an operation invalid in the Filer's current state, such
// as Close while an update is still nested, mirroring lldb.ErrPERM.
type ErrPERM struct {
	Op string
}

func (e *ErrPERM) Error() string {
	return fmt.Sprintf("%s: not permitted in current state", e.Op)
}

// ErrFormat reports a heap image whose header/magic does not match any
// format this package understands.
type ErrFormat struct {
	Msg string
}

func (e *ErrFormat) Error() string { return e.Msg }
