// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"fmt"

	"github.com/cznic/sortutil"
)

// A ConflictError reports two Cases of the same function whose patterns at
// some position both match a Ctr with the same id, a violation of spec.md
// §6.3's "case guards are disjoint by construction" compiler obligation.
// Validate never fires in the core dispatch path; it is an optional lint a
// host can run over a table before shipping it.
type ConflictError struct {
	FuncID   byte
	CaseA    int
	CaseB    int
	Position int
	CtrID    byte
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("function %d: cases %d and %d both match constructor %d at position %d",
		e.FuncID, e.CaseA, e.CaseB, e.CtrID, e.Position)
}

// Validate checks every function's case list for position-wise constructor
// collisions between distinct cases. It returns the first conflict found,
// or nil if the table is guard-disjoint.
func (t Table) Validate() error {
	ids := sortutil.Int64Slice{}
	for id := range t {
		ids = append(ids, int64(id))
	}
	ids.Sort()
	for _, id64 := range ids {
		id := byte(id64)
		cases := t[id]
		for i := 0; i < len(cases); i++ {
			for j := i + 1; j < len(cases); j++ {
				if pos, ctrID, ok := conflict(cases[i], cases[j]); ok {
					return &ConflictError{FuncID: id, CaseA: i, CaseB: j, Position: pos, CtrID: ctrID}
				}
			}
		}
	}
	return nil
}

func conflict(a, b Case) (position int, ctrID byte, ok bool) {
	n := len(a.Patterns)
	if len(b.Patterns) < n {
		n = len(b.Patterns)
	}
	for i := 0; i < n; i++ {
		pa, pb := a.Patterns[i], b.Patterns[i]
		if pa.Any || pb.Any {
			continue
		}
		if pa.ID == pb.ID {
			return i, pa.ID, true
		}
	}
	return 0, 0, false
}
