// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Collect structurally frees the subgraph rooted at term, stored at the
// optional host cell (0 if none), per spec.md §4.4. Destroying one output
// of a duplicator must not destroy the shared expression still reachable
// from the other output; only the binder slot is nulled in that case.
func (h *Heap) Collect(term Link, host Loc) {
	switch term.Tag() {
	case LAM:
		if h.Deref(term.Field(0)).Tag() != NIL {
			h.Link(h.Deref(term.Field(0)).Field(0), MakeLink(NIL, 0, 0, 0))
		}
		h.Collect(h.Deref(term.Field(1)), term.Field(1))
		h.Clear(term.Field(0), nodeSize(term))
	case APP:
		h.Collect(h.Deref(term.Field(0)), term.Field(0))
		h.Collect(h.Deref(term.Field(1)), term.Field(1))
		h.Clear(term.Field(0), nodeSize(term))
	case PAR:
		h.Collect(h.Deref(term.Field(0)), term.Field(0))
		h.Collect(h.Deref(term.Field(1)), term.Field(1))
		h.Clear(term.Field(0), nodeSize(term))
		if host != 0 {
			h.Link(host, MakeLink(NIL, 0, 0, 0))
		}
	case DP0:
		h.Link(term.Field(0), MakeLink(NIL, 0, 0, 0))
		if host != 0 {
			h.Clear(host, 1)
		}
	case DP1:
		h.Link(term.Field(1), MakeLink(NIL, 0, 0, 0))
		if host != 0 {
			h.Clear(host, 1)
		}
	case CTR, CAL:
		size := nodeSize(term)
		for i := 0; i < size; i++ {
			h.Collect(h.Deref(term.Field(i)), term.Field(i))
		}
		h.Clear(term.Field(0), size)
	case VAR:
		h.Link(term.Field(0), MakeLink(NIL, 0, 0, 0))
		if host != 0 {
			h.Clear(host, 1)
		}
	case NIL, ARG:
		// no-op
	}
}
