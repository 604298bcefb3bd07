// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Link writes value at loc and, per spec.md §4.3, repairs the binder's
// back-edge if value is itself a use-site (VAR, DP0 or DP1): the binder
// cell value designates receives ARG(loc). No other primitive may
// overwrite a cell holding a VAR/DP back-edge without going through Link.
func (h *Heap) Link(loc Loc, value Link) {
	h.raw(loc, value)
	switch value.Tag() {
	case VAR, DP0:
		h.raw(value.Field(0), MakeLink(ARG, 0, 0, loc))
	case DP1:
		h.raw(value.Field(1), MakeLink(ARG, 0, 0, loc))
	}
}
