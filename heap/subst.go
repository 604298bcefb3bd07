// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Subst resolves a binder's use-site per spec.md §4.5: if binder still has
// a live consumer (binder.Tag() != NIL), that consumer's cell is linked to
// value, repairing back-edges if value is itself a use-site. Otherwise the
// binder was unused and value is garbage, so it is collected.
func (h *Heap) Subst(binder Link, value Link) {
	if binder.Tag() != NIL {
		h.Link(binder.Field(0), value)
	} else {
		h.Collect(value, 0)
	}
}
