// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"testing"

	"github.com/cznic/exp/calculus/heap"
	"github.com/cznic/exp/calculus/rules"
)

// (λx. x) (λy. y) reduces to λy. y in a single β step.
func TestReduceIdentityApplication(t *testing.T) {
	h := heap.NewHeap(heap.Options{})

	lamX, err := h.Alloc(2)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(lamX+1, heap.MakeLink(heap.VAR, 0, 0, lamX))

	lamY, err := h.Alloc(2)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(lamY+1, heap.MakeLink(heap.VAR, 0, 0, lamY))

	app, err := h.Alloc(2)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(app+0, heap.MakeLink(heap.LAM, 0, 0, lamX))
	h.Link(app+1, heap.MakeLink(heap.LAM, 0, 0, lamY))

	host, err := h.Alloc(1)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(host, heap.MakeLink(heap.APP, 0, 0, app))

	r := NewReducer(h, nil)
	result, err := r.Reduce(host)
	if err != nil {
		t.Fatal(err)
	}

	if g, e := result.Tag(), heap.LAM; g != e {
		t.Fatal(g, e)
	}
	if g, e := result.Pos(), lamY; g != e {
		t.Fatal(g, e)
	}
	if g, e := r.RewriteCnt, int64(1); g != e {
		t.Fatal(g, e)
	}
}

// A CAL whose argument reduces but whose case guards never match stays
// stuck at the CAL: the argument is still brought to weak-head normal
// form as a side effect of pattern matching, but the CAL itself is
// returned unfired.
func TestReduceStuckCallStillReducesArgument(t *testing.T) {
	h := heap.NewHeap(heap.Options{})

	lamX, err := h.Alloc(2)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(lamX+1, heap.MakeLink(heap.VAR, 0, 0, lamX))

	app, err := h.Alloc(2)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(app+0, heap.MakeLink(heap.LAM, 0, 0, lamX))
	h.Link(app+1, heap.MakeLink(heap.CTR, 9, 0, 0))

	calArgs, err := h.Alloc(1)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(calArgs, heap.MakeLink(heap.APP, 0, 0, app))

	host, err := h.Alloc(1)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(host, heap.MakeLink(heap.CAL, 4, 1, calArgs))

	table := rules.Table{
		4: {{Patterns: []rules.Pattern{rules.CtrPattern(5, 0)}}},
	}
	r := NewReducer(h, table)
	result, err := r.Reduce(host)
	if err != nil {
		t.Fatal(err)
	}

	if g, e := result.Tag(), heap.CAL; g != e {
		t.Fatal(g, e)
	}
	if g, e := result.Ex0(), byte(4); g != e {
		t.Fatal(g, e)
	}
	if g, e := r.RewriteCnt, int64(1); g != e {
		t.Fatal(g, e)
	}

	arg := h.Deref(calArgs)
	if g, e := arg.Tag(), heap.CTR; g != e {
		t.Fatal(g, e)
	}
	if g, e := arg.Ex0(), byte(9); g != e {
		t.Fatal(g, e)
	}
}

// A duplicator over a constructor splits it into two copies; when one
// output is never consumed the corresponding copy is collected instead of
// wired anywhere.
func TestReduceDP0OverCTRDuplicatesConstant(t *testing.T) {
	h := heap.NewHeap(heap.Options{})

	let, err := h.Alloc(3)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(let+2, heap.MakeLink(heap.CTR, 9, 0, 0))
	// let+1 (the DP1 output's back-edge) is left NIL: unused.

	host, err := h.Alloc(1)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(host, heap.MakeLink(heap.DP0, 0, 0, let))

	r := NewReducer(h, nil)
	result, err := r.Reduce(host)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := result.Tag(), heap.CTR; g != e {
		t.Fatal(g, e)
	}
	if g, e := result.Ex0(), byte(9); g != e {
		t.Fatal(g, e)
	}
	if g, e := r.RewriteCnt, int64(1); g != e {
		t.Fatal(g, e)
	}
}

// A duplicator over an abstraction pushes the fan inside: the result is a
// fresh abstraction whose body is itself a duplicator over the original
// body, rather than a plain copy of the lambda.
func TestReduceDPOverLAMDuplicatesAbstraction(t *testing.T) {
	h := heap.NewHeap(heap.Options{})

	const label = 3
	lamOrig, err := h.Alloc(2)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(lamOrig+1, heap.MakeLink(heap.VAR, 0, 0, lamOrig))

	let, err := h.Alloc(3)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(let+2, heap.MakeLink(heap.LAM, 0, 0, lamOrig))
	// let+1 (the DP1 output's back-edge) is left NIL: unused.

	host, err := h.Alloc(1)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(host, heap.MakeLink(heap.DP0, label, 0, let))

	r := NewReducer(h, nil)
	result, err := r.Reduce(host)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := result.Tag(), heap.LAM; g != e {
		t.Fatal(g, e)
	}
	if g, e := r.RewriteCnt, int64(1); g != e {
		t.Fatal(g, e)
	}

	body := h.Deref(result.Field(1))
	if g, e := body.Tag(), heap.DP0; g != e {
		t.Fatal(g, e)
	}
	if g, e := body.Ex0(), byte(label); g != e {
		t.Fatal(g, e)
	}
}

// A duplicator over a fan carrying a different label commutes: the fan
// survives at the root, and each of its two branches is now duplicated
// separately, per fan commutation symmetry (L != M).
func TestReduceDPOverParDifferentLabelCommutes(t *testing.T) {
	h := heap.NewHeap(heap.Options{})

	const labelL, labelM = 2, 7
	parAB, err := h.Alloc(2)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(parAB+0, heap.MakeLink(heap.CTR, 11, 0, 0))
	h.Link(parAB+1, heap.MakeLink(heap.CTR, 12, 0, 0))

	let, err := h.Alloc(3)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(let+2, heap.MakeLink(heap.PAR, labelM, 0, parAB))

	host, err := h.Alloc(1)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(host, heap.MakeLink(heap.DP0, labelL, 0, let))

	r := NewReducer(h, nil)
	result, err := r.Reduce(host)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := result.Tag(), heap.PAR; g != e {
		t.Fatal(g, e)
	}
	if g, e := result.Ex0(), byte(labelM); g != e {
		t.Fatal(g, e)
	}
	if g, e := r.RewriteCnt, int64(1); g != e {
		t.Fatal(g, e)
	}

	d0 := h.Deref(result.Field(0))
	if g, e := d0.Tag(), heap.DP0; g != e {
		t.Fatal(g, e)
	}
	if g, e := d0.Ex0(), byte(labelL); g != e {
		t.Fatal(g, e)
	}
	if g, e := h.Deref(d0.Field(2)).Ex0(), byte(11); g != e {
		t.Fatal(g, e)
	}

	d1 := h.Deref(result.Field(1))
	if g, e := d1.Tag(), heap.DP0; g != e {
		t.Fatal(g, e)
	}
	if g, e := d1.Ex0(), byte(labelL); g != e {
		t.Fatal(g, e)
	}
	if g, e := h.Deref(d1.Field(2)).Ex0(), byte(12); g != e {
		t.Fatal(g, e)
	}
}

// A duplicator over a fan carrying the same label annihilates: each
// output picks up the matching branch directly, no new fan is created.
func TestReduceDPOverMatchingParAnnihilates(t *testing.T) {
	h := heap.NewHeap(heap.Options{})

	const label = 5
	par, err := h.Alloc(2)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(par+0, heap.MakeLink(heap.CTR, 1, 0, 0))
	h.Link(par+1, heap.MakeLink(heap.CTR, 2, 0, 0))

	let, err := h.Alloc(3)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(let+2, heap.MakeLink(heap.PAR, label, 0, par))

	host, err := h.Alloc(1)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(host, heap.MakeLink(heap.DP0, label, 0, let))

	r := NewReducer(h, nil)
	result, err := r.Reduce(host)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := result.Tag(), heap.CTR; g != e {
		t.Fatal(g, e)
	}
	if g, e := result.Ex0(), byte(1); g != e {
		t.Fatal(g, e)
	}
	if g, e := r.RewriteCnt, int64(1); g != e {
		t.Fatal(g, e)
	}
}

// An application whose function position is a fan distributes the
// application over both branches, producing a new fan at the root
// instead of continuing the weak-head loop at the same host.
func TestReduceAPPOverParDistributes(t *testing.T) {
	h := heap.NewHeap(heap.Options{})

	const label = 6
	parFn, err := h.Alloc(2)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(parFn+0, heap.MakeLink(heap.CTR, 3, 0, 0))
	h.Link(parFn+1, heap.MakeLink(heap.CTR, 4, 0, 0))

	app, err := h.Alloc(2)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(app+0, heap.MakeLink(heap.PAR, label, 0, parFn))
	h.Link(app+1, heap.MakeLink(heap.CTR, 8, 0, 0))

	host, err := h.Alloc(1)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(host, heap.MakeLink(heap.APP, 0, 0, app))

	r := NewReducer(h, nil)
	result, err := r.Reduce(host)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := result.Tag(), heap.PAR; g != e {
		t.Fatal(g, e)
	}
	if g, e := result.Ex0(), byte(label); g != e {
		t.Fatal(g, e)
	}
	if g, e := r.RewriteCnt, int64(1); g != e {
		t.Fatal(g, e)
	}
}

// With no Dispatcher at all, a CAL is inert: no field is touched, no gas
// is spent.
func TestReduceCALWithNilDispatcherIsInert(t *testing.T) {
	h := heap.NewHeap(heap.Options{})
	calArgs, err := h.Alloc(1)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(calArgs, heap.MakeLink(heap.CTR, 1, 0, 0))

	host, err := h.Alloc(1)
	if err != nil {
		t.Fatal(err)
	}
	h.Link(host, heap.MakeLink(heap.CAL, 7, 1, calArgs))

	r := NewReducer(h, nil)
	result, err := r.Reduce(host)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := result.Tag(), heap.CAL; g != e {
		t.Fatal(g, e)
	}
	if g, e := r.RewriteCnt, int64(0); g != e {
		t.Fatal(g, e)
	}
}
