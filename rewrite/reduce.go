// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"github.com/cznic/exp/calculus/heap"
	"github.com/cznic/exp/calculus/rules"
)

// Reduce drives the cell at host to weak-head normal form per spec.md
// §4.6: it loops, dereferencing host, and dispatches on the term's tag.
// The reducer recurses only along principal ports (the function of an
// APP, the scrutinee of a DP0/DP1); a rewrite either `continue`s (another
// redex may be revealed at the same host) or returns (the rewrite left
// non-principal work for the normaliser).
func (r *Reducer) Reduce(host heap.Loc) (heap.Link, error) {
	h := r.H
	for {
		term := h.Deref(host)
		switch term.Tag() {

		case heap.APP:
			fn, err := r.Reduce(term.Field(0))
			if err != nil {
				return 0, err
			}
			switch fn.Tag() {
			case heap.LAM:
				r.gas()
				h.Subst(h.Deref(fn.Field(0)), h.Deref(term.Field(1)))
				h.Link(host, h.Deref(fn.Field(1)))
				h.Clear(term.Field(0), 2)
				h.Clear(fn.Field(0), 2)
				continue
			case heap.PAR:
				r.gas()
				let0, err := h.Alloc(3)
				if err != nil {
					return 0, err
				}
				app0, err := h.Alloc(2)
				if err != nil {
					return 0, err
				}
				app1, err := h.Alloc(2)
				if err != nil {
					return 0, err
				}
				par0, err := h.Alloc(2)
				if err != nil {
					return 0, err
				}
				h.Link(let0+2, h.Deref(term.Field(1)))
				h.Link(app0+0, h.Deref(fn.Field(0)))
				h.Link(app0+1, heap.MakeLink(heap.DP0, fn.Ex0(), 0, let0))
				h.Link(app1+0, h.Deref(fn.Field(1)))
				h.Link(app1+1, heap.MakeLink(heap.DP1, fn.Ex0(), 0, let0))
				h.Link(par0+0, heap.MakeLink(heap.APP, 0, 0, app0))
				h.Link(par0+1, heap.MakeLink(heap.APP, 0, 0, app1))
				h.Link(host, heap.MakeLink(heap.PAR, fn.Ex0(), 0, par0))
				h.Clear(term.Field(0), 2)
				h.Clear(fn.Field(0), 2)
				return h.Deref(host), nil
			}
			return term, nil

		case heap.DP0, heap.DP1:
			isDP0 := term.Tag() == heap.DP0
			expr, err := r.Reduce(term.Field(2))
			if err != nil {
				return 0, err
			}
			switch expr.Tag() {
			case heap.LAM:
				r.gas()
				lam0, err := h.Alloc(2)
				if err != nil {
					return 0, err
				}
				lam1, err := h.Alloc(2)
				if err != nil {
					return 0, err
				}
				par0, err := h.Alloc(2)
				if err != nil {
					return 0, err
				}
				let0, err := h.Alloc(3)
				if err != nil {
					return 0, err
				}
				h.Link(lam0+1, heap.MakeLink(heap.DP0, term.Ex0(), 0, let0))
				h.Link(lam1+1, heap.MakeLink(heap.DP1, term.Ex0(), 0, let0))
				h.Link(par0+0, heap.MakeLink(heap.VAR, 0, 0, lam0))
				h.Link(par0+1, heap.MakeLink(heap.VAR, 0, 0, lam1))
				h.Link(let0+2, h.Deref(expr.Field(1)))
				h.Subst(h.Deref(term.Field(0)), heap.MakeLink(heap.LAM, 0, 0, lam0))
				h.Subst(h.Deref(term.Field(1)), heap.MakeLink(heap.LAM, 0, 0, lam1))
				h.Subst(h.Deref(expr.Field(0)), heap.MakeLink(heap.PAR, term.Ex0(), 0, par0))
				result := lam1
				if isDP0 {
					result = lam0
				}
				h.Link(host, heap.MakeLink(heap.LAM, 0, 0, result))
				h.Clear(term.Field(0), 3)
				h.Clear(expr.Field(0), 2)
				continue
			case heap.PAR:
				if term.Ex0() == expr.Ex0() {
					r.gas()
					h.Subst(h.Deref(term.Field(0)), h.Deref(expr.Field(0)))
					h.Subst(h.Deref(term.Field(1)), h.Deref(expr.Field(1)))
					out := expr.Field(1)
					if isDP0 {
						out = expr.Field(0)
					}
					h.Link(host, h.Deref(out))
					h.Clear(term.Field(0), 3)
					h.Clear(expr.Field(0), 2)
					continue
				}
				r.gas()
				par0, err := h.Alloc(2)
				if err != nil {
					return 0, err
				}
				par1, err := h.Alloc(2)
				if err != nil {
					return 0, err
				}
				let0, err := h.Alloc(3)
				if err != nil {
					return 0, err
				}
				let1, err := h.Alloc(3)
				if err != nil {
					return 0, err
				}
				h.Link(par0+0, heap.MakeLink(heap.DP0, term.Ex0(), 0, let0))
				h.Link(par0+1, heap.MakeLink(heap.DP0, term.Ex0(), 0, let1))
				h.Link(par1+0, heap.MakeLink(heap.DP1, term.Ex0(), 0, let0))
				h.Link(par1+1, heap.MakeLink(heap.DP1, term.Ex0(), 0, let1))
				h.Link(let0+2, h.Deref(expr.Field(0)))
				h.Link(let1+2, h.Deref(expr.Field(1)))
				h.Subst(h.Deref(term.Field(0)), heap.MakeLink(heap.PAR, expr.Ex0(), 0, par0))
				h.Subst(h.Deref(term.Field(1)), heap.MakeLink(heap.PAR, expr.Ex0(), 0, par1))
				out := par1
				if isDP0 {
					out = par0
				}
				h.Link(host, heap.MakeLink(heap.PAR, expr.Ex0(), 0, out))
				h.Clear(term.Field(0), 3)
				h.Clear(expr.Field(0), 2)
				return h.Deref(host), nil
			case heap.CTR:
				r.gas()
				funcID := expr.Ex0()
				arity := expr.Ex1()
				ctr0, err := h.Alloc(int(arity))
				if err != nil {
					return 0, err
				}
				ctr1, err := h.Alloc(int(arity))
				if err != nil {
					return 0, err
				}
				for i := 0; i < int(arity); i++ {
					leti, err := h.Alloc(3)
					if err != nil {
						return 0, err
					}
					h.Link(ctr0+heap.Loc(i), heap.MakeLink(heap.DP0, 0, 0, leti))
					h.Link(ctr1+heap.Loc(i), heap.MakeLink(heap.DP1, 0, 0, leti))
					h.Link(leti+2, h.Deref(expr.Field(i)))
				}
				h.Subst(h.Deref(term.Field(0)), heap.MakeLink(heap.CTR, funcID, arity, ctr0))
				h.Subst(h.Deref(term.Field(1)), heap.MakeLink(heap.CTR, funcID, arity, ctr1))
				out := ctr1
				if isDP0 {
					out = ctr0
				}
				h.Link(host, heap.MakeLink(heap.CTR, funcID, arity, out))
				h.Clear(term.Field(0), 3)
				h.Clear(expr.Field(0), int(arity))
				return h.Deref(host), nil
			}
			return term, nil

		case heap.CAL:
			result, fired, err := r.dispatchCAL(host, term)
			if err != nil {
				return 0, err
			}
			if fired {
				continue
			}
			return result, nil

		default:
			return term, nil
		}
	}
}

// dispatchCAL tries each Case of term's function id, in order, against the
// term's argument positions, per spec.md §4.6's rule dispatch constraints:
// an argument is reduced at most to weak-head normal form, and only if
// some case actually inspects it. If no case matches, the CAL is left
// stuck and returned as-is (not an error, per spec.md §7).
func (r *Reducer) dispatchCAL(host heap.Loc, term heap.Link) (result heap.Link, fired bool, err error) {
	if r.Dispatch == nil {
		return term, false, nil
	}
	cases, ok := r.Dispatch.Dispatch(term.Ex0())
	if !ok {
		return term, false, nil
	}

	reduced := map[int]heap.Link{}
	reduceField := func(pos int) (heap.Link, error) {
		if v, ok := reduced[pos]; ok {
			return v, nil
		}
		v, err := r.Reduce(term.Field(pos))
		if err != nil {
			return 0, err
		}
		reduced[pos] = v
		return v, nil
	}

	matched := -1
caseLoop:
	for ci, c := range cases {
		for pos, pat := range c.Patterns {
			if pat.Any {
				continue
			}
			v, err := reduceField(pos)
			if err != nil {
				return 0, false, err
			}
			if v.Tag() != heap.CTR || v.Ex0() != pat.ID || v.Ex1() != pat.Arity {
				continue caseLoop
			}
		}
		matched = ci
		break
	}
	if matched < 0 {
		return term, false, nil
	}

	r.gas()
	tx := &rules.Tx{H: r.H, R: r, Host: host, Term: term}
	cases[matched].Build(tx)
	if tx.Err != nil {
		return 0, false, tx.Err
	}
	return 0, true, nil
}
