package ltlf

// XNF rewrites an NNF formula into next-normal form: a Boolean combination
// of True, False, Atom, PropNot, And, Or, and TaggedNext leaves. A
// TaggedNext leaf's child is the original (not yet XNF'd) residual formula
// that must hold at the following step, if one exists; the forward search
// (pkg/game) re-applies ToNNF+XNF to that residual when it advances to the
// next game state. end is the Context's reserved EndAtom, true exactly when
// the current step is the last one in the trace.
//
// XNF requires its input to already be in negation normal form: Not,
// Implies, Equivalent, and Xor nodes are rejected with InvalidArgument.
func XNF(c *Context, h Handle) (Handle, error) {
	x := &xnfVisitor{memo: make(map[uint32]Handle)}
	return x.visit(c, h)
}

type xnfVisitor struct {
	memo map[uint32]Handle
}

func (x *xnfVisitor) visit(c *Context, h Handle) (Handle, error) {
	if r, ok := x.memo[h.id]; ok {
		return r, nil
	}
	r, err := Accept(c, h, x)
	if err != nil {
		return Handle{}, err
	}
	x.memo[h.id] = r
	return r, nil
}

func (x *xnfVisitor) VisitTrue(c *Context) (Handle, error)  { return c.True(), nil }
func (x *xnfVisitor) VisitFalse(c *Context) (Handle, error) { return c.False(), nil }
func (x *xnfVisitor) VisitAtom(c *Context, id AtomID) (Handle, error) { return c.Atom(id) }
func (x *xnfVisitor) VisitPropNot(c *Context, atom AtomID) (Handle, error) {
	a, err := c.Atom(atom)
	if err != nil {
		return Handle{}, err
	}
	return c.Not(a)
}

func (x *xnfVisitor) VisitNot(c *Context, child Handle) (Handle, error) {
	return Handle{}, newError(InvalidArgument, "XNF: input is not in negation normal form (found Not); call ToNNF first")
}
func (x *xnfVisitor) VisitImplies(c *Context, a, b Handle) (Handle, error) {
	return Handle{}, newError(InvalidArgument, "XNF: input is not in negation normal form (found Implies); call ToNNF first")
}
func (x *xnfVisitor) VisitEquivalent(c *Context, a, b Handle) (Handle, error) {
	return Handle{}, newError(InvalidArgument, "XNF: input is not in negation normal form (found Equivalent); call ToNNF first")
}
func (x *xnfVisitor) VisitXor(c *Context, a, b Handle) (Handle, error) {
	return Handle{}, newError(InvalidArgument, "XNF: input is not in negation normal form (found Xor); call ToNNF first")
}

func (x *xnfVisitor) VisitAnd(c *Context, children []Handle) (Handle, error) {
	out, err := mapAll(c, children, x.visit)
	if err != nil {
		return Handle{}, err
	}
	return c.And(out...)
}

func (x *xnfVisitor) VisitOr(c *Context, children []Handle) (Handle, error) {
	out, err := mapAll(c, children, x.visit)
	if err != nil {
		return Handle{}, err
	}
	return c.Or(out...)
}

func (x *xnfVisitor) notEnd(c *Context) (Handle, error) {
	end, err := c.EndAtom()
	if err != nil {
		return Handle{}, err
	}
	return c.Not(end)
}

// VisitNext: xnf(X phi) = !end & next(phi)
func (x *xnfVisitor) VisitNext(c *Context, child Handle) (Handle, error) {
	ne, err := x.notEnd(c)
	if err != nil {
		return Handle{}, err
	}
	tn, err := c.TaggedNext(child)
	if err != nil {
		return Handle{}, err
	}
	return c.And(ne, tn)
}

// VisitWeakNext: xnf(WX phi) = end | next(phi)
func (x *xnfVisitor) VisitWeakNext(c *Context, child Handle) (Handle, error) {
	end, err := c.EndAtom()
	if err != nil {
		return Handle{}, err
	}
	tn, err := c.TaggedNext(child)
	if err != nil {
		return Handle{}, err
	}
	return c.Or(end, tn)
}

// VisitEventually: xnf(F phi) = xnf(phi) | (!end & next(F phi))
func (x *xnfVisitor) VisitEventually(c *Context, child Handle) (Handle, error) {
	now, err := x.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	self, err := c.Eventually(child)
	if err != nil {
		return Handle{}, err
	}
	ne, err := x.notEnd(c)
	if err != nil {
		return Handle{}, err
	}
	tn, err := c.TaggedNext(self)
	if err != nil {
		return Handle{}, err
	}
	rest, err := c.And(ne, tn)
	if err != nil {
		return Handle{}, err
	}
	return c.Or(now, rest)
}

// VisitAlways: xnf(G phi) = xnf(phi) & (end | next(G phi))
func (x *xnfVisitor) VisitAlways(c *Context, child Handle) (Handle, error) {
	now, err := x.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	self, err := c.Always(child)
	if err != nil {
		return Handle{}, err
	}
	end, err := c.EndAtom()
	if err != nil {
		return Handle{}, err
	}
	tn, err := c.TaggedNext(self)
	if err != nil {
		return Handle{}, err
	}
	rest, err := c.Or(end, tn)
	if err != nil {
		return Handle{}, err
	}
	return c.And(now, rest)
}

// VisitUntil: xnf(a U b) = xnf(b) | (xnf(a) & !end & next(a U b))
func (x *xnfVisitor) VisitUntil(c *Context, a, b Handle) (Handle, error) {
	xa, err := x.visit(c, a)
	if err != nil {
		return Handle{}, err
	}
	xb, err := x.visit(c, b)
	if err != nil {
		return Handle{}, err
	}
	self, err := c.Until(a, b)
	if err != nil {
		return Handle{}, err
	}
	ne, err := x.notEnd(c)
	if err != nil {
		return Handle{}, err
	}
	tn, err := c.TaggedNext(self)
	if err != nil {
		return Handle{}, err
	}
	cont, err := c.And(xa, ne, tn)
	if err != nil {
		return Handle{}, err
	}
	return c.Or(xb, cont)
}

// VisitRelease: xnf(a R b) = xnf(b) & (xnf(a) | end | next(a R b))
func (x *xnfVisitor) VisitRelease(c *Context, a, b Handle) (Handle, error) {
	xa, err := x.visit(c, a)
	if err != nil {
		return Handle{}, err
	}
	xb, err := x.visit(c, b)
	if err != nil {
		return Handle{}, err
	}
	self, err := c.Release(a, b)
	if err != nil {
		return Handle{}, err
	}
	end, err := c.EndAtom()
	if err != nil {
		return Handle{}, err
	}
	tn, err := c.TaggedNext(self)
	if err != nil {
		return Handle{}, err
	}
	cont, err := c.Or(xa, end, tn)
	if err != nil {
		return Handle{}, err
	}
	return c.And(xb, cont)
}

func (x *xnfVisitor) VisitTaggedNext(c *Context, child Handle) (Handle, error) {
	return c.TaggedNext(child)
}
