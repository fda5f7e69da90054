package ltlf

// Simplify recursively rewrites h, folding constant operands of the
// temporal operators (And/Or constant folding already happens for free at
// intern time, via Context's own canonicalization). It is idempotent:
// simplifying an already-simplified formula returns the same handle.
func Simplify(c *Context, h Handle) (Handle, error) {
	s := &simplifyVisitor{memo: make(map[uint32]Handle)}
	return s.visit(c, h)
}

type simplifyVisitor struct {
	memo map[uint32]Handle
}

func (s *simplifyVisitor) visit(c *Context, h Handle) (Handle, error) {
	if r, ok := s.memo[h.id]; ok {
		return r, nil
	}
	r, err := Accept(c, h, s)
	if err != nil {
		return Handle{}, err
	}
	s.memo[h.id] = r
	return r, nil
}

func (s *simplifyVisitor) VisitTrue(c *Context) (Handle, error)  { return c.True(), nil }
func (s *simplifyVisitor) VisitFalse(c *Context) (Handle, error) { return c.False(), nil }
func (s *simplifyVisitor) VisitAtom(c *Context, id AtomID) (Handle, error) { return c.Atom(id) }
func (s *simplifyVisitor) VisitPropNot(c *Context, atom AtomID) (Handle, error) {
	a, err := c.Atom(atom)
	if err != nil {
		return Handle{}, err
	}
	return c.Not(a)
}

func (s *simplifyVisitor) VisitNot(c *Context, child Handle) (Handle, error) {
	r, err := s.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.Not(r)
}

func (s *simplifyVisitor) VisitAnd(c *Context, children []Handle) (Handle, error) {
	out, err := mapAll(c, children, s.visit)
	if err != nil {
		return Handle{}, err
	}
	return c.And(out...)
}

func (s *simplifyVisitor) VisitOr(c *Context, children []Handle) (Handle, error) {
	out, err := mapAll(c, children, s.visit)
	if err != nil {
		return Handle{}, err
	}
	return c.Or(out...)
}

func (s *simplifyVisitor) VisitImplies(c *Context, a, b Handle) (Handle, error) {
	ra, rb, err := visitPair(c, a, b, s.visit)
	if err != nil {
		return Handle{}, err
	}
	if ra.id == c.falseH.id || rb.id == c.trueH.id {
		return c.True(), nil
	}
	if ra.id == c.trueH.id {
		return rb, nil
	}
	return c.Implies(ra, rb)
}

func (s *simplifyVisitor) VisitEquivalent(c *Context, a, b Handle) (Handle, error) {
	ra, rb, err := visitPair(c, a, b, s.visit)
	if err != nil {
		return Handle{}, err
	}
	if ra.id == rb.id {
		return c.True(), nil
	}
	return c.Equivalent(ra, rb)
}

func (s *simplifyVisitor) VisitXor(c *Context, a, b Handle) (Handle, error) {
	ra, rb, err := visitPair(c, a, b, s.visit)
	if err != nil {
		return Handle{}, err
	}
	if ra.id == rb.id {
		return c.False(), nil
	}
	return c.Xor(ra, rb)
}

func (s *simplifyVisitor) VisitNext(c *Context, child Handle) (Handle, error) {
	r, err := s.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	if r.id == c.falseH.id {
		return c.False(), nil
	}
	return c.Next(r)
}

func (s *simplifyVisitor) VisitWeakNext(c *Context, child Handle) (Handle, error) {
	r, err := s.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	if r.id == c.trueH.id {
		return c.True(), nil
	}
	return c.WeakNext(r)
}

func (s *simplifyVisitor) VisitEventually(c *Context, child Handle) (Handle, error) {
	r, err := s.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	if r.id == c.trueH.id {
		return c.True(), nil
	}
	if r.id == c.falseH.id {
		return c.False(), nil
	}
	return c.Eventually(r)
}

func (s *simplifyVisitor) VisitAlways(c *Context, child Handle) (Handle, error) {
	r, err := s.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	if r.id == c.trueH.id {
		return c.True(), nil
	}
	if r.id == c.falseH.id {
		return c.False(), nil
	}
	return c.Always(r)
}

func (s *simplifyVisitor) VisitUntil(c *Context, a, b Handle) (Handle, error) {
	ra, rb, err := visitPair(c, a, b, s.visit)
	if err != nil {
		return Handle{}, err
	}
	if rb.id == c.trueH.id {
		return c.True(), nil
	}
	if rb.id == c.falseH.id {
		return c.False(), nil
	}
	if ra.id == c.falseH.id {
		return rb, nil
	}
	return c.Until(ra, rb)
}

func (s *simplifyVisitor) VisitRelease(c *Context, a, b Handle) (Handle, error) {
	ra, rb, err := visitPair(c, a, b, s.visit)
	if err != nil {
		return Handle{}, err
	}
	if rb.id == c.falseH.id {
		return c.False(), nil
	}
	if rb.id == c.trueH.id {
		return c.True(), nil
	}
	if ra.id == c.trueH.id {
		// true releases rb immediately: only the current step's rb matters.
		return rb, nil
	}
	if ra.id == c.falseH.id {
		return c.Always(rb)
	}
	return c.Release(ra, rb)
}

func (s *simplifyVisitor) VisitTaggedNext(c *Context, child Handle) (Handle, error) {
	r, err := s.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.TaggedNext(r)
}
