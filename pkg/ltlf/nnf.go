package ltlf

// ToNNF rewrites h into negation normal form: the result contains no Not,
// Implies, Equivalent, or Xor node, only True, False, Atom, PropNot, And,
// Or, and the temporal operators, with negation already pushed down to
// atoms. It is implemented as a pair of mutually recursive Visitors, one
// for positive polarity and one for negated polarity, each memoizing its
// own handle->handle map; this is the standard way to give a single-pass
// Accept-based Visitor two-sided behavior without adding a polarity
// parameter to the Visitor interface itself.
func ToNNF(c *Context, h Handle) (Handle, error) {
	pos := &nnfPos{memo: make(map[uint32]Handle)}
	neg := &nnfNeg{memo: make(map[uint32]Handle)}
	pos.neg = neg
	neg.pos = pos
	return pos.visit(c, h)
}

type nnfPos struct {
	neg  *nnfNeg
	memo map[uint32]Handle
}

func (p *nnfPos) visit(c *Context, h Handle) (Handle, error) {
	if r, ok := p.memo[h.id]; ok {
		return r, nil
	}
	r, err := Accept(c, h, p)
	if err != nil {
		return Handle{}, err
	}
	p.memo[h.id] = r
	return r, nil
}

func (p *nnfPos) VisitTrue(c *Context) (Handle, error)  { return c.True(), nil }
func (p *nnfPos) VisitFalse(c *Context) (Handle, error) { return c.False(), nil }
func (p *nnfPos) VisitAtom(c *Context, id AtomID) (Handle, error) { return c.Atom(id) }
func (p *nnfPos) VisitPropNot(c *Context, atom AtomID) (Handle, error) {
	a, err := c.Atom(atom)
	if err != nil {
		return Handle{}, err
	}
	return c.Not(a)
}
func (p *nnfPos) VisitNot(c *Context, child Handle) (Handle, error) { return p.neg.visit(c, child) }

func (p *nnfPos) VisitAnd(c *Context, children []Handle) (Handle, error) {
	return mapAnd(c, children, p.visit)
}
func (p *nnfPos) VisitOr(c *Context, children []Handle) (Handle, error) {
	return mapOr(c, children, p.visit)
}
func (p *nnfPos) VisitImplies(c *Context, a, b Handle) (Handle, error) {
	na, err := p.neg.visit(c, a)
	if err != nil {
		return Handle{}, err
	}
	pb, err := p.visit(c, b)
	if err != nil {
		return Handle{}, err
	}
	return c.Or(na, pb)
}
func (p *nnfPos) VisitEquivalent(c *Context, a, b Handle) (Handle, error) {
	return equivNNF(c, a, b, p.visit, p.neg.visit)
}
func (p *nnfPos) VisitXor(c *Context, a, b Handle) (Handle, error) {
	return xorNNF(c, a, b, p.visit, p.neg.visit)
}
func (p *nnfPos) VisitNext(c *Context, child Handle) (Handle, error) {
	r, err := p.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.Next(r)
}
func (p *nnfPos) VisitWeakNext(c *Context, child Handle) (Handle, error) {
	r, err := p.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.WeakNext(r)
}
func (p *nnfPos) VisitEventually(c *Context, child Handle) (Handle, error) {
	r, err := p.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.Eventually(r)
}
func (p *nnfPos) VisitAlways(c *Context, child Handle) (Handle, error) {
	r, err := p.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.Always(r)
}
func (p *nnfPos) VisitUntil(c *Context, a, b Handle) (Handle, error) {
	ra, rb, err := visitPair(c, a, b, p.visit)
	if err != nil {
		return Handle{}, err
	}
	return c.Until(ra, rb)
}
func (p *nnfPos) VisitRelease(c *Context, a, b Handle) (Handle, error) {
	ra, rb, err := visitPair(c, a, b, p.visit)
	if err != nil {
		return Handle{}, err
	}
	return c.Release(ra, rb)
}
func (p *nnfPos) VisitTaggedNext(c *Context, child Handle) (Handle, error) {
	r, err := p.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.TaggedNext(r)
}

type nnfNeg struct {
	pos  *nnfPos
	memo map[uint32]Handle
}

func (n *nnfNeg) visit(c *Context, h Handle) (Handle, error) {
	if r, ok := n.memo[h.id]; ok {
		return r, nil
	}
	r, err := Accept(c, h, n)
	if err != nil {
		return Handle{}, err
	}
	n.memo[h.id] = r
	return r, nil
}

func (n *nnfNeg) VisitTrue(c *Context) (Handle, error)  { return c.False(), nil }
func (n *nnfNeg) VisitFalse(c *Context) (Handle, error) { return c.True(), nil }
func (n *nnfNeg) VisitAtom(c *Context, id AtomID) (Handle, error) {
	a, err := c.Atom(id)
	if err != nil {
		return Handle{}, err
	}
	return c.Not(a)
}
func (n *nnfNeg) VisitPropNot(c *Context, atom AtomID) (Handle, error) { return c.Atom(atom) }
func (n *nnfNeg) VisitNot(c *Context, child Handle) (Handle, error)    { return n.pos.visit(c, child) }

func (n *nnfNeg) VisitAnd(c *Context, children []Handle) (Handle, error) {
	return mapOr(c, children, n.visit)
}
func (n *nnfNeg) VisitOr(c *Context, children []Handle) (Handle, error) {
	return mapAnd(c, children, n.visit)
}
func (n *nnfNeg) VisitImplies(c *Context, a, b Handle) (Handle, error) {
	pa, err := n.pos.visit(c, a)
	if err != nil {
		return Handle{}, err
	}
	nb, err := n.visit(c, b)
	if err != nil {
		return Handle{}, err
	}
	return c.And(pa, nb)
}
func (n *nnfNeg) VisitEquivalent(c *Context, a, b Handle) (Handle, error) {
	return xorNNF(c, a, b, n.pos.visit, n.visit)
}
func (n *nnfNeg) VisitXor(c *Context, a, b Handle) (Handle, error) {
	return equivNNF(c, a, b, n.pos.visit, n.visit)
}
func (n *nnfNeg) VisitNext(c *Context, child Handle) (Handle, error) {
	r, err := n.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.WeakNext(r) // !(X h) = W(!h)
}
func (n *nnfNeg) VisitWeakNext(c *Context, child Handle) (Handle, error) {
	r, err := n.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.Next(r) // !(W h) = X(!h)
}
func (n *nnfNeg) VisitEventually(c *Context, child Handle) (Handle, error) {
	r, err := n.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.Always(r) // !(F h) = G(!h)
}
func (n *nnfNeg) VisitAlways(c *Context, child Handle) (Handle, error) {
	r, err := n.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.Eventually(r) // !(G h) = F(!h)
}
func (n *nnfNeg) VisitUntil(c *Context, a, b Handle) (Handle, error) {
	ra, rb, err := visitPair(c, a, b, n.visit)
	if err != nil {
		return Handle{}, err
	}
	return c.Release(ra, rb) // !(a U b) = !a R !b
}
func (n *nnfNeg) VisitRelease(c *Context, a, b Handle) (Handle, error) {
	ra, rb, err := visitPair(c, a, b, n.visit)
	if err != nil {
		return Handle{}, err
	}
	return c.Until(ra, rb) // !(a R b) = !a U !b
}
func (n *nnfNeg) VisitTaggedNext(c *Context, child Handle) (Handle, error) {
	r, err := n.visit(c, child)
	if err != nil {
		return Handle{}, err
	}
	return c.TaggedNext(r)
}

type rewriteFn func(c *Context, h Handle) (Handle, error)

func mapAnd(c *Context, children []Handle, f rewriteFn) (Handle, error) {
	out, err := mapAll(c, children, f)
	if err != nil {
		return Handle{}, err
	}
	return c.And(out...)
}

func mapOr(c *Context, children []Handle, f rewriteFn) (Handle, error) {
	out, err := mapAll(c, children, f)
	if err != nil {
		return Handle{}, err
	}
	return c.Or(out...)
}

func mapAll(c *Context, children []Handle, f rewriteFn) ([]Handle, error) {
	out := make([]Handle, len(children))
	for i, ch := range children {
		r, err := f(c, ch)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func visitPair(c *Context, a, b Handle, f rewriteFn) (Handle, Handle, error) {
	ra, err := f(c, a)
	if err != nil {
		return Handle{}, Handle{}, err
	}
	rb, err := f(c, b)
	if err != nil {
		return Handle{}, Handle{}, err
	}
	return ra, rb, nil
}

// equivNNF builds the NNF of (a <-> b) given functions computing the NNF of
// a literal in positive (pos) and negated (neg) polarity.
func equivNNF(c *Context, a, b Handle, pos, neg rewriteFn) (Handle, error) {
	pa, err := pos(c, a)
	if err != nil {
		return Handle{}, err
	}
	pb, err := pos(c, b)
	if err != nil {
		return Handle{}, err
	}
	na, err := neg(c, a)
	if err != nil {
		return Handle{}, err
	}
	nb, err := neg(c, b)
	if err != nil {
		return Handle{}, err
	}
	left, err := c.And(pa, pb)
	if err != nil {
		return Handle{}, err
	}
	right, err := c.And(na, nb)
	if err != nil {
		return Handle{}, err
	}
	return c.Or(left, right)
}

// xorNNF builds the NNF of (a XOR b), the dual of equivNNF.
func xorNNF(c *Context, a, b Handle, pos, neg rewriteFn) (Handle, error) {
	pa, err := pos(c, a)
	if err != nil {
		return Handle{}, err
	}
	nb, err := neg(c, b)
	if err != nil {
		return Handle{}, err
	}
	na, err := neg(c, a)
	if err != nil {
		return Handle{}, err
	}
	pb, err := pos(c, b)
	if err != nil {
		return Handle{}, err
	}
	left, err := c.And(pa, nb)
	if err != nil {
		return Handle{}, err
	}
	right, err := c.And(na, pb)
	if err != nil {
		return Handle{}, err
	}
	return c.Or(left, right)
}
