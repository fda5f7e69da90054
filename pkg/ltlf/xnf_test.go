package ltlf

import "testing"

func allowedXNFTags() map[NodeTag]bool {
	return map[NodeTag]bool{
		TagTrue: true, TagFalse: true, TagAtom: true, TagPropNot: true,
		TagAnd: true, TagOr: true, TagTaggedNext: true,
	}
}

func assertXNFShape(t *testing.T, c *Context, h Handle) {
	t.Helper()
	tag, err := c.Tag(h)
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if !allowedXNFTags()[tag] {
		t.Fatalf("unexpected tag %v in XNF output", tag)
	}
	if tag == TagTaggedNext {
		return // residual formula is not itself required to be in XNF
	}
	children, err := c.Children(h)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	for _, ch := range children {
		assertXNFShape(t, c, ch)
	}
}

func TestXNFTotality(t *testing.T) {
	c := NewContext(2)
	a0, _ := c.Atom(0)
	a1, _ := c.Atom(1)

	formulas := []func() (Handle, error){
		func() (Handle, error) { return c.Next(a0) },
		func() (Handle, error) { return c.WeakNext(a0) },
		func() (Handle, error) { return c.Eventually(a0) },
		func() (Handle, error) { return c.Always(a0) },
		func() (Handle, error) { return c.Until(a0, a1) },
		func() (Handle, error) { return c.Release(a0, a1) },
	}
	for i, build := range formulas {
		f, err := build()
		if err != nil {
			t.Fatalf("case %d: build: %v", i, err)
		}
		n, err := ToNNF(c, f)
		if err != nil {
			t.Fatalf("case %d: ToNNF: %v", i, err)
		}
		x, err := XNF(c, n)
		if err != nil {
			t.Fatalf("case %d: XNF: %v", i, err)
		}
		assertXNFShape(t, c, x)
	}
}

func TestXNFRejectsNonNNFInput(t *testing.T) {
	c := NewContext(2)
	a0, _ := c.Atom(0)
	a1, _ := c.Atom(1)
	imp, _ := c.Implies(a0, a1)
	if _, err := XNF(c, imp); err == nil {
		t.Fatalf("expected XNF to reject an Implies node")
	}
}

// evalXNF evaluates an XNF-shaped formula under one step's atom assignment
// (absent atoms are false), the end flag, and a valuation of the TaggedNext
// residuals.
func evalXNF(t *testing.T, c *Context, h Handle, assign map[AtomID]bool, end bool, residual map[Handle]bool) bool {
	t.Helper()
	tag, err := c.Tag(h)
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	value := func(id AtomID) bool {
		if id == c.EndAtomID() {
			return end
		}
		return assign[id]
	}
	switch tag {
	case TagTrue:
		return true
	case TagFalse:
		return false
	case TagAtom, TagPropNot:
		id, err := c.AtomOf(h)
		if err != nil {
			t.Fatalf("AtomOf: %v", err)
		}
		if tag == TagPropNot {
			return !value(id)
		}
		return value(id)
	case TagAnd, TagOr:
		children, err := c.Children(h)
		if err != nil {
			t.Fatalf("Children: %v", err)
		}
		for _, ch := range children {
			v := evalXNF(t, c, ch, assign, end, residual)
			if tag == TagAnd && !v {
				return false
			}
			if tag == TagOr && v {
				return true
			}
		}
		return tag == TagAnd
	case TagTaggedNext:
		children, err := c.Children(h)
		if err != nil {
			t.Fatalf("Children: %v", err)
		}
		return residual[children[0]]
	default:
		t.Fatalf("evalXNF: non-XNF tag %v", tag)
		return false
	}
}

func TestXNFOneStepSemantics(t *testing.T) {
	// a U b at one step: satisfied now by b, or deferred via a plus the
	// residual when a later step exists.
	c := NewContext(2)
	a, _ := c.Atom(0)
	b, _ := c.Atom(1)
	u, err := c.Until(a, b)
	if err != nil {
		t.Fatalf("Until: %v", err)
	}
	x, err := XNF(c, u)
	if err != nil {
		t.Fatalf("XNF: %v", err)
	}

	cases := []struct {
		name     string
		assign   map[AtomID]bool
		end      bool
		residual bool
		want     bool
	}{
		{"b now, last step", map[AtomID]bool{1: true}, true, false, true},
		{"a now, deferred to residual", map[AtomID]bool{0: true}, false, true, true},
		{"a now but no later step", map[AtomID]bool{0: true}, true, true, false},
		{"a now, residual never discharged", map[AtomID]bool{0: true}, false, false, false},
		{"neither a nor b", map[AtomID]bool{}, false, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := evalXNF(t, c, x, tc.assign, tc.end, map[Handle]bool{u: tc.residual})
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestXNFUntilUnfolding(t *testing.T) {
	// xnf(a U b) = xnf(b) | (xnf(a) & !end & next(a U b))
	c := NewContext(2)
	a0, _ := c.Atom(0)
	a1, _ := c.Atom(1)
	f, err := c.Until(a0, a1)
	if err != nil {
		t.Fatalf("Until: %v", err)
	}
	x, err := XNF(c, f)
	if err != nil {
		t.Fatalf("XNF: %v", err)
	}
	tag, err := c.Tag(x)
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if tag != TagOr {
		t.Fatalf("expected top-level Or, got %v", tag)
	}
	children, err := c.Children(x)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	foundAtom, foundAnd := false, false
	for _, ch := range children {
		ctag, _ := c.Tag(ch)
		switch ctag {
		case TagAtom:
			foundAtom = true
		case TagAnd:
			foundAnd = true
		}
	}
	if !foundAtom || !foundAnd {
		t.Fatalf("expected Or(b, And(a, !end, next(aUb))), got children %+v", children)
	}
}
