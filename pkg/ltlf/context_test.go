package ltlf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHashConsIdentity(t *testing.T) {
	t.Run("same atom interns to the same handle", func(t *testing.T) {
		c := NewContext(4)
		a1, err := c.Atom(0)
		if err != nil {
			t.Fatalf("Atom: %v", err)
		}
		a2, err := c.Atom(0)
		if err != nil {
			t.Fatalf("Atom: %v", err)
		}
		if a1 != a2 {
			t.Fatalf("expected identical handles, got %v and %v", a1, a2)
		}
	})

	t.Run("structurally equal conjunctions intern to the same handle", func(t *testing.T) {
		c := NewContext(4)
		a0, _ := c.Atom(0)
		a1, _ := c.Atom(1)
		lhs, err := c.And(a0, a1)
		if err != nil {
			t.Fatalf("And: %v", err)
		}
		rhs, err := c.And(a1, a0)
		if err != nil {
			t.Fatalf("And: %v", err)
		}
		if lhs != rhs {
			t.Fatalf("expected And(a0,a1) == And(a1,a0), got distinct handles")
		}
	})

	t.Run("foreign handle is rejected", func(t *testing.T) {
		c1 := NewContext(2)
		c2 := NewContext(2)
		a, _ := c1.Atom(0)
		if _, err := c2.Not(a); err == nil {
			t.Fatalf("expected InvalidArgument for a foreign handle, got nil error")
		}
	})
}

func TestNormalizationIdempotent(t *testing.T) {
	c := NewContext(3)
	a0, _ := c.Atom(0)
	a1, _ := c.Atom(1)
	a2, _ := c.Atom(2)

	flat, err := c.And(a0, a1, a2)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	nested, err := c.And(a0, mustAnd(t, c, a1, a2))
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	if flat != nested {
		t.Fatalf("expected flattening to make And(a0,a1,a2) == And(a0,And(a1,a2))")
	}
}

func TestAndOrIdentityAndAnnihilator(t *testing.T) {
	c := NewContext(2)
	a0, _ := c.Atom(0)

	withTrue, err := c.And(a0, c.True())
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	if withTrue != a0 {
		t.Fatalf("expected And(a0, true) == a0")
	}

	withFalse, err := c.And(a0, c.False())
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	if withFalse != c.False() {
		t.Fatalf("expected And(a0, false) == false")
	}

	orFalse, err := c.Or(a0, c.False())
	if err != nil {
		t.Fatalf("Or: %v", err)
	}
	if orFalse != a0 {
		t.Fatalf("expected Or(a0, false) == a0")
	}

	orTrue, err := c.Or(a0, c.True())
	if err != nil {
		t.Fatalf("Or: %v", err)
	}
	if orTrue != c.True() {
		t.Fatalf("expected Or(a0, true) == true")
	}
}

func TestDoubleNegationElimination(t *testing.T) {
	c := NewContext(2)
	a0, _ := c.Atom(0)
	n1, err := c.Not(a0)
	if err != nil {
		t.Fatalf("Not: %v", err)
	}
	n2, err := c.Not(n1)
	if err != nil {
		t.Fatalf("Not: %v", err)
	}
	if n2 != a0 {
		t.Fatalf("expected Not(Not(a0)) == a0")
	}
}

func TestEmptyAndOrRejected(t *testing.T) {
	c := NewContext(1)
	if _, err := c.And(); err == nil {
		t.Fatalf("expected InvalidArgument for And()")
	}
	if _, err := c.Or(); err == nil {
		t.Fatalf("expected InvalidArgument for Or()")
	}
}

func TestChildrenPreservesSortedOrder(t *testing.T) {
	c := NewContext(3)
	a0, _ := c.Atom(0)
	a1, _ := c.Atom(1)
	a2, _ := c.Atom(2)

	h, err := c.And(a2, a0, a1)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	got, err := c.Children(h)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	want := []Handle{a0, a1, a2}
	handleEq := cmp.Comparer(func(a, b Handle) bool { return a == b })
	if diff := cmp.Diff(want, got, handleEq); diff != "" {
		t.Errorf("And's children are not in canonical sorted order (-want +got):\n%s", diff)
	}
}

func mustAnd(t *testing.T, c *Context, a, b Handle) Handle {
	t.Helper()
	h, err := c.And(a, b)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	return h
}
