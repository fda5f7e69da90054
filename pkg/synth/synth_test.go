package synth

import (
	"context"
	"testing"

	"github.com/cynthia-ltlf/cynthia/pkg/ltlf"
)

// scenario builds an LTLf formula over a fresh Context with a known number
// of atoms and a known input/output partition, and names the realizability
// verdict this engine is expected to produce for it.
type scenario struct {
	name    string
	numAtom int
	x, y    ltlf.AtomSet
	build   func(c *ltlf.Context) (ltlf.Handle, error)
	want    bool
}

func scenarios() []scenario {
	return []scenario{
		{
			name: "constant true is trivially realizable",
			x:    ltlf.NewAtomSet(), y: ltlf.NewAtomSet(),
			build: func(c *ltlf.Context) (ltlf.Handle, error) { return c.True(), nil },
			want:  true,
		},
		{
			name: "constant false is trivially unrealizable",
			x:    ltlf.NewAtomSet(), y: ltlf.NewAtomSet(),
			build: func(c *ltlf.Context) (ltlf.Handle, error) { return c.False(), nil },
			want:  false,
		},
		{
			name:    "F y1 is realizable: the controller sets y1 on the first step",
			numAtom: 1,
			x:       ltlf.NewAtomSet(), y: ltlf.NewAtomSet(0),
			build: func(c *ltlf.Context) (ltlf.Handle, error) {
				y1, _ := c.Atom(0)
				return c.Eventually(y1)
			},
			want: true,
		},
		{
			name:    "x1 -> WX y1 is realizable: weak next is vacuous at trace end",
			numAtom: 2,
			x:       ltlf.NewAtomSet(1), y: ltlf.NewAtomSet(0),
			build: func(c *ltlf.Context) (ltlf.Handle, error) {
				y1, _ := c.Atom(0)
				x1, _ := c.Atom(1)
				wn, err := c.WeakNext(y1)
				if err != nil {
					return ltlf.Handle{}, err
				}
				return c.Implies(x1, wn)
			},
			want: true,
		},
		{
			name:    "G y1 is realizable: the controller holds y1 and ends the trace at once",
			numAtom: 1,
			x:       ltlf.NewAtomSet(), y: ltlf.NewAtomSet(0),
			build: func(c *ltlf.Context) (ltlf.Handle, error) {
				y1, _ := c.Atom(0)
				return c.Always(y1)
			},
			want: true,
		},
		{
			name:    "G y1 & F !y1 is unrealizable: no stopping point satisfies both",
			numAtom: 1,
			x:       ltlf.NewAtomSet(), y: ltlf.NewAtomSet(0),
			build: func(c *ltlf.Context) (ltlf.Handle, error) {
				y1, _ := c.Atom(0)
				g, err := c.Always(y1)
				if err != nil {
					return ltlf.Handle{}, err
				}
				ny1, err := c.Not(y1)
				if err != nil {
					return ltlf.Handle{}, err
				}
				f, err := c.Eventually(ny1)
				if err != nil {
					return ltlf.Handle{}, err
				}
				return c.And(g, f)
			},
			want: false, // the only move keeping both conjuncts alive re-derives
			// the same state, an on-stack cycle, which resolves to Lose: the
			// controller must force a satisfying stop, never win by stalling.
		},
		{
			name:    "y1 U x1 is unrealizable: the controller cannot force the environment to raise x1",
			numAtom: 2,
			x:       ltlf.NewAtomSet(1), y: ltlf.NewAtomSet(0),
			build: func(c *ltlf.Context) (ltlf.Handle, error) {
				y1, _ := c.Atom(0)
				x1, _ := c.Atom(1)
				return c.Until(y1, x1)
			},
			want: false,
		},
	}
}

func TestScenarioTable(t *testing.T) {
	for _, s := range scenarios() {
		t.Run(s.name, func(t *testing.T) {
			c := ltlf.NewContext(s.numAtom)
			phi, err := s.build(c)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			got, err := Synthesize(context.Background(), c, phi, s.x, s.y)
			if err != nil {
				t.Fatalf("Synthesize: %v", err)
			}
			if got != s.want {
				t.Fatalf("expected realizable=%v, got %v", s.want, got)
			}
		})
	}
}

func TestCheckDualAgreesOnEveryScenario(t *testing.T) {
	for _, s := range scenarios() {
		t.Run(s.name, func(t *testing.T) {
			c := ltlf.NewContext(s.numAtom)
			phi, err := s.build(c)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			ok, verdict, err := CheckDual(context.Background(), c, phi, s.x, s.y)
			if err != nil {
				t.Fatalf("CheckDual: %v", err)
			}
			if !ok {
				t.Fatalf("dualization law disagreement for %q", s.name)
			}
			if verdict != s.want {
				t.Fatalf("expected realizable=%v, got %v", s.want, verdict)
			}
		})
	}
}
