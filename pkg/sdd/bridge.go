// Package sdd implements the Bridge contract between the XNF-level Boolean
// formulas produced by pkg/ltlf and a canonical Boolean-function
// representation supporting conjoin, disjoin, negate, exists, and model
// enumeration. No maintained Go SDD library exists, so the Bridge is backed
// by github.com/irifrance/gini's hash-consed AND-inverter-graph circuit
// builder (gini/logic.C) together with its incremental SAT solver: the
// circuit gives referentially transparent, structurally-shared conjoin/
// disjoin/negate, and the solver gives model enumeration and existential
// quantification via repeated solve-and-block.
package sdd

import (
	"fmt"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/logic"
	"github.com/irifrance/gini/z"

	"github.com/cynthia-ltlf/cynthia/pkg/ltlf"
)

// VarKey names a Boolean variable the Bridge allocates a literal for: either
// an atomic proposition or a TaggedNext residual, identified by the handle
// the search layer associates it with.
type VarKey struct {
	Atom    ltlf.AtomID
	IsAtom  bool
	Residue ltlf.Handle // valid when !IsAtom: the TaggedNext child handle
}

// Formula is an opaque reference to a compiled Boolean function, analogous
// to an SDD node: it carries the circuit literal plus the Manager that owns
// it. Formulas from different Managers are never comparable.
type Formula struct {
	mgr *Manager
	lit z.Lit
}

// Manager owns one compilation/solving session: one circuit, one variable
// table, one solver instance. Not safe for concurrent use, matching the
// single-threaded-core rule the forward search itself operates under; each
// concurrent benchmark scenario (internal/bench) gets its own Manager.
type Manager struct {
	circ  *logic.C
	vars  map[VarKey]z.Lit
	order []VarKey // allocation order, the fixed variable order for this Manager
}

// NewManager allocates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		circ: logic.NewC(),
		vars: make(map[VarKey]z.Lit),
	}
}

// AssignVar returns the literal for key, allocating a fresh circuit input on
// first use and reusing it afterward, which is what makes compilation
// referentially transparent.
func (m *Manager) AssignVar(key VarKey) z.Lit {
	if lit, ok := m.vars[key]; ok {
		return lit
	}
	lit := m.circ.Lit()
	m.vars[key] = lit
	m.order = append(m.order, key)
	return lit
}

func (m *Manager) wrap(lit z.Lit) Formula { return Formula{mgr: m, lit: lit} }

// Literal returns the Formula for key taken positively (value true) or
// negated (value false), allocating key's variable on first use.
func (m *Manager) Literal(key VarKey, value bool) Formula {
	lit := m.AssignVar(key)
	if !value {
		lit = lit.Not()
	}
	return m.wrap(lit)
}

// Negate returns the negation of f.
func (m *Manager) Negate(f Formula) (Formula, error) {
	if err := m.own(f); err != nil {
		return Formula{}, err
	}
	return m.wrap(f.lit.Not()), nil
}

// Conjoin returns the conjunction of fs. Conjoin() with no operands returns
// the constant true formula.
func (m *Manager) Conjoin(fs ...Formula) (Formula, error) {
	if len(fs) == 0 {
		return m.wrap(m.circ.T), nil
	}
	acc := m.circ.T
	for _, f := range fs {
		if err := m.own(f); err != nil {
			return Formula{}, err
		}
		acc = m.circ.And(acc, f.lit)
	}
	return m.wrap(acc), nil
}

// Disjoin returns the disjunction of fs, built as De Morgan's dual of
// Conjoin since gini's circuit only natively strashes AND gates.
func (m *Manager) Disjoin(fs ...Formula) (Formula, error) {
	if len(fs) == 0 {
		return m.wrap(m.circ.F), nil
	}
	negs := make([]Formula, len(fs))
	for i, f := range fs {
		n, err := m.Negate(f)
		if err != nil {
			return Formula{}, err
		}
		negs[i] = n
	}
	conj, err := m.Conjoin(negs...)
	if err != nil {
		return Formula{}, err
	}
	return m.Negate(conj)
}

func (m *Manager) own(f Formula) error {
	if f.mgr != m {
		return fmt.Errorf("Manager: formula belongs to a different Manager")
	}
	return nil
}

// Compile translates an XNF formula handle into a circuit Formula, one
// circuit literal per Atom (via VarKey{IsAtom:true}) and per distinct
// TaggedNext residual (via VarKey{IsAtom:false, Residue: child}).
func (m *Manager) Compile(c *ltlf.Context, h ltlf.Handle) (Formula, error) {
	tag, err := c.Tag(h)
	if err != nil {
		return Formula{}, err
	}
	switch tag {
	case ltlf.TagTrue:
		return m.wrap(m.circ.T), nil
	case ltlf.TagFalse:
		return m.wrap(m.circ.F), nil
	case ltlf.TagAtom:
		id, err := c.AtomOf(h)
		if err != nil {
			return Formula{}, err
		}
		return m.wrap(m.AssignVar(VarKey{Atom: id, IsAtom: true})), nil
	case ltlf.TagPropNot:
		id, err := c.AtomOf(h)
		if err != nil {
			return Formula{}, err
		}
		return m.wrap(m.AssignVar(VarKey{Atom: id, IsAtom: true}).Not()), nil
	case ltlf.TagAnd:
		return m.compileAssoc(c, h, m.Conjoin)
	case ltlf.TagOr:
		return m.compileAssoc(c, h, m.Disjoin)
	case ltlf.TagTaggedNext:
		children, err := c.Children(h)
		if err != nil {
			return Formula{}, err
		}
		return m.wrap(m.AssignVar(VarKey{Residue: children[0]})), nil
	default:
		return Formula{}, fmt.Errorf("Compile: XNF formula contains non-XNF tag %v", tag)
	}
}

func (m *Manager) compileAssoc(c *ltlf.Context, h ltlf.Handle, combine func(...Formula) (Formula, error)) (Formula, error) {
	children, err := c.Children(h)
	if err != nil {
		return Formula{}, err
	}
	fs := make([]Formula, len(children))
	for i, ch := range children {
		f, err := m.Compile(c, ch)
		if err != nil {
			return Formula{}, err
		}
		fs[i] = f
	}
	return combine(fs...)
}

// Model maps each variable key to its assignment in one satisfying model.
type Model map[VarKey]bool

// Models enumerates every satisfying assignment of f restricted to the
// variables in over; variables outside over are existentially quantified
// (present in the circuit but not reported). It is the Bridge's
// model-enumeration primitive, implemented as the standard AllSAT loop:
// solve, read off the requested variables, emit, then add a blocking
// clause forbidding that exact assignment and solve again.
func (m *Manager) Models(f Formula, over []VarKey) ([]Model, error) {
	if err := m.own(f); err != nil {
		return nil, err
	}
	g := gini.New()
	m.circ.ToCnf(g)

	var models []Model
	for {
		g.Assume(f.lit)
		if g.Solve() != 1 {
			break
		}
		model := make(Model, len(over))
		block := make([]z.Lit, 0, len(over))
		for _, key := range over {
			lit, ok := m.vars[key]
			if !ok {
				continue
			}
			val := g.Value(lit)
			model[key] = val
			if val {
				block = append(block, lit.Not())
			} else {
				block = append(block, lit)
			}
		}
		models = append(models, model)
		if len(block) == 0 {
			break // no distinguishing variables: a single model is all there is
		}
		// Block exactly this assignment to the over-variables with a clause,
		// so the next solve must flip at least one of them.
		for _, l := range block {
			g.Add(l)
		}
		g.Add(z.LitNull)
	}
	return models, nil
}

// SAT reports whether f is satisfiable at all.
func (m *Manager) SAT(f Formula) (bool, error) {
	if err := m.own(f); err != nil {
		return false, err
	}
	g := gini.New()
	m.circ.ToCnf(g)
	g.Assume(f.lit)
	return g.Solve() == 1, nil
}

// Exists existentially quantifies vars out of f: the result mentions only
// the Manager's remaining variables and is true exactly where some
// assignment to vars makes f true. Implemented by enumerating f's models
// projected onto the remaining variables and disjoining their cubes, which
// is correct for the small variable counts a single game state's XNF
// formula produces and avoids requiring a native quantifier-elimination
// primitive from the solver.
func (m *Manager) Exists(f Formula, vars []VarKey) (Formula, error) {
	if err := m.own(f); err != nil {
		return Formula{}, err
	}
	if len(vars) == 0 {
		return f, nil
	}
	quantified := make(map[VarKey]struct{}, len(vars))
	for _, v := range vars {
		quantified[v] = struct{}{}
	}
	remaining := make([]VarKey, 0, len(m.order))
	for _, key := range m.order {
		if _, drop := quantified[key]; !drop {
			remaining = append(remaining, key)
		}
	}

	models, err := m.Models(f, remaining)
	if err != nil {
		return Formula{}, err
	}
	if len(models) == 0 {
		return m.wrap(m.circ.F), nil
	}
	disjuncts := make([]Formula, 0, len(models))
	for _, model := range models {
		conj := m.circ.T
		for _, v := range remaining {
			lit := m.vars[v]
			if !model[v] {
				lit = lit.Not()
			}
			conj = m.circ.And(conj, lit)
		}
		disjuncts = append(disjuncts, m.wrap(conj))
	}
	return m.Disjoin(disjuncts...)
}
