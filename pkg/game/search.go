// Package game implements the forward AND/OR search over LTLf game states:
// the environment (X atoms) chooses a move in an AND layer that must survive
// every choice, the controller responds in an OR layer that only needs one
// surviving choice, and states are LTLf formula handles reduced to XNF and
// compiled through pkg/sdd at each visit. The controller's move covers the Y
// atoms plus the reserved end predicate, since under finite-trace semantics
// stopping the play is the controller's decision. Memoization and an
// on-stack set give the search its termination and cycle-tie-break behavior.
package game

import (
	"context"
	"sort"

	"github.com/cynthia-ltlf/cynthia/pkg/ltlf"
	"github.com/cynthia-ltlf/cynthia/pkg/sdd"
)

// Verdict is the outcome of evaluating one game state.
type Verdict int

const (
	Unknown Verdict = iota
	Win             // the controller can force the formula to hold
	Lose            // the environment can force the formula to fail
)

func (v Verdict) String() string {
	switch v {
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	default:
		return "Unknown"
	}
}

// Engine runs the forward search for one LTLf Context. It owns a single
// sdd.Manager (so atom and residual variables are assigned once and reused
// across every state visited) and is not safe for concurrent use: each
// concurrent scenario in internal/bench constructs its own Engine over its
// own Context, the same discipline pkg/ltlf.Context itself requires.
type Engine struct {
	ctx *ltlf.Context
	mgr *sdd.Manager
	x   ltlf.AtomSet
	y   ltlf.AtomSet
	end ltlf.AtomID

	memo    map[ltlf.Handle]Verdict
	onStack map[ltlf.Handle]bool
}

// NewEngine builds an Engine over ctx, classifying ctx's atoms into
// environment inputs (x) and controller outputs (y) per the partition.
func NewEngine(ctx *ltlf.Context, mgr *sdd.Manager, x, y ltlf.AtomSet) *Engine {
	return &Engine{
		ctx:     ctx,
		mgr:     mgr,
		x:       x,
		y:       y,
		end:     ctx.EndAtomID(),
		memo:    make(map[ltlf.Handle]Verdict),
		onStack: make(map[ltlf.Handle]bool),
	}
}

// Evaluate decides whether state is realizable: the controller can force
// some finite play ending in a trace that satisfies the formula, no matter
// what the environment does. Evaluate is deterministic and safe to call repeatedly
// on the same or different states of the same Engine; repeated calls on an
// already-visited state return the memoized verdict without re-searching.
func (e *Engine) Evaluate(goCtx context.Context, state ltlf.Handle) (Verdict, error) {
	if err := goCtx.Err(); err != nil {
		return Unknown, ltlf.WrapError(ltlf.Cancelled, err, "Evaluate: cancelled")
	}

	tag, err := e.ctx.Tag(state)
	if err != nil {
		return Unknown, err
	}
	if tag == ltlf.TagTrue {
		return Win, nil
	}
	if tag == ltlf.TagFalse {
		return Lose, nil
	}

	if e.onStack[state] {
		// An unfounded cycle: neither player forced progress, which this
		// engine resolves as a controller loss rather than a win.
		return Lose, nil
	}
	if v, ok := e.memo[state]; ok {
		return v, nil
	}

	e.onStack[state] = true
	defer delete(e.onStack, state)

	verdict, err := e.evaluateState(goCtx, state)
	if err != nil {
		return Unknown, err
	}
	e.memo[state] = verdict
	return verdict, nil
}

func (e *Engine) evaluateState(goCtx context.Context, state ltlf.Handle) (Verdict, error) {
	nnf, err := ltlf.ToNNF(e.ctx, state)
	if err != nil {
		return Unknown, err
	}
	xnf, err := ltlf.XNF(e.ctx, nnf)
	if err != nil {
		return Unknown, err
	}

	atoms := map[ltlf.AtomID]struct{}{}
	residues := map[ltlf.Handle]struct{}{}
	if err := collectXNFVars(e.ctx, xnf, atoms, residues); err != nil {
		return Unknown, err
	}

	compiled, err := e.mgr.Compile(e.ctx, xnf)
	if err != nil {
		return Unknown, err
	}

	var xAtoms, yAtoms []ltlf.AtomID
	for id := range atoms {
		switch {
		case e.x.Contains(id):
			xAtoms = append(xAtoms, id)
		case id == e.end || e.y.Contains(id):
			// The end predicate sits on the controller side: stopping the
			// trace is the controller's move, so end is searched in the OR
			// layer together with the Y atoms.
			yAtoms = append(yAtoms, id)
		default:
			// An atom outside the declared partition: treat it as
			// environment-controlled so an unclassified atom can never be
			// read as a controller advantage.
			xAtoms = append(xAtoms, id)
		}
	}
	sort.Slice(xAtoms, func(i, j int) bool { return xAtoms[i] < xAtoms[j] })
	sort.Slice(yAtoms, func(i, j int) bool { return yAtoms[i] < yAtoms[j] })

	residueList := make([]ltlf.Handle, 0, len(residues))
	for r := range residues {
		residueList = append(residueList, r)
	}
	sort.Slice(residueList, func(i, j int) bool { return residueList[i].Ordinal() < residueList[j].Ordinal() })

	yOver := make([]sdd.VarKey, 0, len(yAtoms)+len(residueList))
	for _, id := range yAtoms {
		yOver = append(yOver, sdd.VarKey{Atom: id, IsAtom: true})
	}
	for _, r := range residueList {
		yOver = append(yOver, sdd.VarKey{Residue: r})
	}

	total := 1 << uint(len(xAtoms))
	for combo := 0; combo < total; combo++ {
		if err := goCtx.Err(); err != nil {
			return Unknown, ltlf.WrapError(ltlf.Cancelled, err, "Evaluate: cancelled")
		}
		assumed, err := e.assumeX(compiled, xAtoms, combo)
		if err != nil {
			return Unknown, err
		}
		models, err := e.mgr.Models(assumed, yOver)
		if err != nil {
			return Unknown, err
		}
		if len(models) == 0 {
			// This environment move admits no controller response at all.
			return Lose, nil
		}
		won := false
		for _, model := range models {
			next, err := e.nextState(model, residueList)
			if err != nil {
				return Unknown, err
			}
			v, err := e.Evaluate(goCtx, next)
			if err != nil {
				return Unknown, err
			}
			if v == Win {
				won = true
				break
			}
		}
		if !won {
			return Lose, nil
		}
	}
	return Win, nil
}

func (e *Engine) assumeX(compiled sdd.Formula, xAtoms []ltlf.AtomID, combo int) (sdd.Formula, error) {
	fs := make([]sdd.Formula, 0, len(xAtoms)+1)
	fs = append(fs, compiled)
	for i, id := range xAtoms {
		value := combo&(1<<uint(i)) != 0
		fs = append(fs, e.mgr.Literal(sdd.VarKey{Atom: id, IsAtom: true}, value))
	}
	return e.mgr.Conjoin(fs...)
}

func (e *Engine) nextState(model sdd.Model, residueList []ltlf.Handle) (ltlf.Handle, error) {
	var active []ltlf.Handle
	for _, r := range residueList {
		if model[sdd.VarKey{Residue: r}] {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return e.ctx.True(), nil
	}
	return e.ctx.And(active...)
}

// collectXNFVars walks an XNF-shaped handle, collecting every atom id
// referenced (by Atom or PropNot leaves) and every distinct TaggedNext
// residual handle.
func collectXNFVars(c *ltlf.Context, h ltlf.Handle, atoms map[ltlf.AtomID]struct{}, residues map[ltlf.Handle]struct{}) error {
	tag, err := c.Tag(h)
	if err != nil {
		return err
	}
	switch tag {
	case ltlf.TagTrue, ltlf.TagFalse:
		return nil
	case ltlf.TagAtom, ltlf.TagPropNot:
		id, err := c.AtomOf(h)
		if err != nil {
			return err
		}
		atoms[id] = struct{}{}
		return nil
	case ltlf.TagAnd, ltlf.TagOr:
		children, err := c.Children(h)
		if err != nil {
			return err
		}
		for _, ch := range children {
			if err := collectXNFVars(c, ch, atoms, residues); err != nil {
				return err
			}
		}
		return nil
	case ltlf.TagTaggedNext:
		children, err := c.Children(h)
		if err != nil {
			return err
		}
		residues[children[0]] = struct{}{}
		return nil
	default:
		return ltlf.NewError(ltlf.Internal, "collectXNFVars: non-XNF tag %v", tag)
	}
}
