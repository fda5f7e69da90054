// Package synth is the top-level entry point tying the term store, XNF
// transformer, SDD bridge, and forward search together into a single
// realizability decision.
package synth

import (
	"context"

	"github.com/cynthia-ltlf/cynthia/pkg/game"
	"github.com/cynthia-ltlf/cynthia/pkg/ltlf"
	"github.com/cynthia-ltlf/cynthia/pkg/sdd"
)

// Synthesize decides whether phi is realizable: whether the controller,
// choosing values for the atoms in y at every step, can force phi to hold
// against every choice the environment makes for the atoms in x. It owns a
// fresh sdd.Manager and game.Engine for the call; callers running many
// scenarios concurrently should call Synthesize once per goroutine rather
// than sharing a Context across calls (see internal/bench).
func Synthesize(goCtx context.Context, c *ltlf.Context, phi ltlf.Handle, x, y ltlf.AtomSet) (bool, error) {
	e := game.NewEngine(c, sdd.NewManager(), x, y)
	v, err := e.Evaluate(goCtx, phi)
	if err != nil {
		return false, err
	}
	return v == game.Win, nil
}

// Dual predicts Synthesize(phi, x, y) via the dualization law
// synthesize(phi,X,Y) = !synthesize(!phi,Y,X), recomputing it from scratch
// with a fresh Manager/Engine over the negated formula and swapped roles.
// It exists so CheckDual can cross-check the two independent computations.
func Dual(goCtx context.Context, c *ltlf.Context, phi ltlf.Handle, x, y ltlf.AtomSet) (bool, error) {
	notPhi, err := c.Not(phi)
	if err != nil {
		return false, err
	}
	sub, err := Synthesize(goCtx, c, notPhi, y, x)
	if err != nil {
		return false, err
	}
	return !sub, nil
}

// CheckDual runs both Synthesize and Dual and reports whether they agree.
// ok is false only on an internal inconsistency (a search bug); verdict is
// the Synthesize result, trusted when ok is true.
func CheckDual(goCtx context.Context, c *ltlf.Context, phi ltlf.Handle, x, y ltlf.AtomSet) (ok, verdict bool, err error) {
	direct, err := Synthesize(goCtx, c, phi, x, y)
	if err != nil {
		return false, false, err
	}
	dual, err := Dual(goCtx, c, phi, x, y)
	if err != nil {
		return false, false, err
	}
	return direct == dual, direct, nil
}
