package sdd

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cynthia-ltlf/cynthia/pkg/ltlf"
)

func TestCompileAndSAT(t *testing.T) {
	c := ltlf.NewContext(2)
	a0, _ := c.Atom(0)
	a1, _ := c.Atom(1)
	conj, err := c.And(a0, a1)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	nnf, err := ltlf.ToNNF(c, conj)
	if err != nil {
		t.Fatalf("ToNNF: %v", err)
	}
	xnf, err := ltlf.XNF(c, nnf)
	if err != nil {
		t.Fatalf("XNF: %v", err)
	}

	m := NewManager()
	f, err := m.Compile(c, xnf)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	sat, err := m.SAT(f)
	if err != nil {
		t.Fatalf("SAT: %v", err)
	}
	if !sat {
		t.Fatalf("expected a0 & a1 to be satisfiable")
	}
}

func TestCompileUnsat(t *testing.T) {
	c := ltlf.NewContext(1)
	a0, _ := c.Atom(0)
	na0, err := c.Not(a0)
	if err != nil {
		t.Fatalf("Not: %v", err)
	}
	conj, err := c.And(a0, na0)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	nnf, _ := ltlf.ToNNF(c, conj)
	xnf, err := ltlf.XNF(c, nnf)
	if err != nil {
		t.Fatalf("XNF: %v", err)
	}
	m := NewManager()
	f, err := m.Compile(c, xnf)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	sat, err := m.SAT(f)
	if err != nil {
		t.Fatalf("SAT: %v", err)
	}
	if sat {
		t.Fatalf("expected a0 & !a0 to be unsatisfiable")
	}
}

func TestModelsEnumeratesAll(t *testing.T) {
	c := ltlf.NewContext(2)
	a0, _ := c.Atom(0)
	a1, _ := c.Atom(1)
	disj, err := c.Or(a0, a1)
	if err != nil {
		t.Fatalf("Or: %v", err)
	}
	nnf, _ := ltlf.ToNNF(c, disj)
	xnf, err := ltlf.XNF(c, nnf)
	if err != nil {
		t.Fatalf("XNF: %v", err)
	}
	m := NewManager()
	f, err := m.Compile(c, xnf)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	over := []VarKey{{Atom: 0, IsAtom: true}, {Atom: 1, IsAtom: true}}
	models, err := m.Models(f, over)
	if err != nil {
		t.Fatalf("Models: %v", err)
	}
	k0, k1 := VarKey{Atom: 0, IsAtom: true}, VarKey{Atom: 1, IsAtom: true}
	want := []Model{
		{k0: true, k1: false},
		{k0: false, k1: true},
		{k0: true, k1: true},
	}
	sortModels(want)
	sortModels(models)
	if diff := cmp.Diff(want, models); diff != "" {
		t.Errorf("a0|a1 models mismatch (-want +got):\n%s", diff)
	}
}

func TestExistsQuantifiesVarsOut(t *testing.T) {
	c := ltlf.NewContext(2)
	a0, _ := c.Atom(0)
	a1, _ := c.Atom(1)
	conj, err := c.And(a0, a1)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	nnf, _ := ltlf.ToNNF(c, conj)
	xnf, err := ltlf.XNF(c, nnf)
	if err != nil {
		t.Fatalf("XNF: %v", err)
	}
	m := NewManager()
	f, err := m.Compile(c, xnf)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// Exists a1. (a0 & a1) == a0: still forces a0, no longer constrains a1.
	k0, k1 := VarKey{Atom: 0, IsAtom: true}, VarKey{Atom: 1, IsAtom: true}
	ex, err := m.Exists(f, []VarKey{k1})
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}

	withNotA0, err := m.Conjoin(ex, m.Literal(k0, false))
	if err != nil {
		t.Fatalf("Conjoin: %v", err)
	}
	if sat, err := m.SAT(withNotA0); err != nil || sat {
		t.Fatalf("expected Exists result & !a0 to be unsat, got sat=%v err=%v", sat, err)
	}

	withA0NotA1, err := m.Conjoin(ex, m.Literal(k0, true), m.Literal(k1, false))
	if err != nil {
		t.Fatalf("Conjoin: %v", err)
	}
	if sat, err := m.SAT(withA0NotA1); err != nil || !sat {
		t.Fatalf("expected Exists result to be free of a1, got sat=%v err=%v", sat, err)
	}
}

// sortModels orders models by their assignment to a0 then a1 so cmp.Diff
// doesn't report spurious differences from enumeration order.
func sortModels(models []Model) {
	k0, k1 := VarKey{Atom: 0, IsAtom: true}, VarKey{Atom: 1, IsAtom: true}
	rank := func(m Model) int {
		r := 0
		if m[k0] {
			r |= 2
		}
		if m[k1] {
			r |= 1
		}
		return r
	}
	sort.Slice(models, func(i, j int) bool { return rank(models[i]) < rank(models[j]) })
}
