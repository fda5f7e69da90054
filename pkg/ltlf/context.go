package ltlf

import (
	"sort"
	"strconv"
	"strings"
)

// Context owns every interned node for one synthesis run: it is the factory,
// registry, and sole authority for structural equality (two formulas are
// equal iff they intern to the same Handle). A Context is not safe for
// concurrent use; callers that want concurrency (see internal/bench) give
// each goroutine its own Context.
type Context struct {
	nodes   []node           // index 0 is never used; ids start at 1
	intern  map[string]uint32
	numAtom int
	endAtom AtomID
	trueH   Handle
	falseH  Handle
}

// NewContext allocates a Context for a formula over numAtoms atomic
// propositions (ids 0..numAtoms-1). A reserved "end" atom is allocated one
// past the caller's range; see EndAtom.
func NewContext(numAtoms int) *Context {
	c := &Context{
		nodes:   make([]node, 1, 64),
		intern:  make(map[string]uint32, 64),
		numAtom: numAtoms,
		endAtom: AtomID(numAtoms),
	}
	c.trueH = c.internNode(node{tag: TagTrue})
	c.falseH = c.internNode(node{tag: TagFalse})
	return c
}

// EndAtom returns the handle for the reserved "no further step exists"
// predicate used by the XNF transform of Eventually/Always/Until/Release.
func (c *Context) EndAtom() (Handle, error) {
	return c.Atom(c.endAtom)
}

// EndAtomID returns the atom id backing EndAtom, for callers (pkg/game) that
// need to classify it alongside the input/output partition.
func (c *Context) EndAtomID() AtomID { return c.endAtom }

// NumAtoms returns the number of caller-visible atoms (excluding EndAtom).
func (c *Context) NumAtoms() int { return c.numAtom }

func keyOf(tag NodeTag, atom AtomID, children []uint32) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(tag)))
	b.WriteByte(':')
	if tag == TagAtom || tag == TagPropNot {
		b.WriteString(strconv.Itoa(int(atom)))
	}
	for _, ch := range children {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(int(ch)))
	}
	return b.String()
}

func (c *Context) internNode(n node) Handle {
	key := keyOf(n.tag, n.atom, n.children)
	if id, ok := c.intern[key]; ok {
		return Handle{ctx: c, id: id}
	}
	id := uint32(len(c.nodes))
	n.hash = fnv1a(key)
	c.nodes = append(c.nodes, n)
	c.intern[key] = id
	return Handle{ctx: c, id: id}
}

func fnv1a(s string) uint64 {
	const offset = 14695981039346656037
	const prime = 1099511628211
	h := uint64(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}

func (c *Context) node(h Handle) (node, error) {
	if !h.sameContext(c) {
		return node{}, newError(InvalidArgument, "handle belongs to a different Context")
	}
	if int(h.id) >= len(c.nodes) {
		return node{}, newError(Internal, "handle id %d out of range", h.id)
	}
	return c.nodes[h.id], nil
}

// Tag returns the node variant h refers to.
func (c *Context) Tag(h Handle) (NodeTag, error) {
	n, err := c.node(h)
	if err != nil {
		return 0, err
	}
	return n.tag, nil
}

// AtomOf returns the atom id of an Atom or PropNot handle.
func (c *Context) AtomOf(h Handle) (AtomID, error) {
	n, err := c.node(h)
	if err != nil {
		return 0, err
	}
	if n.tag != TagAtom && n.tag != TagPropNot {
		return 0, newError(InvalidArgument, "AtomOf: handle is not an Atom or PropNot")
	}
	return n.atom, nil
}

// Children returns the child handles of h in canonical order.
func (c *Context) Children(h Handle) ([]Handle, error) {
	n, err := c.node(h)
	if err != nil {
		return nil, err
	}
	out := make([]Handle, len(n.children))
	for i, id := range n.children {
		out[i] = Handle{ctx: c, id: id}
	}
	return out, nil
}

// True returns the canonical true-formula handle.
func (c *Context) True() Handle { return c.trueH }

// False returns the canonical false-formula handle.
func (c *Context) False() Handle { return c.falseH }

func (c *Context) checkOwned(hs ...Handle) error {
	for _, h := range hs {
		if !h.sameContext(c) {
			return newError(InvalidArgument, "handle belongs to a different Context")
		}
	}
	return nil
}

// Atom returns the handle for atomic proposition id, which must be in
// [0, NumAtoms) or equal to the reserved end-atom id.
func (c *Context) Atom(id AtomID) (Handle, error) {
	if int(id) > c.numAtom {
		return Handle{}, newError(InvalidArgument, "atom id %d out of range [0,%d]", id, c.numAtom)
	}
	return c.internNode(node{tag: TagAtom, atom: id}), nil
}

// Not returns the negation of h, collapsing double negation and negated
// constants, and representing a negated atom as a first-class PropNot node
// so the AST stays closed under negation without a generic Not-over-Atom.
func (c *Context) Not(h Handle) (Handle, error) {
	n, err := c.node(h)
	if err != nil {
		return Handle{}, err
	}
	switch n.tag {
	case TagTrue:
		return c.falseH, nil
	case TagFalse:
		return c.trueH, nil
	case TagAtom:
		return c.internNode(node{tag: TagPropNot, atom: n.atom}), nil
	case TagPropNot:
		return c.internNode(node{tag: TagAtom, atom: n.atom}), nil
	case TagNot:
		return Handle{ctx: c, id: n.children[0]}, nil
	default:
		return c.internNode(node{tag: TagNot, children: []uint32{h.id}}), nil
	}
}

// And returns the conjunction of hs, flattening nested conjunctions,
// deduplicating and sorting operands, eliding True operands, and collapsing
// to False if any operand is False. And() with zero operands is an
// InvalidArgument; And of one operand returns that operand.
func (c *Context) And(hs ...Handle) (Handle, error) {
	return c.assoc(TagAnd, c.falseH, c.trueH, hs)
}

// Or returns the disjunction of hs with the dual rules of And.
func (c *Context) Or(hs ...Handle) (Handle, error) {
	return c.assoc(TagOr, c.trueH, c.falseH, hs)
}

// assoc implements the shared And/Or canonicalization: annihilator short-
// circuits, identity elision, flattening of nested same-tag operands,
// dedup, and sort by handle id for a canonical operand order.
func (c *Context) assoc(tag NodeTag, annihilator, identity Handle, hs []Handle) (Handle, error) {
	if len(hs) == 0 {
		return Handle{}, newError(InvalidArgument, "%s: operand list must be non-empty", tag)
	}
	if err := c.checkOwned(hs...); err != nil {
		return Handle{}, err
	}
	seen := make(map[uint32]struct{}, len(hs))
	var ids []uint32
	var flatten func(h Handle) error
	flatten = func(h Handle) error {
		n, err := c.node(h)
		if err != nil {
			return err
		}
		if h.id == annihilator.id {
			return errAnnihilate
		}
		if h.id == identity.id {
			return nil
		}
		if n.tag == tag {
			for _, chID := range n.children {
				if err := flatten(Handle{ctx: c, id: chID}); err != nil {
					return err
				}
			}
			return nil
		}
		if _, ok := seen[h.id]; !ok {
			seen[h.id] = struct{}{}
			ids = append(ids, h.id)
		}
		return nil
	}
	for _, h := range hs {
		if err := flatten(h); err != nil {
			if err == errAnnihilate {
				return annihilator, nil
			}
			return Handle{}, err
		}
	}
	if len(ids) == 0 {
		return identity, nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) == 1 {
		return Handle{ctx: c, id: ids[0]}, nil
	}
	return c.internNode(node{tag: tag, children: ids}), nil
}

var errAnnihilate = newError(Internal, "internal assoc short-circuit sentinel")

func (c *Context) binary(tag NodeTag, a, b Handle) (Handle, error) {
	if err := c.checkOwned(a, b); err != nil {
		return Handle{}, err
	}
	if _, err := c.node(a); err != nil {
		return Handle{}, err
	}
	if _, err := c.node(b); err != nil {
		return Handle{}, err
	}
	return c.internNode(node{tag: tag, children: []uint32{a.id, b.id}}), nil
}

func (c *Context) unary(tag NodeTag, h Handle) (Handle, error) {
	if err := c.checkOwned(h); err != nil {
		return Handle{}, err
	}
	if _, err := c.node(h); err != nil {
		return Handle{}, err
	}
	return c.internNode(node{tag: tag, children: []uint32{h.id}}), nil
}

// Implies returns a -> b as a first-class node (not rewritten to Or/Not at
// intern time; ToNNF performs that rewrite).
func (c *Context) Implies(a, b Handle) (Handle, error) { return c.binary(TagImplies, a, b) }

// Equivalent returns a <-> b.
func (c *Context) Equivalent(a, b Handle) (Handle, error) { return c.binary(TagEquivalent, a, b) }

// Xor returns a XOR b.
func (c *Context) Xor(a, b Handle) (Handle, error) { return c.binary(TagXor, a, b) }

// Next returns X h (strong next: false at the end of the trace).
func (c *Context) Next(h Handle) (Handle, error) { return c.unary(TagNext, h) }

// WeakNext returns W h (weak next: true at the end of the trace).
func (c *Context) WeakNext(h Handle) (Handle, error) { return c.unary(TagWeakNext, h) }

// Eventually returns F h.
func (c *Context) Eventually(h Handle) (Handle, error) { return c.unary(TagEventually, h) }

// Always returns G h.
func (c *Context) Always(h Handle) (Handle, error) { return c.unary(TagAlways, h) }

// Until returns a U b.
func (c *Context) Until(a, b Handle) (Handle, error) { return c.binary(TagUntil, a, b) }

// Release returns a R b.
func (c *Context) Release(a, b Handle) (Handle, error) { return c.binary(TagRelease, a, b) }

// TaggedNext wraps h as an XNF-residual marker: "this much must hold at the
// next step, if a next step exists". Only the XNF transformer and tests
// construct these directly; ordinary formula building never needs to.
func (c *Context) TaggedNext(h Handle) (Handle, error) { return c.unary(TagTaggedNext, h) }
