package ltlf

// AtomID identifies an atomic proposition within a Context. Atom ids are
// dense and assigned by the caller (typically internal/partition) at
// Context construction time.
type AtomID uint32

// NodeTag identifies one of the closed set of LTLf node variants. The set
// is closed: Visitor implementations switch exhaustively over it and a
// default case is always an Internal error, never a silent no-op.
type NodeTag uint8

const (
	TagTrue NodeTag = iota
	TagFalse
	TagAtom
	TagPropNot // negated atom, kept distinct from general Not for NNF closure
	TagNot
	TagAnd
	TagOr
	TagImplies
	TagEquivalent
	TagXor
	TagNext
	TagWeakNext
	TagEventually
	TagAlways
	TagUntil
	TagRelease
	TagTaggedNext // XNF-only: "residual formula to hold at t+1 if there is one"
)

func (t NodeTag) String() string {
	names := [...]string{
		"True", "False", "Atom", "PropNot", "Not", "And", "Or", "Implies",
		"Equivalent", "Xor", "Next", "WeakNext", "Eventually", "Always",
		"Until", "Release", "TaggedNext",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// node is the interned representation of one AST value. children holds
// handle ids in canonical order (sorted+deduped for And/Or); atom is only
// meaningful for TagAtom and TagPropNot. Once interned a node is immutable.
type node struct {
	tag      NodeTag
	atom     AtomID
	children []uint32
	hash     uint64
}

// Handle is an opaque reference to an interned node, scoped to the Context
// that created it. Handles from different Contexts are never interchangeable;
// every operation that accepts a foreign handle returns InvalidArgument.
type Handle struct {
	ctx *Context
	id  uint32
}

// Valid reports whether h was produced by a live Context.
func (h Handle) Valid() bool { return h.ctx != nil }

// Ordinal returns h's intern-table id, stable for the lifetime of its
// Context. Collaborators (pkg/game) use it only to get a deterministic,
// reproducible iteration order over sets of handles; it carries no other
// meaning and is not comparable across Contexts.
func (h Handle) Ordinal() uint32 { return h.id }

// sameContext reports whether h belongs to c.
func (h Handle) sameContext(c *Context) bool { return h.ctx == c }

// AtomSet is a small set of AtomIDs, used for input/output partitions.
type AtomSet map[AtomID]struct{}

// NewAtomSet builds an AtomSet from a slice of ids.
func NewAtomSet(ids ...AtomID) AtomSet {
	s := make(AtomSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is a member of s.
func (s AtomSet) Contains(id AtomID) bool {
	_, ok := s[id]
	return ok
}
