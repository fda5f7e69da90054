package surface

import (
	"strings"

	"github.com/cynthia-ltlf/cynthia/pkg/ltlf"
)

// Format renders h back into the surface grammar, using names to map atom
// ids to identifiers. The output re-parses (with the same atom table) to
// exactly h: printing fully parenthesizes every binary and unary operator,
// so no precedence subtleties can shift the shape, and the Context's own
// canonicalization makes the re-parse intern to the identical handle.
func Format(c *ltlf.Context, h ltlf.Handle, names map[ltlf.AtomID]string) (string, error) {
	var b strings.Builder
	if err := format(c, h, names, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func format(c *ltlf.Context, h ltlf.Handle, names map[ltlf.AtomID]string, b *strings.Builder) error {
	tag, err := c.Tag(h)
	if err != nil {
		return err
	}
	switch tag {
	case ltlf.TagTrue:
		b.WriteString("true")
		return nil
	case ltlf.TagFalse:
		b.WriteString("false")
		return nil
	case ltlf.TagAtom:
		return formatAtom(c, h, names, b)
	case ltlf.TagPropNot:
		b.WriteString("!")
		return formatAtom(c, h, names, b)
	case ltlf.TagNot:
		return formatUnary(c, h, names, b, "!")
	case ltlf.TagNext:
		return formatUnary(c, h, names, b, "X ")
	case ltlf.TagWeakNext:
		return formatUnary(c, h, names, b, "WX ")
	case ltlf.TagEventually:
		return formatUnary(c, h, names, b, "F ")
	case ltlf.TagAlways:
		return formatUnary(c, h, names, b, "G ")
	case ltlf.TagAnd:
		return formatNary(c, h, names, b, " & ")
	case ltlf.TagOr:
		return formatNary(c, h, names, b, " | ")
	case ltlf.TagImplies:
		return formatNary(c, h, names, b, " -> ")
	case ltlf.TagEquivalent:
		return formatNary(c, h, names, b, " <-> ")
	case ltlf.TagXor:
		return formatNary(c, h, names, b, " ^ ")
	case ltlf.TagUntil:
		return formatNary(c, h, names, b, " U ")
	case ltlf.TagRelease:
		return formatNary(c, h, names, b, " R ")
	default:
		// TaggedNext has no surface syntax: it exists only inside the XNF
		// transform and never reaches a printer.
		return ltlf.NewError(ltlf.InvalidArgument, "Format: %v has no surface form", tag)
	}
}

func formatAtom(c *ltlf.Context, h ltlf.Handle, names map[ltlf.AtomID]string, b *strings.Builder) error {
	id, err := c.AtomOf(h)
	if err != nil {
		return err
	}
	name, ok := names[id]
	if !ok {
		return ltlf.NewError(ltlf.InvalidArgument, "Format: atom id %d has no name", id)
	}
	b.WriteString(name)
	return nil
}

func formatUnary(c *ltlf.Context, h ltlf.Handle, names map[ltlf.AtomID]string, b *strings.Builder, op string) error {
	children, err := c.Children(h)
	if err != nil {
		return err
	}
	b.WriteString(op)
	b.WriteString("(")
	if err := format(c, children[0], names, b); err != nil {
		return err
	}
	b.WriteString(")")
	return nil
}

func formatNary(c *ltlf.Context, h ltlf.Handle, names map[ltlf.AtomID]string, b *strings.Builder, sep string) error {
	children, err := c.Children(h)
	if err != nil {
		return err
	}
	if len(children) < 2 {
		return ltlf.NewError(ltlf.Internal, "Format: operator node with %d children", len(children))
	}
	for i, ch := range children {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString("(")
		if err := format(c, ch, names, b); err != nil {
			return err
		}
		b.WriteString(")")
	}
	return nil
}

// AtomNames inverts a parser/partition name->id table for Format.
func AtomNames(atoms map[string]ltlf.AtomID) map[ltlf.AtomID]string {
	out := make(map[ltlf.AtomID]string, len(atoms))
	for name, id := range atoms {
		if prev, dup := out[id]; dup {
			// Two names for one id would make printing ambiguous; pick
			// deterministically so Format stays reproducible.
			if strings.Compare(name, prev) > 0 {
				continue
			}
		}
		out[id] = name
	}
	return out
}
