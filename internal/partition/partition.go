// Package partition reads the LTLf input/output partition file: a small
// line-oriented grammar naming which atomic propositions the environment
// controls (.inputs:) and which the controller controls (.outputs:).
package partition

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/cynthia-ltlf/cynthia/pkg/ltlf"
)

// Partition is the result of reading a partition file: the X (environment)
// and Y (controller) atom name lists, in file order, plus the dense
// AtomID each name was assigned. Atom ids are assigned X first, then Y, in
// the order each list appears in the file, so the solver's variable order
// is fixed by the file alone and identical inputs replay identically.
type Partition struct {
	Inputs  []string
	Outputs []string
	ids     map[string]ltlf.AtomID
}

// AtomID returns the id assigned to name, and whether name was declared.
func (p *Partition) AtomID(name string) (ltlf.AtomID, bool) {
	id, ok := p.ids[name]
	return id, ok
}

// IDs returns the full name->id table, suitable for
// internal/surface.NewParserWithAtoms.
func (p *Partition) IDs() map[string]ltlf.AtomID {
	out := make(map[string]ltlf.AtomID, len(p.ids))
	for k, v := range p.ids {
		out[k] = v
	}
	return out
}

// AtomSets returns the X and Y sets as ltlf.AtomSet, for pkg/game.NewEngine.
func (p *Partition) AtomSets() (x, y ltlf.AtomSet) {
	xIDs := make([]ltlf.AtomID, len(p.Inputs))
	for i, name := range p.Inputs {
		xIDs[i] = p.ids[name]
	}
	yIDs := make([]ltlf.AtomID, len(p.Outputs))
	for i, name := range p.Outputs {
		yIDs[i] = p.ids[name]
	}
	return ltlf.NewAtomSet(xIDs...), ltlf.NewAtomSet(yIDs...)
}

// NumAtoms returns the number of distinct atoms this partition classifies.
func (p *Partition) NumAtoms() int { return len(p.ids) }

// Parse reads a partition file from r. Grammar (line-oriented, blank lines
// and "#"-prefixed comment lines ignored):
//
//	.inputs: x1 x2 ...
//	.outputs: y1 y2 ...
//
// Each directive may appear at most once; an atom repeated within or across
// the two directives, or a directive missing entirely, is an
// ltlf.InvalidArgument error.
func Parse(r io.Reader) (*Partition, error) {
	var inputs, outputs []string
	sawInputs, sawOutputs := false, false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, ".inputs:"):
			if sawInputs {
				return nil, ltlf.NewError(ltlf.InvalidArgument, "partition line %d: duplicate .inputs: directive", lineNo)
			}
			sawInputs = true
			inputs = fields(line[len(".inputs:"):])
		case strings.HasPrefix(line, ".outputs:"):
			if sawOutputs {
				return nil, ltlf.NewError(ltlf.InvalidArgument, "partition line %d: duplicate .outputs: directive", lineNo)
			}
			sawOutputs = true
			outputs = fields(line[len(".outputs:"):])
		default:
			return nil, ltlf.NewError(ltlf.InvalidArgument, "partition line %d: unrecognized directive %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, ltlf.WrapError(ltlf.Internal, err, "partition: read error")
	}
	if !sawInputs {
		return nil, ltlf.NewError(ltlf.InvalidArgument, "partition: missing .inputs: directive")
	}
	if !sawOutputs {
		return nil, ltlf.NewError(ltlf.InvalidArgument, "partition: missing .outputs: directive")
	}

	ids := make(map[string]ltlf.AtomID, len(inputs)+len(outputs))
	var next ltlf.AtomID
	for _, name := range inputs {
		if _, dup := ids[name]; dup {
			return nil, ltlf.NewError(ltlf.InvalidArgument, "partition: atom %q listed more than once", name)
		}
		ids[name] = next
		next++
	}
	for _, name := range outputs {
		if id, dup := ids[name]; dup {
			if int(id) < len(inputs) {
				return nil, ltlf.NewError(ltlf.InvalidArgument, "partition: atom %q appears in both .inputs and .outputs", name)
			}
			return nil, ltlf.NewError(ltlf.InvalidArgument, "partition: atom %q listed more than once", name)
		}
		ids[name] = next
		next++
	}

	return &Partition{Inputs: inputs, Outputs: outputs, ids: ids}, nil
}

func fields(s string) []string {
	return strings.Fields(s)
}

// CheckFormulaAtoms verifies that every name in used appears somewhere in
// p's partition, returning an ltlf.InvalidArgument naming the offenders
// otherwise: an atom the partition never classifies has no owner in the
// game and the run must be rejected up front.
func (p *Partition) CheckFormulaAtoms(used map[string]struct{}) error {
	missing := make([]string, 0)
	for name := range used {
		if _, ok := p.ids[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return ltlf.NewError(ltlf.InvalidArgument, "partition: formula references unclassified atom(s): %s", strings.Join(missing, ", "))
}
