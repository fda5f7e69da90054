package surface

import (
	"github.com/cynthia-ltlf/cynthia/pkg/ltlf"
)

// Parser builds an LTLf formula directly through a pkg/ltlf.Context, so
// every node it produces is already normalized and interned. It never
// constructs an intermediate AST of its own.
type Parser struct {
	ctx    *ltlf.Context
	toks   []token
	pos    int
	atoms  map[string]ltlf.AtomID
	nextID ltlf.AtomID
	frozen bool // true once atoms was supplied by the caller, not grown lazily
}

// NewParser returns a Parser that resolves atom identifiers against ctx,
// assigning each distinct identifier a dense id starting at 0 the first
// time it is seen. Callers that already know the X/Y partition should
// instead use NewParserWithAtoms so atom ids match the partition file.
func NewParser(ctx *ltlf.Context) *Parser {
	return &Parser{ctx: ctx, atoms: make(map[string]ltlf.AtomID)}
}

// NewParserWithAtoms returns a Parser that resolves atom identifiers through
// a fixed name->id table (typically produced by internal/partition), and
// rejects any identifier the table does not contain.
func NewParserWithAtoms(ctx *ltlf.Context, atoms map[string]ltlf.AtomID) *Parser {
	return &Parser{ctx: ctx, atoms: atoms, frozen: true}
}

// Parse lexes and parses src into a single LTLf formula handle in the
// Parser's Context. A parse error (lexical or syntactic) is an
// *ltlf.Error of Kind ParseError.
func (p *Parser) Parse(src string) (ltlf.Handle, error) {
	toks, err := lex(src)
	if err != nil {
		return ltlf.Handle{}, ltlf.WrapError(ltlf.ParseError, err, "Parse: lexical error")
	}
	p.toks = toks
	p.pos = 0
	h, err := p.parseExpr(0)
	if err != nil {
		return ltlf.Handle{}, err
	}
	if p.cur().kind != tokEOF {
		return ltlf.Handle{}, ltlf.NewError(ltlf.ParseError, "Parse: unexpected trailing token %q", p.cur().text)
	}
	return h, nil
}

// ScanAtoms lexes src and returns the set of atom identifiers it mentions,
// without building a formula. Callers cross-check the result against the
// declared partition (internal/partition.CheckFormulaAtoms) before
// committing to a full parse, so an unclassified atom is diagnosed as a
// partition mismatch naming every offender rather than as a parse failure
// at the first one.
func ScanAtoms(src string) (map[string]struct{}, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, ltlf.WrapError(ltlf.ParseError, err, "Parse: lexical error")
	}
	used := make(map[string]struct{})
	for _, t := range toks {
		if t.kind == tokIdent {
			used[t.text] = struct{}{}
		}
	}
	return used, nil
}

// KnownAtoms returns the identifier->id table the Parser has built while
// resolving atoms across every Parse call so far (or was constructed
// with, for NewParserWithAtoms). Useful for a caller that wants to assign
// atom ids lazily and hand the resulting table to internal/partition for
// cross-checking against a partition file.
func (p *Parser) KnownAtoms() map[string]ltlf.AtomID { return p.atoms }

func (p *Parser) cur() token { return p.toks[p.pos] }

func (p *Parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k tokenKind, what string) (token, error) {
	if p.cur().kind != k {
		return token{}, ltlf.NewError(ltlf.ParseError, "Parse: expected %s at position %d, found %q", what, p.cur().pos, p.cur().text)
	}
	return p.advance(), nil
}

// precedence table, loosest to tightest: <->/->/^ (1), | (2), & (3), U/R (4),
// unary !/X/W/F/G bind tighter than every binary operator.
func binPrec(k tokenKind) int {
	switch k {
	case tokImplies, tokEquivalent, tokXor:
		return 1
	case tokOr:
		return 2
	case tokAnd:
		return 3
	case tokUntil, tokRelease:
		return 4
	default:
		return -1
	}
}

// parseExpr implements Pratt/precedence-climbing parsing: parse one unary
// term, then repeatedly consume infix operators at or above minPrec. Every
// binary operator is right-associative (a U b U c is a U (b U c), the usual
// LTL convention; for & and | associativity is immaterial because the
// Context flattens them anyway), so the recursive call reuses prec rather
// than prec+1.
func (p *Parser) parseExpr(minPrec int) (ltlf.Handle, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return ltlf.Handle{}, err
	}
	for {
		prec := binPrec(p.cur().kind)
		if prec < minPrec || prec < 0 {
			return lhs, nil
		}
		opTok := p.advance()
		rhs, err := p.parseExpr(prec)
		if err != nil {
			return ltlf.Handle{}, err
		}
		lhs, err = p.applyBinary(opTok.kind, lhs, rhs)
		if err != nil {
			return ltlf.Handle{}, err
		}
	}
}

func (p *Parser) applyBinary(k tokenKind, a, b ltlf.Handle) (ltlf.Handle, error) {
	var h ltlf.Handle
	var err error
	switch k {
	case tokAnd:
		h, err = p.ctx.And(a, b)
	case tokOr:
		h, err = p.ctx.Or(a, b)
	case tokImplies:
		h, err = p.ctx.Implies(a, b)
	case tokEquivalent:
		h, err = p.ctx.Equivalent(a, b)
	case tokXor:
		h, err = p.ctx.Xor(a, b)
	case tokUntil:
		h, err = p.ctx.Until(a, b)
	case tokRelease:
		h, err = p.ctx.Release(a, b)
	default:
		return ltlf.Handle{}, ltlf.NewError(ltlf.Internal, "applyBinary: unhandled token kind %d", k)
	}
	if err != nil {
		return ltlf.Handle{}, ltlf.WrapError(ltlf.ParseError, err, "Parse: invalid formula")
	}
	return h, nil
}

func (p *Parser) parseUnary() (ltlf.Handle, error) {
	switch p.cur().kind {
	case tokNot:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return ltlf.Handle{}, err
		}
		return p.wrap(p.ctx.Not(child))
	case tokNext:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return ltlf.Handle{}, err
		}
		return p.wrap(p.ctx.Next(child))
	case tokWeakNext:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return ltlf.Handle{}, err
		}
		return p.wrap(p.ctx.WeakNext(child))
	case tokEventually:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return ltlf.Handle{}, err
		}
		return p.wrap(p.ctx.Eventually(child))
	case tokAlways:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return ltlf.Handle{}, err
		}
		return p.wrap(p.ctx.Always(child))
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) wrap(h ltlf.Handle, err error) (ltlf.Handle, error) {
	if err != nil {
		return ltlf.Handle{}, ltlf.WrapError(ltlf.ParseError, err, "Parse: invalid formula")
	}
	return h, nil
}

func (p *Parser) parsePrimary() (ltlf.Handle, error) {
	switch p.cur().kind {
	case tokTrue:
		p.advance()
		return p.ctx.True(), nil
	case tokFalse:
		p.advance()
		return p.ctx.False(), nil
	case tokLParen:
		p.advance()
		h, err := p.parseExpr(0)
		if err != nil {
			return ltlf.Handle{}, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return ltlf.Handle{}, err
		}
		return h, nil
	case tokIdent:
		tok := p.advance()
		return p.resolveAtom(tok.text)
	default:
		return ltlf.Handle{}, ltlf.NewError(ltlf.ParseError, "Parse: unexpected token %q at position %d", p.cur().text, p.cur().pos)
	}
}

func (p *Parser) resolveAtom(name string) (ltlf.Handle, error) {
	id, ok := p.atoms[name]
	if !ok {
		if p.frozen {
			return ltlf.Handle{}, ltlf.NewError(ltlf.ParseError, "Parse: unknown atom %q", name)
		}
		id = p.nextID
		p.atoms[name] = id
		p.nextID++
	}
	return p.ctx.Atom(id)
}
