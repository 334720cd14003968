package calc

import "math/big"

// Expression tree nodes.
type (
	node interface{}

	literal struct {
		val Value
	}

	nameRef struct {
		name string
	}

	unaryExpr struct {
		op string
		x  node
	}

	binaryExpr struct {
		op   string
		x, y node
	}

	// compareExpr is a comparison chain: operands[0] ops[0] operands[1] ops[1] ...
	compareExpr struct {
		ops      []string
		operands []node
	}

	callExpr struct {
		fn   node
		args []node
	}

	tupleExpr struct {
		elts []node
	}

	listExpr struct {
		elts []node
	}
)

// reserved words of the host grammar that have no meaning here.
var reserved = map[string]struct{}{
	"and": {}, "as": {}, "assert": {}, "async": {}, "await": {}, "break": {},
	"class": {}, "continue": {}, "def": {}, "del": {}, "elif": {}, "else": {},
	"except": {}, "finally": {}, "for": {}, "from": {}, "global": {}, "if": {},
	"in": {}, "is": {}, "lambda": {}, "None": {}, "nonlocal": {}, "not": {},
	"or": {}, "pass": {}, "raise": {}, "return": {}, "try": {}, "while": {},
	"with": {}, "yield": {},
}

var compareOps = map[string]struct{}{
	"<": {}, "<=": {}, ">": {}, ">=": {}, "==": {}, "!=": {},
}

// parser is a recursive-descent parser with one method per precedence level.
type parser struct {
	tokens []token
	pos    int
}

func parse(input string) (node, error) {
	tokens, err := newLexer(input).tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if p.current().kind == tokEOF {
		return nil, syntaxErrorf("invalid syntax: empty expression")
	}
	expr, err := p.parseExprList(tokEOF)
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.kind != tokEOF {
		return nil, unexpected(tok)
	}
	return expr, nil
}

func (p *parser) current() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) currentIsOp(ops ...string) (string, bool) {
	tok := p.current()
	if tok.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if tok.text == op {
			return op, true
		}
	}
	return "", false
}

func (p *parser) expect(kind tokenKind) error {
	tok := p.current()
	if tok.kind != kind {
		return unexpected(tok)
	}
	p.advance()
	return nil
}

// parseExprList parses comma separated expressions up to the closing token.
// A single expression without a comma is returned as is; otherwise a tuple.
func (p *parser) parseExprList(closing tokenKind) (node, error) {
	first, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if p.current().kind != tokComma {
		return first, nil
	}
	elts := []node{first}
	for p.current().kind == tokComma {
		p.advance()
		if p.current().kind == closing {
			break
		}
		next, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		elts = append(elts, next)
	}
	return tupleExpr{elts: elts}, nil
}

// parseSequence parses the comma separated items of a call or list display.
func (p *parser) parseSequence(closing tokenKind) ([]node, error) {
	var items []node
	for p.current().kind != closing {
		item, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.current().kind != tokComma {
			break
		}
		p.advance()
	}
	if err := p.expect(closing); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *parser) parseComparison() (node, error) {
	first, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	tok := p.current()
	if tok.kind != tokOp {
		return first, nil
	}
	if _, ok := compareOps[tok.text]; !ok {
		return first, nil
	}
	chain := compareExpr{operands: []node{first}}
	for {
		tok := p.current()
		if tok.kind != tokOp {
			break
		}
		if _, ok := compareOps[tok.text]; !ok {
			break
		}
		p.advance()
		next, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		chain.ops = append(chain.ops, tok.text)
		chain.operands = append(chain.operands, next)
	}
	return chain, nil
}

func (p *parser) parseAdditive() (node, error) {
	x, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.currentIsOp("+", "-")
		if !ok {
			return x, nil
		}
		p.advance()
		y, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		x = binaryExpr{op: op, x: x, y: y}
	}
}

func (p *parser) parseMultiplicative() (node, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.currentIsOp("*", "/", "//", "%")
		if !ok {
			return x, nil
		}
		p.advance()
		y, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		x = binaryExpr{op: op, x: x, y: y}
	}
}

func (p *parser) parseUnary() (node, error) {
	if op, ok := p.currentIsOp("+", "-"); ok {
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryExpr{op: op, x: x}, nil
	}
	return p.parsePower()
}

// parsePower binds tighter than unary minus on its left and is right-associative:
// -2**2 is -(2**2) and 2**-1 is 2**(-1).
func (p *parser) parsePower() (node, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if _, ok := p.currentIsOp("**"); !ok {
		return base, nil
	}
	p.advance()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return binaryExpr{op: "**", x: base, y: exp}, nil
}

func (p *parser) parsePostfix() (node, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.current().kind == tokLParen {
		p.advance()
		args, err := p.parseSequence(tokRParen)
		if err != nil {
			return nil, err
		}
		x = callExpr{fn: x, args: args}
	}
	return x, nil
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.current()
	switch tok.kind {
	case tokInt:
		p.advance()
		return literal{val: intValue(new(big.Int).Set(tok.ival))}, nil
	case tokFloat:
		p.advance()
		return literal{val: floatValue(tok.fval)}, nil
	case tokName:
		p.advance()
		switch tok.text {
		case "True":
			return literal{val: boolValue(true)}, nil
		case "False":
			return literal{val: boolValue(false)}, nil
		}
		if _, ok := reserved[tok.text]; ok {
			return nil, unexpected(tok)
		}
		return nameRef{name: tok.text}, nil
	case tokLParen:
		p.advance()
		if p.current().kind == tokRParen {
			p.advance()
			return tupleExpr{}, nil
		}
		inner, err := p.parseExprList(tokRParen)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case tokLBracket:
		p.advance()
		elts, err := p.parseSequence(tokRBracket)
		if err != nil {
			return nil, err
		}
		return listExpr{elts: elts}, nil
	default:
		return nil, unexpected(tok)
	}
}

func unexpected(tok token) error {
	if tok.kind == tokEOF {
		return syntaxErrorf("invalid syntax: unexpected end of expression")
	}
	return syntaxErrorf("invalid syntax at position %d: unexpected %q", tok.pos, tok.text)
}
