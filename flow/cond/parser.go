package cond

import "fmt"

// Grammar (precedence low to high):
//
//	or         := and ("or" and)*
//	and        := unary ("and" unary)*
//	unary      := "not" unary | comparison
//	comparison := primary (("==" | "!=" | "<" | "<=" | ">" | ">=") primary)?
//	primary    := literal | path | "(" or ")"
//	path       := ident ("." ident)*
type expr interface {
	eval(doc map[string]interface{}) (interface{}, error)
}

type parser struct {
	tokens []token
	pos    int
}

func parse(input string) (expr, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", p.peek().text, p.peek().pos)
	}
	return e, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &logicalExpr{op: "or", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenAnd {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &logicalExpr{op: "and", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (expr, error) {
	if p.peek().kind == tokenNot {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &notExpr{operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenOp {
		return left, nil
	}
	op := p.next().text
	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &compareExpr{op: op, left: left, right: right}, nil
}

func (p *parser) parsePrimary() (expr, error) {
	t := p.next()
	switch t.kind {
	case tokenString:
		return &literalExpr{val: t.text}, nil
	case tokenNumber:
		return &literalExpr{val: t.num}, nil
	case tokenTrue:
		return &literalExpr{val: true}, nil
	case tokenFalse:
		return &literalExpr{val: false}, nil
	case tokenNull:
		return &literalExpr{val: nil}, nil
	case tokenIdent:
		segments := []string{t.text}
		for p.peek().kind == tokenDot {
			p.next()
			field := p.next()
			if field.kind != tokenIdent {
				return nil, fmt.Errorf("expected field name at position %d", field.pos)
			}
			segments = append(segments, field.text)
		}
		return &pathExpr{segments: segments}, nil
	case tokenLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return nil, fmt.Errorf("expected ')' at position %d", closing.pos)
		}
		return inner, nil
	}
	return nil, fmt.Errorf("unexpected %q at position %d", t.text, t.pos)
}
