package parser

import (
	"github.com/mamba-lang/mamba/internal/ast"
	"github.com/mamba-lang/mamba/internal/i18n"
	"github.com/mamba-lang/mamba/internal/token"
)

// ============================================================================
// Expressions
// ============================================================================
//
// Precedence, lowest to highest:
//
//	lambda
//	a if cond else b
//	name := value
//	or
//	and
//	not
//	comparison chains (==, !=, <, <=, >, >=, in, not in, is, is not)
//	|    ^    &
//	<<  >>
//	+  -
//	*  /  //  %
//	unary +  -  ~
//	** (right-associative)
//	postfix: call, subscript, attribute
//
// ============================================================================

// parseExpression is the entry point for a full expression. It carries
// the depth check that keeps adversarial nesting from overflowing the
// stack.
func (p *Parser) parseExpression() ast.Expression {
	p.exprDepth++
	defer func() { p.exprDepth-- }()
	if p.exprDepth > maxNestingDepth {
		p.error(NestingTooDeep, i18n.T(i18n.ErrNestingTooDeep, maxNestingDepth))
		return nil
	}

	if p.check(token.LAMBDA) {
		return p.parseLambda()
	}
	return p.parseTernary()
}

func (p *Parser) parseTernary() ast.Expression {
	value := p.parseWalrus()
	if p.panicMode {
		return value
	}

	if p.match(token.IF) {
		cond := p.parseOr()
		if p.panicMode {
			return nil
		}

		p.consumeAfter(token.ELSE, "'else'", "conditional expression")
		if p.panicMode {
			return nil
		}

		orElse := p.parseExpression() // allows chaining and lambda
		if p.panicMode {
			return nil
		}

		return &ast.TernaryExpr{Value: value, Cond: cond, OrElse: orElse}
	}

	return value
}

func (p *Parser) parseWalrus() ast.Expression {
	expr := p.parseOr()
	if p.panicMode {
		return expr
	}

	if p.check(token.WALRUS) {
		op := p.advance()

		ident, ok := expr.(*ast.Identifier)
		if !ok {
			p.errorAt(expr.Pos(), InvalidAssignTarget,
				i18n.T(i18n.ErrWalrusTarget, describeExpr(expr)))
			return nil
		}

		value := p.parseOr()
		if p.panicMode {
			return nil
		}
		return &ast.WalrusExpr{Target: ident, Op: op, Value: value}
	}

	return expr
}

// parseOr and parseAnd collect runs of the same operator into a single
// BoolOp node: "a or b or c" has one node with three operands.
func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	if p.panicMode || !p.check(token.OR) {
		return left
	}

	values := []ast.Expression{left}
	for p.match(token.OR) {
		right := p.parseAnd()
		if p.panicMode {
			return nil
		}
		values = append(values, right)
	}
	return &ast.BoolOpExpr{Op: token.OR, Values: values}
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	if p.panicMode || !p.check(token.AND) {
		return left
	}

	values := []ast.Expression{left}
	for p.match(token.AND) {
		right := p.parseNot()
		if p.panicMode {
			return nil
		}
		values = append(values, right)
	}
	return &ast.BoolOpExpr{Op: token.AND, Values: values}
}

func (p *Parser) parseNot() ast.Expression {
	p.exprDepth++
	defer func() { p.exprDepth-- }()
	if p.exprDepth > maxNestingDepth {
		p.error(NestingTooDeep, i18n.T(i18n.ErrNestingTooDeep, maxNestingDepth))
		return nil
	}

	if p.check(token.NOT) && p.peekNext().Type != token.IN {
		op := p.advance()
		operand := p.parseNot()
		if p.panicMode {
			return nil
		}
		return &ast.UnaryExpr{OpToken: op, Op: token.NOT, Operand: operand}
	}
	return p.parseComparison()
}

// parseComparison collects a whole chain into one Compare node, so
// "a < b < c" keeps its chained meaning instead of nesting.
func (p *Parser) parseComparison() ast.Expression {
	left := p.parseBitOr()
	if p.panicMode {
		return left
	}

	var ops []ast.CmpOp
	var opToks []token.Token
	var comparators []ast.Expression

	for {
		op, opTok, ok := p.matchCompareOp()
		if !ok {
			break
		}
		right := p.parseBitOr()
		if p.panicMode {
			return nil
		}
		ops = append(ops, op)
		opToks = append(opToks, opTok)
		comparators = append(comparators, right)
	}

	if len(ops) == 0 {
		return left
	}
	return &ast.CompareExpr{Left: left, Ops: ops, OpTokens: opToks, Comparators: comparators}
}

// matchCompareOp recognizes the comparison operators, including the
// two-token "not in" and "is not" forms by lookahead.
func (p *Parser) matchCompareOp() (ast.CmpOp, token.Token, bool) {
	switch p.peek().Type {
	case token.NOT:
		if p.peekNext().Type == token.IN {
			tok := p.advance()
			p.advance()
			return ast.CmpNotIn, tok, true
		}
		return 0, token.Token{}, false

	case token.IS:
		tok := p.advance()
		if p.check(token.NOT) {
			p.advance()
			return ast.CmpIsNot, tok, true
		}
		return ast.CmpIs, tok, true

	case token.IN:
		return ast.CmpIn, p.advance(), true
	case token.EQ:
		return ast.CmpEq, p.advance(), true
	case token.NE:
		return ast.CmpNotEq, p.advance(), true
	case token.LT:
		return ast.CmpLt, p.advance(), true
	case token.LE:
		return ast.CmpLtE, p.advance(), true
	case token.GT:
		return ast.CmpGt, p.advance(), true
	case token.GE:
		return ast.CmpGtE, p.advance(), true
	}
	return 0, token.Token{}, false
}

func (p *Parser) parseBitOr() ast.Expression {
	left := p.parseBitXor()
	for !p.panicMode && p.check(token.BIT_OR) {
		op := p.advance()
		right := p.parseBitXor()
		if p.panicMode {
			return nil
		}
		left = &ast.BinaryExpr{Left: left, OpToken: op, Op: op.Type, Right: right}
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expression {
	left := p.parseBitAnd()
	for !p.panicMode && p.check(token.BIT_XOR) {
		op := p.advance()
		right := p.parseBitAnd()
		if p.panicMode {
			return nil
		}
		left = &ast.BinaryExpr{Left: left, OpToken: op, Op: op.Type, Right: right}
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expression {
	left := p.parseShift()
	for !p.panicMode && p.check(token.BIT_AND) {
		op := p.advance()
		right := p.parseShift()
		if p.panicMode {
			return nil
		}
		left = &ast.BinaryExpr{Left: left, OpToken: op, Op: op.Type, Right: right}
	}
	return left
}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseAdditive()
	for !p.panicMode && p.checkAny(token.LEFT_SHIFT, token.RIGHT_SHIFT) {
		op := p.advance()
		right := p.parseAdditive()
		if p.panicMode {
			return nil
		}
		left = &ast.BinaryExpr{Left: left, OpToken: op, Op: op.Type, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for !p.panicMode && p.checkAny(token.PLUS, token.MINUS) {
		op := p.advance()
		right := p.parseMultiplicative()
		if p.panicMode {
			return nil
		}
		left = &ast.BinaryExpr{Left: left, OpToken: op, Op: op.Type, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for !p.panicMode && p.checkAny(token.STAR, token.SLASH, token.DOUBLE_SLASH, token.PERCENT) {
		op := p.advance()
		right := p.parseUnary()
		if p.panicMode {
			return nil
		}
		left = &ast.BinaryExpr{Left: left, OpToken: op, Op: op.Type, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	p.exprDepth++
	defer func() { p.exprDepth-- }()
	if p.exprDepth > maxNestingDepth {
		p.error(NestingTooDeep, i18n.T(i18n.ErrNestingTooDeep, maxNestingDepth))
		return nil
	}

	if p.checkAny(token.PLUS, token.MINUS, token.BIT_NOT) {
		op := p.advance()
		operand := p.parseUnary()
		if p.panicMode {
			return nil
		}
		return &ast.UnaryExpr{OpToken: op, Op: op.Type, Operand: operand}
	}
	return p.parsePower()
}

// parsePower handles **, right-associative: the right operand re-enters
// at unary level so "a ** b ** c" is a ** (b ** c) and "2 ** -1" works.
func (p *Parser) parsePower() ast.Expression {
	left := p.parsePostfix()
	if p.panicMode {
		return left
	}

	if p.check(token.DOUBLE_STAR) {
		op := p.advance()
		right := p.parseUnary()
		if p.panicMode {
			return nil
		}
		return &ast.BinaryExpr{Left: left, OpToken: op, Op: op.Type, Right: right}
	}
	return left
}

// parsePostfix chains calls, subscripts and attribute accesses after a
// primary, left-associatively.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()

	for !p.panicMode {
		switch p.peek().Type {
		case token.LPAREN:
			lparen := p.advance()
			args := p.parseCallArgs(lparen)
			if p.panicMode {
				return nil
			}
			rparen := p.consumeAfter(token.RPAREN, "')'", "arguments")
			if p.panicMode {
				return nil
			}
			expr = &ast.CallExpr{Func: expr, LParen: lparen, Args: args, RParen: rparen}

		case token.LBRACKET:
			lbracket := p.advance()
			index := p.parseSubscriptIndex()
			if p.panicMode {
				return nil
			}
			rbracket := p.consumeAfter(token.RBRACKET, "']'", "subscript index")
			if p.panicMode {
				return nil
			}
			expr = &ast.SubscriptExpr{Target: expr, LBracket: lbracket, Index: index, RBracket: rbracket}

		case token.DOT:
			dot := p.advance()
			attr := p.consumeIdentAfter("identifier", "'.'")
			if p.panicMode {
				return nil
			}
			expr = &ast.AttributeExpr{Target: expr, Dot: dot, Attr: attr}

		default:
			return expr
		}
	}
	return expr
}

// parseCallArgs parses call arguments. Starred arguments are ordinary
// Starred expressions; a bare "expr for ..." argument is a generator
// expression passed as the only argument.
func (p *Parser) parseCallArgs(lparen token.Token) []ast.Expression {
	if p.check(token.RPAREN) {
		return nil
	}

	var args []ast.Expression
	for {
		arg := p.parseStarredOrExpr()
		if p.panicMode {
			return nil
		}

		if len(args) == 0 && p.check(token.FOR) {
			clauses := p.parseCompClauses()
			if p.panicMode {
				return nil
			}
			return []ast.Expression{&ast.GeneratorExpr{LParen: lparen, Elt: arg, Clauses: clauses}}
		}

		args = append(args, arg)

		if !p.match(token.COMMA) {
			break
		}
		if p.check(token.RPAREN) {
			break
		}
	}
	return args
}

// parseSubscriptIndex parses the index of a subscript; two or more
// comma-separated indices become a tuple.
func (p *Parser) parseSubscriptIndex() ast.Expression {
	first := p.parseExpression()
	if p.panicMode || !p.check(token.COMMA) {
		return first
	}

	elements := []ast.Expression{first}
	for p.match(token.COMMA) {
		if p.check(token.RBRACKET) {
			break
		}
		el := p.parseExpression()
		if p.panicMode {
			return nil
		}
		elements = append(elements, el)
	}

	if len(elements) == 1 {
		return elements[0]
	}
	return &ast.TupleExpr{Elements: elements}
}

// ----------------------------------------------------------------------------
// Primary expressions
// ----------------------------------------------------------------------------

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()

	switch tok.Type {
	case token.INT:
		p.advance()
		iv := tok.Value.(token.IntValue)
		return &ast.IntLit{Token: tok, Value: iv.Value, Base: iv.Base}

	case token.FLOAT:
		p.advance()
		return &ast.FloatLit{Token: tok, Value: tok.Value.(float64)}

	case token.STRING:
		p.advance()
		sv := tok.Value.(token.StringValue)
		return &ast.StringLit{
			Token:     tok,
			Value:     sv.Value,
			Raw:       sv.Raw,
			Formatted: sv.Formatted,
			Triple:    sv.Triple,
		}

	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Token: tok, Value: true}

	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Token: tok, Value: false}

	case token.NONE:
		p.advance()
		return &ast.NoneLit{Token: tok}

	case token.ELLIPSIS:
		p.advance()
		return &ast.EllipsisLit{Token: tok}

	case token.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}

	case token.LAMBDA:
		return p.parseLambda()

	case token.LPAREN:
		return p.parseParenExpr()

	case token.LBRACKET:
		return p.parseListDisplay()

	case token.LBRACE:
		return p.parseBraceDisplay()

	case token.AWAIT, token.YIELD:
		p.error(Unsupported, i18n.T(i18n.ErrExprNotSupported, tok.Literal))
		return nil

	case token.EOF:
		p.errorAt(p.previous().Pos, UnexpectedEOF,
			i18n.T(i18n.ErrExpectedExpression, tok.Describe()))
		return nil

	case token.NEWLINE, token.INDENT, token.DEDENT:
		// Report at the previous token so the error names the operator
		// or delimiter that is missing its operand, not the line break.
		p.errorAt(p.previous().Pos, ExpectedExpression,
			i18n.T(i18n.ErrExpectedExpression, tok.Describe()))
		return nil

	default:
		p.error(ExpectedExpression, i18n.T(i18n.ErrExpectedExpression, tok.Describe()))
		return nil
	}
}

// parseParenExpr disambiguates the parenthesized forms: the empty tuple,
// a generator expression, a tuple, or a plain grouped expression (which
// is transparent, no extra node).
func (p *Parser) parseParenExpr() ast.Expression {
	lparen := p.advance()

	if p.check(token.RPAREN) {
		p.advance()
		return &ast.TupleExpr{LParen: lparen}
	}

	first := p.parseStarredOrExpr()
	if p.panicMode {
		return nil
	}

	if p.check(token.FOR) {
		clauses := p.parseCompClauses()
		if p.panicMode {
			return nil
		}
		rparen := p.consumeAfter(token.RPAREN, "')'", "generator expression")
		if p.panicMode {
			return nil
		}
		return &ast.GeneratorExpr{LParen: lparen, Elt: first, Clauses: clauses, RParen: rparen}
	}

	if p.check(token.COMMA) {
		elements := []ast.Expression{first}
		for p.match(token.COMMA) {
			if p.check(token.RPAREN) {
				break
			}
			el := p.parseStarredOrExpr()
			if p.panicMode {
				return nil
			}
			elements = append(elements, el)
		}
		p.consumeAfter(token.RPAREN, "')'", "tuple elements")
		if p.panicMode {
			return nil
		}
		return &ast.TupleExpr{LParen: lparen, Elements: elements}
	}

	p.consumeAfter(token.RPAREN, "')'", "expression")
	if p.panicMode {
		return nil
	}
	return first
}

// parseListDisplay parses [a, b, c] and [expr for ...].
func (p *Parser) parseListDisplay() ast.Expression {
	lbracket := p.advance()

	if p.check(token.RBRACKET) {
		rbracket := p.advance()
		return &ast.ListExpr{LBracket: lbracket, RBracket: rbracket}
	}

	first := p.parseStarredOrExpr()
	if p.panicMode {
		return nil
	}

	if p.check(token.FOR) {
		clauses := p.parseCompClauses()
		if p.panicMode {
			return nil
		}
		rbracket := p.consumeAfter(token.RBRACKET, "']'", "list comprehension")
		if p.panicMode {
			return nil
		}
		return &ast.ListCompExpr{LBracket: lbracket, Elt: first, Clauses: clauses, RBracket: rbracket}
	}

	elements := []ast.Expression{first}
	for p.match(token.COMMA) {
		if p.check(token.RBRACKET) {
			break
		}
		el := p.parseStarredOrExpr()
		if p.panicMode {
			return nil
		}
		elements = append(elements, el)
	}

	rbracket := p.consumeAfter(token.RBRACKET, "']'", "list elements")
	if p.panicMode {
		return nil
	}
	return &ast.ListExpr{LBracket: lbracket, Elements: elements, RBracket: rbracket}
}

// parseBraceDisplay disambiguates the brace forms: {} is the empty dict,
// a leading "key: value" makes a dict or dict comprehension, anything
// else a set or set comprehension.
func (p *Parser) parseBraceDisplay() ast.Expression {
	lbrace := p.advance()

	if p.check(token.RBRACE) {
		rbrace := p.advance()
		return &ast.DictExpr{LBrace: lbrace, RBrace: rbrace}
	}

	first := p.parseExpression()
	if p.panicMode {
		return nil
	}

	if p.match(token.COLON) {
		value := p.parseExpression()
		if p.panicMode {
			return nil
		}

		if p.check(token.FOR) {
			clauses := p.parseCompClauses()
			if p.panicMode {
				return nil
			}
			rbrace := p.consumeAfter(token.RBRACE, "'}'", "dict comprehension")
			if p.panicMode {
				return nil
			}
			return &ast.DictCompExpr{LBrace: lbrace, Key: first, Value: value, Clauses: clauses, RBrace: rbrace}
		}

		entries := []ast.DictEntry{{Key: first, Value: value}}
		for p.match(token.COMMA) {
			if p.check(token.RBRACE) {
				break
			}
			key := p.parseExpression()
			if p.panicMode {
				return nil
			}
			p.consumeAfter(token.COLON, "':'", "dict key")
			if p.panicMode {
				return nil
			}
			val := p.parseExpression()
			if p.panicMode {
				return nil
			}
			entries = append(entries, ast.DictEntry{Key: key, Value: val})
		}

		rbrace := p.consumeAfter(token.RBRACE, "'}'", "dict entries")
		if p.panicMode {
			return nil
		}
		return &ast.DictExpr{LBrace: lbrace, Entries: entries, RBrace: rbrace}
	}

	if p.check(token.FOR) {
		clauses := p.parseCompClauses()
		if p.panicMode {
			return nil
		}
		rbrace := p.consumeAfter(token.RBRACE, "'}'", "set comprehension")
		if p.panicMode {
			return nil
		}
		return &ast.SetCompExpr{LBrace: lbrace, Elt: first, Clauses: clauses, RBrace: rbrace}
	}

	elements := []ast.Expression{first}
	for p.match(token.COMMA) {
		if p.check(token.RBRACE) {
			break
		}
		el := p.parseExpression()
		if p.panicMode {
			return nil
		}
		elements = append(elements, el)
	}

	rbrace := p.consumeAfter(token.RBRACE, "'}'", "set elements")
	if p.panicMode {
		return nil
	}
	return &ast.SetExpr{LBrace: lbrace, Elements: elements, RBrace: rbrace}
}

// ----------------------------------------------------------------------------
// Comprehension clauses
// ----------------------------------------------------------------------------

// parseCompClauses parses one or more "for target in iter [if cond ...]"
// clauses. The iterable and conditions parse at 'or' precedence so a
// trailing "if" filter is not swallowed as a ternary.
func (p *Parser) parseCompClauses() []*ast.CompClause {
	var clauses []*ast.CompClause

	for p.check(token.FOR) {
		forTok := p.advance()

		target := p.parseForTarget()
		if p.panicMode {
			return nil
		}

		p.consumeAfter(token.IN, "'in'", "comprehension target")
		if p.panicMode {
			return nil
		}

		iter := p.parseOr()
		if p.panicMode {
			return nil
		}

		clause := &ast.CompClause{For: forTok, Target: target, Iter: iter}
		for p.check(token.IF) {
			p.advance()
			cond := p.parseOr()
			if p.panicMode {
				return nil
			}
			clause.Ifs = append(clause.Ifs, cond)
		}

		clauses = append(clauses, clause)
	}

	return clauses
}

// ----------------------------------------------------------------------------
// Lambda
// ----------------------------------------------------------------------------

// parseLambda parses lambda params: body. The parameter grammar is the
// function one, without annotations (a colon would be ambiguous with the
// body separator).
func (p *Parser) parseLambda() ast.Expression {
	lam := p.advance()

	params := p.parseParamList(token.COLON, false)
	if p.panicMode {
		return nil
	}

	p.consumeAfter(token.COLON, "':'", "lambda parameters")
	if p.panicMode {
		return nil
	}

	body := p.parseExpression()
	if p.panicMode {
		return nil
	}

	return &ast.LambdaExpr{Lambda: lam, Params: params, Body: body}
}
