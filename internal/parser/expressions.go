package parser

import (
	"github.com/cwbudde/ecmalite/internal/ast"
	"github.com/cwbudde/ecmalite/internal/lexer"
	"github.com/cwbudde/ecmalite/internal/token"
)

var assignOps = map[token.Kind]bool{
	token.ASSIGN: true, token.PLUS_ASSIGN: true, token.MINUS_ASSIGN: true,
	token.STAR_ASSIGN: true, token.SLASH_ASSIGN: true, token.PERCENT_ASSIGN: true,
	token.STAR_STAR_ASSIGN: true, token.SHL_ASSIGN: true, token.SHR_ASSIGN: true,
	token.USHR_ASSIGN: true, token.AND_ASSIGN: true, token.OR_ASSIGN: true,
	token.XOR_ASSIGN: true, token.LOGIC_AND_ASSIGN: true, token.LOGIC_OR_ASSIGN: true,
	token.NULLISH_ASSIGN: true,
}

// parseAssignment is the top of the precedence cascade. It also owns arrow
// function disambiguation: an arrow's parameter list looks exactly like a
// parenthesized expression until the "=>" is seen, so a single identifier
// followed directly by "=>" is detected here, and a parenthesized form is
// detected via a throwaway lookahead scan (looksLikeArrowParams) before
// falling through to ordinary expression parsing.
func (p *Parser) parseAssignment(noIn bool) *ast.Node {
	if !p.enter() {
		return ast.NewLeaf(ast.UndefinedLit, p.cur)
	}
	defer p.leave()

	pos := p.cur.Pos

	if p.cur.Kind == token.IDENT && p.peek.Kind == token.ARROW && !p.peekNL {
		name := ast.NewLeaf(ast.Ident, p.cur)
		p.advance() // ident
		return p.parseArrowFunction([]*ast.Node{name}, pos)
	}
	if p.cur.Kind == token.LPAREN && p.looksLikeArrowParams() {
		params := p.parseParamList()
		return p.parseArrowFunction(params, pos)
	}

	left := p.parseConditional(noIn)
	if assignOps[p.cur.Kind] {
		opTok := p.cur
		p.advance()
		right := p.parseAssignment(noIn)
		node := ast.NewNode(ast.Assignment, left.Pos, left, right)
		node.Tok = opTok
		return node
	}
	return left
}

// looksLikeArrowParams performs a disposable lookahead scan from the current
// '(' to its matching ')' to see whether "=>" immediately follows, without
// snapshotting or rewinding the real lexer/parser state.
func (p *Parser) looksLikeArrowParams() bool {
	l := lexer.New(p.source[p.cur.Pos.Offset:])
	depth := 0
	for first := true; ; first = false {
		tok := l.NextToken()
		if !tok.Kind.IsPrimary() {
			continue
		}
		if first {
			if tok.Kind != token.LPAREN {
				return false
			}
			depth = 1
			continue
		}
		switch tok.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				for {
					nt := l.NextToken()
					if !nt.Kind.IsPrimary() {
						continue
					}
					return nt.Kind == token.ARROW
				}
			}
		case token.EOF:
			return false
		}
	}
}

func (p *Parser) parseArrowFunction(params []*ast.Node, pos token.Position) *ast.Node {
	p.expect(token.ARROW)
	node := ast.NewNode(ast.ArrowFunction, pos)
	node.Append(params...)
	if p.cur.Kind == token.LBRACE {
		node.Append(p.parseBlock())
	} else {
		node.Append(p.parseAssignment(false))
		node.Flag = true
	}
	return node
}

func (p *Parser) parseConditional(noIn bool) *ast.Node {
	test := p.parseNullishOr(noIn)
	if p.cur.Kind != token.QUESTION {
		return test
	}
	p.advance()
	consequent := p.parseAssignment(false)
	p.expect(token.COLON)
	alternate := p.parseAssignment(noIn)
	return ast.NewNode(ast.Conditional, test.Pos, test, consequent, alternate)
}

func (p *Parser) parseNullishOr(noIn bool) *ast.Node {
	left := p.parseLogicalOr(noIn)
	for p.cur.Kind == token.QUESTION_QUESTION {
		opTok := p.cur
		p.advance()
		right := p.parseLogicalOr(noIn)
		node := ast.NewNode(ast.Logical, left.Pos, left, right)
		node.Tok = opTok
		left = node
	}
	return left
}

func (p *Parser) parseLogicalOr(noIn bool) *ast.Node {
	left := p.parseLogicalAnd(noIn)
	for p.cur.Kind == token.LOGIC_OR {
		opTok := p.cur
		p.advance()
		right := p.parseLogicalAnd(noIn)
		node := ast.NewNode(ast.Logical, left.Pos, left, right)
		node.Tok = opTok
		left = node
	}
	return left
}

func (p *Parser) parseLogicalAnd(noIn bool) *ast.Node {
	left := p.parseBitOr(noIn)
	for p.cur.Kind == token.LOGIC_AND {
		opTok := p.cur
		p.advance()
		right := p.parseBitOr(noIn)
		node := ast.NewNode(ast.Logical, left.Pos, left, right)
		node.Tok = opTok
		left = node
	}
	return left
}

func (p *Parser) parseBitOr(noIn bool) *ast.Node {
	left := p.parseBitXor(noIn)
	for p.cur.Kind == token.PIPE {
		opTok := p.cur
		p.advance()
		right := p.parseBitXor(noIn)
		node := ast.NewNode(ast.Binary, left.Pos, left, right)
		node.Tok = opTok
		left = node
	}
	return left
}

func (p *Parser) parseBitXor(noIn bool) *ast.Node {
	left := p.parseBitAnd(noIn)
	for p.cur.Kind == token.CARET {
		opTok := p.cur
		p.advance()
		right := p.parseBitAnd(noIn)
		node := ast.NewNode(ast.Binary, left.Pos, left, right)
		node.Tok = opTok
		left = node
	}
	return left
}

func (p *Parser) parseBitAnd(noIn bool) *ast.Node {
	left := p.parseEquality(noIn)
	for p.cur.Kind == token.AMP {
		opTok := p.cur
		p.advance()
		right := p.parseEquality(noIn)
		node := ast.NewNode(ast.Binary, left.Pos, left, right)
		node.Tok = opTok
		left = node
	}
	return left
}

func (p *Parser) parseEquality(noIn bool) *ast.Node {
	left := p.parseRelational(noIn)
	for p.cur.Kind == token.EQ || p.cur.Kind == token.NEQ || p.cur.Kind == token.SEQ || p.cur.Kind == token.SNEQ {
		opTok := p.cur
		p.advance()
		right := p.parseRelational(noIn)
		node := ast.NewNode(ast.Binary, left.Pos, left, right)
		node.Tok = opTok
		left = node
	}
	return left
}

// parseRelational threads noIn so a C-style for-loop's init clause can parse
// without the bare 'in' keyword being mistaken for the relational operator
// (it is reserved for for…in's own syntax at that position).
func (p *Parser) parseRelational(noIn bool) *ast.Node {
	left := p.parseShift()
	for {
		switch p.cur.Kind {
		case token.LT, token.LE, token.GT, token.GE, token.INSTANCEOF:
			opTok := p.cur
			p.advance()
			right := p.parseShift()
			node := ast.NewNode(ast.Binary, left.Pos, left, right)
			node.Tok = opTok
			left = node
		case token.IN:
			if noIn {
				return left
			}
			opTok := p.cur
			p.advance()
			right := p.parseShift()
			node := ast.NewNode(ast.Binary, left.Pos, left, right)
			node.Tok = opTok
			left = node
		default:
			return left
		}
	}
}

func (p *Parser) parseShift() *ast.Node {
	left := p.parseAdditive()
	for p.cur.Kind == token.SHL || p.cur.Kind == token.SHR || p.cur.Kind == token.USHR {
		opTok := p.cur
		p.advance()
		right := p.parseAdditive()
		node := ast.NewNode(ast.Binary, left.Pos, left, right)
		node.Tok = opTok
		left = node
	}
	return left
}

func (p *Parser) parseAdditive() *ast.Node {
	left := p.parseMultiplicative()
	for p.cur.Kind == token.PLUS || p.cur.Kind == token.MINUS {
		opTok := p.cur
		p.advance()
		right := p.parseMultiplicative()
		node := ast.NewNode(ast.Binary, left.Pos, left, right)
		node.Tok = opTok
		left = node
	}
	return left
}

func (p *Parser) parseMultiplicative() *ast.Node {
	left := p.parseExponent()
	for p.cur.Kind == token.STAR || p.cur.Kind == token.SLASH || p.cur.Kind == token.PERCENT {
		opTok := p.cur
		p.advance()
		right := p.parseExponent()
		node := ast.NewNode(ast.Binary, left.Pos, left, right)
		node.Tok = opTok
		left = node
	}
	return left
}

// parseExponent is right-associative, built with ShiftRight so that a chain
// like a ** b ** c rotates into a ** (b ** c) rather than nesting
// left-associatively.
func (p *Parser) parseExponent() *ast.Node {
	base := p.parseUnary()
	if p.cur.Kind != token.STAR_STAR {
		return base
	}
	opTok := p.cur
	p.advance()
	right := p.parseExponent()
	node := ast.NewNode(ast.Binary, base.Pos, right)
	node.Tok = opTok
	return node.ShiftRight(base)
}

func (p *Parser) parseUnary() *ast.Node {
	switch p.cur.Kind {
	case token.BANG, token.TILDE, token.PLUS, token.MINUS, token.TYPEOF, token.VOID, token.DELETE:
		opTok := p.cur
		pos := p.cur.Pos
		p.advance()
		operand := p.parseUnary()
		node := ast.NewNode(ast.Unary, pos, operand)
		node.Tok = opTok
		return node
	case token.INC, token.DEC:
		opTok := p.cur
		pos := p.cur.Pos
		p.advance()
		operand := p.parseUnary()
		node := ast.NewNode(ast.UpdateExpr, pos, operand)
		node.Tok = opTok
		node.Flag = true // prefix
		return node
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() *ast.Node {
	expr := p.parseCallMemberExpr()
	if (p.cur.Kind == token.INC || p.cur.Kind == token.DEC) && !p.curNL {
		opTok := p.cur
		p.advance()
		node := ast.NewNode(ast.UpdateExpr, expr.Pos, expr)
		node.Tok = opTok
		node.Flag = false // postfix
		return node
	}
	return expr
}

func (p *Parser) parseCallMemberExpr() *ast.Node {
	var primary *ast.Node
	if p.cur.Kind == token.NEW {
		primary = p.parseNewExpr()
	} else {
		primary = p.parsePrimary()
	}
	return p.parseTail(primary, true)
}

// parseNewExpr parses "new Callee(args)", where Callee may itself chain dot
// and bracket member access (but not a call — in "new a.b()" the
// parenthesized arguments belong to "new" and construct a.b; b is not called).
func (p *Parser) parseNewExpr() *ast.Node {
	pos := p.cur.Pos
	p.advance() // 'new'
	var callee *ast.Node
	if p.cur.Kind == token.NEW {
		callee = p.parseNewExpr()
	} else {
		callee = p.parsePrimary()
	}
	callee = p.parseTail(callee, false)

	var args []*ast.Node
	if p.cur.Kind == token.LPAREN {
		args = p.parseArguments()
	}
	node := ast.NewNode(ast.NewExpr, pos, args...)
	return node.ShiftLeft(callee)
}

// parseTail consumes a chain of member-access and (when allowCall) call
// suffixes, each built via ShiftLeft so the previously-built expression
// becomes the new node's leading child.
func (p *Parser) parseTail(primary *ast.Node, allowCall bool) *ast.Node {
	for {
		switch p.cur.Kind {
		case token.DOT:
			pos := p.cur.Pos
			p.advance()
			nameTok := p.parsePropertyName()
			node := ast.NewNode(ast.MemberDot, pos)
			node.Tok = nameTok
			primary = node.ShiftLeft(primary)
		case token.QUESTION_DOT:
			if !allowCall {
				return primary
			}
			pos := p.cur.Pos
			p.advance()
			switch p.cur.Kind {
			case token.LPAREN:
				args := p.parseArguments()
				node := ast.NewNode(ast.CallExpr, pos, args...)
				node.Flag = true
				primary = node.ShiftLeft(primary)
			case token.LBRACKET:
				p.advance()
				idx := p.parseExpressionList()
				p.expect(token.RBRACKET)
				node := ast.NewNode(ast.MemberBracket, pos, idx)
				node.Flag = true
				primary = node.ShiftLeft(primary)
			default:
				nameTok := p.parsePropertyName()
				node := ast.NewNode(ast.MemberDot, pos)
				node.Tok = nameTok
				node.Flag = true
				primary = node.ShiftLeft(primary)
			}
		case token.LBRACKET:
			pos := p.cur.Pos
			p.advance()
			idx := p.parseExpressionList()
			p.expect(token.RBRACKET)
			node := ast.NewNode(ast.MemberBracket, pos, idx)
			primary = node.ShiftLeft(primary)
		case token.LPAREN:
			if !allowCall {
				return primary
			}
			pos := p.cur.Pos
			args := p.parseArguments()
			node := ast.NewNode(ast.CallExpr, pos, args...)
			primary = node.ShiftLeft(primary)
		default:
			return primary
		}
	}
}

// parsePropertyName accepts an identifier or any reserved word after '.' or
// '?.' — "obj.catch" and "obj.class" are valid property accesses even though
// the words are keywords at statement position.
func (p *Parser) parsePropertyName() token.Token {
	tok := p.cur
	if tok.Kind != token.IDENT && !tok.Kind.IsKeyword() {
		p.errorf(tok.Pos, "expected property name, got %s %q", tok.Kind, tok.Literal)
	}
	p.advance()
	return tok
}

func (p *Parser) parseArguments() []*ast.Node {
	p.expect(token.LPAREN)
	var args []*ast.Node
	for p.cur.Kind != token.RPAREN && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.SPREAD {
			pos := p.cur.Pos
			p.advance()
			arg := p.parseAssignment(false)
			args = append(args, ast.NewNode(ast.Spread, pos, arg))
		} else {
			args = append(args, p.parseAssignment(false))
		}
		if p.cur.Kind != token.COMMA {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimary() *ast.Node {
	tok := p.cur
	switch tok.Kind {
	case token.IDENT:
		p.advance()
		return ast.NewLeaf(ast.Ident, tok)
	case token.NUMBER:
		p.advance()
		return ast.NewLeaf(ast.NumberLit, tok)
	case token.STRING:
		p.advance()
		return ast.NewLeaf(ast.StringLit, tok)
	case token.TRUE, token.FALSE:
		p.advance()
		return ast.NewLeaf(ast.BoolLit, tok)
	case token.NULL:
		p.advance()
		return ast.NewLeaf(ast.NullLit, tok)
	case token.UNDEFINED:
		p.advance()
		return ast.NewLeaf(ast.UndefinedLit, tok)
	case token.THIS:
		p.advance()
		return ast.NewLeaf(ast.ThisExpr, tok)
	case token.REGEX:
		p.advance()
		return ast.NewLeaf(ast.RegexLit, tok)
	case token.LPAREN:
		p.advance()
		expr := p.parseExpressionList()
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.FUNCTION:
		return p.parseFunctionExpr()
	case token.BACKTICK:
		return p.parseTemplateLiteral()
	default:
		p.errorf(tok.Pos, "unexpected token %s %q", tok.Kind, tok.Literal)
		p.advance()
		return ast.NewLeaf(ast.UndefinedLit, tok)
	}
}

// parseArrayLiteral also serves as the destructuring array-pattern parser
//: the interpreter distinguishes bind- from eval-context, so a single
// parse path covers both "[1, 2, x]" and "let [a, , ...rest] = xs".
func (p *Parser) parseArrayLiteral() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.LBRACKET)
	node := ast.NewNode(ast.ArrayLit, pos)
	for p.cur.Kind != token.RBRACKET && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.COMMA {
			node.Append(nil) // elision hole
			p.advance()
			continue
		}
		if p.cur.Kind == token.SPREAD {
			spreadPos := p.cur.Pos
			p.advance()
			elem := p.parseAssignment(false)
			node.Append(ast.NewNode(ast.Spread, spreadPos, elem))
		} else {
			node.Append(p.parseAssignment(false))
		}
		if p.cur.Kind == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACKET)
	return node
}

// parseObjectLiteral also serves as the destructuring object-pattern parser,
// for the same reason as parseArrayLiteral.
func (p *Parser) parseObjectLiteral() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.LBRACE)
	node := ast.NewNode(ast.ObjectLit, pos)
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.SPREAD {
			spreadPos := p.cur.Pos
			p.advance()
			val := p.parseAssignment(false)
			node.Append(ast.NewNode(ast.Spread, spreadPos, val))
		} else {
			node.Append(p.parseProperty())
		}
		if p.cur.Kind == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return node
}

func (p *Parser) parseProperty() *ast.Node {
	pos := p.cur.Pos
	if p.cur.Kind == token.LBRACKET {
		p.advance()
		keyExpr := p.parseAssignment(false)
		p.expect(token.RBRACKET)
		p.expect(token.COLON)
		val := p.parseAssignment(false)
		node := ast.NewNode(ast.Property, pos, keyExpr, val)
		node.Flag = true // computed
		return node
	}

	keyTok := p.cur
	if keyTok.Kind != token.IDENT && keyTok.Kind != token.STRING &&
		keyTok.Kind != token.NUMBER && !keyTok.Kind.IsKeyword() {
		p.errorf(keyTok.Pos, "expected property key, got %s %q", keyTok.Kind, keyTok.Literal)
	}
	p.advance()

	keyKind := ast.Ident
	switch keyTok.Kind {
	case token.STRING:
		keyKind = ast.StringLit
	case token.NUMBER:
		keyKind = ast.NumberLit
	}
	keyNode := ast.NewLeaf(keyKind, keyTok)

	switch p.cur.Kind {
	case token.COLON:
		p.advance()
		val := p.parseAssignment(false)
		return ast.NewNode(ast.Property, pos, keyNode, val)
	case token.ASSIGN:
		// shorthand with a destructuring default: "{ a = 1 }"
		assignPos := p.cur.Pos
		p.advance()
		def := p.parseAssignment(false)
		val := ast.NewNode(ast.Assignment, assignPos, ast.NewLeaf(ast.Ident, keyTok), def)
		return ast.NewNode(ast.Property, pos, keyNode, val)
	default:
		// plain shorthand: "{ a }" is short for "{ a: a }"
		return ast.NewNode(ast.Property, pos, keyNode, ast.NewLeaf(ast.Ident, keyTok))
	}
}

func (p *Parser) parseFunctionExpr() *ast.Node {
	pos := p.cur.Pos
	p.advance() // 'function'
	var name *ast.Node
	if p.cur.Kind == token.IDENT {
		name = ast.NewLeaf(ast.Ident, p.cur)
		p.advance()
	}
	params := p.parseParamList()
	body := p.parseBlock()

	node := ast.NewNode(ast.FunctionExpr, pos, name)
	node.Append(params...)
	node.Append(body)
	return node
}

// parseTemplateLiteral assembles a flat sequence of TemplateSpan leaves
// (raw source text between interpolations) interleaved with full
// expressions, matching how the lexer hands back TEMPLATE/DOLLAR_L_CURLY
// tokens and resumes template-mode scanning after each interpolation's
// closing '}'.
func (p *Parser) parseTemplateLiteral() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.BACKTICK)
	node := ast.NewNode(ast.TemplateLit, pos)
	for {
		if p.cur.Kind == token.TEMPLATE {
			node.Append(ast.NewLeaf(ast.TemplateSpan, p.cur))
			p.advance()
		}
		switch p.cur.Kind {
		case token.BACKTICK:
			p.advance()
			return node
		case token.DOLLAR_L_CURLY:
			p.advance()
			node.Append(p.parseExpressionList())
			p.expect(token.RBRACE)
		case token.EOF:
			p.errorf(p.cur.Pos, "unterminated template literal")
			return node
		default:
			p.errorf(p.cur.Pos, "unexpected token %s in template literal", p.cur.Kind)
			p.advance()
			return node
		}
	}
}
