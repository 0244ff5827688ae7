package parser

import (
	"github.com/cwbudde/ecmalite/internal/ast"
	"github.com/cwbudde/ecmalite/internal/token"
)

// parseStatement dispatches on the current token. A leading '{' is always a
// Block, never an object literal: statement position never attempts an
// expression parse for '{', so the ambiguity only exists at expression
// position where '{' is unambiguously an object literal.
func (p *Parser) parseStatement() *ast.Node {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	switch p.cur.Kind {
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.VAR, token.LET, token.CONST:
		return p.parseVarDeclStatement()
	case token.RETURN:
		return p.parseReturn()
	case token.THROW:
		return p.parseThrow()
	case token.TRY:
		return p.parseTry()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.SWITCH:
		return p.parseSwitch()
	case token.BREAK:
		return p.parseBreakContinue(ast.Break)
	case token.CONTINUE:
		return p.parseBreakContinue(ast.Continue)
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.SEMICOLON:
		pos := p.cur.Pos
		p.advance()
		return ast.NewNode(ast.EmptyStmt, pos)
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlock() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.LBRACE)
	block := ast.NewNode(ast.Block, pos)
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Append(stmt)
		}
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseIf() *ast.Node {
	pos := p.cur.Pos
	p.advance() // 'if'
	p.expect(token.LPAREN)
	test := p.parseExpressionList()
	p.expect(token.RPAREN)
	consequent := p.parseStatement()
	var alternate *ast.Node
	if p.cur.Kind == token.ELSE {
		p.advance()
		alternate = p.parseStatement()
	}
	return ast.NewNode(ast.If, pos, test, consequent, alternate)
}

// parseVarDeclStatement parses a var/let/const declaration followed by ASI,
// for use at statement position.
func (p *Parser) parseVarDeclStatement() *ast.Node {
	decl := p.parseVarDecl()
	p.consumeSemicolon()
	return decl
}

// parseVarDecl parses "var|let|const binding (= init)?, ..." without
// consuming a trailing terminator, so C-style for-loop headers can reuse it.
func (p *Parser) parseVarDecl() *ast.Node {
	pos := p.cur.Pos
	kindTok := p.cur
	p.advance()

	decl := ast.NewNode(ast.VarDecl, pos)
	decl.Tok = kindTok
	for {
		target := p.parseBindingTarget()
		var init *ast.Node
		if p.cur.Kind == token.ASSIGN {
			p.advance()
			init = p.parseAssignment(false)
		}
		decl.Append(ast.NewNode(ast.VarDeclarator, target.Pos, target, init))
		if p.cur.Kind != token.COMMA {
			break
		}
		p.advance()
	}
	return decl
}

// parseBindingTarget parses an identifier or a destructuring pattern (array
// or object literal syntax, reused verbatim — a binding pattern parses as
// the same node kinds as its expression counterpart).
func (p *Parser) parseBindingTarget() *ast.Node {
	switch p.cur.Kind {
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	default:
		tok := p.expect(token.IDENT)
		return ast.NewLeaf(ast.Ident, tok)
	}
}

func (p *Parser) parseReturn() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	var arg *ast.Node
	if p.cur.Kind != token.SEMICOLON && p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF && !p.curNL {
		arg = p.parseExpressionList()
	}
	p.consumeSemicolon()
	return ast.NewNode(ast.Return, pos, arg)
}

func (p *Parser) parseThrow() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	arg := p.parseExpressionList()
	p.consumeSemicolon()
	return ast.NewNode(ast.Throw, pos, arg)
}

func (p *Parser) parseTry() *ast.Node {
	pos := p.cur.Pos
	p.advance() // 'try'
	block := p.parseBlock()
	var catchParam, catchBlock, finallyBlock *ast.Node
	if p.cur.Kind == token.CATCH {
		p.advance()
		if p.cur.Kind == token.LPAREN {
			p.advance()
			catchParam = p.parseBindingTarget()
			p.expect(token.RPAREN)
		}
		catchBlock = p.parseBlock()
	}
	if p.cur.Kind == token.FINALLY {
		p.advance()
		finallyBlock = p.parseBlock()
	}
	return ast.NewNode(ast.Try, pos, block, catchParam, catchBlock, finallyBlock)
}

// parseFor parses both the C-style for(init; test; update) body and the
// for…in / for…of forms.
func (p *Parser) parseFor() *ast.Node {
	pos := p.cur.Pos
	p.advance() // 'for'
	p.expect(token.LPAREN)

	if p.cur.Kind == token.SEMICOLON {
		return p.finishCStyleFor(pos, nil)
	}

	if p.cur.Kind == token.VAR || p.cur.Kind == token.LET || p.cur.Kind == token.CONST {
		declKind := p.cur
		declPos := p.cur.Pos
		p.advance()
		target := p.parseBindingTarget()

		if p.cur.Kind == token.IN || p.cur.Kind == token.OF {
			kind := ast.ForIn
			if p.cur.Kind == token.OF {
				kind = ast.ForOf
			}
			p.advance()
			right := p.parseAssignment(false)
			p.expect(token.RPAREN)
			body := p.parseStatement()
			decl := ast.NewNode(ast.VarDecl, declPos)
			decl.Tok = declKind
			decl.Append(ast.NewNode(ast.VarDeclarator, target.Pos, target, nil))
			return ast.NewNode(kind, pos, decl, right, body)
		}

		// C-style: finish this declarator list, possibly with more bindings.
		var init *ast.Node
		if p.cur.Kind == token.ASSIGN {
			p.advance()
			init = p.parseAssignment(false)
		}
		decl := ast.NewNode(ast.VarDecl, declPos)
		decl.Tok = declKind
		decl.Append(ast.NewNode(ast.VarDeclarator, target.Pos, target, init))
		for p.cur.Kind == token.COMMA {
			p.advance()
			t := p.parseBindingTarget()
			var i *ast.Node
			if p.cur.Kind == token.ASSIGN {
				p.advance()
				i = p.parseAssignment(false)
			}
			decl.Append(ast.NewNode(ast.VarDeclarator, t.Pos, t, i))
		}
		p.expect(token.SEMICOLON)
		return p.finishCStyleFor(pos, decl)
	}

	// No declaration keyword: either "for (expr in/of expr)" or a C-style
	// init expression list.
	exprPos := p.cur.Pos
	left := p.parseAssignment(true) // noIn=true: don't let relational-level 'in' consume it
	if p.cur.Kind == token.IN || p.cur.Kind == token.OF {
		kind := ast.ForIn
		if p.cur.Kind == token.OF {
			kind = ast.ForOf
		}
		p.advance()
		right := p.parseAssignment(false)
		p.expect(token.RPAREN)
		body := p.parseStatement()
		return ast.NewNode(kind, pos, left, right, body)
	}
	init := left
	for p.cur.Kind == token.COMMA {
		p.advance()
		right := p.parseAssignment(true)
		seq := ast.NewNode(ast.SequenceExpr, exprPos, init, right)
		init = seq
	}
	p.expect(token.SEMICOLON)
	return p.finishCStyleFor(pos, init)
}

func (p *Parser) finishCStyleFor(pos token.Position, init *ast.Node) *ast.Node {
	var test, update *ast.Node
	if p.cur.Kind != token.SEMICOLON {
		test = p.parseExpressionList()
	}
	p.expect(token.SEMICOLON)
	if p.cur.Kind != token.RPAREN {
		update = p.parseExpressionList()
	}
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return ast.NewNode(ast.For, pos, init, test, update, body)
}

func (p *Parser) parseWhile() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)
	test := p.parseExpressionList()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return ast.NewNode(ast.While, pos, test, body)
}

func (p *Parser) parseDoWhile() *ast.Node {
	pos := p.cur.Pos
	p.advance() // 'do'
	body := p.parseStatement()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	test := p.parseExpressionList()
	p.expect(token.RPAREN)
	p.consumeSemicolon()
	return ast.NewNode(ast.DoWhile, pos, body, test)
}

func (p *Parser) parseSwitch() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)
	discriminant := p.parseExpressionList()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	sw := ast.NewNode(ast.Switch, pos, discriminant)
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		casePos := p.cur.Pos
		var test *ast.Node
		if p.cur.Kind == token.CASE {
			p.advance()
			test = p.parseExpressionList()
		} else {
			p.expect(token.DEFAULT)
		}
		p.expect(token.COLON)
		clause := ast.NewNode(ast.CaseClause, casePos, test)
		for p.cur.Kind != token.CASE && p.cur.Kind != token.DEFAULT && p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
			stmt := p.parseStatement()
			if stmt != nil {
				clause.Append(stmt)
			}
		}
		sw.Append(clause)
	}
	p.expect(token.RBRACE)
	return sw
}

// parseBreakContinue handles both break and continue. Labelled loops are out
// of scope, so neither accepts a label.
func (p *Parser) parseBreakContinue(kind ast.Kind) *ast.Node {
	pos := p.cur.Pos
	p.advance()
	p.consumeSemicolon()
	return ast.NewNode(kind, pos)
}

func (p *Parser) parseFunctionDecl() *ast.Node {
	pos := p.cur.Pos
	p.advance() // 'function'
	name := ast.NewLeaf(ast.Ident, p.expect(token.IDENT))
	params := p.parseParamList()
	body := p.parseBlock()

	fn := ast.NewNode(ast.FunctionDecl, pos, name)
	fn.Append(params...)
	fn.Append(body)
	return fn
}

// parseParamList parses "(" ident|pattern (= default)?, ...rest? ")".
func (p *Parser) parseParamList() []*ast.Node {
	p.expect(token.LPAREN)
	var params []*ast.Node
	for p.cur.Kind != token.RPAREN && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.SPREAD {
			spreadPos := p.cur.Pos
			p.advance()
			target := p.parseBindingTarget()
			params = append(params, ast.NewNode(ast.Spread, spreadPos, target))
			break // rest must be last
		}
		target := p.parseBindingTarget()
		if p.cur.Kind == token.ASSIGN {
			assignPos := p.cur.Pos
			p.advance()
			def := p.parseAssignment(false)
			params = append(params, ast.NewNode(ast.Assignment, assignPos, target, def))
		} else {
			params = append(params, target)
		}
		if p.cur.Kind != token.COMMA {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseExpressionStatement() *ast.Node {
	pos := p.cur.Pos
	expr := p.parseExpressionList()
	p.consumeSemicolon()
	return ast.NewNode(ast.ExprStmt, pos, expr)
}

// parseExpressionList parses a comma-separated expression list, collapsing
// to a single expression when there is only one. Also reused by for-loop
// init/update clauses.
func (p *Parser) parseExpressionList() *ast.Node {
	pos := p.cur.Pos
	first := p.parseAssignment(false)
	if p.cur.Kind != token.COMMA {
		return first
	}
	seq := ast.NewNode(ast.SequenceExpr, pos, first)
	for p.cur.Kind == token.COMMA {
		p.advance()
		seq.Append(p.parseAssignment(false))
	}
	return seq
}
