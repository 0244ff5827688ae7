// Package parser turns a token stream into a generic ast.Node tree: a
// recursive-descent parser for statements, a precedence-cascade ("priority
// climbing") parser for expressions, automatic semicolon insertion, and a
// lookahead-based arrow-function disambiguation.
package parser

import (
	"fmt"

	"github.com/cwbudde/ecmalite/internal/ast"
	"github.com/cwbudde/ecmalite/internal/errors"
	"github.com/cwbudde/ecmalite/internal/lexer"
	"github.com/cwbudde/ecmalite/internal/token"
)

// maxDepth bounds expression/statement recursion: a pathological or
// malicious input cannot blow the Go call stack silently.
const maxDepth = 128

// Parser consumes a token stream (skipping whitespace/comments, which only
// ASI observes) and builds a Program node.
type Parser struct {
	source string
	lex    *lexer.Lexer

	cur, peek     token.Token
	curNL, peekNL bool // true if a line feed preceded this token (for ASI)

	depth  int
	errors []*errors.CompilerError
	file   string
}

// New creates a Parser over source. file is used only for error messages
// (empty if the source has no associated path).
func New(source, file string) *Parser {
	p := &Parser{source: source, lex: lexer.New(source), file: file}
	p.cur, p.curNL = p.pullPrimary()
	p.peek, p.peekNL = p.pullPrimary()
	return p
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []*errors.CompilerError {
	return p.errors
}

func (p *Parser) pullPrimary() (token.Token, bool) {
	nl := false
	for {
		tok := p.lex.NextToken()
		if !tok.Kind.IsPrimary() {
			if containsNewline(tok.Literal) {
				nl = true
			}
			continue
		}
		return tok, nl
	}
}

func containsNewline(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return true
		}
	}
	return false
}

func (p *Parser) advance() {
	p.cur, p.curNL = p.peek, p.peekNL
	p.peek, p.peekNL = p.pullPrimary()
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, errors.NewCompilerError(pos, msg, p.source, p.file))
}

// expect advances past cur if it has kind k, otherwise records an error and
// does not advance (so the caller can attempt recovery at the same token).
func (p *Parser) expect(k token.Kind) token.Token {
	tok := p.cur
	if p.cur.Kind != k {
		p.errorf(p.cur.Pos, "expected %s, got %s %q", k, p.cur.Kind, p.cur.Literal)
		return tok
	}
	p.advance()
	return tok
}

func (p *Parser) enter() bool {
	p.depth++
	if p.depth > maxDepth {
		p.errorf(p.cur.Pos, "maximum expression/statement nesting depth exceeded")
		return false
	}
	return true
}

func (p *Parser) leave() { p.depth-- }

// consumeSemicolon implements automatic semicolon insertion: a ';' is
// synthesized when the next primary token is '}' or EOF, or when a line
// feed preceded it; otherwise a literal ';' must be present.
func (p *Parser) consumeSemicolon() {
	if p.cur.Kind == token.SEMICOLON {
		p.advance()
		return
	}
	if p.cur.Kind == token.RBRACE || p.cur.Kind == token.EOF || p.curNL {
		return // automatic semicolon insertion
	}
	p.errorf(p.cur.Pos, "expected ';', got %s %q", p.cur.Kind, p.cur.Literal)
}

// ParseProgram parses the entire token stream into a Program node.
func ParseProgram(source string) (*ast.Node, []*errors.CompilerError) {
	p := New(source, "")
	prog := p.parseProgram()
	return prog, p.errors
}

func (p *Parser) parseProgram() *ast.Node {
	prog := ast.NewNode(ast.Program, token.Position{})
	for p.cur.Kind != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Append(stmt)
		}
		if p.depth != 0 {
			// A statement parser left depth unbalanced (enter without a
			// matching leave) after reporting a hard error; stop instead of
			// looping forever.
			break
		}
	}
	return prog
}
