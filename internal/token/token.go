package token

import "fmt"

// Position identifies a location in source text.
//
// Line and Column are 0-indexed, counted in Unicode code points (runes), not
// bytes or display width — a multi-byte rune such as 'Δ' or an emoji advances
// Column by exactly one. Offset is the 0-indexed byte offset into the
// original UTF-8 source, useful for slicing the original text.
//
// Error messages display positions 1-indexed via Display ("[line+1:col+1]").
type Position struct {
	Line   int
	Column int
	Offset int
}

// Display renders the position in the 1-indexed "[line:col]" form used in
// error messages.
func (p Position) Display() string {
	return fmt.Sprintf("[%d:%d]", p.Line+1, p.Column+1)
}

// Token is a single lexical unit: a kind tag, the exact source text it
// covers, and its starting position. Every byte of the source is covered by
// exactly one token, including whitespace and comments.
type Token struct {
	Kind    Kind
	Literal string
	Pos     Position
}

// String renders the token for debugging and the `lex` CLI dump command.
func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Pos.Display(), t.Kind, t.Literal)
}
