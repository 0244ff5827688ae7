package lexer

import (
	"testing"

	"github.com/cwbudde/ecmalite/internal/token"
)

func allTokens(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func primaryKinds(input string) []token.Kind {
	var kinds []token.Kind
	for _, tok := range allTokens(input) {
		if tok.Kind.IsPrimary() {
			kinds = append(kinds, tok.Kind)
		}
	}
	return kinds
}

func TestLexer_Punctuation(t *testing.T) {
	// '/' follows ')' so it lexes as division (after an operator it would
	// open a regex), and a space keeps "? ." from lexing as QUESTION_DOT.
	input := `=+-*%()/{}[],;:? .!<>&|^~`
	want := []token.Kind{
		token.ASSIGN, token.PLUS, token.MINUS, token.STAR, token.PERCENT,
		token.LPAREN, token.RPAREN, token.SLASH, token.LBRACE, token.RBRACE, token.LBRACKET, token.RBRACKET,
		token.COMMA, token.SEMICOLON, token.COLON, token.QUESTION, token.DOT, token.BANG,
		token.LT, token.GT, token.AMP, token.PIPE, token.CARET, token.TILDE, token.EOF,
	}
	got := primaryKinds(input)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: got %s, want %s", i, got[i], k)
		}
	}
}

func TestLexer_MultiCharOperators(t *testing.T) {
	tests := []struct {
		input string
		want  token.Kind
	}{
		{"==", token.EQ}, {"===", token.SEQ}, {"!=", token.NEQ}, {"!==", token.SNEQ},
		{"<=", token.LE}, {">=", token.GE}, {"&&", token.LOGIC_AND}, {"||", token.LOGIC_OR},
		{"??", token.QUESTION_QUESTION}, {"?.", token.QUESTION_DOT}, {"=>", token.ARROW},
		{"...", token.SPREAD}, {"**", token.STAR_STAR}, {"++", token.INC}, {"--", token.DEC},
		{"<<", token.SHL}, {">>", token.SHR}, {">>>", token.USHR},
		{"+=", token.PLUS_ASSIGN}, {"??=", token.NULLISH_ASSIGN},
	}
	for _, tt := range tests {
		l := New(tt.input)
		got := l.NextToken()
		if got.Kind != tt.want {
			t.Errorf("lexing %q: got %s, want %s", tt.input, got.Kind, tt.want)
		}
		if got.Literal != tt.input {
			t.Errorf("lexing %q: literal = %q", tt.input, got.Literal)
		}
	}
}

func TestLexer_KeywordsAndIdents(t *testing.T) {
	input := "var let const function return if else for while true false null undefined this myVar _x $y"
	toks := allTokens(input)
	want := []token.Kind{
		token.VAR, token.LET, token.CONST, token.FUNCTION, token.RETURN, token.IF, token.ELSE,
		token.FOR, token.WHILE, token.TRUE, token.FALSE, token.NULL, token.UNDEFINED, token.THIS,
		token.IDENT, token.IDENT, token.IDENT, token.EOF,
	}
	i := 0
	for _, tok := range toks {
		if !tok.Kind.IsPrimary() {
			continue
		}
		if i >= len(want) {
			t.Fatalf("too many tokens")
		}
		if tok.Kind != want[i] {
			t.Errorf("token %d (%q): got %s, want %s", i, tok.Literal, tok.Kind, want[i])
		}
		i++
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []string{"123", "0x1F", "0xFF", "3.14", "1e10", "1.5e-3", "0"}
	for _, in := range tests {
		l := New(in)
		tok := l.NextToken()
		if tok.Kind != token.NUMBER {
			t.Errorf("lexing %q: got kind %s", in, tok.Kind)
		}
		if tok.Literal != in {
			t.Errorf("lexing %q: literal = %q", in, tok.Literal)
		}
	}
}

func TestLexer_Strings(t *testing.T) {
	// Token.Literal keeps the raw source text (quotes and backslashes
	// intact); token.Unquote decodes it separately.
	tests := []struct {
		input    string
		wantRaw  string
		wantVal  string
	}{
		{`'hello'`, `'hello'`, "hello"},
		{`"world"`, `"world"`, "world"},
		{`'a\nb'`, `'a\nb'`, "a\nb"},
		{`"tab\there"`, `"tab\there"`, "tab\there"},
		{`'quote\'s'`, `'quote\'s'`, "quote's"},
		{`'\x41'`, `'\x41'`, "A"},
		{`'A'`, `'A'`, "A"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Kind != token.STRING {
			t.Fatalf("lexing %q: got kind %s", tt.input, tok.Kind)
		}
		if tok.Literal != tt.wantRaw {
			t.Errorf("lexing %q: raw literal = %q, want %q", tt.input, tok.Literal, tt.wantRaw)
		}
		if got := token.Unquote(tok.Literal); got != tt.wantVal {
			t.Errorf("lexing %q: Unquote = %q, want %q", tt.input, got, tt.wantVal)
		}
	}
}

func TestLexer_RegexVsDivision(t *testing.T) {
	// After '(' a '/' starts a regex.
	toks := allTokens(`(/abc/)`)
	if toks[1].Kind != token.REGEX {
		t.Errorf("expected REGEX after '(', got %s", toks[1].Kind)
	}

	// After an identifier, '/' is division.
	toks = allTokens(`x / y`)
	found := false
	for _, tok := range toks {
		if tok.Kind == token.SLASH {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SLASH (division) after identifier, got %v", toks)
	}

	// After 'return', '/' starts a regex.
	toks = allTokens(`return /foo/g;`)
	var gotRegex bool
	for _, tok := range toks {
		if tok.Kind == token.REGEX {
			gotRegex = true
			if tok.Literal != "/foo/g" {
				t.Errorf("regex literal = %q", tok.Literal)
			}
		}
	}
	if !gotRegex {
		t.Errorf("expected REGEX after 'return', got %v", toks)
	}
}

func TestLexer_TemplateLiteral(t *testing.T) {
	toks := allTokens("`hello ${name}!`")
	if toks[0].Kind != token.BACKTICK {
		t.Fatalf("expected BACKTICK first, got %v", toks[0].Kind)
	}
	if toks[1].Kind != token.TEMPLATE || toks[1].Literal != "hello " {
		t.Fatalf("expected TEMPLATE(\"hello \"), got %v %q", toks[1].Kind, toks[1].Literal)
	}
	if toks[2].Kind != token.DOLLAR_L_CURLY {
		t.Fatalf("expected DOLLAR_L_CURLY, got %v", toks[2].Kind)
	}
	if toks[3].Kind != token.IDENT || toks[3].Literal != "name" {
		t.Fatalf("expected IDENT(name), got %v %q", toks[3].Kind, toks[3].Literal)
	}
	// The '}' closing the interpolation is emitted as RBRACE and resumes
	// template scanning; the next token is the trailing TEMPLATE segment.
	if toks[4].Kind != token.RBRACE || toks[4].Literal != "}" {
		t.Fatalf("expected RBRACE closing the interpolation, got %v %q", toks[4].Kind, toks[4].Literal)
	}
	if toks[5].Kind != token.TEMPLATE || toks[5].Literal != "!" {
		t.Fatalf("expected TEMPLATE(\"!\"), got %v %q", toks[5].Kind, toks[5].Literal)
	}
	if toks[6].Kind != token.BACKTICK {
		t.Fatalf("expected closing BACKTICK, got %v", toks[6].Kind)
	}
}

func TestLexer_IllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Kind != token.ILLEGAL {
		t.Errorf("got %s, want ILLEGAL", tok.Kind)
	}
	if len(l.Errors()) != 1 {
		t.Errorf("expected one lexer error, got %d", len(l.Errors()))
	}
}

func TestLexer_RoundTrip(t *testing.T) {
	// Concatenating every token's literal (including whitespace/comments)
	// reconstructs the original source exactly.
	inputs := []string{
		"var x = 1 + 2; // comment\nlet y = x * 3;",
		"const obj = { a: 1, b: [1,2,3] };",
		"function f(a, b) { return a + b; }",
		`let s = 'line1\nline2\x41';`,
		"let t = `hi ${name}\\n!`;",
	}
	for _, in := range inputs {
		var sb []byte
		for _, tok := range allTokens(in) {
			if tok.Kind == token.EOF {
				break
			}
			sb = append(sb, tok.Literal...)
		}
		if string(sb) != in {
			t.Errorf("round-trip mismatch:\n got: %q\nwant: %q", string(sb), in)
		}
	}
}

func TestLexer_Positions(t *testing.T) {
	l := New("var\nx")
	tok := l.NextToken() // var
	if tok.Pos.Line != 0 || tok.Pos.Column != 0 {
		t.Errorf("var: got line=%d col=%d", tok.Pos.Line, tok.Pos.Column)
	}
	l.NextToken() // whitespace/newline
	tok = l.NextToken() // x
	if tok.Pos.Line != 1 || tok.Pos.Column != 0 {
		t.Errorf("x: got line=%d col=%d", tok.Pos.Line, tok.Pos.Column)
	}
}
