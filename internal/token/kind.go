// Package token defines the closed set of lexical categories produced by
// the lexer and consumed by the parser.
package token

// Kind identifies the lexical category of a single token. The set is closed:
// new categories are added here, never invented ad hoc by the lexer or parser.
type Kind int

// Token categories, grouped the way the lexer discovers them.
const (
	ILLEGAL Kind = iota // an unrecognized character
	EOF                 // end of input
	COMMENT             // line or block comment (non-primary)
	WHITESPACE          // run of spaces/tabs/newlines (non-primary)

	// Literals and identifiers.
	IDENT      // foo, _bar, $baz
	NUMBER     // 123, 0x1F, 3.14, 1e10
	STRING     // 'single' or "double" quoted string
	TEMPLATE   // a full segment of a template literal between ` and ${ or `
	REGEX      // /pattern/flags

	// Template literal structural tokens.
	BACKTICK        // opens/closes a template literal
	DOLLAR_L_CURLY  // ${ inside a template literal

	// Punctuation.
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	DOT       // .
	QUESTION  // ?
	QUESTION_DOT    // ?.
	QUESTION_QUESTION // ??
	ARROW     // =>
	SPREAD    // ...

	// Assignment operators.
	ASSIGN        // =
	PLUS_ASSIGN   // +=
	MINUS_ASSIGN  // -=
	STAR_ASSIGN   // *=
	SLASH_ASSIGN  // /=
	PERCENT_ASSIGN // %=
	STAR_STAR_ASSIGN // **=
	SHL_ASSIGN    // <<=
	SHR_ASSIGN    // >>=
	USHR_ASSIGN   // >>>=
	AND_ASSIGN    // &=
	OR_ASSIGN     // |=
	XOR_ASSIGN    // ^=
	LOGIC_AND_ASSIGN // &&=
	LOGIC_OR_ASSIGN  // ||=
	NULLISH_ASSIGN   // ??=

	// Comparison / logical / arithmetic / bitwise operators.
	EQ        // ==
	NEQ       // !=
	SEQ       // ===
	SNEQ      // !==
	LT        // <
	LE        // <=
	GT        // >
	GE        // >=
	LOGIC_AND // &&
	LOGIC_OR  // ||
	BANG      // !
	TILDE     // ~
	AMP       // &
	PIPE      // |
	CARET     // ^
	SHL       // <<
	SHR       // >>
	USHR      // >>>
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	STAR_STAR // **
	INC       // ++
	DEC       // --

	keywordBegin

	// Keywords.
	VAR
	LET
	CONST
	FUNCTION
	RETURN
	IF
	ELSE
	FOR
	WHILE
	DO
	BREAK
	CONTINUE
	SWITCH
	CASE
	DEFAULT
	TRY
	CATCH
	FINALLY
	THROW
	NEW
	TYPEOF
	INSTANCEOF
	IN
	OF
	DELETE
	TRUE
	FALSE
	NULL
	UNDEFINED
	THIS
	VOID

	keywordEnd
)

var names = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT", WHITESPACE: "WHITESPACE",
	IDENT: "IDENT", NUMBER: "NUMBER", STRING: "STRING", TEMPLATE: "TEMPLATE", REGEX: "REGEX",
	BACKTICK: "BACKTICK", DOLLAR_L_CURLY: "DOLLAR_L_CURLY",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
	COMMA: ",", SEMICOLON: ";", COLON: ":", DOT: ".", QUESTION: "?",
	QUESTION_DOT: "?.", QUESTION_QUESTION: "??", ARROW: "=>", SPREAD: "...",
	ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=",
	SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=", STAR_STAR_ASSIGN: "**=",
	SHL_ASSIGN: "<<=", SHR_ASSIGN: ">>=", USHR_ASSIGN: ">>>=",
	AND_ASSIGN: "&=", OR_ASSIGN: "|=", XOR_ASSIGN: "^=",
	LOGIC_AND_ASSIGN: "&&=", LOGIC_OR_ASSIGN: "||=", NULLISH_ASSIGN: "??=",
	EQ: "==", NEQ: "!=", SEQ: "===", SNEQ: "!==", LT: "<", LE: "<=", GT: ">", GE: ">=",
	LOGIC_AND: "&&", LOGIC_OR: "||", BANG: "!", TILDE: "~",
	AMP: "&", PIPE: "|", CARET: "^", SHL: "<<", SHR: ">>", USHR: ">>>",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", STAR_STAR: "**",
	INC: "++", DEC: "--",
	VAR: "var", LET: "let", CONST: "const", FUNCTION: "function", RETURN: "return",
	IF: "if", ELSE: "else", FOR: "for", WHILE: "while", DO: "do", BREAK: "break",
	CONTINUE: "continue", SWITCH: "switch", CASE: "case", DEFAULT: "default",
	TRY: "try", CATCH: "catch", FINALLY: "finally", THROW: "throw", NEW: "new",
	TYPEOF: "typeof", INSTANCEOF: "instanceof", IN: "in", OF: "of", DELETE: "delete",
	TRUE: "true", FALSE: "false", NULL: "null", UNDEFINED: "undefined", THIS: "this",
	VOID: "void",
}

// String renders the kind's canonical display name, mostly useful for
// diagnostics and the `lex`/`parse` CLI dump commands.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// keywords maps the literal spelling of a keyword to its Kind. Populated
// once from names, restricted to the keyword range.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind, int(keywordEnd-keywordBegin))
	for k := keywordBegin + 1; k < keywordEnd; k++ {
		m[names[k]] = k
	}
	return m
}()

// LookupIdent classifies str as a keyword Kind if it is reserved, else
// returns IDENT. This is the lexer's sole source of truth for keyword-hood.
func LookupIdent(str string) Kind {
	if kind, ok := keywords[str]; ok {
		return kind
	}
	return IDENT
}

// IsPrimary reports whether tokens of this kind participate in parsing.
// Whitespace and comments are non-primary: the parser skips them for
// lookahead, but ASI observes them.
func (k Kind) IsPrimary() bool {
	return k != WHITESPACE && k != COMMENT
}

// IsKeyword reports whether this kind is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k > keywordBegin && k < keywordEnd
}

// RegexAllowedAfter reports whether a '/' immediately following a primary
// token of this kind should be lexed as the start of a regex literal rather
// than the division operator: true after open brackets, separators, most
// operators, and a fixed set of keywords; false after identifiers, literals,
// and closing brackets.
func (k Kind) RegexAllowedAfter() bool {
	switch k {
	case IDENT, NUMBER, STRING, TEMPLATE, REGEX,
		TRUE, FALSE, NULL, UNDEFINED, THIS,
		RPAREN, RBRACKET, RBRACE, INC, DEC:
		return false
	case RETURN, TYPEOF, DELETE, INSTANCEOF, IN, DO, IF, ELSE, CASE, DEFAULT, THROW:
		return true
	default:
		// Every other primary token (open brackets, separators, operators,
		// the remaining keywords) is in regex-allowed position.
		return true
	}
}
