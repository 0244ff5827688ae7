package ast

import (
	"strings"
	"testing"

	"github.com/cwbudde/ecmalite/internal/token"
)

func leaf(kind Kind, k token.Kind, lit string) *Node {
	return NewLeaf(kind, token.Token{Kind: k, Literal: lit})
}

func TestNode_ShiftLeft(t *testing.T) {
	// a.b : MemberDot should take the preceding Ident as its object child.
	a := leaf(Ident, token.IDENT, "a")
	member := &Node{Kind: MemberDot, Tok: token.Token{Kind: token.DOT, Literal: "b"}}
	result := member.ShiftLeft(a)

	if result.Child(0) != a {
		t.Fatalf("expected a to become first child of member")
	}
	if len(result.Children) != 1 {
		t.Fatalf("expected exactly one child, got %d", len(result.Children))
	}
}

func TestNode_ShiftRight_Associativity(t *testing.T) {
	// a ** b ** c should nest as a ** (b ** c), not (a ** b) ** c.
	a := leaf(Ident, token.IDENT, "a")
	b := leaf(Ident, token.IDENT, "b")
	c := leaf(Ident, token.IDENT, "c")

	starStar := token.Token{Kind: token.STAR_STAR, Literal: "**"}

	first := &Node{Kind: Binary, Tok: starStar}
	first.Children = []*Node{a, b}

	second := &Node{Kind: Binary, Tok: starStar}
	second.Children = []*Node{c}
	result := second.ShiftRight(first)

	if result.Child(0) != a {
		t.Fatalf("expected a to remain the outermost left operand")
	}
	right := result.Child(1)
	if right.Kind != Binary || right.Child(0) != b || right.Child(1) != c {
		t.Fatalf("expected rotated right-hand side to be (b ** c)")
	}
}

func TestNode_Dump(t *testing.T) {
	prog := NewNode(Program, token.Position{})
	prog.Append(NewNode(ExprStmt, token.Position{}, leaf(Ident, token.IDENT, "x")))

	dump := prog.Dump()
	if !strings.Contains(dump, "Program") {
		t.Errorf("dump missing Program: %s", dump)
	}
	if !strings.Contains(dump, "Ident x") {
		t.Errorf("dump missing leaf literal: %s", dump)
	}
}

func TestNode_ArrayHoles(t *testing.T) {
	// [1, , 3] keeps a nil child for the elided element.
	arr := NewNode(ArrayLit, token.Position{},
		leaf(NumberLit, token.NUMBER, "1"),
		nil,
		leaf(NumberLit, token.NUMBER, "3"),
	)
	if arr.Child(1) != nil {
		t.Errorf("expected hole at index 1 to be nil")
	}
	if arr.Child(5) != nil {
		t.Errorf("out-of-range Child should return nil, not panic")
	}
}
