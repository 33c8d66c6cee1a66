package types_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sandrolain/decexpr/pkg/types"
)

func TestASTString(t *testing.T) {
	tests := []struct {
		name string
		node *types.ASTNode
		want string
	}{
		{"number", types.Num("42"), "42"},
		{"string", types.Str("hi"), `"hi"`},
		{"atom", types.Atom("half_up"), "half_up"},
		{"variable", types.Var("x"), "$x"},
		{"binary", types.Binary("+", types.Num("1"), types.Num("2")), "(+ 1 2)"},
		{"unary", types.Unary("-", types.Num("3")), "(- 3)"},
		{"call", types.Call("max", types.Num("1"), types.Num("2")), "(max 1 2)"},
		{"assign", types.Assign(types.Var("x"), types.Num("2")), "(= $x 2)"},
		{"if with else", types.If(types.Var("c"), types.Num("1"), types.Num("2")), "(if $c 1 2)"},
		{"if without else", types.If(types.Var("c"), types.Num("1"), nil), "(if $c 1)"},
		{"block", types.Block(types.Num("1"), types.Num("2")), "(block 1 2)"},
		{"tuple", types.Tuple(types.Num("1"), types.Var("x")), "(tuple 1 $x)"},
		{"list", types.List(types.Num("1")), "(list 1)"},
		{"nil", nil, "()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

// Identical trees render identically, distinct trees distinctly; the
// rendering doubles as a cache key.
func TestASTStringStable(t *testing.T) {
	build := func() *types.ASTNode {
		return types.Binary("+", types.Num("1"), types.Call("abs", types.Var("x")))
	}
	if build().String() != build().String() {
		t.Error("identical trees rendered differently")
	}
	other := types.Binary("+", types.Num("1"), types.Call("abs", types.Var("y")))
	if build().String() == other.String() {
		t.Error("distinct trees rendered identically")
	}
}

func TestErrorFormatting(t *testing.T) {
	err := types.NewError(types.ErrSyntaxError, "unexpected token", 7)
	if got := err.Error(); !strings.Contains(got, "S0201") || !strings.Contains(got, "position 7") {
		t.Errorf("unexpected rendering %q", got)
	}

	noPos := types.NewError(types.ErrNotANumber, "bad value", -1)
	if got := noPos.Error(); strings.Contains(got, "position") {
		t.Errorf("negative position rendered: %q", got)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("backend failure")
	err := types.NewError(types.ErrArithmetic, "add", -1).WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable through errors.Is")
	}

	var engineErr *types.Error
	if !errors.As(err, &engineErr) {
		t.Error("errors.As failed")
	}
}
