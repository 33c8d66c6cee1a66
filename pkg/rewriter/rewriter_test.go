package rewriter_test

import (
	"errors"
	"testing"

	"github.com/sandrolain/decexpr/pkg/parser"
	"github.com/sandrolain/decexpr/pkg/rewriter"
	"github.com/sandrolain/decexpr/pkg/types"
)

func rewrite(t *testing.T, input string) *types.ASTNode {
	t.Helper()
	tree, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	expr, err := rewriter.Rewrite(tree)
	if err != nil {
		t.Fatalf("Rewrite(%q): %v", input, err)
	}
	return expr.AST()
}

func TestRewriteOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"add", "1 + 2", "(add 1 2)"},
		{"sub", "1 - 2", "(sub 1 2)"},
		{"mult", "2 * 3", "(mult 2 3)"},
		{"divide", "1 / 3", "(divide 1 3)"},
		{"unary plus", "+2", "(pos 2)"},
		{"unary minus", "-2", "(neg 2)"},
		{"greater", "2 > 1", "(gt 2 1)"},
		{"less swaps operands", "1 < 2", "(gt 2 1)"},
		{"equal", "1 == 2", "(eq 1 2)"},
		{"not equal is negated equal", "1 != 2", "(not (eq 1 2))"},
		{"ge composes strict and equal", "2 >= 1", "(or (gt 2 1) (eq 2 1))"},
		{"le composes swapped strict and equal", "1 <= 2", "(or (gt 2 1) (eq 1 2))"},
		{"and keeps short-circuit form", "a and b", "(and (coerce $a) (coerce $b))"},
		{"or keeps short-circuit form", "a or b", "(or (coerce $a) (coerce $b))"},
		{"not", "not a", "(not (coerce $a))"},
		{"nested", "1 + 2 * 3", "(add 1 (mult 2 3))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewrite(t, tt.input).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRewriteLiterals(t *testing.T) {
	t.Run("number folds to decimal", func(t *testing.T) {
		node := rewrite(t, "42.0")
		if node.Type != types.NodeDecimal {
			t.Fatalf("node type %s, want %s", node.Type, types.NodeDecimal)
		}
		if got := node.Decimal.String(); got != "42.0" {
			t.Errorf("decimal %s, want 42.0", got)
		}
	})

	t.Run("numeric string folds to decimal", func(t *testing.T) {
		node := rewrite(t, `"21.0"`)
		if node.Type != types.NodeDecimal {
			t.Fatalf("node type %s, want %s", node.Type, types.NodeDecimal)
		}
	})

	t.Run("non-numeric string passes through", func(t *testing.T) {
		node := rewrite(t, `"hello"`)
		if node.Type != types.NodeString {
			t.Fatalf("node type %s, want %s", node.Type, types.NodeString)
		}
		if node.StrValue != "hello" {
			t.Errorf("value %q, want %q", node.StrValue, "hello")
		}
	})

	t.Run("atom passes through", func(t *testing.T) {
		node := rewrite(t, ":half_up")
		if node.Type != types.NodeAtom {
			t.Fatalf("node type %s, want %s", node.Type, types.NodeAtom)
		}
	})

	t.Run("invalid literal built without the parser", func(t *testing.T) {
		_, err := rewriter.Rewrite(types.Num("12abc"))
		assertCode(t, err, types.ErrNumberInvalid)
	})
}

func TestRewriteVariables(t *testing.T) {
	node := rewrite(t, "price")
	if got, want := node.String(), "(coerce $price)"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

// Tuples and lists rewrite member-wise at any arity.
func TestRewriteMembersArityIndependent(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"{1, x}", "(tuple 1 (coerce $x))"},
		{"{1, x, 2, y}", "(tuple 1 (coerce $x) 2 (coerce $y))"},
		{"[a]", "(list (coerce $a))"},
		{`["1", "one", 1]`, `(list 1 "one" 1)`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := rewrite(t, tt.input).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRewriteCalls(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"known call", "max(1, 2)", "(max 1 2)"},
		{"args rewritten", "abs(1 - 2)", "(abs (sub 1 2))"},
		{"round single arg", "round(2.5)", "(round 2.5)"},
		{"round places", "round(2.345, 2)", "(round 2.345 2)"},
		{"round strategy atom untouched", "round(2.5, 0, :down)", "(round 2.5 0 down)"},
		{"zero arg call", "inf()", "(inf)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewrite(t, tt.input).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

// An unrecognized call is delegated whole to one coercion call; nothing
// inside it is rewritten.
func TestRewriteDelegatesUnknownCall(t *testing.T) {
	node := rewrite(t, "mystery(1 + 2)")

	if node.Type != types.NodeCall || node.StrValue != "coerce" {
		t.Fatalf("got %s, want a coerce call", node)
	}
	opaque := node.Arguments[0]
	if opaque.Type != types.NodeOpaque {
		t.Fatalf("argument type %s, want %s", opaque.Type, types.NodeOpaque)
	}
	original, ok := opaque.Value.(*types.ASTNode)
	if !ok {
		t.Fatalf("opaque payload %T, want the original node", opaque.Value)
	}
	if got, want := original.String(), "(mystery (+ 1 2))"; got != want {
		t.Errorf("delegated form %s, want %s", got, want)
	}
}

func TestRewriteAssignAndBlocks(t *testing.T) {
	node := rewrite(t, "x = 2; x * 3")
	if got, want := node.String(), "(block (= $x 2) (mult (coerce $x) 3))"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	assign := node.Expressions[0]
	if assign.StrValue != "x" {
		t.Errorf("assignment name %q, want %q", assign.StrValue, "x")
	}
}

func TestRewriteIf(t *testing.T) {
	node := rewrite(t, "if 42.0 > 10 then 42.0 else 10")
	if got, want := node.String(), "(if (gt 42.0 10) 42.0 10)"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRewriteStaticErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  types.ErrorCode
	}{
		{"non-name assignment target", "1 = 2", types.ErrAssignTarget},
		{"call assignment target", "abs(x) = 2", types.ErrAssignTarget},
		{"unknown strategy atom", "round(1, 0, :sideways)", types.ErrUnknownStrategy},
		{"unknown strategy string", `round(1, 0, "sideways")`, types.ErrUnknownStrategy},
		{"too many args", "abs(1, 2)", types.ErrArgumentCount},
		{"too few args", "max(1)", types.ErrArgumentCount},
		{"round too many args", "round(1, 0, :down, 4)", types.ErrArgumentCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			_, err = rewriter.Rewrite(tree)
			assertCode(t, err, tt.code)
		})
	}
}

// A non-literal strategy argument cannot be validated statically and is
// left to runtime.
func TestRewriteStrategyVariableDeferred(t *testing.T) {
	node := rewrite(t, "round(1, 0, s)")
	if got, want := node.String(), "(round 1 0 $s)"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

// Rewriting never mutates the input tree.
func TestRewritePure(t *testing.T) {
	tree, err := parser.Parse("x = 1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	before := tree.String()

	if _, err := rewriter.Rewrite(tree); err != nil {
		t.Fatal(err)
	}
	if after := tree.String(); after != before {
		t.Errorf("input tree changed: %s -> %s", before, after)
	}
}

func assertCode(t *testing.T, err error, code types.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var engineErr *types.Error
	if !errors.As(err, &engineErr) {
		t.Fatalf("error type %T, want *types.Error", err)
	}
	if engineErr.Code != code {
		t.Errorf("code %s, want %s (%v)", engineErr.Code, code, err)
	}
}
