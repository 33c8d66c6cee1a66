package parser_test

import (
	"errors"
	"testing"

	"github.com/sandrolain/decexpr/pkg/parser"
	"github.com/sandrolain/decexpr/pkg/types"
)

func parse(t *testing.T, input string) *types.ASTNode {
	t.Helper()
	node, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return node
}

// Trees are compared through their canonical rendering.

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"number", "42", "42"},
		{"string", `"hello"`, `"hello"`},
		{"atom", ":half_up", "half_up"},
		{"variable", "price", "$price"},
		{"addition", "1 + 2", "(+ 1 2)"},
		{"precedence mul over add", "1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"precedence div over sub", "10 - 6 / 2", "(- 10 (/ 6 2))"},
		{"left associative", "1 - 2 - 3", "(- (- 1 2) 3)"},
		{"parens override", "(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"comparison binds looser", "1 + 2 > 3", "(> (+ 1 2) 3)"},
		{"equality", "a == b", "(== $a $b)"},
		{"not equal", "a != b", "(!= $a $b)"},
		{"unary minus", "-3", "(- 3)"},
		{"unary plus", "+3", "(+ 3)"},
		{"unary binds tightest", "-3 + 4", "(+ (- 3) 4)"},
		{"not", "not a", "(not $a)"},
		{"and or precedence", "a or b and c", "(or $a (and $b $c))"},
		{"logic binds looser than comparison", "a > 1 and b < 2", "(and (> $a 1) (< $b 2))"},
		{"assignment", "x = 2", "(= $x 2)"},
		{"assignment right associative", "x = y = 2", "(= $x (= $y 2))"},
		{"assignment binds loosest", "x = 1 + 2", "(= $x (+ 1 2))"},
		{"call", "max(1, 2)", "(max 1 2)"},
		{"call no args", "inf()", "(inf)"},
		{"nested call", "abs(min(a, 2))", "(abs (min $a 2))"},
		{"predicate call", "nan?(x)", "(nan? $x)"},
		{"if then else", "if a > 1 then 2 else 3", "(if (> $a 1) 2 3)"},
		{"if without else", "if a then 2", "(if $a 2)"},
		{"list", "[1, 2, 3]", "(list 1 2 3)"},
		{"empty list", "[]", "(list)"},
		{"tuple", "{1, x}", "(tuple 1 $x)"},
		{"block", "x = 2; x * 3", "(block (= $x 2) (* $x 3))"},
		{"trailing semicolon", "1; 2;", "(block 1 2)"},
		{"paren block", "(x = 2; x) + 1", "(+ (block (= $x 2) $x) 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := parse(t, tt.input)
			if got := node.String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  types.ErrorCode
	}{
		{"empty input", "", types.ErrSyntaxError},
		{"dangling operator", "1 +", types.ErrUnexpectedEnd},
		{"unclosed paren", "(1 + 2", types.ErrExpectedToken},
		{"unclosed list", "[1, 2", types.ErrExpectedToken},
		{"missing then", "if a 2", types.ErrExpectedToken},
		{"trailing garbage", "1 2", types.ErrSyntaxError},
		{"lexer error surfaces", `"unclosed`, types.ErrSyntaxError},
		{"double comma", "max(1,, 2)", types.ErrSyntaxError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			var engineErr *types.Error
			if !errors.As(err, &engineErr) {
				t.Fatalf("error type %T, want *types.Error", err)
			}
			if engineErr.Code != tt.code {
				t.Errorf("code %s, want %s (%v)", engineErr.Code, tt.code, err)
			}
		})
	}
}

// The parser accepts any expression as an assignment target; rejecting
// non-name targets is the rewriter's job.
func TestParseAssignTargetUnvalidated(t *testing.T) {
	node := parse(t, "1 = 2")
	if node.Type != types.NodeAssign {
		t.Fatalf("node type %s, want %s", node.Type, types.NodeAssign)
	}
	if node.LHS.Type != types.NodeNumber {
		t.Errorf("target type %s, want %s", node.LHS.Type, types.NodeNumber)
	}
}

func TestParsePositions(t *testing.T) {
	node := parse(t, "1 + 2")
	if node.Position != 2 {
		t.Errorf("operator position %d, want 2", node.Position)
	}
}
