package rsyntax

import (
	"testing"

	"github.com/coregx/dre/ast"
	"github.com/coregx/dre/deriv"
)

func runMatch(t *testing.T, tb *ast.Table, root ast.ID, input string) bool {
	t.Helper()
	id := root
	for i := 0; i < len(input); i++ {
		id = deriv.Derivative(tb, id, input[i])
	}
	return tb.Nullable(id)
}

func TestLowerLiteral(t *testing.T) {
	tb := ast.NewTable(0)
	res, err := Lower("abc", tb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !runMatch(t, tb, res.Root, "abc") {
		t.Fatalf("abc should match literal pattern")
	}
	if runMatch(t, tb, res.Root, "abd") {
		t.Fatalf("abd should not match literal pattern")
	}
}

func TestLowerAlternationAndClass(t *testing.T) {
	tb := ast.NewTable(0)
	res, err := Lower("[ab]c", tb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !runMatch(t, tb, res.Root, "ac") {
		t.Fatalf("[ab]c should match \"ac\"")
	}
	if !runMatch(t, tb, res.Root, "bc") {
		t.Fatalf("[ab]c should match \"bc\"")
	}
	if runMatch(t, tb, res.Root, "cc") {
		t.Fatalf("[ab]c should not match \"cc\"")
	}
}

func TestLowerStarPlusQuest(t *testing.T) {
	tb := ast.NewTable(0)
	res, err := Lower("a*b+c?", tb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ok := range []string{"b", "aab", "aabbbc", "bc"} {
		if !runMatch(t, tb, res.Root, ok) {
			t.Fatalf("expected %q to match a*b+c?", ok)
		}
	}
	if runMatch(t, tb, res.Root, "c") {
		t.Fatalf("\"c\" alone should not match a*b+c? (b+ requires at least one b)")
	}
}

func TestLowerRepeat(t *testing.T) {
	tb := ast.NewTable(0)
	res, err := Lower("a{2,4}", tb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := map[string]bool{"a": false, "aa": true, "aaa": true, "aaaa": true, "aaaaa": false}
	for in, want := range cases {
		if got := runMatch(t, tb, res.Root, in); got != want {
			t.Fatalf("a{2,4} on %q: got %v want %v", in, got, want)
		}
	}
}

func TestLowerRepeatUnbounded(t *testing.T) {
	tb := ast.NewTable(0)
	res, err := Lower("a{2,}", tb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runMatch(t, tb, res.Root, "a") {
		t.Fatalf("a{2,} should reject a single \"a\"")
	}
	if !runMatch(t, tb, res.Root, "aaaaaaa") {
		t.Fatalf("a{2,} should accept 7 a's")
	}
}

func TestLowerTrailingStopAlone(t *testing.T) {
	tb := ast.NewTable(0)
	res, err := Lower(`(?P<stop>[xq]*y)`, tb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HasStop {
		t.Fatalf("expected HasStop true")
	}
	if !runMatch(t, tb, res.Root, "xxy") {
		t.Fatalf("expected match")
	}
}

func TestLowerTrailingStopWithPrefix(t *testing.T) {
	tb := ast.NewTable(0)
	res, err := Lower(`[abx]*(?P<stop>[xq]*y)`, tb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HasStop {
		t.Fatalf("expected HasStop true")
	}
	if !runMatch(t, tb, res.Root, "axxxxxy") {
		t.Fatalf("expected match for axxxxxy")
	}
}

func TestLowerRejectsNonTrailingCapture(t *testing.T) {
	tb := ast.NewTable(0)
	_, err := Lower(`(?P<stop>a)b`, tb)
	if err == nil {
		t.Fatalf("expected error: stop must be the final concat term")
	}
	if _, ok := err.(*UnsupportedSyntaxError); !ok {
		t.Fatalf("expected *UnsupportedSyntaxError, got %T", err)
	}
}

func TestLowerRejectsNumberedGroup(t *testing.T) {
	tb := ast.NewTable(0)
	_, err := Lower(`(a)(b)`, tb)
	if err == nil {
		t.Fatalf("expected error for numbered groups")
	}
}

func TestLowerRejectsSecondNamedGroup(t *testing.T) {
	tb := ast.NewTable(0)
	_, err := Lower(`(?P<foo>a)(?P<stop>b)`, tb)
	if err == nil {
		t.Fatalf("expected error: only \"stop\" is a recognized name, and only as the sole capture")
	}
}

func TestLowerRejectsWordBoundary(t *testing.T) {
	tb := ast.NewTable(0)
	_, err := Lower(`\bfoo\b`, tb)
	if err == nil {
		t.Fatalf("expected error for word boundary")
	}
}

func TestLowerRejectsNonByteRune(t *testing.T) {
	tb := ast.NewTable(0)
	_, err := Lower("日本語", tb)
	if err == nil {
		t.Fatalf("expected error for non-byte runes")
	}
}

func TestLowerParseErrorOnInvalidSyntax(t *testing.T) {
	tb := ast.NewTable(0)
	_, err := Lower("(unclosed", tb)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestLowerCaseInsensitiveLiteral(t *testing.T) {
	tb := ast.NewTable(0)
	res, err := Lower("(?i)abc", tb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !runMatch(t, tb, res.Root, "ABC") {
		t.Fatalf("(?i)abc should match ABC")
	}
	if !runMatch(t, tb, res.Root, "aBc") {
		t.Fatalf("(?i)abc should match aBc")
	}
}
