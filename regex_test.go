package dre

import (
	"testing"

	"github.com/coregx/dre/ast"
	"github.com/coregx/dre/dfa"
)

func TestIsMatchClassThenLiteral(t *testing.T) {
	re := MustCompile(`[ab]c`)
	cases := map[string]bool{"ac": true, "bc": true, "xxac": false, "acxx": false}
	for in, want := range cases {
		if got := re.IsMatch([]byte(in)); got != want {
			t.Fatalf("IsMatch(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLookaheadLenWorkedExamples(t *testing.T) {
	re := MustCompile(`[abx]*(?P<stop>[xq]*y)`)
	if !re.HasLookahead() {
		t.Fatalf("expected HasLookahead true")
	}

	cases := []struct {
		input   string
		wantLen int
		wantOK  bool
	}{
		{"axxxxxy", 1, true},
		{"axxxxxqqqy", 4, true},
		{"axxxxxqqq", 0, false},
		{"ccqy", 0, false},
	}
	for _, c := range cases {
		gotLen, gotOK := re.LookaheadLen([]byte(c.input))
		if gotOK != c.wantOK || (gotOK && gotLen != c.wantLen) {
			t.Fatalf("LookaheadLen(%q) = (%d, %v), want (%d, %v)", c.input, gotLen, gotOK, c.wantLen, c.wantOK)
		}
	}
}

func TestIsMatchStar(t *testing.T) {
	re := MustCompile(`a*`)
	cases := map[string]bool{"": true, "aaaa": true, "aaab": false}
	for in, want := range cases {
		if got := re.IsMatch([]byte(in)); got != want {
			t.Fatalf("IsMatch(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsMatchAlternation(t *testing.T) {
	re := MustCompile(`a|b`)
	if !re.IsMatch([]byte("a")) {
		t.Fatalf("a|b should match \"a\"")
	}
	if re.IsMatch([]byte("ab")) {
		t.Fatalf("a|b should not match \"ab\" (anchored to the whole input)")
	}
}

// mkConcatFrom builds the right-associated Concat chain for a literal byte
// string, the way rsyntax lowers a literal.
func mkConcatFrom(tb *ast.Table, s string) ast.ID {
	if len(s) == 0 {
		return ast.EpsilonID
	}
	id := tb.Byte([]ast.Range{{Lo: s[len(s)-1], Hi: s[len(s)-1]}})
	for i := len(s) - 2; i >= 0; i-- {
		id = tb.Concat(tb.Byte([]ast.Range{{Lo: s[i], Hi: s[i]}}), id)
	}
	return id
}

func TestInternallyConstructedAndNot(t *testing.T) {
	tb := ast.NewTable(0)
	lowerAZ := tb.Byte([]ast.Range{{Lo: 'a', Hi: 'z'}})
	star := tb.Star(lowerAZ)
	foo := mkConcatFrom(tb, "foo")
	root := tb.And([]ast.ID{star, tb.Not(foo)})

	driver := dfa.New(tb, dfa.DefaultConfig())
	// Not(concat_from("foo")) complements the single string "foo", not the
	// set of strings containing "foo" as a substring: once the input
	// diverges from "foo" (an extra byte, or a mismatch), the complemented
	// branch's derivative collapses to Not(Empty) = Sigma*, which accepts
	// every suffix. So "foobar" != "foo" is matched, same as "bar"; only
	// the literal string "foo" itself is excluded.
	cases := map[string]bool{"bar": true, "foo": false, "foobar": true}
	for in, want := range cases {
		if got := driver.IsMatch(root, []byte(in)); got != want {
			t.Fatalf("IsMatch(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDeeplyNestedStarDoesNotOverflowStack(t *testing.T) {
	re := MustCompile(`((((a*)*)*)*)`)
	if !re.IsMatch([]byte("aaaa")) {
		t.Fatalf("expected deeply nested star to match \"aaaa\"")
	}
}

func TestCompileWithConfigDisablingPrefilterPreservesResults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnablePrefilter = false
	re, err := CompileWithConfig(`hello[0-9]+`, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if re.IsMatch([]byte("hello42")) != true {
		t.Fatalf("expected match with prefilter disabled")
	}
	if re.IsMatch([]byte("goodbye")) != false {
		t.Fatalf("expected no match with prefilter disabled")
	}
}

func TestStatsTracksDerivativeWalksAndPrefilterRejects(t *testing.T) {
	re := MustCompile(`hello`)
	re.IsMatch([]byte("not it"))
	re.IsMatch([]byte("hello"))

	stats := re.Stats()
	if stats.PrefilterRejects == 0 {
		t.Fatalf("expected at least one prefilter reject for a non-matching input without the required literal")
	}
	if stats.DerivativeWalks == 0 {
		t.Fatalf("expected at least one derivative walk for the matching input")
	}
}

func TestCompileWithConfigRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DFA.MaxStates = 0
	cfg.DFA.MaxDFAStates = 0
	if _, err := CompileWithConfig(`abc`, cfg); err == nil {
		t.Fatalf("expected an error for a Config with MaxStates and MaxDFAStates both zero")
	}
}

func TestMustCompilePanicsOnInvalidPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustCompile to panic on invalid syntax")
		}
	}()
	MustCompile("(unclosed")
}

func TestLookaheadLenPanicsWithoutStopGroup(t *testing.T) {
	re := MustCompile(`abc`)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected LookaheadLen to panic without a stop group")
		}
	}()
	re.LookaheadLen([]byte("abc"))
}

func TestStringReturnsSourcePattern(t *testing.T) {
	re := MustCompile(`a+b*`)
	if re.String() != "a+b*" {
		t.Fatalf("String() = %q, want %q", re.String(), "a+b*")
	}
}
