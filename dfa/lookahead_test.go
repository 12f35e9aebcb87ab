package dfa

import "testing"

// The four scenarios below are the worked examples for pattern
// [abx]*(?P<stop>[xq]*y) against various inputs: the prefix is greedy over
// {a,b,x}, and the named group marks where the trailing "stop" submatch is
// allowed to begin consuming the same bytes the prefix could also consume.
func TestLookaheadLenWorkedExamples(t *testing.T) {
	tb, res := compile(t, `[abx]*(?P<stop>[xq]*y)`)
	if !res.HasStop {
		t.Fatalf("expected HasStop true")
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
		gotLen, gotOK := LookaheadLen(tb, res.Prefix, res.Stop, []byte(c.input))
		if gotOK != c.wantOK || (gotOK && gotLen != c.wantLen) {
			t.Fatalf("LookaheadLen(%q) = (%d, %v), want (%d, %v)", c.input, gotLen, gotOK, c.wantLen, c.wantOK)
		}
	}
}

func TestLookaheadLenOnBareStop(t *testing.T) {
	tb, res := compile(t, `(?P<stop>[xq]*y)`)
	gotLen, ok := LookaheadLen(tb, res.Prefix, res.Stop, []byte("xxy"))
	if !ok || gotLen != 3 {
		t.Fatalf("expected (3, true) for bare stop over \"xxy\", got (%d, %v)", gotLen, ok)
	}

	if _, ok := LookaheadLen(tb, res.Prefix, res.Stop, []byte("xxz")); ok {
		t.Fatalf("expected no match: \"xxz\" does not end in y")
	}
}

func TestLookaheadLenRejectsInputNotConsumedByPrefixOrStop(t *testing.T) {
	tb, res := compile(t, `a*(?P<stop>b+)`)
	if _, ok := LookaheadLen(tb, res.Prefix, res.Stop, []byte("aabbc")); ok {
		t.Fatalf("trailing byte not accounted for by prefix+stop must not match")
	}
	gotLen, ok := LookaheadLen(tb, res.Prefix, res.Stop, []byte("aabb"))
	if !ok || gotLen != 2 {
		t.Fatalf("expected (2, true) for \"aabb\", got (%d, %v)", gotLen, ok)
	}
}
