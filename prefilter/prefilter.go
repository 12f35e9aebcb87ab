// Package prefilter extracts required literal runs from a canonical ast.Table
// and wires them into an Aho-Corasick automaton as an O(n) pre-reject
// accelerator in front of the derivative DFA.
//
// A prefilter never manufactures a match: it only lets is_match short-circuit
// to false when none of the literals every match must contain occur anywhere
// in the input. The derivative walk remains the sole source of truth for
// acceptance.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/dre/ast"
)

// minLiteralLen is the shortest required run worth handing to the automaton;
// single bytes reject too little of the input to be worth the build cost.
const minLiteralLen = 2

// Prefilter holds an Aho-Corasick automaton over the literal runs a pattern
// forces into every match. A nil *Prefilter (or one with no automaton) always
// reports MayMatch true, meaning "no information, run the real engine".
type Prefilter struct {
	auto *ahocorasick.Automaton
}

// Build extracts required literal runs from root and compiles them into a
// Prefilter. Returns nil if no run long enough to be useful was found.
func Build(t *ast.Table, root ast.ID) *Prefilter {
	runs := ExtractRequiredLiterals(t, root)
	if len(runs) == 0 {
		return nil
	}

	builder := ahocorasick.NewBuilder()
	n := 0
	for _, r := range runs {
		if len(r) < minLiteralLen {
			continue
		}
		builder.AddPattern(r)
		n++
	}
	if n == 0 {
		return nil
	}

	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &Prefilter{auto: auto}
}

// MayMatch reports whether input could possibly match: false is a guaranteed
// reject, true means the caller must still run the full derivative walk.
func (p *Prefilter) MayMatch(input []byte) bool {
	if p == nil || p.auto == nil {
		return true
	}
	return p.auto.IsMatch(input)
}
