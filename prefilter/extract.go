package prefilter

import "github.com/coregx/dre/ast"

// ExtractRequiredLiterals walks root the way literal/extractor.go walks an
// OpConcat chain for cross-product literal expansion, but over the canonical
// ast instead of regexp/syntax: every maximal run of singleton-Byte nodes
// joined by Concat is a substring every match of root must contain verbatim.
//
// Anything else encountered along the spine (Or, And, Not, Star, Lookahead,
// a multi-byte class) breaks the current run without trying to recurse
// through it: those shapes do not force a fixed substring at that position,
// so being conservative here can only cost prefilter precision, never
// correctness.
func ExtractRequiredLiterals(t *ast.Table, root ast.ID) [][]byte {
	var results [][]byte
	var cur []byte

	flush := func() {
		if len(cur) == 0 {
			return
		}
		lit := make([]byte, len(cur))
		copy(lit, cur)
		results = append(results, lit)
		cur = cur[:0]
	}

	id := root
	for {
		n := t.Node(id)
		switch n.Kind {
		case ast.KindConcat:
			if b, ok := singletonByte(t.Node(n.Head)); ok {
				cur = append(cur, b)
			} else {
				flush()
			}
			id = n.Tail
			continue
		case ast.KindByte:
			if b, ok := singletonByte(n); ok {
				cur = append(cur, b)
			}
			flush()
			return results
		default:
			flush()
			return results
		}
	}
}

func singletonByte(n ast.Node) (byte, bool) {
	if n.Kind != ast.KindByte || len(n.Set.Ranges) != 1 {
		return 0, false
	}
	r := n.Set.Ranges[0]
	if r.Lo != r.Hi {
		return 0, false
	}
	return r.Lo, true
}
