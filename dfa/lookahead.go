package dfa

import (
	"github.com/coregx/dre/ast"
	"github.com/coregx/dre/deriv"
)

// LookaheadLen implements spec.md §4.6's two-predicate protocol for a
// pattern compiled as prefix·Lookahead(stop): it reports the byte length of
// the stop suffix if the whole input matches, else (0, false).
//
// Once prefix and stop residuals merge into one hash-consed Or state, the
// merged state no longer remembers which candidate split point produced it
// (two different splits commonly derive to the identical canonical
// residual, e.g. when stop's own prefix is a Star that absorbs any number of
// bytes without changing its residual). Recovering the split therefore needs
// bookkeeping alongside the derivative walk, not just inspection of the
// final state: a map from "current stop residual id" to the largest start
// position that reached it. Each step, every live candidate is derived one
// more byte, and a fresh candidate is seeded whenever the prefix alone was
// nullable just before this byte (prefix_done in spec.md's vocabulary). At
// the end, the candidate with the largest start position whose residual is
// nullable (stop_nullable) wins — spec.md §8's worked examples all resolve
// to the largest such split (shortest stop), which is what this reports.
func LookaheadLen(table *ast.Table, prefix, stop ast.ID, input []byte) (int, bool) {
	prefixState := prefix
	candidates := make(map[ast.ID]int)

	if table.Nullable(prefixState) {
		candidates[stop] = 0
	}

	for i := 0; i < len(input); i++ {
		b := input[i]

		next := make(map[ast.ID]int, len(candidates))
		for q, start := range candidates {
			q2 := deriv.Derivative(table, q, b)
			if q2 == ast.EmptyID {
				continue
			}
			if cur, ok := next[q2]; !ok || start > cur {
				next[q2] = start
			}
		}

		if prefixState != ast.EmptyID {
			prefixState = deriv.Derivative(table, prefixState, b)
		}
		if prefixState != ast.EmptyID && table.Nullable(prefixState) {
			start := i + 1
			if cur, ok := next[stop]; !ok || start > cur {
				next[stop] = start
			}
		}

		candidates = next
		if len(candidates) == 0 && prefixState == ast.EmptyID {
			break
		}
	}

	best := -1
	for q, start := range candidates {
		if table.Nullable(q) && start > best {
			best = start
		}
	}
	if best < 0 {
		return 0, false
	}
	return len(input) - best, true
}
