// Package deriv implements the Brzozowski/Antimirov derivative of a
// canonical ast.Node with respect to one input byte (spec component C3).
package deriv

import "github.com/coregx/dre/ast"

type frame struct {
	id     ast.ID
	pushed bool
}

// Derivative computes d_b(root): the residual regex after consuming byte b,
// re-using ast's smart constructors so the result is itself canonical.
//
// The walk is iterative rather than recursive: a node DAG can be as deep as
// the pattern is long (e.g. a long literal lowers to a long right-leaning
// Concat chain), and an explicit stack with per-call memoization keeps both
// the recursion depth and the duplicate work bounded by the DAG's shape
// instead of the Go call stack.
func Derivative(t *ast.Table, root ast.ID, b byte) ast.ID {
	memo := make(map[ast.ID]ast.ID)
	stack := []frame{{id: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if _, ok := memo[top.id]; ok {
			stack = stack[:len(stack)-1]
			continue
		}
		n := t.Node(top.id)
		kids := childrenOf(t, top.id, n)

		if !top.pushed {
			top.pushed = true
			ready := true
			for _, k := range kids {
				if _, ok := memo[k]; !ok {
					stack = append(stack, frame{id: k})
					ready = false
				}
			}
			if !ready {
				continue
			}
		}

		memo[top.id] = compute(t, top.id, n, b, memo)
		stack = stack[:len(stack)-1]
	}

	return memo[root]
}

func childrenOf(t *ast.Table, id ast.ID, n ast.Node) []ast.ID {
	switch n.Kind {
	case ast.KindConcat:
		return []ast.ID{n.Head, n.Tail}
	case ast.KindStar, ast.KindNot, ast.KindLookahead:
		return []ast.ID{n.Sub}
	case ast.KindOr, ast.KindAnd:
		return t.Children(id)
	default:
		return nil
	}
}

func compute(t *ast.Table, id ast.ID, n ast.Node, b byte, memo map[ast.ID]ast.ID) ast.ID {
	switch n.Kind {
	case ast.KindEmpty, ast.KindEpsilon:
		return ast.EmptyID
	case ast.KindByte:
		if n.Set.Contains(b) {
			return ast.EpsilonID
		}
		return ast.EmptyID
	case ast.KindConcat:
		dHead := memo[n.Head]
		branches := []ast.ID{t.Concat(dHead, n.Tail)}
		if t.Nullable(n.Head) {
			branches = append(branches, memo[n.Tail])
		}
		return t.Or(branches)
	case ast.KindStar:
		return t.Concat(memo[n.Sub], id)
	case ast.KindOr:
		kids := t.Children(id)
		derived := make([]ast.ID, len(kids))
		for i, k := range kids {
			derived[i] = memo[k]
		}
		return t.Or(derived)
	case ast.KindAnd:
		kids := t.Children(id)
		derived := make([]ast.ID, len(kids))
		for i, k := range kids {
			derived[i] = memo[k]
		}
		return t.And(derived)
	case ast.KindNot:
		return t.Not(memo[n.Sub])
	case ast.KindLookahead:
		return t.Lookahead(memo[n.Sub])
	default:
		panic("deriv: unknown node kind")
	}
}
