package alphabet

import "github.com/coregx/dre/ast"

type frame struct {
	id     ast.ID
	pushed bool
}

// Cache computes and memoizes the byte-class partition for nodes of one
// ast.Table. Partitions never change once computed: a node's partition
// depends only on its (immutable, hash-consed) sub-structure.
type Cache struct {
	table *ast.Table
	parts map[ast.ID]*ByteClasses
}

// NewCache returns an empty cache bound to table.
func NewCache(table *ast.Table) *Cache {
	return &Cache{table: table, parts: make(map[ast.ID]*ByteClasses)}
}

// Partition returns the byte-class partition for id, computing it (and any
// not-yet-computed sub-node partitions it depends on) on first request.
//
// The computation walks the node DAG iteratively, same rationale as
// deriv.Derivative: nesting depth can track pattern length, not recursion
// safety margins.
func (c *Cache) Partition(id ast.ID) *ByteClasses {
	if p, ok := c.parts[id]; ok {
		return p
	}

	bounds := make(map[ast.ID]*Boundaries)
	stack := []frame{{id: id}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if _, ok := c.parts[top.id]; ok {
			stack = stack[:len(stack)-1]
			continue
		}
		if _, ok := bounds[top.id]; ok {
			stack = stack[:len(stack)-1]
			continue
		}
		n := c.table.Node(top.id)
		kids := depsOf(c.table, top.id, n)

		if !top.pushed {
			top.pushed = true
			ready := true
			for _, k := range kids {
				if _, ok := bounds[k]; !ok {
					if _, done := c.parts[k]; !done {
						stack = append(stack, frame{id: k})
						ready = false
					}
				}
			}
			if !ready {
				continue
			}
		}

		b := computeBoundaries(c.table, top.id, n, bounds, c.parts)
		bounds[top.id] = b
		c.parts[top.id] = b.Build()
		stack = stack[:len(stack)-1]
	}

	return c.parts[id]
}

func depsOf(t *ast.Table, id ast.ID, n ast.Node) []ast.ID {
	switch n.Kind {
	case ast.KindConcat:
		if t.Nullable(n.Head) {
			return []ast.ID{n.Head, n.Tail}
		}
		return []ast.ID{n.Head}
	case ast.KindStar, ast.KindNot, ast.KindLookahead:
		return []ast.ID{n.Sub}
	case ast.KindOr, ast.KindAnd:
		return t.Children(id)
	default:
		return nil
	}
}

func lookupBoundaries(id ast.ID, bounds map[ast.ID]*Boundaries, parts map[ast.ID]*ByteClasses) *Boundaries {
	if b, ok := bounds[id]; ok {
		return b
	}
	// Already finalized in an earlier Partition() call: reconstruct a
	// boundary set equivalent to the cached ByteClasses by synthesizing
	// boundaries at every class transition (the ByteClasses already records
	// exactly this information).
	cl := parts[id]
	b := &Boundaries{}
	for i := 1; i < 256; i++ {
		if cl.classes[i] != cl.classes[i-1] {
			b.set(i)
		}
	}
	return b
}

func computeBoundaries(t *ast.Table, id ast.ID, n ast.Node, bounds map[ast.ID]*Boundaries, parts map[ast.ID]*ByteClasses) *Boundaries {
	b := &Boundaries{}
	switch n.Kind {
	case ast.KindEmpty, ast.KindEpsilon:
		// Trivial: every byte behaves identically (dies, or is irrelevant).
	case ast.KindByte:
		for _, r := range n.Set.Ranges {
			b.SetRange(r.Lo, r.Hi)
		}
	case ast.KindConcat:
		b.Merge(lookupBoundaries(n.Head, bounds, parts))
		if t.Nullable(n.Head) {
			b.Merge(lookupBoundaries(n.Tail, bounds, parts))
		}
	case ast.KindStar, ast.KindNot, ast.KindLookahead:
		b.Merge(lookupBoundaries(n.Sub, bounds, parts))
	case ast.KindOr, ast.KindAnd:
		for _, k := range t.Children(id) {
			b.Merge(lookupBoundaries(k, bounds, parts))
		}
	}
	return b
}
