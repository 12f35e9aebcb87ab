package ast

import "sort"

// Byte interns a single-byte node matching any byte in ranges, applying
// spec.md §4.2's Byte rule: an empty (after normalization) range set
// collapses to Empty.
func (t *Table) Byte(ranges []Range) ID {
	norm := normalizeRanges(ranges)
	if len(norm) == 0 {
		return EmptyID
	}
	return t.rawIntern(Node{Kind: KindByte, Set: ByteSet{Ranges: norm}, nullable: false})
}

// FullByte is the node matching any single byte (Sigma).
func (t *Table) FullByte() ID {
	return t.Byte([]Range{{Lo: 0, Hi: 0xff}})
}

// Concat interns a·b, right-associating and applying the absorbing/identity
// rules: Empty absorbs, Epsilon is the identity.
func (t *Table) Concat(a, b ID) ID {
	an := t.nodes[a]
	if an.Kind == KindLookahead {
		panic("ast: cannot concatenate after a trailing lookahead")
	}
	if a == EmptyID || b == EmptyID {
		return EmptyID
	}
	if a == EpsilonID {
		return b
	}
	if b == EpsilonID {
		return a
	}
	if an.Kind == KindConcat {
		// Keep Concat right-leaning: (h·t)·b = h·(t·b).
		return t.Concat(an.Head, t.Concat(an.Tail, b))
	}
	bn := t.nodes[b]
	return t.rawIntern(Node{
		Kind:     KindConcat,
		Head:     a,
		Tail:     b,
		nullable: an.nullable && bn.nullable,
	})
}

// Star interns r*, collapsing Empty* and Epsilon* to Epsilon, r** to r*, and
// (per spec.md §4.2's Not(Empty) = Sigma* = Star(Byte(0..=255)) pairing)
// Star(FullByte) to the same Sigma* node Not(Empty) produces, so the two
// constructions are never allowed to diverge into different interned ids.
func (t *Table) Star(r ID) ID {
	if r == EmptyID || r == EpsilonID {
		return EpsilonID
	}
	if t.nodes[r].Kind == KindStar {
		return r
	}
	if t.nodes[r].Kind == KindLookahead {
		panic("ast: lookahead cannot be starred")
	}
	if isFullByte(t.nodes[r]) {
		return t.sigmaStar()
	}
	return t.rawIntern(Node{Kind: KindStar, Sub: r, nullable: true})
}

// isFullByte reports whether n is the Byte node matching every single byte
// (the range 0x00..=0xff collapsed to one range by Byte's normalization).
func isFullByte(n Node) bool {
	return n.Kind == KindByte && len(n.Set.Ranges) == 1 && n.Set.Ranges[0].Lo == 0 && n.Set.Ranges[0].Hi == 0xff
}

// sigmaStar returns Not(Empty), the node matching every string, computing it
// once per table.
func (t *Table) sigmaStar() ID {
	if !t.haveSigma {
		t.sigmaStarID = t.notRaw(EmptyID)
		t.haveSigma = true
	}
	return t.sigmaStarID
}

// Not interns the complement of r over Sigma*, collapsing double negation.
func (t *Table) Not(r ID) ID {
	if t.nodes[r].Kind == KindNot {
		return t.nodes[r].Sub
	}
	if t.nodes[r].Kind == KindLookahead {
		panic("ast: lookahead cannot be complemented")
	}
	return t.notRaw(r)
}

func (t *Table) notRaw(r ID) ID {
	return t.rawIntern(Node{Kind: KindNot, Sub: r, nullable: !t.nodes[r].nullable})
}

// Or interns the union of children, flattening nested Or, dropping Empty,
// deduping and sorting, and collapsing to Empty/singleton/Sigma* per
// spec.md §4.2.
func (t *Table) Or(children []ID) ID {
	flat := t.flatten(children, KindOr, EmptyID)
	for _, c := range flat {
		if c == t.sigmaStar() {
			return t.sigmaStar()
		}
	}
	flat = dedupeSorted(flat)
	switch len(flat) {
	case 0:
		return EmptyID
	case 1:
		return flat[0]
	}
	anyNullable := false
	for _, c := range flat {
		if t.nodes[c].nullable {
			anyNullable = true
			break
		}
	}
	vec := t.internChildren(flat)
	return t.rawIntern(Node{Kind: KindOr, children: vec, nullable: anyNullable})
}

// And interns the intersection of children, flattening nested And, short
// circuiting to Empty, dropping Sigma* (the And identity), deduping and
// sorting.
func (t *Table) And(children []ID) ID {
	flat := t.flatten(children, KindAnd, t.sigmaStar())
	for _, c := range flat {
		if c == EmptyID {
			return EmptyID
		}
	}
	flat = dedupeSorted(flat)
	switch len(flat) {
	case 0:
		return t.sigmaStar()
	case 1:
		return flat[0]
	}
	allNullable := true
	for _, c := range flat {
		if !t.nodes[c].nullable {
			allNullable = false
			break
		}
	}
	vec := t.internChildren(flat)
	return t.rawIntern(Node{Kind: KindAnd, children: vec, nullable: allNullable})
}

// flatten expands nested nodes of kind `kind` and drops any child equal to
// `identity` (Empty for Or, Sigma* for And). A Lookahead child is accepted
// in an Or (deriving prefix·Lookahead(stop) produces such Or nodes) and
// rejected with a panic in an And.
func (t *Table) flatten(children []ID, kind Kind, identity ID) []ID {
	var out []ID
	for _, c := range children {
		if kind == KindAnd && t.nodes[c].Kind == KindLookahead {
			panic("ast: lookahead cannot appear inside And")
		}
		if c == identity {
			continue
		}
		if t.nodes[c].Kind == kind {
			out = append(out, t.Children(c)...)
			continue
		}
		out = append(out, c)
	}
	return out
}

// Lookahead interns a trailing zero-width marker wrapping stop.
func (t *Table) Lookahead(stop ID) ID {
	return t.rawIntern(Node{Kind: KindLookahead, Sub: stop, nullable: t.nodes[stop].nullable})
}

func dedupeSorted(ids []ID) []ID {
	if len(ids) < 2 {
		return ids
	}
	cp := append([]ID(nil), ids...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	out := cp[:1]
	for _, id := range cp[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
