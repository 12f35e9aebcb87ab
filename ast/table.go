package ast

import (
	"hash/maphash"

	"github.com/coregx/dre/internal/cons"
	"github.com/coregx/dre/internal/conv"
)

// EmptyID and EpsilonID are the two nodes every Table starts with. They are
// fixed so that code can compare against them directly instead of calling
// into the table.
const (
	EmptyID   ID = 0
	EpsilonID ID = 1
)

// Table is the arena owning every interned node for one compiled pattern.
// It is the single owner: dropping a Table drops every node it holds in one
// step, mirroring the arena+index ownership nfa.Builder uses for States.
type Table struct {
	seed    maphash.Seed
	nodes   []Node
	byHash  map[uint64][]ID
	kids    *cons.VecTable
	maxSize uint32

	sigmaStarID ID // Not(Empty), computed lazily on first use
	haveSigma   bool
}

// NewTable returns a Table pre-populated with Empty and Epsilon, willing to
// grow up to maxNodes interned nodes before panicking with *OverflowError.
// A maxNodes of 0 means unbounded.
func NewTable(maxNodes uint32) *Table {
	t := &Table{
		seed:    maphash.MakeSeed(),
		byHash:  make(map[uint64][]ID),
		kids:    cons.New(),
		maxSize: maxNodes,
	}
	empty := t.rawIntern(Node{Kind: KindEmpty, nullable: false})
	eps := t.rawIntern(Node{Kind: KindEpsilon, nullable: true})
	if empty != EmptyID || eps != EpsilonID {
		panic("ast: internal invariant violated, Empty/Epsilon did not get ids 0/1")
	}
	return t
}

// Node returns the interned node for id.
func (t *Table) Node(id ID) Node {
	return t.nodes[id]
}

// Nullable reports whether id's language contains the empty string.
func (t *Table) Nullable(id ID) bool {
	return t.nodes[id].nullable
}

// Children returns the (already canonical, sorted, deduped) child ids of an
// Or or And node.
func (t *Table) Children(id ID) []ID {
	n := t.nodes[id]
	raw := t.kids.Get(n.children)
	out := make([]ID, len(raw))
	for i, v := range raw {
		out[i] = ID(v)
	}
	return out
}

// Stats reports the current size of the table.
type Stats struct {
	NodeCount int
	VecCount  int
}

// Stats returns the table's current node and child-vector counts.
func (t *Table) Stats() Stats {
	return Stats{NodeCount: len(t.nodes), VecCount: t.kids.Len()}
}

// rawIntern structurally dedupes n and returns its id, growing the table if
// n has never been seen. Callers must have already put n's fields in
// canonical form (sorted ranges, canonical children vector id, etc).
func (t *Table) rawIntern(n Node) ID {
	h := t.hashNode(n)
	for _, id := range t.byHash[h] {
		if nodesEqual(t.nodes[id], n) {
			return id
		}
	}
	if t.maxSize != 0 && uint32(len(t.nodes)) >= t.maxSize {
		panic(&OverflowError{Limit: t.maxSize, Count: uint32(len(t.nodes))})
	}
	id := ID(conv.IntToUint32(len(t.nodes)))
	t.nodes = append(t.nodes, n)
	t.byHash[h] = append(t.byHash[h], id)
	return id
}

// internChildren interns a (already sorted+deduped) slice of child ids as a
// vector, returning the cons.VecTable id to store in Node.children.
func (t *Table) internChildren(children []ID) uint32 {
	vec := make([]uint32, len(children))
	for i, c := range children {
		vec[i] = uint32(c)
	}
	return t.kids.Intern(vec)
}

func nodesEqual(a, b Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindEmpty, KindEpsilon:
		return true
	case KindByte:
		return a.Set.equal(b.Set)
	case KindConcat:
		return a.Head == b.Head && a.Tail == b.Tail
	case KindStar, KindNot, KindLookahead:
		return a.Sub == b.Sub
	case KindOr, KindAnd:
		return a.children == b.children
	default:
		return false
	}
}

func (t *Table) hashNode(n Node) uint64 {
	var h maphash.Hash
	h.SetSeed(t.seed)
	var buf []byte
	buf = append(buf, byte(n.Kind))
	switch n.Kind {
	case KindByte:
		for _, r := range n.Set.Ranges {
			buf = append(buf, r.Lo, r.Hi)
		}
	case KindConcat:
		buf = appendID(buf, n.Head)
		buf = appendID(buf, n.Tail)
	case KindStar, KindNot, KindLookahead:
		buf = appendID(buf, n.Sub)
	case KindOr, KindAnd:
		buf = appendID(buf, ID(n.children))
	}
	h.Write(buf)
	return h.Sum64()
}

func appendID(buf []byte, id ID) []byte {
	return append(buf, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
}
