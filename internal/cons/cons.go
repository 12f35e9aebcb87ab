// Package cons implements a hash-cons table for vectors of small integer ids.
//
// ast.Table uses it to dedupe the child lists of Or/And nodes: two nodes
// built from the same (already-canonical) child ids get the same vector id,
// so the nodes themselves compare equal by id alone.
package cons

import "hash/maphash"

// VecTable interns []uint32 vectors, returning a dense id for each distinct
// vector. Equal vectors (same length, same elements, same order) always
// return the same id. Ids are never reused or invalidated.
type VecTable struct {
	seed    maphash.Seed
	buckets map[uint64][]uint32 // hash -> candidate ids
	vecs    [][]uint32          // id -> owned copy of the vector
}

// New returns an empty table.
func New() *VecTable {
	return &VecTable{
		seed:    maphash.MakeSeed(),
		buckets: make(map[uint64][]uint32),
	}
}

// Intern returns the id for vec, interning a copy of it if this is the first
// time this exact sequence has been seen.
func (t *VecTable) Intern(vec []uint32) uint32 {
	h := t.hash(vec)
	for _, id := range t.buckets[h] {
		if equal(t.vecs[id], vec) {
			return id
		}
	}
	id := uint32(len(t.vecs))
	owned := append([]uint32(nil), vec...)
	t.vecs = append(t.vecs, owned)
	t.buckets[h] = append(t.buckets[h], id)
	return id
}

// Get returns the vector previously interned under id.
func (t *VecTable) Get(id uint32) []uint32 {
	return t.vecs[id]
}

// Len reports how many distinct vectors have been interned.
func (t *VecTable) Len() int {
	return len(t.vecs)
}

func (t *VecTable) hash(vec []uint32) uint64 {
	var h maphash.Hash
	h.SetSeed(t.seed)
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		buf[4*i] = byte(v)
		buf[4*i+1] = byte(v >> 8)
		buf[4*i+2] = byte(v >> 16)
		buf[4*i+3] = byte(v >> 24)
	}
	h.Write(buf)
	return h.Sum64()
}

func equal(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
