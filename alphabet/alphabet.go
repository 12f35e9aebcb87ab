// Package alphabet computes, for each canonical AST node, a partition of the
// 256 byte values such that bytes in the same class always produce the same
// derivative (spec component C4). A node's partition is the coarsest common
// refinement of the partitions of the sub-nodes it depends on; it is not
// always the coarsest partition with that property.
//
// The representation (a 256-bit "boundary" set, one bit per byte marking the
// start of a new class) and its construction are the same as
// nfa.ByteClassSet/ByteClasses in the teacher, generalized from one global
// partition over an entire NFA to one partition per AST node.
package alphabet

// Boundaries is a 256-bit set recording which bytes start a new equivalence
// class. Bit i is set iff byte i begins a class different from byte i-1
// (byte 0 always implicitly starts class 0).
type Boundaries struct {
	bits [4]uint64
}

func (b *Boundaries) set(i int) {
	b.bits[i>>6] |= 1 << uint(i&63)
}

func (b *Boundaries) get(i int) bool {
	return b.bits[i>>6]&(1<<uint(i&63)) != 0
}

// SetRange marks the boundaries induced by treating [lo,hi] as one class:
// the byte after hi (if any) starts a new class, and lo itself starts a new
// class unless lo == 0 (class 0 always starts there anyway).
func (b *Boundaries) SetRange(lo, hi byte) {
	if lo > 0 {
		b.set(int(lo))
	}
	if hi < 0xff {
		b.set(int(hi) + 1)
	}
}

// Merge unions two boundary sets, producing the coarsest common refinement
// of the two partitions they describe.
func (b *Boundaries) Merge(other *Boundaries) {
	for i := range b.bits {
		b.bits[i] |= other.bits[i]
	}
}

// ByteClasses maps each of the 256 byte values to a dense class index.
type ByteClasses struct {
	classes    [256]byte
	ascii      [128]byte
	numClasses int
}

// Build converts a boundary set into a ByteClasses lookup table.
func (b *Boundaries) Build() *ByteClasses {
	c := &ByteClasses{}
	cur := byte(0)
	c.classes[0] = 0
	for i := 1; i < 256; i++ {
		if b.get(i) {
			cur++
		}
		c.classes[i] = cur
	}
	c.numClasses = int(cur) + 1
	copy(c.ascii[:], c.classes[:128])
	return c
}

// Get returns the class index for byte b.
func (c *ByteClasses) Get(b byte) byte { return c.classes[b] }

// GetASCII returns the class index for b, the same value Get would, but
// read from a 128-entry table instead of the full 256-entry one. Callers
// must have already established b < 0x80 (internal/asciiscan.IsASCII over
// the whole input is the intended precondition); it is not re-checked here.
func (c *ByteClasses) GetASCII(b byte) byte { return c.ascii[b] }

// NumClasses reports how many distinct classes this partition has.
func (c *ByteClasses) NumClasses() int { return c.numClasses }

// Representatives returns one byte per class, suitable for probing a
// derivative once per class instead of once per byte value.
func (c *ByteClasses) Representatives() []byte {
	seen := make([]bool, c.numClasses)
	reps := make([]byte, 0, c.numClasses)
	for b := 0; b < 256; b++ {
		cl := c.classes[b]
		if !seen[cl] {
			seen[cl] = true
			reps = append(reps, byte(b))
		}
	}
	return reps
}

// IsSingleton reports whether the whole byte range collapses to one class
// (the node's derivative does not depend on which byte arrives at all, e.g.
// Empty, Epsilon, Star(Sigma)).
func (c *ByteClasses) IsSingleton() bool { return c.numClasses == 1 }
